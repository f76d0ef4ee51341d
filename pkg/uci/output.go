package uci

import (
	"fmt"
	"io"
	"sync"
)

// syncWriter serializes whole lines, so search output never interleaves with the loop.
type syncWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func newSyncWriter(w io.Writer) *syncWriter {
	return &syncWriter{w: w}
}

func (w *syncWriter) Println(a ...any) {
	w.mu.Lock()
	defer w.mu.Unlock()
	fmt.Fprintln(w.w, a...)
}

func (w *syncWriter) Printf(format string, a ...any) {
	w.mu.Lock()
	defer w.mu.Unlock()
	fmt.Fprintf(w.w, format, a...)
}
