package logging

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// New returns a console logger writing to w at the given level.
// Stdout carries the protocol, so callers pass stderr here.
func New(level string, w io.Writer) (zerolog.Logger, error) {
	var lvl, err = zerolog.ParseLevel(level)
	if err != nil {
		return zerolog.Nop(), fmt.Errorf("log level %q: %w", level, err)
	}
	var _, isFile = w.(*os.File)
	var output = zerolog.ConsoleWriter{
		Out:        w,
		TimeFormat: time.RFC3339,
		NoColor:    !isFile,
	}
	zerolog.CallerMarshalFunc = shortCaller
	return zerolog.New(output).Level(lvl).With().Timestamp().Caller().Logger(), nil
}

func shortCaller(pc uintptr, file string, line int) string {
	var short = file
	for i := len(file) - 1; i > 0; i-- {
		if file[i] == '/' {
			short = file[i+1:]
			break
		}
	}
	return fmt.Sprintf("%s:%d", short, line)
}
