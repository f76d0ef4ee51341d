package engine

import (
	"sync/atomic"

	. "github.com/ChizhovVadim/CounterUci/pkg/common"
)

const (
	boundLower = 1 << iota
	boundUpper
)

const boundExact = boundLower | boundUpper

const (
	moveBits = 21
	moveMask = 1<<moveBits - 1
	dateMask = 1<<(32-moveBits) - 1
)

// transEntry is 16 bytes. gate is a spin flag: a reader or writer that
// cannot take it skips the entry instead of waiting.
type transEntry struct {
	gate     int32
	key32    uint32
	moveDate uint32
	score    int16
	depth    int8
	bound    uint8
}

func (entry *transEntry) move() Move {
	return Move(entry.moveDate & moveMask)
}

func (entry *transEntry) date() uint16 {
	return uint16(entry.moveDate >> moveBits)
}

func (entry *transEntry) setMoveAndDate(move Move, date uint16) {
	entry.moveDate = uint32(move)&moveMask | uint32(date)<<moveBits
}

type transTable struct {
	megabytes int
	entries   []transEntry
	date      uint16
	mask      uint32
}

func newTransTable(megabytes int) *transTable {
	var size = roundPowerOfTwo(1024 * 1024 * megabytes / 16)
	return &transTable{
		megabytes: megabytes,
		entries:   make([]transEntry, size),
		mask:      uint32(size - 1),
	}
}

func roundPowerOfTwo(size int) int {
	var x = 1
	for (x << 1) <= size {
		x <<= 1
	}
	return x
}

func (tt *transTable) Size() int {
	return tt.megabytes
}

func (tt *transTable) IncDate() {
	tt.date = (tt.date + 1) & dateMask
}

func (tt *transTable) Clear() {
	tt.date = 0
	clear(tt.entries)
}

func (tt *transTable) entry(key uint64) *transEntry {
	return &tt.entries[uint32(key)&tt.mask]
}

func (tt *transTable) Read(key uint64) (depth, score, bound int, move Move, ok bool) {
	var entry = tt.entry(key)
	if !atomic.CompareAndSwapInt32(&entry.gate, 0, 1) {
		return
	}
	if entry.key32 == uint32(key>>32) {
		entry.setMoveAndDate(entry.move(), tt.date)
		score = int(entry.score)
		move = entry.move()
		depth = int(entry.depth)
		bound = int(entry.bound)
		ok = true
	}
	atomic.StoreInt32(&entry.gate, 0)
	return
}

func (tt *transTable) Update(key uint64, depth, score, bound int, move Move) {
	var entry = tt.entry(key)
	if !atomic.CompareAndSwapInt32(&entry.gate, 0, 1) {
		return
	}
	var replace bool
	if entry.key32 == uint32(key>>32) {
		replace = depth >= int(entry.depth)-3 || bound == boundExact
	} else {
		replace = entry.date() != tt.date ||
			depth >= int(entry.depth)
	}
	if replace {
		if move == MoveNone && entry.key32 == uint32(key>>32) {
			move = entry.move()
		}
		entry.key32 = uint32(key >> 32)
		entry.score = int16(score)
		entry.depth = int8(depth)
		entry.bound = uint8(bound)
		entry.setMoveAndDate(move, tt.date)
	}
	atomic.StoreInt32(&entry.gate, 0)
}

// Hashfull returns the permille of the first thousand entries written in the current search.
func (tt *transTable) Hashfull() int {
	var n = min(1000, len(tt.entries))
	var used = 0
	for i := 0; i < n; i++ {
		var entry = &tt.entries[i]
		if !atomic.CompareAndSwapInt32(&entry.gate, 0, 1) {
			continue
		}
		if entry.key32 != 0 && entry.date() == tt.date {
			used++
		}
		atomic.StoreInt32(&entry.gate, 0)
	}
	return used * 1000 / n
}
