package common

import (
	"sync/atomic"
	"time"
)

const (
	Empty = iota
	Pawn
	Knight
	Bishop
	Rook
	Queen
	King
)

const MaxMoves = 256

type LimitsType struct {
	Ponder         bool
	Infinite       bool
	WhiteTime      int
	BlackTime      int
	WhiteIncrement int
	BlackIncrement int
	MoveTime       int
	MovesToGo      int
	Depth          int
	Nodes          int
	Mate           int
	Perft          int
	SearchMoves    []Move
	StartTime      time.Time
}

type SearchInfo struct {
	Score    int
	Depth    int
	Nodes    int64
	Hashfull int
	Time     time.Duration
	MainLine []Move
}

type SearchParams struct {
	Positions []*Position
	Limits    LimitsType
	// Pondering is cleared by ponderhit. Nil means a normal search.
	Pondering *atomic.Bool
	Progress  func(si SearchInfo)
}
