package uci

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/ChizhovVadim/CounterUci/pkg/common"
)

var goShortcuts = map[string]string{
	"sm": "searchmoves",
	"d":  "depth",
	"i":  "infinite",
	"m":  "mate",
}

// parseLimits reads the arguments of go. Malformed values are collected into
// the returned error; the limits parsed so far stay usable.
func parseLimits(p *common.Position, args []string, shortcuts bool) (result common.LimitsType, err error) {
	result.StartTime = time.Now()
	var errs []error

	// intArg stores the value following token and reports whether it was consumed.
	var intArg = func(i *int, token string, field *int) bool {
		if *i+1 >= len(args) {
			errs = append(errs, fmt.Errorf("%v: missing value", token))
			return false
		}
		var v, err = strconv.Atoi(args[*i+1])
		if err != nil {
			errs = append(errs, fmt.Errorf("%v: %w", token, err))
			return false
		}
		*field = v
		*i++
		return true
	}

	for i := 0; i < len(args); i++ {
		var token = args[i]
		if shortcuts {
			if name, found := goShortcuts[token]; found {
				token = name
			}
		}
		switch token {
		case "searchmoves":
			var invalid []string
			for _, s := range args[i+1:] {
				if m, ok := common.ParseMove(p, s); ok {
					result.SearchMoves = append(result.SearchMoves, m)
				} else {
					invalid = append(invalid, s)
				}
			}
			if len(invalid) != 0 {
				errs = append(errs, fmt.Errorf("searchmoves: invalid moves %v", strings.Join(invalid, " ")))
			}
			i = len(args)
		case "ponder":
			result.Ponder = true
		case "infinite":
			result.Infinite = true
		case "wtime":
			intArg(&i, token, &result.WhiteTime)
		case "btime":
			intArg(&i, token, &result.BlackTime)
		case "winc":
			intArg(&i, token, &result.WhiteIncrement)
		case "binc":
			intArg(&i, token, &result.BlackIncrement)
		case "movestogo":
			intArg(&i, token, &result.MovesToGo)
		case "depth":
			intArg(&i, token, &result.Depth)
		case "nodes":
			intArg(&i, token, &result.Nodes)
		case "mate":
			intArg(&i, token, &result.Mate)
		case "movetime":
			intArg(&i, token, &result.MoveTime)
		case "perft":
			intArg(&i, token, &result.Perft)
		case "mt":
			if shortcuts {
				var seconds int
				if intArg(&i, token, &seconds) {
					result.MoveTime = seconds * 1000
				}
			}
		}
	}
	return result, errors.Join(errs...)
}
