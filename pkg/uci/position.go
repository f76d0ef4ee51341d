package uci

import (
	"context"
	"strings"

	"github.com/ChizhovVadim/CounterUci/pkg/common"
)

func (uci *Protocol) positionCommand(ctx context.Context, args []string) error {
	if len(args) == 0 {
		uci.logger.Debug().Msg("position: no arguments")
		return nil
	}
	var token = args[0]
	var fen string
	var movesIndex = findIndexString(args, "moves")
	switch {
	case token == "startpos":
		fen = common.InitialPositionFen
	case token == "fen" || uci.shortcuts && token == "f":
		if movesIndex == -1 {
			fen = strings.Join(args[1:], " ")
		} else {
			fen = strings.Join(args[1:movesIndex], " ")
		}
	default:
		uci.logger.Debug().Str("token", token).Msg("position: ignored")
		return nil
	}
	var p, err = common.NewPositionFromFEN(fen)
	if err != nil {
		return err
	}
	uci.history.Reset(p)
	if movesIndex >= 0 {
		for _, lan := range args[movesIndex+1:] {
			var child, ok = uci.history.Current().MakeMoveLAN(lan)
			if !ok {
				uci.logger.Warn().Str("move", lan).Msg("position: illegal move, replay stopped")
				break
			}
			uci.history.Push(child)
		}
	}
	if uci.cleanSearch && !uci.searching() {
		uci.engine.Clear()
	}
	return nil
}

func findIndexString(slice []string, value string) int {
	for p, v := range slice {
		if v == value {
			return p
		}
	}
	return -1
}
