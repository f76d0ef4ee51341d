package uci

import (
	"context"
	"fmt"

	"github.com/ChizhovVadim/CounterUci/pkg/common"
)

func (uci *Protocol) vocabulary() map[string]command {
	var commands = map[string]command{
		"uci":        {handler: uci.uciCommand, concurrent: true},
		"isready":    {handler: uci.isReadyCommand, concurrent: true},
		"setoption":  {handler: uci.setOptionCommand},
		"position":   {handler: uci.positionCommand, concurrent: true},
		"go":         {handler: uci.goCommand},
		"ucinewgame": {handler: uci.uciNewGameCommand},
		"stop":       {handler: uci.stopCommand, concurrent: true},
		"ponderhit":  {handler: uci.ponderhitCommand, concurrent: true},
		"quit":       {handler: uci.stopCommand, concurrent: true, terminal: true},
		"bench":      {handler: uci.benchCommand},
		"d":          {handler: uci.displayCommand, concurrent: true},
		"eval":       {handler: uci.evalCommand, concurrent: true},
		"flip":       {handler: uci.flipCommand},
		"compiler":   {handler: uci.compilerCommand, concurrent: true},
	}
	if uci.shortcuts {
		for alias, name := range commandShortcuts {
			commands[alias] = commands[name]
		}
		commands["set"] = command{handler: uci.setCommand}
		commands["s"] = commands["set"]
	}
	return commands
}

var commandShortcuts = map[string]string{
	"q":   "quit",
	"?":   "stop",
	"g":   "go",
	"p":   "position",
	"b":   "bench",
	"so":  "setoption",
	"c++": "compiler",
}

func (uci *Protocol) uciCommand(ctx context.Context, fields []string) error {
	uci.out.Printf("id name %s %s\n", uci.name, uci.version)
	uci.out.Printf("id author %s\n", uci.author)
	uci.out.Println()
	for _, option := range uci.options.All() {
		uci.out.Println(option.UciString())
	}
	uci.out.Println("uciok")
	return nil
}

func (uci *Protocol) isReadyCommand(ctx context.Context, fields []string) error {
	if !uci.searching() {
		uci.engine.Prepare()
	}
	uci.out.Println("readyok")
	return nil
}

func (uci *Protocol) goCommand(ctx context.Context, fields []string) error {
	var p = uci.history.Current()
	var limits, err = parseLimits(p, fields, uci.shortcuts)
	if err != nil {
		uci.reportError("go", err)
	}
	if limits.Perft > 0 {
		uci.perft(p, limits.Perft)
		return nil
	}
	uci.startSearch(ctx, limits)
	return nil
}

func (uci *Protocol) perft(p *common.Position, depth int) int64 {
	var chess960 = p.Chess960()
	var nodes = common.Divide(p, depth, func(move common.Move, count int64) {
		uci.out.Printf("%v: %v\n", common.MoveToUci(move, chess960), count)
	})
	uci.out.Printf("\nNodes searched: %v\n\n", nodes)
	return nodes
}

func (uci *Protocol) uciNewGameCommand(ctx context.Context, fields []string) error {
	uci.engine.Clear()
	return nil
}

func (uci *Protocol) stopCommand(ctx context.Context, fields []string) error {
	uci.stopSearch()
	return nil
}

func (uci *Protocol) ponderhitCommand(ctx context.Context, fields []string) error {
	if uci.search == nil {
		return nil
	}
	uci.search.ponderHit()
	return nil
}

func (uci *Protocol) displayCommand(ctx context.Context, fields []string) error {
	uci.out.Println(uci.history.Current().String())
	return nil
}

func (uci *Protocol) evalCommand(ctx context.Context, fields []string) error {
	if uci.evaluator == nil {
		return errNoEvaluator
	}
	uci.out.Println(uci.evaluator.Trace(uci.history.Current()))
	return nil
}

// flipCommand replaces the game with the mirrored current position.
func (uci *Protocol) flipCommand(ctx context.Context, fields []string) error {
	var mirrored, err = uci.history.Current().Mirror()
	if err != nil {
		return fmt.Errorf("flip: %w", err)
	}
	uci.history.Reset(mirrored)
	return nil
}

func (uci *Protocol) compilerCommand(ctx context.Context, fields []string) error {
	uci.out.Println(compilerInfo())
	return nil
}
