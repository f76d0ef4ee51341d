package uci

import (
	"context"
	"strconv"
	"strings"
	"time"
)

type BenchSummary struct {
	// Positions counts go and eval entries.
	Positions int
	Nodes     int64
	Elapsed   time.Duration
}

func (uci *Protocol) benchCommand(ctx context.Context, fields []string) error {
	var commands, err = BenchCommands(uci.history.Current(), fields)
	if err != nil {
		return err
	}
	_, err = uci.RunBench(ctx, commands)
	return err
}

// RunBench executes commands with the regular handlers, waiting for every search.
// Progress and the summary go to the diagnostic stream.
func (uci *Protocol) RunBench(ctx context.Context, commands []string) (BenchSummary, error) {
	var total = 0
	for _, line := range commands {
		if verb := firstField(line); verb == "go" || verb == "eval" {
			total++
		}
	}

	var summary BenchSummary
	var start = time.Now()
	for _, line := range commands {
		if err := ctx.Err(); err != nil {
			return summary, err
		}
		var fields = strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		var err error
		switch fields[0] {
		case "go", "eval":
			summary.Positions++
			uci.diag.Printf("\nPosition: %v/%v (%v)\n", summary.Positions, total, uci.history.Current().FEN())
			if fields[0] == "eval" {
				err = uci.evalCommand(ctx, fields[1:])
				break
			}
			var lapStart = time.Now()
			var nodes = uci.benchSearch(ctx, fields[1:])
			summary.Nodes += nodes
			uci.diag.Println("Nodes/Second: " + formatNps(nodes, time.Since(lapStart).Milliseconds()+1))
		case "setoption":
			err = uci.setOptionCommand(ctx, fields[1:])
		case "position":
			err = uci.positionCommand(ctx, fields[1:])
		case "ucinewgame":
			err = uci.uciNewGameCommand(ctx, fields[1:])
			start = time.Now()
		case "s", "set":
			if uci.shortcuts {
				err = uci.setCommand(ctx, fields[1:])
			}
		}
		if err != nil {
			uci.reportError(fields[0], err)
		}
	}

	var elapsed = time.Since(start).Milliseconds() + 1
	summary.Elapsed = time.Duration(elapsed) * time.Millisecond
	uci.diag.Println("\n===========================")
	uci.diag.Printf("Total time (ms) : %v\n", elapsed)
	uci.diag.Printf("Nodes searched  : %v\n", summary.Nodes)
	uci.diag.Printf("Nodes/second    : %v\n", formatNps(summary.Nodes, elapsed))
	return summary, nil
}

func (uci *Protocol) benchSearch(ctx context.Context, fields []string) int64 {
	var p = uci.history.Current()
	var limits, err = parseLimits(p, fields, uci.shortcuts)
	if err != nil {
		uci.reportError("go", err)
	}
	if limits.Perft > 0 {
		return uci.perft(p, limits.Perft)
	}
	var s = uci.startSearch(ctx, limits)
	<-s.done
	return s.result.Nodes
}

// formatNps switches to thousands once the rate reaches ten million.
func formatNps(nodes, ms int64) string {
	var nps = nodes * 1000 / ms
	if nps >= 10_000_000 {
		return strconv.FormatInt(nps/1000, 10) + "k"
	}
	return strconv.FormatInt(nps, 10)
}

func firstField(line string) string {
	var fields = strings.Fields(line)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}
