package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/rs/zerolog"

	"github.com/ChizhovVadim/CounterUci/internal/config"
	"github.com/ChizhovVadim/CounterUci/internal/evalbuilder"
	"github.com/ChizhovVadim/CounterUci/internal/logging"
	"github.com/ChizhovVadim/CounterUci/pkg/engine"
	"github.com/ChizhovVadim/CounterUci/pkg/uci"
)

/*
Counter Copyright (C) 2017-2023 Vadim Chizhov
This program is free software: you can redistribute it and/or modify it under the terms of the GNU General Public License as published by the Free Software Foundation, either version 3 of the License, or (at your option) any later version.
This program is distributed in the hope that it will be useful, but WITHOUT ANY WARRANTY; without even the implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the GNU General Public License for more details.
You should have received a copy of the GNU General Public License along with this program. If not, see <http://www.gnu.org/licenses/>.
*/

const (
	name   = "Counter"
	author = "Vadim Chizhov"
)

var (
	versionName = "dev"
	buildDate   = "(null)"
	gitRevision = "(null)"
)

func main() {
	var cfg, err = config.Load(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	logger, err := logging.New(cfg.LogLevel, os.Stderr)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	if err := run(cfg, logger); err != nil {
		logger.Error().Err(err).Msg("session failed")
		os.Exit(1)
	}
}

func run(cfg config.Config, logger zerolog.Logger) error {
	logger.Info().
		Str("name", name).
		Str("version", versionName).
		Str("buildDate", buildDate).
		Str("gitRevision", gitRevision).
		Str("runtime", runtime.Version()).
		Str("goarch", runtime.GOARCH).
		Str("goos", runtime.GOOS).
		Int("numCPU", runtime.NumCPU()).
		Msg("started")

	var evalBuilder, err = evalbuilder.Get(cfg.Eval)
	if err != nil {
		return err
	}
	var eng = engine.NewEngine(func() engine.Evaluator { return evalBuilder() })
	eng.Hash = cfg.Hash
	eng.Threads = cfg.Threads
	var ponder bool

	var protocol = uci.New(name, author, versionName, eng, evalBuilder(),
		[]uci.Option{
			&uci.IntOption{Name: "Hash", Min: 1, Max: 1 << 16, Value: &eng.Hash,
				OnChange: func(int) { eng.Prepare() }},
			&uci.ButtonOption{Name: "Clear Hash", OnPress: eng.Clear},
			&uci.IntOption{Name: "Threads", Min: 1, Max: 512, Value: &eng.Threads},
			&uci.BoolOption{Name: "Ponder", Value: &ponder},
			&uci.IntOption{Name: "Move Overhead", Min: 0, Max: 5000, Value: &eng.MoveOverhead},
		},
	)
	protocol.SetLogger(logger)
	if cfg.Shortcuts {
		protocol.EnableShortcuts()
	}

	var ctx, stop = signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if len(cfg.Command) != 0 {
		return protocol.RunOnce(ctx, cfg.Command)
	}
	err = protocol.Run(ctx, os.Stdin)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
