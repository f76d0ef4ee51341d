package uci

import (
	"bufio"
	"context"
	"errors"
	"io"
	"os"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog"

	"github.com/ChizhovVadim/CounterUci/pkg/common"
)

type Engine interface {
	Prepare()
	Clear()
	Search(ctx context.Context, searchParams common.SearchParams) common.SearchInfo
}

// Evaluator explains the static evaluation for the eval command.
type Evaluator interface {
	Trace(p *common.Position) string
}

var (
	errSearchRunning = errors.New("search still run")
	errNoEvaluator   = errors.New("evaluation trace not available")
)

type Protocol struct {
	name        string
	author      string
	version     string
	engine      Engine
	evaluator   Evaluator
	options     *OptionTable
	history     History
	out         *syncWriter
	diag        *syncWriter
	logger      zerolog.Logger
	shortcuts   bool
	commands    map[string]command
	search      *searchState
	cleanSearch bool
	scoreOutput string
}

type command struct {
	handler func(ctx context.Context, fields []string) error
	// concurrent commands are served while a search runs
	concurrent bool
	// terminal commands end the session loop
	terminal bool
}

type searchState struct {
	cancel    context.CancelFunc
	done      chan struct{}
	pondering atomic.Bool
	ponderhit chan struct{}
	hitOnce   sync.Once
	result    common.SearchInfo
}

func New(name, author, version string, engine Engine, evaluator Evaluator, options []Option) *Protocol {
	var initPosition, err = common.NewPositionFromFEN(common.InitialPositionFen)
	if err != nil {
		panic(err)
	}
	var uci = &Protocol{
		name:        name,
		author:      author,
		version:     version,
		engine:      engine,
		evaluator:   evaluator,
		out:         newSyncWriter(os.Stdout),
		diag:        newSyncWriter(os.Stderr),
		logger:      zerolog.Nop(),
		scoreOutput: common.ScoreCentipawn,
	}
	uci.history.Reset(initPosition)
	uci.options = NewOptionTable(options...)
	uci.options.Add(&ComboOption{
		Name:  "Score Output",
		Vars:  []string{common.ScoreCentipawn, common.ScorePercentGUI, common.ScorePercent},
		Value: &uci.scoreOutput,
	})
	uci.options.Add(&BoolOption{Name: "Clean_Search", Value: &uci.cleanSearch})
	uci.commands = uci.vocabulary()
	return uci
}

// SetOutput redirects protocol text to out and bench progress to diag.
func (uci *Protocol) SetOutput(out, diag io.Writer) {
	uci.out = newSyncWriter(out)
	uci.diag = newSyncWriter(diag)
}

func (uci *Protocol) SetLogger(logger zerolog.Logger) {
	uci.logger = logger
}

// EnableShortcuts adds the abbreviated command vocabulary.
func (uci *Protocol) EnableShortcuts() {
	uci.shortcuts = true
	uci.commands = uci.vocabulary()
}

// Run serves commands from input until quit, end of input or ctx cancellation.
// It returns after the last search has printed its bestmove.
func (uci *Protocol) Run(ctx context.Context, input io.Reader) error {
	var reader = newLineReader(input)
	defer reader.Close()
	defer uci.waitSearch()

	for {
		select {
		case <-ctx.Done():
			uci.stopSearch()
			return ctx.Err()
		case commandLine, ok := <-reader.lines:
			if !ok {
				uci.stopSearch()
				return reader.Err()
			}
			if uci.execute(ctx, commandLine) {
				return nil
			}
		}
	}
}

// RunOnce executes a single command, waiting for a search it starts.
func (uci *Protocol) RunOnce(ctx context.Context, args []string) error {
	defer uci.waitSearch()
	uci.execute(ctx, strings.Join(args, " "))
	return nil
}

// execute dispatches one command line and reports whether the session ends.
func (uci *Protocol) execute(ctx context.Context, commandLine string) bool {
	var fields = strings.Fields(commandLine)
	if len(fields) == 0 {
		return false
	}
	var commandName = fields[0]
	var cmd, found = uci.commands[commandName]
	if !found {
		uci.out.Println("Unknown command: " + commandLine)
		uci.logger.Debug().Str("command", commandLine).Msg("unknown command")
		return false
	}
	if !cmd.concurrent && uci.searching() {
		uci.reportError(commandName, errSearchRunning)
		return false
	}
	if err := cmd.handler(ctx, fields[1:]); err != nil {
		uci.reportError(commandName, err)
	}
	return cmd.terminal
}

func (uci *Protocol) reportError(commandName string, err error) {
	uci.out.Println("info string " + err.Error())
	uci.logger.Warn().Err(err).Str("command", commandName).Msg("command failed")
}

type lineReader struct {
	lines chan string
	quit  chan struct{}
	err   error
}

func newLineReader(input io.Reader) *lineReader {
	var r = &lineReader{
		lines: make(chan string),
		quit:  make(chan struct{}),
	}
	go func() {
		defer close(r.lines)
		var scanner = bufio.NewScanner(input)
		for scanner.Scan() {
			select {
			case r.lines <- scanner.Text():
			case <-r.quit:
				return
			}
		}
		r.err = scanner.Err()
	}()
	return r
}

// Err is valid after lines is closed.
func (r *lineReader) Err() error {
	return r.err
}

func (r *lineReader) Close() {
	close(r.quit)
}

func (uci *Protocol) searching() bool {
	if uci.search == nil {
		return false
	}
	select {
	case <-uci.search.done:
		return false
	default:
		return true
	}
}

func (uci *Protocol) stopSearch() {
	if uci.search != nil {
		uci.search.cancel()
	}
}

func (uci *Protocol) waitSearch() {
	if uci.search != nil {
		<-uci.search.done
	}
}

func (uci *Protocol) scoreFormatter() common.ScoreFormatter {
	var formatter = common.DefaultScoreFormatter
	formatter.Mode = uci.scoreOutput
	return formatter
}

// startSearch runs the engine in its own goroutine. The bestmove of an infinite
// or ponder search is held until stop, or ponderhit for a ponder search.
func (uci *Protocol) startSearch(ctx context.Context, limits common.LimitsType) *searchState {
	var searchCtx, cancel = context.WithCancel(ctx)
	var s = &searchState{
		cancel:    cancel,
		done:      make(chan struct{}),
		ponderhit: make(chan struct{}),
	}
	s.pondering.Store(limits.Ponder)
	uci.search = s

	var positions = uci.history.Positions()
	var formatter = uci.scoreFormatter()
	var chess960 = positions[len(positions)-1].Chess960()
	// depth of the last info line, -1 before the first one
	var reported atomic.Int64
	reported.Store(-1)
	var params = common.SearchParams{
		Positions: positions,
		Limits:    limits,
		Progress: func(si common.SearchInfo) {
			reported.Store(int64(si.Depth))
			uci.out.Println(searchInfoToUci(si, formatter, chess960))
		},
	}
	if limits.Ponder {
		params.Pondering = &s.pondering
	}
	uci.logger.Debug().
		Str("fen", positions[len(positions)-1].FEN()).
		Interface("limits", limits).
		Msg("search started")

	go func() {
		defer close(s.done)
		defer cancel()
		var result = uci.engine.Search(searchCtx, params)
		s.hold(searchCtx, limits)
		s.result = result
		if reported.Load() != int64(result.Depth) {
			uci.out.Println(searchInfoToUci(result, formatter, chess960))
		}
		uci.out.Println(bestMoveToUci(result, chess960))
		uci.logger.Debug().
			Int("depth", result.Depth).
			Int64("nodes", result.Nodes).
			Dur("time", result.Time).
			Msg("search finished")
	}()
	return s
}

func (s *searchState) hold(ctx context.Context, limits common.LimitsType) {
	if limits.Infinite {
		<-ctx.Done()
		return
	}
	if s.pondering.Load() {
		select {
		case <-ctx.Done():
		case <-s.ponderhit:
		}
	}
}

func (s *searchState) ponderHit() {
	s.pondering.Store(false)
	s.hitOnce.Do(func() {
		close(s.ponderhit)
	})
}
