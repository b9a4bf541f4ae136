// Package gtp implements the Go Text Protocol on top of the playout engine. Besides the standard
// commands it answers final_score and final_status_list from ownership statistics, and exposes the
// ownermap itself.
package gtp

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"lukechampine.com/frand"

	"github.com/gorgonia/playout/game"
	wq "github.com/gorgonia/playout/game/wq"
	"github.com/gorgonia/playout/playout"
)

// Config configures an Engine.
type Config struct {
	Name     string  `yaml:"name"`
	Version  string  `yaml:"version"`
	Size     int     `yaml:"size"`
	Komi     float32 `yaml:"komi"`
	Playouts int     `yaml:"playouts"` // playouts per ownermap
}

func DefaultConfig() Config {
	return Config{
		Name:     "playout",
		Version:  "0.1",
		Size:     19,
		Komi:     7.5,
		Playouts: 1000,
	}
}

// Engine is a GTP engine. It is not safe for concurrent use: commands are executed one at a time.
type Engine struct {
	Config
	board   *wq.Board
	history []*wq.Board

	runner *playout.Runner
	rand   game.Rand

	// ownership statistics of the current position
	cached struct {
		points int
		hash   game.Zobrist
		moves  int
		komi   float32
		res    *playout.Result
	}

	known map[string]Command

	ch   chan string
	ret  chan string
	quit bool

	log zerolog.Logger
}

// New creates an engine. If known is nil, StandardLib is used.
func New(conf Config, runner *playout.Runner, known map[string]Command, logger zerolog.Logger) *Engine {
	if known == nil {
		known = StandardLib()
	}
	return &Engine{
		Config: conf,
		board:  wq.New(conf.Size, conf.Komi),
		runner: runner,
		rand:   frand.New(),
		known:  known,
		log:    logger,
	}
}

// Start runs the engine in its own goroutine. Commands are sent on input and responses arrive on output.
// output is closed after "quit".
func (e *Engine) Start() (input chan<- string, output <-chan string) {
	e.ch = make(chan string)
	e.ret = make(chan string)
	go e.start()
	return e.ch, e.ret
}

func (e *Engine) start() {
	defer close(e.ret)
	for cmd := range e.ch {
		resp, ok := e.Exec(cmd)
		if !ok {
			continue
		}
		e.ret <- resp
		if e.quit {
			return
		}
	}
}

// Run reads commands from r and writes responses to w until "quit" or the end of the input.
func (e *Engine) Run(r io.Reader, w io.Writer) error {
	s := bufio.NewScanner(r)
	for s.Scan() {
		resp, ok := e.Exec(s.Text())
		if !ok {
			continue
		}
		if _, err := io.WriteString(w, resp); err != nil {
			return errors.WithStack(err)
		}
		if e.quit {
			return nil
		}
	}
	return errors.WithStack(s.Err())
}

// Exec executes a single command and returns the response. Empty lines and comments have no response.
func (e *Engine) Exec(cmd string) (string, bool) {
	id, x, args, err := e.parse(cmd)
	if x == nil && err == nil {
		return "", false
	}
	if err != nil {
		e.log.Debug().Err(err).Str("cmd", cmd).Msg("Bad command")
		return handleErr(id, err), true
	}
	id, result, err := x.Do(id, args, e)
	if err != nil {
		e.log.Debug().Err(err).Str("cmd", cmd).Msg("Command failed")
	}
	return handleResult(id, result, err), true
}

// Board returns the current position.
func (e *Engine) Board() *wq.Board { return e.board }

// SetBoard replaces the current position. The undo history is cleared.
func (e *Engine) SetBoard(b *wq.Board) {
	e.board = b
	e.Size, _ = b.BoardSize()
	e.Komi = b.Komi()
	e.history = e.history[:0]
	e.forget()
}

// forget drops the cached ownership statistics.
func (e *Engine) forget() { e.cached.res = nil }

// ToMove returns the player whose turn it is.
func (e *Engine) ToMove() game.Player {
	if last := e.board.LastMove(); last.Player.IsValid() {
		return game.Opponent(last.Player)
	}
	return game.BlackP
}

func (e *Engine) apply(m game.PlayerMove) error {
	prev := e.board.Clone()
	if err := e.board.Apply(m); err != nil {
		return err
	}
	e.history = append(e.history, prev)
	return nil
}

// analyse returns the ownership statistics of the current position, running playouts if the position changed.
func (e *Engine) analyse() (*playout.Result, error) {
	if e.runner == nil {
		return nil, errors.New("No playout runner configured")
	}
	c := &e.cached
	if c.res != nil && c.points == e.board.Points() && c.hash == e.board.Hash() && c.moves == e.board.MoveNumber() && c.komi == e.board.Komi() {
		return c.res, nil
	}
	pos := e.board.Clone()
	res, err := e.runner.Run(context.Background(), func() playout.Board { return pos.Clone() }, e.ToMove(), e.Playouts)
	if err != nil {
		return nil, err
	}
	c.points, c.hash, c.moves, c.komi, c.res = e.board.Points(), e.board.Hash(), e.board.MoveNumber(), e.board.Komi(), res
	return res, nil
}

// refer to this
// https://www.lysator.liu.se/%7Egunnar/gtp/gtp2-spec-draft2/gtp2-spec.html#SECTION00030000000000000000
func (e *Engine) parse(cmd string) (id int, x Command, args []string, err error) {
	cmd = preprocess(cmd)
	tokens := strings.Fields(cmd)
	if len(tokens) == 0 {
		return -1, nil, nil, nil
	}
	if id, err = strconv.Atoi(tokens[0]); err == nil {
		// we've consumed ID
		tokens = tokens[1:]
	} else {
		// set err to nil because ID is optional
		err = nil
		id = -1
	}

	if len(tokens) == 0 {
		return id, nil, nil, nil // GNUGo some how does nothing when there are no tokens left. An ID may be passed in but it'll be ignored
	}

	var ok bool
	if x, ok = e.known[tokens[0]]; !ok {
		return id, nil, nil, errors.Errorf("Unknown command %q", tokens[0])
	}
	if len(tokens) > 1 {
		args = tokens[1:]
	}
	return
}

func preprocess(a string) string {
	if i := strings.IndexByte(a, '#'); i >= 0 {
		a = a[:i]
	}
	return strings.ToLower(strings.TrimSpace(a))
}

func handleErr(id int, err error) string {
	if id != -1 {
		return fmt.Sprintf("? %d %v\n\n", id, err)
	}
	return fmt.Sprintf("? %v\n\n", err)
}

func handleResult(id int, result string, err error) string {
	if err != nil {
		return handleErr(id, err)
	}

	if id != -1 {
		return fmt.Sprintf("= %d %v\n\n", id, result)
	}
	return fmt.Sprintf("= %v\n\n", result)
}
