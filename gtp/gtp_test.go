package gtp

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gorgonia/playout/game"
	wq "github.com/gorgonia/playout/game/wq"
	"github.com/gorgonia/playout/playout"
)

func newEngine(t *testing.T) *Engine {
	conf := playout.DefaultConfig()
	conf.Workers = 2
	conf.GameLen = 200
	conf.Seed = 1
	r, err := playout.NewRunner(conf, nil, zerolog.Nop())
	require.NoError(t, err)

	ec := DefaultConfig()
	ec.Name = "xx"
	ec.Version = "1"
	ec.Size = 5
	ec.Playouts = 50
	return New(ec, r, nil, zerolog.Nop())
}

func Test_General(t *testing.T) {
	assert := assert.New(t)
	e := newEngine(t)
	var x string

	ch, ret := e.Start()
	ch <- "version"
	x = <-ret
	assert.Equal("= 1\n\n", x)

	ch <- "known_command hello"
	x = <-ret
	assert.Equal("= false\n\n", x)

	ch <- "known_command name"
	x = <-ret
	assert.Equal("= true\n\n", x)

	ch <- "completelyUnheardOfCommand xxx"
	x = <-ret
	assert.Equal("? Unknown command \"completelyunheardofcommand\"\n\n", x)

	ch <- "3 protocol_version"
	x = <-ret
	assert.Equal("= 3 2\n\n", x)

	ch <- "# comments are ignored"
	ch <- "4 boardsize 26"
	x = <-ret
	assert.Equal("? 4 unacceptable size\n\n", x)

	ch <- "quit"
	x = <-ret
	assert.Equal("= \n\n", x)
	_, ok := <-ret
	assert.False(ok, "Output is closed after quit")
}

func TestPlay(t *testing.T) {
	e := newEngine(t)
	exec := func(cmd string) string {
		resp, ok := e.Exec(cmd)
		require.True(t, ok, cmd)
		return resp
	}

	assert.Equal(t, "= \n\n", exec("play b c3"))
	assert.Equal(t, game.Black, e.Board().At(12))
	assert.Equal(t, "? illegal move\n\n", exec("play w C3"))
	assert.Equal(t, "? Invalid colour \"red\"\n\n", exec("play red a1"))
	assert.Equal(t, game.WhiteP, e.ToMove())

	resp := exec("genmove w")
	require.True(t, strings.HasPrefix(resp, "= "), resp)
	pt, err := e.Board().ParseVertex(strings.TrimSpace(resp[2:]))
	require.NoError(t, err)
	assert.Equal(t, game.White, e.Board().At(pt))
	assert.Equal(t, 2, e.Board().MoveNumber())

	assert.Equal(t, "= \n\n", exec("undo"))
	assert.Equal(t, game.None, e.Board().At(pt))
	assert.Equal(t, "= \n\n", exec("undo"))
	assert.Equal(t, game.None, e.Board().At(12))
	assert.Equal(t, "? cannot undo\n\n", exec("undo"))

	assert.Equal(t, "= \n\n", exec("komi 6.5"))
	assert.Equal(t, float32(6.5), e.Board().Komi())
	assert.Equal(t, "= \n\n", exec("boardsize 9"))
	assert.Equal(t, 81, e.Board().Points())
	assert.Equal(t, float32(6.5), e.Board().Komi(), "Komi survives a new board size")

	resp = exec("showboard")
	assert.False(t, strings.Contains(strings.TrimSuffix(resp, "\n\n"), "\n\n"), "No empty lines inside a response")
	assert.Equal(t, 9, strings.Count(resp, "⎢"))
}

func TestFinalStatus(t *testing.T) {
	e := newEngine(t)
	b, err := wq.Parse(`
		. . O X .
		X X X X X
		X X X X X
		X X X X X
		X X X X X`, 0.5)
	require.NoError(t, err)
	e.SetBoard(b)

	exec := func(cmd string) string {
		resp, ok := e.Exec(cmd)
		require.True(t, ok, cmd)
		return resp
	}
	assert.Equal(t, "= C5\n\n", exec("final_status_list dead"))
	alive := exec("final_status_list alive")
	assert.Contains(t, alive, "A4")
	assert.NotContains(t, alive, "C5")
	assert.Equal(t, "= \n\n", exec("final_status_list seki"))
	assert.Equal(t, "= B+24.5\n\n", exec("final_score"))

	own := exec("ownermap")
	assert.Equal(t, 25, strings.Count(own, "1.00"))
	assert.Equal(t, "? Invalid status \"zombie\"\n\n", exec("final_status_list zombie"))
}

func TestOwnermapBoardSize(t *testing.T) {
	e := newEngine(t)
	exec := func(cmd string) string {
		resp, ok := e.Exec(cmd)
		require.True(t, ok, cmd)
		return resp
	}
	values := func(resp string) int { return len(strings.Fields(strings.TrimPrefix(resp, "="))) }

	assert.Equal(t, 25, values(exec("ownermap")))
	assert.Equal(t, "= \n\n", exec("boardsize 3"))
	assert.Equal(t, 9, values(exec("ownermap")), "A new board size is analysed afresh")
	assert.Equal(t, "= \n\n", exec("boardsize 5"))
	assert.Equal(t, 25, values(exec("ownermap")))
}

func TestRun(t *testing.T) {
	e := newEngine(t)
	var out bytes.Buffer
	in := strings.NewReader("1 name\n\n2 play b a1\nquit\n3 name\n")
	require.NoError(t, e.Run(in, &out))
	assert.Equal(t, "= 1 xx\n\n= 2 \n\n= \n\n", out.String())
}

func TestListCommands(t *testing.T) {
	e := newEngine(t)
	resp, _ := e.Exec("list_commands")
	cmds := strings.Split(strings.TrimSpace(strings.TrimPrefix(resp, "=")), "\n")
	assert.Len(t, cmds, len(StandardLib()))
	assert.Contains(t, cmds, "final_status_list")
}
