package gtp

import (
	"bytes"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/gorgonia/playout/encoding"
	"github.com/gorgonia/playout/game"
	wq "github.com/gorgonia/playout/game/wq"
	"github.com/gorgonia/playout/playout"
)

// MaxBoardSize is the largest board GTP vertices can name.
const MaxBoardSize = 25

type Command interface {
	Do(id int, args []string, e *Engine) (int, string, error)
}

type stdlib func(e *Engine) string

type stdlib2 func(e *Engine, args []string) (string, error)

func (f stdlib) Do(id int, args []string, e *Engine) (int, string, error) {
	str := f(e)
	return id, str, nil
}

func (f stdlib2) Do(id int, args []string, e *Engine) (int, string, error) {
	str, err := f(e, args)
	return id, str, err
}

func protocolVersion(e *Engine) string { return "2" }
func name(e *Engine) string            { return e.Name }
func version(e *Engine) string         { return e.Version }

func listCommands(e *Engine) string {
	cmds := make([]string, 0, len(e.known))
	for c := range e.known {
		cmds = append(cmds, c)
	}
	sort.Strings(cmds)
	return strings.Join(cmds, "\n")
}

func quit(e *Engine) string      { e.quit = true; return "" }
func showboard(e *Engine) string { return strings.TrimRight(fmt.Sprintf("\n%s", e.board), "\n") }

func clearBoard(e *Engine) string {
	e.board.Reset()
	e.history = e.history[:0]
	e.forget()
	return ""
}

func undo(e *Engine, args []string) (string, error) {
	if len(e.history) == 0 {
		return "", errors.New("cannot undo")
	}
	last := len(e.history) - 1
	e.board, e.history = e.history[last], e.history[:last]
	return "", nil
}

func knownCommand(e *Engine, args []string) (string, error) {
	if len(args) == 0 {
		return "", errors.New("Not enough arguments for \"known_command\"")
	}
	if _, ok := e.known[args[0]]; ok {
		return "true", nil
	}
	return "false", nil
}

func boardSize(e *Engine, args []string) (string, error) {
	if len(args) == 0 {
		return "", errors.New("Not enough arguments for \"boardsize\"")
	}
	size, err := strconv.Atoi(args[0])
	if err != nil {
		return "", errors.WithMessage(err, "Unable to parse first argument of boardsize")
	}
	if size < 2 || size > MaxBoardSize {
		return "", errors.New("unacceptable size")
	}
	e.SetBoard(wq.New(size, e.Komi))
	return "", nil
}

func komi(e *Engine, args []string) (string, error) {
	if len(args) == 0 {
		return "", errors.New("Not enough arguments for \"komi\"")
	}

	komi, err := strconv.ParseFloat(args[0], 32)
	if err != nil {
		return "", errors.WithMessage(err, "Unable to parse komi argument")
	}
	e.Komi = float32(komi)
	e.board.SetKomi(e.Komi) // accept komi even if ridiculous
	return "", nil
}

func parseColour(s string) (game.Player, error) {
	switch s {
	case "b", "black":
		return game.BlackP, nil
	case "w", "white":
		return game.WhiteP, nil
	}
	return game.Player(game.None), errors.Errorf("Invalid colour %q", s)
}

func play(e *Engine, args []string) (string, error) {
	if len(args) < 2 {
		return "", errors.New("Not enough arguments for \"play\"")
	}
	p, err := parseColour(args[0])
	if err != nil {
		return "", err
	}
	pt, err := e.board.ParseVertex(args[1])
	if err != nil {
		return "", err
	}
	if pt.IsResignation() {
		return "", nil
	}
	if err := e.apply(game.PlayerMove{Player: p, Single: pt}); err != nil {
		if wq.IsMoveError(err) {
			return "", errors.New("illegal move")
		}
		return "", err
	}
	return "", nil
}

// genmove plays the playout policy's move: its urgent move if it is legal, otherwise a random one.
func genmove(e *Engine, args []string) (string, error) {
	if len(args) == 0 {
		return "", errors.New("Not enough arguments for \"genmove\"")
	}
	p, err := parseColour(args[0])
	if err != nil {
		return "", err
	}
	pol := playout.Policy(playout.Light{})
	if e.runner != nil {
		if pol, err = playout.PolicyByName(e.runner.Policy); err != nil {
			return "", err
		}
	}

	prev := e.board.Clone()
	pt := pol.Choose(e.board, p)
	if pt.IsPass() || e.board.Apply(game.PlayerMove{Player: p, Single: pt}) != nil {
		permit := func(pt game.Single) bool { return pol.Permit(e.board, p, pt) }
		pt = e.board.PlayRandom(p, permit, e.rand)
	}
	e.history = append(e.history, prev)
	return e.board.Vertex(pt), nil
}

func finalScore(e *Engine, args []string) (string, error) {
	res, err := e.analyse()
	if err != nil {
		return "", err
	}
	var area [game.MaxColour]float32
	for i := 0; i < res.Ownermap.Points(); i++ {
		area[playout.JudgePoint(res.Ownermap, game.Single(i), e.runner.Threshold).Colour()]++
	}
	score := e.board.Komi() + area[game.White] - area[game.Black]
	switch {
	case score > 0:
		return "W+" + strconv.FormatFloat(float64(score), 'f', -1, 32), nil
	case score < 0:
		return "B+" + strconv.FormatFloat(float64(-score), 'f', -1, 32), nil
	}
	return "0", nil
}

// finalStatusList lists the groups in the requested state, one group per line. Groups whose fate the
// playouts could not settle are reported as seki.
func finalStatusList(e *Engine, args []string) (string, error) {
	if len(args) == 0 {
		return "", errors.New("Not enough arguments for \"final_status_list\"")
	}
	var gs playout.GroupState
	switch args[0] {
	case "alive":
		gs = playout.Alive
	case "dead":
		gs = playout.Dead
	case "seki":
		gs = playout.Unknown
	default:
		return "", errors.Errorf("Invalid status %q", args[0])
	}

	res, err := e.analyse()
	if err != nil {
		return "", err
	}
	groups := make(map[game.GroupID][]string)
	for _, p := range res.Judgement.Stones(e.board, gs) {
		g := e.board.GroupAt(p)
		groups[g] = append(groups[g], e.board.Vertex(p))
	}
	var buf bytes.Buffer
	for i, g := range res.Judgement.Groups(gs) {
		if i > 0 {
			buf.WriteByte('\n')
		}
		buf.WriteString(strings.Join(groups[g], " "))
	}
	return buf.String(), nil
}

// ownermap prints, for every point, the fraction of playouts black owned it minus the fraction white owned it.
func ownermap(e *Engine, args []string) (string, error) {
	res, err := e.analyse()
	if err != nil {
		return "", err
	}
	balance := encoding.Balance(res.Ownermap)
	var buf bytes.Buffer
	for i, v := range balance {
		if i%e.Size == 0 {
			buf.WriteByte('\n')
		} else {
			buf.WriteByte(' ')
		}
		fmt.Fprintf(&buf, "%5.2f", v)
	}
	return buf.String(), nil
}

func StandardLib() map[string]Command {
	return map[string]Command{
		"protocol_version": stdlib(protocolVersion),
		"name":             stdlib(name),
		"version":          stdlib(version),
		"list_commands":    stdlib(listCommands),
		"quit":             stdlib(quit),
		"clear_board":      stdlib(clearBoard),
		"showboard":        stdlib(showboard),

		"known_command":     stdlib2(knownCommand),
		"boardsize":         stdlib2(boardSize),
		"komi":              stdlib2(komi),
		"play":              stdlib2(play),
		"genmove":           stdlib2(genmove),
		"undo":              stdlib2(undo),
		"final_score":       stdlib2(finalScore),
		"final_status_list": stdlib2(finalStatusList),
		"ownermap":          stdlib2(ownermap),
	}
}
