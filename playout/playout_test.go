package playout

import (
	"math/rand"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gorgonia/playout/game"
	wq "github.com/gorgonia/playout/game/wq"
)

// scripted is a Board whose random moves are given in advance. Once they run out it passes.
type scripted struct {
	colours []game.Colour
	moves   int
	last    game.PlayerMove
	score   float32

	random      []game.Single
	randomCalls int
	illegal     map[game.Single]bool
	permitted   []bool
}

func newScripted(points int, score float32, random ...game.Single) *scripted {
	return &scripted{
		colours: make([]game.Colour, points),
		last:    game.PlayerMove{Player: game.Player(game.None), Single: game.Pass},
		score:   score,
		random:  random,
		illegal: make(map[game.Single]bool),
	}
}

func (s *scripted) Points() int                  { return len(s.colours) }
func (s *scripted) At(p game.Single) game.Colour { return s.colours[p] }
func (s *scripted) MoveNumber() int              { return s.moves }
func (s *scripted) LastMove() game.PlayerMove    { return s.last }
func (s *scripted) FastScore() float32           { return s.score }
func (s *scripted) GroupAt(p game.Single) game.GroupID {
	if s.colours[p] == game.None {
		return game.NoGroup
	}
	return game.GroupID(p + 1)
}
func (s *scripted) OnePointEye(p game.Single) game.Colour { return game.None }

func (s *scripted) play(m game.PlayerMove) {
	if !m.IsPass() {
		s.colours[m.Single] = game.Colour(m.Player)
	}
	s.moves++
	s.last = m
}

func (s *scripted) Apply(m game.PlayerMove) error {
	if s.illegal[m.Single] {
		return errors.Errorf("%v is illegal", m)
	}
	s.play(m)
	return nil
}

func (s *scripted) PlayRandom(p game.Player, permit func(game.Single) bool, r game.Rand) game.Single {
	s.randomCalls++
	pt := game.Pass
	if len(s.random) > 0 {
		pt, s.random = s.random[0], s.random[1:]
	}
	if !pt.IsPass() {
		s.permitted = append(s.permitted, permit(pt))
	}
	s.play(game.PlayerMove{Player: p, Single: pt})
	return pt
}

// urgent is a policy that suggests the given moves in order.
type urgent struct {
	moves  []game.Single
	permit bool
}

func (u *urgent) Choose(b Board, p game.Player) game.Single {
	if len(u.moves) == 0 {
		return game.Pass
	}
	pt := u.moves[0]
	u.moves = u.moves[1:]
	return pt
}

func (u *urgent) Permit(b Board, p game.Player, pt game.Single) bool { return u.permit }

func TestSimulate_Sign(t *testing.T) {
	var signTests = []struct {
		start game.Player
		score float32
		res   int
	}{
		{game.WhiteP, 3.5, 7},
		{game.BlackP, 3.5, -7},
		{game.WhiteP, -6.5, -13},
		{game.BlackP, -6.5, 13},
		{game.BlackP, 0, 0},
		{game.WhiteP, 1.75, 3},
		{game.WhiteP, -1.75, -3},
		{game.BlackP, 1.75, -3},
	}
	for _, st := range signTests {
		b := newScripted(4, st.score)
		res := Simulate(b, st.start, 20, nil, nil, Light{}, rand.New(rand.NewSource(1)))
		assert.Equal(t, st.res, res, "%v to play, score %v", st.start, st.score)
	}
}

func TestSimulate_Passes(t *testing.T) {
	b := newScripted(4, 0)
	Simulate(b, game.BlackP, 20, nil, nil, Light{}, nil)
	assert.Equal(t, 2, b.randomCalls, "Two passes in a row end the game")

	// a pass already on the board counts
	b = newScripted(4, 0)
	b.play(game.PlayerMove{Player: game.WhiteP, Single: game.Pass})
	Simulate(b, game.BlackP, 20, nil, nil, Light{}, nil)
	assert.Equal(t, 1, b.randomCalls)

	// a stone resets the count
	b = newScripted(4, 0, game.Pass, 1, game.Pass, 2)
	Simulate(b, game.BlackP, 20, nil, nil, Light{}, nil)
	assert.Equal(t, 6, b.randomCalls)
}

func TestSimulate_GameLength(t *testing.T) {
	moves := make([]game.Single, 100)
	for i := range moves {
		moves[i] = game.Single(i)
	}
	b := newScripted(100, 0, moves...)
	Simulate(b, game.BlackP, 30, nil, nil, Light{}, nil)
	assert.Equal(t, 30, b.moves)

	// the floor applies when the board is already past the game length
	b = newScripted(100, 0, moves[50:]...)
	b.moves = 45
	Simulate(b, game.BlackP, 30, nil, nil, Light{}, nil)
	assert.Equal(t, 45+MinGameLen, b.moves)
}

func TestSimulate_Urgent(t *testing.T) {
	b := newScripted(9, 0, 5)
	b.illegal[3] = true
	pol := &urgent{moves: []game.Single{2, 3}, permit: false}
	amaf := NewAmafMap(9, false)

	Simulate(b, game.BlackP, 20, amaf, nil, pol, nil)

	// 2 is played as is. 3 is illegal so a random move (5) is played instead, then both pass.
	assert.Equal(t, game.Black, b.colours[2])
	assert.Equal(t, game.White, b.colours[5])
	assert.Equal(t, game.None, b.colours[3])
	assert.Equal(t, 3, b.randomCalls)
	assert.Equal(t, []bool{false}, b.permitted, "The policy's permit is consulted for random moves")

	want := []game.PlayerMove{
		{Player: game.BlackP, Single: 2},
		{Player: game.WhiteP, Single: 5},
	}
	assert.Equal(t, want, amaf.Game)
}

func TestSimulate_Ownermap(t *testing.T) {
	b := newScripted(3, 0, 0, 1)
	own := NewOwnermap(3)
	Simulate(b, game.BlackP, 20, nil, own, Light{}, nil)
	assert.Equal(t, 1, own.Playouts)
	assert.Equal(t, [game.MaxColour]int{0, 1, 0}, own.Map[0])
	assert.Equal(t, [game.MaxColour]int{0, 0, 1}, own.Map[1])
	assert.Equal(t, [game.MaxColour]int{1, 0, 0}, own.Map[2])
}

func TestSimulate_9x9(t *testing.T) {
	r := rand.New(rand.NewSource(1337))
	for _, pol := range []Policy{Light{}, Capture{}} {
		for i := 0; i < 20; i++ {
			b := wq.New(9, 0)
			own := NewOwnermap(b.Points())
			amaf := NewAmafMap(b.Points(), true)
			res := Simulate(b, game.BlackP, 20, amaf, own, pol, r)

			assert.True(t, b.MoveNumber() >= MinGameLen && b.MoveNumber() <= 20, "%d moves played", b.MoveNumber())
			assert.True(t, res <= 2*81 && res >= -2*81, "result %d", res)
			assert.Equal(t, 0, res%2, "Results are doubled scores")
			assert.Equal(t, 1, own.Playouts)
			assert.True(t, amaf.Len() <= b.MoveNumber())
		}
	}

	// played to the end
	for i := 0; i < 10; i++ {
		b := wq.New(9, 7.5)
		res := Simulate(b, game.WhiteP, 400, nil, nil, Light{}, r)
		require.True(t, b.MoveNumber() <= 400)
		assert.NotZero(t, res%2, "Komi of 7.5 makes the doubled score odd. Got %d", res)
		if b.MoveNumber() < 400 {
			assert.True(t, b.LastMove().IsPass())
		}
	}
}
