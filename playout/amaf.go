package playout

import (
	"fmt"

	"github.com/gorgonia/playout/game"
)

// MaxGameLen is the capacity of an AmafMap's move record. It bounds the length of a playout.
const MaxGameLen = 600

// AmafMap is the All-Moves-As-First record of a single playout. The search tree uses it to update the
// statistics of moves that were played anywhere in the playout.
type AmafMap struct {
	// Map holds the colour that first played on each point.
	Map []game.Colour

	// Nakade counts, per point, how many times the other colour played on a point already claimed.
	// It is only updated when RecordNakade is set.
	Nakade       []int
	RecordNakade bool

	// Game is every non-pass move in the order it was played.
	Game []game.PlayerMove
}

// NewAmafMap creates an AmafMap for a board with the given number of points.
func NewAmafMap(points int, recordNakade bool) *AmafMap {
	return &AmafMap{
		Map:          make([]game.Colour, points),
		Nakade:       make([]int, points),
		RecordNakade: recordNakade,
		Game:         make([]game.PlayerMove, 0, MaxGameLen),
	}
}

// Record records a non-pass move of c at p.
//
// Record panics if the move record is full: a truncated record would silently corrupt the statistics
// of the search tree, and it means the playout length and MaxGameLen disagree.
func (a *AmafMap) Record(p game.Single, c game.Colour) {
	switch claim := a.Map[p]; {
	case claim == game.None || claim == c:
		a.Map[p] = c
	case a.RecordNakade:
		a.Nakade[p]++
	}

	if len(a.Game) >= MaxGameLen {
		panic(fmt.Sprintf("AMAF record overflow: more than %d moves in a playout", MaxGameLen))
	}
	a.Game = append(a.Game, game.PlayerMove{Player: game.Player(c), Single: p})
}

// Claim returns the colour that first played at p.
func (a *AmafMap) Claim(p game.Single) game.Colour { return a.Map[p] }

// Len returns the number of moves recorded.
func (a *AmafMap) Len() int { return len(a.Game) }

// Reset clears the record so that it can be reused for another playout.
func (a *AmafMap) Reset() {
	for i := range a.Map {
		a.Map[i] = game.None
		a.Nakade[i] = 0
	}
	a.Game = a.Game[:0]
}
