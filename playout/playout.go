// Package playout is the statistical evaluation engine of the search: it plays random games to the end
// ("playouts"), accumulates who owned each point at the end of them and turns those statistics into a
// life and death verdict for every group on the board.
//
// Playouts are independent of each other. Each one mutates the board it is given, so callers hand
// every playout a private copy. Ownermaps are private to a worker until they are merged.
package playout

import (
	"github.com/gorgonia/playout/game"
)

// MinGameLen is the minimum number of moves a playout is allowed, however close the position is to the
// configured game length.
const MinGameLen = 10

// Board is what a playout needs from a board. Implementations are not expected to be safe for concurrent use.
type Board interface {
	Points() int                   // number of points on the board
	At(p game.Single) game.Colour  // colour of the stone at p
	MoveNumber() int               // moves played so far, passes included
	LastMove() game.PlayerMove     // the last move played
	Apply(m game.PlayerMove) error // plays m. Illegal moves return an error and leave the board untouched

	// PlayRandom plays a random legal move for p that permit accepts, passing when there is none.
	// The point played is returned.
	PlayRandom(p game.Player, permit func(game.Single) bool, r game.Rand) game.Single

	FastScore() float32                    // area score, positive when white is ahead
	OnePointEye(p game.Single) game.Colour // colour of the one-point eye at p, if any
	GroupAt(p game.Single) game.GroupID    // chain at p, game.NoGroup for empty points
}

// Tactics is implemented by boards that can answer local tactical questions. Policies that need it
// degrade to making no suggestions when the board does not implement it.
type Tactics interface {
	Adjacent(p game.Single) []game.Single
	Liberties(p game.Single) []game.Single
}

// TacticalBoard is a Board that also implements Tactics.
type TacticalBoard interface {
	Board
	Tactics
}

// Policy decides the moves of a playout.
type Policy interface {
	// Choose returns an urgent move for p, or game.Pass if it has nothing to suggest.
	Choose(b Board, p game.Player) game.Single

	// Permit reports whether p may play at pt when a random move is picked.
	Permit(b Board, p game.Player, pt game.Single) bool
}
