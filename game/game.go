// Package game holds the vocabulary shared by the board and the playout engine:
// colours, players, points and moves.
package game

import (
	"fmt"
)

type Colour int32

const (
	None Colour = iota
	Black
	White

	// MaxColour is the number of distinct colours a point may hold. It is used to size
	// per-point histograms.
	MaxColour
)

func (cl Colour) Format(s fmt.State, c rune) {
	switch c {
	case 'v': // used in debug
		switch cl {
		case None:
			fmt.Fprint(s, "None")
		case Black:
			fmt.Fprint(s, "Black")
		case White:
			fmt.Fprint(s, "White")
		}
	case 's': // used in board games
		switch cl {
		case None:
			fmt.Fprint(s, "·")
		case Black:
			fmt.Fprint(s, "X")
		case White:
			fmt.Fprint(s, "O")
		}
	}
}

// Other returns the opposing stone colour. None has no opposite and is returned as is.
func (cl Colour) Other() Colour {
	switch cl {
	case Black:
		return White
	case White:
		return Black
	}
	return None
}

// Player represents a player. It's also a colour.
type Player Colour

const (
	BlackP = Player(Black)
	WhiteP = Player(White)
)

func (p Player) Format(s fmt.State, c rune) { Colour(p).Format(s, c) }

// IsValid checks that a player is indeed a player that can place stones
func (p Player) IsValid() bool { return p == BlackP || p == WhiteP }

// Opponent returns the colour of the opponent player
func Opponent(p Player) Player {
	switch p {
	case WhiteP:
		return BlackP
	case BlackP:
		return WhiteP
	}
	panic("Unreachable")
}

// PlayerMove is a tuple indicating the player and the move to be made.
type PlayerMove struct {
	Player
	Single
}

// Eq returns true if both are equal
func (p PlayerMove) Eq(other PlayerMove) bool {
	return p.Player == other.Player && p.Single == other.Single
}

func (p PlayerMove) Format(s fmt.State, c rune) { fmt.Fprintf(s, "%v@%d", p.Player, p.Single) }

// Coord represents a (row, col) coordinate.
//
// The Coord uses a standard computer cartesian coordinates
//		- (0, 0) represents the top left
//		- (18, 18) represents the bottom right of a 19x19 board
type Coord struct {
	X, Y int16
}

func (c Coord) Add(other Coord) Coord { return Coord{c.X + other.X, c.Y + other.Y} }

func (c Coord) Eq(other Coord) bool { return c.X == other.X && c.Y == other.Y }

// Single represents a coordinate as a single number, utilized in a rowmajor fashion.
//		- 0 represents the top left
//		- 18 represents the top right
//		- 19 represents (1, 0)
// 		- -1 represents the "pass" move
//		- -2 represents the "resignation" move
type Single int32

const (
	Pass   Single = -1
	Resign Single = -2
)

// IsResignation returns true when the coordinate represents a "resignation" move
func (c Single) IsResignation() bool { return c == Resign }

// IsPass returns true when the coordinate represents a "pass" move
func (c Single) IsPass() bool { return c == Pass }

// Zobrist is a type representing a "zobrist" hash.
type Zobrist uint32

// CoordConverter converts between the two coordinate representations.
type CoordConverter interface {
	Ltoi(Coord) Single
	Itol(Single) Coord
}

// GroupID identifies a chain of connected stones on a board. NoGroup is reported for empty points.
type GroupID int32

const NoGroup GroupID = 0

// Rand is the source of randomness used during playouts. *math/rand.Rand and *frand.RNG both satisfy it.
type Rand interface {
	Intn(n int) int
}
