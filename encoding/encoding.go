// Package encoding turns boards and ownership statistics into numbers: flat float32 vectors,
// 3-plane tensors and CSV tables.
package encoding

import (
	"github.com/pkg/errors"
	"gorgonia.org/tensor"
	"gorgonia.org/vecf32"

	"github.com/gorgonia/playout/game"
	"github.com/gorgonia/playout/playout"
)

// EncodeBoard encodes black as 1, white as -1 for each stone placed
func EncodeBoard(a []game.Colour, prealloc []float32) []float32 {
	if len(prealloc) != len(a) {
		prealloc = make([]float32, len(a))
	}

	for i := range a {
		switch a[i] {
		case game.Black:
			prealloc[i] = 1
		case game.White:
			prealloc[i] = -1
		default:
			prealloc[i] = 0
		}
	}
	return prealloc
}

// Fractions returns, for every point, the fraction of playouts in which it was owned by c.
func Fractions(o *playout.Ownermap, c game.Colour, prealloc []float32) []float32 {
	if len(prealloc) != o.Points() {
		prealloc = make([]float32, o.Points())
	}
	for i := range o.Map {
		prealloc[i] = float32(o.Map[i][c])
	}
	if o.Playouts > 0 {
		vecf32.Scale(prealloc, 1/float32(o.Playouts))
	}
	return prealloc
}

// Balance returns, for every point, the fraction of playouts black owned it minus the fraction white owned it.
// 1 is certain black territory and -1 certain white territory.
func Balance(o *playout.Ownermap) []float32 {
	black := Fractions(o, game.Black, nil)
	white := Fractions(o, game.White, nil)
	vecf32.Sub(black, white)
	return black
}

// Planes encodes an ownermap of an m x n board as a (3, m, n) tensor. The planes hold the fractions of
// dame, black and white ownership in that order.
func Planes(o *playout.Ownermap, m, n int) (*tensor.Dense, error) {
	size := m * n
	if size != o.Points() {
		return nil, errors.Errorf("Cannot encode an ownermap of %d points as a %dx%d board", o.Points(), m, n)
	}
	backing := make([]float32, int(game.MaxColour)*size)
	for c := game.None; c < game.MaxColour; c++ {
		start := int(c) * size
		Fractions(o, c, backing[start:start+size])
	}
	return tensor.New(tensor.WithShape(int(game.MaxColour), m, n), tensor.WithBacking(backing)), nil
}

// Judgements encodes the verdict on every point: 1 for black, -1 for white and 0 for dame or undetermined points.
func Judgements(o *playout.Ownermap, thres float32, prealloc []float32) []float32 {
	if len(prealloc) != o.Points() {
		prealloc = make([]float32, o.Points())
	}
	for i := range prealloc {
		switch playout.JudgePoint(o, game.Single(i), thres) {
		case playout.BlackPoint:
			prealloc[i] = 1
		case playout.WhitePoint:
			prealloc[i] = -1
		default:
			prealloc[i] = 0
		}
	}
	return prealloc
}

// RotateBoard rotates a square board a quarter turn anticlockwise.
func RotateBoard(board []float32, m, n int) ([]float32, error) {
	if m != n {
		return nil, errors.Errorf("Cannot handle m %d, n %d. This function only takes square boards", m, n)
	}
	if len(board) != m*n {
		return nil, errors.Errorf("Expected a board of %d points. Got %d", m*n, len(board))
	}
	copied := make([]float32, len(board))
	copy(copied, board)
	it := makeIterator(copied, m, n)
	for i := 0; i < m/2; i++ {
		mi1 := m - i - 1
		for j := i; j < mi1; j++ {
			mj1 := m - j - 1
			tmp := it[i][j]
			// right to top
			it[i][j] = it[j][mi1]

			// bottom to right
			it[j][mi1] = it[mi1][mj1]

			// left to bottom
			it[mi1][mj1] = it[mj1][i]

			// tmp is left
			it[mj1][i] = tmp
		}
	}
	return copied, nil
}

func makeIterator(board []float32, m, n int) [][]float32 {
	retVal := make([][]float32, m)
	for i := range retVal {
		start := i * n
		retVal[i] = board[start : start+n : start+n]
	}
	return retVal
}
