package 围碁

import (
	"math/rand"

	"github.com/gorgonia/playout/game"
)

// zobrist is a data structure for calculating Zobrist hashes.
// https://en.wikipedia.org/wiki/Zobrist_hashing
//
// Fundamentally it is a (BOARDSIZE * BOARDSIZE, 2) matrix, which stores the hash state of
// each colour on each point. The table is seeded by the board size, so boards of the same size
// hash the same positions to the same values.
type zobrist struct {
	table []game.Zobrist // backing storage
	hash  game.Zobrist
}

func makeZobrist(size int) zobrist {
	r := rand.New(rand.NewSource(int64(size)*7919 + 1))
	table := make([]game.Zobrist, size*size*2)
	for i := range table {
		table[i] = game.Zobrist(r.Uint32())
	}
	return zobrist{table: table}
}

// update calculates the hash and returns it. As per the namesake, the calculated hash is updated as a side effect.
func (z *zobrist) update(m game.PlayerMove) game.Zobrist {
	switch game.Colour(m.Player) {
	case game.Black:
		z.hash ^= z.table[2*int(m.Single)]
	case game.White:
		z.hash ^= z.table[2*int(m.Single)+1]
	default:
		panic("Cannot update hash for a player without stones")
	}
	return z.hash
}

func (z *zobrist) clone() zobrist {
	return zobrist{table: z.table, hash: z.hash}
}
