package playout

import (
	"fmt"

	"github.com/gorgonia/playout/game"
)

// Ownermap accumulates, over many playouts, which colour ended up owning each point.
//
// An empty point that is a one-point eye at the end of a playout is counted for the colour of the eye.
// Any other empty point is counted as dame.
type Ownermap struct {
	Playouts int
	Map      [][game.MaxColour]int
}

// NewOwnermap creates an empty Ownermap for a board with the given number of points.
func NewOwnermap(points int) *Ownermap {
	return &Ownermap{Map: make([][game.MaxColour]int, points)}
}

// Points returns the number of points the ownermap covers.
func (o *Ownermap) Points() int { return len(o.Map) }

// Record counts the final position of a playout.
func (o *Ownermap) Record(b Board) {
	o.Playouts++
	for i := range o.Map {
		p := game.Single(i)
		c := b.At(p)
		if c == game.None {
			c = b.OnePointEye(p)
		}
		o.Map[i][c]++
	}
}

// Merge adds the counts of src into o. It panics if the two ownermaps do not cover the same board.
//
// Merging is associative and commutative, and an empty ownermap is its identity, so the order in which
// workers merge their maps does not matter.
func (o *Ownermap) Merge(src *Ownermap) {
	if len(o.Map) != len(src.Map) {
		panic(fmt.Sprintf("Cannot merge an ownermap of %d points into one of %d points", len(src.Map), len(o.Map)))
	}
	o.Playouts += src.Playouts
	for i := range src.Map {
		for c := range src.Map[i] {
			o.Map[i][c] += src.Map[i][c]
		}
	}
}

// Clone returns a deep copy.
func (o *Ownermap) Clone() *Ownermap {
	retVal := &Ownermap{
		Playouts: o.Playouts,
		Map:      make([][game.MaxColour]int, len(o.Map)),
	}
	copy(retVal.Map, o.Map)
	return retVal
}

// Reset zeroes all counts.
func (o *Ownermap) Reset() {
	o.Playouts = 0
	for i := range o.Map {
		o.Map[i] = [game.MaxColour]int{}
	}
}

// Fraction returns the fraction of playouts in which p ended up owned by c. It is 0 when no playouts were recorded.
func (o *Ownermap) Fraction(p game.Single, c game.Colour) float32 {
	if o.Playouts == 0 {
		return 0
	}
	return float32(o.Map[p][c]) / float32(o.Playouts)
}
