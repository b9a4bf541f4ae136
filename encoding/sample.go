package encoding

import (
	"github.com/pkg/errors"
	"gorgonia.org/tensor"

	"github.com/gorgonia/playout/game"
	"github.com/gorgonia/playout/playout"
)

// SamplePlanes is the number of planes in a sample: stones, dame, black, white and judgement.
const SamplePlanes = 5

// Position is a board whose stones can be read as a flat slice.
type Position interface {
	BoardSize() (int, int)
	Data() []game.Colour
}

// Sample encodes a position and its ownership statistics as a (5, m, n) tensor. The planes are the stones
// (see EncodeBoard), the fractions of playouts in which each point was dame, black and white (see Planes)
// and the verdict on each point at thres (see Judgements).
func Sample(b Position, o *playout.Ownermap, thres float32) (*tensor.Dense, error) {
	m, n := b.BoardSize()
	planes, err := Planes(o, m, n)
	if err != nil {
		return nil, err
	}
	size := m * n
	backing := make([]float32, SamplePlanes*size)
	EncodeBoard(b.Data(), backing[:size])
	copy(backing[size:4*size], planes.Data().([]float32))
	Judgements(o, thres, backing[4*size:])
	return tensor.New(tensor.WithShape(SamplePlanes, m, n), tensor.WithBacking(backing)), nil
}

// Augment stacks the four quarter turns of a (planes, m, n) sample into a (4, planes, m, n) tensor.
// The first one is the sample itself.
func Augment(s *tensor.Dense) (*tensor.Dense, error) {
	shp := s.Shape()
	if shp.Dims() != 3 {
		return nil, errors.Errorf("Expected a sample of 3 dimensions. Got %v", shp)
	}
	planes, m, n := shp[0], shp[1], shp[2]
	data, ok := s.Data().([]float32)
	if !ok {
		return nil, errors.Errorf("Expected a sample of float32. Got %v", s.Dtype())
	}

	size := m * n
	cur := make([]float32, len(data))
	copy(cur, data)
	backing := make([]float32, 0, 4*len(data))
	for r := 0; r < 4; r++ {
		backing = append(backing, cur...)
		for p := 0; p < planes; p++ {
			plane := cur[p*size : (p+1)*size]
			rotated, err := RotateBoard(plane, m, n)
			if err != nil {
				return nil, err
			}
			copy(plane, rotated)
		}
	}
	return tensor.New(tensor.WithShape(4, planes, m, n), tensor.WithBacking(backing)), nil
}
