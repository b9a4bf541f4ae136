package encoding

import (
	"bytes"
	"encoding/csv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorgonia.org/tensor"

	"github.com/gorgonia/playout/game"
	wq "github.com/gorgonia/playout/game/wq"
	"github.com/gorgonia/playout/playout"
)

func TestRotateBoard(t *testing.T) {
	//
	// ⎢ O · · · X ⎥
	// ⎢ · O · X · ⎥ // this line is to break rotational symmetry
	// ⎢ · · · · · ⎥
	// ⎢ · · · · · ⎥
	// ⎢ X · · · O ⎥

	m, n := 5, 5
	board := EncodeBoard([]game.Colour{
		game.White, game.None, game.None, game.None, game.Black,
		game.None, game.White, game.None, game.Black, game.None,
		game.None, game.None, game.None, game.None, game.None,
		game.None, game.None, game.None, game.None, game.None,
		game.Black, game.None, game.None, game.None, game.White,
	}, nil)
	t.Logf("0:\n%v", board)

	rot1, err := RotateBoard(board, m, n)
	if err != nil {
		t.Fatal(err)
	}
	t.Logf("1:\n%v", rot1)
	assert.Equal(t, float32(1), rot1[0], "The top right corner moves to the top left")
	assert.Equal(t, float32(-1), rot1[3*5+1], "(1, 1) moves to (3, 1)")

	rot2, err := RotateBoard(rot1, m, n)
	if err != nil {
		t.Fatal(err)
	}
	rot3, err := RotateBoard(rot2, m, n)
	if err != nil {
		t.Fatal(err)
	}
	rot4, err := RotateBoard(rot3, m, n)
	if err != nil {
		t.Fatal(err)
	}
	t.Logf("4:\n%v", rot4)

	assert.Equal(t, board, rot4, "After 4 rotations the board should be the same")

	_, err = RotateBoard(board, 5, 4)
	assert.Error(t, err)
	_, err = RotateBoard(board[:4], 2, 2)
	assert.NoError(t, err)
	_, err = RotateBoard(board, 4, 4)
	assert.Error(t, err)
}

func ownermap(t *testing.T) (*wq.Board, *playout.Ownermap) {
	b, err := wq.Parse(`
		. X O
		X X O
		O O .`, 0)
	require.NoError(t, err)
	o := playout.NewOwnermap(b.Points())
	o.Record(b)
	o.Record(b)

	// a playout where the white corner stone died
	dead, err := wq.Parse(`
		. X .
		X X .
		. . .`, 0)
	require.NoError(t, err)
	o.Record(dead)
	o.Record(dead)
	return b, o
}

func TestFractions(t *testing.T) {
	_, o := ownermap(t)
	black := Fractions(o, game.Black, nil)
	assert.Equal(t, []float32{1, 1, 0, 1, 1, 0, 0, 0, 0}, black)
	white := Fractions(o, game.White, make([]float32, 9))
	assert.Equal(t, []float32{0, 0, 0.5, 0, 0, 0.5, 0.5, 0.5, 0.5}, white)

	assert.Equal(t, []float32{1, 1, -0.5, 1, 1, -0.5, -0.5, -0.5, -0.5}, Balance(o))
	assert.Equal(t, make([]float32, 4), Fractions(playout.NewOwnermap(4), game.Black, nil))
	assert.Equal(t, []float32{1, 1, -1, 1, 1, -1, -1, -1, -1}, Judgements(o, 0.8, nil), "Dame votes count for white")
}

func TestPlanes(t *testing.T) {
	_, o := ownermap(t)
	planes, err := Planes(o, 3, 3)
	require.NoError(t, err)
	assert.Equal(t, tensor.Shape{3, 3, 3}, planes.Shape())

	v, err := planes.At(1, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, float32(1), v)
	v, err = planes.At(2, 2, 2)
	require.NoError(t, err)
	assert.Equal(t, float32(0.5), v)
	v, err = planes.At(0, 2, 2)
	require.NoError(t, err)
	assert.Equal(t, float32(0.5), v)

	_, err = Planes(o, 4, 4)
	assert.Error(t, err)
}

func TestWriteCSV(t *testing.T) {
	b, o := ownermap(t)
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, b, o, 0.8))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 10)
	assert.Equal(t, csvHeader, records[0])
	assert.Equal(t, []string{"A3", "0.000", "1.000", "0.000", "black"}, records[1])
	assert.Equal(t, []string{"C1", "0.500", "0.000", "0.500", "white"}, records[9])
}

func TestSample(t *testing.T) {
	b, o := ownermap(t)
	s, err := Sample(b, o, 0.8)
	require.NoError(t, err)
	assert.Equal(t, tensor.Shape{SamplePlanes, 3, 3}, s.Shape())

	data := s.Data().([]float32)
	assert.Equal(t, []float32{0, 1, -1, 1, 1, -1, -1, -1, 0}, data[:9], "Stones")
	assert.Equal(t, Fractions(o, game.Black, nil), data[18:27])
	assert.Equal(t, Judgements(o, 0.8, nil), data[36:])

	_, err = Sample(wq.New(4, 0), o, 0.8)
	assert.Error(t, err)
}

func TestAugment(t *testing.T) {
	b, o := ownermap(t)
	s, err := Sample(b, o, 0.8)
	require.NoError(t, err)
	aug, err := Augment(s)
	require.NoError(t, err)
	assert.Equal(t, tensor.Shape{4, SamplePlanes, 3, 3}, aug.Shape())

	data := aug.Data().([]float32)
	per := SamplePlanes * 9
	assert.Equal(t, s.Data().([]float32), data[:per], "The first turn is the sample itself")
	assert.Equal(t, []float32{-1, -1, 0, 1, 1, -1, 0, 1, -1}, data[per:per+9], "A quarter turn anticlockwise")

	rot, err := RotateBoard(data[3*per:3*per+9], 3, 3)
	require.NoError(t, err)
	assert.Equal(t, data[:9], rot, "Four quarter turns make a full turn")

	var buf bytes.Buffer
	require.NoError(t, aug.WriteNpy(&buf))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("\x93NUMPY")))

	_, err = Augment(tensor.New(tensor.WithShape(2, 2), tensor.WithBacking([]float32{1, 2, 3, 4})))
	assert.Error(t, err)
}
