package encoding

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"

	"github.com/pkg/errors"

	"github.com/gorgonia/playout/game"
	"github.com/gorgonia/playout/playout"
)

// Vertexer names the points of a board.
type Vertexer interface {
	Vertex(p game.Single) string
}

var csvHeader = []string{"vertex", "dame", "black", "white", "judgement"}

// WriteCSV writes one row per point: its name, the fractions of playouts in which it was dame,
// black and white, and the verdict on it.
func WriteCSV(w io.Writer, b Vertexer, o *playout.Ownermap, thres float32) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return errors.WithStack(err)
	}
	records := make([][]string, 0, o.Points())
	for i := 0; i < o.Points(); i++ {
		p := game.Single(i)
		record := []string{b.Vertex(p)}
		for c := game.None; c < game.MaxColour; c++ {
			record = append(record, strconv.FormatFloat(float64(o.Fraction(p, c)), 'f', 3, 32))
		}
		record = append(record, playout.JudgePoint(o, p, thres).String())
		records = append(records, record)
	}
	if err := cw.WriteAll(records); err != nil {
		return errors.WithStack(err)
	}
	return nil
}

// Dump writes the CSV table to a file.
func Dump(filename string, b Vertexer, o *playout.Ownermap, thres float32) error {
	f, err := os.OpenFile(filename, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0644)
	if err != nil {
		return errors.WithStack(err)
	}
	defer f.Close()
	return WriteCSV(f, b, o, thres)
}
