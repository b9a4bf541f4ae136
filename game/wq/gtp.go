package 围碁

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gorgonia/playout/game"
	"github.com/pkg/errors"
)

// GTP vertices name columns with letters (skipping I) and rows with numbers counted from the bottom.
const columns = "ABCDEFGHJKLMNOPQRSTUVWXYZ"

// Vertex returns the GTP name of a point, e.g. "D4". Passes are "pass".
func (b *Board) Vertex(p game.Single) string {
	switch {
	case p.IsPass():
		return "pass"
	case p.IsResignation():
		return "resign"
	}
	c := b.Itol(p)
	return fmt.Sprintf("%c%d", columns[c.Y], b.size-int32(c.X))
}

// ParseVertex parses a GTP vertex into a point on this board.
func (b *Board) ParseVertex(s string) (game.Single, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	switch s {
	case "PASS":
		return game.Pass, nil
	case "RESIGN":
		return game.Resign, nil
	}
	if len(s) < 2 {
		return 0, errors.Errorf("Invalid vertex %q", s)
	}
	col := strings.IndexByte(columns, s[0])
	if col < 0 || int32(col) >= b.size {
		return 0, errors.Errorf("Invalid column in vertex %q", s)
	}
	row, err := strconv.Atoi(s[1:])
	if err != nil {
		return 0, errors.WithMessage(err, fmt.Sprintf("Invalid row in vertex %q", s))
	}
	if row < 1 || int32(row) > b.size {
		return 0, errors.Errorf("Vertex %q is off the board", s)
	}
	return b.Ltoi(game.Coord{X: int16(b.size - int32(row)), Y: int16(col)}), nil
}
