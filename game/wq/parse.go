package 围碁

import (
	"strings"

	"github.com/gorgonia/playout/game"
	"github.com/pkg/errors"
)

// Parse reads a board diagram. Each non-blank line is a row; X (or x, #) is black, O (or o) is white
// and ., · or + are empty points. Whitespace and the ⎢ ⎥ frame printed by %s are ignored, so the
// output of fmt.Sprintf("%s", board) parses back into the same position.
func Parse(diagram string, komi float32) (*Board, error) {
	var rows [][]game.Colour
	for _, line := range strings.Split(diagram, "\n") {
		var row []game.Colour
		for _, r := range line {
			switch r {
			case 'X', 'x', '#':
				row = append(row, Black)
			case 'O', 'o':
				row = append(row, White)
			case '.', '·', '+':
				row = append(row, None)
			case ' ', '\t', '\r', '⎢', '⎥':
			default:
				return nil, errors.Errorf("Unexpected character %q in board diagram", r)
			}
		}
		if len(row) > 0 {
			rows = append(rows, row)
		}
	}
	size := len(rows)
	if size == 0 {
		return nil, errors.New("Empty board diagram")
	}
	if size > len(columns) {
		return nil, errors.Errorf("Board size %d is too large", size)
	}

	b := New(size, komi)
	for i, row := range rows {
		if len(row) != size {
			return nil, errors.Errorf("Row %d has %d points. Expected %d", i, len(row), size)
		}
		for j, c := range row {
			if c != None {
				b.set(game.Single(i*size+j), c)
			}
		}
	}
	return b, nil
}
