// package 围碁 implements Go (the board game) related code
//
// 围碁 is a bastardized word.
// The first character is read "wei" in Chinese. The second is read "qi" in Chinese.
// However, the charcter 碁 is no longer actively used in Chinese.
// It is however, actively used in Japanese. Specifically, it's read "go" in Japanese.
//
// The main reason why this package is named with unicode characters instead of `package go`
// is because the standard library of the Go language have the prefix "go"
package 围碁

import (
	"fmt"

	"github.com/gorgonia/playout/game"
	"github.com/pkg/errors"
)

const (
	None  = game.None
	Black = game.Black
	White = game.White

	BlackP = game.BlackP
	WhiteP = game.WhiteP
)

// Board represents a board.
//
// Given we know the stride of the board, the board is a flat slice of colours with a row iterator
// sharing the same backing storage. A Board is not safe for concurrent use. Playouts mutate the
// board they are given, so every concurrent playout needs its own Clone.
type Board struct {
	size    int32
	komi    float32
	data    []game.Colour   // backing data
	it      [][]game.Colour // iterator for quick access
	zobrist                 // hashing of the board

	moves    int
	last     game.PlayerMove
	ko       game.Single // the point that may not be retaken this turn
	koPlayer game.Player

	// chain labels. Recomputed lazily after the board changes
	groups []game.GroupID
	dirty  bool

	// scratch space for flood fills
	stack        []int32
	smark, lmark []uint32
	epoch        uint32
}

// New creates an empty board of size x size.
func New(size int, komi float32) *Board {
	b := newBoard(size, komi)
	b.zobrist = makeZobrist(size)
	return b
}

func newBoard(size int, komi float32) *Board {
	data, it := makeBoard(size)
	n := size * size
	return &Board{
		size:   int32(size),
		komi:   komi,
		data:   data,
		it:     it,
		last:   game.PlayerMove{Player: game.Player(None), Single: game.Pass},
		ko:     game.Pass,
		groups: make([]game.GroupID, n),
		stack:  make([]int32, 0, n),
		smark:  make([]uint32, n),
		lmark:  make([]uint32, n),
	}
}

// makeBoard makes a board of NxN. Additionally, it also returns a 2D iterator
func makeBoard(size int) (board []game.Colour, iterator [][]game.Colour) {
	board = make([]game.Colour, size*size)
	iterator = make([][]game.Colour, size)
	for i := range iterator {
		start := i * size
		iterator[i] = board[start : start+size : start+size]
	}
	return
}

// Clone clones the board
func (b *Board) Clone() *Board {
	retVal := newBoard(int(b.size), b.komi)
	copy(retVal.data, b.data)
	retVal.zobrist = b.zobrist.clone()
	retVal.moves = b.moves
	retVal.last = b.last
	retVal.ko = b.ko
	retVal.koPlayer = b.koPlayer
	retVal.dirty = true
	return retVal
}

// Eq checks that both are equal
func (b *Board) Eq(other *Board) bool {
	if b == other {
		return true
	}
	// easy to check stuff
	if b.size != other.size ||
		b.hash != other.hash ||
		b.komi != other.komi ||
		b.ko != other.ko ||
		len(b.data) != len(other.data) {
		return false
	}

	for i, c := range b.data {
		if c != other.data[i] {
			return false
		}
	}
	return true
}

// Format implements fmt.Formatter
func (b *Board) Format(s fmt.State, c rune) {
	switch c {
	case 's', 'v':
		for _, row := range b.it {
			fmt.Fprint(s, "⎢ ")
			for _, col := range row {
				fmt.Fprintf(s, "%s ", col)
			}
			fmt.Fprint(s, "⎥\n")
		}
	}
}

// Reset resets the board state
func (b *Board) Reset() {
	for i := range b.data {
		b.data[i] = None
	}
	b.zobrist.hash = 0
	b.moves = 0
	b.last = game.PlayerMove{Player: game.Player(None), Single: game.Pass}
	b.ko = game.Pass
	b.dirty = true
}

// Hash returns the calculated hash of the board
func (b *Board) Hash() game.Zobrist { return b.hash }

// BoardSize returns the height and width of the board.
func (b *Board) BoardSize() (int, int) { return int(b.size), int(b.size) }

// Points returns the number of points on the board.
func (b *Board) Points() int { return len(b.data) }

// Data returns the backing storage of the board. It must not be modified.
func (b *Board) Data() []game.Colour { return b.data }

// At returns the colour at the given point.
func (b *Board) At(p game.Single) game.Colour { return b.data[p] }

func (b *Board) MoveNumber() int { return b.moves }

func (b *Board) LastMove() game.PlayerMove { return b.last }

func (b *Board) Komi() float32 { return b.komi }

func (b *Board) SetKomi(komi float32) { b.komi = komi }

// Itol converts a Single into a Coord
func (b *Board) Itol(c game.Single) game.Coord {
	x := int16(int32(c) / b.size)
	y := int16(int32(c) % b.size)
	return game.Coord{X: x, Y: y}
}

// Ltoi takes a coordinate and return a single
func (b *Board) Ltoi(c game.Coord) game.Single { return game.Single(int32(c.X)*b.size + int32(c.Y)) }

// Apply applies a move to the board. Passing is always legal. Any other move that is not legal
// returns an error and leaves the board untouched.
func (b *Board) Apply(m game.PlayerMove) error {
	if !m.Player.IsValid() {
		return errors.WithMessage(moveError(m), "Impossible player")
	}

	if m.Single.IsPass() {
		b.moves++
		b.last = m
		b.ko = game.Pass
		return nil
	}

	if m.Single < 0 || int32(m.Single) >= b.size*b.size {
		return errors.WithMessage(moveError(m), "Impossible move")
	}

	// if the board location is not empty, then clearly we can't apply
	if b.data[m.Single] != None {
		return errors.WithMessage(moveError(m), "Application Failure - board location not empty.")
	}

	if m.Single == b.ko && m.Player == b.koPlayer {
		return errors.WithMessage(moveError(m), "Application Failure - ko.")
	}

	captures, err := b.check(m)
	if err != nil {
		return errors.WithMessage(err, "Application Failure.")
	}

	// the move is valid.
	// make the move then update zobrist hash
	b.data[m.Single] = game.Colour(m.Player)
	b.zobrist.update(m)

	// remove prisoners
	opp := game.Opponent(m.Player)
	for _, prisoner := range captures {
		b.data[prisoner] = None
		b.zobrist.update(game.PlayerMove{Player: opp, Single: prisoner}) // Xoring the original colour
	}

	b.ko = game.Pass
	if len(captures) == 1 && b.isLoneStone(int32(m.Single)) && b.libertyCount(int32(m.Single), 1) == 1 {
		b.ko = captures[0]
		b.koPlayer = opp
	}

	b.moves++
	b.last = m
	b.dirty = true
	return nil
}

// Check returns true if the move is legal.
func (b *Board) Check(m game.PlayerMove) bool {
	if !m.Player.IsValid() {
		return false
	}
	if m.Single.IsPass() {
		return true
	}
	if m.Single < 0 || int32(m.Single) >= b.size*b.size || b.data[m.Single] != None {
		return false
	}
	if m.Single == b.ko && m.Player == b.koPlayer {
		return false
	}
	_, err := b.check(m)
	return err == nil
}

// PlayRandom plays a random legal move for p. It starts at a random point and takes the first
// eligible point from there, wrapping around, so points following runs of ineligible points are
// favoured. Points that would fill p's own one-point eye, or that permit rejects, are not
// eligible. If nothing is left, p passes.
// The point played is returned.
func (b *Board) PlayRandom(p game.Player, permit func(game.Single) bool, r game.Rand) game.Single {
	n := len(b.data)
	start := r.Intn(n)
	for i := 0; i < n; i++ {
		pt := game.Single((start + i) % n)
		if b.tryRandom(p, pt, permit) {
			return pt
		}
	}
	b.Apply(game.PlayerMove{Player: p, Single: game.Pass})
	return game.Pass
}

func (b *Board) tryRandom(p game.Player, pt game.Single, permit func(game.Single) bool) bool {
	if b.data[pt] != None || b.OnePointEye(pt) == game.Colour(p) {
		return false
	}
	if pt == b.ko && p == b.koPlayer {
		return false
	}
	if permit != nil && !permit(pt) {
		return false
	}
	return b.Apply(game.PlayerMove{Player: p, Single: pt}) == nil
}

// FastScore returns the area score from white's point of view: komi plus white's stones and
// one-point eyes, minus black's. Dead stones are not removed.
func (b *Board) FastScore() float32 {
	var scores [game.MaxColour]float32
	for i, c := range b.data {
		if c == None {
			c = b.OnePointEye(game.Single(i))
		}
		scores[c]++
	}
	return b.komi + scores[White] - scores[Black]
}

// OnePointEye returns the colour of the stones surrounding an empty point if every on-board
// neighbour has that colour. Otherwise it returns None.
func (b *Board) OnePointEye(p game.Single) game.Colour {
	if b.data[p] != None {
		return None
	}
	eye := None
	for _, a := range b.neighbours(int32(p)) {
		if a < 0 {
			continue
		}
		c := b.data[a]
		switch {
		case c == None:
			return None
		case eye == None:
			eye = c
		case c != eye:
			return None
		}
	}
	return eye
}

// GroupAt returns the identifier of the chain occupying p. Empty points return game.NoGroup.
// The identifier is one more than the lowest point index of the chain.
func (b *Board) GroupAt(p game.Single) game.GroupID {
	if b.dirty {
		b.relabel()
	}
	return b.groups[p]
}

// Adjacent returns the on-board orthogonal neighbours of p.
func (b *Board) Adjacent(p game.Single) []game.Single {
	retVal := make([]game.Single, 0, 4)
	for _, a := range b.neighbours(int32(p)) {
		if a >= 0 {
			retVal = append(retVal, game.Single(a))
		}
	}
	return retVal
}

// Liberties returns the liberties of the chain at p. Empty points have no liberties.
func (b *Board) Liberties(p game.Single) (retVal []game.Single) {
	if b.data[p] == None {
		return nil
	}
	e := b.nextEpoch()
	b.walk(int32(p), func(stone int32) bool {
		for _, a := range b.neighbours(stone) {
			if a >= 0 && b.data[a] == None && b.lmark[a] != e {
				b.lmark[a] = e
				retVal = append(retVal, game.Single(a))
			}
		}
		return true
	})
	return retVal
}

// Chain returns the stones of the chain at p.
func (b *Board) Chain(p game.Single) (retVal []game.Single) {
	if b.data[p] == None {
		return nil
	}
	b.nextEpoch()
	b.walk(int32(p), func(stone int32) bool {
		retVal = append(retVal, game.Single(stone))
		return true
	})
	return retVal
}

// set places a stone without any rule checks. It is used for setting up positions.
func (b *Board) set(p game.Single, c game.Colour) {
	if old := b.data[p]; old != None {
		b.zobrist.update(game.PlayerMove{Player: game.Player(old), Single: p})
	}
	b.data[p] = c
	if c != None {
		b.zobrist.update(game.PlayerMove{Player: game.Player(c), Single: p})
	}
	b.dirty = true
}

// check will find the captures (if any) if the move is valid. If the move is invalid, an error will be returned.
// The board is left as it was found.
func (b *Board) check(m game.PlayerMove) (captures []game.Single, err error) {
	p := int32(m.Single)
	opp := game.Colour(game.Opponent(m.Player))

	b.data[p] = game.Colour(m.Player)
	for _, a := range b.neighbours(p) {
		if a < 0 || b.data[a] != opp || contains(captures, game.Single(a)) {
			continue
		}
		if b.libertyCount(a, 0) == 0 {
			captures = append(captures, b.Chain(game.Single(a))...)
		}
	}
	suicide := len(captures) == 0 && b.libertyCount(p, 0) == 0
	b.data[p] = None

	if suicide {
		return nil, errors.WithMessage(moveError(m), "Suicide is not a valid option.")
	}
	return captures, nil
}

// libertyCount counts the liberties of the chain at p. It stops counting once more than limit liberties
// have been found. A negative limit counts all of them.
func (b *Board) libertyCount(p int32, limit int) (count int) {
	e := b.nextEpoch()
	b.walk(p, func(stone int32) bool {
		for _, a := range b.neighbours(stone) {
			if a >= 0 && b.data[a] == None && b.lmark[a] != e {
				b.lmark[a] = e
				count++
			}
		}
		return limit < 0 || count <= limit
	})
	return count
}

func (b *Board) isLoneStone(p int32) bool {
	c := b.data[p]
	for _, a := range b.neighbours(p) {
		if a >= 0 && b.data[a] == c {
			return false
		}
	}
	return true
}

// walk visits every stone of the chain at p. It stops early if fn returns false.
// Callers must call nextEpoch before walking.
func (b *Board) walk(p int32, fn func(stone int32) bool) {
	e := b.epoch
	c := b.data[p]
	b.stack = append(b.stack[:0], p)
	b.smark[p] = e
	for len(b.stack) > 0 {
		s := b.stack[len(b.stack)-1]
		b.stack = b.stack[:len(b.stack)-1]
		if !fn(s) {
			return
		}
		for _, a := range b.neighbours(s) {
			if a >= 0 && b.data[a] == c && b.smark[a] != e {
				b.smark[a] = e
				b.stack = append(b.stack, a)
			}
		}
	}
}

func (b *Board) nextEpoch() uint32 {
	b.epoch++
	if b.epoch == 0 {
		for i := range b.smark {
			b.smark[i] = 0
			b.lmark[i] = 0
		}
		b.epoch = 1
	}
	return b.epoch
}

func (b *Board) relabel() {
	for i := range b.groups {
		b.groups[i] = game.NoGroup
	}
	for i, c := range b.data {
		if c == None || b.groups[i] != game.NoGroup {
			continue
		}
		id := game.GroupID(i + 1)
		b.nextEpoch()
		b.walk(int32(i), func(stone int32) bool {
			b.groups[stone] = id
			return true
		})
	}
	b.dirty = false
}

// neighbours returns the adjacent positions of p. Off board positions are -1.
func (b *Board) neighbours(p int32) (retVal [4]int32) {
	x, y := p/b.size, p%b.size
	for i, adj := range adjacents {
		ax, ay := x+int32(adj.X), y+int32(adj.Y)
		if ax < 0 || ax >= b.size || ay < 0 || ay >= b.size {
			retVal[i] = -1
			continue
		}
		retVal[i] = ax*b.size + ay
	}
	return retVal
}

func contains(l []game.Single, p game.Single) bool {
	for _, s := range l {
		if s == p {
			return true
		}
	}
	return false
}

var adjacents = [4]game.Coord{
	{X: 0, Y: 1},
	{X: 1, Y: 0},
	{X: 0, Y: -1},
	{X: -1, Y: 0},
}
