// Package gif renders ownermaps as animated GIF heatmaps, one frame per batch of playouts.
package gif

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/gif"
	"io"
	"math"

	"github.com/golang/freetype/truetype"
	"github.com/pkg/errors"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/math/fixed"

	"github.com/gorgonia/playout/encoding"
	"github.com/gorgonia/playout/game"
	"github.com/gorgonia/playout/playout"
)

var regular *truetype.Font

const (
	dpi        = 72.0
	fontsize   = 12.0
	lineheight = 1.2
	textLines  = 2 // caption and playout count
)

func init() {
	var err error
	if regular, err = truetype.Parse(gomono.TTF); err != nil {
		panic(err)
	}
}

var grayPalette = func() color.Palette {
	p := make(color.Palette, 256)
	for i := range p {
		p[i] = color.Gray{uint8(i)}
	}
	return p
}()

// Board is what the encoder needs to know about the position.
type Board interface {
	BoardSize() (int, int)
	At(p game.Single) game.Colour
}

// Encoder draws ownermaps as frames of a GIF. Points are shaded from black (always owned by black)
// to white (always owned by white), and stones are drawn as squares in the middle of their points.
type Encoder struct {
	CellSize int
	Delay    int // delay of each frame, in 100ths of a second
	font.Drawer

	out *gif.GIF
	io.Writer

	pad  int
	w, h int
}

// NewEncoder creates an encoder that writes to w when flushed.
func NewEncoder(w io.Writer, cellSize int) *Encoder {
	enc := &Encoder{
		CellSize: cellSize,
		Delay:    50,
		out:      &gif.GIF{},
		Writer:   w,
		pad:      10,
	}
	enc.Src = image.NewUniform(color.Gray{255})
	enc.Face = truetype.NewFace(regular, &truetype.Options{
		Size:    fontsize,
		DPI:     dpi,
		Hinting: font.HintingFull,
	})
	return enc
}

func lineHeight() int { return int(math.Ceil(fontsize * lineheight * dpi / 72)) }

// Encode adds a frame showing o over the stones of b.
func (enc *Encoder) Encode(b Board, o *playout.Ownermap, caption string) error {
	m, n := b.BoardSize()
	if m*n != o.Points() {
		return errors.Errorf("Cannot draw an ownermap of %d points over a %dx%d board", o.Points(), m, n)
	}
	dy := lineHeight()
	if enc.w == 0 {
		// all frames of a GIF share the size of the first
		textW := font.MeasureString(enc.Face, fmt.Sprintf("Playouts: %d", math.MaxInt32)).Ceil()
		enc.w = maxInt(n*enc.CellSize, textW) + 2*enc.pad
		enc.h = m*enc.CellSize + textLines*dy + 3*enc.pad
	}

	im := image.NewPaletted(image.Rect(0, 0, enc.w, enc.h), grayPalette)
	draw.Draw(im, im.Bounds(), image.NewUniform(color.Gray{32}), image.Point{}, draw.Src)

	balance := encoding.Balance(o)
	stone := enc.CellSize / 3
	for i := 0; i < m; i++ {
		for j := 0; j < n; j++ {
			p := game.Single(i*n + j)
			x0 := enc.pad + j*enc.CellSize
			y0 := enc.pad + i*enc.CellSize
			cell := image.Rect(x0, y0, x0+enc.CellSize, y0+enc.CellSize)
			draw.Draw(im, cell, image.NewUniform(shade(balance[p])), image.Point{}, draw.Src)

			var c color.Gray
			switch b.At(p) {
			case game.Black:
				c = color.Gray{0}
			case game.White:
				c = color.Gray{255}
			default:
				continue
			}
			s := image.Rect(x0+stone, y0+stone, x0+enc.CellSize-stone, y0+enc.CellSize-stone)
			draw.Draw(im, s.Inset(-1), image.NewUniform(color.Gray{128}), image.Point{}, draw.Src)
			draw.Draw(im, s, image.NewUniform(c), image.Point{}, draw.Src)
		}
	}

	enc.Dst = im
	y := m*enc.CellSize + 2*enc.pad + dy
	for _, s := range []string{caption, fmt.Sprintf("Playouts: %d", o.Playouts)} {
		enc.Dot = fixed.P(enc.pad, y)
		enc.DrawString(s)
		y += dy
	}

	enc.out.Image = append(enc.out.Image, im)
	enc.out.Delay = append(enc.out.Delay, enc.Delay)
	return nil
}

// Frames returns the number of frames encoded so far.
func (enc *Encoder) Frames() int { return len(enc.out.Image) }

// Flush writes the gif into the writer
func (enc *Encoder) Flush() error {
	if len(enc.out.Image) == 0 {
		return errors.New("No frames to write")
	}
	return errors.WithStack(gif.EncodeAll(enc.Writer, enc.out))
}

// shade maps a balance in [-1, 1] to a gray: 1 is black, -1 is white.
func shade(balance float32) color.Gray {
	return color.Gray{uint8(math.Round(float64(1-balance) * 127.5))}
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
