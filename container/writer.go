package container

import (
	"bytes"
	"encoding/hex"
	"errors"
	"image"
	"image/color"
	"io"
	"math"
)

type encoder struct {
	w   io.Writer
	buf bytes.Buffer
}

func (e *encoder) writeHeader(b image.Rectangle) error {
	h := Header{Width: uint32(b.Dx()), Height: uint32(b.Dy())}
	tmp, err := h.MarshalBinary()
	if err != nil {
		return err
	}
	_, err = e.buf.Write(tmp)
	return err
}

func (e *encoder) writePixels(m image.Image) {
	b := m.Bounds()

	var rgb [3]byte
	var token [tokenSize]byte
	for y := b.Min.Y; y < b.Max.Y; y++ {
		// Newline separates rows, it doesn't terminate them
		if y != b.Min.Y {
			e.buf.WriteByte(rowSep)
		}
		for x := b.Min.X; x < b.Max.X; x++ {
			c := color.NRGBAModel.Convert(m.At(x, y)).(color.NRGBA)
			rgb[0], rgb[1], rgb[2] = c.R, c.G, c.B
			hex.Encode(token[:], rgb[:])
			e.buf.Write(token[:])
		}
	}
}

func (e *encoder) encode(m image.Image) error {
	b := m.Bounds()

	// Header plus one token per pixel plus the row separators
	size := HeaderSize + b.Dx()*b.Dy()*tokenSize
	if b.Dy() > 1 {
		size += b.Dy() - 1
	}
	e.buf.Grow(size)

	if err := e.writeHeader(b); err != nil {
		return err
	}
	e.writePixels(m)

	// The whole container goes out in one write
	_, err := e.w.Write(e.buf.Bytes())
	return err
}

// Encode writes the Image m to w in hex container format. Any alpha channel
// is discarded.
func Encode(w io.Writer, m image.Image) error {
	b := m.Bounds()
	if uint64(b.Dx()) > math.MaxUint32 || uint64(b.Dy()) > math.MaxUint32 {
		return errors.New("container: image is too large")
	}

	e := encoder{w: w}

	return e.encode(m)
}
