package container

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"io"
	"io/ioutil"
	"unicode/utf8"
)

func readFull(r io.Reader, b []byte) error {
	_, err := io.ReadFull(r, b)
	if err == io.EOF {
		err = io.ErrUnexpectedEOF
	}
	return err
}

type decoder struct {
	r io.Reader

	header Header
	pixels []color.NRGBA

	image *image.NRGBA
}

func (d *decoder) readHeader() error {
	var tmp [HeaderSize]byte
	if err := readFull(d.r, tmp[:]); err != nil {
		if err != io.ErrUnexpectedEOF {
			return err
		}
		return ErrHeader
	}
	return d.header.UnmarshalBinary(tmp[:])
}

func (d *decoder) readPixels() error {
	b, err := ioutil.ReadAll(d.r)
	if err != nil {
		return err
	}

	// Row separators carry no information, the width alone decides where
	// each row starts
	b = bytes.ReplaceAll(b, []byte{rowSep}, nil)

	if !utf8.Valid(b) {
		return ErrEncoding
	}

	if len(b)%tokenSize != 0 {
		return fmt.Errorf("%w: %d bytes of pixel data is not a multiple of %d", ErrTokenLength, len(b), tokenSize)
	}

	n := uint64(len(b) / tokenSize)
	if n != d.header.Pixels() {
		return fmt.Errorf("%w: found %d tokens, want %dx%d", ErrTokenLength, n, d.header.Width, d.header.Height)
	}

	d.pixels = make([]color.NRGBA, n)

	var rgb [3]byte
	for i := range d.pixels {
		token := b[i*tokenSize : (i+1)*tokenSize]
		if _, err := hex.Decode(rgb[:], token); err != nil {
			return fmt.Errorf("%w: token %d %q", ErrColorParse, i, token)
		}
		d.pixels[i] = color.NRGBA{rgb[0], rgb[1], rgb[2], 0xff}
	}

	return nil
}

func (d *decoder) paint() {
	width := int(d.header.Width)

	d.image = image.NewNRGBA(image.Rect(0, 0, width, int(d.header.Height)))

	src := &image.Uniform{}
	for i, c := range d.pixels {
		x, y := i%width, i/width
		src.C = c
		draw.Draw(d.image, image.Rect(x, y, x+1, y+1), src, image.Point{}, draw.Src)
	}
}

func (d *decoder) decode(r io.Reader, configOnly bool) error {
	d.r = r

	if err := d.readHeader(); err != nil {
		return err
	}

	if configOnly {
		return nil
	}

	// Every token is parsed before the surface exists so a bad token never
	// leaves a partial image behind
	if err := d.readPixels(); err != nil {
		return err
	}

	d.paint()

	return nil
}

// Decode reads a hex container from r and returns it as an image.Image.
// The returned image is an *image.NRGBA with every pixel fully opaque.
func Decode(r io.Reader) (image.Image, error) {
	var d decoder
	if err := d.decode(r, false); err != nil {
		return nil, err
	}
	return d.image, nil
}

// DecodeConfig returns the color model and dimensions of a hex container
// without decoding the entire image.
func DecodeConfig(r io.Reader) (image.Config, error) {
	var d decoder
	if err := d.decode(r, true); err != nil {
		return image.Config{}, err
	}
	return image.Config{
		ColorModel: color.NRGBAModel,
		Width:      int(d.header.Width),
		Height:     int(d.header.Height),
	}, nil
}
