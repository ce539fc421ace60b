package hexpix

import (
	"bytes"
	"crypto/sha1"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io/ioutil"

	"github.com/bodgit/hexpix/container"
	"github.com/ericpauley/go-quantize/quantize"
	_ "github.com/sergeymakinen/go-bmp"
)

// CompileOptions controls how an image is compiled to a hex container.
type CompileOptions struct {
	// Output is the container path, if empty the source path with its
	// extension replaced by container.Extension is used.
	Output string
	// Colors, if non-zero, reduces the image to at most that many colors
	// before it is compiled.
	Colors int
}

// reduceColors maps m onto a median cut palette of at most n colors.
func reduceColors(m image.Image, n int) image.Image {
	b := m.Bounds()
	q := quantize.MedianCutQuantizer{}
	pm := image.NewPaletted(b, q.Quantize(make(color.Palette, 0, n), m))
	draw.Draw(pm, b, m, b.Min, draw.Src)
	return pm
}

func (h *HexPix) readImage(file string) ([]byte, string, error) {
	b, err := ioutil.ReadFile(file)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrImageRead, err)
	}
	return b, fmt.Sprintf("%X", sha1.Sum(b)), nil
}

func (h *HexPix) encode(file string, b []byte, colors int) ([]byte, image.Rectangle, error) {
	m, _, err := image.Decode(bytes.NewReader(b))
	if err != nil {
		return nil, image.Rectangle{}, fmt.Errorf("%w: %s: %v", ErrImageRead, file, err)
	}

	if colors > 0 {
		m = reduceColors(m, colors)
	}

	buf := new(bytes.Buffer)
	if err := container.Encode(buf, m); err != nil {
		return nil, image.Rectangle{}, err
	}

	return buf.Bytes(), m.Bounds(), nil
}

// Compile converts the image in src to a hex container and returns the path
// it was written to.
func (h *HexPix) Compile(src string, opts CompileOptions) (string, error) {
	dst := opts.Output
	if dst == "" {
		dst = replaceExt(src, container.Extension)
	}

	b, sha, err := h.readImage(src)
	if err != nil {
		return "", err
	}

	var data []byte
	if h.catalog != nil {
		if data, err = h.catalog.Find(sha, opts.Colors); err != nil {
			return "", err
		}
	}

	cached := data != nil

	var r image.Rectangle
	if cached {
		h.logger.Printf("Using cached container for \"%s\" with SHA1 \"%s\"\n", src, sha)
		cfg, err := container.DecodeConfig(bytes.NewReader(data))
		if err != nil {
			return "", fmt.Errorf("%s: %w", sha, err)
		}
		r = image.Rect(0, 0, cfg.Width, cfg.Height)
	} else if data, r, err = h.encode(src, b, opts.Colors); err != nil {
		return "", err
	}

	if err := writeFile(dst, data); err != nil {
		return "", err
	}

	if h.catalog != nil && !cached {
		if _, err := h.catalog.Add(Entry{
			SHA1:   sha,
			Colors: opts.Colors,
			Path:   src,
			Width:  r.Dx(),
			Height: r.Dy(),
			Data:   data,
		}); err != nil {
			return "", err
		}
	}

	h.logger.Printf("Compiled \"%s\" to \"%s\" (%dx%d)\n", src, dst, r.Dx(), r.Dy())

	return dst, nil
}
