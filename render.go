package hexpix

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"io/ioutil"

	"github.com/bodgit/hexpix/container"
	"github.com/nfnt/resize"
	"github.com/sergeymakinen/go-bmp"
)

// Supported rendering formats.
const (
	FormatPNG = "png"
	FormatBMP = "bmp"
)

// RenderOptions controls how a hex container is rendered.
type RenderOptions struct {
	// Format is either FormatPNG or FormatBMP, FormatPNG if empty.
	Format string
	// Scale, if greater than one, enlarges each pixel to a Scale by Scale
	// block.
	Scale int
}

// Rendering is a decoded hex container serialized to a standard image
// format.
type Rendering struct {
	// Width and Height are the dimensions stored in the container, before
	// any scaling.
	Width  int
	Height int
	Format string
	Data   []byte
	Image  image.Image
}

func encodeImage(format string, m image.Image) ([]byte, error) {
	b := new(bytes.Buffer)
	switch format {
	case FormatPNG, "":
		if err := png.Encode(b, m); err != nil {
			return nil, err
		}
	case FormatBMP:
		if err := bmp.Encode(b, m); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("hexpix: unsupported format %q", format)
	}
	return b.Bytes(), nil
}

// Render decodes the hex container in src and returns it serialized to the
// requested format. Nothing is written to disk.
func (h *HexPix) Render(src string, opts RenderOptions) (*Rendering, error) {
	b, err := ioutil.ReadFile(src)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrContainerRead, err)
	}

	m, err := container.Decode(bytes.NewReader(b))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", src, err)
	}

	r := &Rendering{
		Width:  m.Bounds().Dx(),
		Height: m.Bounds().Dy(),
		Format: opts.Format,
		Image:  m,
	}
	if r.Format == "" {
		r.Format = FormatPNG
	}

	if opts.Scale > 1 && r.Width > 0 && r.Height > 0 {
		r.Image = resize.Resize(uint(r.Width*opts.Scale), uint(r.Height*opts.Scale), m, resize.NearestNeighbor)
	}

	if r.Data, err = encodeImage(r.Format, r.Image); err != nil {
		return nil, err
	}

	h.logger.Printf("Rendered \"%s\" (%dx%d) as %s\n", src, r.Width, r.Height, r.Format)

	return r, nil
}

// WriteRendering writes r to dst, or to src with the extension of the
// rendering format if dst is empty, and returns the path written.
func (h *HexPix) WriteRendering(r *Rendering, src, dst string) (string, error) {
	if dst == "" {
		dst = replaceExt(src, "."+r.Format)
	}

	if err := writeFile(dst, r.Data); err != nil {
		return "", err
	}

	h.logger.Printf("Wrote \"%s\"\n", dst)

	return dst, nil
}
