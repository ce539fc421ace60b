/*
Package container implements a hex container decoder and encoder.

A hex container is an uncompressed textual dump of an image's pixels. The
file starts with an 8 byte header holding the width and height as two
little-endian 32-bit unsigned integers. The rest of the file is UTF-8 text
with one line per row of the image. Each line is the concatenation of one
6 digit hex color token per pixel, two digits each for red, green and blue,
and lines are separated by a single newline with no trailing newline after
the last row.

There is no alpha channel; decoded images are always fully opaque.
*/
package container

import "errors"

const (
	// Extension is the file extension used for hex containers.
	Extension = ".hexpix"

	// HeaderSize is the length in bytes of the container header.
	HeaderSize = 8

	tokenSize = 6
	rowSep    = '\n'
)

var (
	// ErrHeader is returned when the container is too short to hold a header.
	ErrHeader = errors.New("container: short header")
	// ErrEncoding is returned when the pixel data is not valid UTF-8.
	ErrEncoding = errors.New("container: invalid UTF-8 in pixel data")
	// ErrTokenLength is returned when the pixel data does not split into
	// exactly width*height color tokens.
	ErrTokenLength = errors.New("container: bad token length")
	// ErrColorParse is returned when a color token is not a hex color.
	ErrColorParse = errors.New("container: invalid color token")
)
