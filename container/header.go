package container

import (
	"encoding/binary"
)

// Header holds the dimensions of a hex container. It implements the
// encoding.BinaryMarshaler and encoding.BinaryUnmarshaler interfaces.
//
// The dimensions are always stored little-endian regardless of the host.
// Containers written by tools that used the host byte order are only
// readable if they were produced on a little-endian machine.
type Header struct {
	Width  uint32
	Height uint32
}

// MarshalBinary encodes the header into its 8 byte form
func (h Header) MarshalBinary() ([]byte, error) {
	b := make([]byte, HeaderSize)
	binary.LittleEndian.PutUint32(b[0:4], h.Width)
	binary.LittleEndian.PutUint32(b[4:8], h.Height)
	return b, nil
}

// UnmarshalBinary decodes the header from the first 8 bytes of b
func (h *Header) UnmarshalBinary(b []byte) error {
	if len(b) < HeaderSize {
		return ErrHeader
	}
	h.Width = binary.LittleEndian.Uint32(b[0:4])
	h.Height = binary.LittleEndian.Uint32(b[4:8])
	return nil
}

// Pixels returns the number of color tokens a container with this header
// holds.
func (h Header) Pixels() uint64 {
	return uint64(h.Width) * uint64(h.Height)
}
