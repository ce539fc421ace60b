package hexpix

import "errors"

var (
	// ErrImageRead is returned when the source image is missing or cannot
	// be decoded.
	ErrImageRead = errors.New("hexpix: cannot read image")
	// ErrContainerWrite is returned when an output file cannot be written.
	ErrContainerWrite = errors.New("hexpix: cannot write file")
	// ErrContainerRead is returned when a hex container cannot be read.
	ErrContainerRead = errors.New("hexpix: cannot read container")
)
