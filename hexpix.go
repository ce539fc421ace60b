/*
Package hexpix is a library for converting images to and from hex
containers, a plain text dump of an image's pixels.
*/
package hexpix

import (
	"log"
)

// HexPix converts between image files and hex container files. An optional
// catalog caches compiled containers keyed by the source image.
type HexPix struct {
	catalog *Catalog
	logger  *log.Logger
}

// New returns a HexPix that logs to logger. If db is not empty the catalog
// at that path is opened, and created if necessary.
func New(db string, logger *log.Logger) (*HexPix, error) {
	h := &HexPix{
		logger: logger,
	}
	if db != "" {
		c, err := NewCatalog(db)
		if err != nil {
			return nil, err
		}
		h.catalog = c
	}
	return h, nil
}

// Catalog returns the catalog in use, or nil if there isn't one.
func (h *HexPix) Catalog() *Catalog {
	return h.catalog
}

// Close releases the catalog, if any.
func (h *HexPix) Close() error {
	if h.catalog == nil {
		return nil
	}
	return h.catalog.Close()
}
