// Package cart loads Game Boy ROM images and decodes their headers.
package cart

import (
	"fmt"
	"os"
	"path/filepath"
)

// Cartridge is a ROM image loaded from disk.
type Cartridge struct {
	Path   string
	ROM    []byte
	Header *Header
}

// Load reads the ROM at path and validates its header. The global checksum
// is informational only, as on hardware.
func Load(path string) (*Cartridge, error) {
	rom, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read ROM: %w", err)
	}
	return FromBytes(path, rom)
}

// FromBytes validates an in-memory ROM image.
func FromBytes(path string, rom []byte) (*Cartridge, error) {
	h, err := ParseHeader(rom)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	if !HeaderChecksumOK(rom) {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), ErrHeaderChecksum)
	}
	if h.ROMSizeBytes != 0 && len(rom) < h.ROMSizeBytes {
		return nil, fmt.Errorf("%s: image is %d bytes, header declares %d", filepath.Base(path), len(rom), h.ROMSizeBytes)
	}
	return &Cartridge{Path: path, ROM: rom, Header: h}, nil
}
