package cart

import (
	"encoding/binary"
	"errors"
	"fmt"
	"strings"
)

const headerEnd = 0x014F

var (
	// ErrROMTooSmall is returned for images that end before the header does.
	ErrROMTooSmall = errors.New("ROM too small to contain header")
	// ErrHeaderChecksum is returned when the 0x014D checksum does not match.
	ErrHeaderChecksum = errors.New("ROM header checksum mismatch")
)

var nintendoLogo = [48]byte{
	0xCE, 0xED, 0x66, 0x66, 0xCC, 0x0D, 0x00, 0x0B, 0x03, 0x73, 0x00, 0x83, 0x00, 0x0C, 0x00, 0x0D,
	0x00, 0x08, 0x11, 0x1F, 0x88, 0x89, 0x00, 0x0E, 0xDC, 0xCC, 0x6E, 0xE6, 0xDD, 0xDD, 0xD9, 0x99,
	0xBB, 0xBB, 0x67, 0x63, 0x6E, 0x0E, 0xEC, 0xCC, 0xDD, 0xDC, 0x99, 0x9F, 0xBB, 0xB9, 0x33, 0x3E,
}

// Header is the subset of the cartridge header worth logging at start-up.
type Header struct {
	Title          string
	CGBFlag        byte // 0x80 supports CGB, 0xC0 CGB only
	CartType       byte
	ROMSizeCode    byte
	RAMSizeCode    byte
	HeaderChecksum byte
	GlobalChecksum uint16
	LogoOK         bool

	ROMSizeBytes int
	ROMBanks     int
	RAMSizeBytes int
	CartTypeStr  string
}

// CGBOnly reports whether the cartridge refuses to run on a DMG.
func (h *Header) CGBOnly() bool { return h.CGBFlag == 0xC0 }

func (h *Header) String() string {
	return fmt.Sprintf("%q type=%s banks=%d ram=%dB", h.Title, h.CartTypeStr, h.ROMBanks, h.RAMSizeBytes)
}

// ParseHeader decodes the header at 0x0100-0x014F. A missing logo is recorded
// but not treated as an error; homebrew and test ROMs often omit it.
func ParseHeader(rom []byte) (*Header, error) {
	if len(rom) < headerEnd+1 {
		return nil, ErrROMTooSmall
	}

	// CGB titles reuse 0x0143 for the flag, so stop before it when set.
	titleEnd := 0x0144
	if rom[0x0143]&0x80 != 0 {
		titleEnd = 0x0143
	}
	title := strings.TrimRight(string(rom[0x0134:titleEnd]), "\x00")

	h := &Header{
		Title:          title,
		CGBFlag:        rom[0x0143],
		CartType:       rom[0x0147],
		ROMSizeCode:    rom[0x0148],
		RAMSizeCode:    rom[0x0149],
		HeaderChecksum: rom[0x014D],
		GlobalChecksum: binary.BigEndian.Uint16(rom[0x014E:0x0150]),
		LogoOK:         [48]byte(rom[0x0104:0x0134]) == nintendoLogo,
	}
	h.ROMSizeBytes, h.ROMBanks = decodeROMSize(h.ROMSizeCode)
	h.RAMSizeBytes = ramSizes[h.RAMSizeCode]
	h.CartTypeStr = cartTypeString(h.CartType)
	return h, nil
}

// HeaderChecksumOK runs the boot ROM's header check over 0x0134-0x014C.
func HeaderChecksumOK(rom []byte) bool {
	if len(rom) < 0x014E {
		return false
	}
	var sum byte
	for addr := 0x0134; addr <= 0x014C; addr++ {
		sum = sum - rom[addr] - 1
	}
	return sum == rom[0x014D]
}

// GlobalChecksumOK reports whether the 16-bit sum of every ROM byte except
// the checksum itself matches h.GlobalChecksum. Hardware never checks it.
func GlobalChecksumOK(rom []byte, h *Header) bool {
	var sum uint16
	for i, b := range rom {
		if i == 0x014E || i == 0x014F {
			continue
		}
		sum += uint16(b)
	}
	return sum == h.GlobalChecksum
}

func decodeROMSize(code byte) (size, banks int) {
	switch {
	case code <= 0x08:
		banks = 2 << code
	case code == 0x52:
		banks = 72
	case code == 0x53:
		banks = 80
	case code == 0x54:
		banks = 96
	default:
		return 0, 0
	}
	return banks * 16 * 1024, banks
}

var ramSizes = map[byte]int{
	0x02: 8 * 1024,
	0x03: 32 * 1024,
	0x04: 128 * 1024,
	0x05: 64 * 1024,
}

func cartTypeString(code byte) string {
	switch code {
	case 0x00:
		return "ROM ONLY"
	case 0x01, 0x02, 0x03:
		return "MBC1 (variants)"
	case 0x05, 0x06:
		return "MBC2 (variants)"
	case 0x0F, 0x10, 0x11, 0x12, 0x13:
		return "MBC3 (variants)"
	case 0x19, 0x1A, 0x1B, 0x1C, 0x1D, 0x1E:
		return "MBC5 (variants)"
	default:
		return "Other/unknown"
	}
}
