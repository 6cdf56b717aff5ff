package winreg

import (
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
)

// Encoding controls how a string is narrowed before it is stored.
type Encoding int

const (
	// EncodingNative stores the string unchanged; the registry API writes UTF-16.
	EncodingNative Encoding = iota
	// EncodingLegacy stores one byte per character (ISO 8859-1). Characters
	// outside Latin-1 are replaced by the ASCII substitute byte 0x1A.
	EncodingLegacy
)

func (e Encoding) String() string {
	if e == EncodingLegacy {
		return "legacy"
	}
	return "native"
}

func ParseEncoding(name string) (Encoding, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "native", "utf16", "utf-16":
		return EncodingNative, nil
	case "legacy", "latin1", "iso8859-1":
		return EncodingLegacy, nil
	}
	return 0, fmt.Errorf("%w: unknown encoding %q", ErrInvalidArgument, name)
}

func (e Encoding) apply(value string) (string, error) {
	if e != EncodingLegacy {
		return value, nil
	}
	narrow, err := encoding.ReplaceUnsupported(charmap.ISO8859_1.NewEncoder()).String(value)
	if err != nil {
		return "", fmt.Errorf("failed to encode value: %w", err)
	}
	return charmap.ISO8859_1.NewDecoder().String(narrow)
}

// trimPadding drops whitespace and NUL padding around a value. Other control
// characters are kept so legacy substitute bytes survive a round trip.
func trimPadding(s string) string {
	return strings.TrimFunc(s, func(r rune) bool { return r == 0 || unicode.IsSpace(r) })
}
