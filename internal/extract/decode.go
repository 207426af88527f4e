package extract

import (
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// DecodeText decodes b as UTF-8 when valid, otherwise as ISO 8859-1. The
// fallback cannot fail: every byte value maps to a defined Latin-1 rune.
// The second return names the encoding that was used.
func DecodeText(b []byte) (string, string) {
	if utf8.Valid(b) {
		return string(b), "utf-8"
	}
	s, err := charmap.ISO8859_1.NewDecoder().String(string(b))
	if err != nil {
		// Unreachable for ISO 8859-1; keep the contract total anyway.
		return string(b), "binary"
	}
	return s, "latin-1"
}
