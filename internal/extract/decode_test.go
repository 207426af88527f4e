package extract

import (
	"testing"
	"unicode/utf8"
)

func TestDecodeTextValidUTF8PassesThrough(t *testing.T) {
	t.Parallel()

	for _, s := range []string{"", "plain ascii", "héllo wörld", "日本語"} {
		got, enc := DecodeText([]byte(s))
		if got != s {
			t.Fatalf("DecodeText(%q) = %q", s, got)
		}
		if enc != "utf-8" {
			t.Fatalf("expected utf-8 encoding tag, got %q", enc)
		}
	}
}

func TestDecodeTextFallsBackToLatin1(t *testing.T) {
	t.Parallel()

	// "café" encoded as ISO 8859-1: 0xE9 alone is invalid UTF-8.
	got, enc := DecodeText([]byte{'c', 'a', 'f', 0xE9})
	if got != "café" {
		t.Fatalf("expected café, got %q", got)
	}
	if enc != "latin-1" {
		t.Fatalf("expected latin-1 encoding tag, got %q", enc)
	}
}

func TestDecodeTextLatin1NeverFails(t *testing.T) {
	t.Parallel()

	// Every byte value maps to a defined Latin-1 rune, so any byte soup
	// decodes to exactly one rune per byte.
	b := make([]byte, 256)
	for i := range b {
		b[i] = byte(i)
	}
	got, _ := DecodeText(b)
	if n := utf8.RuneCountInString(got); n != 256 {
		t.Fatalf("expected 256 runes, got %d", n)
	}
}
