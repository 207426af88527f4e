package plaintext

import (
	"context"
	"testing"

	"github.com/rrodrig30/count/internal/extract"
)

func TestRTFStripsControlWords(t *testing.T) {
	t.Parallel()

	const doc = `{\rtf1\ansi\deff0 {\fonttbl{\f0 Times New Roman;}}\f0\fs24 Hello\par World\par}`
	path := writeFixture(t, "sample.rtf", []byte(doc))

	e := NewRTF(1 << 20)
	res, err := e.Extract(context.Background(), extract.Job{LocalPath: path, FileName: "sample.rtf"})
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if res.Text != "Hello\nWorld" {
		t.Fatalf("text = %q, want %q", res.Text, "Hello\nWorld")
	}
}

func TestRTFToText(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		in   string
		want string
	}{
		{"hex escape", `{\rtf1 caf\'e9\par}`, "café"},
		{"unicode escape", `{\rtf1 snowman \u9731?\par}`, "snowman ☃"},
		{"escaped braces", `{\rtf1 a\{b\}c}`, "a{b}c"},
		{"escaped backslash", `{\rtf1 a\\b}`, `a\b`},
		{"tab control", `{\rtf1 a\tab b}`, "a\tb"},
		{"line control", `{\rtf1 a\line b}`, "a\nb"},
		{"skips info group", `{\rtf1 {\info{\author nobody}}text}`, "text"},
		{"empty", `{\rtf1}`, ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := rtfToText(tc.in); got != tc.want {
				t.Fatalf("rtfToText(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}
