package plaintext

import (
	"context"
	"testing"

	"github.com/rrodrig30/count/internal/extract"
)

func TestHTMLStripsMarkup(t *testing.T) {
	t.Parallel()

	const page = `<html><head><title>Sample</title><style>p{color:red}</style></head>` +
		`<body><h1>Heading</h1><p>First paragraph</p><script>var x = 1;</script>` +
		`<ul><li>item one</li><li>item two</li></ul></body></html>`
	path := writeFixture(t, "page.html", []byte(page))

	e := NewHTML(1 << 20)
	res, err := e.Extract(context.Background(), extract.Job{LocalPath: path, FileName: "page.html"})
	if err != nil {
		t.Fatalf("extract: %v", err)
	}

	want := "Heading\nFirst paragraph\nitem one\nitem two"
	if res.Text != want {
		t.Fatalf("text = %q, want %q", res.Text, want)
	}
	if res.Metadata["title"] != "Sample" {
		t.Fatalf("title = %q", res.Metadata["title"])
	}
}

func TestHTMLBareTextFallsThrough(t *testing.T) {
	t.Parallel()

	path := writeFixture(t, "bare.html", []byte("just text, no block markup"))

	e := NewHTML(1 << 20)
	res, err := e.Extract(context.Background(), extract.Job{LocalPath: path, FileName: "bare.html"})
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if res.Text != "just text, no block markup" {
		t.Fatalf("text = %q", res.Text)
	}
}
