package opendocument

import (
	"archive/zip"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rrodrig30/count/internal/extract"
)

const contentXML = `<?xml version="1.0" encoding="UTF-8"?>
<office:document-content
  xmlns:office="urn:oasis:names:tc:opendocument:xmlns:office:1.0"
  xmlns:text="urn:oasis:names:tc:opendocument:xmlns:text:1.0">
  <office:body><office:text>
    <text:h text:outline-level="1">Title</text:h>
    <text:p>Hello World</text:p>
    <text:p/>
    <text:p>a<text:tab/>b<text:s text:c="3"/>c</text:p>
  </office:text></office:body>
</office:document-content>`

const metaXML = `<?xml version="1.0" encoding="UTF-8"?>
<office:document-meta
  xmlns:office="urn:oasis:names:tc:opendocument:xmlns:office:1.0"
  xmlns:dc="http://purl.org/dc/elements/1.1/">
  <office:meta>
    <dc:title>Sample ODT</dc:title>
    <dc:creator>nobody</dc:creator>
  </office:meta>
</office:document-meta>`

func writeODF(t *testing.T, entries map[string]string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "sample.odt")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create fixture: %v", err)
	}
	defer f.Close()

	zw := zip.NewWriter(f)
	for name, body := range entries {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatalf("zip entry %s: %v", name, err)
		}
		if _, err := w.Write([]byte(body)); err != nil {
			t.Fatalf("zip write %s: %v", name, err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("close zip: %v", err)
	}
	return path
}

func TestODFJoinsBlocks(t *testing.T) {
	t.Parallel()

	path := writeODF(t, map[string]string{
		"content.xml": contentXML,
		"meta.xml":    metaXML,
	})

	e := New(1 << 20)
	res, err := e.Extract(context.Background(), extract.Job{LocalPath: path, FileName: "sample.odt"})
	if err != nil {
		t.Fatalf("extract: %v", err)
	}

	// The empty paragraph survives as a blank line; text:tab and text:s
	// expand to their plain-text equivalents.
	want := "Title\nHello World\n\na\tb   c"
	if res.Text != want {
		t.Fatalf("text = %q, want %q", res.Text, want)
	}
	if res.Metadata["title"] != "Sample ODT" {
		t.Fatalf("title = %q", res.Metadata["title"])
	}
	if res.Metadata["author"] != "nobody" {
		t.Fatalf("author = %q", res.Metadata["author"])
	}
}

func TestODFMissingContentPart(t *testing.T) {
	t.Parallel()

	path := writeODF(t, map[string]string{"meta.xml": metaXML})

	e := New(1 << 20)
	if _, err := e.Extract(context.Background(), extract.Job{LocalPath: path, FileName: "sample.odt"}); err == nil {
		t.Fatalf("expected error for missing content.xml")
	}
}

func TestODFRejectsNonZip(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "bad.odt")
	if err := os.WriteFile(path, []byte("not a zip"), 0o600); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	e := New(1 << 20)
	if _, err := e.Extract(context.Background(), extract.Job{LocalPath: path, FileName: "bad.odt"}); err == nil {
		t.Fatalf("expected error for non-zip input")
	}
}
