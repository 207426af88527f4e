// Package opendocument handles OASIS OpenDocument uploads.
package opendocument

import (
	"archive/zip"
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/rrodrig30/count/internal/extract"
)

const odfTextNS = "urn:oasis:names:tc:opendocument:xmlns:text:1.0"

// Extractor enumerates the paragraphs and headings of an OpenDocument file
// in order and joins them with newlines. Table and list text is covered by
// the same walk: ODF nests it inside ordinary paragraph elements. Empty
// paragraphs are kept so line counts reflect the document layout.
type Extractor struct {
	maxBytes int64
}

func New(maxBytes int64) *Extractor { return &Extractor{maxBytes: maxBytes} }

func (e *Extractor) Name() string       { return "document/opendocument" }
func (e *Extractor) MaxFileSize() int64 { return e.maxBytes }
func (e *Extractor) SupportedTypes() []string {
	return []string{
		"application/vnd.oasis.opendocument.text",
		"application/vnd.oasis.opendocument.spreadsheet",
	}
}
func (e *Extractor) SupportedExtensions() []string { return []string{".odt", ".ods"} }

func (e *Extractor) Extract(ctx context.Context, job extract.Job) (extract.Result, error) {
	select {
	case <-ctx.Done():
		return extract.Result{}, ctx.Err()
	default:
	}

	zr, err := zip.OpenReader(job.LocalPath)
	if err != nil {
		return extract.Result{}, fmt.Errorf("open document: %w", err)
	}
	defer zr.Close()

	content, err := odfZipEntry(&zr.Reader, "content.xml", e.maxBytes)
	if err != nil {
		return extract.Result{}, err
	}

	return extract.Result{
		Text:     odfText(content),
		Method:   "native",
		FileType: e.Name(),
		MIMEType: job.MIMEType,
		Metadata: odfMetadata(&zr.Reader, e.maxBytes),
	}, nil
}

// odfText walks content.xml collecting the text of every text:p and text:h
// element, empty ones included.
func odfText(b []byte) string {
	dec := xml.NewDecoder(strings.NewReader(string(b)))

	var blocks []string
	for {
		tok, err := dec.Token()
		if err != nil {
			break
		}
		se, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		if se.Name.Space == odfTextNS && (se.Name.Local == "p" || se.Name.Local == "h") {
			blocks = append(blocks, odfBlockText(dec))
		}
	}
	return strings.Join(blocks, "\n")
}

// odfBlockText reads one paragraph or heading element. Tabs, soft line
// breaks, and run-length encoded spaces (text:s) map to their plain-text
// equivalents.
func odfBlockText(dec *xml.Decoder) string {
	var sb strings.Builder
	depth := 1

	for depth > 0 {
		tok, err := dec.Token()
		if err != nil {
			break
		}
		switch t := tok.(type) {
		case xml.StartElement:
			depth++
			switch t.Name.Local {
			case "tab":
				sb.WriteString("\t")
			case "line-break":
				sb.WriteString("\n")
			case "s":
				sb.WriteString(strings.Repeat(" ", odfSpaceCount(t)))
			}
		case xml.EndElement:
			depth--
		case xml.CharData:
			sb.Write(t)
		}
	}
	return sb.String()
}

// odfSpaceCount returns the space count of a text:s element, default one.
func odfSpaceCount(se xml.StartElement) int {
	for _, a := range se.Attr {
		if a.Name.Local == "c" {
			if n, err := strconv.Atoi(a.Value); err == nil && n > 0 && n <= 1024 {
				return n
			}
		}
	}
	return 1
}

// odfMetadata extracts title, author, and dates from meta.xml.
func odfMetadata(zr *zip.Reader, limit int64) map[string]string {
	b, err := odfZipEntry(zr, "meta.xml", limit)
	if err != nil {
		return nil
	}

	meta := map[string]string{}
	dec := xml.NewDecoder(strings.NewReader(string(b)))
	var currentTag string

	for {
		tok, err := dec.Token()
		if err != nil {
			break
		}
		switch t := tok.(type) {
		case xml.StartElement:
			currentTag = t.Name.Local
		case xml.CharData:
			val := strings.TrimSpace(string(t))
			if val == "" {
				continue
			}
			switch currentTag {
			case "title":
				meta["title"] = val
			case "initial-creator", "creator":
				meta["author"] = val
			case "creation-date":
				meta["created"] = val
			case "date":
				meta["modified"] = val
			}
		case xml.EndElement:
			currentTag = ""
		}
	}

	if len(meta) == 0 {
		return nil
	}
	return meta
}

// odfZipEntry returns the named entry's bytes, refusing entries whose
// uncompressed size exceeds limit (zip-bomb guard).
func odfZipEntry(zr *zip.Reader, name string, limit int64) ([]byte, error) {
	for _, f := range zr.File {
		if f.Name != name {
			continue
		}
		if limit > 0 && f.UncompressedSize64 > uint64(limit) {
			return nil, fmt.Errorf("%s exceeds %dMB limit", name, limit/(1<<20))
		}
		rc, err := f.Open()
		if err != nil {
			return nil, err
		}
		defer rc.Close()

		var r io.Reader = rc
		if limit > 0 {
			r = &io.LimitedReader{R: rc, N: limit + 1}
		}
		b, err := io.ReadAll(r)
		if err != nil {
			return nil, err
		}
		if limit > 0 && int64(len(b)) > limit {
			return nil, fmt.Errorf("%s exceeds %dMB limit", name, limit/(1<<20))
		}
		return b, nil
	}
	return nil, fmt.Errorf("missing %s", name)
}
