// Package office handles word-processor and spreadsheet uploads.
package office

import (
	"archive/zip"
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"github.com/rrodrig30/count/internal/extract"
)

// DOCXExtractor enumerates the paragraphs of an OOXML word-processing
// document in order and joins them with newlines. Empty paragraphs are kept
// so line counts reflect the document layout.
//
// The .doc extension is routed here as well: modern "doc" uploads are
// usually OOXML with a legacy extension, and a genuine binary .doc fails the
// zip open and surfaces as an extraction error.
type DOCXExtractor struct {
	maxBytes int64
}

func NewDOCX(maxBytes int64) *DOCXExtractor {
	return &DOCXExtractor{maxBytes: maxBytes}
}

func (e *DOCXExtractor) Name() string       { return "document/docx" }
func (e *DOCXExtractor) MaxFileSize() int64 { return e.maxBytes }
func (e *DOCXExtractor) SupportedTypes() []string {
	return []string{
		"application/vnd.openxmlformats-officedocument.wordprocessingml.document",
		"application/msword",
	}
}
func (e *DOCXExtractor) SupportedExtensions() []string { return []string{".docx", ".doc"} }

func (e *DOCXExtractor) Extract(ctx context.Context, job extract.Job) (extract.Result, error) {
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

	body, err := readZipFile(&zr.Reader, "word/document.xml", e.maxBytes)
	if err != nil {
		return extract.Result{}, err
	}

	paragraphs := docxParagraphs(body)
	return extract.Result{
		Text:     strings.Join(paragraphs, "\n"),
		Method:   "native",
		FileType: e.Name(),
		MIMEType: job.MIMEType,
		Metadata: parseCoreMetadata(&zr.Reader, e.maxBytes),
	}, nil
}

// docxParagraphs walks <w:body> collecting the text of every <w:p> element,
// empty ones included.
func docxParagraphs(b []byte) []string {
	dec := xml.NewDecoder(strings.NewReader(string(b)))

	var paragraphs []string
	for {
		tok, err := dec.Token()
		if err != nil {
			break
		}
		se, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		if se.Name.Local == "p" {
			paragraphs = append(paragraphs, docxParagraph(dec))
		}
	}
	return paragraphs
}

// docxParagraph reads one <w:p> element and returns its run text. Tabs and
// soft line breaks map to their plain-text equivalents.
func docxParagraph(dec *xml.Decoder) string {
	var runs []string
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
			case "t":
				runs = append(runs, readCharData(dec, &depth))
			case "tab":
				runs = append(runs, "\t")
			case "br", "cr":
				runs = append(runs, "\n")
			}
		case xml.EndElement:
			depth--
		}
	}
	return strings.Join(runs, "")
}

// readCharData reads character data inside a text element, tracking depth.
func readCharData(dec *xml.Decoder, depth *int) string {
	var sb strings.Builder
	for {
		tok, err := dec.Token()
		if err != nil {
			break
		}
		switch t := tok.(type) {
		case xml.CharData:
			sb.Write(t)
		case xml.StartElement:
			*depth++
		case xml.EndElement:
			*depth--
			return sb.String()
		}
	}
	return sb.String()
}

// readZipFile returns the named entry's bytes, refusing entries whose
// uncompressed size exceeds limit (zip-bomb guard).
func readZipFile(zr *zip.Reader, name string, limit int64) ([]byte, error) {
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

// parseCoreMetadata extracts title, author, and dates from docProps/core.xml.
func parseCoreMetadata(zr *zip.Reader, limit int64) map[string]string {
	b, err := readZipFile(zr, "docProps/core.xml", limit)
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
			case "creator":
				meta["author"] = val
			case "created":
				meta["created"] = val
			case "modified":
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
