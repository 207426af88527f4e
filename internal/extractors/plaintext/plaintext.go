// Package plaintext handles plain text, RTF, and HTML uploads.
package plaintext

import (
	"context"
	"os"

	"github.com/rrodrig30/count/internal/extract"
)

// Extractor is the passthrough for plain text uploads. Content is returned
// as-is so downstream counts reflect the file exactly; the only transform is
// the UTF-8 to Latin-1 decode fallback.
type Extractor struct {
	maxBytes int64
}

func New(maxBytes int64) *Extractor {
	return &Extractor{maxBytes: maxBytes}
}

func (e *Extractor) Name() string       { return "text" }
func (e *Extractor) MaxFileSize() int64 { return e.maxBytes }

func (e *Extractor) SupportedTypes() []string {
	return []string{"text/plain", "text/markdown"}
}

func (e *Extractor) SupportedExtensions() []string {
	return []string{".txt", ".text", ".log", ".md"}
}

func (e *Extractor) Extract(ctx context.Context, job extract.Job) (extract.Result, error) {
	select {
	case <-ctx.Done():
		return extract.Result{}, ctx.Err()
	default:
	}

	b, err := os.ReadFile(job.LocalPath)
	if err != nil {
		return extract.Result{}, err
	}

	text, enc := extract.DecodeText(b)
	return extract.Result{
		Text:     text,
		Method:   "native",
		FileType: "text/plain",
		MIMEType: job.MIMEType,
		Metadata: map[string]string{"encoding": enc},
	}, nil
}
