package extract

import (
	"context"
	"io"
	"path/filepath"
	"strings"

	"github.com/rrodrig30/count/internal/stats"
)

// Report is the outcome of analyzing one uploaded document.
type Report struct {
	Filename string            `json:"filename"`
	FileType string            `json:"fileType"`
	MIMEType string            `json:"mimeType"`
	Method   string            `json:"method"`
	Metadata map[string]string `json:"metadata,omitempty"`
	Counts   stats.Counts      `json:"counts"`
	Ratios   stats.Ratios      `json:"ratios"`
}

// Analyzer runs the full pipeline for one upload: save to a temp file,
// resolve an extractor, extract text, compute statistics. The temp file is
// removed on every exit path, success or failure.
type Analyzer struct {
	registry *Registry
	maxBytes int64
}

func NewAnalyzer(registry *Registry, maxBytes int64) *Analyzer {
	return &Analyzer{registry: registry, maxBytes: maxBytes}
}

func (a *Analyzer) Analyze(ctx context.Context, body io.Reader, fileName string) (Report, error) {
	sf, err := SaveToTemp(body, fileName, a.maxBytes)
	if err != nil {
		return Report{}, err
	}
	defer sf.Cleanup()

	ext := strings.ToLower(filepath.Ext(fileName))
	extractor, err := a.registry.Resolve(sf.MIMEType, ext)
	if err != nil {
		return Report{}, err
	}

	if max := extractor.MaxFileSize(); max > 0 && sf.Size > max {
		return Report{}, &PayloadTooLargeError{Limit: max}
	}

	job := Job{
		LocalPath: sf.Path,
		FileName:  fileName,
		MIMEType:  sf.MIMEType,
		FileSize:  sf.Size,
	}

	res, err := extractor.Extract(ctx, job)
	if err != nil {
		return Report{}, &ExtractionError{FileType: extractor.Name(), Err: err}
	}

	counts := stats.Analyze(res.Text)
	mt := res.MIMEType
	if mt == "" {
		mt = sf.MIMEType
	}
	return Report{
		Filename: fileName,
		FileType: res.FileType,
		MIMEType: mt,
		Method:   res.Method,
		Metadata: res.Metadata,
		Counts:   counts,
		Ratios:   counts.Ratios(),
	}, nil
}
