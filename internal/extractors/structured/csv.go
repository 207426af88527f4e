// Package structured handles delimited text uploads.
package structured

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/rrodrig30/count/internal/extract"
)

// CSVExtractor flattens a comma-separated file into one string: every cell
// from every row, joined by single spaces. Row and column structure is
// deliberately discarded; only cell text feeds the statistics.
type CSVExtractor struct {
	maxBytes int64
}

func NewCSV(maxBytes int64) *CSVExtractor { return &CSVExtractor{maxBytes: maxBytes} }

func (e *CSVExtractor) Name() string                  { return "structured/csv" }
func (e *CSVExtractor) MaxFileSize() int64            { return e.maxBytes }
func (e *CSVExtractor) SupportedTypes() []string      { return []string{"text/csv"} }
func (e *CSVExtractor) SupportedExtensions() []string { return []string{".csv"} }

func (e *CSVExtractor) Extract(ctx context.Context, job extract.Job) (extract.Result, error) {
	select {
	case <-ctx.Done():
		return extract.Result{}, ctx.Err()
	default:
	}

	b, err := os.ReadFile(job.LocalPath)
	if err != nil {
		return extract.Result{}, err
	}

	raw, enc := extract.DecodeText(b)
	r := csv.NewReader(strings.NewReader(raw))
	r.FieldsPerRecord = -1
	recs, err := r.ReadAll()
	if err != nil {
		return extract.Result{}, fmt.Errorf("parse csv: %w", err)
	}

	var cells []string
	for _, row := range recs {
		cells = append(cells, row...)
	}

	return extract.Result{
		Text:     strings.Join(cells, " "),
		Method:   "native",
		FileType: e.Name(),
		MIMEType: job.MIMEType,
		Metadata: map[string]string{
			"rows":     strconv.Itoa(len(recs)),
			"encoding": enc,
		},
	}, nil
}
