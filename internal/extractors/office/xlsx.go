package office

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/rrodrig30/count/internal/extract"
)

// XLSXExtractor flattens workbook cells into text: cells joined by spaces,
// rows and sheets by newlines.
type XLSXExtractor struct {
	maxBytes int64
}

func NewXLSX(maxBytes int64) *XLSXExtractor {
	return &XLSXExtractor{maxBytes: maxBytes}
}

func (e *XLSXExtractor) Name() string       { return "document/xlsx" }
func (e *XLSXExtractor) MaxFileSize() int64 { return e.maxBytes }
func (e *XLSXExtractor) SupportedTypes() []string {
	return []string{"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"}
}
func (e *XLSXExtractor) SupportedExtensions() []string { return []string{".xlsx"} }

func (e *XLSXExtractor) Extract(ctx context.Context, job extract.Job) (extract.Result, error) {
	select {
	case <-ctx.Done():
		return extract.Result{}, ctx.Err()
	default:
	}

	f, err := excelize.OpenFile(job.LocalPath)
	if err != nil {
		return extract.Result{}, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	var lines []string
	totalRows := 0
	sheets := f.GetSheetList()
	for _, sheet := range sheets {
		rows, err := f.GetRows(sheet)
		if err != nil {
			return extract.Result{}, fmt.Errorf("read sheet %s: %w", sheet, err)
		}
		for _, row := range rows {
			line := strings.TrimSpace(strings.Join(row, " "))
			if line == "" {
				continue
			}
			lines = append(lines, line)
			totalRows++
		}
	}

	return extract.Result{
		Text:     strings.Join(lines, "\n"),
		Method:   "native",
		FileType: e.Name(),
		MIMEType: job.MIMEType,
		Metadata: map[string]string{
			"sheets": strconv.Itoa(len(sheets)),
			"rows":   strconv.Itoa(totalRows),
		},
	}, nil
}
