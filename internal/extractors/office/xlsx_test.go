package office

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/rrodrig30/count/internal/extract"
)

func writeWorkbook(t *testing.T) string {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetCellValue("Sheet1", "A1", "Hello"); err != nil {
		t.Fatalf("set cell: %v", err)
	}
	if err := f.SetCellValue("Sheet1", "B1", "World"); err != nil {
		t.Fatalf("set cell: %v", err)
	}
	if err := f.SetCellValue("Sheet1", "A2", 42); err != nil {
		t.Fatalf("set cell: %v", err)
	}

	path := filepath.Join(t.TempDir(), "book.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("save workbook: %v", err)
	}
	return path
}

func TestXLSXFlattensCells(t *testing.T) {
	t.Parallel()

	path := writeWorkbook(t)

	e := NewXLSX(1 << 20)
	res, err := e.Extract(context.Background(), extract.Job{LocalPath: path, FileName: "book.xlsx"})
	if err != nil {
		t.Fatalf("extract: %v", err)
	}

	want := "Hello World\n42"
	if res.Text != want {
		t.Fatalf("text = %q, want %q", res.Text, want)
	}
	if res.Metadata["sheets"] != "1" {
		t.Fatalf("sheets = %q", res.Metadata["sheets"])
	}
	if res.Metadata["rows"] != "2" {
		t.Fatalf("rows = %q", res.Metadata["rows"])
	}
}

func TestXLSXRejectsNonWorkbook(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "absent.xlsx")

	e := NewXLSX(1 << 20)
	if _, err := e.Extract(context.Background(), extract.Job{LocalPath: path, FileName: "absent.xlsx"}); err == nil {
		t.Fatalf("expected error for missing workbook")
	}
}
