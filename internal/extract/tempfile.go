package extract

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// SavedFile is an upload written to a scratch directory. Callers own it and
// must call Cleanup on every exit path.
type SavedFile struct {
	TempDir  string
	Path     string
	MIMEType string
	Size     int64
}

func (s SavedFile) Cleanup() {
	if s.TempDir != "" {
		_ = os.RemoveAll(s.TempDir)
	}
}

// SaveToTemp writes an upload stream to a fresh temp directory and sniffs
// its MIME type. Uploads larger than maxBytes are rejected with a
// PayloadTooLargeError and leave nothing behind.
func SaveToTemp(body io.Reader, fileName string, maxBytes int64) (SavedFile, error) {
	tmpDir, err := os.MkdirTemp("", "count-*")
	if err != nil {
		return SavedFile{}, fmt.Errorf("temp dir: %w", err)
	}

	safeName := strings.TrimSpace(fileName)
	if safeName == "" {
		safeName = "input.bin"
	}
	outPath := filepath.Join(tmpDir, filepath.Base(safeName))

	f, err := os.Create(outPath)
	if err != nil {
		_ = os.RemoveAll(tmpDir)
		return SavedFile{}, fmt.Errorf("create: %w", err)
	}
	defer f.Close()

	lr := &io.LimitedReader{R: body, N: maxBytes + 1}
	n, err := io.Copy(f, lr)
	if err != nil {
		_ = os.RemoveAll(tmpDir)
		return SavedFile{}, fmt.Errorf("write: %w", err)
	}
	if n > maxBytes {
		_ = os.RemoveAll(tmpDir)
		return SavedFile{}, &PayloadTooLargeError{Limit: maxBytes}
	}

	if err := f.Sync(); err != nil {
		_ = os.RemoveAll(tmpDir)
		return SavedFile{}, fmt.Errorf("sync: %w", err)
	}

	return SavedFile{
		TempDir:  tmpDir,
		Path:     outPath,
		MIMEType: sniffMIMEType(outPath),
		Size:     n,
	}, nil
}

func sniffMIMEType(path string) string {
	m, err := mimetype.DetectFile(path)
	if err == nil && m != nil {
		return strings.ToLower(strings.TrimSpace(m.String()))
	}

	f, err := os.Open(path)
	if err != nil {
		return ""
	}
	defer f.Close()

	buf := make([]byte, 512)
	n, _ := f.Read(buf)
	if n <= 0 {
		return ""
	}
	return strings.ToLower(strings.TrimSpace(http.DetectContentType(buf[:n])))
}
