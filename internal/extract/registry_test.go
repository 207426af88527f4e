package extract

import (
	"context"
	"errors"
	"testing"
)

type stubExtractor struct {
	name string
	mts  []string
	exts []string

	text    string
	err     error
	called  bool
	lastJob Job
}

func (s *stubExtractor) Extract(ctx context.Context, job Job) (Result, error) {
	s.called = true
	s.lastJob = job
	if s.err != nil {
		return Result{}, s.err
	}
	return Result{Text: s.text, Method: "stub", FileType: s.name, MIMEType: job.MIMEType}, nil
}
func (s *stubExtractor) SupportedTypes() []string      { return s.mts }
func (s *stubExtractor) SupportedExtensions() []string { return s.exts }
func (s *stubExtractor) Name() string                  { return s.name }
func (s *stubExtractor) MaxFileSize() int64            { return 0 }

func TestResolvePrefersExtension(t *testing.T) {
	t.Parallel()

	r := NewRegistry()
	r.Register(&stubExtractor{name: "generic-text", mts: []string{"text/plain"}, exts: []string{".txt"}})
	r.Register(&stubExtractor{name: "csv", exts: []string{".csv"}})

	e, err := r.Resolve("text/plain", ".csv")
	if err != nil {
		t.Fatalf("resolve error: %v", err)
	}
	if e.Name() != "csv" {
		t.Fatalf("expected csv extractor, got %q", e.Name())
	}
}

func TestResolveFallsBackToMIME(t *testing.T) {
	t.Parallel()

	r := NewRegistry()
	r.Register(&stubExtractor{name: "generic-text", mts: []string{"text/plain"}, exts: []string{".txt"}})

	e, err := r.Resolve("text/plain; charset=utf-8", ".unknown")
	if err != nil {
		t.Fatalf("resolve error: %v", err)
	}
	if e.Name() != "generic-text" {
		t.Fatalf("expected generic-text extractor, got %q", e.Name())
	}
}

func TestResolveTextSubtypeFallsBackToTextPlain(t *testing.T) {
	t.Parallel()

	r := NewRegistry()
	r.Register(&stubExtractor{name: "generic-text", mts: []string{"text/plain"}, exts: []string{".txt"}})

	e, err := r.Resolve("text/x-log", "")
	if err != nil {
		t.Fatalf("resolve error: %v", err)
	}
	if e.Name() != "generic-text" {
		t.Fatalf("expected generic-text extractor, got %q", e.Name())
	}
}

func TestResolveUnknownReturnsUnsupportedFormat(t *testing.T) {
	t.Parallel()

	r := NewRegistry()
	r.Register(&stubExtractor{name: "generic-text", mts: []string{"text/plain"}, exts: []string{".txt"}})

	_, err := r.Resolve("application/octet-stream", ".exe")
	var unsupported *UnsupportedFormatError
	if !errors.As(err, &unsupported) {
		t.Fatalf("expected UnsupportedFormatError, got %v", err)
	}
	if unsupported.Extension != ".exe" {
		t.Fatalf("expected extension .exe in error, got %q", unsupported.Extension)
	}
}
