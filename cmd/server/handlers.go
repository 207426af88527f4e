package main

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/rrodrig30/count/internal/extract"
)

//go:embed templates/*.html
var templateFS embed.FS

var tmpl = template.Must(template.ParseFS(templateFS, "templates/*.html"))

// multipart form overhead on top of the file itself (boundaries, headers)
const formOverheadBytes = 1 << 20

type indexPage struct {
	Flash       string
	Formats     string
	MaxUploadMB int64
}

type resultsPage struct {
	Report extract.Report
}

func handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	page := indexPage{
		Flash:       popFlash(w, r),
		Formats:     strings.ToUpper(strings.Join(cfg.AllowedExtensions, ", ")),
		MaxUploadMB: cfg.MaxUploadBytes / (1 << 20),
	}
	renderTemplate(w, "index.html", page)
}

func handleUpload(w http.ResponseWriter, r *http.Request) {
	report, err := analyzeUpload(w, r)
	if err != nil {
		metrics.incAnalysis(false)
		setFlash(w, userMessage(err))
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	metrics.incAnalysis(true)
	renderTemplate(w, "results.html", resultsPage{Report: report})
}

func handleAPIAnalyze(w http.ResponseWriter, r *http.Request) {
	report, err := analyzeUpload(w, r)
	if err != nil {
		metrics.incAnalysis(false)
		status, code := statusFor(err)
		writeErr(w, status, code, userMessage(err))
		return
	}

	metrics.incAnalysis(true)
	writeJSON(w, http.StatusOK, report)
}

// analyzeUpload runs the shared upload pipeline: size-capped multipart parse,
// extension gate, then extraction and statistics. The extension gate runs
// before any extraction work, so a disallowed upload never touches a parser.
func analyzeUpload(w http.ResponseWriter, r *http.Request) (extract.Report, error) {
	r.Body = http.MaxBytesReader(w, r.Body, cfg.MaxUploadBytes+formOverheadBytes)

	file, header, err := r.FormFile("file")
	if err != nil {
		var mbe *http.MaxBytesError
		if errors.As(err, &mbe) {
			return extract.Report{}, &extract.PayloadTooLargeError{Limit: cfg.MaxUploadBytes}
		}
		return extract.Report{}, extract.ErrNoFile
	}
	defer file.Close()

	if strings.TrimSpace(header.Filename) == "" {
		return extract.Report{}, extract.ErrNoFile
	}

	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(header.Filename)), ".")
	if !allowedExts[ext] {
		return extract.Report{}, &extract.UnsupportedFormatError{Extension: ext}
	}

	ctx, cancel := context.WithTimeout(r.Context(), cfg.ExtractTimeout)
	defer cancel()

	return analyzer.Analyze(ctx, file, header.Filename)
}

// userMessage maps the error taxonomy to the message shown on the form.
func userMessage(err error) string {
	var (
		unsupported *extract.UnsupportedFormatError
		tooLarge    *extract.PayloadTooLargeError
		extraction  *extract.ExtractionError
	)
	switch {
	case errors.Is(err, extract.ErrNoFile):
		return "No file selected. Please choose a file to upload."
	case errors.As(err, &unsupported):
		return fmt.Sprintf("Invalid file format. Please upload %s files only.",
			strings.ToUpper(strings.Join(cfg.AllowedExtensions, ", ")))
	case errors.As(err, &tooLarge):
		return fmt.Sprintf("File too large. Please upload files smaller than %dMB.", tooLarge.Limit/(1<<20))
	case errors.As(err, &extraction):
		return "Error processing file: " + sanitizeError(extraction.Err)
	default:
		return "Error processing file: " + sanitizeError(err)
	}
}

func statusFor(err error) (int, string) {
	var (
		unsupported *extract.UnsupportedFormatError
		tooLarge    *extract.PayloadTooLargeError
		extraction  *extract.ExtractionError
	)
	switch {
	case errors.Is(err, extract.ErrNoFile):
		return http.StatusBadRequest, "no_file"
	case errors.As(err, &unsupported):
		return http.StatusUnsupportedMediaType, "unsupported_format"
	case errors.As(err, &tooLarge):
		return http.StatusRequestEntityTooLarge, "payload_too_large"
	case errors.As(err, &extraction):
		return http.StatusUnprocessableEntity, "extraction_failed"
	default:
		return http.StatusBadRequest, "bad_request"
	}
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	_, active, _, _ := metrics.get()
	status := "healthy"
	code := http.StatusOK

	ratio := cfg.HealthDegradeRatio
	if ratio <= 0 || ratio > 1 {
		ratio = 0.9
	}

	if active >= int64(float64(cfg.MaxConcurrentRequests)*ratio) {
		status = "degraded"
		code = http.StatusServiceUnavailable
	}

	writeJSON(w, code, map[string]any{
		"status":  status,
		"active":  active,
		"version": "1.0.0",
	})
}

func handleMetrics(w http.ResponseWriter, r *http.Request) {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	total, active, ok, failed := metrics.get()

	writeJSON(w, http.StatusOK, map[string]any{
		"activeRequests": active,
		"totalRequests":  total,
		"analysesOK":     ok,
		"analysesFailed": failed,
		"goroutines":     runtime.NumGoroutine(),
		"memAllocMB":     m.Alloc / (1 << 20),
	})
}

func renderTemplate(w http.ResponseWriter, name string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := tmpl.ExecuteTemplate(w, name, data); err != nil {
		fmt.Println("render " + name + ": " + sanitizeError(err))
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeErr(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, map[string]any{
		"success": false,
		"error":   message,
		"code":    code,
	})
}
