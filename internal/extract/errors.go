package extract

import (
	"errors"
	"fmt"
)

// ErrNoFile indicates the form was submitted without a file attached.
var ErrNoFile = errors.New("no file selected")

// UnsupportedFormatError is returned when no extractor serves the uploaded
// file's extension or sniffed MIME type.
type UnsupportedFormatError struct {
	Extension string
	MIMEType  string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("unsupported format: extension=%q mime=%q", e.Extension, e.MIMEType)
}

// PayloadTooLargeError is returned when an upload exceeds the byte limit.
type PayloadTooLargeError struct {
	Limit int64
}

func (e *PayloadTooLargeError) Error() string {
	return fmt.Sprintf("file exceeds %dMB limit", e.Limit/(1<<20))
}

// ExtractionError wraps a format-specific parser failure.
type ExtractionError struct {
	FileType string
	Err      error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extract %s: %v", e.FileType, e.Err)
}

func (e *ExtractionError) Unwrap() error { return e.Err }
