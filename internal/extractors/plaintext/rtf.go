package plaintext

import (
	"context"
	"os"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/text/encoding/charmap"

	"github.com/rrodrig30/count/internal/extract"
)

// RTFExtractor converts RTF markup to plain text by stripping control
// groups and words and decoding escape sequences.
type RTFExtractor struct {
	maxBytes int64
}

func NewRTF(maxBytes int64) *RTFExtractor { return &RTFExtractor{maxBytes: maxBytes} }

func (e *RTFExtractor) Name() string                  { return "document/rtf" }
func (e *RTFExtractor) MaxFileSize() int64            { return e.maxBytes }
func (e *RTFExtractor) SupportedTypes() []string      { return []string{"application/rtf", "text/rtf"} }
func (e *RTFExtractor) SupportedExtensions() []string { return []string{".rtf"} }

var (
	// Handles one level of brace nesting, which covers the common header
	// groups (font tables carry one nested group per font).
	rtfSkipGroup  = regexp.MustCompile(`\{\\(?:fonttbl|colortbl|stylesheet|info|\*)(?:[^{}]|\{[^{}]*\})*\}`)
	rtfHexEscape  = regexp.MustCompile(`\\'([0-9a-fA-F]{2})`)
	rtfUniEscape  = regexp.MustCompile(`\\u(-?\d+)\s?\??`)
	rtfPar        = regexp.MustCompile(`\\pard? ?`)
	rtfLine       = regexp.MustCompile(`\\line ?`)
	rtfTab        = regexp.MustCompile(`\\tab ?`)
	rtfControl    = regexp.MustCompile(`\\[a-zA-Z]+-?\d* ?`)
	rtfBlankLines = regexp.MustCompile(`\n{3,}`)
)

func (e *RTFExtractor) Extract(ctx context.Context, job extract.Job) (extract.Result, error) {
	select {
	case <-ctx.Done():
		return extract.Result{}, ctx.Err()
	default:
	}

	b, err := os.ReadFile(job.LocalPath)
	if err != nil {
		return extract.Result{}, err
	}

	text := rtfToText(string(b))
	return extract.Result{
		Text:     text,
		Method:   "native",
		FileType: e.Name(),
		MIMEType: job.MIMEType,
	}, nil
}

func rtfToText(s string) string {
	// Escaped delimiters first, so later passes don't eat them.
	s = strings.NewReplacer(`\\`, "\x00", `\{`, "\x01", `\}`, "\x02").Replace(s)

	s = rtfSkipGroup.ReplaceAllString(s, "")

	// \'hh escapes carry the document's single-byte code page; Windows-1252
	// covers the default RTF charset.
	s = rtfHexEscape.ReplaceAllStringFunc(s, func(m string) string {
		n, err := strconv.ParseUint(m[2:], 16, 8)
		if err != nil {
			return ""
		}
		return string(charmap.Windows1252.DecodeByte(byte(n)))
	})
	s = rtfUniEscape.ReplaceAllStringFunc(s, func(m string) string {
		digits := strings.TrimSuffix(strings.TrimSpace(m[2:]), "?")
		n, err := strconv.Atoi(strings.TrimSpace(digits))
		if err != nil {
			return ""
		}
		if n < 0 {
			n += 65536
		}
		return string(rune(n))
	})

	s = rtfPar.ReplaceAllString(s, "\n")
	s = rtfLine.ReplaceAllString(s, "\n")
	s = rtfTab.ReplaceAllString(s, "\t")
	s = rtfControl.ReplaceAllString(s, "")
	s = strings.ReplaceAll(s, "{", "")
	s = strings.ReplaceAll(s, "}", "")

	s = strings.NewReplacer("\x00", `\`, "\x01", "{", "\x02", "}").Replace(s)
	s = rtfBlankLines.ReplaceAllString(s, "\n\n")
	return strings.TrimSpace(s)
}
