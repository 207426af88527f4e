// Package stats computes text statistics: word, character, whitespace, and
// line counts, plus derived ratios for presentation.
package stats

import (
	"encoding/json"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Counts holds the four core statistics for one piece of text.
type Counts struct {
	Words      int `json:"wordCount"`
	Chars      int `json:"characterCount"`
	Whitespace int `json:"whitespaceCount"`
	Lines      int `json:"lineCount"`
}

// Analyze computes Counts for text. It is pure and total: every input,
// including the empty string, produces a valid result.
//
// Words are whitespace-delimited tokens. Chars counts every rune, whitespace
// and control characters included. Whitespace counts runes with the Unicode
// White_Space property, so Whitespace <= Chars always holds.
func Analyze(text string) Counts {
	c := Counts{
		Words: len(strings.Fields(text)),
		Chars: utf8.RuneCountInString(text),
	}
	for _, r := range text {
		if unicode.IsSpace(r) {
			c.Whitespace++
		}
	}
	c.Lines = countLines(text)
	return c
}

// countLines counts lines split on universal line boundaries: \r\n as a
// single boundary, then \n, \r, \v, \f, NEL, LS, and PS. A final segment
// without a terminator still counts as a line when it carries any
// non-whitespace content; a whitespace-only tail is not a line.
func countLines(text string) int {
	lines := 0
	tail := false // current segment has non-whitespace content
	skipLF := false

	for _, r := range text {
		if skipLF {
			skipLF = false
			if r == '\n' {
				continue
			}
		}
		switch r {
		case '\r':
			skipLF = true
			fallthrough
		case '\n', '\v', '\f', '\u0085', '\u2028', '\u2029':
			lines++
			tail = false
		default:
			if !unicode.IsSpace(r) {
				tail = true
			}
		}
	}
	if tail {
		lines++
	}
	return lines
}

// Ratio is a derived metric. OK is false when the divisor was zero, in which
// case the metric is not available.
type Ratio struct {
	Value float64
	OK    bool
}

// String renders the ratio with two decimals, or "N/A" when unavailable.
func (r Ratio) String() string {
	if !r.OK {
		return "N/A"
	}
	return strconv.FormatFloat(r.Value, 'f', 2, 64)
}

// MarshalJSON encodes an unavailable ratio as null.
func (r Ratio) MarshalJSON() ([]byte, error) {
	if !r.OK {
		return []byte("null"), nil
	}
	return json.Marshal(r.Value)
}

// Ratios are presentation-time metrics derived from Counts.
type Ratios struct {
	AvgWordLength Ratio `json:"avgWordLength"`
	WordsPerLine  Ratio `json:"wordsPerLine"`
	CharsPerLine  Ratio `json:"charsPerLine"`
	TextCharPct   Ratio `json:"textCharPct"`
	WhitespacePct Ratio `json:"whitespacePct"`
}

// Ratios derives the presentation metrics, guarding every division by zero.
func (c Counts) Ratios() Ratios {
	textChars := float64(c.Chars - c.Whitespace)
	return Ratios{
		AvgWordLength: ratio(textChars, float64(c.Words)),
		WordsPerLine:  ratio(float64(c.Words), float64(c.Lines)),
		CharsPerLine:  ratio(float64(c.Chars), float64(c.Lines)),
		TextCharPct:   ratio(textChars*100, float64(c.Chars)),
		WhitespacePct: ratio(float64(c.Whitespace)*100, float64(c.Chars)),
	}
}

func ratio(num, den float64) Ratio {
	if den == 0 {
		return Ratio{}
	}
	return Ratio{Value: num / den, OK: true}
}
