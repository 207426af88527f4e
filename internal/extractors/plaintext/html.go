package plaintext

import (
	"bytes"
	"context"
	"os"
	"strings"

	"golang.org/x/net/html"

	"github.com/rrodrig30/count/internal/extract"
)

// HTMLExtractor strips markup and returns the page's visible text, one
// block-level element per line.
type HTMLExtractor struct {
	maxBytes int64
}

func NewHTML(maxBytes int64) *HTMLExtractor { return &HTMLExtractor{maxBytes: maxBytes} }

func (e *HTMLExtractor) Name() string             { return "document/html" }
func (e *HTMLExtractor) MaxFileSize() int64       { return e.maxBytes }
func (e *HTMLExtractor) SupportedTypes() []string { return []string{"text/html"} }
func (e *HTMLExtractor) SupportedExtensions() []string {
	return []string{".html", ".htm", ".xhtml"}
}

func (e *HTMLExtractor) Extract(ctx context.Context, job extract.Job) (extract.Result, error) {
	select {
	case <-ctx.Done():
		return extract.Result{}, ctx.Err()
	default:
	}

	b, err := os.ReadFile(job.LocalPath)
	if err != nil {
		return extract.Result{}, err
	}

	text, meta, err := htmlToText(b)
	if err != nil {
		return extract.Result{}, err
	}
	return extract.Result{
		Text:     text,
		Method:   "native",
		FileType: e.Name(),
		MIMEType: job.MIMEType,
		Metadata: meta,
	}, nil
}

func htmlToText(b []byte) (string, map[string]string, error) {
	node, err := html.Parse(bytes.NewReader(b))
	if err != nil {
		return "", nil, err
	}

	meta := map[string]string{}
	var lines []string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			tag := strings.ToLower(n.Data)
			switch tag {
			case "script", "style", "noscript", "head":
				if tag == "head" {
					if t := headTitle(n); t != "" {
						meta["title"] = t
					}
				}
				return
			case "p", "li", "h1", "h2", "h3", "h4", "h5", "h6", "td", "th", "pre", "blockquote":
				if t := strings.TrimSpace(nodeText(n)); t != "" {
					lines = append(lines, t)
				}
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(node)

	if len(lines) == 0 {
		if t := strings.TrimSpace(nodeText(node)); t != "" {
			lines = append(lines, t)
		}
	}
	if len(meta) == 0 {
		meta = nil
	}
	return strings.Join(lines, "\n"), meta, nil
}

func headTitle(head *html.Node) string {
	for c := head.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && strings.ToLower(c.Data) == "title" && c.FirstChild != nil {
			return strings.TrimSpace(c.FirstChild.Data)
		}
	}
	return ""
}

func nodeText(n *html.Node) string {
	if n == nil {
		return ""
	}
	if n.Type == html.TextNode {
		return n.Data
	}
	if n.Type == html.ElementNode {
		tag := strings.ToLower(n.Data)
		if tag == "script" || tag == "style" || tag == "noscript" {
			return ""
		}
	}
	var sb strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		sb.WriteString(nodeText(c))
	}
	return sb.String()
}
