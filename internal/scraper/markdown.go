package scraper

import (
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// skipped elements contribute no text
var skipped = map[string]bool{
	"head":     true,
	"script":   true,
	"style":    true,
	"noscript": true,
	"template": true,
	"svg":      true,
}

// block elements start and end a line
var block = map[string]bool{
	"p": true, "div": true, "li": true, "ul": true, "ol": true,
	"section": true, "article": true, "header": true, "footer": true,
	"main": true, "nav": true, "aside": true, "table": true, "tr": true,
	"blockquote": true, "pre": true, "dl": true, "dt": true, "dd": true,
	"figure": true, "figcaption": true, "form": true,
}

var headingLevel = map[string]int{
	"h1": 1, "h2": 2, "h3": 3, "h4": 4, "h5": 5, "h6": 6,
}

// ToMarkdown converts an HTML document into markdown-like text: one block
// per line, headings prefixed with '#', and links written as [text](href).
func ToMarkdown(r io.Reader) (string, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return "", fmt.Errorf("parsing HTML: %w", err)
	}

	w := &lineWriter{}
	root := doc.Find("body")
	if root.Length() == 0 {
		root = doc.Selection
	}
	w.walk(root)
	w.newline()
	return strings.Join(w.lines, "\n"), nil
}

type lineWriter struct {
	lines []string
	cur   strings.Builder
}

func (w *lineWriter) walk(sel *goquery.Selection) {
	sel.Contents().Each(func(_ int, s *goquery.Selection) {
		name := goquery.NodeName(s)
		switch {
		case name == "#text":
			w.cur.WriteString(s.Text())
		case skipped[name], strings.HasPrefix(name, "#"):
			// comments, doctype and non-visible elements
		case name == "br":
			w.newline()
		case name == "a":
			w.link(s)
		case headingLevel[name] > 0:
			w.newline()
			w.cur.WriteString(strings.Repeat("#", headingLevel[name]) + " ")
			w.walk(s)
			w.newline()
		case block[name]:
			w.newline()
			w.walk(s)
			w.newline()
		default:
			w.walk(s)
		}
	})
}

func (w *lineWriter) link(s *goquery.Selection) {
	href, _ := s.Attr("href")
	href = strings.TrimSpace(href)
	text := collapse(s.Text())
	if href == "" || text == "" || strings.HasPrefix(href, "javascript:") {
		w.walk(s)
		return
	}
	w.cur.WriteString(" [" + text + "](" + href + ") ")
}

// newline flushes the current line if it has visible text
func (w *lineWriter) newline() {
	line := collapse(w.cur.String())
	w.cur.Reset()
	if line == "" || strings.Trim(line, "# ") == "" {
		return
	}
	w.lines = append(w.lines, line)
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
