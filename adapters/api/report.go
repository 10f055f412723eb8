package api

import (
	"net/http"
	"strings"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
)

// reportMarkdown turns a plain-text notebook report into markdown: the first
// line of every section becomes a heading and every other line a paragraph
func reportMarkdown(report string) string {
	var b strings.Builder
	heading := true
	for _, line := range strings.Split(strings.TrimRight(report, "\n"), "\n") {
		switch {
		case line == "":
			heading = true
			continue
		case heading:
			b.WriteString("### ")
			heading = false
		}
		b.WriteString(line)
		b.WriteString("\n\n")
	}
	return b.String()
}

// renderHTML converts markdown to an HTML fragment
func renderHTML(md string) []byte {
	p := parser.NewWithExtensions(parser.CommonExtensions)
	renderer := html.NewRenderer(html.RendererOptions{Flags: html.CommonFlags | html.SkipHTML})
	return markdown.ToHTML([]byte(md), p, renderer)
}

func writeHTML(w http.ResponseWriter, md string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write(renderHTML(md))
}
