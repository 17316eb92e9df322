package render

import (
	"bytes"
	"embed"
	"fmt"
	"html"
	"html/template"
	"io"

	"github.com/lintang-b-s/pleguide/pkg/lesson"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

//go:embed templates/page.html.tmpl
var templates embed.FS

// HTMLRenderer writes a lesson page as a standalone HTML document. Markdown
// is converted with goldmark with raw HTML disabled; formulas are left to
// MathJax in the browser.
type HTMLRenderer struct {
	md   goldmark.Markdown
	page *template.Template
}

func NewHTMLRenderer() (*HTMLRenderer, error) {
	r := &HTMLRenderer{
		md: goldmark.New(goldmark.WithExtensions(extension.GFM)),
	}
	tmpl, err := template.New("page.html.tmpl").Funcs(template.FuncMap{
		"markdown": r.markdown,
		"svg":      svg,
		"heading":  heading,
	}).ParseFS(templates, "templates/page.html.tmpl")
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	r.page = tmpl
	return r, nil
}

func (r *HTMLRenderer) Render(w io.Writer, page *lesson.Page) error {
	var buf bytes.Buffer
	if err := r.page.Execute(&buf, page); err != nil {
		return fmt.Errorf("render: %w", err)
	}
	_, err := buf.WriteTo(w)
	return err
}

func (r *HTMLRenderer) markdown(src string) (template.HTML, error) {
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(src), &buf); err != nil {
		return "", err
	}
	return template.HTML(buf.String()), nil //nolint:gosec // goldmark escapes raw html
}

// svg inlines a chart produced by pkg/chart, dropping the xml prolog.
func svg(doc []byte) template.HTML {
	if i := bytes.Index(doc, []byte("<svg")); i > 0 {
		doc = doc[i:]
	}
	return template.HTML(doc) //nolint:gosec // generated by gonum/plot
}

func heading(level int, text string) template.HTML {
	if level < 1 || level > 6 {
		level = 2
	}
	return template.HTML(fmt.Sprintf("<h%d>%s</h%d>", level, html.EscapeString(text), level)) //nolint:gosec // escaped
}
