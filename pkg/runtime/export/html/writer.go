// Package html renders a report as a printable web page. Print it from a
// browser to get a PDF.
package html

import (
	"fmt"
	"html/template"
	"io"

	"github.com/de-tools/afvalwijzer/pkg/models/domain"
)

const css = `
.neighborhood{display:grid;grid-template-columns:4rem 1fr;gap:0.5rem 1rem}
.neighborhood h1{border-bottom:black thin solid;grid-column:1/3;margin-bottom:.5rem}
.addresses{grid-column:1/3;margin:.5rem 0}
label{text-align:right}
.rules{display:grid;grid-template-columns:8rem 1fr;gap:0 1rem}
`

const page = `<!doctype html>
<html lang="nl">
<head>
<meta charset="utf-8">
<title>{{.Title}}, {{.Date.Format "2006-01-02"}}</title>
<style type="text/css">{{css}}</style>
</head>
<body>
<header><h1>{{.Title}}</h1><p>{{.Author}}, {{.Date.Format "02-01-2006"}}</p></header>
{{range .Chapters}}<section class="neighborhood">
<h1>{{.Neighborhood}}</h1>
{{range .Blocks}}<ul class="addresses">{{range .Addresses}}<li>{{.}}</li>{{end}}</ul>
{{range .Rules}}<div class="fraction">{{.Fraction}}</div>
<div class="rules">{{range .Labels}}<label>{{.Caption}}:</label><div>{{.Text}}</div>{{end}}</div>
{{end}}{{end}}</section>
{{end}}</body>
</html>
`

var tmpl = template.Must(template.New("report").Funcs(template.FuncMap{
	"css": func() template.CSS { return template.CSS(css) },
}).Parse(page))

type Writer struct{}

func NewWriter() *Writer {
	return &Writer{}
}

func (w *Writer) Write(out io.Writer, rep *domain.Report) error {
	if err := tmpl.Execute(out, rep); err != nil {
		return fmt.Errorf("failed to render html: %w", err)
	}
	return nil
}
