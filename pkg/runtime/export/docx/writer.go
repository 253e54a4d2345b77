// Package docx renders a report as a Word document.
package docx

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"text/template"

	"github.com/de-tools/afvalwijzer/pkg/models/domain"
)

type part struct {
	name string
	tmpl *template.Template
}

var funcs = template.FuncMap{
	"xml": func(s string) (string, error) {
		var buf bytes.Buffer
		if err := xml.EscapeText(&buf, []byte(s)); err != nil {
			return "", err
		}
		return buf.String(), nil
	},
}

func mustPart(name, text string) part {
	return part{name: name, tmpl: template.Must(template.New(name).Funcs(funcs).Parse(text))}
}

// parts in package order; [Content_Types].xml comes first.
var parts = []part{
	mustPart("[Content_Types].xml", contentTypes),
	mustPart("_rels/.rels", packageRels),
	mustPart("docProps/core.xml", core),
	mustPart("word/_rels/document.xml.rels", documentRels),
	mustPart("word/styles.xml", styles),
	mustPart("word/document.xml", document),
}

type Writer struct{}

func NewWriter() *Writer {
	return &Writer{}
}

func (w *Writer) Write(out io.Writer, rep *domain.Report) error {
	archive := zip.NewWriter(out)

	for _, p := range parts {
		f, err := archive.CreateHeader(&zip.FileHeader{
			Name:     p.name,
			Method:   zip.Deflate,
			Modified: rep.Date,
		})
		if err != nil {
			return fmt.Errorf("failed to add %s: %w", p.name, err)
		}
		if err := p.tmpl.Execute(f, rep); err != nil {
			return fmt.Errorf("failed to render %s: %w", p.name, err)
		}
	}

	if err := archive.Close(); err != nil {
		return fmt.Errorf("failed to finish document: %w", err)
	}
	return nil
}
