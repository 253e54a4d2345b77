// Package export maps file extensions onto document writers.
package export

import (
	"fmt"
	"io"
	"slices"

	"github.com/de-tools/afvalwijzer/pkg/models/domain"
	"github.com/de-tools/afvalwijzer/pkg/runtime/export/docx"
	"github.com/de-tools/afvalwijzer/pkg/runtime/export/html"
	"github.com/de-tools/afvalwijzer/pkg/runtime/export/pdf"
	"github.com/de-tools/afvalwijzer/pkg/runtime/export/txt"
	"github.com/de-tools/afvalwijzer/pkg/store/formats"
)

// Writer renders a report into a document.
type Writer interface {
	Write(w io.Writer, rep *domain.Report) error
}

type Format struct {
	Ext         string
	ContentType string
	Writer      Writer
}

var documentFormats = []Format{
	{Ext: ".docx", ContentType: "application/vnd.openxmlformats-officedocument.wordprocessingml.document", Writer: docx.NewWriter()},
	{Ext: ".html", ContentType: "text/html; charset=utf-8", Writer: html.NewWriter()},
	{Ext: ".pdf", ContentType: "application/pdf", Writer: pdf.NewWriter()},
	{Ext: ".txt", ContentType: "text/plain; charset=utf-8", Writer: txt.NewWriter()},
}

// Lookup returns the document format for the extension of path.
func Lookup(path string) (Format, error) {
	ext := formats.Ext(path)
	i := slices.IndexFunc(documentFormats, func(f Format) bool { return f.Ext == ext })
	if i < 0 {
		return Format{}, fmt.Errorf("unsupported file format: %q", ext)
	}
	return documentFormats[i], nil
}

// Formats returns all document formats, sorted by extension.
func Formats() []Format {
	return slices.Clone(documentFormats)
}
