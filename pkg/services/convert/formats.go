package convert

import (
	"slices"
	"strings"

	"github.com/de-tools/afvalwijzer/pkg/runtime/export"
)

const (
	KindRaw      = "raw"
	KindDocument = "document"
)

// FormatInfo describes a supported file extension.
type FormatInfo struct {
	Ext         string `json:"ext"`
	Kind        string `json:"kind"`
	ContentType string `json:"content_type,omitempty"`
}

// Formats lists the raw formats of the store registry followed by the
// document formats.
func (c *Converter) Formats() []FormatInfo {
	var infos []FormatInfo
	for _, ext := range c.stores.Extensions() {
		infos = append(infos, FormatInfo{Ext: ext, Kind: KindRaw})
	}
	for _, f := range export.Formats() {
		infos = append(infos, FormatInfo{Ext: f.Ext, Kind: KindDocument, ContentType: f.ContentType})
	}
	return infos
}

// DocumentFormat returns the document format for a name such as "pdf" or
// ".pdf".
func DocumentFormat(name string) (export.Format, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if !strings.HasPrefix(name, ".") {
		name = "." + name
	}
	return export.Lookup("report" + name)
}

// IsDocument reports whether ext names a document format.
func IsDocument(ext string) bool {
	return slices.ContainsFunc(export.Formats(), func(f export.Format) bool { return f.Ext == ext })
}
