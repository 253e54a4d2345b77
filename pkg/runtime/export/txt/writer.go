package txt

import (
	"fmt"
	"io"
	"strings"
	"text/template"

	"github.com/de-tools/afvalwijzer/pkg/models/domain"
)

type TableConfig struct {
	CaptionWidth int
	TextWidth    int
}

func DefaultTableConfig() TableConfig {
	return TableConfig{
		CaptionWidth: 16,
		TextWidth:    72,
	}
}

// Writer renders a report as plain text, e.g. for a terminal.
type Writer struct {
	config TableConfig
}

func NewWriter() *Writer {
	return &Writer{config: DefaultTableConfig()}
}

const tmpl = `{{.Title}}
{{underline .Title}}
{{.Author}}, {{.Date.Format "02-01-2006"}}
{{range .Chapters}}
=== {{.Neighborhood}} ===
{{range .Blocks}}
{{range .Addresses}}  * {{.}}
{{else}}  * all addresses
{{end}}{{separator}}
{{range .Rules}}| {{.Fraction}}
{{range .Labels}}{{formatRow .Caption .Text}}
{{end}}{{separator}}
{{end}}{{end}}{{end}}`

func (w *Writer) Write(out io.Writer, rep *domain.Report) error {
	funcMap := template.FuncMap{
		"formatRow": func(caption, text string) string {
			return fmt.Sprintf("|   %-*s %s", w.config.CaptionWidth, caption+":", text)
		},
		"separator": func() string {
			return "+" + strings.Repeat("-", w.config.CaptionWidth+w.config.TextWidth+4)
		},
		"underline": func(s string) string {
			return strings.Repeat("=", len([]rune(s)))
		},
	}

	t, err := template.New("report").Funcs(funcMap).Parse(tmpl)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}

	return t.Execute(out, rep)
}
