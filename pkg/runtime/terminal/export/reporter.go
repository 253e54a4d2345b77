package export

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/template"

	"github.com/de-tools/afvalwijzer/pkg/services/convert"
)

type TableConfig struct {
	LocalityWidth     int
	NeighborhoodWidth int
	CountWidth        int
}

func DefaultTableConfig() TableConfig {
	return TableConfig{
		LocalityWidth:     24,
		NeighborhoodWidth: 14,
		CountWidth:        9,
	}
}

// Reporter prints source summaries as text tables.
type Reporter struct {
	writer io.Writer
	config TableConfig
}

func NewReporter(writer io.Writer) *Reporter {
	if writer == nil {
		writer = os.Stdout
	}
	return &Reporter{
		writer: writer,
		config: DefaultTableConfig(),
	}
}

type neighborhoodTable struct {
	Source    string
	Rows      []convert.NeighborhoodSummary
	Groups    int
	Addresses int
}

func (c *Reporter) funcMap() template.FuncMap {
	return template.FuncMap{
		"formatRow": func(locality, neighborhood string, groups, addresses any) string {
			return fmt.Sprintf("| %-*s | %-*s | %*v | %*v |",
				c.config.LocalityWidth, locality,
				c.config.NeighborhoodWidth, neighborhood,
				c.config.CountWidth, groups,
				c.config.CountWidth, addresses)
		},
		"separator": func() string {
			return fmt.Sprintf("+%s+%s+%s+%s+",
				strings.Repeat("-", c.config.LocalityWidth+2),
				strings.Repeat("-", c.config.NeighborhoodWidth+2),
				strings.Repeat("-", c.config.CountWidth+2),
				strings.Repeat("-", c.config.CountWidth+2))
		},
	}
}

const neighborhoodsTmpl = `{{.Source}}: {{len .Rows}} neighborhoods
{{separator}}
{{formatRow "Locality" "Neighborhood" "Groups" "Addresses"}}
{{separator}}
{{range .Rows}}{{formatRow .Neighborhood.Locality .Neighborhood.Neighborhood .Groups .Addresses}}
{{end}}{{separator}}
{{formatRow "Total" "" .Groups .Addresses}}
{{separator}}
`

// Neighborhoods prints one row per chapter and a total.
func (c *Reporter) Neighborhoods(source string, rows []convert.NeighborhoodSummary) error {
	t, err := template.New("neighborhoods").Funcs(c.funcMap()).Parse(neighborhoodsTmpl)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}

	table := neighborhoodTable{Source: source, Rows: rows}
	for _, r := range rows {
		table.Groups += r.Groups
		table.Addresses += r.Addresses
	}
	return t.Execute(c.writer, table)
}

const formatsTmpl = `{{range .}}{{printf "%-8s %-9s %s" .Ext .Kind .ContentType}}
{{end}}`

// Formats prints the supported extensions.
func (c *Reporter) Formats(infos []convert.FormatInfo) error {
	t, err := template.New("formats").Parse(formatsTmpl)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}
	return t.Execute(c.writer, infos)
}
