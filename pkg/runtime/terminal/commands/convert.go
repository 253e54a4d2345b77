package commands

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/de-tools/afvalwijzer/pkg/models/domain"
	"github.com/de-tools/afvalwijzer/pkg/models/store"
)

// FilterFlags are the record filters shared by the commands reading a source.
type FilterFlags struct {
	district   string
	residents  bool
	businesses bool
}

func (f *FilterFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.district, "district", "", "Only include addresses in this district (stadsdeel)")
	cmd.Flags().BoolVar(&f.residents, "residents", false, "Only include addresses with a residential function")
	cmd.Flags().BoolVar(&f.businesses, "businesses", false, "Only include addresses without a residential function")
	cmd.MarkFlagsMutuallyExclusive("residents", "businesses")
}

// Filters returns the filters selected on the command line, in flag order.
func (f *FilterFlags) Filters() domain.Filters {
	var filters domain.Filters
	switch {
	case f.residents:
		filters = filters.With(store.Columns[store.ColResidential], true)
	case f.businesses:
		filters = filters.With(store.Columns[store.ColResidential], false)
	}
	if f.district != "" {
		filters = filters.With(store.Columns[store.ColDistrict], f.district)
	}
	return filters
}

type ConvertCmd struct {
	FilterFlags
	converter Converter
}

func NewConvertCmd(converter Converter) *cobra.Command {
	cc := &ConvertCmd{converter: converter}
	cmd := &cobra.Command{
		Use:   "convert IN OUT",
		Short: "Convert a waste guide source into another format or a report",
		Long: `Convert reads the waste collection rules from IN and writes them to OUT.

IN is a .csv, .xlsx, .zip or .duckdb file, a .yaml or .ini file with
database connection parameters, or an http(s):// or s3:// location.
OUT is either a raw format (the records unchanged) or a document
format (.pdf, .docx, .html, .txt) with the grouped waste guide.`,
		Example: `  afvalwijzer convert afvalwijzer.csv afvalwijzer.pdf --district Centrum --residents
  afvalwijzer convert db.yaml afvalwijzer.xlsx`,
		Args: cobra.ExactArgs(2),
		RunE: cc.run,
	}
	cc.register(cmd)
	return cmd
}

func (cc *ConvertCmd) run(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	in, out := args[0], args[1]

	if err := cc.converter.Convert(ctx, in, out, cc.Filters()); err != nil {
		return fmt.Errorf("failed to convert %s to %s: %w", in, out, err)
	}

	zerolog.Ctx(ctx).Info().Str("output", out).Msg("conversion done")
	return nil
}
