package commands

import (
	"github.com/spf13/cobra"

	"github.com/de-tools/afvalwijzer/pkg/runtime/terminal/export"
)

func NewFormatsCmd(converter Converter, reporter *export.Reporter) *cobra.Command {
	return &cobra.Command{
		Use:   "formats",
		Short: "List the supported input and output formats",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return reporter.Formats(converter.Formats())
		},
	}
}
