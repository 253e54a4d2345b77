package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/de-tools/afvalwijzer/pkg/runtime/terminal/export"
)

type NeighborhoodsCmd struct {
	FilterFlags
	converter Converter
	reporter  *export.Reporter
}

func NewNeighborhoodsCmd(converter Converter, reporter *export.Reporter) *cobra.Command {
	nc := &NeighborhoodsCmd{converter: converter, reporter: reporter}
	cmd := &cobra.Command{
		Use:   "neighborhoods IN",
		Short: "List the neighborhood chapters a report of IN would have",
		Args:  cobra.ExactArgs(1),
		RunE:  nc.run,
	}
	nc.register(cmd)
	return cmd
}

func (nc *NeighborhoodsCmd) run(cmd *cobra.Command, args []string) error {
	rows, err := nc.converter.Neighborhoods(cmd.Context(), args[0], nc.Filters())
	if err != nil {
		return fmt.Errorf("failed to summarize %s: %w", args[0], err)
	}
	return nc.reporter.Neighborhoods(args[0], rows)
}
