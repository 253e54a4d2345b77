package main

import (
	"context"
	"fmt"
	"os"

	"github.com/de-tools/afvalwijzer/pkg/runtime/terminal"
	"github.com/de-tools/afvalwijzer/pkg/runtime/terminal/commands"
	"github.com/de-tools/afvalwijzer/pkg/services/config"
	"github.com/de-tools/afvalwijzer/pkg/services/convert"
)

func main() {
	cli := terminal.NewCLI(terminal.Options{
		Setup: func(ctx context.Context, cfg *config.Config) (commands.Converter, error) {
			return convert.NewFromConfig(cfg)
		},
		Output: os.Stdout,
		Log:    os.Stderr,
	})

	if err := cli.Execute(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
