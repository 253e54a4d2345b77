package terminal

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/de-tools/afvalwijzer/pkg/models/domain"
	"github.com/de-tools/afvalwijzer/pkg/runtime/terminal/commands"
	"github.com/de-tools/afvalwijzer/pkg/runtime/terminal/export"
	"github.com/de-tools/afvalwijzer/pkg/services/config"
	"github.com/de-tools/afvalwijzer/pkg/services/convert"
)

// SetupFunc builds the converter once the configuration is known.
type SetupFunc func(ctx context.Context, cfg *config.Config) (commands.Converter, error)

// CLI represents the command-line interface
type CLI struct {
	setup     SetupFunc
	converter commands.Converter
	reporter  *export.Reporter
	logOutput io.Writer
	rootCmd   *cobra.Command

	configPath string
	logLevel   string
}

// Options contain configuration for the CLI
type Options struct {
	Setup SetupFunc
	// Output receives command results, Log the log lines.
	Output io.Writer
	Log    io.Writer
}

// NewCLI creates a new CLI instance
func NewCLI(opts Options) *CLI {
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.Log == nil {
		opts.Log = os.Stderr
	}

	cli := &CLI{
		setup:     opts.Setup,
		reporter:  export.NewReporter(opts.Output),
		logOutput: opts.Log,
	}

	cli.rootCmd = cli.newRootCmd()
	cli.rootCmd.SetOut(opts.Output)
	cli.rootCmd.SetErr(opts.Log)
	return cli
}

func (cli *CLI) Execute(ctx context.Context) error {
	return cli.rootCmd.ExecuteContext(ctx)
}

// SetArgs overrides the command line, for tests.
func (cli *CLI) SetArgs(args []string) {
	cli.rootCmd.SetArgs(args)
}

func (cli *CLI) newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:               "afvalwijzer",
		Short:             "Waste collection guide converter",
		SilenceUsage:      true,
		PersistentPreRunE: cli.prepare,
	}

	cmd.PersistentFlags().StringVarP(&cli.configPath, "config", "c", "", "Path to a config file (yaml, json or toml)")
	cmd.PersistentFlags().StringVar(&cli.logLevel, "log-level", "", "Log level: trace, debug, info, warn or error (overrides the config)")

	cmd.AddCommand(commands.NewConvertCmd(cli))
	cmd.AddCommand(commands.NewFormatsCmd(cli, cli.reporter))
	cmd.AddCommand(commands.NewNeighborhoodsCmd(cli, cli.reporter))

	return cmd
}

// prepare loads the configuration, attaches the logger to the command context
// and builds the converter.
func (cli *CLI) prepare(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(cli.configPath)
	if err != nil {
		return err
	}

	level := cfg.Level()
	if cli.logLevel != "" {
		level, err = zerolog.ParseLevel(cli.logLevel)
		if err != nil {
			return fmt.Errorf("invalid log level %q: %w", cli.logLevel, err)
		}
	}

	logger := zerolog.New(zerolog.ConsoleWriter{Out: cli.logOutput, NoColor: true}).
		Level(level).
		With().Timestamp().Logger()
	ctx := logger.WithContext(cmd.Context())
	cmd.SetContext(ctx)

	if cli.setup == nil {
		cli.converter = convert.NewConverter(convert.Options{
			Author:     cfg.Author,
			Department: cfg.Department,
		})
		return nil
	}
	cli.converter, err = cli.setup(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to set up converter: %w", err)
	}
	return nil
}

func (cli *CLI) Convert(ctx context.Context, in, out string, filters domain.Filters) error {
	return cli.converter.Convert(ctx, in, out, filters)
}

func (cli *CLI) Neighborhoods(ctx context.Context, in string, filters domain.Filters) ([]convert.NeighborhoodSummary, error) {
	return cli.converter.Neighborhoods(ctx, in, filters)
}

func (cli *CLI) Formats() []convert.FormatInfo {
	return cli.converter.Formats()
}
