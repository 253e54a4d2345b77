package main

import (
	"context"
	"fmt"
	"net"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/de-tools/afvalwijzer/pkg/server"
	"github.com/de-tools/afvalwijzer/pkg/services/config"
	"github.com/de-tools/afvalwijzer/pkg/services/convert"
)

var cfgPath string

func main() {
	var rootCmd = &cobra.Command{
		Use:          "web",
		Short:        "Start the waste guide report API",
		SilenceUsage: true,
		RunE:         runServer,
	}

	rootCmd.Flags().StringVarP(&cfgPath, "config", "c", "",
		"Path to a config file; settings may also come from AFVALWIJZER_* variables or a .env file")

	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func runServer(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger := zerolog.New(os.Stdout).Level(cfg.Level()).With().Timestamp().Logger()
	ctx := logger.WithContext(cmd.Context())

	converter, err := convert.NewFromConfig(cfg)
	if err != nil {
		return err
	}

	addr := net.JoinHostPort(cfg.Server.Host, cfg.Server.Port)
	logger.Info().
		Str("config", cfgPath).
		Str("author", cfg.Author).
		Int64("max_body_bytes", cfg.Server.MaxBodyBytes).
		Msg("configuration loaded")

	api := server.NewWebAPI(server.Config{
		Addr:            addr,
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
		MaxBodyBytes:    cfg.Server.MaxBodyBytes,
		Dependencies: server.Dependencies{
			Renderer: converter,
			Logger:   logger,
		},
	})

	return api.Start(ctx)
}
