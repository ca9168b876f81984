package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"

	_ "github.com/tliron/commonlog/simple"

	"github.com/dhamidi/treeproc/config"
)

const version = "0.1.0"

var (
	configPath string
	verbosity  int

	// settings is resolved before any subcommand runs.
	settings *config.Config
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "treeproc",
		Short:         "Extract rules and node relations from bracketed syntax trees",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Resolve(configPath)
			if err != nil {
				return err
			}
			settings = cfg
			configureLogging(cfg)
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default $"+config.EnvVar+" or ./"+config.DefaultFile+")")
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "increase log verbosity (repeatable)")

	rootCmd.AddCommand(newTestCmd())
	rootCmd.AddCommand(newCFGCmd())
	rootCmd.AddCommand(newEBNFCmd())
	rootCmd.AddCommand(newDumpCmd())
	rootCmd.AddCommand(newQueryCmd())
	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newLSPCmd())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		printErrors(err)
		stop()
		os.Exit(1)
	}
}

func configureLogging(cfg *config.Config) {
	level := max(cfg.Log.Verbosity, verbosity)
	var path *string
	if cfg.Log.File != "" {
		path = &cfg.Log.File
	}
	commonlog.Configure(level, path)
}
