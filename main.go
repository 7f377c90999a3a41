package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"bulletin/app/config"
	"bulletin/service"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const cliVersion = "1.0.0"

var exit = os.Exit

func main() {
	if err := newRootCmd().Execute(); err != nil {
		exit(1)
	}
}

// newRootCmd assembles the command tree. Each call returns a fresh tree so
// tests can run commands independently.
func newRootCmd() *cobra.Command {
	var configPath string

	loadConfig := func() (*config.Config, error) {
		return config.Load(configPath)
	}

	rootCmd := &cobra.Command{
		Use:          "bulletin",
		Short:        "Password-gated bulletin board API",
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to a YAML config file (default: ./config.yaml if present)")

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the board API server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			logger, err := service.NewLogger(cfg.Log)
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if err := service.RunAppServer(ctx, cfg, logger); err != nil {
				logger.Error("board service stopped", zap.Error(err))
				return err
			}
			return nil
		},
	}

	var yes bool
	consoleFor := func(cmd *cobra.Command) service.Console {
		return service.Console{In: cmd.InOrStdin(), Out: cmd.OutOrStdout(), Yes: yes}
	}

	dbCmd := &cobra.Command{
		Use:   "db",
		Short: "Manage the board database",
	}
	dbCmd.PersistentFlags().BoolVarP(&yes, "yes", "y", false, "Answer yes to confirmation prompts")

	dbCmd.AddCommand(
		&cobra.Command{
			Use:   "init",
			Short: "Initialize a new empty database",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				cfg, err := loadConfig()
				if err != nil {
					return err
				}
				return service.InitDB(cfg.Storage, consoleFor(cmd))
			},
		},
		&cobra.Command{
			Use:   "clean",
			Short: "Remove the database",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				cfg, err := loadConfig()
				if err != nil {
					return err
				}
				return service.Clean(cfg.Storage, consoleFor(cmd))
			},
		},
		&cobra.Command{
			Use:   "backup [file]",
			Short: "Create a backup of the database",
			Args:  cobra.MaximumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				cfg, err := loadConfig()
				if err != nil {
					return err
				}
				dest := ""
				if len(args) == 1 {
					dest = args[0]
				}
				_, err = service.Backup(cfg.Storage, dest, consoleFor(cmd))
				return err
			},
		},
		&cobra.Command{
			Use:   "restore <file>",
			Short: "Restore the database from a backup",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				cfg, err := loadConfig()
				if err != nil {
					return err
				}
				return service.Restore(cfg.Storage, args[0], consoleFor(cmd))
			},
		},
	)

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "bulletin version %s\n", cliVersion)
		},
	}

	rootCmd.AddCommand(serveCmd, dbCmd, versionCmd)
	return rootCmd
}
