package main

import (
	"context"
	"os"

	"github.com/harunnryd/contribdesk/internal/config"
	"github.com/harunnryd/contribdesk/internal/logger"

	"github.com/spf13/cobra"
)

var (
	cfgFile string
	cfg     *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "contribdesk",
	Short: "Local approval desk for skill and tool contributions",
	Long: `contribdesk keeps admin approvals that could not be written to the spreadsheet
system of record, lists them, exports them as JSON or CSV, and clears them once reconciled.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(cmd)
		if err != nil {
			return err
		}

		logger.Setup(cfg.Server.LogLevel)
		return nil
	},
}

func Execute() {
	ctx, stop := interruptContext(context.Background(), os.Stderr)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		reportError(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.contribdesk/config.yaml)")
	rootCmd.PersistentFlags().String("server.log_level", config.DefaultServerLogLevel, "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("store.data_dir", config.DefaultStoreDataDir, "directory holding the local approval store")
}
