/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package deployctl

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/nyambati/deployctl/internal/config"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfg *config.Config
var logger *logrus.Logger

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "deployctl",
	Short: "Generate platform configs from JSON deploy configs",
	Long: `deployctl merges one or more JSON deploy configs, renders the
{{environment}} placeholder, resolves environment variables from Cloud KMS
and Secret Manager, and writes the platform's TOML config.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if err := loadConfig(); err != nil {
			logger.WithError(err).Fatal("failed to load deployctl config")
		}
	},
}

func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		logger.WithError(err).Error("error occured while running deployctl")
		stop()
		os.Exit(1)
	}
}

func init() {
	logger = logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	flags := rootCmd.PersistentFlags()
	flags.StringP("environment", "e", "", "target environment rendered into {{environment}}")
	flags.StringSliceP("input", "i", nil, "deploy config files, merged left to right")
	flags.StringP("output", "o", "", "platform config output path")
	flags.String("log-level", "", "log level (debug, info, warn, error)")

	viper.BindPFlag("environment", flags.Lookup("environment"))
	viper.BindPFlag("input_files", flags.Lookup("input"))
	viper.BindPFlag("output_file", flags.Lookup("output"))
	viper.BindPFlag("log_level", flags.Lookup("log-level"))
}

func loadConfig() error {
	var err error
	cfg, err = config.NewConfig(viper.GetViper(), ".")
	if err != nil {
		return err
	}

	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	logger.SetLevel(level)
	return nil
}
