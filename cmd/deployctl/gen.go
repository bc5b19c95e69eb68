/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/

package deployctl

import (
	"github.com/nyambati/deployctl/internal/environment"
	"github.com/nyambati/deployctl/internal/pipeline"
	"github.com/nyambati/deployctl/internal/secrets"
	"github.com/spf13/cobra"
)

var genCmd = &cobra.Command{
	Use:   "gen",
	Short: "generate the platform config",
	Long: `Merge the input deploy configs, resolve their environment variables for
the target environment and write the platform config.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		entry := logger.WithField("command", "gen")

		resolver, err := secrets.New(ctx, cfg.Resolver, entry)
		if err != nil {
			entry.WithError(err).Fatal("failed to create secret resolver")
		}

		env := environment.NewResolver(resolver, environment.Options{
			Timeout:     cfg.Resolver.Timeout,
			Concurrency: cfg.Resolver.Concurrency,
		}, entry)

		if err := pipeline.NewPipeline(env, entry).Resolve(ctx, cfg.InputFiles, cfg.OutputFile, cfg.Environment); err != nil {
			entry.WithError(err).Fatal("failed to generate platform config")
		}
	},
}

func init() {
	rootCmd.AddCommand(genCmd)
}
