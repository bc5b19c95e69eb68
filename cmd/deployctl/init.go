/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/

package deployctl

import (
	"os"

	"github.com/nyambati/deployctl/internal/config"
	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "write a default .deployctl.yaml",
	Run: func(cmd *cobra.Command, args []string) {
		force, _ := cmd.Flags().GetBool("force")
		path := config.FileName + ".yaml"
		entry := logger.WithField("path", path)

		if _, err := os.Stat(path); err == nil && !force {
			entry.Fatal("config already exists, use --force to overwrite")
		}

		if err := config.Default().Save(path); err != nil {
			entry.WithError(err).Fatal("failed to write config")
		}
		entry.Info("created deployctl config")
	},
}

func init() {
	initCmd.Flags().Bool("force", false, "overwrite an existing config")
	rootCmd.AddCommand(initCmd)
}
