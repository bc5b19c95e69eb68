/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/

package deployctl

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/nyambati/deployctl/internal/schema"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var newCmd = &cobra.Command{
	Use:   "new",
	Short: "scaffold a deploy config",
	Run: func(cmd *cobra.Command, args []string) {
		name, _ := cmd.Flags().GetString("name")
		organization, _ := cmd.Flags().GetString("organization")
		database, _ := cmd.Flags().GetBool("database")
		file, _ := cmd.Flags().GetString("file")
		force, _ := cmd.Flags().GetBool("force")

		entry := logger.WithFields(logrus.Fields{"command": "new", "file": file})
		if err := writeSample(file, schema.NewSample(name, organization, database), force); err != nil {
			entry.WithError(err).Fatal("failed to scaffold deploy config")
		}
		entry.Info("created deploy config")
	},
}

func init() {
	newCmd.Flags().String("name", "", "application name")
	newCmd.Flags().String("organization", "", "organization the application belongs to")
	newCmd.Flags().Bool("database", false, "attach a postgres cluster")
	newCmd.Flags().String("file", "fly.json", "path of the deploy config to create")
	newCmd.Flags().Bool("force", false, "overwrite an existing file")
	newCmd.MarkFlagRequired("name")
	newCmd.MarkFlagRequired("organization")

	rootCmd.AddCommand(newCmd)
}

func writeSample(path string, sample *schema.DeployConfig, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s already exists, use --force to overwrite", path)
		}
	}

	data, err := json.MarshalIndent(sample, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode deploy config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	return os.WriteFile(path, append(data, '\n'), 0644)
}
