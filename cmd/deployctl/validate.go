/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/

package deployctl

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/hashicorp/go-version"
	"github.com/nyambati/deployctl/internal/pipeline"
	"github.com/nyambati/deployctl/internal/schema"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "validate deploy configs without contacting secret backends",
	Run: func(cmd *cobra.Command, args []string) {
		entry := logger.WithField("command", "validate")

		doc, err := pipeline.NewPipeline(nil, entry).Load(cmd.Context(), cfg.InputFiles, cfg.Environment)
		if err != nil {
			entry.WithError(err).Fatal("deploy config is invalid")
		}

		if err := printSummary(cmd.OutOrStdout(), doc, cfg.Environment); err != nil {
			entry.WithError(err).Fatal("failed to print summary")
		}
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func printSummary(w io.Writer, doc *schema.Document, env string) error {
	c := doc.Config
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	fmt.Fprintf(tw, "app:\t%s\n", c.Name)
	fmt.Fprintf(tw, "organization:\t%s\n", c.Organization)
	fmt.Fprintf(tw, "schema:\t%s\n", schemaLine(doc))
	fmt.Fprintf(tw, "regions:\t%s\n", strings.Join(append([]string{c.DefaultRegion + " (default)"}, c.Regions...), ", "))
	fmt.Fprintf(tw, "backup regions:\t%s\n", listOrDash(c.BackupRegions))
	fmt.Fprintf(tw, "scaling:\t%s\n", scalingLine(c.Scaling))
	fmt.Fprintf(tw, "database:\t%s\n", databaseLine(c.Database))
	fmt.Fprintf(tw, "environment:\t%d variables for %s\n", countVariables(c.Environment, env), env)

	return tw.Flush()
}

func schemaLine(doc *schema.Document) string {
	current := version.Must(version.NewVersion(schema.CurrentVersion))
	if doc.SourceVersion.Segments()[0] == current.Segments()[0] {
		return doc.Config.Version
	}
	return fmt.Sprintf("%s (upgraded from %s)", doc.Config.Version, doc.SourceVersion.Original())
}

func scalingLine(s schema.Scaling) string {
	count := fmt.Sprintf("%d-%d", s.MinCount, s.MaxCount)
	if s.BalanceMethod == schema.BalanceStatic {
		count = fmt.Sprintf("%d", s.MinCount)
	}
	return fmt.Sprintf("%dMB %s, %s instances, %s", s.Memory, s.VMSize, count, s.BalanceMethod)
}

func databaseLine(db *schema.Database) string {
	if db == nil || db.Postgres == nil {
		return "none"
	}
	pg := db.Postgres
	return fmt.Sprintf("postgres cluster_size=%d vm_size=%s volume_size=%d", pg.ClusterSize, pg.VMSize, pg.VolumeSize)
}

func countVariables(e schema.Environment, env string) int {
	keys := map[string]struct{}{}
	for _, v := range e[schema.ScopeAll] {
		keys[v.Key] = struct{}{}
	}
	if env != schema.ScopeAll {
		for _, v := range e[env] {
			keys[v.Key] = struct{}{}
		}
	}
	return len(keys)
}

func listOrDash(values []string) string {
	if len(values) == 0 {
		return "-"
	}
	return strings.Join(values, ", ")
}
