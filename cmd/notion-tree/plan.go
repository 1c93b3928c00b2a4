package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/notion-tree/internal/config"
	"github.com/pdiddy/notion-tree/internal/hierarchy"
	"github.com/pdiddy/notion-tree/pkg/types"
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Preview the page hierarchy a sync would mirror",
	Long: `Plan scans the local directory and prints the pages sync would create,
in sync order, without making any remote calls. No token is required.`,
	RunE: runPlan,
}

func init() {
	planCmd.Flags().String("dir", "", "local root directory to scan")
	planCmd.Flags().String("index-file", hierarchy.DefaultIndexFile, "document carrying a directory's own content")
	planCmd.Flags().StringSlice("exclude", nil, "directory names to skip in addition to .git (repeatable)")
	planCmd.Flags().String("format", "table", "output format: table, json, or yaml")

	rootCmd.AddCommand(planCmd)
}

func runPlan(cmd *cobra.Command, args []string) error {
	dir, _ := cmd.Flags().GetString("dir")
	if dir == "" {
		dir = viper.GetString("dir")
	}
	root, err := config.LocalRoot(dir)
	if err != nil {
		return err
	}

	indexFile, _ := cmd.Flags().GetString("index-file")
	exclude, _ := cmd.Flags().GetStringSlice("exclude")
	pages, err := hierarchy.Scan(root, hierarchy.Options{IndexFile: indexFile, Exclude: exclude})
	if err != nil {
		return err
	}

	format, _ := cmd.Flags().GetString("format")
	switch format {
	case "table":
		formatPlanTable(pages, os.Stdout)
		return nil
	case "json":
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(pages)
	case "yaml":
		return yaml.NewEncoder(os.Stdout).Encode(pages)
	default:
		return fmt.Errorf("unknown format %q (want table, json, or yaml)", format)
	}
}

func formatPlanTable(pages []*types.Page, w io.Writer) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "TYPE\tTITLE\tPATH\tPARENT")
	stubs := 0
	for _, p := range pages {
		title := p.Title
		if p.Stub {
			title += " (stub)"
			stubs++
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", p.Type, title, p.Path, p.ParentPath)
	}
	tw.Flush()
	fmt.Fprintf(w, "\n%d page(s), %d without an index document\n", len(pages), stubs)
}
