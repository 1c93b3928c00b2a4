package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/notion-tree/internal/journal"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List past sync runs from the journal",
	Long: `History reads the local run journal and lists recent sync runs. With
--run it shows the per-page operations of one run instead.`,
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().Int("limit", 20, "maximum number of runs to list")
	historyCmd.Flags().Int64("run", 0, "show the operations of one run")
	historyCmd.Flags().Bool("json", false, "output as JSON")
	historyCmd.Flags().String("journal", "", "run journal path (default under the user cache directory)")

	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	journalPath, _ := cmd.Flags().GetString("journal")
	j, err := journal.Open(journalPath)
	if err != nil {
		return err
	}
	defer j.Close()

	asJSON, _ := cmd.Flags().GetBool("json")

	if runID, _ := cmd.Flags().GetInt64("run"); runID > 0 {
		ops, err := j.Operations(runID)
		if err != nil {
			return err
		}
		if asJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(ops)
		}
		formatOperations(ops, os.Stdout)
		return nil
	}

	limit, _ := cmd.Flags().GetInt("limit")
	runs, err := j.Runs(limit)
	if err != nil {
		return err
	}
	if asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(runs)
	}
	formatRuns(runs, os.Stdout)
	return nil
}

func formatRuns(runs []journal.Run, w io.Writer) {
	if len(runs) == 0 {
		fmt.Fprintln(w, "No recorded runs.")
		return
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tSTARTED\tSTATUS\tCREATED\tMATCHED\tUPLOADED\tSKIPPED\tROOT")
	for _, r := range runs {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%d\t%d\t%d\t%d\t%s\n",
			r.ID, r.StartedAt.Local().Format(time.DateTime), r.Status,
			r.Created, r.Matched, r.Uploaded, r.Skipped, r.Root)
	}
	tw.Flush()
}

func formatOperations(ops []journal.Operation, w io.Writer) {
	if len(ops) == 0 {
		fmt.Fprintln(w, "No recorded operations for this run.")
		return
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "KIND\tPATH\tTITLE\tREMOTE ID\tDURATION")
	for _, op := range ops {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			op.Kind, op.Path, op.Title, op.RemoteID, op.Duration)
	}
	tw.Flush()
}
