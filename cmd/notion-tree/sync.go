package main

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/pdiddy/notion-tree/internal/config"
	"github.com/pdiddy/notion-tree/internal/hierarchy"
	"github.com/pdiddy/notion-tree/internal/journal"
	"github.com/pdiddy/notion-tree/internal/notion"
	"github.com/pdiddy/notion-tree/internal/sync"
	"github.com/pdiddy/notion-tree/pkg/types"
)

const defaultTimeout = 60 * time.Second

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Mirror the local directory onto the Notion page tree",
	Long: `Sync scans the local directory, ensures a Notion page exists for every
directory and Markdown document under the given parent page (matching
existing pages by title, creating the rest), then uploads each document's
rendered body with relative links rewritten to Notion URLs.

Any remote failure aborts the run. Pages created before the failure remain;
re-running repairs the tree by matching titles, so a sync is safe to retry.`,
	RunE: runSync,
}

func init() {
	syncCmd.Flags().String("dir", "", "local root directory to mirror")
	syncCmd.Flags().String("root-parent-url", "", "URL or ID of the Notion page to mirror under")
	syncCmd.Flags().StringSlice("github-wiki-root", nil, "GitHub wiki URL whose links resolve into the tree (repeatable)")
	syncCmd.Flags().String("index-file", hierarchy.DefaultIndexFile, "document carrying a directory's own content")
	syncCmd.Flags().StringSlice("exclude", nil, "directory names to skip in addition to .git (repeatable)")
	syncCmd.Flags().Bool("strict-links", false, "fail on intra-tree links that resolve to no page")
	syncCmd.Flags().Duration("timeout", 0, "HTTP request timeout (default 60s)")
	syncCmd.Flags().Int("max-retries", 0, "retries for rate-limited requests (default 5)")
	syncCmd.Flags().String("token-env", "", "environment variable holding the integration token (default NOTION_TOKEN)")
	syncCmd.Flags().String("journal", "", "run journal path (default under the user cache directory)")
	syncCmd.Flags().Bool("no-journal", false, "disable the run journal")

	rootCmd.AddCommand(syncCmd)
}

func runSync(cmd *cobra.Command, args []string) error {
	dir, _ := cmd.Flags().GetString("dir")
	if dir == "" {
		dir = viper.GetString("dir")
	}
	parentRef, _ := cmd.Flags().GetString("root-parent-url")
	if parentRef == "" {
		parentRef = viper.GetString("root_parent_url")
	}
	wikiRootArgs, _ := cmd.Flags().GetStringSlice("github-wiki-root")
	if len(wikiRootArgs) == 0 {
		wikiRootArgs = viper.GetStringSlice("github_wiki_roots")
	}

	tokenEnv, _ := cmd.Flags().GetString("token-env")
	token, err := config.Token(tokenEnv)
	if err != nil {
		return err
	}
	root, err := config.LocalRoot(dir)
	if err != nil {
		return err
	}
	parentID, err := config.ParentPage(parentRef)
	if err != nil {
		return err
	}
	wikiRoots, err := config.WikiRoots(wikiRootArgs)
	if err != nil {
		return err
	}

	indexFile, _ := cmd.Flags().GetString("index-file")
	exclude, _ := cmd.Flags().GetStringSlice("exclude")
	strict, _ := cmd.Flags().GetBool("strict-links")
	timeout, _ := cmd.Flags().GetDuration("timeout")
	if timeout == 0 {
		timeout = defaultTimeout
	}
	maxRetries, _ := cmd.Flags().GetInt("max-retries")

	pages, err := hierarchy.Scan(root, hierarchy.Options{IndexFile: indexFile, Exclude: exclude})
	if err != nil {
		return err
	}

	cfg := types.SyncConfig{
		HTTPConfig: types.HTTPConfig{
			Timeout:    timeout,
			UserAgent:  "notion-tree/" + version,
			MaxRetries: maxRetries,
		},
		ScanConfig: types.ScanConfig{
			IndexFile: indexFile,
			Exclude:   exclude,
		},
		WikiRoots:   wikiRoots,
		StrictLinks: strict,
	}

	client := notion.NewClient(&http.Client{Timeout: timeout}, token, cfg.HTTPConfig, logger)

	var recorder sync.Recorder
	var j *journal.Journal
	var runID int64
	if noJournal, _ := cmd.Flags().GetBool("no-journal"); !noJournal {
		journalPath, _ := cmd.Flags().GetString("journal")
		j, err = journal.Open(journalPath)
		if err != nil {
			return err
		}
		defer j.Close()
		runID, err = j.BeginRun(root, parentID)
		if err != nil {
			return err
		}
		recorder = journal.NewRunRecorder(j, runID, logger)
	}

	result, runErr := sync.Run(cmd.Context(), client, pages, sync.Options{
		RootDir:  root,
		ParentID: parentID,
		Config:   cfg,
		Log:      logger,
		Recorder: recorder,
	}, os.Stdout)

	if j != nil {
		status := journal.StatusOK
		if runErr != nil {
			status = journal.StatusFailed
		}
		if err := j.FinishRun(runID, status, result.Created, result.Matched, result.Uploaded, result.Skipped); err != nil {
			logger.Warn("journal write failed", zap.Error(err))
		}
	}
	if runErr != nil {
		return fmt.Errorf("sync: %w", runErr)
	}
	return nil
}
