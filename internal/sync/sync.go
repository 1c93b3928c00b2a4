// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package sync mirrors a scanned local page hierarchy onto the workspace.
//
// A run has two phases. The ensure phase walks the pages in scan order and
// makes sure each one exists under its remote parent, matching existing
// children by title and creating what is missing; it records every page in
// the Mapping. The publish phase renders each document with links resolved
// through the completed Mapping and uploads the body. Completing the Mapping
// before rendering anything makes forward links (a parent linking to a child
// created later in the run) resolve deterministically.
package sync

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/pdiddy/notion-tree/internal/hierarchy"
	"github.com/pdiddy/notion-tree/internal/links"
	"github.com/pdiddy/notion-tree/internal/markdown"
	"github.com/pdiddy/notion-tree/internal/notion"
	"github.com/pdiddy/notion-tree/pkg/types"
)

// Client is the remote boundary the synchronizer drives. *notion.Client
// satisfies it; tests substitute a fake.
type Client interface {
	CreatePage(ctx context.Context, parentID, title string) (notion.ChildPage, error)
	SetPageContent(ctx context.Context, pageID string, blocks []notion.Block) error
	ListChildren(ctx context.Context, pageID string) ([]notion.ChildPage, error)
	PageURL(ctx context.Context, pageID string) (string, error)
}

// Recorder observes the run for the journal. Implementations must not fail
// the run; a nil Recorder disables recording.
type Recorder interface {
	Operation(kind, path, title, remoteID, remoteURL string, elapsed time.Duration)
}

// Operation kinds passed to the Recorder and printed as progress prefixes.
const (
	OpCreated  = "created"
	OpMatched  = "matched"
	OpUploaded = "uploaded"
	OpSkipped  = "skipped"
)

// Options configures one run.
type Options struct {
	// RootDir is the absolute local directory the pages were scanned from.
	RootDir string

	// ParentID is the remote page the local root is mirrored under.
	ParentID string

	// Config carries index filename, wiki roots, and link strictness.
	Config types.SyncConfig

	// Log receives per-call diagnostics. Nil disables logging.
	Log *zap.Logger

	// Recorder receives one entry per remote operation. Nil disables it.
	Recorder Recorder
}

// Result summarizes a completed run.
type Result struct {
	Created  int
	Matched  int
	Uploaded int
	Skipped  int

	// Mapping is the local-to-remote correspondence the run built.
	Mapping types.Mapping
}

// Total returns the number of pages processed.
func (r Result) Total() int {
	return r.Created + r.Matched
}

// Run synchronizes pages under opts.ParentID, writing one progress line per
// page per phase to w. Any remote failure aborts the run immediately; pages
// already created remain, and a re-run repairs the tree through title
// matching.
func Run(ctx context.Context, client Client, pages []*types.Page, opts Options, w io.Writer) (Result, error) {
	log := opts.Log
	if log == nil {
		log = zap.NewNop()
	}

	result := Result{Mapping: types.Mapping{}}
	if len(pages) == 0 {
		fmt.Fprintln(w, "Nothing to sync.")
		return result, nil
	}

	if err := ensure(ctx, client, pages, opts, log, w, &result); err != nil {
		return result, err
	}
	if err := publish(ctx, client, pages, opts, log, w, &result); err != nil {
		return result, err
	}

	fmt.Fprintf(w, "Sync summary: %d created, %d matched, %d uploaded, %d skipped\n",
		result.Created, result.Matched, result.Uploaded, result.Skipped)
	return result, nil
}

// ensure makes a remote page exist for every local page and fills the
// Mapping. Pages arrive in pre-order, so a parent's Mapping entry is always
// present before its children need it.
func ensure(ctx context.Context, client Client, pages []*types.Page, opts Options, log *zap.Logger, w io.Writer, result *Result) error {
	// Each remote parent is listed at most once per run.
	children := map[string][]notion.ChildPage{}

	for _, page := range pages {
		start := time.Now()

		parentID := opts.ParentID
		if page.Type != types.PageRoot {
			parent, ok := result.Mapping[page.ParentPath]
			if !ok {
				return fmt.Errorf("no remote parent for %s (parent %s)", page.Path, page.ParentPath)
			}
			parentID = parent.ID
		}

		siblings, listed := children[parentID]
		if !listed {
			var err error
			siblings, err = client.ListChildren(ctx, parentID)
			if err != nil {
				return err
			}
			children[parentID] = siblings
		}

		var ref types.RemoteRef
		kind := OpCreated
		if match, ok := matchTitle(siblings, page.Title); ok {
			url, err := client.PageURL(ctx, match.ID)
			if err != nil {
				return err
			}
			ref = types.RemoteRef{ID: match.ID, URL: url}
			kind = OpMatched
			result.Matched++
		} else {
			created, err := client.CreatePage(ctx, parentID, page.Title)
			if err != nil {
				return err
			}
			url, err := client.PageURL(ctx, created.ID)
			if err != nil {
				return err
			}
			ref = types.RemoteRef{ID: created.ID, URL: url}
			children[parentID] = append(children[parentID], created)
			result.Created++
		}

		result.Mapping[page.Path] = ref
		if page.IsIndex() {
			// Directory alias: links to "./dir" resolve like "./dir/index.md".
			result.Mapping[page.Dir()] = ref
		}

		fmt.Fprintf(w, "%s: %s (%s)\n", kind, page.Title, page.Path)
		record(opts.Recorder, kind, page, ref, time.Since(start))
		log.Debug("ensured page",
			zap.String("kind", kind),
			zap.String("path", page.Path),
			zap.String("page_id", ref.ID),
			zap.Duration("elapsed", time.Since(start)))
	}
	return nil
}

// publish renders and uploads every page body. Stub directory pages have no
// document and are skipped; their remote page stays empty and keeps holding
// children.
func publish(ctx context.Context, client Client, pages []*types.Page, opts Options, log *zap.Logger, w io.Writer, result *Result) error {
	for _, page := range pages {
		start := time.Now()
		ref := result.Mapping[page.Path]

		if page.Stub {
			fmt.Fprintf(w, "%s: %s (no %s)\n", OpSkipped, page.Title, indexFile(opts.Config))
			record(opts.Recorder, OpSkipped, page, ref, time.Since(start))
			result.Skipped++
			continue
		}

		source, err := os.ReadFile(filepath.Join(opts.RootDir, filepath.FromSlash(page.Path)))
		if err != nil {
			return fmt.Errorf("reading %s: %w", page.Path, err)
		}
		body, err := markdown.StripFrontmatter(source)
		if err != nil {
			return fmt.Errorf("%s: %w", page.Path, err)
		}

		resolver := &links.Resolver{
			Mapping:    result.Mapping,
			SourcePath: page.Path,
			WikiRoots:  opts.Config.WikiRoots,
			Strict:     opts.Config.StrictLinks,
			Log:        log,
		}
		blocks, err := markdown.RenderBlocks(body, resolver.Resolve)
		if err != nil {
			return fmt.Errorf("rendering %s: %w", page.Path, err)
		}

		if err := client.SetPageContent(ctx, ref.ID, blocks); err != nil {
			return err
		}

		fmt.Fprintf(w, "%s: %s (%d blocks)\n", OpUploaded, page.Title, len(blocks))
		record(opts.Recorder, OpUploaded, page, ref, time.Since(start))
		log.Debug("uploaded page",
			zap.String("path", page.Path),
			zap.Int("blocks", len(blocks)),
			zap.Duration("elapsed", time.Since(start)))
		result.Uploaded++
	}
	return nil
}

// matchTitle finds the first child with exactly the given title.
func matchTitle(children []notion.ChildPage, title string) (notion.ChildPage, bool) {
	for _, c := range children {
		if c.Title == title {
			return c, true
		}
	}
	return notion.ChildPage{}, false
}

func record(r Recorder, kind string, page *types.Page, ref types.RemoteRef, elapsed time.Duration) {
	if r == nil {
		return
	}
	r.Operation(kind, page.Path, page.Title, ref.ID, ref.URL, elapsed)
}

func indexFile(cfg types.SyncConfig) string {
	if cfg.IndexFile == "" {
		return hierarchy.DefaultIndexFile
	}
	return cfg.IndexFile
}
