// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package hierarchy scans a local directory tree into the ordered list of
// pages the synchronizer mirrors to the workspace.
package hierarchy

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/pdiddy/notion-tree/pkg/types"
)

// DefaultIndexFile is the document carrying a directory's own page content.
const DefaultIndexFile = "index.md"

// Options controls the scan.
type Options struct {
	// IndexFile is the recognized index filename (DefaultIndexFile when
	// empty). Exactly one name is recognized per run; there is no
	// fallback list.
	IndexFile string

	// Exclude lists directory names skipped in addition to ".git".
	Exclude []string
}

func (o Options) indexFile() string {
	if o.IndexFile == "" {
		return DefaultIndexFile
	}
	return o.IndexFile
}

func (o Options) excluded(name string) bool {
	if name == ".git" {
		return true
	}
	for _, e := range o.Exclude {
		if name == e {
			return true
		}
	}
	return false
}

// Scan walks root depth-first and returns its pages in pre-order: each
// directory's own page first, then a leaf page per Markdown document, then
// the subdirectories. Entries are visited in lexicographic order, so the
// remote child order is deterministic. Only ".md" files participate; a
// directory whose index document is missing still yields a (stub) page so
// its children have a parent.
func Scan(root string, opts Options) ([]*types.Page, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolving scan root %s: %w", root, err)
	}

	rootPage := &types.Page{
		Type:  types.PageRoot,
		Path:  opts.indexFile(),
		Title: filepath.Base(abs),
	}

	var pages []*types.Page
	if err := scanDir(abs, "", rootPage, opts, &pages); err != nil {
		return nil, err
	}

	// A directory "foo" and a sibling document "foo.md" would both be
	// titled "foo" under the same remote parent, and title matching would
	// silently merge them into one page. Refuse the tree instead.
	seen := make(map[string]string, len(pages))
	for _, p := range pages {
		key := p.ParentPath + "\x00" + p.Title
		if prev, ok := seen[key]; ok {
			return nil, &types.ConfigError{
				Setting: "dir",
				Reason:  fmt.Sprintf("%s and %s would both be titled %q under the same parent page", prev, p.Path, p.Title),
			}
		}
		seen[key] = p.Path
	}
	return pages, nil
}

// scanDir emits dirPage followed by the pages below dir. rel is dir's
// slash-separated path relative to the scan root ("" for the root itself).
func scanDir(dir, rel string, dirPage *types.Page, opts Options, pages *[]*types.Page) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return &types.ConfigError{Setting: "dir", Reason: fmt.Sprintf("cannot read directory %s", dir), Err: err}
	}

	index := opts.indexFile()
	if _, err := os.Stat(filepath.Join(dir, index)); err != nil {
		dirPage.Stub = true
	}
	*pages = append(*pages, dirPage)

	// os.ReadDir sorts entries by name; leaves come before subdirectories,
	// matching a top-down walk.
	for _, entry := range entries {
		if entry.IsDir() || entry.Name() == index || !strings.HasSuffix(entry.Name(), ".md") {
			continue
		}
		*pages = append(*pages, &types.Page{
			Type:       types.PageLeaf,
			Path:       path.Join(rel, entry.Name()),
			ParentPath: dirPage.Path,
			Title:      strings.TrimSuffix(entry.Name(), ".md"),
		})
	}

	for _, entry := range entries {
		if !entry.IsDir() || opts.excluded(entry.Name()) {
			continue
		}
		childRel := path.Join(rel, entry.Name())
		child := &types.Page{
			Type:       types.PageNode,
			Path:       path.Join(childRel, index),
			ParentPath: dirPage.Path,
			Title:      entry.Name(),
		}
		if err := scanDir(filepath.Join(dir, entry.Name()), childRel, child, opts, pages); err != nil {
			return err
		}
	}
	return nil
}
