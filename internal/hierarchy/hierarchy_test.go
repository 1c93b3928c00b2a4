// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package hierarchy

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pdiddy/notion-tree/pkg/types"
)

// writeTree creates the named files (slash paths relative to root) with
// placeholder content, making parent directories as needed.
func writeTree(t *testing.T, root string, files ...string) {
	t.Helper()
	for _, f := range files {
		p := filepath.Join(root, filepath.FromSlash(f))
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(p, []byte("# "+f+"\n"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
}

func TestScanExampleTree(t *testing.T) {
	root := filepath.Join(t.TempDir(), "root")
	writeTree(t, root,
		"index.md",
		"dir1/index.md",
		"dir1/page1.md",
		"dir2/page2.md",
	)

	pages, err := Scan(root, Options{})
	if err != nil {
		t.Fatal(err)
	}

	want := []struct {
		typ    types.PageType
		path   string
		parent string
		title  string
		stub   bool
	}{
		{types.PageRoot, "index.md", "", "root", false},
		{types.PageNode, "dir1/index.md", "index.md", "dir1", false},
		{types.PageLeaf, "dir1/page1.md", "dir1/index.md", "page1", false},
		{types.PageNode, "dir2/index.md", "index.md", "dir2", true},
		{types.PageLeaf, "dir2/page2.md", "dir2/index.md", "page2", false},
	}

	if len(pages) != len(want) {
		t.Fatalf("len(pages) = %d, want %d", len(pages), len(want))
	}
	for i, w := range want {
		p := pages[i]
		if p.Type != w.typ {
			t.Errorf("pages[%d].Type = %s, want %s", i, p.Type, w.typ)
		}
		if p.Path != w.path {
			t.Errorf("pages[%d].Path = %q, want %q", i, p.Path, w.path)
		}
		if p.ParentPath != w.parent {
			t.Errorf("pages[%d].ParentPath = %q, want %q", i, p.ParentPath, w.parent)
		}
		if p.Title != w.title {
			t.Errorf("pages[%d].Title = %q, want %q", i, p.Title, w.title)
		}
		if p.Stub != w.stub {
			t.Errorf("pages[%d].Stub = %v, want %v", i, p.Stub, w.stub)
		}
	}
}

func TestScanRootWithoutIndex(t *testing.T) {
	root := filepath.Join(t.TempDir(), "docs")
	writeTree(t, root, "page.md")

	pages, err := Scan(root, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if len(pages) != 2 {
		t.Fatalf("len(pages) = %d, want 2", len(pages))
	}
	if !pages[0].Stub {
		t.Error("root page without index.md should be a stub")
	}
	if pages[0].Title != "docs" {
		t.Errorf("root title = %q, want %q", pages[0].Title, "docs")
	}
}

func TestScanSkipsNonMarkdownAndGit(t *testing.T) {
	root := filepath.Join(t.TempDir(), "root")
	writeTree(t, root,
		"index.md",
		"image.png",
		"notes.txt",
		".git/config.md",
		"vendor/skipme.md",
	)

	pages, err := Scan(root, Options{Exclude: []string{"vendor"}})
	if err != nil {
		t.Fatal(err)
	}
	if len(pages) != 1 {
		t.Fatalf("len(pages) = %d, want 1 (only the root page)", len(pages))
	}
	for _, p := range pages {
		if p.Path == "image.png" || p.Path == "notes.txt" {
			t.Errorf("non-markdown file scanned: %s", p.Path)
		}
	}
}

func TestScanCustomIndexFile(t *testing.T) {
	root := filepath.Join(t.TempDir(), "wiki")
	writeTree(t, root, "Home.md", "Page.md")

	pages, err := Scan(root, Options{IndexFile: "Home.md"})
	if err != nil {
		t.Fatal(err)
	}
	if len(pages) != 2 {
		t.Fatalf("len(pages) = %d, want 2", len(pages))
	}
	if pages[0].Path != "Home.md" || pages[0].Stub {
		t.Errorf("root page = %+v, want Home.md non-stub", pages[0])
	}
	if pages[1].Title != "Page" {
		t.Errorf("leaf title = %q, want %q", pages[1].Title, "Page")
	}
}

func TestScanLexicographicOrder(t *testing.T) {
	root := filepath.Join(t.TempDir(), "root")
	writeTree(t, root, "index.md", "b.md", "a.md", "c.md")

	pages, err := Scan(root, Options{})
	if err != nil {
		t.Fatal(err)
	}
	got := []string{pages[1].Title, pages[2].Title, pages[3].Title}
	want := []string{"a", "b", "c"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("leaf order = %v, want %v", got, want)
		}
	}
}

func TestScanRejectsTitleCollision(t *testing.T) {
	root := filepath.Join(t.TempDir(), "root")
	// "foo/" and "foo.md" under the same parent would both become a
	// remote page titled "foo".
	writeTree(t, root,
		"index.md",
		"foo.md",
		"foo/bar.md",
	)

	_, err := Scan(root, Options{})
	if err == nil {
		t.Fatal("expected error for colliding titles")
	}
	var cfgErr *types.ConfigError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("error = %v, want *types.ConfigError", err)
	}
	for _, want := range []string{"foo.md", "foo/index.md", `"foo"`} {
		if !strings.Contains(cfgErr.Reason, want) {
			t.Errorf("Reason = %q, missing %q", cfgErr.Reason, want)
		}
	}
}

func TestScanUnreadableRoot(t *testing.T) {
	_, err := Scan(filepath.Join(t.TempDir(), "missing"), Options{})
	if err == nil {
		t.Fatal("expected error for missing root")
	}
	var cfgErr *types.ConfigError
	if !errors.As(err, &cfgErr) {
		t.Errorf("error = %v, want *types.ConfigError", err)
	}
}
