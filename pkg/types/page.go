// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "path"

// PageType classifies a local node in the synchronized tree.
type PageType int

const (
	PageUnknown PageType = iota

	// PageRoot is the scanned root directory itself.
	PageRoot

	// PageNode is a subdirectory below the root.
	PageNode

	// PageLeaf is a standalone document inside a directory.
	PageLeaf
)

func (t PageType) String() string {
	switch t {
	case PageRoot:
		return "root"
	case PageNode:
		return "node"
	case PageLeaf:
		return "leaf"
	default:
		return "unknown"
	}
}

// Page is one local filesystem node destined to become one remote page.
// Directory pages (root and node) are represented by their index document:
// Path names that document whether or not it exists on disk.
type Page struct {
	// Type distinguishes the root directory, subdirectories, and documents.
	Type PageType `json:"type" yaml:"type"`

	// Path is the slash-separated path of the page's document, relative to
	// the scanned root (e.g. "dir1/index.md", "dir1/page1.md").
	Path string `json:"path" yaml:"path"`

	// ParentPath is the Path of the parent page. Empty for the root page.
	ParentPath string `json:"parent_path,omitempty" yaml:"parent_path,omitempty"`

	// Title is the remote page title: the directory name for root and node
	// pages, the filename without extension for leaves.
	Title string `json:"title" yaml:"title"`

	// Stub marks a directory page whose index document is missing. Stub
	// pages get an empty remote body but still hold children.
	Stub bool `json:"stub,omitempty" yaml:"stub,omitempty"`
}

// IsIndex reports whether the page stands for a directory rather than a
// standalone document.
func (p *Page) IsIndex() bool {
	return p.Type == PageRoot || p.Type == PageNode
}

// Dir returns the directory portion of the page's path ("." for documents
// directly under the root).
func (p *Page) Dir() string {
	return path.Dir(p.Path)
}

// RemoteRef identifies a page in the hosted workspace.
type RemoteRef struct {
	// ID is the workspace page identifier.
	ID string `json:"id" yaml:"id"`

	// URL is the browseable page URL used when rewriting links.
	URL string `json:"url" yaml:"url"`
}

// Mapping associates root-relative local paths with their remote pages.
// It is rebuilt from scratch on every run: idempotent re-syncs rely on
// title matching under the same remote parent, never on persisted IDs.
// Directory pages are keyed both by their index document path and by the
// directory path itself, so "dir1" and "dir1/index.md" resolve alike.
type Mapping map[string]RemoteRef
