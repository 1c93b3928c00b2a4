// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package links rewrites intra-tree link destinations to workspace page URLs
// using the mapping built during the ensure phase.
package links

import (
	"fmt"
	"net/url"
	"path"
	"strings"

	"go.uber.org/zap"

	"github.com/pdiddy/notion-tree/pkg/types"
)

// ResolutionError reports a destination that looks like an intra-tree link
// but maps to no synchronized page. Only strict mode surfaces it; lenient
// mode passes the original destination through.
type ResolutionError struct {
	// Dest is the link destination as written in the document.
	Dest string

	// Source is the root-relative path of the document containing the link.
	Source string
}

func (e *ResolutionError) Error() string {
	return fmt.Sprintf("unresolved link %q in %s", e.Dest, e.Source)
}

// Resolver rewrites one document's link destinations. The zero Strict value
// is the original tool's lenient behavior: unresolved candidates keep their
// written destination.
type Resolver struct {
	// Mapping is the completed local-to-remote correspondence for the run.
	Mapping types.Mapping

	// SourcePath is the root-relative path of the document being rendered;
	// relative destinations resolve against its directory.
	SourcePath string

	// WikiRoots lists absolute URL prefixes (e.g. a GitHub wiki) whose
	// pages correspond to root-relative ".md" documents in the tree.
	WikiRoots []string

	// Strict turns unresolved intra-tree candidates into errors.
	Strict bool

	// Log receives a warning per unresolved destination in lenient mode.
	// Nil disables logging.
	Log *zap.Logger
}

// Resolve maps dest to the corresponding workspace page URL. Destinations
// that are not intra-tree candidates (anchors, mailto, external URLs outside
// every wiki root) pass through unchanged.
func (r *Resolver) Resolve(dest string) (string, error) {
	if dest == "" || strings.HasPrefix(dest, "#") {
		return dest, nil
	}

	u, err := url.Parse(dest)
	if err != nil {
		return dest, nil
	}
	if u.Scheme == "http" || u.Scheme == "https" {
		local, ok := r.wikiPath(dest)
		if !ok {
			return dest, nil
		}
		return r.lookup(dest, local)
	}
	if u.Scheme != "" || u.Host != "" {
		// mailto:, ftp:, protocol-relative — not ours.
		return dest, nil
	}

	local := u.Path
	if decoded, err := url.PathUnescape(local); err == nil {
		local = decoded
	}
	local = path.Clean(path.Join(path.Dir(r.SourcePath), local))
	return r.lookup(dest, local)
}

// wikiPath maps an absolute URL under one of the configured wiki roots to
// the root-relative document path it stands for ("Page-Name" under the wiki
// becomes "Page-Name.md").
func (r *Resolver) wikiPath(dest string) (string, bool) {
	for _, root := range r.WikiRoots {
		if !strings.HasSuffix(root, "/") {
			root += "/"
		}
		if !strings.HasPrefix(dest, root) {
			continue
		}
		u, err := url.Parse(dest)
		if err != nil {
			return "", false
		}
		rootURL, err := url.Parse(root)
		if err != nil {
			return "", false
		}
		page := strings.TrimPrefix(u.Path, rootURL.Path)
		if decoded, err := url.PathUnescape(page); err == nil {
			page = decoded
		}
		return strings.Trim(page, "/") + ".md", true
	}
	return "", false
}

// lookup returns the remote URL for the root-relative path local, falling
// back to the written destination (lenient) or failing (strict) on a miss.
func (r *Resolver) lookup(dest, local string) (string, error) {
	if ref, ok := r.Mapping[local]; ok {
		return ref.URL, nil
	}
	if r.Strict {
		return "", &ResolutionError{Dest: dest, Source: r.SourcePath}
	}
	if r.Log != nil {
		r.Log.Warn("unresolved link",
			zap.String("dest", dest),
			zap.String("source", r.SourcePath))
	}
	return dest, nil
}
