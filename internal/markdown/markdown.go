// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package markdown renders Markdown documents into workspace content blocks.
package markdown

import (
	"bytes"
	"fmt"

	"github.com/adrg/frontmatter"
)

// StripFrontmatter removes a leading YAML frontmatter section from source
// and returns the document body. Frontmatter is metadata, not page text;
// it never reaches the remote body, and its fields do not influence page
// titles (titles stay filename-derived so title matching is stable across
// runs). A document without frontmatter is returned unchanged.
func StripFrontmatter(source []byte) ([]byte, error) {
	var meta map[string]any
	body, err := frontmatter.Parse(bytes.NewReader(source), &meta)
	if err != nil {
		return nil, fmt.Errorf("parsing frontmatter: %w", err)
	}
	return body, nil
}
