// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package config resolves and validates run configuration. Every check here
// runs before the first remote call, so a misconfigured invocation exits
// without touching the workspace.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pdiddy/notion-tree/internal/notion"
	"github.com/pdiddy/notion-tree/pkg/types"
)

// DefaultTokenEnv is the environment variable holding the integration token.
const DefaultTokenEnv = "NOTION_TOKEN"

// Token returns the bearer token from the named environment variable
// (DefaultTokenEnv when envVar is empty). The value is trimmed; an unset or
// blank variable is a ConfigError.
func Token(envVar string) (string, error) {
	if envVar == "" {
		envVar = DefaultTokenEnv
	}
	token := strings.TrimSpace(os.Getenv(envVar))
	if token == "" {
		return "", &types.ConfigError{Setting: envVar, Reason: "integration token not set"}
	}
	return token, nil
}

// LocalRoot validates that dir names an existing directory and returns its
// absolute path.
func LocalRoot(dir string) (string, error) {
	if dir == "" {
		return "", &types.ConfigError{Setting: "dir", Reason: "local root directory required"}
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolving local root %s: %w", dir, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		if os.IsNotExist(err) {
			return "", &types.ConfigError{Setting: "dir", Reason: "local root does not exist", Err: err}
		}
		return "", fmt.Errorf("checking local root %s: %w", abs, err)
	}
	if !info.IsDir() {
		return "", &types.ConfigError{Setting: "dir", Reason: fmt.Sprintf("%s is not a directory", abs)}
	}
	return abs, nil
}

// ParentPage parses the page reference the tree is mirrored under. It
// accepts a full workspace URL or a bare page ID, in dashed or undashed
// form, and returns the canonical dashed ID.
func ParentPage(ref string) (string, error) {
	if strings.TrimSpace(ref) == "" {
		return "", &types.ConfigError{Setting: "root-parent-url", Reason: "parent page URL or ID required"}
	}
	id, err := notion.ParsePageID(ref)
	if err != nil {
		return "", &types.ConfigError{Setting: "root-parent-url", Reason: "unrecognized page reference", Err: err}
	}
	return id, nil
}

// WikiRoots validates that every wiki root is an absolute http(s) URL and
// normalizes each to end with a single trailing slash.
func WikiRoots(roots []string) ([]string, error) {
	if len(roots) == 0 {
		return nil, nil
	}
	out := make([]string, 0, len(roots))
	for _, root := range roots {
		root = strings.TrimSpace(root)
		if root == "" {
			continue
		}
		if !strings.HasPrefix(root, "http://") && !strings.HasPrefix(root, "https://") {
			return nil, &types.ConfigError{Setting: "github-wiki-root", Reason: fmt.Sprintf("%s is not an absolute http(s) URL", root)}
		}
		out = append(out, strings.TrimRight(root, "/")+"/")
	}
	return out, nil
}
