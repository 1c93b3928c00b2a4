package types

import "time"

// HTTPConfig holds shared HTTP settings for the workspace API client.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "notion-tree/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`

	// MaxRetries is the number of retry attempts for rate-limited or
	// transient server failures (default 5).
	MaxRetries int `json:"max_retries" yaml:"max_retries"`
}

// ScanConfig holds settings for scanning a local directory tree.
type ScanConfig struct {
	// IndexFile is the document carrying a directory's own content
	// (default "index.md").
	IndexFile string `json:"index_file" yaml:"index_file"`

	// Exclude lists directory names skipped during the scan. The ".git"
	// directory is always skipped.
	Exclude []string `json:"exclude,omitempty" yaml:"exclude,omitempty"`
}

// SyncConfig holds settings for the sync stage.
type SyncConfig struct {
	HTTPConfig `yaml:",inline"`
	ScanConfig `yaml:",inline"`

	// WikiRoots lists absolute URL prefixes (e.g. a GitHub wiki) whose
	// links are rewritten as references into the synchronized tree.
	WikiRoots []string `json:"wiki_roots,omitempty" yaml:"wiki_roots,omitempty"`

	// StrictLinks makes an unresolvable intra-tree link fail the run
	// instead of passing through unchanged with a warning.
	StrictLinks bool `json:"strict_links" yaml:"strict_links"`
}
