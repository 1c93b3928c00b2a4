// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "fmt"

// ConfigError reports invalid or missing run configuration. It is returned
// before any remote call is made, so a misconfigured run never mutates the
// workspace.
type ConfigError struct {
	// Setting is the flag, environment variable, or config key at fault.
	Setting string

	// Reason describes what is wrong with the setting.
	Reason string

	// Err is the underlying cause, if any.
	Err error
}

func (e *ConfigError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("config: %s: %s: %v", e.Setting, e.Reason, e.Err)
	}
	return fmt.Sprintf("config: %s: %s", e.Setting, e.Reason)
}

func (e *ConfigError) Unwrap() error { return e.Err }
