// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package notion

import (
	"fmt"
	"net/url"
	"path"
	"regexp"
	"strings"
)

// hexIDPattern matches the 32 hex digits of a page ID once dashes are
// stripped: "25a81b2ade8a4d54a537077890123456".
var hexIDPattern = regexp.MustCompile(`[0-9a-fA-F]{32}`)

// tailIDPattern matches the page ID at the end of a URL path segment. The
// title slug ahead of the ID may itself end in hex characters ("Page1",
// "Cafe"), so the ID is always the trailing 32 hex digits, never the
// leftmost match.
var tailIDPattern = regexp.MustCompile(`[0-9a-fA-F]{32}$`)

// ParsePageID extracts the canonical dashed page ID from a reference. It
// accepts a browseable workspace URL ("https://www.notion.so/ws/My-Page-
// 25a81b2ade8a4d54a537077890123456"), a dashed UUID, or a bare 32-digit
// hex ID.
func ParsePageID(ref string) (string, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return "", fmt.Errorf("empty page reference")
	}

	if u, err := url.Parse(ref); err == nil && (u.Scheme == "http" || u.Scheme == "https") {
		segment := strings.ReplaceAll(path.Base(u.Path), "-", "")
		match := tailIDPattern.FindString(segment)
		if match == "" {
			return "", fmt.Errorf("no page ID in URL %q", ref)
		}
		return dashID(match), nil
	}

	plain := strings.ReplaceAll(ref, "-", "")
	if len(plain) == 32 && hexIDPattern.MatchString(plain) {
		return dashID(plain), nil
	}
	return "", fmt.Errorf("unrecognized page reference %q", ref)
}

// dashID formats 32 hex digits as the dashed 8-4-4-4-12 form the API uses.
func dashID(hex string) string {
	hex = strings.ToLower(hex)
	return strings.Join([]string{
		hex[0:8], hex[8:12], hex[12:16], hex[16:20], hex[20:32],
	}, "-")
}
