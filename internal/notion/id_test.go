// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package notion

import "testing"

func TestParsePageID(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{
			"browseable url",
			"https://www.notion.so/acme/Team-Docs-25a81b2ade8a4d54a537077890123456",
			"25a81b2a-de8a-4d54-a537-077890123456",
			false,
		},
		{
			"url without slug",
			"https://www.notion.so/25a81b2ade8a4d54a537077890123456",
			"25a81b2a-de8a-4d54-a537-077890123456",
			false,
		},
		{
			"url with query",
			"https://www.notion.so/acme/Team-Docs-25a81b2ade8a4d54a537077890123456?pvs=4",
			"25a81b2a-de8a-4d54-a537-077890123456",
			false,
		},
		{
			"url with dashed id",
			"https://www.notion.so/acme/25a81b2a-de8a-4d54-a537-077890123456",
			"25a81b2a-de8a-4d54-a537-077890123456",
			false,
		},
		{
			"slug ending in a digit",
			"https://www.notion.so/acme/Page1-25a81b2ade8a4d54a537077890123456",
			"25a81b2a-de8a-4d54-a537-077890123456",
			false,
		},
		{
			"slug ending in hex letters",
			"https://www.notion.so/acme/Cafe-25a81b2ade8a4d54a537077890123456",
			"25a81b2a-de8a-4d54-a537-077890123456",
			false,
		},
		{
			"slug that is all hex",
			"https://www.notion.so/acme/deadbeef-25a81b2ade8a4d54a537077890123456",
			"25a81b2a-de8a-4d54-a537-077890123456",
			false,
		},
		{
			"bare hex id",
			"25a81b2ade8a4d54a537077890123456",
			"25a81b2a-de8a-4d54-a537-077890123456",
			false,
		},
		{
			"dashed id",
			"25A81B2A-DE8A-4D54-A537-077890123456",
			"25a81b2a-de8a-4d54-a537-077890123456",
			false,
		},
		{
			"whitespace trimmed",
			"  25a81b2ade8a4d54a537077890123456  ",
			"25a81b2a-de8a-4d54-a537-077890123456",
			false,
		},
		{"empty", "", "", true},
		{"too short", "25a81b2ade8a", "", true},
		{"not hex", "zza81b2ade8a4d54a537077890123456", "", true},
		{"url without id", "https://www.notion.so/acme/Team-Docs", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParsePageID(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParsePageID(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParsePageID(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
