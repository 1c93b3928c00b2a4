// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/notion-tree/pkg/types"
)

func TestTokenFromDefaultEnv(t *testing.T) {
	t.Setenv(DefaultTokenEnv, "  secret_abc  ")

	token, err := Token("")
	require.NoError(t, err)
	assert.Equal(t, "secret_abc", token)
}

func TestTokenFromNamedEnv(t *testing.T) {
	t.Setenv("MY_TOKEN", "secret_xyz")

	token, err := Token("MY_TOKEN")
	require.NoError(t, err)
	assert.Equal(t, "secret_xyz", token)
}

func TestTokenMissing(t *testing.T) {
	t.Setenv(DefaultTokenEnv, "")

	_, err := Token("")
	require.Error(t, err)

	var cfgErr *types.ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, DefaultTokenEnv, cfgErr.Setting)
}

func TestLocalRoot(t *testing.T) {
	dir := t.TempDir()

	abs, err := LocalRoot(dir)
	require.NoError(t, err)
	assert.True(t, filepath.IsAbs(abs))
}

func TestLocalRootMissing(t *testing.T) {
	_, err := LocalRoot(filepath.Join(t.TempDir(), "nope"))

	var cfgErr *types.ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "dir", cfgErr.Setting)
}

func TestLocalRootIsFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "file.md")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o644))

	_, err := LocalRoot(file)
	var cfgErr *types.ConfigError
	require.ErrorAs(t, err, &cfgErr)
}

func TestLocalRootEmpty(t *testing.T) {
	_, err := LocalRoot("")
	var cfgErr *types.ConfigError
	assert.True(t, errors.As(err, &cfgErr))
}

func TestParentPage(t *testing.T) {
	tests := []struct {
		name string
		ref  string
		want string
	}{
		{
			"browseable URL",
			"https://www.notion.so/ws/My-Page-25a81b2ade8a4d54a537077890123456",
			"25a81b2a-de8a-4d54-a537-077890123456",
		},
		{
			"bare hex ID",
			"25a81b2ade8a4d54a537077890123456",
			"25a81b2a-de8a-4d54-a537-077890123456",
		},
		{
			"dashed UUID",
			"25a81b2a-de8a-4d54-a537-077890123456",
			"25a81b2a-de8a-4d54-a537-077890123456",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := ParentPage(tt.ref)
			require.NoError(t, err)
			assert.Equal(t, tt.want, id)
		})
	}
}

func TestParentPageInvalid(t *testing.T) {
	for _, ref := range []string{"", "   ", "not-a-page", "https://www.notion.so/ws/no-id-here"} {
		_, err := ParentPage(ref)
		var cfgErr *types.ConfigError
		assert.ErrorAs(t, err, &cfgErr, "ref %q", ref)
	}
}

func TestWikiRoots(t *testing.T) {
	roots, err := WikiRoots([]string{
		"https://github.com/myname/myproject/wiki",
		"https://github.com/other/wiki/",
		"  ",
	})
	require.NoError(t, err)
	assert.Equal(t, []string{
		"https://github.com/myname/myproject/wiki/",
		"https://github.com/other/wiki/",
	}, roots)
}

func TestWikiRootsInvalid(t *testing.T) {
	_, err := WikiRoots([]string{"ftp://example.com/wiki"})
	var cfgErr *types.ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "github-wiki-root", cfgErr.Setting)
}

func TestWikiRootsEmpty(t *testing.T) {
	roots, err := WikiRoots(nil)
	require.NoError(t, err)
	assert.Nil(t, roots)
}
