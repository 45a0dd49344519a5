package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gridmark/pkg/config"
)

func TestDefault_IsValid(t *testing.T) {
	t.Parallel()

	require.NoError(t, config.Default().Validate())
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*config.Options)
		wantErr string
	}{
		{
			name:   "defaults pass",
			mutate: func(*config.Options) {},
		},
		{
			name:   "zero width means unbounded",
			mutate: func(o *config.Options) { o.MaxColumnWidth = 0 },
		},
		{
			name:    "negative width",
			mutate:  func(o *config.Options) { o.MaxColumnWidth = -1 },
			wantErr: "max_column_width",
		},
		{
			name:    "bad color",
			mutate:  func(o *config.Options) { o.Color = "sometimes" },
			wantErr: "color",
		},
		{
			name:    "bad log level",
			mutate:  func(o *config.Options) { o.LogLevel = "loud" },
			wantErr: "log_level",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			opts := config.Default()
			tt.mutate(&opts)
			err := opts.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoad(t *testing.T) {
	t.Parallel()

	t.Run("empty path returns defaults", func(t *testing.T) {
		t.Parallel()

		opts, err := config.Load("")
		require.NoError(t, err)
		assert.Equal(t, config.Default(), opts)
	})

	t.Run("partial file layers over defaults", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), config.FileName)
		require.NoError(t, os.WriteFile(path, []byte("max_column_width: 20\n"), 0o644))

		opts, err := config.Load(path)
		require.NoError(t, err)
		assert.Equal(t, 20, opts.MaxColumnWidth)
		assert.Equal(t, "auto", opts.Color)
		assert.Equal(t, "info", opts.LogLevel)
	})

	t.Run("invalid values are rejected", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), config.FileName)
		require.NoError(t, os.WriteFile(path, []byte("color: rainbow\n"), 0o644))

		_, err := config.Load(path)
		require.Error(t, err)
	})

	t.Run("malformed yaml", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), config.FileName)
		require.NoError(t, os.WriteFile(path, []byte("max_column_width: [\n"), 0o644))

		_, err := config.Load(path)
		require.Error(t, err)
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()

		_, err := config.Load(filepath.Join(t.TempDir(), "nope.yaml"))
		require.Error(t, err)
	})
}

func TestDiscover(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	path, ok := config.Discover(nested)
	assert.False(t, ok)
	assert.Empty(t, path)

	want := filepath.Join(root, config.FileName)
	require.NoError(t, os.WriteFile(want, []byte("color: never\n"), 0o644))

	path, ok = config.Discover(nested)
	require.True(t, ok)
	assert.Equal(t, want, path)
}
