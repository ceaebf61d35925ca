package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/nkoppel/rootchego/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingPathReturnsDefaults(t *testing.T) {
	opts, err := config.Load("")
	require.NoError(t, err)
	assert.Equal(t, config.Defaults(), opts)

	opts, err = config.Load(filepath.Join(t.TempDir(), "does-not-exist.toml"))
	require.NoError(t, err)
	assert.Equal(t, config.Defaults(), opts)
}

func TestLoadOverlaysFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "rootchego.toml")
	body := "[engine]\nhash_mib = 256\nthreads = 4\nchess960 = true\n"
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	opts, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, uint(256), opts.Hash)
	assert.Equal(t, uint(4), opts.Threads)
	assert.True(t, opts.Chess960)
}
