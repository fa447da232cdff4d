package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, DefaultDataDirName, cfg.Storage.DataDir)
	assert.Equal(t, time.Minute, cfg.Storage.CacheTTL)
	assert.Equal(t, "> ", cfg.Console.Prompt)
	require.NoError(t, cfg.Validate())
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "vterm.yaml")

	yaml := `
storage:
  dataDir: /tmp/vterm-test
console:
  prompt: "$ "
logLevel: debug
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/vterm-test", cfg.Storage.DataDir)
	assert.Equal(t, time.Minute, cfg.Storage.CacheTTL)
	assert.Equal(t, "$ ", cfg.Console.Prompt)
	assert.Equal(t, "debug", cfg.LogLevel)

	// fields absent from the file keep their defaults
	assert.Equal(t, "█", cfg.Console.ActiveCursorSymbol)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, ErrConfigFileMissing)

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("storage: [unclosed"), 0644))
	_, err = Load(path)
	assert.ErrorIs(t, err, ErrConfigFileUnmarshallable)
}

func TestValidateFillsGaps(t *testing.T) {
	cfg := &Config{Storage: Storage{DataDir: "x"}}
	require.NoError(t, cfg.Validate())
	assert.Equal(t, time.Minute, cfg.Storage.CacheTTL)
	assert.Equal(t, "> ", cfg.Console.Prompt)

	cfg = &Config{}
	assert.ErrorIs(t, cfg.Validate(), ErrDataDirMissing)
}
