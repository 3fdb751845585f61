package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMorphServer(t *testing.T) {
	assert.Equal(t, "http://localhost:8196", MorphServer("localhost:8196"))
	assert.Equal(t, "http://localhost:8196", MorphServer("http://localhost:8196/"))
	assert.Equal(t, "https://partners.example.com:443", MorphServer("https://partners.example.com:443"))
	assert.Equal(t, "", MorphServer(""))
}

func TestConfigWriteAndLoad(t *testing.T) {
	file := filepath.Join(t.TempDir(), "config.yaml")
	cfg := &Config{
		Version: "v1",
		Server:  "localhost:8196",
	}
	require.NoError(t, cfg.WriteConfig(file))

	require.NoError(t, LoadConfig(file))
	assert.Equal(t, "http://localhost:8196", GetConfig().GetServerURL())
}

func TestLoadConfigValidation(t *testing.T) {
	dir := t.TempDir()

	missing := filepath.Join(dir, "nope.yaml")
	assert.Error(t, LoadConfig(missing))

	noPort := filepath.Join(dir, "noport.yaml")
	require.NoError(t, os.WriteFile(noPort, []byte("version: v1\nserver: localhost\n"), 0644))
	assert.Error(t, LoadConfig(noPort))

	empty := filepath.Join(dir, "empty.yaml")
	require.NoError(t, os.WriteFile(empty, []byte("version: v1\n"), 0644))
	assert.Error(t, LoadConfig(empty))
}
