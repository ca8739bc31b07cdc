package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg := LoadConfig(filepath.Join(t.TempDir(), "missing.yml"))
	assert.Equal(t, DefaultAppConfig.Web.Port, cfg.Web.Port)
	assert.Equal(t, "postgres", cfg.Database.Type)
}

func TestLoadConfigFileAndEnvOverride(t *testing.T) {
	dir := t.TempDir()
	cfile := filepath.Join(dir, "toughmall.yml")
	content := []byte("web:\n  host: 127.0.0.1\n  port: 9090\ndatabase:\n  name: malltest\n")
	require.NoError(t, os.WriteFile(cfile, content, 0o644))

	t.Setenv("TOUGHMALL_WEB_PORT", "9091")
	t.Setenv("TOUGHMALL_DB_USER", "mall")

	cfg := LoadConfig(cfile)
	assert.Equal(t, "127.0.0.1", cfg.Web.Host)
	// env wins over the file
	assert.Equal(t, 9091, cfg.Web.Port)
	assert.Equal(t, "malltest", cfg.Database.Name)
	assert.Equal(t, "mall", cfg.Database.User)
}
