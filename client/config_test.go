package client

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigFromEnv(t *testing.T) {
	t.Setenv("NANOLEAF_IP", "192.168.0.40")
	t.Setenv("NANOLEAF_AUTH_TOKEN", "secret")

	cfg := ConfigFromEnv()
	assert.Equal(t, "192.168.0.40", cfg.Address)
	assert.Equal(t, "secret", cfg.Token)
	assert.NoError(t, cfg.Validate())
}

func TestConfigWithEnvDefaults(t *testing.T) {
	t.Setenv("NANOLEAF_IP", "192.168.0.40")
	t.Setenv("NANOLEAF_AUTH_TOKEN", "secret")

	cfg := Config{Token: "explicit"}.WithEnvDefaults()
	assert.Equal(t, "192.168.0.40", cfg.Address)
	assert.Equal(t, "explicit", cfg.Token)
}

func TestConfigValidate(t *testing.T) {
	assert.Error(t, Config{Token: "t"}.Validate())
	assert.Error(t, Config{Address: "a"}.Validate())
	assert.NoError(t, Config{Address: "a", Token: "t"}.Validate())
}

func TestLoadEnvFile(t *testing.T) {
	t.Setenv("NANOLEAF_IP", "")
	os.Unsetenv("NANOLEAF_IP")
	t.Setenv("NANOLEAF_AUTH_TOKEN", "already-set")

	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("NANOLEAF_IP=10.9.9.9\nNANOLEAF_AUTH_TOKEN=from-file\n"), 0o600))

	require.NoError(t, LoadEnvFile(path))
	t.Cleanup(func() { os.Unsetenv("NANOLEAF_IP") })

	cfg := ConfigFromEnv()
	assert.Equal(t, "10.9.9.9", cfg.Address)
	assert.Equal(t, "already-set", cfg.Token)

	assert.Error(t, LoadEnvFile(filepath.Join(t.TempDir(), "missing.env")))
}
