package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, "127.0.0.1:50051", c.ServerEndpointAddr)
	assert.Equal(t, "session.db", c.SessionDBPath)
	assert.Equal(t, "downloads", c.DownloadDir)
	assert.Equal(t, 3*time.Second, c.PingTimeout)
	assert.Equal(t, "warn", c.LogLevel)
}

func TestLoadConfig_Layering(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	path := writeTemp(t, "cfg.yaml", "server_endpoint_addr: file:1\nsession_db_path: file.db\nping_timeout: 5s\n")
	t.Setenv("FRAUDCHECK_SESSION_DB", "env.db")
	os.Args = []string{"cli", "-c", path, "-w", "out"}

	cfg := LoadConfig()

	require.NotNil(t, cfg)
	assert.Equal(t, "file:1", cfg.ServerEndpointAddr)
	assert.Equal(t, "env.db", cfg.SessionDBPath)
	assert.Equal(t, "out", cfg.DownloadDir)
	assert.Equal(t, 5*time.Second, cfg.PingTimeout)
}

func TestParseEnv_BadDurationPanics(t *testing.T) {
	t.Setenv("FRAUDCHECK_PING_TIMEOUT", "soon")
	require.Panics(t, func() { parseEnv(&Config{}) })
}
