package cmd

import (
	"os"
	"path/filepath"
	"testing"

	internalApp "github.com/haierkeys/product-note-service/internal/app"
	"github.com/haierkeys/product-note-service/internal/middleware"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestResolveConfigPathWritesDefault(t *testing.T) {
	t.Chdir(t.TempDir())
	configDefault = "security:\n  auth-token: " + defaultAuthTokenPlaceholder + "\n"

	path, err := resolveConfigPath()
	require.NoError(t, err)
	assert.Equal(t, "config/config.yaml", path)

	cfg, _, err := internalApp.LoadConfig(path)
	require.NoError(t, err)
	assert.Len(t, cfg.Security.AuthToken, 32)
	assert.NotEqual(t, defaultAuthTokenPlaceholder, cfg.Security.AuthToken)

	again, err := resolveConfigPath()
	require.NoError(t, err)
	assert.Equal(t, path, again)
}

func TestInitValidatorWithLogger(t *testing.T) {
	uni, err := initValidatorWithLogger(zap.NewNop())
	require.NoError(t, err)

	_, found := uni.GetTranslator("zh")
	assert.True(t, found)
	_, found = uni.GetTranslator("en")
	assert.True(t, found)
}

func TestNewServerBuildsAndStops(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	require.NoError(t, os.WriteFile("config.yaml", []byte(`
log:
  file: storage/logs/test.log
database:
  path: storage/database/test.sqlite3
security:
  auth-token: secret
`), 0644))

	s, err := NewServer(&runFlags{config: "config.yaml", runMode: "test", port: "0"}, middleware.NewHTTPMetrics(prometheus.NewRegistry()))
	require.NoError(t, err)
	require.NotNil(t, s.GetApp())
	assert.Equal(t, ":0", s.GetConfig().Server.HttpPort)
	assert.Equal(t, "test", s.GetConfig().Server.RunMode)
	assert.DirExists(t, filepath.Join(dir, "storage", "database"))

	require.NoError(t, s.Stop())
	assert.True(t, s.GetApp().IsShuttingDown())
	assert.NoError(t, s.Stop())
}
