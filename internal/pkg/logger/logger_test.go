//go:build unit

package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/ueberboese/ueberboese-api/internal/config"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestInit_WritesEventFile(t *testing.T) {
	dir := t.TempDir()
	eventFile := filepath.Join(dir, "nested", "events.log")

	require.NoError(t, Init(config.LogConfig{
		Level:     "debug",
		Format:    "console",
		EventFile: eventFile,
		MaxSizeMB: 1,
	}))
	t.Cleanup(func() { Replace(nil, nil) })

	Event().Info("event", zap.String("body", `{"k":"v"}`))
	Sync()

	data, err := os.ReadFile(eventFile)
	require.NoError(t, err)
	require.Contains(t, string(data), `"msg":"event"`)
	require.Contains(t, string(data), `{\"k\":\"v\"}`)
}

func TestInit_InvalidLevelFallsBackToInfo(t *testing.T) {
	require.NoError(t, Init(config.LogConfig{Level: "loud"}))
	t.Cleanup(func() { Replace(nil, nil) })

	require.True(t, L().Core().Enabled(zap.InfoLevel))
	require.False(t, L().Core().Enabled(zap.DebugLevel))
}

func TestReplace(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	Replace(zap.New(core), nil)
	t.Cleanup(func() { Replace(nil, nil) })

	L().With(zap.String("component", "test")).Info("hello")
	require.Equal(t, 1, logs.Len())
	require.Equal(t, "test", logs.All()[0].ContextMap()["component"])

	// an unset event logger is a no-op
	require.NotPanics(t, func() { Event().Info("dropped") })
}
