package app

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/doeshing/qrgen/internal/domain"
	"github.com/doeshing/qrgen/internal/infrastructure/history"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	gt.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestBuildContainerJSONBackend(t *testing.T) {
	dir := t.TempDir()
	historyPath := filepath.Join(dir, "history.json")
	path := writeConfig(t, "output:\n  directory: "+dir+"\nhistory:\n  enabled: true\n  path: "+historyPath+"\n")

	c, err := BuildContainer(context.Background(), Options{ConfigPath: path, LogWriter: &bytes.Buffer{}})
	gt.NoError(t, err)
	defer c.Close()

	_, ok := c.HistoryStore.(*history.FileStore)
	gt.True(t, ok)
	gt.Equal(t, c.HistoryStore.Path(), historyPath)
	gt.V(t, c.Workflow.History).NotNil()
	gt.Equal(t, c.Workflow.DefaultPath(domain.PayloadWiFi), filepath.Join(dir, "wifi_qrcode.png"))
	gt.Equal(t, c.Workflow.DefaultPath(domain.PayloadText), filepath.Join(dir, "qrcode.png"))
}

func TestBuildContainerSQLiteBackend(t *testing.T) {
	historyPath := filepath.Join(t.TempDir(), "history.db")
	path := writeConfig(t, "history:\n  enabled: true\n  backend: sqlite\n  path: "+historyPath+"\n")

	c, err := BuildContainer(context.Background(), Options{ConfigPath: path, LogWriter: &bytes.Buffer{}})
	gt.NoError(t, err)
	_, ok := c.HistoryStore.(*history.SQLiteStore)
	gt.True(t, ok)
	gt.NoError(t, c.Close())
}

func TestBuildContainerHistoryDisabled(t *testing.T) {
	path := writeConfig(t, "history:\n  enabled: false\noutput:\n  format: jpg\n")

	c, err := BuildContainer(context.Background(), Options{ConfigPath: path, LogWriter: &bytes.Buffer{}})
	gt.NoError(t, err)
	defer c.Close()

	gt.True(t, c.Workflow.History == nil)
	gt.Equal(t, c.Workflow.DefaultPath(domain.PayloadSocial), "social_qrcode.jpg")
}

func TestResolveLogLevel(t *testing.T) {
	t.Setenv(EnvDebug, "")
	t.Setenv(EnvLogLevel, "")
	gt.Equal(t, resolveLogLevel("", "warn"), "warn")

	t.Setenv(EnvLogLevel, "error")
	gt.Equal(t, resolveLogLevel("", "warn"), "error")
	gt.Equal(t, resolveLogLevel("debug", "warn"), "debug")

	t.Setenv(EnvDebug, "1")
	gt.Equal(t, resolveLogLevel("error", "warn"), "debug")
}
