package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/synrais/padkeys/pkg/config"
)

func captureConsole(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := Console
	Console = &buf
	t.Cleanup(func() { Console = prev })
	return &buf
}

func TestLoggerWritesConsoleAndFile(t *testing.T) {
	console := captureConsole(t)
	dir := t.TempDir()

	cfg := config.NewDefaultConfig()
	cfg.AppPath = filepath.Join(dir, "padkeys")

	l := New(cfg)
	l.Println("[PADKEYS] hello")
	require.NoError(t, l.Close())

	assert.Contains(t, console.String(), "[PADKEYS] hello")
	body, err := os.ReadFile(filepath.Join(dir, "padkeys.log"))
	require.NoError(t, err)
	assert.Contains(t, string(body), "[PADKEYS] hello")
}

func TestLoggerWithoutFile(t *testing.T) {
	console := captureConsole(t)
	cfg := config.NewDefaultConfig()
	cfg.Log.File = ""

	l := New(cfg)
	l.Printf("[INPUT] %s", "only console")
	assert.NoError(t, l.Close())
	assert.Contains(t, console.String(), "only console")
}
