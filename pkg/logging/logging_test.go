package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupLogger(t *testing.T) {
	tests := []struct {
		name      string
		verbosity int
		wantLevel zerolog.Level
	}{
		{"default warn level", 0, zerolog.WarnLevel},
		{"info level", 1, zerolog.InfoLevel},
		{"debug level", 2, zerolog.DebugLevel},
		{"trace level", 3, zerolog.TraceLevel},
		{"high verbosity defaults to trace", 5, zerolog.TraceLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			SetConsoleOutput(&bytes.Buffer{})
			t.Cleanup(func() { SetConsoleOutput(os.Stderr) })

			SetupLogger(tt.verbosity)

			assert.Equal(t, tt.wantLevel, zerolog.GlobalLevel())
		})
	}
}

func TestAttachLogFile(t *testing.T) {
	tempDir := t.TempDir()
	t.Setenv("XDG_STATE_HOME", tempDir)
	SetConsoleOutput(&bytes.Buffer{})
	t.Cleanup(func() { SetConsoleOutput(os.Stderr) })

	SetupLogger(1)
	path, err := AttachLogFile()
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(tempDir, "yaml2config", "yaml2config.log"), path)

	GetLogger("test").Info().Msg("hello from the test")

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "hello from the test")
	assert.Contains(t, string(content), `"component":"test"`)
}

func TestGetLogFilePath(t *testing.T) {
	t.Run("with XDG_STATE_HOME", func(t *testing.T) {
		t.Setenv("XDG_STATE_HOME", "/custom/state")
		assert.Equal(t, filepath.Join("/custom/state", "yaml2config", "yaml2config.log"), getLogFilePath())
	})

	t.Run("without XDG_STATE_HOME", func(t *testing.T) {
		t.Setenv("XDG_STATE_HOME", "")
		got := getLogFilePath()
		assert.True(t, filepath.IsAbs(got), "expected absolute path, got %s", got)
		assert.Equal(t, "yaml2config.log", filepath.Base(got))
	})
}

func TestGetLogger(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	var buf bytes.Buffer
	SetConsoleOutput(&buf)
	t.Cleanup(func() { SetConsoleOutput(os.Stderr) })

	SetupLogger(1)
	GetLogger("render").Info().Str("template", "app.conf.j2").Msg("rendered")

	assert.Contains(t, buf.String(), "component=render")
	assert.Contains(t, buf.String(), "template=app.conf.j2")
}

func TestLogOperationStart(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	var buf bytes.Buffer
	SetConsoleOutput(&buf)
	t.Cleanup(func() { SetConsoleOutput(os.Stderr) })

	SetupLogger(2)
	done := LogOperationStart(GetLogger("test"), "sync")
	done()

	assert.Contains(t, buf.String(), "Operation started")
	assert.Contains(t, buf.String(), "Operation completed")
	assert.Contains(t, buf.String(), "operation=sync")
}
