package logger

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLogLevel(t *testing.T) {
	assert.Equal(t, DEBUG, ParseLogLevel("debug"))
	assert.Equal(t, WARN, ParseLogLevel("warning"))
	assert.Equal(t, ERROR, ParseLogLevel("ERROR"))
	assert.Equal(t, INFO, ParseLogLevel("verbose"))
	assert.Equal(t, "FATAL", FATAL.String())
}

func TestLogger_FiltersBelowLevel(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&buf, WARN, nil)

	l.Debugf("debug %d", 1)
	l.Infof("info %d", 2)
	l.Warnf("warn %d", 3)
	l.Errorf("error %d", 4)

	out := buf.String()
	assert.NotContains(t, out, "debug 1")
	assert.NotContains(t, out, "info 2")
	assert.Contains(t, out, "[WARN] ")
	assert.Contains(t, out, "warn 3")
	assert.Contains(t, out, "[ERROR] ")

	buf.Reset()
	l.SetLevel(DEBUG)
	assert.Equal(t, DEBUG, l.GetLevel())
	l.Debugf("now visible")
	assert.Contains(t, buf.String(), "[DEBUG] ")
	assert.NoError(t, l.Close())
}

func TestNew_WritesRotatedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "api.log")
	l, err := New(Config{File: path, Level: INFO, MaxSize: 1, MaxBackups: 1, MaxAge: 1})
	require.NoError(t, err)

	l.Infof("hello file")
	require.NoError(t, l.Close())
	assert.FileExists(t, path)
}

func TestPackageFunctions_WithoutInit(t *testing.T) {
	assert.NotPanics(t, func() {
		Infof("dropped before init")
		SetLevel(DEBUG)
	})
}
