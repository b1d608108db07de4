package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	t.Run("Parses Level", func(t *testing.T) {
		l, err := New(Config{Level: "debug", Output: "console"})
		require.NoError(t, err)
		assert.Equal(t, logrus.DebugLevel, l.GetLevel())
	})

	t.Run("Unknown Level Falls Back To Info", func(t *testing.T) {
		l, err := New(Config{Level: "chatty"})
		require.NoError(t, err)
		assert.Equal(t, logrus.InfoLevel, l.GetLevel())
	})

	t.Run("JSON Format", func(t *testing.T) {
		l, err := New(Config{Level: "info", Format: "JSON"})
		require.NoError(t, err)
		assert.IsType(t, &logrus.JSONFormatter{}, l.Formatter)
	})

	t.Run("Text Format By Default", func(t *testing.T) {
		l, err := New(Config{Level: "info"})
		require.NoError(t, err)
		assert.IsType(t, &logrus.TextFormatter{}, l.Formatter)
	})

	t.Run("File Output Writes Through Rotation", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "logs", "p4bridge.log")
		l, err := New(Config{Level: "info", Output: "file", FilePath: path, MaxSize: 1})
		require.NoError(t, err)

		l.Info("hello from the test")

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(data), "hello from the test")
	})
}

func TestInitAndGetLogger(t *testing.T) {
	require.NoError(t, Init(Config{Level: "warn"}))
	assert.Equal(t, logrus.WarnLevel, GetLogger().GetLevel())
	assert.NotNil(t, WithComponent("test"))
}
