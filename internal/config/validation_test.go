package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidate_AllDefaults_Pass(t *testing.T) {
	cfg := DefaultConfig()
	err := cfg.Validate()
	assert.NoError(t, err)
}

func TestValidate_P4(t *testing.T) {
	t.Run("Blank Executable Fails", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.P4.Executable = "  "
		err := cfg.Validate()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "p4.executable")
	})

	t.Run("Empty Compare Tool Fails", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.P4.CompareTool = ""
		err := cfg.Validate()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "compare_tool")
	})
}

func TestValidate_Catalog(t *testing.T) {
	t.Run("Zero Concurrency Fails", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Catalog.Concurrency = 0
		err := cfg.Validate()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "concurrency")
	})
}

func TestValidate_Log(t *testing.T) {
	t.Run("Unknown Level Fails", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Log.Level = "loud"
		err := cfg.Validate()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "log.level")
	})

	t.Run("Level Is Case Insensitive", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Log.Level = "DEBUG"
		assert.NoError(t, cfg.Validate())
	})

	t.Run("File Output Requires Path", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Log.Output = "file"
		err := cfg.Validate()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "log.file_path")

		cfg.Log.FilePath = "/var/log/p4bridge.log"
		assert.NoError(t, cfg.Validate())
	})

	t.Run("Reports Every Violation", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Log.Format = "xml"
		cfg.Catalog.Concurrency = 0
		err := cfg.Validate()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "log.format")
		assert.Contains(t, err.Error(), "catalog.concurrency")
	})
}
