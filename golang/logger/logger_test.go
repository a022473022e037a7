package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestParseLevel(t *testing.T) {
	level, err := ParseLevel("debug")
	require.NoError(t, err)
	assert.Equal(t, zap.DebugLevel, level)

	level, err = ParseLevel("")
	require.NoError(t, err)
	assert.Equal(t, zap.InfoLevel, level)

	_, err = ParseLevel("verbose")
	assert.Error(t, err)
}

func TestNewWritesToRotatedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ex3.log")
	log, err := New("test", Config{Level: "INFO", Path: path, RotationTime: 1, RotationMaxAge: 1})
	require.NoError(t, err)

	log.Debug("hidden")
	log.Infof("tree with error %d", 3)
	require.NoError(t, log.Sync())

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "tree with error 3")
	assert.Contains(t, string(content), "[INFO]")
	assert.NotContains(t, string(content), "hidden")
}

func TestNewWithoutOutputs(t *testing.T) {
	log, err := New("quiet", Config{})
	require.NoError(t, err)
	log.Info("nothing")
}
