//go:build unit

package logging_test

import (
	"os"
	"path/filepath"
	"testing"

	logger "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/rios0rios0/gitbridge/internal/infrastructure/logging"
)

func TestNewFormatter(t *testing.T) {
	t.Parallel()

	t.Run("should use JSON for the json format in any case", func(t *testing.T) {
		t.Parallel()

		// given
		format := "JSON"

		// when
		formatter := logging.NewFormatter(format)

		// then
		assert.IsType(t, &logger.JSONFormatter{}, formatter)
	})

	t.Run("should default to text", func(t *testing.T) {
		t.Parallel()

		// given
		format := ""

		// when
		formatter := logging.NewFormatter(format)

		// then
		assert.IsType(t, &logger.TextFormatter{}, formatter)
	})
}

func TestParseLevel(t *testing.T) {
	t.Parallel()

	t.Run("should parse known levels", func(t *testing.T) {
		t.Parallel()

		// given
		level := "debug"

		// when
		parsed := logging.ParseLevel(level)

		// then
		assert.Equal(t, logger.DebugLevel, parsed)
	})

	t.Run("should fall back to info", func(t *testing.T) {
		t.Parallel()

		// given
		levels := []string{"", "chatty"}

		for _, level := range levels {
			// when
			parsed := logging.ParseLevel(level)

			// then
			assert.Equal(t, logger.InfoLevel, parsed, level)
		}
	})
}

func TestNewWriter(t *testing.T) {
	t.Parallel()

	t.Run("should write to stderr without a file", func(t *testing.T) {
		t.Parallel()

		// given
		path := ""

		// when
		writer := logging.NewWriter(path)

		// then
		assert.Equal(t, os.Stderr, writer)
	})

	t.Run("should rotate through lumberjack and create the directory", func(t *testing.T) {
		t.Parallel()

		// given
		dir := filepath.Join(t.TempDir(), "logs")
		path := filepath.Join(dir, "gitbridge.log")

		// when
		writer := logging.NewWriter(path)

		// then
		rotating, ok := writer.(*lumberjack.Logger)
		require.True(t, ok)
		assert.Equal(t, path, rotating.Filename)
		assert.DirExists(t, dir)
	})
}
