package helpers

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupLogger(t *testing.T) {
	t.Parallel()

	t.Run("nil handler falls back to a default", func(t *testing.T) {
		t.Parallel()
		handler, logger := SetupLogger(nil, "evaluator")
		assert.NotNil(t, handler)
		assert.NotNil(t, logger)
	})

	t.Run("provided handler is grouped under the component", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		base := slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})

		handler, logger := SetupLogger(base, "renderer")
		require.NotNil(t, logger)
		assert.Equal(t, base, handler)

		logger.Debug("msg", "key", "val")
		assert.Contains(t, buf.String(), "renderer.key=val")
	})
}
