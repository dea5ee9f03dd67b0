package ctxlog

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFromContext(t *testing.T) {
	t.Run("should return the logger stored in the context", func(t *testing.T) {
		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		ctx := WithLogger(context.Background(), logger)

		require.Same(t, logger, FromContext(ctx))
		FromContext(ctx).Info("compiled", "component", "App")
		require.Contains(t, buf.String(), "component=App")
	})

	t.Run("should panic when the context has no logger", func(t *testing.T) {
		require.PanicsWithValue(t, "ctxlog: logger missing from context", func() {
			FromContext(context.Background())
		})
	})
}
