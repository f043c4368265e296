package logging_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/axicon-labs/constable/pkg/logging"
)

func TestContextFunctions(t *testing.T) {
	t.Run("WithDocument adds document to context", func(t *testing.T) {
		ctx := context.Background()
		ctx = logging.WithDocument(ctx, "paper.md")

		logger := logging.FromContext(ctx)
		assert.NotNil(t, logger)
	})

	t.Run("WithRegistry adds registry source to context", func(t *testing.T) {
		ctx := context.Background()
		ctx = logging.WithRegistry(ctx, "registry.yaml")

		logger := logging.FromContext(ctx)
		assert.NotNil(t, logger)
	})

	t.Run("WithStage adds stage to context", func(t *testing.T) {
		ctx := context.Background()
		ctx = logging.WithStage(ctx, "match")

		logger := logging.FromContext(ctx)
		assert.NotNil(t, logger)
	})

	t.Run("WithRunID adds run ID to context and logger", func(t *testing.T) {
		ctx := context.Background()
		ctx = logging.WithRunID(ctx, "run-123")

		assert.Equal(t, "run-123", logging.RunID(ctx))
		assert.NotNil(t, logging.FromContext(ctx))
	})

	t.Run("RunID returns empty without context value", func(t *testing.T) {
		assert.Equal(t, "", logging.RunID(context.Background()))
	})

	t.Run("WithFields adds custom fields to context", func(t *testing.T) {
		ctx := context.Background()
		fields := map[string]interface{}{
			"tokens":  12,
			"matched": true,
		}
		ctx = logging.WithFields(ctx, fields)

		logger := logging.FromContext(ctx)
		assert.NotNil(t, logger)
	})

	t.Run("FromContext falls back to default logger", func(t *testing.T) {
		logger := logging.FromContext(context.Background())
		assert.NotNil(t, logger)

		var nilCtx context.Context
		assert.NotNil(t, logging.FromContext(nilCtx))
	})

	t.Run("Ctx extracts logger from context", func(t *testing.T) {
		ctx := context.Background()
		ctx = logging.WithDocument(ctx, "notes.md")

		logger := logging.Ctx(ctx)
		assert.NotNil(t, logger)
	})

	t.Run("chaining context functions", func(t *testing.T) {
		ctx := context.Background()
		ctx = logging.WithDocument(ctx, "paper.md")
		ctx = logging.WithRegistry(ctx, "registry.yaml")
		ctx = logging.WithStage(ctx, "plan")

		logger := logging.FromContext(ctx)
		assert.NotNil(t, logger)
	})
}
