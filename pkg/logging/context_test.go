package logging_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/wanderstone/heritage/pkg/logging"
)

func TestContextLogger(t *testing.T) {
	// Create test logger
	testLogger := logging.NewTestLogger(t)

	// Create context with logger
	ctx := logging.WithLogger(context.Background(), testLogger.Logger)

	// Add fields to context
	ctx = logging.WithSite(ctx, "1133")
	ctx = logging.WithLocale(ctx, "fr")

	// Get logger from context and log
	logger := logging.FromContext(ctx)
	logger.Info().Msg("test message")

	// Verify output contains expected fields
	testLogger.AssertContains(t, "1133")
	testLogger.AssertContains(t, "fr")
	testLogger.AssertContains(t, "test message")
}

func TestContextFunctions(t *testing.T) {
	t.Run("FromContext returns default for nil context", func(t *testing.T) {
		//nolint:staticcheck // Testing nil context handling explicitly
		logger := logging.FromContext(nil)
		assert.NotNil(t, logger)
	})

	t.Run("WithStage adds stage to context", func(t *testing.T) {
		testLogger := logging.NewTestLogger(t)
		ctx := logging.WithLogger(context.Background(), testLogger.Logger)
		ctx = logging.WithStage(ctx, "reconcile")

		logging.FromContext(ctx).Info().Msg("stage entry")
		testLogger.AssertContains(t, "reconcile")
	})

	t.Run("WithComponent adds component to context", func(t *testing.T) {
		testLogger := logging.NewTestLogger(t)
		ctx := logging.WithLogger(context.Background(), testLogger.Logger)
		ctx = logging.WithComponent(ctx, "Q186348")

		logging.FromContext(ctx).Info().Msg("component entry")
		testLogger.AssertContains(t, "Q186348")
	})

	t.Run("WithField adds a custom field to context", func(t *testing.T) {
		testLogger := logging.NewTestLogger(t)
		ctx := logging.WithLogger(context.Background(), testLogger.Logger)
		ctx = logging.WithField(ctx, "records", 1223)

		logging.FromContext(ctx).Info().Msg("fields entry")
		testLogger.AssertContains(t, `"records":1223`)
	})
}

func TestWithRunID(t *testing.T) {
	testLogger := logging.NewTestLogger(t)
	ctx := logging.WithLogger(context.Background(), testLogger.Logger)

	ctx = logging.WithRunID(ctx, "0f2a7e36-run")

	logging.FromContext(ctx).Info().Msg("run entry")
	testLogger.AssertContains(t, `"run_id":"0f2a7e36-run"`)
}
