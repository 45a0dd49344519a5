package logging_test

import (
	"context"
	"testing"

	"github.com/yaklabco/gridmark/internal/logging"
)

func TestFromContext(t *testing.T) {
	t.Parallel()

	t.Run("returns attached logger", func(t *testing.T) {
		t.Parallel()

		logger := logging.New("debug")
		ctx := logging.WithLogger(context.Background(), logger)

		if got := logging.FromContext(ctx); got != logger {
			t.Error("expected the attached logger back")
		}
	})

	t.Run("empty context falls back to default", func(t *testing.T) {
		t.Parallel()

		if got := logging.FromContext(context.Background()); got != logging.Default() {
			t.Error("expected the default logger")
		}
	})

	t.Run("nil context falls back to default", func(t *testing.T) {
		t.Parallel()

		//nolint:staticcheck // Exercising the nil-context guard
		if got := logging.FromContext(nil); got != logging.Default() {
			t.Error("expected the default logger")
		}
	})
}

func TestWithLogger_NilContext(t *testing.T) {
	t.Parallel()

	logger := logging.New("info")

	//nolint:staticcheck // Exercising the nil-context guard
	ctx := logging.WithLogger(nil, logger)
	if ctx == nil {
		t.Fatal("WithLogger returned nil context")
	}

	if got := logging.FromContext(ctx); got != logger {
		t.Error("expected the attached logger back")
	}
}
