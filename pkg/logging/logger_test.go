package logging_test

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/skubridge/skubridge/pkg/logging"
)

func TestDefaultLogger(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := zerolog.New(buf).Level(zerolog.DebugLevel).With().Timestamp().Logger()
	logging.SetDefault(logger)

	logging.Debug().Msg("debug message")
	logging.Info().Msg("info message")
	logging.Warn().Msg("warning message")
	logging.Error().Msg("error message")

	output := buf.String()
	if !strings.Contains(output, "info message") {
		t.Errorf("Expected info message in output, got: %s", output)
	}
}

func TestContextLogger(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := zerolog.New(buf).Level(zerolog.DebugLevel).With().Timestamp().Logger()

	ctx := logging.WithLogger(context.Background(), &logger)
	logging.FromContext(ctx).Info().Msg("from context")

	if !strings.Contains(buf.String(), "from context") {
		t.Errorf("Expected context logger output, got: %s", buf.String())
	}
}

func TestFromContextFallsBack(t *testing.T) {
	if logging.FromContext(nil) == nil {
		t.Error("Expected default logger for nil context")
	}
	if logging.FromContext(context.Background()) == nil {
		t.Error("Expected default logger for empty context")
	}
}

func TestWithCycleID(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := zerolog.New(buf).Level(zerolog.DebugLevel)

	ctx := logging.WithLogger(context.Background(), &logger)
	ctx = logging.WithCycleID(ctx, "cycle-42")

	if got := logging.CycleID(ctx); got != "cycle-42" {
		t.Errorf("Expected cycle-42, got %q", got)
	}

	logging.FromContext(ctx).Info().Msg("tagged")
	if !strings.Contains(buf.String(), "cycle-42") {
		t.Errorf("Expected cycle_id field in output, got: %s", buf.String())
	}
}
