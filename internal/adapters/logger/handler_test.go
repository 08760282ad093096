package logger_test

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"go.trai.ch/twin/internal/adapters/logger"
)

func TestPrettyHandler_Levels(t *testing.T) {
	tests := []struct {
		name       string
		level      slog.Level
		goldenName string
	}{
		{name: "info level", level: slog.LevelInfo, goldenName: "handler_info"},
		{name: "warn level", level: slog.LevelWarn, goldenName: "handler_warn"},
		{name: "error level", level: slog.LevelError, goldenName: "handler_error"},
		{name: "debug level filtered", level: slog.LevelDebug, goldenName: "handler_debug_filtered"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("NO_COLOR", "1")

			buf := &bytes.Buffer{}
			lg := slog.New(logger.NewPrettyHandler(buf, &slog.HandlerOptions{Level: slog.LevelInfo}))
			lg.Log(t.Context(), tt.level, "message")

			g := goldie.New(t)
			g.Assert(t, tt.goldenName, buf.Bytes())
		})
	}
}

func TestPrettyHandler_AttrsAndGroups(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	buf := &bytes.Buffer{}
	h := logger.NewPrettyHandler(buf, nil)
	lg := slog.New(h).With("path", "node_modules").WithGroup("copy").With("index", 1)
	lg.Info("linked", "total", 3)

	assert.Equal(t, "linked path=node_modules copy.index=1 copy.total=3\n", buf.String())
}

func TestPrettyHandler_EmptyGroupIsIgnored(t *testing.T) {
	h := logger.NewPrettyHandler(&bytes.Buffer{}, nil)
	assert.Same(t, h, h.WithGroup(""))
}
