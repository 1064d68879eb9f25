package cmd

import (
	"context"
	"log/slog"
	"testing"

	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/ticktools/tickdone/internal/server"
	"github.com/ticktools/tickdone/internal/taskops"
)

func TestRegisterAllTools(t *testing.T) {
	tests := []struct {
		name     string
		readOnly bool
	}{
		{name: "read-only mode", readOnly: true},
		{name: "write mode", readOnly: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mcpSrv := mcpserver.NewMCPServer("test", "0.0.0")
			sc := server.NewServerContextWithService(context.Background(), taskops.NewService(nil))
			t.Cleanup(func() { _ = sc.Shutdown() })

			if err := registerAllTools(mcpSrv, sc, tt.readOnly); err != nil {
				t.Fatalf("registerAllTools() error = %v", err)
			}
		})
	}
}

func TestNewLogger(t *testing.T) {
	logger := newLogger(false)
	if logger.Enabled(context.Background(), slog.LevelDebug) {
		t.Error("expected debug to be disabled by default")
	}
	if !logger.Enabled(context.Background(), slog.LevelInfo) {
		t.Error("expected info to be enabled by default")
	}

	debugLogger := newLogger(true)
	if !debugLogger.Enabled(context.Background(), slog.LevelDebug) {
		t.Error("expected debug to be enabled in debug mode")
	}
}
