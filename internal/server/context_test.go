package server

import (
	"context"
	"testing"

	"github.com/ticktools/tickdone/internal/instrumentation"
	"github.com/ticktools/tickdone/internal/taskops"
)

func TestNewServerContextRequiresToken(t *testing.T) {
	_, err := NewServerContext(context.Background(), Config{})
	if err == nil {
		t.Fatal("NewServerContext() with empty token expected error, got nil")
	}
}

func TestNewServerContext(t *testing.T) {
	sc, err := NewServerContext(context.Background(), Config{
		AccessToken:  "test-token",
		FallbackZone: "Europe/Berlin",
	})
	if err != nil {
		t.Fatalf("NewServerContext() error = %v", err)
	}
	defer func() { _ = sc.Shutdown() }()

	if sc.Client() == nil {
		t.Error("Client() returned nil")
	}
	if sc.Service() == nil {
		t.Error("Service() returned nil")
	}
	if sc.Context() == nil {
		t.Error("Context() returned nil")
	}
}

func TestNewServerContextWithService(t *testing.T) {
	service := taskops.NewService(nil)
	sc := NewServerContextWithService(context.Background(), service)
	defer func() { _ = sc.Shutdown() }()

	if sc.Service() != service {
		t.Error("Service() did not return the supplied service")
	}
	if sc.Client() != nil {
		t.Error("Client() expected nil for service-only context")
	}
}

func TestServerContextShutdown(t *testing.T) {
	sc := NewServerContextWithService(context.Background(), taskops.NewService(nil))

	if sc.IsShutdown() {
		t.Error("IsShutdown() = true before Shutdown()")
	}

	if err := sc.Shutdown(); err != nil {
		t.Errorf("Shutdown() error = %v", err)
	}
	if !sc.IsShutdown() {
		t.Error("IsShutdown() = false after Shutdown()")
	}

	select {
	case <-sc.Context().Done():
	default:
		t.Error("context not cancelled after Shutdown()")
	}

	// Second shutdown is a no-op
	if err := sc.Shutdown(); err != nil {
		t.Errorf("second Shutdown() error = %v", err)
	}
}

func TestServerContextInstrumentationAccessors(t *testing.T) {
	sc := NewServerContextWithService(context.Background(), taskops.NewService(nil))
	defer func() { _ = sc.Shutdown() }()

	if sc.Metrics() != nil {
		t.Error("Metrics() expected nil before SetMetrics")
	}
	if sc.AuditLogger() != nil {
		t.Error("AuditLogger() expected nil before SetAuditLogger")
	}

	audit := instrumentation.NewAuditLogger(nil)
	sc.SetAuditLogger(audit)
	if sc.AuditLogger() != audit {
		t.Error("AuditLogger() did not return the attached logger")
	}

	sc.SetMetrics(&instrumentation.Metrics{})
	if sc.Metrics() == nil {
		t.Error("Metrics() returned nil after SetMetrics")
	}
}
