package logging

import (
	"errors"
	"log/slog"
	"testing"
)

func TestWithOperation(t *testing.T) {
	logger := slog.Default()
	result := WithOperation(logger, "test_operation")
	if result == nil {
		t.Error("WithOperation returned nil")
	}
}

func TestWithTool(t *testing.T) {
	logger := slog.Default()
	result := WithTool(logger, "test_tool")
	if result == nil {
		t.Error("WithTool returned nil")
	}
}

func TestOperationAttr(t *testing.T) {
	attr := Operation("test_op")
	if attr.Key != KeyOperation {
		t.Errorf("Operation key = %q, want %q", attr.Key, KeyOperation)
	}
	if attr.Value.String() != "test_op" {
		t.Errorf("Operation value = %q, want %q", attr.Value.String(), "test_op")
	}
}

func TestToolAttr(t *testing.T) {
	attr := Tool("ticktick_create_task")
	if attr.Key != KeyTool {
		t.Errorf("Tool key = %q, want %q", attr.Key, KeyTool)
	}
	if attr.Value.String() != "ticktick_create_task" {
		t.Errorf("Tool value = %q, want %q", attr.Value.String(), "ticktick_create_task")
	}
}

func TestTaskIDAttr(t *testing.T) {
	attr := TaskID("6863f3cd8f08de4f92b9ad1c")
	if attr.Key != KeyTaskID {
		t.Errorf("TaskID key = %q, want %q", attr.Key, KeyTaskID)
	}
	if attr.Value.String() != "6863f3cd8f08de4f92b9ad1c" {
		t.Errorf("TaskID value = %q", attr.Value.String())
	}
}

func TestProjectIDAttr(t *testing.T) {
	attr := ProjectID("inbox125")
	if attr.Key != KeyProjectID {
		t.Errorf("ProjectID key = %q, want %q", attr.Key, KeyProjectID)
	}
	if attr.Value.String() != "inbox125" {
		t.Errorf("ProjectID value = %q, want %q", attr.Value.String(), "inbox125")
	}
}

func TestZoneAttr(t *testing.T) {
	attr := Zone("America/Los_Angeles")
	if attr.Key != KeyZone {
		t.Errorf("Zone key = %q, want %q", attr.Key, KeyZone)
	}
	if attr.Value.String() != "America/Los_Angeles" {
		t.Errorf("Zone value = %q", attr.Value.String())
	}
}

func TestCountAttr(t *testing.T) {
	attr := Count(42)
	if attr.Key != KeyCount {
		t.Errorf("Count key = %q, want %q", attr.Key, KeyCount)
	}
	if attr.Value.Int64() != 42 {
		t.Errorf("Count value = %d, want 42", attr.Value.Int64())
	}
}

func TestStatusAttr(t *testing.T) {
	attr := Status(StatusSuccess)
	if attr.Key != KeyStatus {
		t.Errorf("Status key = %q, want %q", attr.Key, KeyStatus)
	}
	if attr.Value.String() != StatusSuccess {
		t.Errorf("Status value = %q, want %q", attr.Value.String(), StatusSuccess)
	}
}

func TestErr(t *testing.T) {
	// Test with error
	err := errors.New("test error")
	attr := Err(err)
	if attr.Key != KeyError {
		t.Errorf("Err key = %q, want %q", attr.Key, KeyError)
	}
	if attr.Value.String() != "test error" {
		t.Errorf("Err value = %q, want %q", attr.Value.String(), "test error")
	}

	// Test with nil - should return an empty group that slog will omit
	attr = Err(nil)
	// Empty Group has empty key
	if attr.Key != "" {
		t.Errorf("Err(nil) key = %q, want empty string (empty group)", attr.Key)
	}
}

func TestSanitizeToken(t *testing.T) {
	tests := []struct {
		token    string
		expected string
	}{
		{"", "<empty>"},
		{"abc123", "[token:6 chars]"},
		{"a_very_long_token_string", "[token:24 chars]"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			result := SanitizeToken(tt.token)
			if result != tt.expected {
				t.Errorf("SanitizeToken(%q) = %q, want %q", tt.token, result, tt.expected)
			}
		})
	}
}

func TestStatusConstants(t *testing.T) {
	if StatusSuccess != "success" {
		t.Errorf("StatusSuccess = %q, want %q", StatusSuccess, "success")
	}
	if StatusError != "error" {
		t.Errorf("StatusError = %q, want %q", StatusError, "error")
	}
}
