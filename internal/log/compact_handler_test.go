package log

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

// TestCompactHandler_TruncatesStrings tests shortening of long strings.
func TestCompactHandler_TruncatesStrings(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(NewCompactHandler(slog.NewTextHandler(&buf, nil), WithMaxValueLen(5)))

	logger.Info("test", "path", "abcdefghij", "short", "abc")

	output := buf.String()
	if !strings.Contains(output, "abcde...(5 more)") {
		t.Errorf("expected truncated value, got %q", output)
	}
	if !strings.Contains(output, "short=abc") {
		t.Errorf("expected short value untouched, got %q", output)
	}
}

// TestCompactHandler_CompactsLists tests shortening of string slices.
func TestCompactHandler_CompactsLists(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		list     []string
		expected string
	}{
		{
			name:     "short list is kept",
			list:     []string{"ID", "NAME"},
			expected: "[ID NAME]",
		},
		{
			name:     "long list is cut",
			list:     []string{"A", "B", "C", "D", "E"},
			expected: "[A B C ...(+2 more)]",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			logger := slog.New(NewCompactHandler(slog.NewJSONHandler(&buf, nil), WithMaxListItems(3)))
			logger.Info("fields", "missing", tt.list)

			var rec map[string]any
			if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
				t.Fatalf("invalid json: %v", err)
			}
			if rec["missing"] != tt.expected {
				t.Errorf("expected %q, got %v", tt.expected, rec["missing"])
			}
		})
	}
}

// TestCompactHandler_MasksCredentials tests masking of credential keys.
func TestCompactHandler_MasksCredentials(t *testing.T) {
	t.Parallel()

	tests := []struct {
		key      string
		wantMask bool
	}{
		{"password", true},
		{"db_password", true},
		{"api_token", true},
		{"client_secret", true},
		{"file", false},
		{"schema", false},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			logger := slog.New(NewCompactHandler(slog.NewTextHandler(&buf, nil)))
			logger.Info("test", tt.key, "value123")

			masked := strings.Contains(buf.String(), MaskValue)
			if masked != tt.wantMask {
				t.Errorf("key %q: expected masked=%v, got output %q", tt.key, tt.wantMask, buf.String())
			}
		})
	}
}

// TestCompactHandler_WithAttrsAndGroup tests derived handlers.
func TestCompactHandler_WithAttrsAndGroup(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(NewCompactHandler(slog.NewTextHandler(&buf, nil), WithMaxValueLen(3)))

	logger.With("file", "abcdef").WithGroup("run").Info("test", "schema", "customers")

	output := buf.String()
	if !strings.Contains(output, `file="abc...(3 more)"`) {
		t.Errorf("expected compacted With attribute, got %q", output)
	}
	if !strings.Contains(output, `run.schema="cus...(6 more)"`) {
		t.Errorf("expected grouped attribute, got %q", output)
	}
}

// TestNewLogger_Levels tests verbose and default levels.
func TestNewLogger_Levels(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		verbose   bool
		wantDebug bool
	}{
		{"verbose logs debug", true, true},
		{"default hides debug", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			logger := NewLogger(&buf, tt.verbose)
			logger.Debug("debug message")
			logger.Warn("warn message")

			output := buf.String()
			if strings.Contains(output, "debug message") != tt.wantDebug {
				t.Errorf("unexpected debug output: %q", output)
			}
			if !strings.Contains(output, "warn message") {
				t.Error("expected warn message")
			}
		})
	}
}

// TestNewJSONLogger tests JSON output.
func TestNewJSONLogger(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := NewJSONLogger(&buf, false)
	logger.Warn("compare failed", "file", "a.json")

	var rec map[string]any
	if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if rec["file"] != "a.json" {
		t.Errorf("expected file attribute, got %v", rec["file"])
	}
}

// TestNewLogger_Options tests that handler options reach the logger.
func TestNewLogger_Options(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := NewLogger(&buf, false, WithMaxValueLen(4))
	logger.Warn("compare failed", "file", "customers.json")

	if !strings.Contains(buf.String(), `file="cust...(10 more)"`) {
		t.Errorf("expected compacted attribute, got %q", buf.String())
	}
}

// TestNewCompactHandler_NilHandler tests the default handler fallback.
func TestNewCompactHandler_NilHandler(t *testing.T) {
	t.Parallel()

	h := NewCompactHandler(nil)
	if h.handler == nil {
		t.Error("expected default handler")
	}
	if h.maxValueLen != DefaultMaxValueLen || h.maxListItems != DefaultMaxListItems {
		t.Errorf("unexpected defaults %d/%d", h.maxValueLen, h.maxListItems)
	}
}
