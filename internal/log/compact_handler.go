package log

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"unicode/utf8"
)

const (
	// DefaultMaxValueLen is the number of runes kept from a string value.
	DefaultMaxValueLen = 256

	// DefaultMaxListItems is the number of elements kept from a slice value.
	DefaultMaxListItems = 20

	// MaskValue replaces credential values.
	MaskValue = "***REDACTED***"
)

// credentialKeywords mark attribute keys whose values are masked.
var credentialKeywords = []string{"password", "passwd", "secret", "token", "credential"}

// CompactHandler wraps an slog.Handler and shortens long attribute values.
type CompactHandler struct {
	handler      slog.Handler
	maxValueLen  int
	maxListItems int
}

// HandlerOption configures a CompactHandler.
type HandlerOption func(*CompactHandler)

// WithMaxValueLen sets the number of runes kept from string values.
func WithMaxValueLen(n int) HandlerOption {
	return func(h *CompactHandler) {
		if n > 0 {
			h.maxValueLen = n
		}
	}
}

// WithMaxListItems sets the number of elements kept from slice values.
func WithMaxListItems(n int) HandlerOption {
	return func(h *CompactHandler) {
		if n > 0 {
			h.maxListItems = n
		}
	}
}

// NewCompactHandler creates a CompactHandler wrapping handler.
// If handler is nil, slog.Default().Handler() is used.
func NewCompactHandler(handler slog.Handler, opts ...HandlerOption) *CompactHandler {
	if handler == nil {
		handler = slog.Default().Handler()
	}
	h := &CompactHandler{
		handler:      handler,
		maxValueLen:  DefaultMaxValueLen,
		maxListItems: DefaultMaxListItems,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Enabled reports whether the handler handles records at the given level.
func (h *CompactHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.handler.Enabled(ctx, level)
}

// Handle compacts the record's attributes and passes it on.
func (h *CompactHandler) Handle(ctx context.Context, r slog.Record) error {
	compacted := slog.NewRecord(r.Time, r.Level, r.Message, r.PC)
	r.Attrs(func(a slog.Attr) bool {
		compacted.AddAttrs(h.compactAttr(a))
		return true
	})
	return h.handler.Handle(ctx, compacted)
}

// WithAttrs returns a new handler with the given attributes added.
func (h *CompactHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	compacted := make([]slog.Attr, len(attrs))
	for i, a := range attrs {
		compacted[i] = h.compactAttr(a)
	}
	return h.clone(h.handler.WithAttrs(compacted))
}

// WithGroup returns a new handler with the given group name.
func (h *CompactHandler) WithGroup(name string) slog.Handler {
	return h.clone(h.handler.WithGroup(name))
}

func (h *CompactHandler) clone(handler slog.Handler) *CompactHandler {
	return &CompactHandler{
		handler:      handler,
		maxValueLen:  h.maxValueLen,
		maxListItems: h.maxListItems,
	}
}

// compactAttr shortens a single attribute, recursing into groups.
func (h *CompactHandler) compactAttr(a slog.Attr) slog.Attr {
	a.Value = a.Value.Resolve()

	if a.Value.Kind() == slog.KindGroup {
		attrs := a.Value.Group()
		compacted := make([]slog.Attr, len(attrs))
		for i, ga := range attrs {
			compacted[i] = h.compactAttr(ga)
		}
		return slog.Attr{Key: a.Key, Value: slog.GroupValue(compacted...)}
	}

	if isCredentialKey(a.Key) {
		return slog.String(a.Key, MaskValue)
	}

	switch a.Value.Kind() {
	case slog.KindString:
		return slog.String(a.Key, h.truncate(a.Value.String()))
	case slog.KindAny:
		if list, ok := a.Value.Any().([]string); ok {
			return slog.String(a.Key, h.compactList(list))
		}
	}
	return a
}

// truncate keeps the first maxValueLen runes of s.
func (h *CompactHandler) truncate(s string) string {
	n := utf8.RuneCountInString(s)
	if n <= h.maxValueLen {
		return s
	}
	runes := []rune(s)
	return fmt.Sprintf("%s...(%d more)", string(runes[:h.maxValueLen]), n-h.maxValueLen)
}

// compactList renders a string slice, keeping the first maxListItems.
func (h *CompactHandler) compactList(list []string) string {
	if len(list) <= h.maxListItems {
		return "[" + strings.Join(list, " ") + "]"
	}
	return fmt.Sprintf("[%s ...(+%d more)]",
		strings.Join(list[:h.maxListItems], " "), len(list)-h.maxListItems)
}

func isCredentialKey(key string) bool {
	lower := strings.ToLower(key)
	for _, kw := range credentialKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// NewLogger creates a text logger writing to w.
// verbose selects the Debug level; otherwise only warnings and errors
// are written.
func NewLogger(w io.Writer, verbose bool, opts ...HandlerOption) *slog.Logger {
	return slog.New(NewCompactHandler(slog.NewTextHandler(w, handlerOptions(verbose)), opts...))
}

// NewJSONLogger creates a JSON logger writing to w.
func NewJSONLogger(w io.Writer, verbose bool, opts ...HandlerOption) *slog.Logger {
	return slog.New(NewCompactHandler(slog.NewJSONHandler(w, handlerOptions(verbose)), opts...))
}

func handlerOptions(verbose bool) *slog.HandlerOptions {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return &slog.HandlerOptions{Level: level}
}
