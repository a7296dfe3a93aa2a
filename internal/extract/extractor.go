package extract

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/7sDream/geko"
	"github.com/tidwall/gjson"

	"github.com/nao1215/fieldscan/internal/model"
)

// DefaultMaxDepth is the default nesting limit.
const DefaultMaxDepth = 64

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Stats describes a single extraction.
type Stats struct {
	// Records is the number of records in the document. A single object
	// counts as one record, a top-level array counts its elements.
	Records int
	// Repaired is true when a byte order mark or trailing commas had to be
	// removed before decoding.
	Repaired bool
}

// Extractor produces FieldSets from JSON documents.
// An Extractor is safe for concurrent use.
type Extractor struct {
	maxDepth int
	root     string
	repair   bool
	logger   *slog.Logger
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithMaxDepth sets the nesting limit.
func WithMaxDepth(depth int) Option {
	return func(e *Extractor) {
		e.maxDepth = depth
	}
}

// WithRoot sets a gjson path such as "data.items" that selects the
// sub-document to extract from.
func WithRoot(root string) Option {
	return func(e *Extractor) {
		e.root = root
	}
}

// WithRepair enables removal of a byte order mark and trailing commas
// when the raw input does not decode.
func WithRepair(repair bool) Option {
	return func(e *Extractor) {
		e.repair = repair
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Extractor) {
		e.logger = logger
	}
}

// New creates an Extractor.
func New(opts ...Option) (*Extractor, error) {
	e := &Extractor{
		maxDepth: DefaultMaxDepth,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.maxDepth <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidMaxDepth, e.maxDepth)
	}
	return e, nil
}

// ExtractBytes decodes data and extracts its field paths.
// The decoded document is not retained.
func (e *Extractor) ExtractBytes(data []byte) (model.FieldSet, Stats, error) {
	var stats Stats

	data, stats.Repaired = e.prepare(data)
	if !json.Valid(data) {
		if exceedsDepth(data, e.maxDepth) {
			return model.FieldSet{}, stats, fmt.Errorf("%w: limit %d", ErrStructureTooDeep, e.maxDepth)
		}
		return model.FieldSet{}, stats, ErrMalformedInput
	}

	if e.root != "" {
		res := gjson.GetBytes(data, e.root)
		if !res.Exists() {
			return model.FieldSet{}, stats, fmt.Errorf("%w: %s", ErrRootNotFound, e.root)
		}
		data = []byte(res.Raw)
	}

	doc, err := geko.JSONUnmarshal(data)
	if err != nil {
		return model.FieldSet{}, stats, fmt.Errorf("%w: %v", ErrMalformedInput, err)
	}

	stats.Records = recordCount(doc)
	fields, err := e.Extract(doc)
	if err != nil {
		return model.FieldSet{}, stats, err
	}
	return fields, stats, nil
}

// Extract walks an already decoded value. It accepts geko values as well as
// the map[string]any and []any produced by encoding/json. A top-level array
// is a list of records whose fields are unioned.
func (e *Extractor) Extract(value any) (model.FieldSet, error) {
	fields := model.NewFieldSet()
	w := walker{maxDepth: e.maxDepth, fields: &fields}

	var err error
	switch v := value.(type) {
	case geko.Array:
		err = w.records(v.List, 1)
	case []any:
		err = w.records(v, 1)
	default:
		err = w.walk(value, model.FieldPath{}, 1, false)
	}
	if err != nil {
		return model.FieldSet{}, err
	}

	e.logger.Debug("extracted fields", slog.Int("fields", fields.Len()))
	return fields, nil
}

// recordCount returns the number of records in a decoded document: the
// objects of a top-level array, or 1 for a single object.
func recordCount(value any) int {
	switch v := value.(type) {
	case geko.Array:
		return countRecords(v.List)
	case []any:
		return countRecords(v)
	default:
		if isObject(value) {
			return 1
		}
		return 0
	}
}

// prepare strips a byte order mark and, when repair is enabled and the
// input does not decode, trailing commas.
func (e *Extractor) prepare(data []byte) ([]byte, bool) {
	repaired := false
	if e.repair && bytes.HasPrefix(data, utf8BOM) {
		data = data[len(utf8BOM):]
		repaired = true
	}
	if !e.repair || json.Valid(data) {
		return data, repaired
	}

	fixed := stripTrailingCommas(data)
	if json.Valid(fixed) {
		e.logger.Debug("repaired trailing commas in JSON input")
		return fixed, true
	}
	return data, repaired
}

func countRecords(list []any) int {
	n := 0
	for _, item := range list {
		if isObject(item) {
			n++
		}
	}
	return n
}

func isObject(v any) bool {
	switch v.(type) {
	case geko.ObjectItems, map[string]any:
		return true
	default:
		return false
	}
}
