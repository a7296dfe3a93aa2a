package extract

import (
	"fmt"
	"sort"

	"github.com/7sDream/geko"

	"github.com/nao1215/fieldscan/internal/model"
)

// walker holds the state of one extraction.
type walker struct {
	maxDepth int
	fields   *model.FieldSet
}

// records walks the elements of a top-level array as independent documents.
func (w *walker) records(list []any, depth int) error {
	if depth > w.maxDepth {
		return fmt.Errorf("%w: limit %d", ErrStructureTooDeep, w.maxDepth)
	}
	for _, item := range list {
		switch v := item.(type) {
		case geko.Array:
			if err := w.records(v.List, depth+1); err != nil {
				return err
			}
		case []any:
			if err := w.records(v, depth+1); err != nil {
				return err
			}
		default:
			record := model.NewFieldSet()
			rw := walker{maxDepth: w.maxDepth, fields: &record}
			if err := rw.walk(item, model.FieldPath{}, depth+1, false); err != nil {
				return err
			}
			w.fields.Union(record)
		}
	}
	return nil
}

// walk visits value found at prefix. inElement is true once the walk is
// inside an object that is an array element; every path emitted there is
// also recorded as its bare leaf.
func (w *walker) walk(value any, prefix model.FieldPath, depth int, inElement bool) error {
	if depth > w.maxDepth {
		return fmt.Errorf("%w: limit %d", ErrStructureTooDeep, w.maxDepth)
	}

	switch v := value.(type) {
	case geko.ObjectItems:
		keys := v.Keys()
		vals := v.Values()
		for i := range keys {
			if err := w.member(keys[i], vals[i], prefix, depth, inElement); err != nil {
				return err
			}
		}
	case map[string]any:
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			if err := w.member(k, v[k], prefix, depth, inElement); err != nil {
				return err
			}
		}
	case geko.Array:
		return w.array(v.List, prefix, depth)
	case []any:
		return w.array(v, prefix, depth)
	}
	return nil
}

func (w *walker) member(key string, value any, prefix model.FieldPath, depth int, inElement bool) error {
	path := prefix.Append(key)
	w.emit(path, inElement)
	if isContainer(value) {
		return w.walk(value, path, depth+1, inElement)
	}
	return nil
}

// array walks every element with the array's own prefix.
func (w *walker) array(list []any, prefix model.FieldPath, depth int) error {
	for _, item := range list {
		if err := w.walk(item, prefix, depth+1, true); err != nil {
			return err
		}
	}
	return nil
}

func (w *walker) emit(path model.FieldPath, inElement bool) {
	w.fields.Add(path)
	if inElement {
		w.fields.Add(path.LeafPath())
	}
}

func isContainer(v any) bool {
	switch v.(type) {
	case geko.ObjectItems, map[string]any, geko.Array, []any:
		return true
	default:
		return false
	}
}
