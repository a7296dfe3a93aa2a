package schema

import (
	"context"
	"fmt"
	"strings"

	"facette.io/natsort"

	"github.com/nao1215/fieldscan/internal/config"
	"github.com/nao1215/fieldscan/internal/model"
)

// Source provides reference schemas.
type Source interface {
	// Load returns the schema called name. A non-empty category restricts
	// it to the fields of that category.
	Load(ctx context.Context, name, category string) (model.ReferenceSchema, error)
}

// Registry is an immutable set of named reference schemas.
type Registry struct {
	schemas map[string]config.SchemaDef
	names   []string
}

var _ Source = (*Registry)(nil)

// NewRegistry creates a registry from schema definitions. The definitions
// are copied.
func NewRegistry(defs map[string]config.SchemaDef) *Registry {
	r := &Registry{
		schemas: make(map[string]config.SchemaDef, len(defs)),
		names:   make([]string, 0, len(defs)),
	}
	for name, def := range defs {
		r.schemas[name] = copyDef(def)
		r.names = append(r.names, name)
	}
	natsort.Sort(r.names)
	return r
}

// FromFile creates a registry from the schemas of a configuration file.
// A nil file yields an empty registry.
func FromFile(f *config.File) *Registry {
	if f == nil {
		return NewRegistry(nil)
	}
	return NewRegistry(f.Schemas)
}

// Names returns the schema names in natural order.
func (r *Registry) Names() []string {
	return append([]string(nil), r.names...)
}

// Len returns the number of schemas.
func (r *Registry) Len() int {
	return len(r.names)
}

// Categories returns the category names of a schema in file order.
// A flat schema has none.
func (r *Registry) Categories(name string) ([]string, error) {
	def, err := r.lookup(name)
	if err != nil {
		return nil, err
	}
	return def.CategoryNames(), nil
}

// Fields returns the reference fields of a schema. An empty category
// returns every field, categories flattened in order.
func (r *Registry) Fields(name, category string) ([]string, error) {
	def, err := r.lookup(name)
	if err != nil {
		return nil, err
	}
	if category == "" {
		return def.AllFields(), nil
	}
	fields, ok := def.CategoryFields(category)
	if !ok {
		return nil, fmt.Errorf("%w: %s in schema %s", ErrCategoryNotFound, category, name)
	}
	return fields, nil
}

// Load returns the reference schema called name, optionally restricted to
// one category.
func (r *Registry) Load(_ context.Context, name, category string) (model.ReferenceSchema, error) {
	fields, err := r.Fields(name, category)
	if err != nil {
		return model.ReferenceSchema{}, err
	}
	return model.NewReferenceSchema(name, fields), nil
}

func (r *Registry) lookup(name string) (config.SchemaDef, error) {
	if strings.TrimSpace(name) == "" {
		return config.SchemaDef{}, ErrEmptySchemaName
	}
	def, ok := r.schemas[name]
	if !ok {
		return config.SchemaDef{}, fmt.Errorf("%w: %s", ErrSchemaNotFound, name)
	}
	return def, nil
}

func copyDef(def config.SchemaDef) config.SchemaDef {
	cp := config.SchemaDef{Fields: append([]string(nil), def.Fields...)}
	for _, c := range def.Categories {
		cp.Categories = append(cp.Categories, config.Category{
			Name:   c.Name,
			Fields: append([]string(nil), c.Fields...),
		})
	}
	return cp
}
