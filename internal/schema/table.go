package schema

import (
	"context"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/nao1215/fieldscan/internal/database"
	"github.com/nao1215/fieldscan/internal/model"
)

// ColumnReader lists the columns of a table.
type ColumnReader interface {
	TableColumns(ctx context.Context, table string) ([]string, error)
}

// TableSource loads reference schemas from table columns. The schema name
// is the table name.
type TableSource struct {
	db ColumnReader
}

var _ Source = (*TableSource)(nil)

// NewTableSource creates a source reading from db.
func NewTableSource(db ColumnReader) *TableSource {
	return &TableSource{db: db}
}

// Load returns the columns of table name as a reference schema.
// Tables have no categories, so a non-empty category is an error.
func (s *TableSource) Load(ctx context.Context, name, category string) (model.ReferenceSchema, error) {
	if name == "" {
		return model.ReferenceSchema{}, ErrEmptySchemaName
	}
	if category != "" {
		return model.ReferenceSchema{}, fmt.Errorf("%w: %s in table %s", ErrCategoryNotFound, category, name)
	}

	columns, err := s.db.TableColumns(ctx, name)
	if err != nil {
		if errors.Is(err, database.ErrTableNotFound) {
			return model.ReferenceSchema{}, fmt.Errorf("%w: %w", ErrSchemaNotFound, err)
		}
		return model.ReferenceSchema{}, err
	}
	return model.NewReferenceSchema(name, columns), nil
}

// Snippet renders schemas as a configuration file fragment that can be
// pasted under the top level of a .fieldscan file.
func Snippet(schemas ...model.ReferenceSchema) ([]byte, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}
	for _, s := range schemas {
		fields := &yaml.Node{Kind: yaml.SequenceNode}
		for _, f := range s.Fields {
			fields.Content = append(fields.Content, &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: f})
		}
		node.Content = append(node.Content, &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: s.Name}, fields)
	}

	doc := map[string]*yaml.Node{"schemas": node}
	out, err := yaml.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to render schema: %w", err)
	}
	return out, nil
}
