package config

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/nao1215/fieldscan/internal/model"
)

// Matching holds the matching defaults of the configuration file.
// Pointer fields distinguish "unset" from the zero value.
type Matching struct {
	Threshold     *float64 `yaml:"threshold,omitempty"`
	CaseSensitive *bool    `yaml:"case_sensitive,omitempty"`
	FuzzyMatch    *bool    `yaml:"fuzzy_match,omitempty"`
	BatchSize     *int     `yaml:"batch_size,omitempty"`
	Workers       *int     `yaml:"workers,omitempty"`
	MaxDepth      *int     `yaml:"max_depth,omitempty"`
	Repair        *bool    `yaml:"repair,omitempty"`
	Root          string   `yaml:"root,omitempty"`
}

// Category is a named group of fields inside a schema.
type Category struct {
	Name   string
	Fields []string
}

// SchemaDef is a reference schema as written in the configuration file:
// either a plain list of fields or an ordered mapping of categories.
type SchemaDef struct {
	// Fields is set when the schema is a plain list.
	Fields []string

	// Categories is set when the schema is grouped, in file order.
	Categories []Category
}

// UnmarshalYAML decodes a list or a category mapping, keeping category order.
func (s *SchemaDef) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.SequenceNode:
		return node.Decode(&s.Fields)
	case yaml.MappingNode:
		for i := 0; i+1 < len(node.Content); i += 2 {
			c := Category{Name: node.Content[i].Value}
			if err := node.Content[i+1].Decode(&c.Fields); err != nil {
				return fmt.Errorf("category %q: %w", c.Name, err)
			}
			s.Categories = append(s.Categories, c)
		}
		return nil
	default:
		return fmt.Errorf("%w: schema must be a list of fields or a mapping of categories", ErrInvalidConfigFile)
	}
}

// AllFields returns the plain fields followed by every category's fields in order.
func (s SchemaDef) AllFields() []string {
	fields := make([]string, 0, len(s.Fields))
	fields = append(fields, s.Fields...)
	for _, c := range s.Categories {
		fields = append(fields, c.Fields...)
	}
	return fields
}

// CategoryFields returns the fields of the named category.
func (s SchemaDef) CategoryFields(name string) ([]string, bool) {
	for _, c := range s.Categories {
		if c.Name == name {
			return append([]string(nil), c.Fields...), true
		}
	}
	return nil, false
}

// CategoryNames returns the category names in file order.
func (s SchemaDef) CategoryNames() []string {
	names := make([]string, len(s.Categories))
	for i, c := range s.Categories {
		names[i] = c.Name
	}
	return names
}

// File represents the structure of the .fieldscan configuration file.
type File struct {
	// Matching holds matching defaults; CLI flags override them.
	Matching Matching `yaml:"matching,omitempty"`

	// Schemas maps schema names to their reference fields.
	Schemas map[string]SchemaDef `yaml:"schemas,omitempty"`

	// SpecialChars maps schema -> field -> characters stripped during
	// normalization. Field "*" applies to every field of the schema.
	SpecialChars map[string]map[string]string `yaml:"special_chars,omitempty"`

	// Databases maps names to SQLite files used for schema import.
	Databases map[string]string `yaml:"databases,omitempty"`
}

// SpecialCharRules returns the special character rules for the normalizer.
func (f *File) SpecialCharRules() model.SpecialCharRules {
	rules := make(model.SpecialCharRules, len(f.SpecialChars))
	for schema, fields := range f.SpecialChars {
		inner := make(map[string]string, len(fields))
		for field, chars := range fields {
			inner[field] = chars
		}
		rules[schema] = inner
	}
	return rules
}

// Database resolves a database name to its file path. A name that is not
// configured is returned unchanged, so a path can be used directly.
func (f *File) Database(name string) string {
	if f != nil {
		if path, ok := f.Databases[name]; ok {
			return path
		}
	}
	return name
}
