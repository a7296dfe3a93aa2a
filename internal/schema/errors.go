package schema

import (
	"errors"

	"github.com/nao1215/fieldscan/internal/model"
)

var (
	// ErrSchemaNotFound is returned when no schema has the requested name.
	ErrSchemaNotFound = errors.New("schema not found")

	// ErrCategoryNotFound is returned when a schema has no such category.
	ErrCategoryNotFound = errors.New("category not found")

	// ErrEmptySchemaName is returned when a schema is requested without a name.
	ErrEmptySchemaName = model.ErrEmptySchemaName
)
