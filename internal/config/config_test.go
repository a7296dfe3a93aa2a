package config

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

// TestNewConfig verifies that NewConfig returns a Config with all expected default values.
func TestNewConfig(t *testing.T) {
	t.Parallel()

	cfg := NewConfig()

	t.Run("default SimilarityThreshold is 0.8", func(t *testing.T) {
		t.Parallel()
		if cfg.SimilarityThreshold != 0.8 {
			t.Errorf("expected SimilarityThreshold to be 0.8, got %v", cfg.SimilarityThreshold)
		}
	})

	t.Run("fuzzy matching is on and case folding is on", func(t *testing.T) {
		t.Parallel()
		if !cfg.FuzzyMatch {
			t.Error("expected FuzzyMatch to be true")
		}
		if cfg.CaseSensitive {
			t.Error("expected CaseSensitive to be false")
		}
	})

	t.Run("default BatchSize is 100", func(t *testing.T) {
		t.Parallel()
		if cfg.BatchSize != 100 {
			t.Errorf("expected BatchSize to be 100, got %d", cfg.BatchSize)
		}
	})

	t.Run("default Concurrency is 4", func(t *testing.T) {
		t.Parallel()
		if cfg.Concurrency != 4 {
			t.Errorf("expected Concurrency to be 4, got %d", cfg.Concurrency)
		}
	})

	t.Run("default MaxDepth is 64", func(t *testing.T) {
		t.Parallel()
		if cfg.MaxDepth != 64 {
			t.Errorf("expected MaxDepth to be 64, got %d", cfg.MaxDepth)
		}
	})

	t.Run("repair is on", func(t *testing.T) {
		t.Parallel()
		if !cfg.Repair {
			t.Error("expected Repair to be true")
		}
	})
}

// TestConfigValidate tests the Validate method with various configurations.
// Each test case is designed to test one specific validation rule.
func TestConfigValidate(t *testing.T) {
	t.Parallel()

	validConfig := func() *Config {
		cfg := NewConfig()
		cfg.Paths = []string{"data"}
		cfg.Schema = "customers"
		return cfg
	}

	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr error
	}{
		{"valid config returns nil", func(*Config) {}, nil},
		{"schema from database is valid", func(c *Config) {
			c.Schema = ""
			c.SchemaDB = "crm.db"
			c.SchemaTable = "customers"
		}, nil},
		{"threshold bounds are valid", func(c *Config) { c.SimilarityThreshold = 1 }, nil},
		{"no paths", func(c *Config) { c.Paths = nil }, ErrNoInput},
		{"no schema", func(c *Config) { c.Schema = "" }, ErrNoSchema},
		{"schema db without table", func(c *Config) { c.SchemaDB = "crm.db" }, ErrIncompleteSchemaDB},
		{"schema table without db", func(c *Config) { c.SchemaTable = "customers" }, ErrIncompleteSchemaDB},
		{"negative threshold", func(c *Config) { c.SimilarityThreshold = -0.1 }, ErrInvalidThreshold},
		{"threshold above one", func(c *Config) { c.SimilarityThreshold = 1.5 }, ErrInvalidThreshold},
		{"threshold not a number", func(c *Config) { c.SimilarityThreshold = math.NaN() }, ErrInvalidThreshold},
		{"zero batch size", func(c *Config) { c.BatchSize = 0 }, ErrInvalidBatchSize},
		{"zero workers", func(c *Config) { c.Concurrency = 0 }, ErrInvalidConcurrency},
		{"zero max depth", func(c *Config) { c.MaxDepth = 0 }, ErrInvalidMaxDepth},
		{"json and markdown", func(c *Config) {
			c.JSONReport = true
			c.MarkdownReport = true
		}, ErrConflictingReportFormats},
		{"json and table", func(c *Config) {
			c.JSONReport = true
			c.TableReport = true
		}, ErrConflictingReportFormats},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := validConfig()
			tt.modify(cfg)

			err := cfg.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("expected no error, got %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

// TestConfigApplyFile tests that file values override defaults only when set.
func TestConfigApplyFile(t *testing.T) {
	t.Parallel()

	t.Run("nil file keeps defaults", func(t *testing.T) {
		t.Parallel()

		cfg := NewConfig()
		cfg.ApplyFile(nil)
		if cfg.File != nil || cfg.SimilarityThreshold != DefaultSimilarityThreshold {
			t.Error("expected defaults to be unchanged")
		}
	})

	t.Run("set values override defaults", func(t *testing.T) {
		t.Parallel()

		f, err := ParseFile([]byte(`matching:
  threshold: 0.9
  case_sensitive: true
  fuzzy_match: false
  workers: 8
  root: data.items
`))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		cfg := NewConfig()
		cfg.ApplyFile(f)

		if cfg.SimilarityThreshold != 0.9 {
			t.Errorf("expected threshold 0.9, got %v", cfg.SimilarityThreshold)
		}
		if !cfg.CaseSensitive || cfg.FuzzyMatch {
			t.Error("expected case sensitive without fuzzy matching")
		}
		if cfg.Concurrency != 8 {
			t.Errorf("expected 8 workers, got %d", cfg.Concurrency)
		}
		if cfg.BatchSize != DefaultBatchSize {
			t.Errorf("expected default batch size, got %d", cfg.BatchSize)
		}
		if cfg.Root != "data.items" {
			t.Errorf("expected root data.items, got %q", cfg.Root)
		}
		if cfg.File != f {
			t.Error("expected file to be kept")
		}
	})
}

// TestParseFile tests decoding and schema validation of configuration data.
func TestParseFile(t *testing.T) {
	t.Parallel()

	t.Run("flat and categorized schemas", func(t *testing.T) {
		t.Parallel()

		f, err := ParseFile([]byte(`schemas:
  customers:
    - ID
    - NAME
    - EMAIL
  crm:
    accounts:
      - ACCOUNT_ID
      - OWNER
    contacts:
      - CONTACT_ID
special_chars:
  customers:
    "*": "_"
databases:
  crm: ./crm.sqlite
`))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if got := f.Schemas["customers"].AllFields(); !reflect.DeepEqual(got, []string{"ID", "NAME", "EMAIL"}) {
			t.Errorf("unexpected customers fields: %v", got)
		}

		crm := f.Schemas["crm"]
		if got := crm.CategoryNames(); !reflect.DeepEqual(got, []string{"accounts", "contacts"}) {
			t.Errorf("expected categories in file order, got %v", got)
		}
		if got := crm.AllFields(); !reflect.DeepEqual(got, []string{"ACCOUNT_ID", "OWNER", "CONTACT_ID"}) {
			t.Errorf("unexpected flattened fields: %v", got)
		}
		if got, ok := crm.CategoryFields("contacts"); !ok || !reflect.DeepEqual(got, []string{"CONTACT_ID"}) {
			t.Errorf("unexpected contacts fields: %v", got)
		}
		if _, ok := crm.CategoryFields("missing"); ok {
			t.Error("expected unknown category to be absent")
		}

		rules := f.SpecialCharRules()
		if got := string(rules.Chars("customers", "NAME")); got != "_" {
			t.Errorf("expected wildcard rule, got %q", got)
		}
		if got := f.Database("crm"); got != "./crm.sqlite" {
			t.Errorf("expected configured path, got %q", got)
		}
		if got := f.Database("other.db"); got != "other.db" {
			t.Errorf("expected name passthrough, got %q", got)
		}
	})

	t.Run("empty document", func(t *testing.T) {
		t.Parallel()

		f, err := ParseFile(nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if f.Schemas == nil || f.SpecialChars == nil || f.Databases == nil {
			t.Error("expected maps to be initialized")
		}
	})

	invalid := []struct {
		name    string
		content string
	}{
		{"unknown top-level key", "sites: {}\n"},
		{"threshold out of range", "matching:\n  threshold: 2\n"},
		{"non-integer workers", "matching:\n  workers: many\n"},
		{"schema is a string", "schemas:\n  customers: ID\n"},
		{"field is not a string", "schemas:\n  customers:\n    - {a: b}\n"},
		{"invalid yaml", "invalid: yaml: content: [}"},
	}
	for _, tt := range invalid {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := ParseFile([]byte(tt.content))
			if !errors.Is(err, ErrInvalidConfigFile) {
				t.Errorf("expected ErrInvalidConfigFile, got %v", err)
			}
		})
	}
}

// TestLoadConfigFile tests the LoadConfigFile function.
func TestLoadConfigFile(t *testing.T) {
	t.Parallel()

	t.Run("returns ErrConfigNotFound for non-existent file", func(t *testing.T) {
		t.Parallel()

		cfg, err := LoadConfigFile("/nonexistent/path/.fieldscan")
		if !errors.Is(err, ErrConfigNotFound) {
			t.Fatalf("expected ErrConfigNotFound, got: %v", err)
		}
		if cfg != nil {
			t.Error("expected nil config when file not found")
		}
	})

	t.Run("loads valid YAML config", func(t *testing.T) {
		t.Parallel()

		configPath := filepath.Join(t.TempDir(), DefaultConfigFile)
		content := "schemas:\n  customers: [ID, NAME]\n"
		if err := os.WriteFile(configPath, []byte(content), 0600); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		cfg, err := LoadConfigFile(configPath)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(cfg.Schemas["customers"].Fields) != 2 {
			t.Errorf("expected 2 fields, got %v", cfg.Schemas["customers"].Fields)
		}
	})

	t.Run("error names the file", func(t *testing.T) {
		t.Parallel()

		configPath := filepath.Join(t.TempDir(), DefaultConfigFile)
		if err := os.WriteFile(configPath, []byte("sites: {}\n"), 0600); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		_, err := LoadConfigFile(configPath)
		if err == nil || !strings.Contains(err.Error(), configPath) {
			t.Errorf("expected error mentioning %s, got %v", configPath, err)
		}
	})
}

// TestFindConfigFile tests the FindConfigFile function.
func TestFindConfigFile(t *testing.T) {
	t.Parallel()

	t.Run("returns explicit path if exists", func(t *testing.T) {
		t.Parallel()

		configPath := filepath.Join(t.TempDir(), "custom.yaml")
		if err := os.WriteFile(configPath, []byte("schemas: {}"), 0600); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		if result := FindConfigFile(configPath); result != configPath {
			t.Errorf("expected %q, got %q", configPath, result)
		}
	})

	t.Run("returns empty for non-existent explicit path", func(t *testing.T) {
		t.Parallel()

		if result := FindConfigFile("/nonexistent/path/config.yaml"); result != "" {
			t.Errorf("expected empty string, got %q", result)
		}
	})

	t.Run("falls back to the XDG config directory", func(t *testing.T) {
		t.Parallel()

		paths := searchPaths()
		want := filepath.Join(XDGConfigDir(), XDGConfigFile)
		if got := paths[len(paths)-1]; got != want {
			t.Errorf("expected last search path %q, got %q", want, got)
		}
	})

	t.Run("first existing file wins", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		missing := filepath.Join(dir, "missing.yaml")
		found := filepath.Join(dir, "found.yaml")
		later := filepath.Join(dir, "later.yaml")
		for _, p := range []string{found, later} {
			if err := os.WriteFile(p, []byte("schemas: {}"), 0600); err != nil {
				t.Fatalf("failed to write test config: %v", err)
			}
		}

		if got := firstExisting([]string{missing, dir, found, later}); got != found {
			t.Errorf("expected %q, got %q", found, got)
		}
		if got := firstExisting([]string{missing}); got != "" {
			t.Errorf("expected empty string, got %q", got)
		}
	})
}

// TestXDGDirs tests XDG directory functions.
func TestXDGDirs(t *testing.T) {
	t.Parallel()

	if XDGDataDir() == "" {
		t.Error("expected non-empty XDG data dir")
	}
	if XDGConfigDir() == "" {
		t.Error("expected non-empty XDG config dir")
	}
}
