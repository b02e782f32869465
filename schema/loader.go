package schema

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"go.yaml.in/yaml/v3"

	"github.com/kbukum/fieldflow/errors"
	"github.com/kbukum/fieldflow/field"
	"github.com/kbukum/fieldflow/logger"
	"github.com/kbukum/fieldflow/validation"
)

var extensions = []string{".yaml", ".yml", ".json"}

// Loader loads schema documents by name.
type Loader interface {
	Load(name string) (*Document, error)
}

// FileLoader loads documents from files on disk.
type FileLoader struct {
	dirs []string
	log  *logger.Logger
}

// NewFileLoader creates a loader that searches the given directories and
// their immediate subdirectories for {name}.yaml, {name}.yml or {name}.json.
func NewFileLoader(dirs ...string) *FileLoader {
	return &FileLoader{dirs: dirs, log: logger.Nop()}
}

// WithLogger sets the logger used to report loaded documents.
func (l *FileLoader) WithLogger(log *logger.Logger) *FileLoader {
	l.log = log.WithComponent("schema")
	return l
}

// Load searches for a document file by name across configured directories.
func (l *FileLoader) Load(name string) (*Document, error) {
	for _, dir := range l.dirs {
		for _, ext := range extensions {
			candidates := []string{filepath.Join(dir, name+ext)}
			matches, _ := filepath.Glob(filepath.Join(dir, "*", name+ext))
			candidates = append(candidates, matches...)

			for _, path := range candidates {
				if _, err := os.Stat(path); err != nil {
					continue
				}
				doc, err := LoadFile(path)
				if err != nil {
					l.log.Warn("schema rejected", logger.ErrorFields("load", err), logger.Fields("path", path))
					return nil, err
				}
				l.log.Debug("schema loaded", logger.Fields(logger.FieldSchema, doc.Name, "path", path, "fields", len(doc.Fields)))
				return doc, nil
			}
		}
	}
	return nil, errors.NotFound("schema", name).WithDetail("dirs", l.dirs)
}

// LoadFile reads and parses one document file.
func LoadFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.NotFound("schema file", path).WithCause(err)
	}
	doc, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("schema: %s: %w", path, err)
	}
	return doc, nil
}

// Parse decodes a YAML or JSON document and validates its structure. JSON
// input is decoded with JSON rules.
func Parse(data []byte) (*Document, error) {
	var doc Document
	unmarshal := yaml.Unmarshal
	if field.IsJSON(data) {
		unmarshal = json.Unmarshal
	}
	if err := unmarshal(data, &doc); err != nil {
		return nil, errors.InvalidInput("", "malformed schema document").WithCause(err)
	}
	if err := validation.Validate(&doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// Resolve converts doc into a field catalog, merging included documents
// recursively. Included fields come first; when a name is defined more than
// once the first definition wins. Circular includes are rejected.
func Resolve(doc *Document, loader Loader) ([]field.Field, error) {
	stack := make(map[string]bool)    // current include path
	resolved := make(map[string]bool) // already merged documents
	var fields []field.Field
	seen := make(map[string]bool)
	if err := resolveDocument(doc, loader, stack, resolved, seen, &fields); err != nil {
		return nil, err
	}
	return fields, nil
}

func resolveDocument(doc *Document, loader Loader, stack, resolved, seen map[string]bool, fields *[]field.Field) error {
	if stack[doc.Name] {
		return errors.InvalidInput("includes", fmt.Sprintf("circular include of schema %q", doc.Name))
	}
	stack[doc.Name] = true
	defer delete(stack, doc.Name)

	for _, includeName := range doc.Includes {
		if resolved[includeName] {
			continue
		}
		if stack[includeName] {
			return errors.InvalidInput("includes", fmt.Sprintf("circular include of schema %q", includeName))
		}
		if loader == nil {
			return errors.NotFound("schema", includeName)
		}
		sub, err := loader.Load(includeName)
		if err != nil {
			return fmt.Errorf("schema: loading include %q: %w", includeName, err)
		}
		if err := resolveDocument(sub, loader, stack, resolved, seen, fields); err != nil {
			return err
		}
	}

	for _, f := range doc.Catalog() {
		if seen[f.Name] {
			continue
		}
		seen[f.Name] = true
		*fields = append(*fields, f)
	}

	resolved[doc.Name] = true
	return nil
}
