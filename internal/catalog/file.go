package catalog

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"orbitfolio/internal/logging"

	"gopkg.in/yaml.v3"
)

// fileDocument is the on-disk shape of a catalog seed file.
type fileDocument struct {
	Projects []Record `yaml:"projects"`
}

// FileSource reads records from a YAML file of the form
//
//	projects:
//	  - id: atlas
//	    title: Atlas
//	    status: DEPLOYED
//
// A missing file is an empty catalog, not an error.
type FileSource struct {
	Path string
}

// NewFileSource returns a source for path.
func NewFileSource(path string) *FileSource {
	return &FileSource{Path: path}
}

// Fetch implements Source.
func (f *FileSource) Fetch(ctx context.Context) ([]Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return LoadFile(f.Path)
}

// LoadFile parses a catalog YAML file.
func LoadFile(path string) ([]Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			logging.CatalogDebug("catalog file %s does not exist, using empty catalog", path)
			return []Record{}, nil
		}
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}

	var doc fileDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse catalog file %s: %w", path, err)
	}
	if doc.Projects == nil {
		doc.Projects = []Record{}
	}
	for i := range doc.Projects {
		if doc.Projects[i].Status == "" {
			doc.Projects[i].Status = StatusInProgress
		}
		if st, err := ParseStatus(string(doc.Projects[i].Status)); err == nil {
			doc.Projects[i].Status = st
		}
	}
	logging.CatalogDebug("loaded %d records from %s", len(doc.Projects), path)
	return doc.Projects, nil
}

// SaveFile writes records to path as a catalog YAML file.
func SaveFile(path string, records []Record) error {
	if records == nil {
		records = []Record{}
	}
	data, err := yaml.Marshal(fileDocument{Projects: records})
	if err != nil {
		return fmt.Errorf("failed to marshal catalog: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create catalog directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write catalog file: %w", err)
	}
	return nil
}
