package main

import (
	"encoding/json"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/mixtli/dungeon-lab-sub000/internal/config"
	"github.com/mixtli/dungeon-lab-sub000/internal/entities/document"
	"github.com/mixtli/dungeon-lab-sub000/internal/errors"
	"github.com/mixtli/dungeon-lab-sub000/internal/pipeline"
)

// categoryFile is the on-disk shape of one category's output
type categoryFile struct {
	Result    *pipeline.BatchResult `json:"result"`
	Documents []*document.Document  `json:"documents"`
}

// writeDocuments writes a category's documents and batch result to
// <dir>/<category>.<format> and returns the path
func writeDocuments(dir, format string, result *pipeline.BatchResult) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", errors.Wrapf(err, "failed to create output directory %s", dir)
	}

	docs := result.Documents
	if docs == nil {
		docs = []*document.Document{}
	}
	data, err := json.MarshalIndent(categoryFile{Result: result, Documents: docs}, "", "  ")
	if err != nil {
		return "", errors.Wrapf(err, "failed to encode %s documents", result.Category)
	}

	if format == config.FormatYAML {
		// Re-encode through a generic value so YAML keys match the JSON tags
		var generic any
		if err := json.Unmarshal(data, &generic); err != nil {
			return "", errors.Wrapf(err, "failed to encode %s documents", result.Category)
		}
		if data, err = yaml.Marshal(generic); err != nil {
			return "", errors.Wrapf(err, "failed to encode %s documents", result.Category)
		}
	}

	path := filepath.Join(dir, result.Category+"."+format)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return "", errors.Wrapf(err, "failed to write %s", path)
	}
	return path, nil
}
