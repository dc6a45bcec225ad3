// Package fluff loads supplementary description and image records keyed
// by entity name.
package fluff

import (
	"context"
	"log/slog"

	"github.com/mixtli/dungeon-lab-sub000/internal/errors"
	"github.com/mixtli/dungeon-lab-sub000/internal/markup"
	"github.com/mixtli/dungeon-lab-sub000/internal/source"
)

// Record is the fluff attached to one entity
type Record struct {
	Name    string
	Source  string
	Entries []any
	Images  []string
}

// Index is a name to record map. It is read-only once loaded.
type Index struct {
	records map[string]Record
}

// NewIndex builds an index from records in precedence order; later
// records replace earlier ones with the same name
func NewIndex(records ...Record) *Index {
	idx := &Index{records: make(map[string]Record, len(records))}
	for _, r := range records {
		idx.records[r.Name] = r
	}
	return idx
}

// Load reads files in order and indexes their records by name. Later
// files override earlier ones for the same name. Unreadable files are
// reported and skipped.
func Load(ctx context.Context, reader source.Reader, files []source.File) (*Index, []error) {
	idx := &Index{records: make(map[string]Record)}
	var errs []error

	for _, file := range files {
		data, err := reader.ReadSourceData(ctx, file.Path)
		if err != nil {
			slog.Warn("Skipping unreadable fluff file", "file", file.Path, "error", err)
			errs = append(errs, errors.Wrapf(err, "fluff file %s", file.Path))
			continue
		}

		records, err := source.Records(data, file.Key)
		if err != nil {
			slog.Warn("Skipping malformed fluff file", "file", file.Path, "error", err)
			errs = append(errs, errors.Wrapf(err, "fluff file %s", file.Path))
			continue
		}

		for _, raw := range records {
			r, ok := parseRecord(raw)
			if !ok {
				continue
			}
			idx.records[r.Name] = r
		}
		slog.Debug("Loaded fluff file", "file", file.Path, "records", len(records))
	}

	return idx, errs
}

// Len returns the number of indexed names
func (i *Index) Len() int {
	if i == nil {
		return 0
	}
	return len(i.records)
}

// Lookup returns the record with exactly this name. A miss is not an error.
func (i *Index) Lookup(name string) (Record, bool) {
	if i == nil {
		return Record{}, false
	}
	r, ok := i.records[name]
	return r, ok
}

// Description renders the fluff entries for name, or "" when there are none
func (i *Index) Description(name string, p *markup.Processor) string {
	r, ok := i.Lookup(name)
	if !ok || len(r.Entries) == 0 {
		return ""
	}
	return p.Process(r.Entries).Text
}

// AssetPath returns the first image path for name, or ""
func (i *Index) AssetPath(name string) string {
	r, ok := i.Lookup(name)
	if !ok || len(r.Images) == 0 {
		return ""
	}
	return r.Images[0]
}

func parseRecord(raw source.RawRecord) (Record, bool) {
	name := raw.Name()
	if name == "" {
		return Record{}, false
	}

	r := Record{Name: name, Source: raw.Source()}
	if entries, ok := raw["entries"].([]any); ok {
		r.Entries = entries
	}

	images, _ := raw["images"].([]any)
	for _, img := range images {
		obj, _ := img.(map[string]any)
		href, _ := obj["href"].(map[string]any)
		if path, ok := href["path"].(string); ok && path != "" {
			r.Images = append(r.Images, path)
			continue
		}
		if url, ok := href["url"].(string); ok && url != "" {
			r.Images = append(r.Images, url)
		}
	}
	return r, true
}

// Describe picks the first non-empty description: fluff for name, then the
// record's own entries, then fallback
func Describe(idx *Index, p *markup.Processor, name string, entries any, fallback string) string {
	if d := idx.Description(name, p); d != "" {
		return d
	}
	if d := p.Process(entries).Text; d != "" {
		return d
	}
	return fallback
}
