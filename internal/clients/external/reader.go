package external

import (
	"context"
	"sync"

	"github.com/mixtli/dungeon-lab-sub000/internal/converters/spell"
	"github.com/mixtli/dungeon-lab-sub000/internal/errors"
	"github.com/mixtli/dungeon-lab-sub000/internal/source"
)

// Files served by the API reader
const (
	SpellFile     = "spells/spells-phb.json"
	BaseItemsFile = "items-base.json"
)

// ReaderConfig contains configuration for the API backed reader
type ReaderConfig struct {
	Client Client
}

// Validate validates the ReaderConfig
func (cfg *ReaderConfig) Validate() error {
	if cfg == nil {
		return errors.InvalidArgument("config cannot be nil")
	}
	vb := errors.NewValidationBuilder()
	if cfg.Client == nil {
		vb.RequiredField("Client")
	}
	return vb.Build()
}

type apiReader struct {
	client Client

	mu     sync.Mutex
	spells *SpellList
}

// NewReader creates a source.Reader serving API content under the file
// names the converters read
func NewReader(cfg *ReaderConfig) (source.Reader, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}
	return &apiReader{client: cfg.Client}, nil
}

func (r *apiReader) ReadSourceData(ctx context.Context, filename string) (any, error) {
	switch filename {
	case SpellFile:
		spells, err := r.loadSpells(ctx)
		if err != nil {
			return nil, err
		}
		return map[string]any{"spell": toList(spells.Records)}, nil

	case spell.ClassIndexFile:
		spells, err := r.loadSpells(ctx)
		if err != nil {
			return nil, err
		}
		byName := make(map[string]any, len(spells.Classes))
		for name, classes := range spells.Classes {
			refs := make([]any, 0, len(classes))
			for _, class := range classes {
				refs = append(refs, map[string]any{"name": class, "source": APISource})
			}
			byName[name] = map[string]any{"class": refs}
		}
		return map[string]any{APISource: byName}, nil

	case BaseItemsFile:
		records, err := r.client.ListEquipment(ctx)
		if err != nil {
			return nil, err
		}
		return map[string]any{"baseitem": toList(records)}, nil
	}
	return nil, errors.NotFoundf("file %s is not served by the API", filename)
}

// loadSpells fetches spells once; both spell files share the result
func (r *apiReader) loadSpells(ctx context.Context) (*SpellList, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.spells != nil {
		return r.spells, nil
	}
	spells, err := r.client.ListSpells(ctx)
	if err != nil {
		return nil, err
	}
	r.spells = spells
	return spells, nil
}

func toList(records []source.RawRecord) []any {
	list := make([]any, 0, len(records))
	for _, record := range records {
		list = append(list, map[string]any(record))
	}
	return list
}
