// Package external reads content from the dnd5e API and reshapes it into
// raw records, so API content flows through the same pipeline as files
package external

//go:generate mockgen -destination=mock/mock_client.go -package=externalmock github.com/mixtli/dungeon-lab-sub000/internal/clients/external Client

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/fadedpez/dnd5e-api/clients/dnd5e"
	"github.com/fadedpez/dnd5e-api/entities"

	"github.com/mixtli/dungeon-lab-sub000/internal/errors"
	"github.com/mixtli/dungeon-lab-sub000/internal/source"
)

// APISource is the source book of API content; the API serves the 2014
// SRD
const APISource = "PHB"

// Client defines the interface for external API interactions
type Client interface {
	// ListSpells returns every spell as a raw spell record, along with the
	// classes that can learn it
	ListSpells(ctx context.Context) (*SpellList, error)

	// ListEquipment returns every piece of equipment as a raw base item
	// record
	ListEquipment(ctx context.Context) ([]source.RawRecord, error)
}

// SpellList is the result of ListSpells
type SpellList struct {
	Records []source.RawRecord
	// Classes maps a spell name to the names of the classes that learn it
	Classes map[string][]string
}

type client struct {
	dnd5eClient dnd5e.Interface
}

// Config contains configuration options for the external client.
type Config struct {
	// BaseURL for the D&D 5e API (optional, defaults to https://www.dnd5eapi.co/api/2014/)
	BaseURL string
	// HTTPTimeout for API requests (optional, defaults to 30 seconds)
	HTTPTimeout time.Duration
	// CacheTTL for the cached client (optional, defaults to 24 hours)
	CacheTTL time.Duration
}

// Validate validates the Config and sets defaults if not provided.
func (cfg *Config) Validate() error {
	if cfg == nil {
		return errors.InvalidArgument("config cannot be nil")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://www.dnd5eapi.co/api/2014/"
	}
	if cfg.HTTPTimeout == 0 {
		cfg.HTTPTimeout = 30 * time.Second
	}
	if cfg.CacheTTL == 0 {
		cfg.CacheTTL = 24 * time.Hour
	}
	return nil
}

// New creates a new external client with the given configuration.
func New(cfg *Config) (Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	httpClient := &http.Client{
		Timeout: cfg.HTTPTimeout,
	}

	baseClient, err := dnd5e.NewDND5eAPI(&dnd5e.DND5eAPIConfig{
		Client:  httpClient,
		BaseURL: cfg.BaseURL,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create D&D 5e API client")
	}

	// Wrap with caching so repeated runs do not refetch details
	cachedClient := dnd5e.NewCachedClient(baseClient, cfg.CacheTTL)

	return &client{
		dnd5eClient: cachedClient,
	}, nil
}

func (c *client) ListSpells(ctx context.Context) (*SpellList, error) {
	slog.Info("Calling D&D 5e API to list spells")
	refs, err := c.dnd5eClient.ListSpells(nil)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeUnavailable, "failed to list spells from D&D 5e API")
	}
	slog.Info("Got spell references", "count", len(refs))

	spells := make([]*entities.Spell, len(refs))
	err = c.loadConcurrently(ctx, refs, func(idx int, key string) error {
		spell, err := c.dnd5eClient.GetSpell(key)
		if err != nil {
			return errors.WrapWithCodef(err, errors.CodeUnavailable, "failed to get spell %s", key)
		}
		spells[idx] = spell
		return nil
	})
	if err != nil {
		return nil, err
	}

	list := &SpellList{Classes: make(map[string][]string)}
	for _, spell := range spells {
		if spell == nil {
			continue
		}
		list.Records = append(list.Records, spellRecord(spell))
		for _, class := range spell.SpellClasses {
			if class != nil && class.Name != "" {
				list.Classes[spell.Name] = append(list.Classes[spell.Name], class.Name)
			}
		}
	}
	return list, nil
}

func (c *client) ListEquipment(ctx context.Context) ([]source.RawRecord, error) {
	slog.Info("Calling D&D 5e API to list equipment")
	refs, err := c.dnd5eClient.ListEquipment()
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeUnavailable, "failed to list equipment from D&D 5e API")
	}

	items := make([]dnd5e.EquipmentInterface, len(refs))
	err = c.loadConcurrently(ctx, refs, func(idx int, key string) error {
		item, err := c.dnd5eClient.GetEquipment(key)
		if err != nil {
			return errors.WrapWithCodef(err, errors.CodeUnavailable, "failed to get equipment %s", key)
		}
		items[idx] = item
		return nil
	})
	if err != nil {
		return nil, err
	}

	records := make([]source.RawRecord, 0, len(items))
	for _, item := range items {
		if record := equipmentRecord(item); record != nil {
			records = append(records, record)
		}
	}
	return records, nil
}

// loadConcurrently fetches the details of every reference; the first
// error wins
func (c *client) loadConcurrently(ctx context.Context, refs []*entities.ReferenceItem, load func(idx int, key string) error) error {
	errChan := make(chan error, len(refs))
	var wg sync.WaitGroup

	for i, ref := range refs {
		if ref == nil {
			continue
		}
		wg.Add(1)
		go func(idx int, key string) {
			defer wg.Done()
			if err := ctx.Err(); err != nil {
				errChan <- errors.WrapWithCode(err, errors.CodeCanceled, "load canceled")
				return
			}
			if err := load(idx, key); err != nil {
				slog.Error("Failed to load API details", "key", key, "error", err)
				errChan <- err
			}
		}(i, ref.Key)
	}

	wg.Wait()
	close(errChan)

	for err := range errChan {
		if err != nil {
			return err
		}
	}
	return nil
}
