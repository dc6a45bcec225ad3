// Package document provides the typed content model produced by the
// conversion pipeline: documents, their category payloads and the
// references that link one document to another.
package document

import (
	"encoding/json"
	"fmt"

	"github.com/KirkDiggler/rpg-toolkit/core"
)

// Kind is the document-kind discriminator
type Kind string

const (
	KindActor    Kind = "actor"
	KindItem     Kind = "item"
	KindDocument Kind = "vtt-document"
)

// Category is the category discriminator. It always matches the
// PluginData variant carried by the document.
type Category string

const (
	CategoryCreature   Category = "creature"
	CategoryWeapon     Category = "weapon"
	CategoryArmor      Category = "armor"
	CategoryTool       Category = "tool"
	CategoryGear       Category = "gear"
	CategoryItemGroup  Category = "item-group"
	CategorySpell      Category = "spell"
	CategoryClass      Category = "class"
	CategorySpecies    Category = "species"
	CategoryBackground Category = "background"
	CategoryAction     Category = "action"
	CategoryLanguage   Category = "language"

	// CategoryFeat is only ever the target of a reference; no converter
	// produces feat documents
	CategoryFeat Category = "feat"
)

// Source records where a document came from
type Source struct {
	Book string `json:"book"`
	Page int    `json:"page,omitempty"`
}

// Document is the unit of conversion output
type Document struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	Slug         string     `json:"slug"`
	DocumentKind Kind       `json:"document_kind"`
	Category     Category   `json:"category"`
	Description  string     `json:"description,omitempty"`
	PluginData   PluginData `json:"plugin_data"`
	ImagePath    string     `json:"image_path,omitempty"`
	Source       Source     `json:"source"`
}

// GetID implements core.Entity
func (d *Document) GetID() string {
	return d.ID
}

// GetType implements core.Entity
func (d *Document) GetType() string {
	return string(d.Category)
}

var _ core.Entity = (*Document)(nil)

// IdentityKey returns the (kind, source, slug) tuple that identifies the
// entity. Two documents with equal keys describe the same entity.
func (d *Document) IdentityKey() string {
	return IdentityKey(d.DocumentKind, d.Source.Book, d.Slug)
}

// IdentityKey builds the identity key for the given parts
func IdentityKey(kind Kind, sourceBook, slug string) string {
	return fmt.Sprintf("%s:%s:%s", kind, normalizeSource(sourceBook), slug)
}

// Ref returns a reference pointing at this document
func (d *Document) Ref() Reference {
	return Reference{
		Slug:         d.Slug,
		DocumentKind: d.DocumentKind,
		Category:     d.Category,
		Source:       normalizeSource(d.Source.Book),
	}
}

type documentJSON struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Slug         string          `json:"slug"`
	DocumentKind Kind            `json:"document_kind"`
	Category     Category        `json:"category"`
	Description  string          `json:"description,omitempty"`
	PluginData   json.RawMessage `json:"plugin_data"`
	ImagePath    string          `json:"image_path,omitempty"`
	Source       Source          `json:"source"`
}

// UnmarshalJSON decodes the payload into the variant named by category
func (d *Document) UnmarshalJSON(data []byte) error {
	var raw documentJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*d = Document{
		ID:           raw.ID,
		Name:         raw.Name,
		Slug:         raw.Slug,
		DocumentKind: raw.DocumentKind,
		Category:     raw.Category,
		Description:  raw.Description,
		ImagePath:    raw.ImagePath,
		Source:       raw.Source,
	}

	if len(raw.PluginData) == 0 || string(raw.PluginData) == "null" {
		return nil
	}

	payload, err := NewPluginData(raw.Category)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(raw.PluginData, payload); err != nil {
		return fmt.Errorf("decode %s plugin data: %w", raw.Category, err)
	}
	d.PluginData = payload
	return nil
}
