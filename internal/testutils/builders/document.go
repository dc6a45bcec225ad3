// Package builders provides test data builders for creating test fixtures
package builders

import (
	"github.com/mixtli/dungeon-lab-sub000/internal/entities/document"
	"github.com/mixtli/dungeon-lab-sub000/internal/pkg/idgen"
)

// DocumentBuilder provides a fluent interface for building test Document instances
type DocumentBuilder struct {
	doc *document.Document
}

// NewDocumentBuilder creates a builder for a gear item with minimal defaults
func NewDocumentBuilder() *DocumentBuilder {
	return &DocumentBuilder{
		doc: &document.Document{
			Name:         "Rope",
			Slug:         "rope",
			DocumentKind: document.KindItem,
			Category:     document.CategoryGear,
			PluginData:   &document.GearData{GearType: "adventuring gear"},
			Source:       document.Source{Book: "XPHB"},
		},
	}
}

// WithName sets the name and the slug derived from it
func (b *DocumentBuilder) WithName(name string) *DocumentBuilder {
	b.doc.Name = name
	b.doc.Slug = document.Slugify(name)
	return b
}

// WithSource sets the source book
func (b *DocumentBuilder) WithSource(book string) *DocumentBuilder {
	b.doc.Source.Book = book
	return b
}

// WithDescription sets the description
func (b *DocumentBuilder) WithDescription(description string) *DocumentBuilder {
	b.doc.Description = description
	return b
}

// AsWeapon turns the document into a weapon with the given damage
func (b *DocumentBuilder) AsWeapon(dice, damageType string) *DocumentBuilder {
	b.doc.DocumentKind = document.KindItem
	b.doc.Category = document.CategoryWeapon
	b.doc.PluginData = &document.WeaponData{
		WeaponCategory: "simple",
		AttackType:     "melee",
		Damage:         document.DamageRoll{Dice: dice, Type: damageType},
	}
	return b
}

// AsTool turns the document into a tool with the given type code
func (b *DocumentBuilder) AsTool(typeCode string) *DocumentBuilder {
	b.doc.DocumentKind = document.KindItem
	b.doc.Category = document.CategoryTool
	b.doc.PluginData = &document.ToolData{ToolType: "tool", TypeCode: typeCode}
	return b
}

// AsCreature turns the document into a creature actor
func (b *DocumentBuilder) AsCreature(cr float64, pb int) *DocumentBuilder {
	b.doc.DocumentKind = document.KindActor
	b.doc.Category = document.CategoryCreature
	b.doc.PluginData = &document.CreatureData{
		Size:             []string{"medium"},
		Type:             "humanoid",
		ChallengeRating:  cr,
		ProficiencyBonus: pb,
	}
	return b
}

// Build returns the document with its deterministic ID set
func (b *DocumentBuilder) Build() *document.Document {
	doc := *b.doc
	doc.ID = idgen.NewNameBased("").Generate(doc.IdentityKey())
	return &doc
}
