package external

import (
	"context"
	"testing"

	"github.com/fadedpez/dnd5e-api/clients/dnd5e"
	"github.com/fadedpez/dnd5e-api/entities"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/mixtli/dungeon-lab-sub000/internal/errors"
)

// mockDND5eClient is a mock implementation of the dnd5e.Interface for testing
type mockDND5eClient struct {
	mock.Mock
}

func (m *mockDND5eClient) ListRaces() ([]*entities.ReferenceItem, error) {
	args := m.Called()
	return args.Get(0).([]*entities.ReferenceItem), args.Error(1)
}

func (m *mockDND5eClient) GetRace(key string) (*entities.Race, error) {
	args := m.Called(key)
	return args.Get(0).(*entities.Race), args.Error(1)
}

func (m *mockDND5eClient) ListEquipment() ([]*entities.ReferenceItem, error) {
	args := m.Called()
	return args.Get(0).([]*entities.ReferenceItem), args.Error(1)
}

func (m *mockDND5eClient) GetEquipment(key string) (dnd5e.EquipmentInterface, error) {
	args := m.Called(key)
	return args.Get(0).(dnd5e.EquipmentInterface), args.Error(1)
}

func (m *mockDND5eClient) GetEquipmentCategory(key string) (*entities.EquipmentCategory, error) {
	args := m.Called(key)
	return args.Get(0).(*entities.EquipmentCategory), args.Error(1)
}

func (m *mockDND5eClient) ListClasses() ([]*entities.ReferenceItem, error) {
	args := m.Called()
	return args.Get(0).([]*entities.ReferenceItem), args.Error(1)
}

func (m *mockDND5eClient) GetClass(key string) (*entities.Class, error) {
	args := m.Called(key)
	return args.Get(0).(*entities.Class), args.Error(1)
}

func (m *mockDND5eClient) ListSpells(input *dnd5e.ListSpellsInput) ([]*entities.ReferenceItem, error) {
	args := m.Called(input)
	return args.Get(0).([]*entities.ReferenceItem), args.Error(1)
}

func (m *mockDND5eClient) GetSpell(key string) (*entities.Spell, error) {
	args := m.Called(key)
	return args.Get(0).(*entities.Spell), args.Error(1)
}

func (m *mockDND5eClient) ListFeatures() ([]*entities.ReferenceItem, error) {
	args := m.Called()
	return args.Get(0).([]*entities.ReferenceItem), args.Error(1)
}

func (m *mockDND5eClient) GetFeature(key string) (*entities.Feature, error) {
	args := m.Called(key)
	return args.Get(0).(*entities.Feature), args.Error(1)
}

func (m *mockDND5eClient) ListSkills() ([]*entities.ReferenceItem, error) {
	args := m.Called()
	return args.Get(0).([]*entities.ReferenceItem), args.Error(1)
}

func (m *mockDND5eClient) GetSkill(key string) (*entities.Skill, error) {
	args := m.Called(key)
	return args.Get(0).(*entities.Skill), args.Error(1)
}

func (m *mockDND5eClient) ListMonsters() ([]*entities.ReferenceItem, error) {
	args := m.Called()
	return args.Get(0).([]*entities.ReferenceItem), args.Error(1)
}

func (m *mockDND5eClient) ListMonstersWithFilter(input *dnd5e.ListMonstersInput) ([]*entities.ReferenceItem, error) {
	args := m.Called(input)
	return args.Get(0).([]*entities.ReferenceItem), args.Error(1)
}

func (m *mockDND5eClient) GetMonster(key string) (*entities.Monster, error) {
	args := m.Called(key)
	return args.Get(0).(*entities.Monster), args.Error(1)
}

func (m *mockDND5eClient) GetClassLevel(key string, level int) (*entities.Level, error) {
	args := m.Called(key, level)
	return args.Get(0).(*entities.Level), args.Error(1)
}

func (m *mockDND5eClient) GetProficiency(key string) (*entities.Proficiency, error) {
	args := m.Called(key)
	return args.Get(0).(*entities.Proficiency), args.Error(1)
}

func (m *mockDND5eClient) ListDamageTypes() ([]*entities.ReferenceItem, error) {
	args := m.Called()
	return args.Get(0).([]*entities.ReferenceItem), args.Error(1)
}

func (m *mockDND5eClient) GetDamageType(key string) (*entities.DamageType, error) {
	args := m.Called(key)
	return args.Get(0).(*entities.DamageType), args.Error(1)
}

func (m *mockDND5eClient) ListBackgrounds() ([]*entities.ReferenceItem, error) {
	args := m.Called()
	return args.Get(0).([]*entities.ReferenceItem), args.Error(1)
}

func (m *mockDND5eClient) GetBackground(key string) (*entities.Background, error) {
	args := m.Called(key)
	return args.Get(0).(*entities.Background), args.Error(1)
}

func TestListSpells(t *testing.T) {
	t.Run("successful spell listing", func(t *testing.T) {
		mockClient := new(mockDND5eClient)
		client := &client{dnd5eClient: mockClient}

		refs := []*entities.ReferenceItem{
			{Key: "fire-bolt", Name: "Fire Bolt"},
			{Key: "bless", Name: "Bless"},
		}
		fireBolt := &entities.Spell{
			Key:         "fire-bolt",
			Name:        "Fire Bolt",
			SpellLevel:  0,
			CastingTime: "1 action",
			Range:       "120 feet",
			Duration:    "Instantaneous",
			SpellClasses: []*entities.ReferenceItem{
				{Key: "sorcerer", Name: "Sorcerer"},
				{Key: "wizard", Name: "Wizard"},
			},
		}
		bless := &entities.Spell{
			Key:           "bless",
			Name:          "Bless",
			SpellLevel:    1,
			CastingTime:   "1 action",
			Range:         "30 feet",
			Duration:      "Up to 1 minute",
			Concentration: true,
			SpellClasses:  []*entities.ReferenceItem{{Key: "cleric", Name: "Cleric"}},
		}

		mockClient.On("ListSpells", mock.Anything).Return(refs, nil)
		mockClient.On("GetSpell", "fire-bolt").Return(fireBolt, nil)
		mockClient.On("GetSpell", "bless").Return(bless, nil)

		result, err := client.ListSpells(context.Background())

		require.NoError(t, err)
		require.Len(t, result.Records, 2)
		assert.Equal(t, "Fire Bolt", result.Records[0].Name())
		assert.Equal(t, APISource, result.Records[0].Source())
		assert.Equal(t, "Bless", result.Records[1].Name())
		assert.Equal(t, []string{"Sorcerer", "Wizard"}, result.Classes["Fire Bolt"])
		assert.Equal(t, []string{"Cleric"}, result.Classes["Bless"])

		mockClient.AssertExpectations(t)
	})

	t.Run("spell listing API error", func(t *testing.T) {
		mockClient := new(mockDND5eClient)
		client := &client{dnd5eClient: mockClient}

		mockClient.On("ListSpells", mock.Anything).Return(([]*entities.ReferenceItem)(nil), errors.Internal("API error"))

		result, err := client.ListSpells(context.Background())

		assert.Error(t, err)
		assert.Nil(t, result)
		assert.Equal(t, errors.CodeUnavailable, errors.GetCode(err))
		assert.Contains(t, err.Error(), "failed to list spells from D&D 5e API")

		mockClient.AssertExpectations(t)
	})

	t.Run("spell detail API error", func(t *testing.T) {
		mockClient := new(mockDND5eClient)
		client := &client{dnd5eClient: mockClient}

		mockClient.On("ListSpells", mock.Anything).Return([]*entities.ReferenceItem{{Key: "bless"}}, nil)
		mockClient.On("GetSpell", "bless").Return((*entities.Spell)(nil), errors.Internal("API error"))

		result, err := client.ListSpells(context.Background())

		assert.Error(t, err)
		assert.Nil(t, result)
		assert.Contains(t, err.Error(), "failed to get spell bless")
	})

	t.Run("canceled context", func(t *testing.T) {
		mockClient := new(mockDND5eClient)
		client := &client{dnd5eClient: mockClient}
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		mockClient.On("ListSpells", mock.Anything).Return([]*entities.ReferenceItem{{Key: "bless"}}, nil)

		result, err := client.ListSpells(ctx)

		assert.Error(t, err)
		assert.Nil(t, result)
		assert.Equal(t, errors.CodeCanceled, errors.GetCode(err))
		mockClient.AssertNotCalled(t, "GetSpell", "bless")
	})
}

func TestListEquipment(t *testing.T) {
	t.Run("successful equipment listing", func(t *testing.T) {
		mockClient := new(mockDND5eClient)
		client := &client{dnd5eClient: mockClient}

		refs := []*entities.ReferenceItem{
			{Key: "longsword", Name: "Longsword"},
			{Key: "chain-mail", Name: "Chain Mail"},
			{Key: "rope", Name: "Rope"},
		}
		longsword := &entities.Weapon{
			Key:            "longsword",
			Name:           "Longsword",
			WeaponCategory: "Martial",
			WeaponRange:    "Melee",
			Weight:         3.0,
			Cost:           &entities.Cost{Quantity: 15, Unit: "gp"},
			Damage:         &entities.Damage{DamageDice: "1d8", DamageType: &entities.ReferenceItem{Name: "Slashing"}},
			Properties:     []*entities.ReferenceItem{{Name: "Versatile"}},
		}
		chainMail := &entities.Armor{
			Key:                 "chain-mail",
			Name:                "Chain Mail",
			ArmorCategory:       "Heavy",
			ArmorClass:          &entities.ArmorClass{Base: 16},
			StrMinimum:          13,
			StealthDisadvantage: true,
			Weight:              55,
			Cost:                &entities.Cost{Quantity: 75, Unit: "gp"},
		}
		rope := &entities.Equipment{
			Key:    "rope",
			Name:   "Rope",
			Weight: 10,
			Cost:   &entities.Cost{Quantity: 1, Unit: "gp"},
		}

		mockClient.On("ListEquipment").Return(refs, nil)
		mockClient.On("GetEquipment", "longsword").Return(longsword, nil)
		mockClient.On("GetEquipment", "chain-mail").Return(chainMail, nil)
		mockClient.On("GetEquipment", "rope").Return(rope, nil)

		result, err := client.ListEquipment(context.Background())

		require.NoError(t, err)
		require.Len(t, result, 3)
		assert.Equal(t, "Longsword", result[0].Name())
		assert.Equal(t, "M", result[0]["type"])
		assert.Equal(t, "Chain Mail", result[1].Name())
		assert.Equal(t, "HA", result[1]["type"])
		assert.Equal(t, "Rope", result[2].Name())
		assert.Equal(t, "G", result[2]["type"])

		mockClient.AssertExpectations(t)
	})

	t.Run("equipment listing API error", func(t *testing.T) {
		mockClient := new(mockDND5eClient)
		client := &client{dnd5eClient: mockClient}

		mockClient.On("ListEquipment").Return(([]*entities.ReferenceItem)(nil), errors.Internal("API error"))

		result, err := client.ListEquipment(context.Background())

		assert.Error(t, err)
		assert.Nil(t, result)
		assert.Contains(t, err.Error(), "failed to list equipment from D&D 5e API")

		mockClient.AssertExpectations(t)
	})

	t.Run("equipment detail API error", func(t *testing.T) {
		mockClient := new(mockDND5eClient)
		client := &client{dnd5eClient: mockClient}

		mockClient.On("ListEquipment").Return([]*entities.ReferenceItem{{Key: "rope"}}, nil)
		mockClient.On("GetEquipment", "rope").Return((*entities.Equipment)(nil), errors.Internal("API error"))

		result, err := client.ListEquipment(context.Background())

		assert.Error(t, err)
		assert.Nil(t, result)
		assert.Contains(t, err.Error(), "failed to get equipment rope")
	})
}

func TestEquipmentRecord(t *testing.T) {
	testCases := []struct {
		name      string
		equipment dnd5e.EquipmentInterface
		expected  map[string]any
	}{
		{
			name: "melee weapon",
			equipment: &entities.Weapon{
				Name:           "Quarterstaff",
				WeaponCategory: "Simple",
				WeaponRange:    "Melee",
				Weight:         4,
				Cost:           &entities.Cost{Quantity: 2, Unit: "sp"},
				Damage:         &entities.Damage{DamageDice: "1d6", DamageType: &entities.ReferenceItem{Name: "Bludgeoning"}},
				Properties:     []*entities.ReferenceItem{{Name: "Versatile"}, {Name: "Monk"}},
			},
			expected: map[string]any{
				"name":           "Quarterstaff",
				"source":         APISource,
				"srd":            true,
				"type":           "M",
				"weapon":         true,
				"weaponCategory": "simple",
				"dmg1":           "1d6",
				"dmgType":        "B",
				"property":       []any{"V"},
				"weight":         float64(4),
				"value":          20,
			},
		},
		{
			name: "ranged weapon",
			equipment: &entities.Weapon{
				Name:           "Longbow",
				WeaponCategory: "Martial",
				WeaponRange:    "Ranged",
				Damage:         &entities.Damage{DamageDice: "1d8", DamageType: &entities.ReferenceItem{Name: "Piercing"}},
				Properties:     []*entities.ReferenceItem{{Name: "Ammunition"}, {Name: "Heavy"}, {Name: "Two-Handed"}},
			},
			expected: map[string]any{
				"name":           "Longbow",
				"source":         APISource,
				"srd":            true,
				"type":           "R",
				"weapon":         true,
				"weaponCategory": "martial",
				"dmg1":           "1d8",
				"dmgType":        "P",
				"property":       []any{"A", "H", "2H"},
			},
		},
		{
			name: "light armor",
			equipment: &entities.Armor{
				Name:          "Leather Armor",
				ArmorCategory: "Light",
				ArmorClass:    &entities.ArmorClass{Base: 11, DexBonus: true},
				Weight:        10,
				Cost:          &entities.Cost{Quantity: 10, Unit: "gp"},
			},
			expected: map[string]any{
				"name":   "Leather Armor",
				"source": APISource,
				"srd":    true,
				"type":   "LA",
				"armor":  true,
				"ac":     11,
				"weight": float64(10),
				"value":  1000,
			},
		},
		{
			name: "tool",
			equipment: &entities.Equipment{
				Name:              "Thieves' Tools",
				EquipmentCategory: &entities.ReferenceItem{Key: "tools"},
			},
			expected: map[string]any{
				"name":   "Thieves' Tools",
				"source": APISource,
				"srd":    true,
				"type":   "T",
			},
		},
		{
			name: "unknown cost unit",
			equipment: &entities.Equipment{
				Name: "Trinket",
				Cost: &entities.Cost{Quantity: 3, Unit: "favors"},
			},
			expected: map[string]any{
				"name":   "Trinket",
				"source": APISource,
				"srd":    true,
				"type":   "G",
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			record := equipmentRecord(tc.equipment)
			assert.Equal(t, tc.expected, map[string]any(record))
		})
	}

	t.Run("nil equipment", func(t *testing.T) {
		assert.Nil(t, equipmentRecord(nil))
	})
}

func TestSpellRecord(t *testing.T) {
	t.Run("timed concentration spell", func(t *testing.T) {
		record := spellRecord(&entities.Spell{
			Name:          "Bless",
			SpellLevel:    1,
			CastingTime:   "1 bonus action",
			Range:         "30 feet",
			Duration:      "Up to 1 minute",
			Concentration: true,
			Ritual:        true,
		})

		assert.Equal(t, "Bless", record.Name())
		assert.Equal(t, APISource, record.Source())
		assert.Equal(t, true, record["srd"])
		assert.Equal(t, 1, record["level"])
		assert.Equal(t, []any{map[string]any{"number": 1, "unit": "bonus"}}, record["time"])
		assert.Equal(t, map[string]any{
			"type":     "point",
			"distance": map[string]any{"type": "feet", "amount": 30},
		}, record["range"])
		assert.Equal(t, []any{map[string]any{
			"type":          "timed",
			"duration":      map[string]any{"type": "minute", "amount": 1},
			"concentration": true,
		}}, record["duration"])
		assert.Equal(t, map[string]any{"ritual": true}, record["meta"])
		assert.False(t, record.Has("school"))
		assert.False(t, record.Has("entries"))
	})

	t.Run("unparseable values are left out", func(t *testing.T) {
		record := spellRecord(&entities.Spell{
			Name:        "Odd Spell",
			CastingTime: "see text",
			Range:       "varies",
			Duration:    "a while",
		})

		assert.False(t, record.Has("time"))
		assert.False(t, record.Has("range"))
		assert.False(t, record.Has("duration"))
		assert.False(t, record.Has("meta"))
	})
}

func TestSpellRange(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected map[string]any
	}{
		{
			name:     "touch",
			input:    "Touch",
			expected: map[string]any{"type": "point", "distance": map[string]any{"type": "touch"}},
		},
		{
			name:     "self without area",
			input:    "Self",
			expected: map[string]any{"type": "point", "distance": map[string]any{"type": "self"}},
		},
		{
			name:     "miles",
			input:    "1 mile",
			expected: map[string]any{"type": "point", "distance": map[string]any{"type": "miles", "amount": 1}},
		},
		{
			name:     "special",
			input:    "Special",
			expected: map[string]any{"type": "special"},
		},
		{
			name:     "empty",
			input:    "",
			expected: nil,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, spellRange(&entities.Spell{Range: tc.input}))
		})
	}
}

func TestSpellDuration(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected map[string]any
	}{
		{
			name:     "instantaneous",
			input:    "Instantaneous",
			expected: map[string]any{"type": "instant"},
		},
		{
			name:     "until dispelled",
			input:    "Until dispelled",
			expected: map[string]any{"type": "permanent", "ends": []any{"dispel"}},
		},
		{
			name:  "hours",
			input: "8 hours",
			expected: map[string]any{
				"type":          "timed",
				"duration":      map[string]any{"type": "hour", "amount": 8},
				"concentration": false,
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, spellDuration(tc.input, false))
		})
	}
}

func TestBaseDamage(t *testing.T) {
	slots := &entities.SpellDamageAtSlotLevel{
		FirstLevel: "1d10",
		ThirdLevel: "8d6",
		NinthLevel: "14d6",
	}

	assert.Equal(t, "1d10", baseDamage(0, slots))
	assert.Equal(t, "8d6", baseDamage(3, slots))
	assert.Equal(t, "14d6", baseDamage(9, slots))
	assert.Equal(t, "", baseDamage(10, slots))
}
