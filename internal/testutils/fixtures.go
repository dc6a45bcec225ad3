package testutils

import (
	"github.com/mixtli/dungeon-lab-sub000/internal/source"
)

// Raw record fixtures shaped like the source files
const (
	// TestSource is the source book used by fixtures
	TestSource = "XMM"
)

// GoblinRecord returns a minimal creature record
func GoblinRecord() source.RawRecord {
	return source.RawRecord{
		"name":   "Goblin",
		"source": TestSource,
		"srd52":  true,
		"size":   []any{"S"},
		"type":   map[string]any{"type": "humanoid", "tags": []any{"goblinoid"}},
		"cr":     "1/4",
		"ac":     []any{15},
		"hp":     map[string]any{"average": 7, "formula": "2d6"},
		"speed":  map[string]any{"walk": 30},
		"str":    8,
		"dex":    14,
		"con":    10,
		"int":    10,
		"wis":    8,
		"cha":    8,
	}
}

// QuarterstaffRecord returns a minimal base weapon record
func QuarterstaffRecord() source.RawRecord {
	return source.RawRecord{
		"name":     "Quarterstaff",
		"source":   "XPHB",
		"srd52":    true,
		"type":     "M|XPHB",
		"weapon":   true,
		"dmg1":     "1d6",
		"dmg2":     "1d8",
		"dmgType":  "B",
		"property": []any{"V|XPHB"},
		"weight":   4,
		"value":    20,
	}
}

// InvalidRecord returns a record missing its name
func InvalidRecord() source.RawRecord {
	return source.RawRecord{
		"source": TestSource,
		"srd52":  true,
	}
}

// SourceFile wraps records under key the way a content file does
func SourceFile(key string, records ...source.RawRecord) map[string]any {
	list := make([]any, len(records))
	for i, r := range records {
		list[i] = map[string]any(r)
	}
	return map[string]any{key: list}
}
