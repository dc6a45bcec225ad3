// Package filter decides which raw records are in scope for conversion
package filter

import (
	"fmt"
	"strings"

	"github.com/mixtli/dungeon-lab-sub000/internal/source"
)

// Mode is a licensing mode
type Mode string

const (
	// ModeSRD keeps only records flagged as open content
	ModeSRD Mode = "srd"
	// ModeAll keeps every record
	ModeAll Mode = "all"
)

// ParseMode returns the mode named by s, defaulting to ModeSRD
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case "", ModeSRD:
		return ModeSRD, nil
	case ModeAll:
		return ModeAll, nil
	default:
		return ModeSRD, fmt.Errorf("unknown filter mode %q", s)
	}
}

// Filter returns the records eligible under mode. The input is never
// modified and filtering twice with the same mode changes nothing.
func Filter(records []source.RawRecord, mode Mode) []source.RawRecord {
	if mode == ModeAll {
		return records
	}

	out := make([]source.RawRecord, 0, len(records))
	for _, r := range records {
		if IsOpenContent(r) {
			out = append(out, r)
		}
	}
	return out
}

// IsOpenContent reports whether the record carries an srd or srd52 flag
// that is true or a non-empty string (an alternate SRD name)
func IsOpenContent(r source.RawRecord) bool {
	return flagged(r["srd"]) || flagged(r["srd52"])
}

func flagged(v any) bool {
	switch t := v.(type) {
	case bool:
		return t
	case string:
		return strings.TrimSpace(t) != ""
	default:
		return false
	}
}
