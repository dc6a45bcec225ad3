package document

import "strings"

// Reference is an address-only pointer to another document. It never
// carries the target's data and may name a document that does not exist
// yet. References compare with ==.
type Reference struct {
	Slug         string   `json:"slug"`
	DocumentKind Kind     `json:"document_kind"`
	Category     Category `json:"category"`
	Source       string   `json:"source"`
}

// IsZero reports whether r points nowhere
func (r Reference) IsZero() bool {
	return r == Reference{}
}

// IdentityKey returns the identity key of the referenced document
func (r Reference) IdentityKey() string {
	return IdentityKey(r.DocumentKind, r.Source, r.Slug)
}

func normalizeSource(source string) string {
	return strings.ToLower(strings.TrimSpace(source))
}
