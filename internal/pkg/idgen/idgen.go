// Package idgen provides ID generation utilities
package idgen

import (
	"fmt"
	"sync/atomic"

	"github.com/google/uuid"
)

// Generator derives an identifier from an identity key
type Generator interface {
	Generate(key string) string
}

// DefaultNamespace seeds the name-based generator when no namespace is given
const DefaultNamespace = "content.dungeon-lab"

// NameBasedGenerator derives UUIDv5 identifiers, so the same key always
// yields the same ID
type NameBasedGenerator struct {
	namespace uuid.UUID
}

// NewNameBased creates a generator scoped to the given namespace name
func NewNameBased(namespace string) *NameBasedGenerator {
	if namespace == "" {
		namespace = DefaultNamespace
	}
	return &NameBasedGenerator{namespace: uuid.NewSHA1(uuid.NameSpaceURL, []byte(namespace))}
}

// Generate returns the UUIDv5 of key within the generator's namespace
func (g *NameBasedGenerator) Generate(key string) string {
	return uuid.NewSHA1(g.namespace, []byte(key)).String()
}

// SequentialGenerator generates sequential IDs for testing
type SequentialGenerator struct {
	prefix  string
	counter uint64
}

// NewSequential creates a new sequential generator
func NewSequential(prefix string) *SequentialGenerator {
	return &SequentialGenerator{prefix: prefix}
}

// Generate creates a new sequential ID, ignoring the key
func (g *SequentialGenerator) Generate(_ string) string {
	n := atomic.AddUint64(&g.counter, 1)
	if g.prefix != "" {
		return fmt.Sprintf("%s_%d", g.prefix, n)
	}
	return fmt.Sprintf("%d", n)
}
