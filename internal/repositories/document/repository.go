// Package document provides the interface for converted document persistence
package document

//go:generate mockgen -destination=mock/mock_repository.go -package=documentmock github.com/mixtli/dungeon-lab-sub000/internal/repositories/document Repository

import (
	"context"

	"github.com/mixtli/dungeon-lab-sub000/internal/entities/document"
)

// Repository defines the interface for document persistence. Documents are
// stored under their identity key, so saving a reconverted document
// replaces the previous version.
type Repository interface {
	// Save stores documents, replacing any with the same identity key
	// Returns errors.InvalidArgument for nil documents or missing identity parts
	// Returns errors.Internal for storage failures
	Save(ctx context.Context, input *SaveInput) (*SaveOutput, error)

	// Get retrieves one document by identity
	// Returns errors.InvalidArgument for a missing kind or slug
	// Returns errors.NotFound if no document has that identity
	Get(ctx context.Context, input *GetInput) (*GetOutput, error)

	// ListByCategory returns every stored document of a category ordered
	// by identity key
	// Returns errors.InvalidArgument for an empty category
	ListByCategory(ctx context.Context, input *ListByCategoryInput) (*ListByCategoryOutput, error)

	// Verify scans every stored document and reports those that no longer
	// decode or whose key disagrees with their identity. With Delete set
	// they are removed together with their index entries.
	Verify(ctx context.Context, input *VerifyInput) (*VerifyOutput, error)
}

// SaveInput defines the input for saving documents
type SaveInput struct {
	Documents []*document.Document
}

// SaveOutput defines the output for saving documents
type SaveOutput struct {
	Saved int
}

// GetInput identifies one document
type GetInput struct {
	Kind   document.Kind
	Source string
	Slug   string
}

// GetOutput defines the output for getting a document
type GetOutput struct {
	Document *document.Document
}

// ListByCategoryInput defines the input for listing a category
type ListByCategoryInput struct {
	Category document.Category
}

// ListByCategoryOutput defines the output for listing a category
type ListByCategoryOutput struct {
	Documents []*document.Document
}

// VerifyInput defines the input for verifying stored documents
type VerifyInput struct {
	Delete bool
}

// VerifyOutput reports the outcome of a verification scan
type VerifyOutput struct {
	Checked int
	// Corrupt lists the storage keys of bad documents, sorted
	Corrupt []string
	Deleted int
}
