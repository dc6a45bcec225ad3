package pipeline

import (
	"fmt"
	"time"

	"github.com/mixtli/dungeon-lab-sub000/internal/entities/document"
)

// Result is the outcome of converting one record
type Result struct {
	Success  bool
	Document *document.Document
	Errors   []string
}

func failed(messages ...string) Result {
	return Result{Success: false, Errors: messages}
}

// BatchResult aggregates the outcome of converting a category. Converted
// plus Failed always equals Total.
type BatchResult struct {
	Category  string               `json:"category"`
	Total     int                  `json:"total"`
	Converted int                  `json:"converted"`
	Failed    int                  `json:"failed"`
	Errors    []string             `json:"errors,omitempty"`
	Documents []*document.Document `json:"-"`
	Duration  time.Duration        `json:"duration"`
}

// AddResourceError records a failure that is not tied to a record, such as
// an unreadable source file. Counts are not affected.
func (b *BatchResult) AddResourceError(err error) {
	b.Errors = append(b.Errors, err.Error())
}

// Merge folds other into b, keeping document and error order
func (b *BatchResult) Merge(other *BatchResult) {
	if other == nil {
		return
	}
	b.Total += other.Total
	b.Converted += other.Converted
	b.Failed += other.Failed
	b.Errors = append(b.Errors, other.Errors...)
	b.Documents = append(b.Documents, other.Documents...)
	b.Duration += other.Duration
}

// Summary returns the "N of M converted" line
func (b *BatchResult) Summary() string {
	return fmt.Sprintf("%s: %d of %d converted", b.Category, b.Converted, b.Total)
}
