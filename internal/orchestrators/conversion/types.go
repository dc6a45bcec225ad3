package conversion

import (
	"github.com/mixtli/dungeon-lab-sub000/internal/pipeline"
)

// ConvertCategoryInput defines the request for converting one category
type ConvertCategoryInput struct {
	Category string
}

// ConvertCategoryOutput defines the response for converting one category
type ConvertCategoryOutput struct {
	Result *pipeline.BatchResult
}

// ConvertAllInput defines the request for converting several categories.
// An empty list converts every registered category.
type ConvertAllInput struct {
	Categories []string
}

// ConvertAllOutput holds one result per requested category, in request
// order
type ConvertAllOutput struct {
	Results []*pipeline.BatchResult
}

// Totals sums the counts of every result
func (o *ConvertAllOutput) Totals() (total, converted, failed int) {
	for _, r := range o.Results {
		total += r.Total
		converted += r.Converted
		failed += r.Failed
	}
	return total, converted, failed
}
