// Package mocks provides mock expectation helpers for common testing patterns
package mocks

import (
	"context"

	"go.uber.org/mock/gomock"

	"github.com/mixtli/dungeon-lab-sub000/internal/errors"
	sourcemock "github.com/mixtli/dungeon-lab-sub000/internal/source/mock"
)

// ExpectSourceFiles serves files by name from the mock reader. Any other
// file name yields errors.NotFound, the way a missing file does on disk.
func ExpectSourceFiles(mockReader *sourcemock.MockReader, files map[string]any) {
	mockReader.EXPECT().
		ReadSourceData(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, filename string) (any, error) {
			data, ok := files[filename]
			if !ok {
				return nil, errors.NotFoundf("source file %s not found", filename)
			}
			return data, nil
		}).
		AnyTimes()
}
