// Package source reads raw content files and exposes their records to the
// conversion pipeline.
package source

//go:generate mockgen -destination=mock/mock_reader.go -package=sourcemock github.com/mixtli/dungeon-lab-sub000/internal/source Reader

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"io/fs"
	"log/slog"
	"time"

	"github.com/mixtli/dungeon-lab-sub000/internal/errors"
)

// Reader loads a named raw data file
type Reader interface {
	// ReadSourceData returns the decoded JSON content of filename
	// Returns errors.NotFound when the file does not exist
	// Returns errors.InvalidArgument when the content is not valid JSON
	// Returns errors.DeadlineExceeded when the read outlives ctx
	ReadSourceData(ctx context.Context, filename string) (any, error)
}

// File names a source file and the top-level key holding its records
type File struct {
	Path string
	Key  string
}

// FSConfig contains configuration for the file system reader
type FSConfig struct {
	// FS is the tree the files are read from, usually os.DirFS or an embed.FS
	FS fs.FS
	// Timeout bounds a single file read (optional, defaults to 30 seconds)
	Timeout time.Duration
}

// Validate validates the FSConfig and sets defaults if not provided.
func (cfg *FSConfig) Validate() error {
	if cfg == nil {
		return errors.InvalidArgument("config cannot be nil")
	}
	if cfg.FS == nil {
		return errors.InvalidArgument("file system cannot be nil")
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}
	return nil
}

type fsReader struct {
	fsys    fs.FS
	timeout time.Duration
}

// NewFS creates a Reader over a file system tree
func NewFS(cfg *FSConfig) (Reader, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &fsReader{
		fsys:    cfg.FS,
		timeout: cfg.Timeout,
	}, nil
}

type readResult struct {
	data []byte
	err  error
}

func (r *fsReader) ReadSourceData(ctx context.Context, filename string) (any, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	done := make(chan readResult, 1)
	go func() {
		data, err := fs.ReadFile(r.fsys, filename)
		done <- readResult{data: data, err: err}
	}()

	var res readResult
	select {
	case <-ctx.Done():
		return nil, errors.WrapWithCode(ctx.Err(), errors.CodeDeadlineExceeded, "read "+filename).
			WithMeta("file", filename)
	case res = <-done:
	}

	if res.err != nil {
		if stderrors.Is(res.err, fs.ErrNotExist) {
			return nil, errors.NotFoundf("source file %s not found", filename).WithMeta("file", filename)
		}
		return nil, errors.Wrapf(res.err, "failed to read source file %s", filename).WithMeta("file", filename)
	}

	var out any
	if err := json.Unmarshal(res.data, &out); err != nil {
		return nil, errors.WrapWithCodef(err, errors.CodeInvalidArgument, "source file %s is not valid JSON", filename).
			WithMeta("file", filename)
	}

	slog.Debug("Read source file", "file", filename, "bytes", len(res.data))
	return out, nil
}
