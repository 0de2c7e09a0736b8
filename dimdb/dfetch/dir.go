package dfetch

import (
	"context"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

// DirSource reads files from a local mirror laid out like the upstream repository.
type DirSource struct {
	Root string
}

func (s DirSource) Fetch(_ context.Context, path string) ([]byte, error) {
	body, err := os.ReadFile(filepath.Join(s.Root, filepath.FromSlash(path)))
	if errors.Is(err, os.ErrNotExist) {
		return nil, errors.Wrap(ErrNotFound, path)
	}
	if err != nil {
		return nil, errors.Wrap(err, "DirSource.Fetch error")
	}
	return body, nil
}

// MapSource serves in-memory files, e.g. fixtures or pre-fetched bundles.
type MapSource map[string][]byte

func (s MapSource) Fetch(ctx context.Context, path string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	body, ok := s[path]
	if !ok {
		return nil, errors.Wrap(ErrNotFound, path)
	}
	return body, nil
}
