package dfetch

import (
	"context"
	"fmt"

	"github.com/pkg/errors"
)

type (
	// Source hands out upstream files by their repository-relative path.
	Source interface {
		Fetch(ctx context.Context, path string) ([]byte, error)
	}

	Request struct {
		Path string
		// Optional requests tolerate ErrNotFound.
		Optional bool
	}

	Options struct {
		// OneByOne fetches strictly sequentially instead of in a parallel group.
		OneByOne bool
		// Limit bounds the parallel group; zero or less means unbounded.
		Limit int
	}

	FetchError struct {
		URL    string
		Status int
	}
)

var ErrNotFound = errors.New("upstream file not found")

func (r FetchError) Error() string {
	return fmt.Sprintf("fetching %s: unexpected status %d", r.URL, r.Status)
}
