package dfetch

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/pkg/errors"
)

type HTTPSource struct {
	BaseURL    string
	Client     *http.Client
	Retries    uint
	RetryDelay time.Duration
	Logger     *slog.Logger
}

func NewHTTPSource(baseURL string, timeout time.Duration, retries uint) *HTTPSource {
	return &HTTPSource{
		BaseURL:    baseURL,
		Client:     &http.Client{Timeout: timeout},
		Retries:    retries,
		RetryDelay: 500 * time.Millisecond,
	}
}

func (s *HTTPSource) Fetch(ctx context.Context, path string) ([]byte, error) {
	url := s.BaseURL + path
	s.logger().Info("fetching", "url", url)

	policy := backoff.NewExponentialBackOff()
	if s.RetryDelay > 0 {
		policy.InitialInterval = s.RetryDelay
	}
	body, err := backoff.Retry(
		ctx,
		func() ([]byte, error) {
			return s.get(ctx, url)
		},
		backoff.WithBackOff(policy),
		backoff.WithMaxTries(s.Retries+1),
	)
	if err != nil {
		return nil, errors.Wrap(err, "HTTPSource.Fetch error")
	}
	return body, nil
}

func (s *HTTPSource) get(ctx context.Context, url string) ([]byte, error) {
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, backoff.Permanent(err)
	}
	response, err := s.client().Do(request)
	if err != nil {
		return nil, err
	}
	defer response.Body.Close()

	switch {
	case response.StatusCode == http.StatusNotFound:
		return nil, backoff.Permanent(errors.WithStack(ErrNotFound))
	case response.StatusCode < 200 || response.StatusCode > 299:
		return nil, FetchError{URL: url, Status: response.StatusCode}
	}
	return io.ReadAll(response.Body)
}

func (s *HTTPSource) client() *http.Client {
	if s.Client == nil {
		return http.DefaultClient
	}
	return s.Client
}

func (s *HTTPSource) logger() *slog.Logger {
	if s.Logger == nil {
		return slog.Default()
	}
	return s.Logger
}
