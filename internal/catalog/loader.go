package catalog

import (
	"context"
	"fmt"
	"os"
	"time"

	"resty.dev/v3"
)

// Loader fetches the raw catalog once. Implementations must honour ctx.
type Loader interface {
	Source() string
	Fetch(ctx context.Context) ([]Product, error)
}

type HTTPLoader struct {
	url    string
	client *resty.Client
}

// NewHTTPLoader fetches url with cache-bypass headers so a stale CDN copy is never served.
func NewHTTPLoader(url string, timeout time.Duration) *HTTPLoader {
	client := resty.New().
		SetTimeout(timeout).
		SetRetryCount(2).
		SetRetryWaitTime(500*time.Millisecond).
		SetRetryMaxWaitTime(2*time.Second).
		SetHeader("Accept", "application/json").
		SetHeader("Cache-Control", "no-store").
		SetHeader("Pragma", "no-cache")

	return &HTTPLoader{url: url, client: client}
}

func (l *HTTPLoader) Source() string {
	return l.url
}

func (l *HTTPLoader) Fetch(ctx context.Context) ([]Product, error) {
	resp, err := l.client.R().
		SetContext(ctx).
		Get(l.url)
	if err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("request cancelled: %w", ctx.Err())
		}
		return nil, fmt.Errorf("failed to fetch catalog: %w", err)
	}

	if resp.IsError() {
		return nil, fmt.Errorf("%w: %d %s", ErrUnexpectedHTTP, resp.StatusCode(), resp.Status())
	}

	return Decode([]byte(resp.String()))
}

type FileLoader struct {
	path string
}

func NewFileLoader(path string) *FileLoader {
	return &FileLoader{path: path}
}

func (l *FileLoader) Source() string {
	return l.path
}

func (l *FileLoader) Fetch(ctx context.Context) ([]Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	raw, err := os.ReadFile(l.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}
	return Decode(raw)
}

// StaticLoader serves a fixed product list; useful for demos and tests.
type StaticLoader []Product

func (StaticLoader) Source() string {
	return "static"
}

func (s StaticLoader) Fetch(ctx context.Context) ([]Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return append([]Product(nil), s...), nil
}
