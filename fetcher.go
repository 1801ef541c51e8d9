package gridiron

import "context"

// Fetcher retrieves HTML from URLs.
type Fetcher interface {
	// Fetch returns the complete HTML body found at url.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (html string, err error)

	// Close releases resources held by the fetcher.
	Close() error
}
