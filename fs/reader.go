package fs

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"strings"

	"github.com/fwojciec/gridiron"
)

// Ensure Fetcher implements gridiron.Fetcher at compile time.
var _ gridiron.Fetcher = (*Fetcher)(nil)

// Fetcher reads documents from the local filesystem. It lets saved
// classification pages go through the same pipeline as published ones.
type Fetcher struct{}

// NewFetcher creates a new Fetcher.
func NewFetcher() *Fetcher {
	return &Fetcher{}
}

// Fetch reads the file at location. A "file://" prefix is accepted.
func (f *Fetcher) Fetch(ctx context.Context, location string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	path := strings.TrimPrefix(location, "file://")
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", gridiron.Errorf(gridiron.ENOTFOUND, "document %q not found", path)
	} else if err != nil {
		return "", err
	}
	return string(data), nil
}

// Close is a no-op.
func (f *Fetcher) Close() error {
	return nil
}
