// Package fs provides file-based artifact output and local document input.
package fs

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/fwojciec/gridiron"
)

// Stdout is the path that selects standard output instead of a file.
const Stdout = "-"

// Ensure Writer implements gridiron.ArtifactWriter at compile time.
var _ gridiron.ArtifactWriter = (*Writer)(nil)

// Writer writes the artifact as JSON to a single file.
// The file is replaced atomically: content goes to a temporary file in the
// same directory which is then renamed over the target.
type Writer struct {
	path   string
	indent bool
	stdout io.Writer
}

// WriterOption configures a Writer.
type WriterOption func(*Writer)

// WithIndent makes the writer emit indented JSON instead of the compact form.
func WithIndent(indent bool) WriterOption {
	return func(w *Writer) {
		w.indent = indent
	}
}

// WithStdout sets the destination used when the path is Stdout.
func WithStdout(out io.Writer) WriterOption {
	return func(w *Writer) {
		w.stdout = out
	}
}

// NewWriter creates a Writer targeting path.
func NewWriter(path string, opts ...WriterOption) *Writer {
	w := &Writer{path: path, stdout: os.Stdout}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Path returns the target path.
func (w *Writer) Path() string {
	return w.path
}

// WriteArtifact encodes a and writes it to the target.
func (w *Writer) WriteArtifact(ctx context.Context, a *gridiron.Artifact) error {
	if a == nil {
		return gridiron.Errorf(gridiron.EINVALID, "artifact required")
	}
	if w.path == "" {
		return gridiron.Errorf(gridiron.EINVALID, "output path required")
	}

	data, err := gridiron.EncodeArtifact(a, w.indent)
	if err != nil {
		return err
	}

	if w.path == Stdout {
		_, err := w.stdout.Write(data)
		return err
	}

	return writeAtomic(w.path, data)
}

func writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return err
	}
	if err := os.Chmod(tmpPath, 0644); err != nil {
		os.Remove(tmpPath)
		return err
	}

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return err
	}
	return nil
}
