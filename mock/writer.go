package mock

import (
	"context"

	"github.com/fwojciec/gridiron"
)

var _ gridiron.ArtifactWriter = (*ArtifactWriter)(nil)

// ArtifactWriter is a mock implementation of gridiron.ArtifactWriter.
type ArtifactWriter struct {
	WriteArtifactFn func(ctx context.Context, a *gridiron.Artifact) error
}

func (w *ArtifactWriter) WriteArtifact(ctx context.Context, a *gridiron.Artifact) error {
	return w.WriteArtifactFn(ctx, a)
}

var _ gridiron.ArtifactValidator = (*ArtifactValidator)(nil)

// ArtifactValidator is a mock implementation of gridiron.ArtifactValidator.
type ArtifactValidator struct {
	ValidateArtifactFn func(a *gridiron.Artifact) error
}

func (v *ArtifactValidator) ValidateArtifact(a *gridiron.Artifact) error {
	return v.ValidateArtifactFn(a)
}
