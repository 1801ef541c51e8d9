package gridiron

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"
)

// Artifact is the published output of a run.
type Artifact struct {
	// Updated is the generation time in seconds since the Unix epoch.
	Updated int64 `json:"updated"`

	// ByTeam holds every team's records keyed by normalized team key.
	ByTeam TeamIndex `json:"by_team"`
}

// NewArtifact wraps an index generated at now.
func NewArtifact(index TeamIndex, now time.Time) *Artifact {
	if index == nil {
		index = make(TeamIndex)
	}
	return &Artifact{
		Updated: now.Unix(),
		ByTeam:  index,
	}
}

// EncodeArtifact returns the JSON form of a followed by a newline.
// Non-ASCII text is kept as UTF-8 and HTML characters are not escaped.
func EncodeArtifact(a *Artifact, indent bool) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if indent {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(a); err != nil {
		return nil, fmt.Errorf("encode artifact: %w", err)
	}
	return buf.Bytes(), nil
}

// ArtifactWriter publishes an artifact to a destination.
type ArtifactWriter interface {
	WriteArtifact(ctx context.Context, a *Artifact) error
}

// ArtifactValidator checks an artifact against the published contract.
type ArtifactValidator interface {
	ValidateArtifact(a *Artifact) error
}
