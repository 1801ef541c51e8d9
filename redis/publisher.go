// Package redis publishes artifacts to Redis for consumers that read the
// index without touching the artifact file.
package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/fwojciec/gridiron"
	"github.com/redis/go-redis/v9"
)

// DefaultPrefix is prepended to every key written by a Publisher.
const DefaultPrefix = "gridiron:"

const (
	artifactKey = "artifact"
	teamsKey    = "by_team"
	runsKey     = "runs"
)

// Ensure Publisher implements gridiron.ArtifactWriter at compile time.
var _ gridiron.ArtifactWriter = (*Publisher)(nil)

// Publisher writes an artifact to Redis.
//
// Layout, relative to the prefix:
//
//	artifact  string  the complete artifact JSON
//	by_team   hash    team key -> JSON array of that team's records
//	runs      stream  one entry per publish with updated, teams and records
type Publisher struct {
	client *redis.Client
	prefix string
	maxLen int64
}

// PublisherOption configures a Publisher.
type PublisherOption func(*Publisher)

// WithPrefix sets the key prefix.
func WithPrefix(prefix string) PublisherOption {
	return func(p *Publisher) {
		p.prefix = prefix
	}
}

// WithStreamMaxLen caps the run stream at approximately n entries.
func WithStreamMaxLen(n int64) PublisherOption {
	return func(p *Publisher) {
		p.maxLen = n
	}
}

// NewPublisher returns a Publisher using client.
func NewPublisher(client *redis.Client, opts ...PublisherOption) *Publisher {
	p := &Publisher{client: client, prefix: DefaultPrefix, maxLen: 100}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// NewClient returns a client for a redis:// URL.
func NewClient(rawURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(rawURL)
	if err != nil {
		return nil, gridiron.Errorf(gridiron.EINVALID, "invalid redis URL: %v", err)
	}
	return redis.NewClient(opts), nil
}

// Key returns the full key for name.
func (p *Publisher) Key(name string) string {
	return p.prefix + name
}

// WriteArtifact replaces the published artifact and team hash in a single
// transaction and appends a run entry to the stream.
func (p *Publisher) WriteArtifact(ctx context.Context, a *gridiron.Artifact) error {
	if a == nil {
		return gridiron.Errorf(gridiron.EINVALID, "artifact required")
	}

	body, err := gridiron.EncodeArtifact(a, false)
	if err != nil {
		return err
	}

	teams := make(map[string]any, len(a.ByTeam))
	for key, recs := range a.ByTeam {
		data, err := json.Marshal(recs)
		if err != nil {
			return fmt.Errorf("marshal team %s: %w", key, err)
		}
		teams[key] = string(data)
	}

	_, err = p.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, p.Key(artifactKey), string(body), 0)
		pipe.Del(ctx, p.Key(teamsKey))
		if len(teams) > 0 {
			pipe.HSet(ctx, p.Key(teamsKey), teams)
		}
		pipe.XAdd(ctx, &redis.XAddArgs{
			Stream: p.Key(runsKey),
			MaxLen: p.maxLen,
			Approx: true,
			Values: map[string]any{
				"updated": a.Updated,
				"teams":   len(a.ByTeam),
				"records": a.ByTeam.Len(),
			},
		})
		return nil
	})
	if err != nil {
		return fmt.Errorf("publish artifact: %w", err)
	}
	return nil
}

// FindTeam returns the published records for a team key.
// Returns ENOTFOUND if the key has not been published.
func (p *Publisher) FindTeam(ctx context.Context, key string) ([]*gridiron.ScheduleRecord, error) {
	data, err := p.client.HGet(ctx, p.Key(teamsKey), key).Result()
	if err == redis.Nil {
		return nil, gridiron.Errorf(gridiron.ENOTFOUND, "team %q not published", key)
	} else if err != nil {
		return nil, fmt.Errorf("hget team: %w", err)
	}

	var recs []*gridiron.ScheduleRecord
	if err := json.Unmarshal([]byte(data), &recs); err != nil {
		return nil, fmt.Errorf("unmarshal team: %w", err)
	}
	return recs, nil
}

// LastUpdated returns the updated time of the most recent publish.
// Returns ENOTFOUND if nothing has been published.
func (p *Publisher) LastUpdated(ctx context.Context) (time.Time, error) {
	entries, err := p.client.XRevRangeN(ctx, p.Key(runsKey), "+", "-", 1).Result()
	if err != nil {
		return time.Time{}, fmt.Errorf("xrevrange: %w", err)
	}
	if len(entries) == 0 {
		return time.Time{}, gridiron.Errorf(gridiron.ENOTFOUND, "nothing published")
	}

	raw, _ := entries[0].Values["updated"].(string)
	updated, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse updated: %w", err)
	}
	return time.Unix(updated, 0), nil
}
