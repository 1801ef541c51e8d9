// Package scrape fetches classification documents, parses them, and merges
// the results into a single team index.
//
// Fetch-and-parse units run concurrently. Their results are slotted by
// source position and merged by one fold in source order, so concurrency
// never changes the order of a team's records.
package scrape

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/fwojciec/gridiron"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency is the number of documents fetched at once when
// Scraper.Concurrency is not set.
const DefaultConcurrency = 4

// Scraper orchestrates fetching and parsing of classification documents.
type Scraper struct {
	Fetcher     gridiron.Fetcher
	Parser      gridiron.Parser
	Limiter     Limiter
	Logger      *slog.Logger
	Concurrency int
	RetryDelays []time.Duration
}

// DocumentResult holds the outcome of one source.
type DocumentResult struct {
	Source gridiron.Source
	Hash   string
	Bytes  int
	Index  gridiron.TeamIndex
}

// Result holds the outcome of a scrape.
type Result struct {
	// Index is the merged index of all documents in source order.
	Index gridiron.TeamIndex

	// Documents holds one entry per source, in source order.
	Documents []*DocumentResult
}

// ProgressEvent reports progress during a scrape.
type ProgressEvent struct {
	Type      ProgressType
	Completed int
	Total     int
	Source    gridiron.Source
	Error     error
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressCompleted
	ProgressFailed
	ProgressFinished
)

// ProgressFunc is a callback for reporting scrape progress. It is never
// called concurrently.
type ProgressFunc func(event ProgressEvent)

type unitResult struct {
	position int
	doc      *DocumentResult
	err      error
}

// Run fetches and parses every source and merges the per-document indexes
// in source order. A source that cannot be fetched after retries fails the
// whole run; a document that yields no teams simply contributes nothing.
func (s *Scraper) Run(ctx context.Context, sources []gridiron.Source, progress ProgressFunc) (*Result, error) {
	if len(sources) == 0 {
		return nil, gridiron.Errorf(gridiron.EINVALID, "at least one source required")
	}

	concurrency := s.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	total := len(sources)
	if progress != nil {
		progress(ProgressEvent{Type: ProgressStarted, Total: total})
	}

	resultCh := make(chan unitResult, total)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	var runErr error
	go func() {
		for i, src := range sources {
			g.Go(func() error {
				doc, err := s.process(gctx, src)
				resultCh <- unitResult{position: i, doc: doc, err: err}
				return err
			})
		}
		runErr = g.Wait()
		close(resultCh)
	}()

	docs := make([]*DocumentResult, total)
	var completed int
	for r := range resultCh {
		completed++
		if r.err != nil {
			if progress != nil {
				progress(ProgressEvent{
					Type:      ProgressFailed,
					Completed: completed,
					Total:     total,
					Source:    sources[r.position],
					Error:     r.err,
				})
			}
			continue
		}

		docs[r.position] = r.doc
		if progress != nil {
			progress(ProgressEvent{
				Type:      ProgressCompleted,
				Completed: completed,
				Total:     total,
				Source:    sources[r.position],
			})
		}
	}

	if runErr != nil {
		return nil, runErr
	}

	indexes := make([]gridiron.TeamIndex, 0, total)
	for _, d := range docs {
		indexes = append(indexes, d.Index)
	}

	if progress != nil {
		progress(ProgressEvent{Type: ProgressFinished, Completed: completed, Total: total})
	}

	return &Result{
		Index:     gridiron.Merge(indexes...),
		Documents: docs,
	}, nil
}

// process fetches and parses a single source.
func (s *Scraper) process(ctx context.Context, src gridiron.Source) (*DocumentResult, error) {
	if s.Limiter != nil {
		host, err := hostOf(src.URL)
		if err != nil {
			return nil, err
		}
		if err := s.Limiter.Wait(ctx, host); err != nil {
			return nil, err
		}
	}

	delays := s.RetryDelays
	if delays == nil {
		delays = DefaultRetryDelays()
	}

	body, err := FetchWithRetry(ctx, src.URL, s.Fetcher.Fetch, delays, s.Logger)
	if err != nil {
		return nil, fmt.Errorf("fetch class %s: %w", src.Class, err)
	}

	doc := &gridiron.RawDocument{Class: src.Class, URL: src.URL, Body: body}
	index, err := s.Parser.Parse(doc)
	if err != nil {
		return nil, fmt.Errorf("parse class %s: %w", src.Class, err)
	}

	return &DocumentResult{
		Source: src,
		Hash:   ComputeHash(body),
		Bytes:  len(body),
		Index:  index,
	}, nil
}

// NewRun summarizes a scrape result as a run generated at updated.
func NewRun(result *Result, updated time.Time) *gridiron.Run {
	run := &gridiron.Run{
		Updated: updated.UTC().Truncate(time.Second),
		Teams:   len(result.Index),
		Records: result.Index.Len(),
	}
	for _, d := range result.Documents {
		run.Documents = append(run.Documents, &gridiron.RunDocument{
			Class:   d.Source.Class,
			URL:     d.Source.URL,
			Hash:    d.Hash,
			Bytes:   d.Bytes,
			Teams:   len(d.Index),
			Records: d.Index.Len(),
		})
	}
	return run
}
