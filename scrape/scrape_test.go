package scrape_test

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/fwojciec/gridiron"
	"github.com/fwojciec/gridiron/goquery"
	"github.com/fwojciec/gridiron/mock"
	"github.com/fwojciec/gridiron/scrape"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// page returns a classification document with one Wahoo table holding the
// given opponents.
func page(opponents ...string) string {
	var b strings.Builder
	b.WriteString(`<table><caption>Wahoo (0-0)</caption><tr><th>Date</th><th>Opponent</th></tr>`)
	for _, o := range opponents {
		b.WriteString(`<tr><td>9/1</td><td>` + o + `</td></tr>`)
	}
	b.WriteString(`<tr><td colspan="2">Total Points: 0</td></tr></table>`)
	return b.String()
}

func sources(classes ...string) []gridiron.Source {
	var out []gridiron.Source
	for _, c := range classes {
		out = append(out, gridiron.Source{Class: c, URL: "https://example.com/" + c + ".html"})
	}
	return out
}

func TestScraper_Run(t *testing.T) {
	t.Parallel()

	t.Run("merges documents in source order", func(t *testing.T) {
		t.Parallel()

		bFetched := make(chan struct{})
		s := &scrape.Scraper{
			Fetcher: &mock.Fetcher{
				FetchFn: func(ctx context.Context, url string) (string, error) {
					if strings.HasSuffix(url, "/A.html") {
						// Finish after B so completion order differs from source order.
						<-bFetched
						return page("Alpha1", "Alpha2"), nil
					}
					defer close(bFetched)
					return page("Bravo1"), nil
				},
			},
			Parser:      goquery.NewParser(),
			Concurrency: 2,
			RetryDelays: []time.Duration{},
		}

		result, err := s.Run(context.Background(), sources("A", "B"), nil)

		require.NoError(t, err)
		recs := result.Index["wahoo"]
		require.Len(t, recs, 3)
		assert.Equal(t, "Alpha1", recs[0].Get("Opponent"))
		assert.Equal(t, "Alpha2", recs[1].Get("Opponent"))
		assert.Equal(t, "Bravo1", recs[2].Get("Opponent"))
		assert.Equal(t, "A", recs[0].Class)
		assert.Equal(t, "B", recs[2].Class)
	})

	t.Run("reports per-document results in source order", func(t *testing.T) {
		t.Parallel()

		s := &scrape.Scraper{
			Fetcher: &mock.Fetcher{
				FetchFn: func(ctx context.Context, url string) (string, error) {
					if strings.HasSuffix(url, "/C1.html") {
						return "<p>nothing here</p>", nil
					}
					return page("Elkhorn"), nil
				},
			},
			Parser:      goquery.NewParser(),
			RetryDelays: []time.Duration{},
		}

		result, err := s.Run(context.Background(), sources("A", "C1"), nil)

		require.NoError(t, err)
		require.Len(t, result.Documents, 2)
		assert.Equal(t, "A", result.Documents[0].Source.Class)
		assert.Equal(t, 1, result.Documents[0].Index.Len())
		assert.Equal(t, scrape.ComputeHash(page("Elkhorn")), result.Documents[0].Hash)
		assert.Equal(t, len(page("Elkhorn")), result.Documents[0].Bytes)
		assert.Equal(t, "C1", result.Documents[1].Source.Class)
		assert.Empty(t, result.Documents[1].Index)
	})

	t.Run("retries failed fetches", func(t *testing.T) {
		t.Parallel()

		var mu sync.Mutex
		attempts := 0
		s := &scrape.Scraper{
			Fetcher: &mock.Fetcher{
				FetchFn: func(ctx context.Context, url string) (string, error) {
					mu.Lock()
					defer mu.Unlock()
					attempts++
					if attempts < 3 {
						return "", errors.New("connection reset")
					}
					return page("Elkhorn"), nil
				},
			},
			Parser:      goquery.NewParser(),
			RetryDelays: []time.Duration{0, 0, 0},
		}

		result, err := s.Run(context.Background(), sources("A"), nil)

		require.NoError(t, err)
		assert.Equal(t, 3, attempts)
		assert.Equal(t, 1, result.Index.Len())
	})

	t.Run("fails the run when a source cannot be fetched", func(t *testing.T) {
		t.Parallel()

		s := &scrape.Scraper{
			Fetcher: &mock.Fetcher{
				FetchFn: func(ctx context.Context, url string) (string, error) {
					if strings.HasSuffix(url, "/B.html") {
						return "", errors.New("HTTP 503")
					}
					return page("Elkhorn"), nil
				},
			},
			Parser:      goquery.NewParser(),
			RetryDelays: []time.Duration{0},
		}

		var failed []string
		result, err := s.Run(context.Background(), sources("A", "B"), func(e scrape.ProgressEvent) {
			if e.Type == scrape.ProgressFailed {
				failed = append(failed, e.Source.Class)
			}
		})

		require.Error(t, err)
		assert.Nil(t, result)
		assert.Contains(t, err.Error(), "fetch class B")
		assert.Contains(t, failed, "B")
	})

	t.Run("fails the run when parsing fails", func(t *testing.T) {
		t.Parallel()

		s := &scrape.Scraper{
			Fetcher: &mock.Fetcher{
				FetchFn: func(ctx context.Context, url string) (string, error) {
					return "<html></html>", nil
				},
			},
			Parser: &mock.Parser{
				ParseFn: func(doc *gridiron.RawDocument) (gridiron.TeamIndex, error) {
					return nil, gridiron.Errorf(gridiron.EINVALID, "bad document")
				},
			},
			RetryDelays: []time.Duration{},
		}

		_, err := s.Run(context.Background(), sources("A"), nil)

		require.Error(t, err)
		assert.Equal(t, gridiron.EINVALID, gridiron.ErrorCode(err))
	})

	t.Run("passes classification and URL to the parser", func(t *testing.T) {
		t.Parallel()

		var got *gridiron.RawDocument
		s := &scrape.Scraper{
			Fetcher: &mock.Fetcher{
				FetchFn: func(ctx context.Context, url string) (string, error) {
					return "<html></html>", nil
				},
			},
			Parser: &mock.Parser{
				ParseFn: func(doc *gridiron.RawDocument) (gridiron.TeamIndex, error) {
					got = doc
					return gridiron.TeamIndex{}, nil
				},
			},
			RetryDelays: []time.Duration{},
		}

		_, err := s.Run(context.Background(), sources("D6"), nil)

		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, "D6", got.Class)
		assert.Equal(t, "https://example.com/D6.html", got.URL)
		assert.Equal(t, "<html></html>", got.Body)
	})

	t.Run("waits on the limiter per host", func(t *testing.T) {
		t.Parallel()

		var mu sync.Mutex
		var hosts []string
		limiter := limiterFunc(func(ctx context.Context, host string) error {
			mu.Lock()
			defer mu.Unlock()
			hosts = append(hosts, host)
			return nil
		})
		s := &scrape.Scraper{
			Fetcher: &mock.Fetcher{
				FetchFn: func(ctx context.Context, url string) (string, error) {
					return page(), nil
				},
			},
			Parser:      goquery.NewParser(),
			Limiter:     limiter,
			RetryDelays: []time.Duration{},
		}

		_, err := s.Run(context.Background(), sources("A", "B"), nil)

		require.NoError(t, err)
		assert.Equal(t, []string{"example.com", "example.com"}, hosts)
	})

	t.Run("emits started, completed and finished events", func(t *testing.T) {
		t.Parallel()

		s := &scrape.Scraper{
			Fetcher: &mock.Fetcher{
				FetchFn: func(ctx context.Context, url string) (string, error) {
					return page("Elkhorn"), nil
				},
			},
			Parser:      goquery.NewParser(),
			RetryDelays: []time.Duration{},
		}

		var events []scrape.ProgressType
		_, err := s.Run(context.Background(), sources("A", "B"), func(e scrape.ProgressEvent) {
			events = append(events, e.Type)
		})

		require.NoError(t, err)
		assert.Equal(t, []scrape.ProgressType{
			scrape.ProgressStarted,
			scrape.ProgressCompleted,
			scrape.ProgressCompleted,
			scrape.ProgressFinished,
		}, events)
	})

	t.Run("rejects empty source list", func(t *testing.T) {
		t.Parallel()

		s := &scrape.Scraper{}

		_, err := s.Run(context.Background(), nil, nil)

		assert.Equal(t, gridiron.EINVALID, gridiron.ErrorCode(err))
	})
}

func TestNewRun(t *testing.T) {
	t.Parallel()

	result := &scrape.Result{
		Index: gridiron.TeamIndex{
			"wahoo": {{Key: "wahoo"}, {Key: "wahoo"}},
			"ord":   {{Key: "ord"}},
		},
		Documents: []*scrape.DocumentResult{
			{
				Source: gridiron.Source{Class: "B", URL: "https://example.com/B.html"},
				Hash:   "abc",
				Bytes:  42,
				Index:  gridiron.TeamIndex{"wahoo": {{Key: "wahoo"}, {Key: "wahoo"}}},
			},
			{
				Source: gridiron.Source{Class: "C1", URL: "https://example.com/C1.html"},
				Index:  gridiron.TeamIndex{"ord": {{Key: "ord"}}},
			},
		},
	}

	run := scrape.NewRun(result, time.Date(2026, 9, 1, 12, 0, 0, 500, time.UTC))

	assert.Equal(t, time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC), run.Updated)
	assert.Equal(t, 2, run.Teams)
	assert.Equal(t, 3, run.Records)
	require.Len(t, run.Documents, 2)
	assert.Equal(t, &gridiron.RunDocument{
		Class: "B", URL: "https://example.com/B.html", Hash: "abc", Bytes: 42, Teams: 1, Records: 2,
	}, run.Documents[0])
	assert.Equal(t, "C1", run.Documents[1].Class)
}

type limiterFunc func(ctx context.Context, host string) error

func (f limiterFunc) Wait(ctx context.Context, host string) error { return f(ctx, host) }
