package main_test

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/fwojciec/gridiron"
	main "github.com/fwojciec/gridiron/cmd/gridiron"
	"github.com/fwojciec/gridiron/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunsCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("lists runs with documents", func(t *testing.T) {
		t.Parallel()

		var gotFilter gridiron.RunFilter
		runs := &mock.RunService{
			FindRunsFn: func(_ context.Context, filter gridiron.RunFilter) ([]*gridiron.Run, error) {
				gotFilter = filter
				return []*gridiron.Run{{
					ID:      "run-2",
					Updated: time.Date(2026, 9, 8, 6, 0, 0, 0, time.UTC),
					Teams:   210,
					Records: 1890,
					Documents: []*gridiron.RunDocument{
						{Class: "A", URL: "https://example.com/A.html", Hash: "00ff00ff00ff00ff", Bytes: 2048, Teams: 30, Records: 270},
					},
				}}, nil
			},
		}
		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{Ctx: context.Background(), Stdout: stdout, Stderr: &bytes.Buffer{}, Runs: runs}

		err := (&main.RunsCmd{Limit: 5, Documents: true}).Run(deps)

		require.NoError(t, err)
		assert.Equal(t, 5, gotFilter.Limit)
		assert.Contains(t, stdout.String(), "run-2  2026-09-08T06:00:00Z  210 teams  1890 records")
		assert.Contains(t, stdout.String(), "2.0 KB")
		assert.Contains(t, stdout.String(), "00ff00ff00ff00ff")
	})

	t.Run("shows helpful message when no runs exist", func(t *testing.T) {
		t.Parallel()

		runs := &mock.RunService{
			FindRunsFn: func(_ context.Context, _ gridiron.RunFilter) ([]*gridiron.Run, error) {
				return nil, nil
			},
		}
		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{Ctx: context.Background(), Stdout: stdout, Stderr: &bytes.Buffer{}, Runs: runs}

		err := (&main.RunsCmd{}).Run(deps)

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "No runs recorded")
	})

	t.Run("returns storage errors", func(t *testing.T) {
		t.Parallel()

		runs := &mock.RunService{
			FindRunsFn: func(_ context.Context, _ gridiron.RunFilter) ([]*gridiron.Run, error) {
				return nil, errors.New("disk I/O error")
			},
		}
		stderr := &bytes.Buffer{}
		deps := &main.Dependencies{Ctx: context.Background(), Stdout: &bytes.Buffer{}, Stderr: stderr, Runs: runs}

		err := (&main.RunsCmd{}).Run(deps)

		require.Error(t, err)
		assert.Contains(t, stderr.String(), "error:")
	})
}
