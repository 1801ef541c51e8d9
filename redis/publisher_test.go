package redis_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/fwojciec/gridiron"
	gredis "github.com/fwojciec/gridiron/redis"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setup(t *testing.T) (*redis.Client, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })
	return rdb, mr
}

func testArtifact(updated int64) *gridiron.Artifact {
	index := gridiron.TeamIndex{}
	index.Add(&gridiron.ScheduleRecord{
		Team: "Wahoo", Key: "wahoo", Caption: "Wahoo (5-1)", Class: "C1",
		Fields: map[string]string{"Date": "8/29", "Opponent": "Ord"},
	})
	index.Add(&gridiron.ScheduleRecord{
		Team: "Wahoo", Key: "wahoo", Caption: "Wahoo (5-1)", Class: "C1",
		Fields: map[string]string{"Date": "9/5", "Opponent": "Aquinas"},
	})
	index.Add(&gridiron.ScheduleRecord{
		Team: "Ainsworth", Key: "ainsworth", Caption: "Ainsworth", Class: "D6",
		Fields: map[string]string{"Date": "8/29", "Opponent": "Bassett"},
	})
	return gridiron.NewArtifact(index, time.Unix(updated, 0))
}

func TestPublisher_WriteArtifact(t *testing.T) {
	t.Parallel()

	t.Run("stores the artifact JSON", func(t *testing.T) {
		t.Parallel()

		rdb, mr := setup(t)
		p := gredis.NewPublisher(rdb)

		err := p.WriteArtifact(context.Background(), testArtifact(1725000000))

		require.NoError(t, err)
		body, err := mr.Get("gridiron:artifact")
		require.NoError(t, err)
		var got gridiron.Artifact
		require.NoError(t, json.Unmarshal([]byte(body), &got))
		assert.Equal(t, int64(1725000000), got.Updated)
		assert.Len(t, got.ByTeam["wahoo"], 2)
	})

	t.Run("stores each team in the team hash", func(t *testing.T) {
		t.Parallel()

		rdb, _ := setup(t)
		p := gredis.NewPublisher(rdb)
		ctx := context.Background()
		require.NoError(t, p.WriteArtifact(ctx, testArtifact(1)))

		recs, err := p.FindTeam(ctx, "wahoo")

		require.NoError(t, err)
		require.Len(t, recs, 2)
		assert.Equal(t, "Ord", recs[0].Get("Opponent"))
		assert.Equal(t, "Aquinas", recs[1].Get("Opponent"))
		assert.Equal(t, "wahoo", recs[0].Key)
	})

	t.Run("drops teams missing from the new artifact", func(t *testing.T) {
		t.Parallel()

		rdb, _ := setup(t)
		p := gredis.NewPublisher(rdb)
		ctx := context.Background()
		require.NoError(t, p.WriteArtifact(ctx, testArtifact(1)))

		err := p.WriteArtifact(ctx, gridiron.NewArtifact(nil, time.Unix(2, 0)))

		require.NoError(t, err)
		_, err = p.FindTeam(ctx, "wahoo")
		assert.Equal(t, gridiron.ENOTFOUND, gridiron.ErrorCode(err))
	})

	t.Run("appends a run entry per publish", func(t *testing.T) {
		t.Parallel()

		rdb, _ := setup(t)
		p := gredis.NewPublisher(rdb)
		ctx := context.Background()
		require.NoError(t, p.WriteArtifact(ctx, testArtifact(100)))
		require.NoError(t, p.WriteArtifact(ctx, testArtifact(200)))

		entries, err := rdb.XRange(ctx, "gridiron:runs", "-", "+").Result()
		require.NoError(t, err)
		require.Len(t, entries, 2)
		assert.Equal(t, "2", entries[1].Values["teams"])
		assert.Equal(t, "3", entries[1].Values["records"])

		updated, err := p.LastUpdated(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(200), updated.Unix())
	})

	t.Run("uses the configured prefix", func(t *testing.T) {
		t.Parallel()

		rdb, mr := setup(t)
		p := gredis.NewPublisher(rdb, gredis.WithPrefix("nsaa:"))

		require.NoError(t, p.WriteArtifact(context.Background(), testArtifact(1)))

		assert.True(t, mr.Exists("nsaa:artifact"))
		assert.False(t, mr.Exists("gridiron:artifact"))
	})

	t.Run("rejects nil artifact", func(t *testing.T) {
		t.Parallel()

		rdb, _ := setup(t)
		p := gredis.NewPublisher(rdb)

		err := p.WriteArtifact(context.Background(), nil)

		assert.Equal(t, gridiron.EINVALID, gridiron.ErrorCode(err))
	})

	t.Run("returns error when redis is unavailable", func(t *testing.T) {
		t.Parallel()

		rdb, mr := setup(t)
		mr.Close()
		p := gredis.NewPublisher(rdb)

		err := p.WriteArtifact(context.Background(), testArtifact(1))

		assert.Error(t, err)
	})
}

func TestPublisher_LastUpdated(t *testing.T) {
	t.Parallel()

	rdb, _ := setup(t)
	p := gredis.NewPublisher(rdb)

	_, err := p.LastUpdated(context.Background())

	assert.Equal(t, gridiron.ENOTFOUND, gridiron.ErrorCode(err))
}

func TestNewClient(t *testing.T) {
	t.Parallel()

	t.Run("parses redis URLs", func(t *testing.T) {
		t.Parallel()

		client, err := gredis.NewClient("redis://localhost:6379/2")

		require.NoError(t, err)
		defer client.Close()
		assert.Equal(t, "localhost:6379", client.Options().Addr)
		assert.Equal(t, 2, client.Options().DB)
	})

	t.Run("rejects other schemes", func(t *testing.T) {
		t.Parallel()

		_, err := gredis.NewClient("http://localhost")

		assert.Equal(t, gridiron.EINVALID, gridiron.ErrorCode(err))
	})
}
