package sqlite_test

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/fwojciec/gridiron"
	"github.com/fwojciec/gridiron/sqlite"
	"github.com/stretchr/testify/require"
)

// BenchmarkCreateRun measures storing a season-sized index: seven
// classifications of roughly fifty teams with ten games each.
func BenchmarkCreateRun(b *testing.B) {
	index := gridiron.TeamIndex{}
	for c, class := range gridiron.DefaultClasses {
		for team := 0; team < 50; team++ {
			name := fmt.Sprintf("Team %d-%d", c, team)
			for game := 0; game < 10; game++ {
				index.Add(&gridiron.ScheduleRecord{
					Team:    name,
					Key:     gridiron.NormalizeKey(name),
					Caption: name + " (5-5)",
					Class:   class,
					Fields: map[string]string{
						"Date":     fmt.Sprintf("9/%d", game+1),
						"Opponent": fmt.Sprintf("Opponent %d", game),
						"W/L":      "W",
						"Score":    "21-14",
					},
				})
			}
		}
	}

	db := sqlite.NewDB(filepath.Join(b.TempDir(), "bench.db"))
	require.NoError(b, db.Open())
	defer db.Close()

	svc := sqlite.NewRunService(db)
	ctx := context.Background()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		run := &gridiron.Run{Updated: time.Now(), Teams: len(index), Records: index.Len()}
		if err := svc.CreateRun(ctx, run, index); err != nil {
			b.Fatal(err)
		}
	}
}
