package gridiron_test

import (
	"encoding/json"
	"testing"

	"github.com/fwojciec/gridiron"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsColumn(t *testing.T) {
	t.Parallel()

	for _, col := range []string{"Date", "Opponent", "Class", "W-L", "Div", "W/L", "Score", "Points", "Home/Away", "Site", "Time"} {
		assert.True(t, gridiron.IsColumn(col), col)
	}
	for _, col := range []string{"date", "OPPONENT", "Record", "", "Opponent "} {
		assert.False(t, gridiron.IsColumn(col), col)
	}
}

func TestZipColumns(t *testing.T) {
	t.Parallel()

	t.Run("pairs columns with cells by position", func(t *testing.T) {
		t.Parallel()

		pairs := gridiron.ZipColumns(gridiron.HeaderRow{"Date", "Opponent"}, []string{"9/1", "Elkhorn"})

		assert.Equal(t, []gridiron.ColumnValue{
			{Column: "Date", Value: "9/1"},
			{Column: "Opponent", Value: "Elkhorn"},
		}, pairs)
	})

	t.Run("truncates to fewer cells", func(t *testing.T) {
		t.Parallel()

		pairs := gridiron.ZipColumns(gridiron.HeaderRow{"Date", "Opponent", "Score"}, []string{"9/1"})

		assert.Equal(t, []gridiron.ColumnValue{{Column: "Date", Value: "9/1"}}, pairs)
	})

	t.Run("truncates to fewer columns", func(t *testing.T) {
		t.Parallel()

		pairs := gridiron.ZipColumns(gridiron.HeaderRow{"Date"}, []string{"9/1", "Elkhorn", "extra"})

		assert.Len(t, pairs, 1)
	})

	t.Run("returns empty slice for empty input", func(t *testing.T) {
		t.Parallel()

		assert.Empty(t, gridiron.ZipColumns(nil, []string{"9/1"}))
	})
}

func TestMapFields(t *testing.T) {
	t.Parallel()

	t.Run("drops columns outside the whitelist", func(t *testing.T) {
		t.Parallel()

		fields := gridiron.MapFields(
			gridiron.HeaderRow{"Date", "Notes", "Opponent", "Record"},
			[]string{"9/1", "rain", "Elkhorn", "1-0"},
		)

		assert.Equal(t, map[string]string{"Date": "9/1", "Opponent": "Elkhorn"}, fields)
	})

	t.Run("returns empty map when nothing is whitelisted", func(t *testing.T) {
		t.Parallel()

		fields := gridiron.MapFields(gridiron.HeaderRow{"Notes"}, []string{"bye week"})

		assert.Empty(t, fields)
	})

	t.Run("keeps empty cell values", func(t *testing.T) {
		t.Parallel()

		fields := gridiron.MapFields(gridiron.HeaderRow{"Date", "Score"}, []string{"9/1", ""})

		assert.Equal(t, map[string]string{"Date": "9/1", "Score": ""}, fields)
	})
}

func TestScheduleRecord_JSON(t *testing.T) {
	t.Parallel()

	t.Run("flattens fields and metadata", func(t *testing.T) {
		t.Parallel()

		rec := &gridiron.ScheduleRecord{
			Team:    "Wahoo",
			Key:     "wahoo",
			Caption: "Wahoo (0-0)",
			Class:   "B",
			Fields:  map[string]string{"Date": "9/1", "Opponent": "Elkhorn"},
		}

		data, err := json.Marshal(rec)
		require.NoError(t, err)

		assert.JSONEq(t, `{"Date":"9/1","Opponent":"Elkhorn","_team":"Wahoo","_team_display":"Wahoo (0-0)","_class":"B"}`, string(data))
	})

	t.Run("restores record and key from JSON", func(t *testing.T) {
		t.Parallel()

		var rec gridiron.ScheduleRecord
		err := json.Unmarshal([]byte(`{"Date":"9/1","Bogus":"x","_team":"Wahoo","_team_display":"Wahoo (0-0)","_class":"B"}`), &rec)
		require.NoError(t, err)

		assert.Equal(t, "Wahoo", rec.Team)
		assert.Equal(t, "wahoo", rec.Key)
		assert.Equal(t, "Wahoo (0-0)", rec.Caption)
		assert.Equal(t, "B", rec.Class)
		assert.Equal(t, map[string]string{"Date": "9/1"}, rec.Fields)
	})
}
