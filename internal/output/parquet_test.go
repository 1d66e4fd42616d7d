package output

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pitcast/pitcast/internal/models"
)

func TestSeriesCacheRoundTrip(t *testing.T) {
	loc, err := time.LoadLocation("America/Denver")
	require.NoError(t, err)

	d1 := models.NewDailyTotals(time.Date(2024, time.March, 4, 0, 0, 0, 0, loc))
	d1.Weights[models.CategoryBrisket] = 7.0 / 16
	d1.Weights[models.CategoryNull] = 4.5 / 16
	d1.Ribs = 0.5
	h := 61.5
	d1.High = &h

	d2 := models.NewDailyTotals(time.Date(2024, time.March, 5, 0, 0, 0, 0, loc))
	d2.Weights[models.CategoryPulledPork] = 9.0 / 16
	d2.Chickens = 1
	// no High for day two: the gap must survive the round trip

	series := models.Series{d1, d2}

	cache := NewSeriesCache(filepath.Join(t.TempDir(), "series.parquet"))
	require.NoError(t, cache.Write(series))

	got, err := cache.Read(loc)
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.True(t, got[0].Date.Equal(d1.Date))
	assert.Equal(t, d1.Weights, got[0].Weights)
	assert.InDelta(t, 0.5, got[0].Ribs, 1e-12)
	require.NotNil(t, got[0].High)
	assert.InDelta(t, 61.5, *got[0].High, 1e-12)

	assert.True(t, got[1].Date.Equal(d2.Date))
	assert.Equal(t, d2.Weights, got[1].Weights)
	assert.InDelta(t, 1.0, got[1].Chickens, 1e-12)
	assert.Nil(t, got[1].High)
}

func TestJSONOutputWritesNDJSON(t *testing.T) {
	dir := t.TempDir()
	out := NewJSONOutput(dir)

	d := models.NewDailyTotals(time.Date(2024, time.March, 4, 0, 0, 0, 0, time.UTC))
	d.Weights[models.CategoryBrisket] = 0.5
	require.NoError(t, WriteSeries(out, "daily_totals", models.Series{d, d}))
	require.NoError(t, out.Close())

	data, err := os.ReadFile(filepath.Join(dir, "daily_totals.json"))
	require.NoError(t, err)
	lines := strings.Fields(strings.TrimSpace(string(data)))
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], `"date":"2024-03-04"`)
	assert.Contains(t, lines[0], `"brisket":0.5`)
}
