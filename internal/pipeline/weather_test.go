package pipeline

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pitcast/pitcast/internal/models"
)

func TestJoinWeather(t *testing.T) {
	series := models.Series{
		models.NewDailyTotals(day(2024, time.March, 4)),
		models.NewDailyTotals(day(2024, time.March, 5)),
	}
	highs := map[string]float64{"2024-03-04": 61.5}

	joined, missing := JoinWeather(series, highs)
	require.Len(t, joined, 2)

	require.NotNil(t, joined[0].High)
	assert.InDelta(t, 61.5, *joined[0].High, 1e-12)

	assert.Nil(t, joined[1].High)
	require.Len(t, missing, 1)
	assert.True(t, errors.Is(missing[0], models.ErrMissingWeatherData))

	// Input series must stay untouched.
	assert.Nil(t, series[0].High)
}

func TestFilterWeekday(t *testing.T) {
	// One row per day for two full weeks starting on a Monday.
	start := day(2024, time.March, 4)
	series := make(models.Series, 0, 14)
	for i := 0; i < 14; i++ {
		series = append(series, models.NewDailyTotals(start.AddDate(0, 0, i)))
	}

	filtered := FilterWeekday(series, time.Sunday)
	assert.Len(t, filtered, 12)
	for i := 1; i < len(filtered); i++ {
		assert.True(t, filtered[i-1].Date.Before(filtered[i].Date), "order not preserved")
	}
	for _, row := range filtered {
		assert.NotEqual(t, time.Sunday, row.Date.Weekday())
	}
}
