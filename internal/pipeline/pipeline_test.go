package pipeline

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pitcast/pitcast/internal/models"
)

// Two orders land on the same business date: a half slab of ribs and a
// BIGGIE-sized brisket sandwich. The day's totals must be exactly
// Ribs = 0.5 and BRISKET = 7/16 lb, everything else zero.
func TestPipelineEndToEndDay(t *testing.T) {
	loc := denver(t)
	created := millis(t, loc, 2024, time.March, 4, 12)

	orders := []models.RawOrder{
		{
			ID:          "o1",
			CreatedTime: created,
			LineItems: models.RawLineItems{Elements: []models.RawLineItem{
				{Name: "HALF SLAB"},
			}},
		},
		{
			ID:          "o2",
			CreatedTime: created + 3600_000,
			LineItems: models.RawLineItems{Elements: []models.RawLineItem{
				{
					Name: "BIGGIE",
					Modifications: models.RawModifications{Elements: []models.RawModifier{
						{Name: "BRISKET"},
					}},
				},
			}},
		},
	}

	p, err := New(&models.Config{Timezone: "America/Denver", ExcludedWeekday: "Sunday"})
	require.NoError(t, err)

	series, stats := p.BuildSeries(orders, map[string]float64{"2024-03-04": 58})
	require.Len(t, series, 1)
	assert.Equal(t, 0, stats.MalformedOrders)
	assert.Equal(t, 0, stats.MissingWeather)

	row := series[0]
	assert.InDelta(t, 0.5, row.Ribs, 1e-12)
	assert.Zero(t, row.Chickens)
	assert.InDelta(t, 7.0/16, row.Weights[models.CategoryBrisket], 1e-12)
	for _, c := range []models.Category{
		models.CategoryPulledPork, models.CategoryTriTip,
		models.CategoryEnds, models.CategoryTurkey, models.CategoryNull,
	} {
		assert.Zero(t, row.Weights[c], "category %s", c)
	}
	require.NotNil(t, row.High)
	assert.InDelta(t, 58, *row.High, 1e-12)
}

func TestPipelineRunFeaturizes(t *testing.T) {
	loc := denver(t)
	var orders []models.RawOrder
	// Seven weekdays of single plates, skipping Sunday March 10th.
	for i := 0; i < 8; i++ {
		d := time.Date(2024, time.March, 4+i, 12, 0, 0, 0, loc)
		if d.Weekday() == time.Sunday {
			continue
		}
		orders = append(orders, models.RawOrder{
			ID:          d.Format("2006-01-02"),
			CreatedTime: d.UnixNano() / int64(time.Millisecond),
			LineItems:   models.RawLineItems{Elements: []models.RawLineItem{{Name: "BRISKET PLATE"}}},
		})
	}

	p, err := New(&models.Config{Timezone: "America/Denver", ExcludedWeekday: "Sunday"})
	require.NoError(t, err)

	res, err := p.Run(orders, nil, []models.Category{models.CategoryBrisket}, 7)
	require.NoError(t, err)
	require.Len(t, res.Series, 7)
	require.Len(t, res.Matrix.Rows, 1)
	for _, v := range res.Matrix.Rows[0] {
		assert.InDelta(t, 9.0/16, v, 1e-12)
	}
	assert.Equal(t, 7, res.Stats.MissingWeather)
}
