package pipeline

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pitcast/pitcast/internal/models"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func onDay(it models.NormalizedItem, date time.Time) models.NormalizedItem {
	it.Date = date
	return it
}

func TestAggregateMultiCategoryWeight(t *testing.T) {
	d := day(2024, time.March, 4)
	// A plate (9/16 lb) tagged into three categories adds its full weight to
	// each of them.
	items := []models.NormalizedItem{
		onDay(item("PLATE", "Brisket", "Pulled Pork Ends"), d),
	}

	series := Aggregate(items)
	require.Len(t, series, 1)
	row := series[0]
	assert.InDelta(t, 9.0/16, row.Weights[models.CategoryBrisket], 1e-12)
	assert.InDelta(t, 9.0/16, row.Weights[models.CategoryPulledPork], 1e-12)
	assert.InDelta(t, 9.0/16, row.Weights[models.CategoryEnds], 1e-12)
	assert.Zero(t, row.Weights[models.CategoryNull])
	assert.Zero(t, row.Weights[models.CategoryTurkey])
	assert.Zero(t, row.Weights[models.CategoryTriTip])
}

func TestAggregateUnmatchedWeightGoesToNull(t *testing.T) {
	d := day(2024, time.March, 4)
	items := []models.NormalizedItem{
		onDay(item("PICK 2"), d), // 4.5/16 lb, no meat keyword
	}

	series := Aggregate(items)
	require.Len(t, series, 1)
	assert.InDelta(t, 4.5/16, series[0].Weights[models.CategoryNull], 1e-12)
}

// Weight is conserved: summing all weight keys (NULL included) for a day
// equals the sum of each item's weight times its matched-category
// multiplicity.
func TestAggregateConservation(t *testing.T) {
	d := day(2024, time.March, 4)
	items := []models.NormalizedItem{
		onDay(item("BRISKET PLATE"), d),                       // 9/16 into BRISKET
		onDay(item("PICK 2"), d),                              // 4.5/16 into NULL
		onDay(item("PLATE", "Brisket", "Pulled Pork Ends"), d), // 9/16 into three keys
	}

	var want float64
	for _, it := range items {
		c := Classify(it)
		n := float64(len(c.Meats))
		if n == 0 {
			n = 1 // NULL bucket
		}
		want += c.Pounds * n
	}

	series := Aggregate(items)
	require.Len(t, series, 1)
	var got float64
	for _, c := range models.WeightCategories {
		got += series[0].Weights[c]
	}
	assert.InDelta(t, want, got, 1e-12)
}

func TestAggregateAllKeysPresent(t *testing.T) {
	series := Aggregate([]models.NormalizedItem{
		onDay(item("SWEET TEA"), day(2024, time.March, 4)),
	})
	require.Len(t, series, 1)
	for _, c := range models.WeightCategories {
		_, ok := series[0].Weights[c]
		assert.True(t, ok, "missing weight key %s", c)
	}
	assert.Zero(t, series[0].Chickens)
	assert.Zero(t, series[0].Ribs)
}

func TestAggregateScalesByQuantity(t *testing.T) {
	d := day(2024, time.March, 4)
	it := onDay(item("BRISKET PLATE"), d)
	it.Quantity = 2
	series := Aggregate([]models.NormalizedItem{it})
	require.Len(t, series, 1)
	assert.InDelta(t, 2*9.0/16, series[0].Weights[models.CategoryBrisket], 1e-12)
}

func TestAggregateSortsByDate(t *testing.T) {
	items := []models.NormalizedItem{
		onDay(item("PICK 2"), day(2024, time.March, 6)),
		onDay(item("PICK 2"), day(2024, time.March, 4)),
		onDay(item("PICK 2"), day(2024, time.March, 5)),
	}
	series := Aggregate(items)
	require.Len(t, series, 3)
	assert.Equal(t, 4, series[0].Date.Day())
	assert.Equal(t, 5, series[1].Date.Day())
	assert.Equal(t, 6, series[2].Date.Day())
}
