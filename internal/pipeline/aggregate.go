package pipeline

import (
	"github.com/pitcast/pitcast/internal/models"
)

// Aggregate folds classified items into per-day totals and returns a new
// date-sorted series. The fold is pure: callers keep their inputs, and each
// run builds fresh rows.
//
// Per item: its weight, scaled by quantity, is added to every matched meat
// category, or to NULL when no category matched; chicken and rib counts
// accumulate independently. Every row carries all six weight keys and both
// count keys even when zero.
func Aggregate(items []models.NormalizedItem) models.Series {
	byDate := make(map[string]int)
	series := make(models.Series, 0)

	for _, item := range items {
		key := item.Date.Format("2006-01-02")
		idx, ok := byDate[key]
		if !ok {
			idx = len(series)
			byDate[key] = idx
			series = append(series, models.NewDailyTotals(item.Date))
		}

		c := Classify(item)
		row := &series[idx]

		if len(c.Meats) == 0 {
			row.Weights[models.CategoryNull] += c.Pounds * item.Quantity
		} else {
			for _, meat := range c.Meats {
				row.Weights[meat] += c.Pounds * item.Quantity
			}
		}

		row.Chickens += c.Chickens * item.Quantity
		row.Ribs += c.Ribs * item.Quantity
	}

	series.SortByDate()
	return series
}
