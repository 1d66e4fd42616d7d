package pipeline

import (
	"time"

	"github.com/pitcast/pitcast/internal/models"
)

// FilterWeekday drops every row falling on the excluded weekday, preserving
// the relative order of the rest. The excluded day runs different business
// hours, which would otherwise distort same-weekday lag features.
func FilterWeekday(series models.Series, day time.Weekday) models.Series {
	out := make(models.Series, 0, len(series))
	for _, row := range series {
		if row.Date.Weekday() == day {
			continue
		}
		out = append(out, row)
	}
	return out
}
