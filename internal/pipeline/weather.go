package pipeline

import (
	"github.com/pitcast/pitcast/internal/models"
)

// JoinWeather attaches the daily-high temperature to each row by date key
// and returns a new series. Dates with no reading keep High nil — the gap
// propagates as a missing value downstream instead of a fabricated default.
// The returned errors identify the unmatched dates for diagnostics.
func JoinWeather(series models.Series, highs map[string]float64) (models.Series, []error) {
	out := series.Clone()
	var missing []error

	for i := range out {
		key := out[i].Date.Format("2006-01-02")
		if high, ok := highs[key]; ok {
			h := high
			out[i].High = &h
			continue
		}
		missing = append(missing, &models.MissingWeatherDataError{Date: out[i].Date})
	}

	return out, missing
}
