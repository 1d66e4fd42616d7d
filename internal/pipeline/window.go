package pipeline

import (
	"github.com/pitcast/pitcast/internal/models"
)

// Featurize reshapes the series into fixed-width lag rows. Row i covers
// series positions i..i+window-1; for each category, lag-k holds the value
// at position i+k-1, with lag1 labeled as the target day. Columns are
// grouped per category in the given order and named <category>_lag<k>.
//
// Lags are positional, not calendar: days with no orders are absent from
// the series, so lag2 is the next row, which may be more than one calendar
// day away. Zero-filling the gaps would change the lag semantics and the
// downstream coefficients, so gaps are left as-is.
func Featurize(series models.Series, categories []models.Category, window int) (*models.FeatureMatrix, error) {
	if window < 1 || len(series) < window {
		return nil, &models.InsufficientDataError{SeriesLen: len(series), Window: window}
	}

	columns := make([]string, 0, window*len(categories))
	for _, c := range categories {
		for k := 1; k <= window; k++ {
			columns = append(columns, models.LagColumn(c, k))
		}
	}

	rows := make([][]float64, 0, len(series)-window+1)
	for i := 0; i+window <= len(series); i++ {
		row := make([]float64, 0, len(columns))
		for _, c := range categories {
			for k := 1; k <= window; k++ {
				row = append(row, series[i+k-1].Value(c))
			}
		}
		rows = append(rows, row)
	}

	return &models.FeatureMatrix{Columns: columns, Rows: rows}, nil
}
