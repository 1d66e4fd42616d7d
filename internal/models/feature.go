package models

import "fmt"

// LagColumn names a lagged feature column, e.g. "BRISKET_lag3".
func LagColumn(c Category, k int) string {
	return fmt.Sprintf("%s_lag%d", c, k)
}

// FeatureMatrix is the fixed-width regression input built by the window
// featurizer. Rows line up with window start positions in the source series;
// Columns names each field as <category>_lag<k>.
type FeatureMatrix struct {
	Columns []string
	Rows    [][]float64
}

// Column returns the values of a named column, or false when absent.
func (m *FeatureMatrix) Column(name string) ([]float64, bool) {
	for i, c := range m.Columns {
		if c != name {
			continue
		}
		out := make([]float64, len(m.Rows))
		for r, row := range m.Rows {
			out[r] = row[i]
		}
		return out, true
	}
	return nil, false
}

// ColumnIndex returns the position of a named column, or -1.
func (m *FeatureMatrix) ColumnIndex(name string) int {
	for i, c := range m.Columns {
		if c == name {
			return i
		}
	}
	return -1
}
