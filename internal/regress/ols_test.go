package regress

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pitcast/pitcast/internal/models"
)

func matrix(columns []string, rows ...[]float64) *models.FeatureMatrix {
	return &models.FeatureMatrix{Columns: columns, Rows: rows}
}

func TestFitRecoversExactLine(t *testing.T) {
	// y = 2 + 3x, no noise: the fit must recover the coefficients and R²=1.
	cols := []string{"y", "x"}
	m := matrix(cols,
		[]float64{5, 1},
		[]float64{8, 2},
		[]float64{11, 3},
		[]float64{14, 4},
	)

	fit, err := Fit(m, "y", []string{"x"})
	require.NoError(t, err)
	assert.InDelta(t, 2, fit.Intercept, 1e-9)
	assert.InDelta(t, 3, fit.Coefficients["x"], 1e-9)
	assert.InDelta(t, 1, fit.R2, 1e-9)
	assert.Equal(t, 4, fit.NObs)
}

func TestFitTwoPredictors(t *testing.T) {
	// y = 1 + 2a - b
	cols := []string{"y", "a", "b"}
	m := matrix(cols,
		[]float64{2, 1, 1},
		[]float64{4, 2, 1},
		[]float64{3, 2, 2},
		[]float64{7, 4, 2},
		[]float64{6, 4, 3},
	)

	fit, err := Fit(m, "y", []string{"a", "b"})
	require.NoError(t, err)
	assert.InDelta(t, 1, fit.Intercept, 1e-9)
	assert.InDelta(t, 2, fit.Coefficients["a"], 1e-9)
	assert.InDelta(t, -1, fit.Coefficients["b"], 1e-9)
}

func TestFitDropsNaNRows(t *testing.T) {
	cols := []string{"y", "x"}
	m := matrix(cols,
		[]float64{5, 1},
		[]float64{8, math.NaN()},
		[]float64{11, 3},
		[]float64{14, 4},
	)

	fit, err := Fit(m, "y", []string{"x"})
	require.NoError(t, err)
	assert.Equal(t, 3, fit.NObs)
	assert.InDelta(t, 2, fit.Intercept, 1e-9)
	assert.InDelta(t, 3, fit.Coefficients["x"], 1e-9)
}

func TestFitTooFewRows(t *testing.T) {
	m := matrix([]string{"y", "x"}, []float64{5, 1})
	_, err := Fit(m, "y", []string{"x"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrSingular))
}

func TestFitCollinearPredictors(t *testing.T) {
	cols := []string{"y", "a", "b"}
	m := matrix(cols,
		[]float64{1, 1, 2},
		[]float64{2, 2, 4},
		[]float64{3, 3, 6},
		[]float64{4, 4, 8},
	)
	_, err := Fit(m, "y", []string{"a", "b"})
	assert.True(t, errors.Is(err, ErrSingular))
}

func TestFitUnknownColumn(t *testing.T) {
	m := matrix([]string{"y"}, []float64{1})
	_, err := Fit(m, "nope", nil)
	require.Error(t, err)
}

func TestFitCategoryUsesLagColumnsAndHigh(t *testing.T) {
	cols := []string{
		"BRISKET_lag1", "BRISKET_lag2", "BRISKET_lag3", "high_lag1",
	}
	// lag1 = 1 + lag2 + 0.5*lag3 + 0.1*high, exactly.
	m := matrix(cols,
		[]float64{16.5, 8, 3, 60},
		[]float64{19, 10, 5, 55},
		[]float64{22, 12, 4, 70},
		[]float64{19.5, 9, 6, 65},
		[]float64{18, 11, 2, 50},
	)

	fit, err := FitCategory(m, models.CategoryBrisket, 3)
	require.NoError(t, err)
	assert.Equal(t, "BRISKET_lag1", fit.Target)
	assert.ElementsMatch(t, []string{"BRISKET_lag2", "BRISKET_lag3", "high_lag1"}, fit.Predictors)
	assert.InDelta(t, 1, fit.Intercept, 1e-6)
	assert.InDelta(t, 1, fit.Coefficients["BRISKET_lag2"], 1e-6)
	assert.InDelta(t, 0.5, fit.Coefficients["BRISKET_lag3"], 1e-6)
	assert.InDelta(t, 0.1, fit.Coefficients["high_lag1"], 1e-6)
}

func TestPredict(t *testing.T) {
	m := &Model{
		Intercept:    2,
		Coefficients: map[string]float64{"x": 3},
	}
	assert.InDelta(t, 11, m.Predict(map[string]float64{"x": 3}), 1e-12)
	// Missing predictors read as zero.
	assert.InDelta(t, 2, m.Predict(nil), 1e-12)
}
