// Package regress fits the fixed-form linear demand models consumed by the
// dashboard: one ordinary-least-squares fit per category, with the
// category's lag1 column as target and the remaining lags (plus the lag1
// temperature when present) as predictors.
package regress

import (
	"errors"
	"fmt"
	"math"

	"github.com/pitcast/pitcast/internal/models"
)

// Model is one fitted linear model keyed by its target column.
type Model struct {
	Target       string
	Intercept    float64
	Coefficients map[string]float64
	Predictors   []string
	R2           float64
	NObs         int
}

// ErrSingular is returned when the normal equations cannot be solved, which
// happens when predictors are collinear or there are too few rows.
var ErrSingular = errors.New("singular design matrix")

// Fit runs OLS of target on predictors over the feature matrix. Rows
// containing NaN in any used column are dropped before fitting; the weather
// join leaves gaps as NaN and it is the fitter's call to discard them.
func Fit(m *models.FeatureMatrix, target string, predictors []string) (*Model, error) {
	ti := m.ColumnIndex(target)
	if ti < 0 {
		return nil, fmt.Errorf("target column %q not in matrix", target)
	}
	pis := make([]int, len(predictors))
	for i, p := range predictors {
		pis[i] = m.ColumnIndex(p)
		if pis[i] < 0 {
			return nil, fmt.Errorf("predictor column %q not in matrix", p)
		}
	}

	var y []float64
	var x [][]float64
	for _, row := range m.Rows {
		if math.IsNaN(row[ti]) {
			continue
		}
		keep := true
		xr := make([]float64, len(pis))
		for i, pi := range pis {
			if math.IsNaN(row[pi]) {
				keep = false
				break
			}
			xr[i] = row[pi]
		}
		if !keep {
			continue
		}
		y = append(y, row[ti])
		x = append(x, xr)
	}

	k := len(predictors) + 1 // predictors plus intercept
	if len(y) < k {
		return nil, fmt.Errorf("%d usable rows for %d parameters: %w", len(y), k, ErrSingular)
	}

	beta, err := solveNormalEquations(x, y)
	if err != nil {
		return nil, err
	}

	model := &Model{
		Target:       target,
		Intercept:    beta[0],
		Coefficients: make(map[string]float64, len(predictors)),
		Predictors:   predictors,
		NObs:         len(y),
	}
	for i, p := range predictors {
		model.Coefficients[p] = beta[i+1]
	}
	model.R2 = rSquared(x, y, beta)
	return model, nil
}

// FitCategory fits the standard demand model for one category: target
// <cat>_lag1, predictors <cat>_lag2..lagW plus high_lag1 when the matrix
// carries it.
func FitCategory(m *models.FeatureMatrix, cat models.Category, window int) (*Model, error) {
	target := models.LagColumn(cat, 1)
	var predictors []string
	for k := 2; k <= window; k++ {
		predictors = append(predictors, models.LagColumn(cat, k))
	}
	if m.ColumnIndex(models.LagColumn(models.CategoryHigh, 1)) >= 0 {
		predictors = append(predictors, models.LagColumn(models.CategoryHigh, 1))
	}
	return Fit(m, target, predictors)
}

// Predict evaluates the fitted model at the given predictor values. Missing
// predictors read as zero.
func (m *Model) Predict(values map[string]float64) float64 {
	pred := m.Intercept
	for name, coef := range m.Coefficients {
		pred += coef * values[name]
	}
	return pred
}

// solveNormalEquations builds X'X b = X'y (with a leading intercept column)
// and solves it by Gaussian elimination with partial pivoting.
func solveNormalEquations(x [][]float64, y []float64) ([]float64, error) {
	n := len(y)
	k := len(x[0]) + 1

	xtx := make([][]float64, k)
	xty := make([]float64, k)
	for i := range xtx {
		xtx[i] = make([]float64, k)
	}

	design := func(row int, col int) float64 {
		if col == 0 {
			return 1
		}
		return x[row][col-1]
	}

	for r := 0; r < n; r++ {
		for i := 0; i < k; i++ {
			di := design(r, i)
			xty[i] += di * y[r]
			for j := i; j < k; j++ {
				xtx[i][j] += di * design(r, j)
			}
		}
	}
	for i := 0; i < k; i++ {
		for j := 0; j < i; j++ {
			xtx[i][j] = xtx[j][i]
		}
	}

	// Forward elimination with partial pivoting.
	for col := 0; col < k; col++ {
		pivot := col
		for r := col + 1; r < k; r++ {
			if math.Abs(xtx[r][col]) > math.Abs(xtx[pivot][col]) {
				pivot = r
			}
		}
		if math.Abs(xtx[pivot][col]) < 1e-12 {
			return nil, ErrSingular
		}
		xtx[col], xtx[pivot] = xtx[pivot], xtx[col]
		xty[col], xty[pivot] = xty[pivot], xty[col]

		for r := col + 1; r < k; r++ {
			factor := xtx[r][col] / xtx[col][col]
			for c := col; c < k; c++ {
				xtx[r][c] -= factor * xtx[col][c]
			}
			xty[r] -= factor * xty[col]
		}
	}

	// Back substitution.
	beta := make([]float64, k)
	for i := k - 1; i >= 0; i-- {
		sum := xty[i]
		for j := i + 1; j < k; j++ {
			sum -= xtx[i][j] * beta[j]
		}
		beta[i] = sum / xtx[i][i]
	}
	return beta, nil
}

func rSquared(x [][]float64, y []float64, beta []float64) float64 {
	mean := 0.0
	for _, v := range y {
		mean += v
	}
	mean /= float64(len(y))

	var sse, sst float64
	for r, v := range y {
		pred := beta[0]
		for i, xv := range x[r] {
			pred += beta[i+1] * xv
		}
		resid := v - pred
		sse += resid * resid
		dev := v - mean
		sst += dev * dev
	}
	if sst == 0 {
		return 0
	}
	return 1 - sse/sst
}
