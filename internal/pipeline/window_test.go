package pipeline

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pitcast/pitcast/internal/models"
)

func seriesOf(values ...float64) models.Series {
	start := day(2024, time.March, 4)
	s := make(models.Series, 0, len(values))
	for i, v := range values {
		row := models.NewDailyTotals(start.AddDate(0, 0, i))
		row.Weights[models.CategoryBrisket] = v
		s = append(s, row)
	}
	return s
}

func TestFeaturizeSingleWindow(t *testing.T) {
	s := seriesOf(1, 2, 3, 4, 5, 6, 7)

	m, err := Featurize(s, []models.Category{models.CategoryBrisket}, 7)
	require.NoError(t, err)
	require.Len(t, m.Rows, 1)
	require.Len(t, m.Columns, 7)

	for k := 1; k <= 7; k++ {
		idx := m.ColumnIndex(models.LagColumn(models.CategoryBrisket, k))
		require.GreaterOrEqual(t, idx, 0)
		assert.InDelta(t, float64(k), m.Rows[0][idx], 1e-12, "lag%d", k)
	}
}

func TestFeaturizeInsufficientData(t *testing.T) {
	s := seriesOf(1, 2, 3, 4, 5, 6, 7)
	_, err := Featurize(s, []models.Category{models.CategoryBrisket}, 8)
	require.Error(t, err)
	assert.True(t, errors.Is(err, models.ErrInsufficientData))

	var ide *models.InsufficientDataError
	require.True(t, errors.As(err, &ide))
	assert.Equal(t, 7, ide.SeriesLen)
	assert.Equal(t, 8, ide.Window)
}

func TestFeaturizeSlidingRows(t *testing.T) {
	s := seriesOf(10, 20, 30, 40, 50)

	m, err := Featurize(s, []models.Category{models.CategoryBrisket}, 3)
	require.NoError(t, err)
	require.Len(t, m.Rows, 3) // len(series) - W + 1

	lag1 := m.ColumnIndex(models.LagColumn(models.CategoryBrisket, 1))
	lag3 := m.ColumnIndex(models.LagColumn(models.CategoryBrisket, 3))
	assert.InDelta(t, 10, m.Rows[0][lag1], 1e-12)
	assert.InDelta(t, 30, m.Rows[0][lag3], 1e-12)
	assert.InDelta(t, 30, m.Rows[2][lag1], 1e-12)
	assert.InDelta(t, 50, m.Rows[2][lag3], 1e-12)
}

func TestFeaturizeColumnsGroupedPerCategory(t *testing.T) {
	s := seriesOf(1, 2, 3)
	m, err := Featurize(s, []models.Category{models.CategoryBrisket, models.CategoryRibs}, 2)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"BRISKET_lag1", "BRISKET_lag2",
		"Ribs_lag1", "Ribs_lag2",
	}, m.Columns)
}

func TestFeaturizeMissingHighIsNaN(t *testing.T) {
	s := seriesOf(1, 2)
	h := 55.0
	s[0].High = &h

	m, err := Featurize(s, []models.Category{models.CategoryHigh}, 1)
	require.NoError(t, err)
	require.Len(t, m.Rows, 2)
	assert.InDelta(t, 55.0, m.Rows[0][0], 1e-12)
	assert.True(t, math.IsNaN(m.Rows[1][0]))
}
