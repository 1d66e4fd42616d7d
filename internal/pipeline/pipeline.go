package pipeline

import (
	"log"
	"time"

	"github.com/pitcast/pitcast/internal/models"
)

// Pipeline runs the staged batch transform from raw orders to the feature
// matrix. Every stage fully consumes its input before the next begins, and
// no stage mutates shared state, so each is unit-testable on its own.
type Pipeline struct {
	loc      *time.Location
	excluded time.Weekday
}

// Stats counts the non-fatal anomalies seen during a run.
type Stats struct {
	MalformedOrders int
	MissingWeather  int
}

// Result bundles a full run's outputs.
type Result struct {
	Series models.Series
	Matrix *models.FeatureMatrix
	Stats  Stats
}

func New(cfg *models.Config) (*Pipeline, error) {
	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}
	excluded, err := cfg.Excluded()
	if err != nil {
		return nil, err
	}
	return &Pipeline{loc: loc, excluded: excluded}, nil
}

// BuildSeries runs normalize, aggregate, weather join and the calendar
// filter, returning the filtered daily series.
func (p *Pipeline) BuildSeries(orders []models.RawOrder, highs map[string]float64) (models.Series, Stats) {
	var stats Stats

	items, skipped := NewNormalizer(p.loc).Normalize(orders)
	stats.MalformedOrders = skipped

	series := Aggregate(items)

	series, missing := JoinWeather(series, highs)
	stats.MissingWeather = len(missing)
	for _, err := range missing {
		log.Printf("weather join: %v", err)
	}

	series = FilterWeekday(series, p.excluded)
	return series, stats
}

// Run executes the whole pipeline through featurization.
func (p *Pipeline) Run(orders []models.RawOrder, highs map[string]float64, categories []models.Category, window int) (*Result, error) {
	series, stats := p.BuildSeries(orders, highs)

	matrix, err := Featurize(series, categories, window)
	if err != nil {
		return nil, err
	}

	return &Result{Series: series, Matrix: matrix, Stats: stats}, nil
}
