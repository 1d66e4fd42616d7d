package models

import (
	"math"
	"sort"
	"time"
)

// DailyTotals holds one calendar day's accumulated category values. Every
// weight category is always present in Weights, zero-defaulted, so rows are
// never partial. High is nil until the weather join supplies it, and stays
// nil when no reading exists for the date.
type DailyTotals struct {
	Date     time.Time
	Weights  map[Category]float64
	Chickens float64
	Ribs     float64
	High     *float64
}

// NewDailyTotals returns a zeroed row for the given date with all six
// weight keys pre-populated.
func NewDailyTotals(date time.Time) DailyTotals {
	w := make(map[Category]float64, len(WeightCategories))
	for _, c := range WeightCategories {
		w[c] = 0
	}
	return DailyTotals{Date: date, Weights: w}
}

// Value resolves a category key against this row. A missing temperature
// reads as NaN so it propagates as a missing value rather than a zero.
func (d DailyTotals) Value(c Category) float64 {
	switch c {
	case CategoryChickens:
		return d.Chickens
	case CategoryRibs:
		return d.Ribs
	case CategoryHigh:
		if d.High == nil {
			return math.NaN()
		}
		return *d.High
	default:
		return d.Weights[c]
	}
}

// Clone deep-copies the row so downstream stages can stay pure.
func (d DailyTotals) Clone() DailyTotals {
	out := d
	out.Weights = make(map[Category]float64, len(d.Weights))
	for k, v := range d.Weights {
		out.Weights[k] = v
	}
	if d.High != nil {
		h := *d.High
		out.High = &h
	}
	return out
}

// Series is the date-ordered daily totals sequence the featurizer windows
// over. Dates are unique and strictly increasing; calendar gaps are not
// filled, so adjacency is positional, not calendar.
type Series []DailyTotals

// SortByDate orders the series ascending by date in place.
func (s Series) SortByDate() {
	sort.Slice(s, func(i, j int) bool { return s[i].Date.Before(s[j].Date) })
}

// Clone deep-copies every row.
func (s Series) Clone() Series {
	out := make(Series, len(s))
	for i, d := range s {
		out[i] = d.Clone()
	}
	return out
}
