package models

import (
	"errors"
	"fmt"
	"time"
)

// ErrMalformedOrder marks an order missing its creation timestamp. Orders
// that trip it are skipped and counted, never fatal.
var ErrMalformedOrder = errors.New("malformed order")

// MalformedOrderError reports which order was dropped during normalization.
type MalformedOrderError struct {
	OrderID string
}

func (e *MalformedOrderError) Error() string {
	return fmt.Sprintf("malformed order %q: missing createdTime", e.OrderID)
}

func (e *MalformedOrderError) Unwrap() error { return ErrMalformedOrder }

// ErrMissingWeatherData marks a series date with no matching temperature.
// The join leaves the field unset rather than fabricating a value.
var ErrMissingWeatherData = errors.New("missing weather data")

// MissingWeatherDataError reports the date that had no temperature row.
type MissingWeatherDataError struct {
	Date time.Time
}

func (e *MissingWeatherDataError) Error() string {
	return fmt.Sprintf("no daily high for %s", e.Date.Format("2006-01-02"))
}

func (e *MissingWeatherDataError) Unwrap() error { return ErrMissingWeatherData }

// ErrInsufficientData is returned when the daily series is shorter than the
// requested window. Fatal to the featurizer call; no partial matrix comes back.
var ErrInsufficientData = errors.New("insufficient data")

// InsufficientDataError carries the series length and window that clashed.
type InsufficientDataError struct {
	SeriesLen int
	Window    int
}

func (e *InsufficientDataError) Error() string {
	return fmt.Sprintf("series has %d days, window needs at least %d", e.SeriesLen, e.Window)
}

func (e *InsufficientDataError) Unwrap() error { return ErrInsufficientData }
