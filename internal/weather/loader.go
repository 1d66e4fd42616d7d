// Package weather loads the daily-high temperature table joined onto the
// daily series. The table arrives as a CSV of (date, high) pairs, unique
// per date.
package weather

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"
)

const dateLayout = "2006-01-02"

// LoadCSV reads a date,high CSV file into a lookup keyed by date string.
// The first row is treated as a header and skipped.
func LoadCSV(filePath string) (map[string]float64, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return Read(file)
}

// Read parses date,high rows from r. Duplicate dates keep the last value.
func Read(r io.Reader) (map[string]float64, error) {
	reader := csv.NewReader(r)
	reader.Read() // header

	highs := make(map[string]float64)
	for {
		fields, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if len(fields) < 2 {
			return nil, fmt.Errorf("weather row needs date and high, got %v", fields)
		}

		if _, err := time.Parse(dateLayout, fields[0]); err != nil {
			return nil, fmt.Errorf("bad weather date %q: %w", fields[0], err)
		}
		high, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			return nil, fmt.Errorf("bad daily high %q: %w", fields[1], err)
		}
		highs[fields[0]] = high
	}

	return highs, nil
}
