package weather

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRead(t *testing.T) {
	csv := "date,high\n2024-03-04,61.5\n2024-03-05,48\n"
	highs, err := Read(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, highs, 2)
	assert.InDelta(t, 61.5, highs["2024-03-04"], 1e-12)
	assert.InDelta(t, 48, highs["2024-03-05"], 1e-12)
}

func TestReadBadDate(t *testing.T) {
	csv := "date,high\n03/04/2024,61.5\n"
	_, err := Read(strings.NewReader(csv))
	require.Error(t, err)
}

func TestReadBadHigh(t *testing.T) {
	csv := "date,high\n2024-03-04,warm\n"
	_, err := Read(strings.NewReader(csv))
	require.Error(t, err)
}
