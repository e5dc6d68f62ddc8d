package metrics

import (
	"testing"
	"time"

	"github.com/fernwood/tally/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBackfillTrendEmpty(t *testing.T) {
	got := BackfillTrend(nil, time.Date(2026, 8, 31, 23, 0, 0, 0, time.UTC))

	require.Len(t, got, TrendWindow)

	want := []model.TrendPoint{
		{Year: 2026, Month: 3},
		{Year: 2026, Month: 4},
		{Year: 2026, Month: 5},
		{Year: 2026, Month: 6},
		{Year: 2026, Month: 7},
		{Year: 2026, Month: 8},
	}
	assert.Equal(t, want, got)
}

func TestBackfillTrendYearBoundary(t *testing.T) {
	got := BackfillTrend(nil, time.Date(2026, 2, 14, 0, 0, 0, 0, time.UTC))

	require.Len(t, got, TrendWindow)
	assert.Equal(t, model.TrendPoint{Year: 2025, Month: 9}, got[0])
	assert.Equal(t, model.TrendPoint{Year: 2025, Month: 12}, got[3])
	assert.Equal(t, model.TrendPoint{Year: 2026, Month: 2}, got[5])
}

func TestBackfillTrendMergesExistingMonths(t *testing.T) {
	points := []model.TrendPoint{
		{Year: 2026, Month: 8, Total: 1200, Count: 3},
		{Year: 2026, Month: 6, Total: 800, Count: 2},
		// Duplicate bucket for August gets summed.
		{Year: 2026, Month: 8, Total: 300, Count: 1},
		// Outside the window, dropped.
		{Year: 2025, Month: 12, Total: 9999, Count: 9},
	}

	got := BackfillTrend(points, time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC))

	require.Len(t, got, TrendWindow)
	assert.Equal(t, model.TrendPoint{Year: 2026, Month: 3}, got[0])
	assert.Equal(t, model.TrendPoint{Year: 2026, Month: 6, Total: 800, Count: 2}, got[3])
	assert.Equal(t, model.TrendPoint{Year: 2026, Month: 7}, got[4])
	assert.Equal(t, model.TrendPoint{Year: 2026, Month: 8, Total: 1500, Count: 4}, got[5])
}

func TestBackfillTrendAnchorsOnShortMonths(t *testing.T) {
	// March 31 minus one calendar month must land in February, not skip it.
	got := BackfillTrend(nil, time.Date(2026, 3, 31, 12, 0, 0, 0, time.UTC))

	require.Len(t, got, TrendWindow)
	assert.Equal(t, model.TrendPoint{Year: 2026, Month: 2}, got[4])
	assert.Equal(t, model.TrendPoint{Year: 2026, Month: 3}, got[5])
	assert.Equal(t, model.TrendPoint{Year: 2025, Month: 10}, got[0])
}

func TestTrendPointLabel(t *testing.T) {
	assert.Equal(t, "Jan 2026", model.TrendPoint{Year: 2026, Month: 1}.Label())
	assert.Equal(t, "Dec 2025", model.TrendPoint{Year: 2025, Month: 12}.Label())
}
