package pipeline

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"suedtirol/server/internal/models"
)

func TestAxisBounds(t *testing.T) {
	tests := []struct {
		name     string
		values   []float64
		step     float64
		tickStep float64
		lower    float64
		upper    float64
		ticks    []float64
	}{
		{
			name:     "Price range",
			values:   []float64{1234, 4800},
			step:     500,
			tickStep: 500,
			lower:    1000,
			upper:    5000,
			ticks:    []float64{1000, 1500, 2000, 2500, 3000, 3500, 4000, 4500, 5000},
		},
		{
			name:     "All values equal",
			values:   []float64{2000, 2000},
			step:     500,
			tickStep: 500,
			lower:    2000,
			upper:    2500,
			ticks:    []float64{2000, 2500},
		},
		{
			name:     "Max on a step boundary still gets headroom",
			values:   []float64{1500, 3000},
			step:     500,
			tickStep: 500,
			lower:    1500,
			upper:    3500,
			ticks:    []float64{1500, 2000, 2500, 3000, 3500},
		},
		{
			name:     "Income ticks are coarser than the range step",
			values:   []float64{20500, 34900},
			step:     1000,
			tickStep: 2000,
			lower:    20000,
			upper:    35000,
			ticks:    []float64{20000, 22000, 24000, 26000, 28000, 30000, 32000, 34000},
		},
		{
			name:     "Negative values floor away from zero",
			values:   []float64{-120, 80},
			step:     100,
			tickStep: 100,
			lower:    -200,
			upper:    100,
			ticks:    []float64{-200, -100, 0, 100},
		},
		{
			name:     "NaN values are ignored",
			values:   []float64{math.NaN(), 900, 1100},
			step:     500,
			tickStep: 500,
			lower:    500,
			upper:    1500,
			ticks:    []float64{500, 1000, 1500},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bounds, err := AxisBounds(tt.values, tt.step, tt.tickStep)
			require.NoError(t, err)
			assert.Equal(t, tt.lower, bounds.Lower)
			assert.Equal(t, tt.upper, bounds.Upper)
			assert.Equal(t, tt.ticks, bounds.Ticks)
			assert.Greater(t, bounds.Upper, bounds.Lower)
		})
	}
}

func TestAxisBounds_Errors(t *testing.T) {
	_, err := AxisBounds(nil, 500, 500)
	assert.ErrorIs(t, err, ErrNoValues)

	_, err = AxisBounds([]float64{math.NaN()}, 500, 500)
	assert.ErrorIs(t, err, ErrNoValues)

	_, err = AxisBounds([]float64{1, 2}, 0, 500)
	assert.ErrorIs(t, err, ErrInvalidStep)

	_, err = AxisBounds([]float64{1, 2}, 500, -1)
	assert.ErrorIs(t, err, ErrInvalidStep)
}

func TestComparisonValues(t *testing.T) {
	assert.Nil(t, ComparisonValues(nil))
	assert.Nil(t, ComparisonValues(&models.ComparisonTable{}))

	table := &models.ComparisonTable{
		Entities: []string{"A", "B"},
		Rows: []models.ComparisonRow{
			{Year: 2021, Values: []models.EntityValue{{Entity: "A", Mean: 10}, {Entity: "B", Mean: 20}}, Aggregate: 15},
			{Year: 2022, Values: []models.EntityValue{{Entity: "A", Mean: 11}, {Entity: "B", Mean: 21}}, Aggregate: 16},
		},
	}
	assert.Equal(t, []float64{10, 20, 15, 11, 21, 16}, ComparisonValues(table))
}
