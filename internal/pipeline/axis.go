package pipeline

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"suedtirol/server/internal/models"
)

// AxisBounds rounds the value range outward to multiples of step and lays
// gridlines from lower to upper every tickStep. The upper bound is always at
// least one step above the lower bound, so equal values never produce a
// zero-width axis. NaN values are ignored.
func AxisBounds(values []float64, step, tickStep float64) (models.AxisBounds, error) {
	if step <= 0 || tickStep <= 0 {
		return models.AxisBounds{}, ErrInvalidStep
	}

	clean := make([]float64, 0, len(values))
	for _, v := range values {
		if !math.IsNaN(v) {
			clean = append(clean, v)
		}
	}
	if len(clean) == 0 {
		return models.AxisBounds{}, ErrNoValues
	}

	lower := math.Floor(floats.Min(clean)/step) * step
	upper := (math.Floor(floats.Max(clean)/step) + 1) * step

	ticks := make([]float64, 0, int((upper-lower)/tickStep)+1)
	for k := 0; ; k++ {
		t := lower + float64(k)*tickStep
		if t > upper {
			break
		}
		ticks = append(ticks, t)
	}

	return models.AxisBounds{Lower: lower, Upper: upper, Ticks: ticks}, nil
}

// ComparisonValues collects every mean value and the aggregate of a table,
// the values the chart's value axis has to cover.
func ComparisonValues(table *models.ComparisonTable) []float64 {
	if table.IsEmpty() {
		return nil
	}
	values := make([]float64, 0, len(table.Rows)*(len(table.Entities)+1))
	for _, row := range table.Rows {
		for _, v := range row.Values {
			values = append(values, v.Mean)
		}
		values = append(values, row.Aggregate)
	}
	return values
}
