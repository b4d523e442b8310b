package charts

import (
	"bytes"
	"image/png"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"suedtirol/server/internal/models"
)

func comparisonTable(years ...int) *models.ComparisonTable {
	table := &models.ComparisonTable{
		Entities:       []string{"Bozen", "Meran"},
		AggregateLabel: "Durchschnitt Gemeinden",
		ValueLabel:     "Mittelwert Verkaufspreis",
		Unit:           "€ pro Quadratmeter",
		Rows:           []models.ComparisonRow{},
	}
	for i, year := range years {
		base := 3000 + float64(i)*100
		table.Rows = append(table.Rows, models.ComparisonRow{
			Year:  year,
			Label: strconv.Itoa(year),
			Values: []models.EntityValue{
				{Entity: "Bozen", Min: base, Mean: base + 500, Max: base + 1000},
				{Entity: "Meran", Min: base - 200, Mean: base + 200, Max: base + 600},
			},
			Aggregate: base + 300,
		})
	}
	return table
}

func TestRenderComparison(t *testing.T) {
	tests := []struct {
		name  string
		years []int
	}{
		{name: "Several years", years: []int{2019, 2020, 2021, 2022}},
		{name: "Single year", years: []int{2023}},
	}

	bounds := models.AxisBounds{Lower: 2500, Upper: 4000, Ticks: []float64{2500, 3000, 3500, 4000}}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := RenderComparison(comparisonTable(tt.years...), bounds, Options{Width: 640, Height: 360})
			require.NoError(t, err)
			require.True(t, bytes.HasPrefix(data, []byte("\x89PNG\r\n\x1a\n")))

			img, err := png.Decode(bytes.NewReader(data))
			require.NoError(t, err)
			assert.Equal(t, 640, img.Bounds().Dx())
			assert.Equal(t, 360, img.Bounds().Dy())
		})
	}
}

func TestRenderComparison_Empty(t *testing.T) {
	_, err := RenderComparison(comparisonTable(), models.AxisBounds{}, Options{})
	assert.ErrorIs(t, err, ErrNoData)

	_, err = RenderComparison(nil, models.AxisBounds{}, Options{})
	assert.ErrorIs(t, err, ErrNoData)
}
