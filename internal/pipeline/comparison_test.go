package pipeline

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"suedtirol/server/internal/models"
)

func obs(entity string, year int, mean float64) models.Observation {
	return models.Observation{Entity: entity, Year: year, Min: mean - 100, Mean: mean, Max: mean + 100}
}

func tableYears(table *models.ComparisonTable) []int {
	years := make([]int, len(table.Rows))
	for i, row := range table.Rows {
		years[i] = row.Year
	}
	return years
}

func TestBuildComparison_YearsAreIntersection(t *testing.T) {
	slice := []models.Observation{
		obs("A", 2020, 1000), obs("A", 2021, 1100), obs("A", 2022, 1200),
		obs("B", 2023, 2300), obs("B", 2022, 2200), obs("B", 2021, 2100),
	}

	table, err := BuildComparison(slice, ComparisonRequest{Entities: []string{"A", "B"}})
	require.NoError(t, err)

	assert.Equal(t, []int{2021, 2022}, tableYears(table))
	assert.Equal(t, []string{"A", "B"}, table.Entities)
	assert.Equal(t, "2021", table.Rows[0].Label)
	assert.Equal(t, models.EntityValue{Entity: "A", Min: 1000, Mean: 1100, Max: 1200}, table.Rows[0].Values[0])
	assert.Equal(t, models.EntityValue{Entity: "B", Min: 2100, Mean: 2200, Max: 2300}, table.Rows[1].Values[1])
}

func TestBuildComparison_AggregateUsesWholeSlice(t *testing.T) {
	// C and D are never compared but still shape the slice mean.
	slice := []models.Observation{
		obs("A", 2021, 1000),
		obs("B", 2021, 2000),
		obs("C", 2021, 3000),
		obs("D", 2021, 4001),
		obs("A", 2022, 1500),
		obs("B", 2022, 2500),
	}

	table, err := BuildComparison(slice, ComparisonRequest{Entities: []string{"A", "B"}})
	require.NoError(t, err)
	require.Len(t, table.Rows, 2)

	// (1000+2000+3000+4001)/4 = 2500.25
	assert.Equal(t, 2500.0, table.Rows[0].Aggregate)
	assert.Equal(t, 2000.0, table.Rows[1].Aggregate)
}

func TestBuildComparison_AggregateRoundsHalfToEven(t *testing.T) {
	slice := []models.Observation{
		obs("A", 2020, 1000), obs("B", 2020, 1001), // 1000.5 -> 1000
		obs("A", 2021, 1001), obs("B", 2021, 1002), // 1001.5 -> 1002
	}

	table, err := BuildComparison(slice, ComparisonRequest{Entities: []string{"A", "B"}})
	require.NoError(t, err)
	require.Len(t, table.Rows, 2)
	assert.Equal(t, 1000.0, table.Rows[0].Aggregate)
	assert.Equal(t, 1002.0, table.Rows[1].Aggregate)
}

func TestBuildComparison_MissingEntityCollapsesJoin(t *testing.T) {
	slice := []models.Observation{
		obs("A", 2021, 1000), obs("B", 2021, 2000),
		obs("A", 2022, 1100), obs("B", 2022, 2100),
	}

	table, err := BuildComparison(slice, ComparisonRequest{Entities: []string{"A", "B", "Nowhere"}})
	require.NoError(t, err)
	assert.True(t, table.IsEmpty())
	assert.NotNil(t, table.Rows)
	assert.Equal(t, []string{"A", "B", "Nowhere"}, table.Entities)
}

func TestBuildComparison_DisjointYearsGiveEmptyTable(t *testing.T) {
	slice := []models.Observation{
		obs("A", 2019, 1000), obs("A", 2020, 1000),
		obs("B", 2021, 2000), obs("B", 2022, 2000),
	}

	table, err := BuildComparison(slice, ComparisonRequest{Entities: []string{"A", "B"}})
	require.NoError(t, err)
	assert.Empty(t, table.Rows)
}

func TestBuildComparison_EmptySlice(t *testing.T) {
	table, err := BuildComparison(nil, ComparisonRequest{Entities: []string{"A", "B"}})
	require.NoError(t, err)
	assert.True(t, table.IsEmpty())
}

func TestBuildComparison_PinnedAndExcluded(t *testing.T) {
	slice := []models.Observation{
		obs("Südtirol", 2021, 30000),
		obs("Average", 2021, 99999),
		obs("Veneto", 2021, 24000),
		obs("Lazio", 2021, 27000),
	}

	table, err := BuildComparison(slice, ComparisonRequest{
		Entities:             []string{"Veneto", "Lazio"},
		Pinned:               []string{"Südtirol", "Average"},
		ExcludeFromAggregate: []string{"Average"},
		AggregateLabel:       "Average",
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"Südtirol", "Average", "Veneto", "Lazio"}, table.Entities)
	require.Len(t, table.Rows, 1)
	assert.Equal(t, 99999.0, table.Rows[0].Values[1].Mean)
	assert.Equal(t, 27000.0, table.Rows[0].Aggregate)
}

func TestBuildComparison_DuplicateYearKeepsFirstRow(t *testing.T) {
	slice := []models.Observation{
		obs("A", 2021, 1000), obs("A", 2021, 5000), obs("B", 2021, 2000),
	}

	table, err := BuildComparison(slice, ComparisonRequest{Entities: []string{"A", "B"}})
	require.NoError(t, err)
	require.Len(t, table.Rows, 1)
	assert.Equal(t, 1000.0, table.Rows[0].Values[0].Mean)
}

func TestBuildComparison_EntityCount(t *testing.T) {
	tests := []struct {
		name     string
		req      ComparisonRequest
		expected error
	}{
		{name: "One entity", req: ComparisonRequest{Entities: []string{"A"}}, expected: ErrTooFewEntities},
		{name: "Four entities", req: ComparisonRequest{Entities: []string{"A", "B", "C", "D"}}, expected: ErrTooManyEntities},
		{name: "Three pinned", req: ComparisonRequest{Entities: []string{"A", "B"}, Pinned: []string{"X", "Y", "Z"}}, expected: ErrTooManyPinned},
		{name: "Three entities", req: ComparisonRequest{Entities: []string{"A", "B", "C"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := BuildComparison([]models.Observation{obs("A", 2021, 1)}, tt.req)
			if tt.expected != nil {
				assert.ErrorIs(t, err, tt.expected)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestBuildComparison_Idempotent(t *testing.T) {
	slice := []models.Observation{
		obs("A", 2023, 1000), obs("B", 2021, 2000), obs("C", 2022, 3000),
		obs("A", 2021, 1500), obs("B", 2023, 2500), obs("C", 2021, 3500),
		obs("A", 2022, 1700), obs("B", 2022, 2700), obs("C", 2023, 3700),
	}
	req := ComparisonRequest{Entities: []string{"C", "A", "B"}, AggregateLabel: "Durchschnitt"}

	first, err := BuildComparison(slice, req)
	require.NoError(t, err)
	second, err := BuildComparison(slice, req)
	require.NoError(t, err)

	a, err := json.Marshal(first)
	require.NoError(t, err)
	b, err := json.Marshal(second)
	require.NoError(t, err)
	assert.Equal(t, a, b)
	assert.Equal(t, []int{2021, 2022, 2023}, tableYears(first))
}
