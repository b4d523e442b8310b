package pipeline

import (
	"suedtirol/server/config"
	"suedtirol/server/internal/models"
)

// ComparisonResult is what a dashboard renders for a comparison: the joined
// table and, when it has rows, the value axis.
type ComparisonResult struct {
	Table *models.ComparisonTable `json:"table"`
	Axis  *models.AxisBounds      `json:"axis,omitempty"`
}

// RankingResult is the pair of top and bottom lists for one year.
type RankingResult struct {
	Year   int                 `json:"year"`
	Top    models.RankingTable `json:"top"`
	Bottom models.RankingTable `json:"bottom"`
}

// PriceSlice filters the price table and converts it to observations.
func PriceSlice(records []models.PriceRecord, sel models.PriceSelection) []models.Observation {
	return PriceObservations(FilterPrices(records, sel))
}

// PriceComparison compares two or three municipalities within a price slice.
func PriceComparison(records []models.PriceRecord, sel models.PriceSelection, entities []string) (*ComparisonResult, error) {
	table, err := BuildComparison(PriceSlice(records, sel), ComparisonRequest{
		Entities:       entities,
		AggregateLabel: config.PriceAggregateName,
		ValueLabel:     config.PriceValueLabel,
		Unit:           config.PriceUnit,
	})
	if err != nil {
		return nil, err
	}
	return withAxis(table, config.PriceAxisStep, config.PriceAxisTickStep)
}

// EmptyPriceComparison is the comparison of a slice with too few
// municipalities to pick from: the table has no rows and there is no axis.
func EmptyPriceComparison(entities []string) *ComparisonResult {
	if entities == nil {
		entities = []string{}
	}
	return &ComparisonResult{Table: &models.ComparisonTable{
		Entities:       entities,
		AggregateLabel: config.PriceAggregateName,
		ValueLabel:     config.PriceValueLabel,
		Unit:           config.PriceUnit,
		Rows:           []models.ComparisonRow{},
	}}
}

// PriceRanking ranks the municipalities of a price slice. A nil year means
// the latest year of the slice.
func PriceRanking(records []models.PriceRecord, sel models.PriceSelection, year *int, n int) RankingResult {
	return ranking(PriceSlice(records, sel), year, n)
}

// IncomeComparison compares picked entities of an income table, with pinned
// series shown first. The published average row is never part of the
// computed aggregate, and the aggregate never carries the published row's name.
func IncomeComparison(records []models.IncomeRecord, sel models.IncomeSelection, entities, pinned []string, averageName string) (*ComparisonResult, error) {
	table, err := BuildComparison(IncomeObservations(records, sel), ComparisonRequest{
		Entities:             entities,
		Pinned:               pinned,
		ExcludeFromAggregate: []string{averageName},
		AggregateLabel:       config.IncomeAggregateName,
		ValueLabel:           config.IncomeValueLabel,
		Unit:                 config.IncomeUnit,
	})
	if err != nil {
		return nil, err
	}
	return withAxis(table, config.IncomeAxisStep, config.IncomeAxisTickStep)
}

// IncomeRanking ranks the entities of an income column, leaving out the
// published average row.
func IncomeRanking(records []models.IncomeRecord, sel models.IncomeSelection, averageName string, year *int, n int) RankingResult {
	slice := IncomeObservations(records, sel)
	filtered := make([]models.Observation, 0, len(slice))
	for _, o := range slice {
		if o.Entity != averageName {
			filtered = append(filtered, o)
		}
	}
	return ranking(filtered, year, n)
}

func ranking(slice []models.Observation, year *int, n int) RankingResult {
	y := 0
	if year != nil {
		y = *year
	} else if latest, ok := LatestYear(slice); ok {
		y = latest
	}
	top, bottom := BuildRanking(slice, y, n)
	return RankingResult{Year: y, Top: top, Bottom: bottom}
}

func withAxis(table *models.ComparisonTable, step, tickStep float64) (*ComparisonResult, error) {
	result := &ComparisonResult{Table: table}
	if table.IsEmpty() {
		return result, nil
	}
	bounds, err := AxisBounds(ComparisonValues(table), step, tickStep)
	if err != nil {
		return nil, err
	}
	result.Axis = &bounds
	return result, nil
}
