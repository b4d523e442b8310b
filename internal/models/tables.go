package models

// Observation is the uniform row the comparison and ranking builders work on.
// For income rows Min, Mean and Max carry the same value.
type Observation struct {
	Entity string  `json:"entity"`
	Year   int     `json:"year"`
	Min    float64 `json:"min"`
	Mean   float64 `json:"mean"`
	Max    float64 `json:"max"`
}

// EntityValue is one entity's band inside a comparison row.
type EntityValue struct {
	Entity string  `json:"entity"`
	Min    float64 `json:"min"`
	Mean   float64 `json:"mean"`
	Max    float64 `json:"max"`
}

// ComparisonRow holds every compared entity for one year plus the slice mean.
type ComparisonRow struct {
	Year      int           `json:"year"`
	Label     string        `json:"label"`
	Values    []EntityValue `json:"values"`
	Aggregate float64       `json:"aggregate"`
}

// ComparisonTable is the year-keyed join of the compared series.
// Rows are ascending by year and only contain years every series covers.
type ComparisonTable struct {
	Entities       []string        `json:"entities"`
	AggregateLabel string          `json:"aggregate_label"`
	ValueLabel     string          `json:"value_label"`
	Unit           string          `json:"unit"`
	Rows           []ComparisonRow `json:"rows"`
}

// IsEmpty reports whether the join produced no years.
func (t *ComparisonTable) IsEmpty() bool {
	return t == nil || len(t.Rows) == 0
}

// RankingRow is one place in a ranking.
type RankingRow struct {
	Rank   int     `json:"rank"`
	Entity string  `json:"entity"`
	Value  float64 `json:"value"`
}

// RankingTable is a top or bottom list for a single year.
type RankingTable struct {
	Year int          `json:"year"`
	Rows []RankingRow `json:"rows"`
}

// AxisBounds is the value axis range and its gridline positions.
type AxisBounds struct {
	Lower float64   `json:"lower"`
	Upper float64   `json:"upper"`
	Ticks []float64 `json:"ticks"`
}
