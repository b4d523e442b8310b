package pipeline

import (
	"math"
	"sort"
	"strconv"

	"github.com/montanaflynn/stats"

	"suedtirol/server/internal/models"
)

const (
	MinComparedEntities = 2
	MaxComparedEntities = 3
	MaxPinnedEntities   = 2
)

// ComparisonRequest describes which series to join.
type ComparisonRequest struct {
	// Entities are the user's picks.
	Entities []string
	// Pinned are fixed series shown before the picks.
	Pinned []string
	// ExcludeFromAggregate names entities left out of the slice mean, e.g.
	// published average rows that would otherwise be counted twice.
	ExcludeFromAggregate []string

	AggregateLabel string
	ValueLabel     string
	Unit           string
}

func (r ComparisonRequest) validate() error {
	if len(r.Entities) < MinComparedEntities {
		return ErrTooFewEntities
	}
	if len(r.Entities) > MaxComparedEntities {
		return ErrTooManyEntities
	}
	if len(r.Pinned) > MaxPinnedEntities {
		return ErrTooManyPinned
	}
	return nil
}

// BuildComparison joins the yearly series of the requested entities with
// the per-year mean of the whole slice. Only years present in every series
// survive; an entity without rows therefore yields an empty table.
func BuildComparison(slice []models.Observation, req ComparisonRequest) (*models.ComparisonTable, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}

	entities := make([]string, 0, len(req.Pinned)+len(req.Entities))
	entities = append(entities, req.Pinned...)
	entities = append(entities, req.Entities...)

	series := make([]map[int]models.EntityValue, len(entities))
	for i, name := range entities {
		series[i] = entitySeries(slice, name)
	}

	aggregate, err := aggregateSeries(slice, req.ExcludeFromAggregate)
	if err != nil {
		return nil, err
	}

	years := make([]int, 0, len(aggregate))
	for year := range aggregate {
		years = append(years, year)
	}
	sort.Ints(years)

	rows := make([]models.ComparisonRow, 0, len(years))
	for _, year := range years {
		values := make([]models.EntityValue, 0, len(series))
		for _, s := range series {
			v, ok := s[year]
			if !ok {
				break
			}
			values = append(values, v)
		}
		if len(values) != len(series) {
			continue
		}
		rows = append(rows, models.ComparisonRow{
			Year:      year,
			Label:     strconv.Itoa(year),
			Values:    values,
			Aggregate: aggregate[year],
		})
	}

	return &models.ComparisonTable{
		Entities:       entities,
		AggregateLabel: req.AggregateLabel,
		ValueLabel:     req.ValueLabel,
		Unit:           req.Unit,
		Rows:           rows,
	}, nil
}

// entitySeries indexes one entity's rows by year. A repeated year keeps the
// first row seen.
func entitySeries(slice []models.Observation, entity string) map[int]models.EntityValue {
	out := make(map[int]models.EntityValue)
	for _, o := range slice {
		if o.Entity != entity {
			continue
		}
		if _, ok := out[o.Year]; ok {
			continue
		}
		out[o.Year] = models.EntityValue{
			Entity: entity,
			Min:    o.Min,
			Mean:   o.Mean,
			Max:    o.Max,
		}
	}
	return out
}

// aggregateSeries groups the slice by year and averages the mean values,
// rounded half to even to a whole number.
func aggregateSeries(slice []models.Observation, exclude []string) (map[int]float64, error) {
	skip := make(map[string]bool, len(exclude))
	for _, name := range exclude {
		skip[name] = true
	}

	byYear := make(map[int][]float64)
	for _, o := range slice {
		if skip[o.Entity] {
			continue
		}
		byYear[o.Year] = append(byYear[o.Year], o.Mean)
	}

	out := make(map[int]float64, len(byYear))
	for year, values := range byYear {
		mean, err := stats.Mean(values)
		if err != nil {
			return nil, err
		}
		out[year] = math.RoundToEven(mean)
	}
	return out, nil
}
