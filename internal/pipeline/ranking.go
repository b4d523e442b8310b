package pipeline

import (
	"sort"

	"suedtirol/server/internal/models"
)

// DefaultRankingSize is used when a non-positive n is requested.
const DefaultRankingSize = 5

// LatestYear returns the most recent year of a slice.
func LatestYear(slice []models.Observation) (int, bool) {
	if len(slice) == 0 {
		return 0, false
	}
	latest := slice[0].Year
	for _, o := range slice[1:] {
		if o.Year > latest {
			latest = o.Year
		}
	}
	return latest, true
}

// BuildRanking returns the n highest and n lowest mean values of one year.
// Ties keep table order. Both lists are ranked from 1 and may share rows
// when the year has fewer than 2n entries.
func BuildRanking(slice []models.Observation, year int, n int) (top, bottom models.RankingTable) {
	if n <= 0 {
		n = DefaultRankingSize
	}

	rows := make([]models.Observation, 0)
	for _, o := range slice {
		if o.Year == year {
			rows = append(rows, o)
		}
	}

	desc := make([]models.Observation, len(rows))
	copy(desc, rows)
	sort.SliceStable(desc, func(i, j int) bool { return desc[i].Mean > desc[j].Mean })

	asc := make([]models.Observation, len(rows))
	copy(asc, rows)
	sort.SliceStable(asc, func(i, j int) bool { return asc[i].Mean < asc[j].Mean })

	return rankingTable(desc, year, n), rankingTable(asc, year, n)
}

func rankingTable(sorted []models.Observation, year int, n int) models.RankingTable {
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	table := models.RankingTable{Year: year, Rows: make([]models.RankingRow, len(sorted))}
	for i, o := range sorted {
		table.Rows[i] = models.RankingRow{
			Rank:   i + 1,
			Entity: o.Entity,
			Value:  o.Mean,
		}
	}
	return table
}
