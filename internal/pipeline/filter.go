package pipeline

import "suedtirol/server/internal/models"

// FilterPrices returns the records of one selection slice in table order.
// An empty result is valid.
func FilterPrices(records []models.PriceRecord, sel models.PriceSelection) []models.PriceRecord {
	out := make([]models.PriceRecord, 0, len(records))
	for _, r := range records {
		if sel.Matches(r) {
			out = append(out, r)
		}
	}
	return out
}

// PriceObservations converts price rows into observations whose mean is the
// midpoint of the band.
func PriceObservations(records []models.PriceRecord) []models.Observation {
	out := make([]models.Observation, len(records))
	for i, r := range records {
		out[i] = models.Observation{
			Entity: r.Municipality,
			Year:   r.Year,
			Min:    r.MinPrice,
			Mean:   r.MeanPrice(),
			Max:    r.MaxPrice,
		}
	}
	return out
}

// IncomeObservations selects one income column. Rows without a published
// value for that column are skipped.
func IncomeObservations(records []models.IncomeRecord, sel models.IncomeSelection) []models.Observation {
	out := make([]models.Observation, 0, len(records))
	for _, r := range records {
		v, ok := r.Value(sel.Category)
		if !ok {
			continue
		}
		out = append(out, models.Observation{
			Entity: r.Entity,
			Year:   r.Year,
			Min:    v,
			Mean:   v,
			Max:    v,
		})
	}
	return out
}

// EntityOptions lists the distinct entities of a slice in first-seen order.
func EntityOptions(slice []models.Observation) []string {
	seen := make(map[string]bool)
	options := make([]string, 0)
	for _, o := range slice {
		if o.Entity == "" || seen[o.Entity] {
			continue
		}
		seen[o.Entity] = true
		options = append(options, o.Entity)
	}
	return options
}
