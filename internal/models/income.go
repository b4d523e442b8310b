package models

// IncomeCategory names the value column holding the mean declared income
// per tax return for one kind of income.
type IncomeCategory string

const (
	IncomeEmployment       IncomeCategory = "medio_dipendente"
	IncomeSelfEmployment   IncomeCategory = "medio_autonomo"
	IncomeBusinessOrdinary IncomeCategory = "medio_impr_normale"
	IncomeBusinessSimple   IncomeCategory = "medio_impr_semplice"
	IncomePension          IncomeCategory = "medio_pensione"
	IncomeBuildings        IncomeCategory = "medio_fabbricati"
	IncomeTotal            IncomeCategory = "medio_totale"
)

// IncomeCategories lists every value column in dataset order.
var IncomeCategories = []IncomeCategory{
	IncomeEmployment,
	IncomeSelfEmployment,
	IncomeBusinessOrdinary,
	IncomeBusinessSimple,
	IncomePension,
	IncomeBuildings,
	IncomeTotal,
}

// IncomeRecord is one row of a MEF income table for a region or municipality.
// A nil value means the figure is not published (small entities).
type IncomeRecord struct {
	Entity string                      `json:"entity"`
	Year   int                         `json:"year"`
	Values map[IncomeCategory]*float64 `json:"values"`
}

// Value returns the figure for a category and whether it is present.
func (r IncomeRecord) Value(c IncomeCategory) (float64, bool) {
	v, ok := r.Values[c]
	if !ok || v == nil {
		return 0, false
	}
	return *v, true
}

// IncomeSelection picks the income column to compare.
type IncomeSelection struct {
	Category IncomeCategory `json:"category"`
}
