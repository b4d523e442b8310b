package models

// PropertyType is the OMI building type code (column Cod_Tip).
type PropertyType int

const (
	PropertyTypeVilla     PropertyType = 1
	PropertyTypeOffice    PropertyType = 6
	PropertyTypeShop      PropertyType = 9
	PropertyTypeGarage    PropertyType = 13
	PropertyTypeApartment PropertyType = 20
)

// Zone is the OMI zone band (column Fascia).
type Zone string

const (
	ZoneCentral     Zone = "B"
	ZoneSemiCentral Zone = "C"
	ZonePeripheral  Zone = "D"
	ZoneSuburban    Zone = "E"
	ZoneRural       Zone = "R"
)

// Condition is the OMI state of preservation (column Stato).
type Condition string

const (
	ConditionNormal    Condition = "NORMALE"
	ConditionExcellent Condition = "OTTIMO"
)

// PriceRecord is one row of the OMI price table: a price band in € per m²
// for a municipality, year and property category.
type PriceRecord struct {
	Municipality string       `json:"municipality"`
	Year         int          `json:"year"`
	PropertyType PropertyType `json:"property_type"`
	Zone         Zone         `json:"zone"`
	Condition    Condition    `json:"condition"`
	MinPrice     float64      `json:"min_price"`
	MaxPrice     float64      `json:"max_price"`
}

// MeanPrice is the midpoint of the estimated band.
func (r PriceRecord) MeanPrice() float64 {
	return (r.MinPrice + r.MaxPrice) / 2
}

// PriceSelection narrows the price table to one comparable slice.
type PriceSelection struct {
	PropertyType PropertyType `json:"property_type"`
	Zone         Zone         `json:"zone"`
	Condition    Condition    `json:"condition"`
}

// Matches reports whether the record belongs to the selected slice.
func (s PriceSelection) Matches(r PriceRecord) bool {
	return r.PropertyType == s.PropertyType && r.Zone == s.Zone && r.Condition == s.Condition
}
