package pipeline

import (
	"suedtirol/server/config"
	"suedtirol/server/internal/models"
)

// Selection axes, used in SelectionError.
const (
	AxisPropertyType   = "property type"
	AxisZone           = "zone"
	AxisCondition      = "condition"
	AxisIncomeCategory = "income category"
)

// ResolvePropertyType maps a property type label to its OMI code.
func ResolvePropertyType(label string) (models.PropertyType, error) {
	for _, o := range config.PropertyTypes {
		if o.Label == label {
			return o.Code, nil
		}
	}
	return 0, &SelectionError{Axis: AxisPropertyType, Label: label}
}

// ResolveZone maps a zone label to its OMI zone band.
func ResolveZone(label string) (models.Zone, error) {
	for _, o := range config.Zones {
		if o.Label == label {
			return o.Code, nil
		}
	}
	return "", &SelectionError{Axis: AxisZone, Label: label}
}

// ResolveCondition maps a condition label to its OMI state code.
func ResolveCondition(label string) (models.Condition, error) {
	for _, o := range config.Conditions {
		if o.Label == label {
			return o.Code, nil
		}
	}
	return "", &SelectionError{Axis: AxisCondition, Label: label}
}

// ResolveIncomeCategory maps an income label to its value column.
func ResolveIncomeCategory(label string) (models.IncomeCategory, error) {
	for _, o := range config.IncomeCategories {
		if o.Label == label {
			return o.Code, nil
		}
	}
	return "", &SelectionError{Axis: AxisIncomeCategory, Label: label}
}

// ResolvePriceSelection resolves all three price axes. The first unknown
// label wins; nothing is partially resolved.
func ResolvePriceSelection(typeLabel, zoneLabel, conditionLabel string) (models.PriceSelection, error) {
	propertyType, err := ResolvePropertyType(typeLabel)
	if err != nil {
		return models.PriceSelection{}, err
	}
	zone, err := ResolveZone(zoneLabel)
	if err != nil {
		return models.PriceSelection{}, err
	}
	condition, err := ResolveCondition(conditionLabel)
	if err != nil {
		return models.PriceSelection{}, err
	}
	return models.PriceSelection{
		PropertyType: propertyType,
		Zone:         zone,
		Condition:    condition,
	}, nil
}

// ResolveIncomeSelection resolves the income category axis.
func ResolveIncomeSelection(label string) (models.IncomeSelection, error) {
	category, err := ResolveIncomeCategory(label)
	if err != nil {
		return models.IncomeSelection{}, err
	}
	return models.IncomeSelection{Category: category}, nil
}
