package config

import "suedtirol/server/internal/models"

// PropertyTypeOption maps a dropdown label to its OMI code
type PropertyTypeOption struct {
	Label string              `json:"label"`
	Code  models.PropertyType `json:"code"`
}

// ZoneOption maps a dropdown label to its OMI zone band
type ZoneOption struct {
	Label string      `json:"label"`
	Code  models.Zone `json:"code"`
}

// ConditionOption maps a dropdown label to its OMI condition
type ConditionOption struct {
	Label string           `json:"label"`
	Code  models.Condition `json:"code"`
}

// IncomeCategoryOption maps a dropdown label to its income column
type IncomeCategoryOption struct {
	Label string                `json:"label"`
	Code  models.IncomeCategory `json:"code"`
}

// PropertyTypes lists the property type choices in dropdown order; the first
// entry is the default. Shops and storage rooms share code 9 in the published table.
var PropertyTypes = []PropertyTypeOption{
	{Label: "Privatwohnungen", Code: models.PropertyTypeApartment},
	{Label: "Villen und Einfamilienhäuser", Code: models.PropertyTypeVilla},
	{Label: "Büros", Code: models.PropertyTypeOffice},
	{Label: "Geschäfte", Code: models.PropertyTypeShop},
	{Label: "Garagen", Code: models.PropertyTypeGarage},
	{Label: "Magazine", Code: models.PropertyTypeShop},
}

// Zones lists the zone choices in dropdown order.
var Zones = []ZoneOption{
	{Label: "Zentral", Code: models.ZoneCentral},
	{Label: "Halbzentral", Code: models.ZoneSemiCentral},
	{Label: "Peripher", Code: models.ZonePeripheral},
	{Label: "Suburban", Code: models.ZoneSuburban},
	{Label: "Extraurban", Code: models.ZoneRural},
}

// Conditions lists the condition choices in dropdown order.
var Conditions = []ConditionOption{
	{Label: "Normal", Code: models.ConditionNormal},
	{Label: "Ausgezeichnet", Code: models.ConditionExcellent},
}

// IncomeCategories lists the income choices in dropdown order.
var IncomeCategories = []IncomeCategoryOption{
	{Label: "Einkommen aus abhängiger Beschäftigung", Code: models.IncomeEmployment},
	{Label: "Einkommen aus autonomer Arbeit", Code: models.IncomeSelfEmployment},
	{Label: "Unternehmer mit regulärer Buchführung", Code: models.IncomeBusinessOrdinary},
	{Label: "Unternehmer mit vereinfachter Buchführung", Code: models.IncomeBusinessSimple},
	{Label: "Einkommen aus Pensionen", Code: models.IncomePension},
	{Label: "Einkommen aus Gebäuden", Code: models.IncomeBuildings},
	{Label: "Gesamtes steuerpflichtiges Einkommen", Code: models.IncomeTotal},
}

// Names used by the income tables after normalization.
const (
	HomeProvince            = "Südtirol"
	RegionAverageName       = "Durchschnitt der Regionen"
	MunicipalityAverageName = "Durchschnitt der Gemeinden"
	PriceAggregateName      = "Durchschnitt Gemeinden"
	IncomeAggregateName     = "Durchschnitt (berechnet)"
	sourceTrentinoName      = "Trentino Alto Adige(P.A.Trento)"
	sourceRegionAverageName = "Average Region"
	sourceComuneAverageName = "Average Comune"
	normalizedTrentinoName  = "Trentino"
)

// EntityRenames rewrites source names into the labels shown to users.
var EntityRenames = map[string]string{
	sourceTrentinoName:      normalizedTrentinoName,
	sourceRegionAverageName: RegionAverageName,
	sourceComuneAverageName: MunicipalityAverageName,
}

// Regions is the list of regions offered for comparison with South Tyrol.
var Regions = []string{
	"Abruzzo", "Basilicata", "Calabria", "Campania", "Emilia Romagna", "Friuli Venezia Giulia",
	"Lazio", "Liguria", "Lombardia", "Marche", "Molise", "Piemonte", "Puglia", "Sardegna",
	"Sicilia", "Toscana", "Trentino", "Umbria", "Valle d'Aosta", "Veneto",
}

// DefaultRegions are the preselected region dropdown values.
var DefaultRegions = []string{"Emilia Romagna", "Lombardia", "Trentino"}

// Municipalities is the list of South Tyrolean municipalities offered in the
// income comparison.
var Municipalities = []string{
	"Abtei", "Ahrntal", "Aldein", "Algund", "Altrei", "Andrian", "Auer", "Barbian", "Bozen", "Branzoll", "Brenner",
	"Brixen", "Bruneck", "Burgstall", "Corvara", "Deutschnofen", "Enneberg", "Eppan an der Weinstrasse", "Feldthurns",
	"Franzensfeste", "Freienfeld", "Gais", "Gargazon", "Glurns", "Graun im Vinschgau", "Gsies", "Hafling", "Innichen",
	"Kaltern", "Kardaun", "Kastelbell -Tschars", "Kastelruth", "Kiens", "Klausen", "Kuens", "Kurtatsch an der Weinstrasse",
	"Kurtinig an der Weinstrasse", "Laas", "Lajen", "Lana", "Latsch", "Laurein", "Leifers", "Lüsen", "Mals",
	"Margreid an der Weinstrasse", "Marling", "Martell", "Meran", "Montan", "Moos in Passeier", "Mölten", "Mühlbach",
	"Mühlwald", "Nals", "Naturns", "Natz-Schabs", "Neumarkt", "Niederdorf", "Olang", "Partschins", "Percha", "Pfalzen",
	"Pfatten", "Pfitsch", "Plaus", "Prad am Stilfserjoch", "Prags", "Prettau", "Proveis", "Rasen-Antholz", "Ratschings",
	"Riffian", "Ritten", "Rodeneck", "Salurn", "Sand in Taufers", "Sarntal", "Schenna", "Schlanders", "Schluderns", "Schnals",
	"Seis", "St. Christina in Gröden", "St. Leonhard in Passeier", "St. Lorenzen", "St. Martin in Passeier", "St. Martin in Thurn",
	"St. Pankraz", "St. Ulrich", "Sterzing", "Stilfs", "Taufers", "Terenten", "Terlan", "Tiers", "Tirol", "Tisens", "Toblach",
	"Tramin an der Weinstrasse", "Truden", "Tscherms", "Ulten", "Unsere Liebe Frau im Walde - St. Felix", "Vahrn", "Villanders",
	"Villnöss", "Vintl", "Völs am Schlern", "Vöran", "Waidbruck", "Welsberg", "Welschnofen", "Wengen", "Wolkenstein in Gröden",
}

// DefaultMunicipalities are the preselected municipality dropdown values.
var DefaultMunicipalities = []string{"Algund", "Bozen", "Meran"}

// Axis steps per dashboard. Step rounds the range, TickStep spaces the gridlines.
const (
	PriceAxisStep      = 500
	PriceAxisTickStep  = 500
	IncomeAxisStep     = 1000
	IncomeAxisTickStep = 2000
)

// Units and labels shown next to the values.
const (
	PriceUnit        = "€ pro Quadratmeter"
	PriceValueLabel  = "Mittelwert Verkaufspreis"
	IncomeUnit       = "€"
	IncomeValueLabel = "Einkommen"
)

// RankingSize is the length of the top and bottom lists.
const RankingSize = 5

// PropertyTypeLabels returns the property type labels in dropdown order
func PropertyTypeLabels() []string {
	labels := make([]string, len(PropertyTypes))
	for i, o := range PropertyTypes {
		labels[i] = o.Label
	}
	return labels
}

// ZoneLabels returns the zone labels in dropdown order
func ZoneLabels() []string {
	labels := make([]string, len(Zones))
	for i, o := range Zones {
		labels[i] = o.Label
	}
	return labels
}

// ConditionLabels returns the condition labels in dropdown order
func ConditionLabels() []string {
	labels := make([]string, len(Conditions))
	for i, o := range Conditions {
		labels[i] = o.Label
	}
	return labels
}

// IncomeCategoryLabels returns the income category labels in dropdown order
func IncomeCategoryLabels() []string {
	labels := make([]string, len(IncomeCategories))
	for i, o := range IncomeCategories {
		labels[i] = o.Label
	}
	return labels
}

// NormalizeEntity applies EntityRenames to a source name.
func NormalizeEntity(name string) string {
	if renamed, ok := EntityRenames[name]; ok {
		return renamed
	}
	return name
}
