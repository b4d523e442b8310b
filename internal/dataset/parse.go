package dataset

import (
	"bytes"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"suedtirol/server/config"
	"suedtirol/server/internal/models"
)

// Dataset names, used in errors, logs and as snapshot keys.
const (
	DatasetPrices               = "prices"
	DatasetIncomeRegions        = "income_regions"
	DatasetIncomeMunicipalities = "income_municipalities"
)

// Datasets lists every dataset in load order.
var Datasets = []string{DatasetPrices, DatasetIncomeRegions, DatasetIncomeMunicipalities}

// Column names of the published workbooks.
const (
	colMunicipality = "gemeinde_de"
	colYear         = "Anno"
	colTypeCode     = "Cod_Tip"
	colZone         = "Fascia"
	colCondition    = "Stato"
	colMinPrice     = "Compr_min"
	colMaxPrice     = "Compr_max"

	colRegion = "Regione"
	colComune = "Comune_DE"
)

var priceColumns = []string{colMunicipality, colYear, colTypeCode, colZone, colCondition, colMinPrice, colMaxPrice}

func incomeColumns(entityColumn string) []string {
	cols := []string{entityColumn, colYear}
	for _, c := range models.IncomeCategories {
		cols = append(cols, string(c))
	}
	return cols
}

// readRows returns the raw cell values of the first sheet.
func readRows(content []byte) ([][]string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(content))
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrEmptyWorkbook
	}

	rows, err := f.GetRows(sheets[0], excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %s: %w", sheets[0], err)
	}
	if len(rows) == 0 {
		return nil, ErrEmptyWorkbook
	}
	return rows, nil
}

type columnIndex map[string]int

func headerIndex(dataset string, header []string, required []string) (columnIndex, error) {
	idx := make(columnIndex, len(header))
	for i, h := range header {
		name := strings.TrimSpace(h)
		if _, dup := idx[name]; !dup {
			idx[name] = i
		}
	}

	var missing []string
	for _, col := range required {
		if _, ok := idx[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, &SchemaError{Dataset: dataset, Missing: missing}
	}
	return idx, nil
}

// cell returns the trimmed value of a column. excelize drops trailing empty
// cells, so short rows are normal.
func (c columnIndex) cell(row []string, column string) string {
	i := c[column]
	if i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func blankRow(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

func parseNumber(dataset string, rowNum int, column, value string) (float64, error) {
	v, err := strconv.ParseFloat(value, 64)
	if err == nil && (math.IsNaN(v) || math.IsInf(v, 0)) {
		err = strconv.ErrRange
	}
	if err != nil {
		return 0, &RowError{Dataset: dataset, Row: rowNum, Column: column, Value: value, Err: err}
	}
	return v, nil
}

// parseInt accepts integral numbers stored as floats, e.g. "2023.0".
func parseInt(dataset string, rowNum int, column, value string) (int, error) {
	v, err := parseNumber(dataset, rowNum, column, value)
	if err != nil {
		return 0, err
	}
	if v != math.Trunc(v) {
		return 0, &RowError{Dataset: dataset, Row: rowNum, Column: column, Value: value, Err: strconv.ErrSyntax}
	}
	return int(v), nil
}

// ParsePrices reads the OMI price workbook. Rows without a municipality or
// without a price band are skipped.
func ParsePrices(content []byte) ([]models.PriceRecord, error) {
	rows, err := readRows(content)
	if err != nil {
		return nil, err
	}
	idx, err := headerIndex(DatasetPrices, rows[0], priceColumns)
	if err != nil {
		return nil, err
	}

	records := make([]models.PriceRecord, 0, len(rows)-1)
	for i, row := range rows[1:] {
		rowNum := i + 2
		if blankRow(row) {
			continue
		}
		municipality := idx.cell(row, colMunicipality)
		minRaw, maxRaw := idx.cell(row, colMinPrice), idx.cell(row, colMaxPrice)
		if municipality == "" || minRaw == "" || maxRaw == "" {
			continue
		}

		year, err := parseInt(DatasetPrices, rowNum, colYear, idx.cell(row, colYear))
		if err != nil {
			return nil, err
		}
		code, err := parseInt(DatasetPrices, rowNum, colTypeCode, idx.cell(row, colTypeCode))
		if err != nil {
			return nil, err
		}
		minPrice, err := parseNumber(DatasetPrices, rowNum, colMinPrice, minRaw)
		if err != nil {
			return nil, err
		}
		maxPrice, err := parseNumber(DatasetPrices, rowNum, colMaxPrice, maxRaw)
		if err != nil {
			return nil, err
		}

		records = append(records, models.PriceRecord{
			Municipality: config.NormalizeEntity(municipality),
			Year:         year,
			PropertyType: models.PropertyType(code),
			Zone:         models.Zone(strings.ToUpper(idx.cell(row, colZone))),
			Condition:    models.Condition(strings.ToUpper(idx.cell(row, colCondition))),
			MinPrice:     minPrice,
			MaxPrice:     maxPrice,
		})
	}
	return records, nil
}

// ParseRegionIncome reads the MEF income workbook keyed by region.
func ParseRegionIncome(content []byte) ([]models.IncomeRecord, error) {
	return parseIncome(content, DatasetIncomeRegions, colRegion)
}

// ParseMunicipalityIncome reads the MEF income workbook keyed by municipality.
func ParseMunicipalityIncome(content []byte) ([]models.IncomeRecord, error) {
	return parseIncome(content, DatasetIncomeMunicipalities, colComune)
}

func parseIncome(content []byte, dataset, entityColumn string) ([]models.IncomeRecord, error) {
	rows, err := readRows(content)
	if err != nil {
		return nil, err
	}
	idx, err := headerIndex(dataset, rows[0], incomeColumns(entityColumn))
	if err != nil {
		return nil, err
	}

	records := make([]models.IncomeRecord, 0, len(rows)-1)
	for i, row := range rows[1:] {
		rowNum := i + 2
		if blankRow(row) {
			continue
		}
		entity := idx.cell(row, entityColumn)
		if entity == "" {
			continue
		}

		year, err := parseInt(dataset, rowNum, colYear, idx.cell(row, colYear))
		if err != nil {
			return nil, err
		}

		values := make(map[models.IncomeCategory]*float64, len(models.IncomeCategories))
		for _, c := range models.IncomeCategories {
			raw := idx.cell(row, string(c))
			if raw == "" {
				values[c] = nil
				continue
			}
			v, err := parseNumber(dataset, rowNum, string(c), raw)
			if err != nil {
				return nil, err
			}
			values[c] = &v
		}

		records = append(records, models.IncomeRecord{
			Entity: config.NormalizeEntity(entity),
			Year:   year,
			Values: values,
		})
	}
	return records, nil
}
