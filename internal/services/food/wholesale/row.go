package wholesale

import (
	"fmt"
	"strings"
)

// RawRow is one untransformed price entry as published, carrying both the
// English and Chinese value of every known column.
type RawRow struct {
	Category            string
	CategoryZH          string
	FreshFoodCategory   string
	FreshFoodCategoryZH string
	FoodType            string
	FoodTypeZH          string
	Price               string
	PriceZH             string
	Unit                string
	UnitZH              string
	IntakeDate          string
	IntakeDateZH        string
	SourceOfSupply      string
	SourceOfSupplyZH    string
	ProvidedBy          string
	ProvidedByZH        string
	LastRevisionDate    string
	LastRevisionDateZH  string
}

// ParseRawRow builds a RawRow from a header-keyed CSV record. Every known
// column must be present; unknown columns are ignored.
func ParseRawRow(record map[string]string) (RawRow, error) {
	var row RawRow
	var missing []string
	for _, c := range columns {
		for lang := range languageCount {
			value, ok := record[c.source[lang]]
			if !ok {
				missing = append(missing, c.source[lang])
				continue
			}
			*c.field[lang](&row) = value
		}
	}
	if len(missing) > 0 {
		return RawRow{}, fmt.Errorf("missing columns: %s", strings.Join(missing, ", "))
	}
	return row, nil
}

// ParseRawRows converts a fetched table, preserving order. The first bad
// record fails the whole table and is reported by its 1-based data row.
func ParseRawRows(records []map[string]string) ([]RawRow, error) {
	rows := make([]RawRow, 0, len(records))
	for i, record := range records {
		row, err := ParseRawRow(record)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}
		rows = append(rows, row)
	}
	return rows, nil
}
