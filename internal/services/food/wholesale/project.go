package wholesale

// OutputRecord is one price entry keyed by the selected language's
// vocabulary.
type OutputRecord map[string]string

// Project renames the known columns of row into lang's output keys.
func Project(row RawRow, lang Language) (OutputRecord, error) {
	idx, ok := lang.index()
	if !ok {
		return nil, &ValidationError{Field: FieldLanguage, Value: string(lang), Reason: "must be one of en, zh"}
	}
	record := make(OutputRecord, len(columns))
	for _, c := range columns {
		record[c.key[idx]] = *c.field[idx](&row)
	}
	return record, nil
}

// ProjectAll projects every row, keeping length and order.
func ProjectAll(rows []RawRow, lang Language) ([]OutputRecord, error) {
	if !lang.Valid() {
		return nil, &ValidationError{Field: FieldLanguage, Value: string(lang), Reason: "must be one of en, zh"}
	}
	records := make([]OutputRecord, len(rows))
	for i, row := range rows {
		record, err := Project(row, lang)
		if err != nil {
			return nil, err
		}
		records[i] = record
	}
	return records, nil
}
