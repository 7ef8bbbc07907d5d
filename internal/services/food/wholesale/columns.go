package wholesale

// column binds one semantic field to its raw bilingual CSV headers and its
// output keys. The projector and the raw-row parser both read this table, so
// the mapping is declared exactly once.
type column struct {
	key    [languageCount]string
	source [languageCount]string
	field  [languageCount]func(*RawRow) *string
}

// Raw header names used outside the table.
const (
	ColumnLastRevisionDate   = "Last Revision Date"
	ColumnLastRevisionDateZH = "最後更新日期"
)

var columns = []column{
	{
		key:    [languageCount]string{"category", "類別"},
		source: [languageCount]string{"ENGLISH CATEGORY", "中文類別"},
		field: [languageCount]func(*RawRow) *string{
			func(r *RawRow) *string { return &r.Category },
			func(r *RawRow) *string { return &r.CategoryZH },
		},
	},
	{
		key:    [languageCount]string{"fresh_food_category", "鮮活食品類別"},
		source: [languageCount]string{"FRESH FOOD CATEGORY", "鮮活食品類別"},
		field: [languageCount]func(*RawRow) *string{
			func(r *RawRow) *string { return &r.FreshFoodCategory },
			func(r *RawRow) *string { return &r.FreshFoodCategoryZH },
		},
	},
	{
		key:    [languageCount]string{"food_type", "食品種類"},
		source: [languageCount]string{"FOOD TYPE", "食品種類"},
		field: [languageCount]func(*RawRow) *string{
			func(r *RawRow) *string { return &r.FoodType },
			func(r *RawRow) *string { return &r.FoodTypeZH },
		},
	},
	{
		key:    [languageCount]string{"price", "價錢"},
		source: [languageCount]string{"PRICE (THIS MORNING)", "價錢 (今早)"},
		field: [languageCount]func(*RawRow) *string{
			func(r *RawRow) *string { return &r.Price },
			func(r *RawRow) *string { return &r.PriceZH },
		},
	},
	{
		key:    [languageCount]string{"unit", "單位"},
		source: [languageCount]string{"UNIT", "單位"},
		field: [languageCount]func(*RawRow) *string{
			func(r *RawRow) *string { return &r.Unit },
			func(r *RawRow) *string { return &r.UnitZH },
		},
	},
	{
		key:    [languageCount]string{"intake_date", "來貨日期"},
		source: [languageCount]string{"INTAKE DATE", "來貨日期"},
		field: [languageCount]func(*RawRow) *string{
			func(r *RawRow) *string { return &r.IntakeDate },
			func(r *RawRow) *string { return &r.IntakeDateZH },
		},
	},
	{
		key:    [languageCount]string{"source", "供應來源"},
		source: [languageCount]string{"SOURCE OF SUPPLY (IF APPROPRIATE)", "供應來源 (如適用)"},
		field: [languageCount]func(*RawRow) *string{
			func(r *RawRow) *string { return &r.SourceOfSupply },
			func(r *RawRow) *string { return &r.SourceOfSupplyZH },
		},
	},
	{
		key:    [languageCount]string{"provided_by", "資料來源"},
		source: [languageCount]string{"PROVIDED BY", "資料來源"},
		field: [languageCount]func(*RawRow) *string{
			func(r *RawRow) *string { return &r.ProvidedBy },
			func(r *RawRow) *string { return &r.ProvidedByZH },
		},
	},
	{
		key:    [languageCount]string{"last_revision_date", "最後更新日期"},
		source: [languageCount]string{ColumnLastRevisionDate, ColumnLastRevisionDateZH},
		field: [languageCount]func(*RawRow) *string{
			func(r *RawRow) *string { return &r.LastRevisionDate },
			func(r *RawRow) *string { return &r.LastRevisionDateZH },
		},
	},
}

// OutputKeys returns the record keys produced for lang, in table order.
func OutputKeys(lang Language) []string {
	idx, ok := lang.index()
	if !ok {
		return nil
	}
	keys := make([]string, len(columns))
	for i, c := range columns {
		keys[i] = c.key[idx]
	}
	return keys
}

// SourceColumns returns every raw CSV header a RawRow is built from.
func SourceColumns() []string {
	headers := make([]string, 0, len(columns)*languageCount)
	for _, c := range columns {
		headers = append(headers, c.source[:]...)
	}
	return headers
}
