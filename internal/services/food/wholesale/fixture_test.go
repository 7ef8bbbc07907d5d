package wholesale

func fixtureRecords() []map[string]string {
	return []map[string]string{
		{
			"ENGLISH CATEGORY":                  "Average Wholesale Prices",
			"中文類別":                              "平均批發價",
			"FRESH FOOD CATEGORY":               "Livestock / Poultry",
			"鮮活食品類別":                            "牲畜及家禽",
			"FOOD TYPE":                         "Live pig",
			"食品種類":                              "活豬",
			"PRICE (THIS MORNING)":              "12.44",
			"價錢 (今早)":                           "12.44",
			"UNIT":                              "($ / Catty)",
			"單位":                                "(元／斤)",
			"INTAKE DATE":                       "(Yesterday)",
			"來貨日期":                              "(昨日)",
			"SOURCE OF SUPPLY (IF APPROPRIATE)": "-",
			"供應來源 (如適用)":                        "-",
			"PROVIDED BY":                       "Slaughterhouses",
			"資料來源":                              "屠房",
			"Last Revision Date":                "29/05/2025",
			"最後更新日期":                            "29/05/2025",
		},
		{
			"ENGLISH CATEGORY":                  "Average Wholesale Prices",
			"中文類別":                              "平均批發價",
			"FRESH FOOD CATEGORY":               "Livestock / Poultry",
			"鮮活食品類別":                            "牲畜及家禽",
			"FOOD TYPE":                         "Live cattle",
			"食品種類":                              "活牛",
			"PRICE (THIS MORNING)":              "是日沒有供應",
			"價錢 (今早)":                           "是日沒有供應",
			"UNIT":                              "($ / Catty)",
			"單位":                                "(元／斤)",
			"INTAKE DATE":                       "(Yesterday)",
			"來貨日期":                              "(昨日)",
			"SOURCE OF SUPPLY (IF APPROPRIATE)": "-",
			"供應來源 (如適用)":                        "-",
			"PROVIDED BY":                       "Ng Fung Hong",
			"資料來源":                              "五豐行",
			"Last Revision Date":                "30/05/2025",
			"最後更新日期":                            "30/05/2025",
		},
		{
			"ENGLISH CATEGORY":                  "Average Wholesale Prices",
			"中文類別":                              "平均批發價",
			"FRESH FOOD CATEGORY":               "Marine fish",
			"鮮活食品類別":                            "鹹水魚",
			"FOOD TYPE":                         "Golden thread",
			"食品種類":                              "紅衫",
			"PRICE (THIS MORNING)":              "80",
			"價錢 (今早)":                           "80",
			"UNIT":                              "($ / Catty)",
			"單位":                                "(元／斤)",
			"INTAKE DATE":                       "(Yesterday)",
			"來貨日期":                              "(昨日)",
			"SOURCE OF SUPPLY (IF APPROPRIATE)": "-",
			"供應來源 (如適用)":                        "-",
			"PROVIDED BY":                       "Major wholesalers",
			"資料來源":                              "主要批發商",
			"Last Revision Date":                "01/06/2025",
			"最後更新日期":                            "01/06/2025",
		},
	}
}

func fixtureRows() []RawRow {
	rows, err := ParseRawRows(fixtureRecords())
	if err != nil {
		panic(err)
	}
	return rows
}
