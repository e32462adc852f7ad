package sizing

import "github.com/shopspring/decimal"

type row struct {
	label    string
	diameter string
}

var tables = map[Region][]Entry{
	US: build(US, []row{
		{"4", "14.9"}, {"4 1/2", "15.3"}, {"5", "15.7"}, {"5 1/2", "16.1"},
		{"6", "16.5"}, {"6 1/2", "16.9"}, {"7", "17.3"}, {"7 1/2", "17.7"},
		{"8", "18.2"}, {"8 1/2", "18.6"}, {"9", "19.0"}, {"9 1/2", "19.4"},
		{"10", "19.8"}, {"10 1/2", "20.2"}, {"11", "20.6"}, {"11 1/2", "21.0"},
		{"12", "21.4"}, {"12 1/2", "21.8"}, {"13", "22.2"},
	}),
	UKAU: build(UKAU, []row{
		{"F", "14.1"}, {"F 1/2", "14.3"}, {"G", "14.5"}, {"G 1/2", "14.7"},
		{"H", "14.9"}, {"H 1/2", "15.1"}, {"I", "15.2"}, {"I 1/2", "15.4"},
		{"J", "15.6"}, {"J 1/2", "15.8"}, {"K", "16.0"}, {"K 1/2", "16.2"},
		{"L", "16.4"}, {"L 1/2", "16.6"}, {"M", "16.8"}, {"M 1/2", "17.0"},
		{"N", "17.2"}, {"N 1/2", "17.4"}, {"O", "17.6"}, {"O 1/2", "17.8"},
		{"P", "18.0"}, {"P 1/2", "18.2"}, {"Q", "18.4"}, {"Q 1/2", "18.6"},
		{"R", "18.8"}, {"R 1/2", "19.0"},
	}),
	// EU labels are the inner circumference in millimetres.
	EU: build(EU, []row{
		{"47", "14.96"}, {"48", "15.28"}, {"49", "15.60"}, {"50", "15.92"},
		{"51", "16.23"}, {"52", "16.55"}, {"53", "16.87"}, {"54", "17.19"},
		{"55", "17.51"}, {"56", "17.82"}, {"57", "18.14"}, {"58", "18.46"},
		{"59", "18.78"}, {"60", "19.10"}, {"61", "19.41"}, {"62", "19.73"},
		{"63", "20.05"}, {"64", "20.37"}, {"65", "20.69"},
	}),
	// German labels are the inner diameter itself.
	DE: build(DE, []row{
		{"15", "15.0"}, {"15.5", "15.5"}, {"16", "16.0"}, {"16.5", "16.5"},
		{"17", "17.0"}, {"17.5", "17.5"}, {"18", "18.0"}, {"18.5", "18.5"},
		{"19", "19.0"}, {"19.5", "19.5"}, {"20", "20.0"}, {"20.5", "20.5"},
		{"21", "21.0"},
	}),
	Asia: build(Asia, []row{
		{"1", "13.0"}, {"2", "13.3"}, {"3", "13.7"}, {"4", "14.0"},
		{"5", "14.3"}, {"6", "14.7"}, {"7", "15.0"}, {"8", "15.3"},
		{"9", "15.7"}, {"10", "16.0"}, {"11", "16.3"}, {"12", "16.7"},
		{"13", "17.0"}, {"14", "17.3"}, {"15", "17.7"}, {"16", "18.0"},
		{"17", "18.3"}, {"18", "18.7"}, {"19", "19.0"}, {"20", "19.3"},
		{"21", "19.7"}, {"22", "20.0"}, {"23", "20.3"}, {"24", "20.7"},
		{"25", "21.0"}, {"26", "21.3"},
	}),
}

func build(region Region, rows []row) []Entry {
	entries := make([]Entry, 0, len(rows))
	for _, r := range rows {
		entries = append(entries, Entry{
			Region:     region,
			Label:      r.label,
			DiameterMM: decimal.RequireFromString(r.diameter).Round(diameterScale),
		})
	}
	return entries
}
