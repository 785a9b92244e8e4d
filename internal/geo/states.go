package geo

// stateCodes maps full state names to FIPS codes.
var stateCodes = map[string]string{
	"Alabama":              "01",
	"Alaska":               "02",
	"Arizona":              "04",
	"Arkansas":             "05",
	"California":           "06",
	"Colorado":             "08",
	"Connecticut":          "09",
	"Delaware":             "10",
	"District of Columbia": "11",
	"Florida":              "12",
	"Georgia":              "13",
	"Hawaii":               "15",
	"Idaho":                "16",
	"Illinois":             "17",
	"Indiana":              "18",
	"Iowa":                 "19",
	"Kansas":               "20",
	"Kentucky":             "21",
	"Louisiana":            "22",
	"Maine":                "23",
	"Maryland":             "24",
	"Massachusetts":        "25",
	"Michigan":             "26",
	"Minnesota":            "27",
	"Mississippi":          "28",
	"Missouri":             "29",
	"Montana":              "30",
	"Nebraska":             "31",
	"Nevada":               "32",
	"New Hampshire":        "33",
	"New Jersey":           "34",
	"New Mexico":           "35",
	"New York":             "36",
	"North Carolina":       "37",
	"North Dakota":         "38",
	"Ohio":                 "39",
	"Oklahoma":             "40",
	"Oregon":               "41",
	"Pennsylvania":         "42",
	"Rhode Island":         "44",
	"South Carolina":       "45",
	"South Dakota":         "46",
	"Tennessee":            "47",
	"Texas":                "48",
	"Utah":                 "49",
	"Vermont":              "50",
	"Virginia":             "51",
	"Washington":           "53",
	"West Virginia":        "54",
	"Wisconsin":            "55",
	"Wyoming":              "56",
}

var stateAbbreviations = map[string]string{
	"AL": "Alabama",
	"AK": "Alaska",
	"AZ": "Arizona",
	"AR": "Arkansas",
	"CA": "California",
	"CO": "Colorado",
	"CT": "Connecticut",
	"DE": "Delaware",
	"DC": "District of Columbia",
	"FL": "Florida",
	"GA": "Georgia",
	"HI": "Hawaii",
	"ID": "Idaho",
	"IL": "Illinois",
	"IN": "Indiana",
	"IA": "Iowa",
	"KS": "Kansas",
	"KY": "Kentucky",
	"LA": "Louisiana",
	"ME": "Maine",
	"MD": "Maryland",
	"MA": "Massachusetts",
	"MI": "Michigan",
	"MN": "Minnesota",
	"MS": "Mississippi",
	"MO": "Missouri",
	"MT": "Montana",
	"NE": "Nebraska",
	"NV": "Nevada",
	"NH": "New Hampshire",
	"NJ": "New Jersey",
	"NM": "New Mexico",
	"NY": "New York",
	"NC": "North Carolina",
	"ND": "North Dakota",
	"OH": "Ohio",
	"OK": "Oklahoma",
	"OR": "Oregon",
	"PA": "Pennsylvania",
	"RI": "Rhode Island",
	"SC": "South Carolina",
	"SD": "South Dakota",
	"TN": "Tennessee",
	"TX": "Texas",
	"UT": "Utah",
	"VT": "Vermont",
	"VA": "Virginia",
	"WA": "Washington",
	"WV": "West Virginia",
	"WI": "Wisconsin",
	"WY": "Wyoming",
}
