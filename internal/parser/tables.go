// Showfinder - Recurring Show Discovery and Series Matching
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/showfinder

package parser

// usStates maps postal codes to state names.
var usStates = map[string]string{
	"AL": "Alabama", "AK": "Alaska", "AZ": "Arizona", "AR": "Arkansas",
	"CA": "California", "CO": "Colorado", "CT": "Connecticut", "DE": "Delaware",
	"DC": "District of Columbia", "FL": "Florida", "GA": "Georgia", "HI": "Hawaii",
	"ID": "Idaho", "IL": "Illinois", "IN": "Indiana", "IA": "Iowa",
	"KS": "Kansas", "KY": "Kentucky", "LA": "Louisiana", "ME": "Maine",
	"MD": "Maryland", "MA": "Massachusetts", "MI": "Michigan", "MN": "Minnesota",
	"MS": "Mississippi", "MO": "Missouri", "MT": "Montana", "NE": "Nebraska",
	"NV": "Nevada", "NH": "New Hampshire", "NJ": "New Jersey", "NM": "New Mexico",
	"NY": "New York", "NC": "North Carolina", "ND": "North Dakota", "OH": "Ohio",
	"OK": "Oklahoma", "OR": "Oregon", "PA": "Pennsylvania", "RI": "Rhode Island",
	"SC": "South Carolina", "SD": "South Dakota", "TN": "Tennessee", "TX": "Texas",
	"UT": "Utah", "VT": "Vermont", "VA": "Virginia", "WA": "Washington",
	"WV": "West Virginia", "WI": "Wisconsin", "WY": "Wyoming",
}

// DefaultKnownCities are cities recognized without a trailing state,
// keyed by name with their postal state code.
var DefaultKnownCities = map[string]string{
	"Indianapolis":   "IN",
	"Fort Wayne":     "IN",
	"Evansville":     "IN",
	"South Bend":     "IN",
	"Carmel":         "IN",
	"Fishers":        "IN",
	"Bloomington":    "IN",
	"Lafayette":      "IN",
	"Muncie":         "IN",
	"Terre Haute":    "IN",
	"Anderson":       "IN",
	"Kokomo":         "IN",
	"Noblesville":    "IN",
	"Greenwood":      "IN",
	"Chicago":        "IL",
	"Springfield":    "IL",
	"Peoria":         "IL",
	"Louisville":     "KY",
	"Lexington":      "KY",
	"Cincinnati":     "OH",
	"Columbus":       "OH",
	"Dayton":         "OH",
	"Cleveland":      "OH",
	"Toledo":         "OH",
	"Detroit":        "MI",
	"Grand Rapids":   "MI",
	"Kalamazoo":      "MI",
	"Milwaukee":      "WI",
	"St. Louis":      "MO",
	"Kansas City":    "MO",
	"Nashville":      "TN",
	"Memphis":        "TN",
	"Pittsburgh":     "PA",
	"Philadelphia":   "PA",
	"Atlanta":        "GA",
	"Dallas":         "TX",
	"Houston":        "TX",
	"Denver":         "CO",
	"Phoenix":        "AZ",
	"Minneapolis":    "MN",
	"Des Moines":     "IA",
	"Omaha":          "NE",
	"Baltimore":      "MD",
	"Charlotte":      "NC",
	"Orlando":        "FL",
	"Tampa":          "FL",
	"Las Vegas":      "NV",
	"Salt Lake City": "UT",
}

// DefaultVenueKeywords are words or phrases that, when present in a
// segment, mark that segment as the venue.
var DefaultVenueKeywords = []string{
	"LaQuinta", "La Quinta", "Holiday Inn", "Hampton Inn", "Marriott", "Hilton",
	"Sheraton", "Ramada", "Best Western", "Comfort Inn", "Quality Inn", "Days Inn",
	"Embassy Suites", "Fairgrounds", "Fair Grounds", "Expo", "Exposition",
	"Convention Center", "Civic Center", "Community Center", "Event Center",
	"Conference Center", "Arena", "Coliseum", "Pavilion", "Armory", "Auditorium",
	"American Legion", "VFW", "Elks", "Moose Lodge", "Eagles", "Knights of Columbus",
	"Masonic", "Lodge", "Hall", "Church", "School", "Mall", "Hotel", "Inn", "Suites",
	"Library", "Grange", "Ballroom", "Banquet",
}
