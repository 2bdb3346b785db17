package docctx

import "strings"

// stateAbbrev maps full US state names (lowercased) to postal abbreviations.
var stateAbbrev = map[string]string{
	"alabama": "AL", "alaska": "AK", "arizona": "AZ", "arkansas": "AR",
	"california": "CA", "colorado": "CO", "connecticut": "CT", "delaware": "DE",
	"florida": "FL", "georgia": "GA", "hawaii": "HI", "idaho": "ID",
	"illinois": "IL", "indiana": "IN", "iowa": "IA", "kansas": "KS",
	"kentucky": "KY", "louisiana": "LA", "maine": "ME", "maryland": "MD",
	"massachusetts": "MA", "michigan": "MI", "minnesota": "MN", "mississippi": "MS",
	"missouri": "MO", "montana": "MT", "nebraska": "NE", "nevada": "NV",
	"new hampshire": "NH", "new jersey": "NJ", "new mexico": "NM", "new york": "NY",
	"north carolina": "NC", "north dakota": "ND", "ohio": "OH", "oklahoma": "OK",
	"oregon": "OR", "pennsylvania": "PA", "rhode island": "RI", "south carolina": "SC",
	"south dakota": "SD", "tennessee": "TN", "texas": "TX", "utah": "UT",
	"vermont": "VT", "virginia": "VA", "washington": "WA", "west virginia": "WV",
	"wisconsin": "WI", "wyoming": "WY", "district of columbia": "DC",
}

// abbrevState is the inverse mapping, built once at init.
var abbrevState map[string]string

//nolint:gochecknoinits // Package-level static mapping initialization
func init() {
	abbrevState = make(map[string]string, len(stateAbbrev))
	for name, abbr := range stateAbbrev {
		abbrevState[abbr] = name
	}
}

// NormalizeState resolves a state name or postal abbreviation to the full
// Title-Case state name. Returns "" when the input is not a US state.
func NormalizeState(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	if len(s) == 2 {
		if name, ok := abbrevState[strings.ToUpper(s)]; ok {
			return titleCase(name)
		}
		return ""
	}
	lower := strings.ToLower(s)
	if _, ok := stateAbbrev[lower]; ok {
		return titleCase(lower)
	}
	return ""
}

// StateAbbreviation returns the postal abbreviation for a state name or
// abbreviation, or "" when unrecognized.
func StateAbbreviation(s string) string {
	s = strings.TrimSpace(s)
	if len(s) == 2 {
		upper := strings.ToUpper(s)
		if _, ok := abbrevState[upper]; ok {
			return upper
		}
		return ""
	}
	return stateAbbrev[strings.ToLower(s)]
}

func titleCase(lower string) string {
	words := strings.Fields(lower)
	for i, w := range words {
		if w == "of" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
