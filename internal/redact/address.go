package redact

import (
	"regexp"
	"sort"
	"strings"
)

// streetSuffixes covers the common US street-type abbreviations; used by
// both the numbered-street and intersection patterns.
const streetSuffixes = `(?:Street|St|Avenue|Ave|Boulevard|Blvd|Drive|Dr|Lane|Ln|Road|Rd|Court|Ct|Circle|Cir|Way|Place|Pl|Terrace|Ter|Parkway|Pkwy|Highway|Hwy|Square|Sq)`

// majorCities is a closed list; a city name alone is far too common a word
// to redact, so the city pattern additionally requires an adjacent state
// abbreviation or ZIP. The alternation is built longest-name-first so
// "New York" is not pre-empted by a hypothetical shorter entry.
var majorCities = []string{
	"New York", "Los Angeles", "Chicago", "Houston", "Phoenix",
	"Philadelphia", "San Antonio", "San Diego", "Dallas", "San Jose",
	"Austin", "Jacksonville", "Fort Worth", "Columbus", "Charlotte",
	"San Francisco", "Indianapolis", "Seattle", "Denver", "Washington",
	"Boston", "Nashville", "Detroit", "Portland", "Las Vegas", "Memphis",
	"Louisville", "Baltimore", "Milwaukee", "Albuquerque", "Atlanta",
	"Miami", "Minneapolis", "New Orleans", "Sacramento", "Kansas City",
	"Salt Lake City", "Oklahoma City",
}

// addressPatterns is the ordered pattern list for the physical_addresses
// category.
//
// The bare ZIP pattern deliberately precedes the city patterns, matching
// the long-standing behavior of this pipeline: because every pattern in a
// category rescans the already-mutated text, the bare ZIP match consumes
// digits the city+ZIP patterns would otherwise anchor on, and the city
// match then fails. Reordering would change which token covers the span
// and how many matches are tallied, so the order stays as is; see the
// regression test in address_test.go before touching it.
var addressPatterns = buildAddressPatterns()

func buildAddressPatterns() []*regexp.Regexp {
	pats := []string{
		// 123 N Main Street Apt 4B
		`(?i)\b\d{1,6}\s+(?:[NSEW]\.?\s+|North\s+|South\s+|East\s+|West\s+)?[A-Za-z0-9'.-]+(?:\s+[A-Za-z'.-]+){0,3}\s+` + streetSuffixes + `\.?\b(?:\s*,?\s*(?:Apt|Apartment|Suite|Ste|Unit|#)\.?\s*[A-Za-z0-9-]+)?`,
		// Standalone unit markers
		`(?i)\b(?:Apt|Apartment|Suite|Ste|Unit)\.?\s*#?\s*[A-Za-z0-9-]{1,6}\b`,
		// PO Box
		`(?i)\bP\.?\s?O\.?\s?Box\s+\d+\b`,
		// City, ST ZIP
		`\b[A-Z][A-Za-z.-]+(?:\s[A-Z][A-Za-z.-]+){0,2},\s*[A-Z]{2}\s+\d{5}(?:-\d{4})?\b`,
		// ST ZIP
		`\b[A-Z]{2}\s+\d{5}(?:-\d{4})?\b`,
		// Bare ZIP / ZIP+4. Broad on purpose; runs before the city rules.
		`\b\d{5}(?:-\d{4})?\b`,
		// UK postcode
		`(?i)\b[A-Z]{1,2}\d[A-Z0-9]?\s*\d[A-Z]{2}\b`,
		// Canadian postal code
		`(?i)\b[ABCEGHJ-NPRSTVXY]\d[A-Z]\s*\d[A-Z]\d\b`,
		// Australian state + postcode
		`(?i)\b(?:NSW|VIC|QLD|SA|WA|TAS|NT|ACT)\s+\d{4}\b`,
		// Contextual address phrases take the rest of the line, stopping
		// at '[' so an earlier category's placeholder is never swallowed
		`(?i)\b(?:address|ship\s+to|shipping\s+address|deliver\s+to|delivery\s+address|billing\s+address)\s*[:-]\s*[^\n\[]{5,80}`,
		// Street intersections
		`(?i)\b[A-Za-z0-9]+\s+` + streetSuffixes + `\.?\s*(?:and|&|at)\s*[A-Za-z0-9]+\s+` + streetSuffixes + `\.?\b`,
		// Floor, level and building markers
		`(?i)\b(?:Floor|Fl|Level|Lvl)\.?\s*#?\d{1,3}\b`,
		`(?i)\b\d{1,3}(?:st|nd|rd|th)\s+Floor\b`,
		`(?i)\bBuilding\s+[A-Za-z0-9]{1,6}\b`,
		// Care-of and attention lines
		`(?i)\b(?:C/O|Care\s+of|Attn|Attention)[:.]?\s+[A-Z][A-Za-z.' -]{2,40}`,
		// German street formats: Hauptstraße 12, Bahnhofstr. 3a
		`(?i)\b[A-ZÄÖÜ][a-zäöüß]+(?:stra(?:ß|ss)e|str\.|weg|platz|allee|gasse|ring)\s+\d{1,4}[a-z]?\b`,
		// French street formats: 12 rue de la Paix
		`(?i)\b\d{1,4},?\s+(?:rue|avenue|boulevard|chemin|allée|place|impasse|quai)\s+(?:de\s+la\s+|de\s+|du\s+|des\s+|d'|la\s+|le\s+)?[A-Za-zÀ-ÿ][A-Za-zÀ-ÿ'-]+`,
	}

	// City names adjacent to a state or ZIP close out the list. Case
	// sensitive: under (?i) the state alternative would match ordinary
	// two-letter words ("in", "at") right after a city name.
	pats = append(pats, `\b(?:`+cityAlternation()+`)\b,?\s+(?:[A-Z]{2}\b|\d{5}(?:-\d{4})?)`)

	res := make([]*regexp.Regexp, 0, len(pats))
	for _, p := range pats {
		res = append(res, regexp.MustCompile(p))
	}
	return res
}

func cityAlternation() string {
	cities := make([]string, len(majorCities))
	copy(cities, majorCities)
	sort.Slice(cities, func(i, j int) bool {
		if len(cities[i]) != len(cities[j]) {
			return len(cities[i]) > len(cities[j])
		}
		return cities[i] < cities[j]
	})
	for i, c := range cities {
		cities[i] = regexp.QuoteMeta(c)
	}
	return strings.Join(cities, "|")
}
