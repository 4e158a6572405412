// Package regexp provides a pattern-matching implementation of
// customs.AttributeExtractor. Each vehicle attribute is recognized by
// an anchored unit marker (a number only counts for a field when the
// field's marker directly follows it), so overlapping numeric patterns
// are disambiguated by marker specificity rather than position.
package regexp

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/customs-bot/customs"
)

// Ensure Extractor implements customs.AttributeExtractor at compile time.
var _ customs.AttributeExtractor = (*Extractor)(nil)

// fieldPattern is one entry of the extraction table: a named field, a
// compiled pattern, and a post-processor applied to a candidate match.
// The post-processor may reject a candidate (marker collision), in
// which case the next match of the same pattern is tried. Fields are
// mutually independent; the first accepted match wins per field.
type fieldPattern struct {
	name  string
	re    *regexp.Regexp
	apply func(attrs *customs.VehicleAttributes, text string, m []int) bool
}

var fieldPatterns = []fieldPattern{
	{
		// A two-digit year is expanded by prefixing "20": the system
		// assumes the 2000s, so a literal "99" parses as 2099. Kept
		// as-is; out-of-range years are refused downstream.
		name: "year",
		re:   regexp.MustCompile(`(?:20)?(\d{2})\s*(?:г\.в\.|год|г\.?|выпуска|в\.)`),
		apply: func(attrs *customs.VehicleAttributes, text string, m []int) bool {
			v, err := strconv.Atoi("20" + text[m[2]:m[3]])
			if err != nil {
				return false
			}
			attrs.Year = &v
			return true
		},
	},
	{
		name: "engine",
		re:   regexp.MustCompile(`(\d+\.?\d*)\s*(литра|литр|см\^3|см3|л\.?)`),
		apply: func(attrs *customs.VehicleAttributes, text string, m []int) bool {
			// "л" is also the first rune of the power marker "л.с.";
			// a candidate whose marker is actually the start of a
			// power marker belongs to the power field.
			if strings.HasPrefix(text[m[4]:], "л.с") {
				return false
			}
			v, err := strconv.ParseFloat(text[m[2]:m[3]], 64)
			if err != nil {
				return false
			}
			attrs.EngineLiters = &v
			return true
		},
	},
	{
		// kW values are stored unconverted under the same field.
		name: "power",
		re:   regexp.MustCompile(`(\d+)\s*(?:л\.с\.|hp|квт|kw|лошад|сил)`),
		apply: func(attrs *customs.VehicleAttributes, text string, m []int) bool {
			v, err := strconv.Atoi(text[m[2]:m[3]])
			if err != nil {
				return false
			}
			attrs.PowerHP = &v
			return true
		},
	},
	{
		name: "price",
		re:   regexp.MustCompile(`(\d[\d\s]*)\s*(?:\$|usd|долл)`),
		apply: func(attrs *customs.VehicleAttributes, text string, m []int) bool {
			v, err := strconv.Atoi(strings.ReplaceAll(text[m[2]:m[3]], " ", ""))
			if err != nil {
				return false
			}
			attrs.PriceUSD = &v
			return true
		},
	},
	{
		name: "mileage",
		re:   regexp.MustCompile(`(\d[\d\s,]*)\s*(?:км|тыс|к\.м\.|километр)`),
		apply: func(attrs *customs.VehicleAttributes, text string, m []int) bool {
			digits := strings.NewReplacer(" ", "", ",", "").Replace(text[m[2]:m[3]])
			v, err := strconv.Atoi(digits)
			if err != nil {
				return false
			}
			// The value is thousands of km when the match or its
			// immediate trailing context carries a "тыс" marker.
			window := text[m[0]:clamp(m[1]+10, len(text))]
			if strings.Contains(window, "тыс") {
				v *= 1000
			}
			attrs.MileageKm = &v
			return true
		},
	},
}

// brandModelRe captures the first two whitespace-delimited alphabetic
// tokens of the original-case text as brand and model candidates.
var brandModelRe = regexp.MustCompile(`([a-zA-Zа-яА-ЯёЁ]+)\s*([a-zA-Zа-яА-ЯёЁ0-9]*)`)

// Extractor parses free-form vehicle descriptions.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract attempts each field pattern independently against the
// normalized text. It never fails; text with no recognizable markers
// yields an empty attribute set.
func (e *Extractor) Extract(text string) *customs.VehicleAttributes {
	normalized := Normalize(text)
	attrs := &customs.VehicleAttributes{}

	for _, fp := range fieldPatterns {
		for _, m := range fp.re.FindAllStringSubmatchIndex(normalized, -1) {
			if fp.apply(attrs, normalized, m) {
				break
			}
		}
	}

	// Brand/model candidates are taken from the original-case text
	// (case can signal proper nouns) and without catalog validation.
	// They are only worth keeping when some vehicle marker matched;
	// otherwise any sentence would produce garbage candidates.
	if attrs.Year != nil || attrs.EngineLiters != nil || attrs.PowerHP != nil {
		if m := brandModelRe.FindStringSubmatch(text); m != nil {
			brand := m[1]
			attrs.Brand = &brand
			if m[2] != "" {
				model := m[2]
				attrs.Model = &model
			}
		}
	}

	return attrs
}

// Normalize collapses whitespace runs to single spaces and lowercases
// the text. Extraction is idempotent on already-normalized input.
func Normalize(text string) string {
	return strings.ToLower(strings.Join(strings.Fields(text), " "))
}

func clamp(v, max int) int {
	if v > max {
		return max
	}
	return v
}
