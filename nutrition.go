package menuboard

import (
	"math"
	"strings"
	"unicode"
)

// Canonical nutrient labels, as published by the Korean brand sites.
const (
	NutrientCalories     = "칼로리"
	NutrientSugars       = "당류"
	NutrientProtein      = "단백질"
	NutrientSaturatedFat = "포화지방"
	NutrientSodium       = "나트륨"
	NutrientCaffeine     = "카페인"
)

// NutrientKeys returns the canonical nutrient labels in display order.
func NutrientKeys() []string {
	return []string{
		NutrientCalories,
		NutrientSugars,
		NutrientProtein,
		NutrientSaturatedFat,
		NutrientSodium,
		NutrientCaffeine,
	}
}

// NutrientUnit returns the unit appended to a nutrient's value.
func NutrientUnit(key string) string {
	switch key {
	case NutrientCalories:
		return "kcal"
	case NutrientSodium, NutrientCaffeine:
		return "mg"
	case NutrientSugars, NutrientProtein, NutrientSaturatedFat:
		return "g"
	}
	return ""
}

// WithUnit appends the nutrient's unit to value. Empty values and the "-"
// placeholder are returned unchanged.
func WithUnit(key, value string) string {
	value = strings.TrimSpace(value)
	if value == "" || value == "-" {
		return value
	}
	return value + NutrientUnit(key)
}

// ParseNutritionInt extracts the integer in a nutrition display string such
// as "150mg" or "12.5g". The first run of decimal digits is used, in any
// script ("１５０mg" is 150), so decimals are truncated. Strings without
// digits yield 0. A digit run that does not fit in an int is reported as
// EINVALID.
func ParseNutritionInt(s string) (int, error) {
	start := strings.IndexFunc(s, unicode.IsDigit)
	if start < 0 {
		return 0, nil
	}
	n := 0
	for _, r := range s[start:] {
		if !unicode.IsDigit(r) {
			break
		}
		d := digitValue(r)
		if n > (math.MaxInt-d)/10 {
			return 0, Errorf(EINVALID, "nutrition value %q out of range", s)
		}
		n = n*10 + d
	}
	return n, nil
}

// NutritionInt is ParseNutritionInt with malformed values mapped to 0.
func NutritionInt(s string) int {
	n, _ := ParseNutritionInt(s)
	return n
}

// digitValue returns the value of a decimal digit rune. Unicode assigns
// decimal digits in contiguous runs of ten starting at zero, so the value is
// the offset within the run.
func digitValue(r rune) int {
	if r >= '0' && r <= '9' {
		return int(r - '0')
	}
	for _, rg := range unicode.Nd.R16 {
		if lo, hi := rune(rg.Lo), rune(rg.Hi); r >= lo && r <= hi {
			return int(r-lo) % 10
		}
	}
	for _, rg := range unicode.Nd.R32 {
		if lo, hi := rune(rg.Lo), rune(rg.Hi); r >= lo && r <= hi {
			return int(r-lo) % 10
		}
	}
	return 0
}
