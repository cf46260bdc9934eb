package event

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// aliases maps each canonical field to the keys it may be stored under,
// in lookup order. The first truthy value wins.
var aliases = map[string][]string{
	"registration_url": {"registrationUrl", "registration_url"},
	"source_platform":  {"sourcePlatform", "source_platform"},
	"scraped_at":       {"scrapedAt", "scraped_at"},
	"created_at":       {"createdAt", "created_at"},
	"is_free":          {"isFree", "is_free"},
}

// Lookup returns the value stored for a canonical field, resolving legacy
// aliases. Fields without aliases are read directly.
func (r Row) Lookup(field string) any {
	keys, ok := aliases[field]
	if !ok {
		return r[field]
	}
	for _, k := range keys {
		if v, ok := r[k]; ok && truthy(v) {
			return v
		}
	}
	return nil
}

// String returns the field as text, or "" when missing
func (r Row) String(field string) string {
	return toString(r.Lookup(field))
}

// Normalize converts a raw row into the response shape. It never fails:
// missing or malformed values fall back to defaults.
func Normalize(r Row) *Event {
	priceType := PricePaid
	if IsFreeValue(r.Lookup("is_free")) {
		priceType = PriceFree
	}

	return &Event{
		ID:              r.String("id"),
		Title:           r.String("title"),
		Description:     r.String("description"),
		Date:            r.String("date"),
		Time:            r.String("time"),
		Venue:           r.String("venue"),
		Location:        r.String("location"),
		City:            r.String("city"),
		Price:           CoercePrice(r.Lookup("price")),
		PriceType:       priceType,
		Category:        r.String("category"),
		Organizer:       r.String("organizer"),
		RegistrationURL: r.String("registration_url"),
		Tags:            NormalizeTags(r.Lookup("tags")),
		SourcePlatform:  r.String("source_platform"),
		ScrapedAt:       r.String("scraped_at"),
		CreatedAt:       r.String("created_at"),
	}
}

// CoercePrice converts a stored price into a non-negative integer.
// Numbers are truncated, strings are read with a leading-integer parse,
// and anything else (including missing values) becomes 0.
func CoercePrice(v any) int {
	var n int
	switch p := v.(type) {
	case nil:
		return 0
	case int:
		n = p
	case int32:
		n = int(p)
	case int64:
		n = int(p)
	case float32:
		n = int(p)
	case float64:
		if math.IsNaN(p) || math.IsInf(p, 0) {
			return 0
		}
		n = int(p)
	case string:
		parsed, ok := ParseLeadingInt(p)
		if !ok {
			return 0
		}
		n = parsed
	default:
		return 0
	}
	if n < 0 {
		return 0
	}
	return n
}

// ParseLeadingInt reads an optionally signed integer prefix from s,
// ignoring leading whitespace and any trailing characters ("150abc" -> 150).
func ParseLeadingInt(s string) (int, bool) {
	s = strings.TrimLeft(s, " \t\r\n")
	end := 0
	if end < len(s) && (s[end] == '-' || s[end] == '+') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return 0, false
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0, false
	}
	return n, true
}

// IsFreeValue reports whether a stored free indicator counts as free:
// its numeric value must be greater than zero (true, 1, "1", ...).
func IsFreeValue(v any) bool {
	return toNumber(v) > 0
}

// NormalizeTags splits comma-joined tags and trims each entry. Sequences are
// passed through with elements converted to strings; anything else yields
// an empty slice.
func NormalizeTags(v any) []string {
	switch t := v.(type) {
	case string:
		parts := strings.Split(t, ",")
		tags := make([]string, 0, len(parts))
		for _, p := range parts {
			tags = append(tags, strings.TrimSpace(p))
		}
		return tags
	case []string:
		tags := make([]string, len(t))
		copy(tags, t)
		return tags
	case []any:
		tags := make([]string, 0, len(t))
		for _, item := range t {
			tags = append(tags, toString(item))
		}
		return tags
	default:
		return []string{}
	}
}

// truthy mirrors loose truthiness: nil, false, zero numbers and "" are falsy
func truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case string:
		return t != ""
	case int:
		return t != 0
	case int64:
		return t != 0
	case int32:
		return t != 0
	case float64:
		return t != 0 && !math.IsNaN(t)
	case float32:
		return t != 0
	default:
		return true
	}
}

// toNumber converts a loosely typed value to float64. Unparseable strings
// and unknown types yield NaN.
func toNumber(v any) float64 {
	switch t := v.(type) {
	case nil:
		return 0
	case bool:
		if t {
			return 1
		}
		return 0
	case int:
		return float64(t)
	case int32:
		return float64(t)
	case int64:
		return float64(t)
	case float32:
		return float64(t)
	case float64:
		return t
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return 0
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return math.NaN()
		}
		return f
	default:
		return math.NaN()
	}
}

func toString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case fmt.Stringer:
		return t.String()
	default:
		return fmt.Sprint(t)
	}
}
