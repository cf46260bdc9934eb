package event

import (
	"reflect"
	"testing"
)

func TestCoercePrice(t *testing.T) {
	tests := []struct {
		name  string
		input any
		want  int
	}{
		{"int", 250, 250},
		{"int64", int64(300), 300},
		{"float from JSON", float64(150), 150},
		{"numeric string", "200", 200},
		{"string with suffix", "150abc", 150},
		{"string with spaces", "  75", 75},
		{"non-numeric string", "free", 0},
		{"empty string", "", 0},
		{"missing", nil, 0},
		{"negative number", -20, 0},
		{"negative string", "-5", 0},
		{"bool", true, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CoercePrice(tt.input); got != tt.want {
				t.Errorf("CoercePrice(%v) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

func TestIsFreeValue(t *testing.T) {
	tests := []struct {
		input any
		want  bool
	}{
		{true, true},
		{false, false},
		{1, true},
		{0, false},
		{float64(1), true},
		{"1", true},
		{"0", false},
		{"", false},
		{"true", false}, // not numeric
		{nil, false},
	}

	for _, tt := range tests {
		if got := IsFreeValue(tt.input); got != tt.want {
			t.Errorf("IsFreeValue(%#v) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestNormalizeTags(t *testing.T) {
	tests := []struct {
		name  string
		input any
		want  []string
	}{
		{"comma string", "a, b, c", []string{"a", "b", "c"}},
		{"string slice", []string{"a", "b", "c"}, []string{"a", "b", "c"}},
		{"any slice from JSON", []any{"a", "b", "c"}, []string{"a", "b", "c"}},
		{"single tag", "chess", []string{"chess"}},
		{"missing", nil, []string{}},
		{"unexpected type", 42, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeTags(tt.input)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("NormalizeTags(%#v) = %#v, want %#v", tt.input, got, tt.want)
			}
		})
	}

	// Both representations normalize identically
	fromString := NormalizeTags("a, b, c")
	fromSlice := NormalizeTags([]any{"a", "b", "c"})
	if !reflect.DeepEqual(fromString, fromSlice) {
		t.Errorf("string and slice tags differ: %v vs %v", fromString, fromSlice)
	}
}

func TestNormalize(t *testing.T) {
	t.Run("snake_case row", func(t *testing.T) {
		row := Row{
			"id":               "local_1",
			"title":            "Weekend Chess Tournament",
			"date":             "2026-03-15",
			"price":            "300",
			"is_free":          false,
			"tags":             "chess, delhi",
			"registration_url": "https://forms.google.com/register",
			"source_platform":  "Local Community",
			"scraped_at":       "2026-03-10T10:00:00.000Z",
			"created_at":       "2026-03-10T10:00:01.000Z",
		}

		evt := Normalize(row)
		if evt.Price != 300 {
			t.Errorf("Price = %d, want 300", evt.Price)
		}
		if evt.PriceType != PricePaid {
			t.Errorf("PriceType = %q, want paid", evt.PriceType)
		}
		if !reflect.DeepEqual(evt.Tags, []string{"chess", "delhi"}) {
			t.Errorf("Tags = %v", evt.Tags)
		}
		if evt.RegistrationURL != "https://forms.google.com/register" {
			t.Errorf("RegistrationURL = %q", evt.RegistrationURL)
		}
		if evt.SourcePlatform != "Local Community" {
			t.Errorf("SourcePlatform = %q", evt.SourcePlatform)
		}
		if evt.ScrapedAt != "2026-03-10T10:00:00.000Z" || evt.CreatedAt != "2026-03-10T10:00:01.000Z" {
			t.Errorf("timestamps = %q / %q", evt.ScrapedAt, evt.CreatedAt)
		}
	})

	t.Run("camelCase aliases take precedence", func(t *testing.T) {
		row := Row{
			"registrationUrl":  "https://a.example",
			"registration_url": "https://b.example",
			"sourcePlatform":   "Meetup",
			"scrapedAt":        "2026-01-01T00:00:00.000Z",
			"createdAt":        "2026-01-02T00:00:00.000Z",
		}
		evt := Normalize(row)
		if evt.RegistrationURL != "https://a.example" {
			t.Errorf("RegistrationURL = %q, want camelCase value", evt.RegistrationURL)
		}
		if evt.SourcePlatform != "Meetup" || evt.ScrapedAt == "" || evt.CreatedAt == "" {
			t.Errorf("aliases not resolved: %+v", evt)
		}
	})

	t.Run("empty alias falls back to snake_case", func(t *testing.T) {
		evt := Normalize(Row{"registrationUrl": "", "registration_url": "https://b.example"})
		if evt.RegistrationURL != "https://b.example" {
			t.Errorf("RegistrationURL = %q", evt.RegistrationURL)
		}
	})

	t.Run("free indicator is authoritative over price", func(t *testing.T) {
		tests := []struct {
			name string
			row  Row
			want string
		}{
			{"is_free true with price", Row{"is_free": true, "price": 500}, PriceFree},
			{"isFree numeric", Row{"isFree": 1, "price": 0}, PriceFree},
			{"legacy false, snake true", Row{"isFree": false, "is_free": true}, PriceFree},
			{"zero price not free", Row{"is_free": false, "price": 0}, PricePaid},
			{"missing indicator", Row{"price": 0}, PricePaid},
		}
		for _, tt := range tests {
			if got := Normalize(tt.row).PriceType; got != tt.want {
				t.Errorf("%s: PriceType = %q, want %q", tt.name, got, tt.want)
			}
		}
	})

	t.Run("missing fields default", func(t *testing.T) {
		evt := Normalize(Row{"id": "x"})
		if evt.Price != 0 {
			t.Errorf("Price = %d, want 0", evt.Price)
		}
		if evt.Tags == nil || len(evt.Tags) != 0 {
			t.Errorf("Tags = %#v, want empty slice", evt.Tags)
		}
	})
}

func TestRecordRowRoundTrip(t *testing.T) {
	rec := &Record{
		ID:        "meetup_1",
		Title:     "Chess Night",
		Date:      "2026-03-15",
		Price:     200,
		IsFree:    false,
		Tags:      []string{"chess", "delhi", "community"},
		ScrapedAt: "2026-03-10T10:00:00.000Z",
	}

	evt := Normalize(rec.Row())
	if evt.ID != rec.ID || evt.Title != rec.Title || evt.Date != rec.Date {
		t.Errorf("Normalize(Row()) lost fields: %+v", evt)
	}
	if !reflect.DeepEqual(evt.Tags, rec.Tags) {
		t.Errorf("Tags = %v, want %v", evt.Tags, rec.Tags)
	}
	if _, ok := rec.Row()["created_at"]; ok {
		t.Error("empty CreatedAt should not be written to the row")
	}
}

func TestParseLeadingInt(t *testing.T) {
	tests := []struct {
		input  string
		want   int
		wantOK bool
	}{
		{"42", 42, true},
		{"+7", 7, true},
		{"-3x", -3, true},
		{"x3", 0, false},
		{"", 0, false},
		{"-", 0, false},
	}
	for _, tt := range tests {
		got, ok := ParseLeadingInt(tt.input)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("ParseLeadingInt(%q) = (%d, %v), want (%d, %v)", tt.input, got, ok, tt.want, tt.wantOK)
		}
	}
}
