package country

import (
	"errors"
	"testing"

	"github.com/dshills/phonemask/internal/mask"
)

func TestCountryValidate(t *testing.T) {
	valid := Country{Code: "UA", Name: "Ukraine", Prefix: "380", Pattern: "(__) ___ __ __"}
	if err := valid.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	tests := []struct {
		name string
		c    Country
	}{
		{"lowercase code", Country{Code: "ua", Name: "Ukraine", Prefix: "380", Pattern: "(__)"}},
		{"long code", Country{Code: "UKR", Name: "Ukraine", Prefix: "380", Pattern: "(__)"}},
		{"missing name", Country{Code: "UA", Prefix: "380", Pattern: "(__)"}},
		{"plus in prefix", Country{Code: "UA", Name: "Ukraine", Prefix: "+380", Pattern: "(__)"}},
		{"no placeholders", Country{Code: "UA", Name: "Ukraine", Prefix: "380", Pattern: "() -"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.c.Validate(); !errors.Is(err, ErrInvalidCountry) {
				t.Errorf("expected ErrInvalidCountry, got %v", err)
			}
		})
	}
}

func TestCountryMatrix(t *testing.T) {
	c := Country{Code: "US", Name: "United States", Prefix: "1", Pattern: "(___) ___-____"}
	if got := c.Matrix().String(); got != "+1 (___) ___-____" {
		t.Errorf("unexpected matrix %q", got)
	}
	if !c.Matrix().Equals(mask.Compose("+1", "(___) ___-____")) {
		t.Error("matrix should equal the composed one")
	}
	if c.String() != "US +1" {
		t.Errorf("unexpected string %q", c.String())
	}
}

func TestNormalized(t *testing.T) {
	c := Country{Code: " ua ", Name: " Ukraine ", Prefix: "+380", Pattern: "(__)"}.normalized()
	if c.Code != "UA" || c.Prefix != "380" || c.Name != "Ukraine" {
		t.Errorf("unexpected normalization %+v", c)
	}
	if c.Flag != "🇺🇦" {
		t.Errorf("expected derived flag, got %q", c.Flag)
	}
}

func TestFlagEmoji(t *testing.T) {
	tests := map[string]string{
		"UA":  "🇺🇦",
		"us":  "🇺🇸",
		"GB":  "🇬🇧",
		"U":   "",
		"U1":  "",
		"USA": "",
	}
	for in, want := range tests {
		if got := FlagEmoji(in); got != want {
			t.Errorf("FlagEmoji(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestParseCode(t *testing.T) {
	tests := []struct {
		in     string
		region string
		dial   string
	}{
		{"UA", "UA", ""},
		{" ua ", "UA", ""},
		{"+380", "", "380"},
		{"380", "", "380"},
		{"+1", "", "1"},
		{"", "", ""},
	}
	for _, tt := range tests {
		region, dial := parseCode(tt.in)
		if region != tt.region || dial != tt.dial {
			t.Errorf("parseCode(%q) = (%q, %q), want (%q, %q)", tt.in, region, dial, tt.region, tt.dial)
		}
	}
}
