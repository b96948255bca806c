package country

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/dshills/phonemask/internal/mask"
)

// Errors returned by country operations.
var (
	// ErrNotFound indicates a code that no lookup recognizes.
	ErrNotFound = errors.New("country not found")

	// ErrInvalidCountry indicates a catalog entry that fails validation.
	ErrInvalidCountry = errors.New("invalid country")
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Country describes one selectable country.
type Country struct {
	// Code is the ISO 3166-1 alpha-2 region code, e.g. "UA".
	Code string `toml:"code" yaml:"code" validate:"required,len=2,alpha,uppercase"`

	// Name is the display name.
	Name string `toml:"name" yaml:"name" validate:"required"`

	// Prefix holds the dialing code digits without '+', e.g. "380".
	Prefix string `toml:"prefix" yaml:"prefix" validate:"required,number,max=4"`

	// Pattern is the editable part of the mask, e.g. "(__) ___ __ __".
	Pattern string `toml:"pattern" yaml:"pattern" validate:"required,containsrune=_"`

	// Flag is an optional flag reference; an emoji flag is derived if empty.
	Flag string `toml:"flag,omitempty" yaml:"flag,omitempty"`
}

// Matrix returns the composed formatting template for c.
func (c Country) Matrix() mask.Matrix {
	return mask.Compose(c.Prefix, c.Pattern)
}

// Validate checks that c is usable as a mask configuration.
func (c Country) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("%w %q: %v", ErrInvalidCountry, c.Code, err)
	}
	if err := c.Matrix().Validate(); err != nil {
		return fmt.Errorf("%w %q: %w", ErrInvalidCountry, c.Code, err)
	}
	return nil
}

// IsZero reports whether c is the zero Country.
func (c Country) IsZero() bool {
	return c.Code == "" && c.Prefix == ""
}

// String returns "UA +380".
func (c Country) String() string {
	return c.Code + " +" + c.Prefix
}

// normalized returns c with canonical casing, a bare prefix, and a flag.
func (c Country) normalized() Country {
	c.Code = strings.ToUpper(strings.TrimSpace(c.Code))
	c.Prefix = mask.Digits(c.Prefix)
	c.Name = strings.TrimSpace(c.Name)
	if c.Flag == "" {
		c.Flag = FlagEmoji(c.Code)
	}
	return c
}

// FlagEmoji returns the regional-indicator flag for a two-letter region
// code, or "" if the code is not two ASCII letters.
func FlagEmoji(region string) string {
	region = strings.ToUpper(region)
	if len(region) != 2 {
		return ""
	}
	var b strings.Builder
	for i := 0; i < 2; i++ {
		c := region[i]
		if c < 'A' || c > 'Z' {
			return ""
		}
		b.WriteRune(rune(c-'A') + 0x1F1E6)
	}
	return b.String()
}

// parseCode splits a lookup code into a region or a dialing code.
// Exactly one of the results is non-empty for a well-formed code.
func parseCode(code string) (region, dial string) {
	code = strings.TrimSpace(code)
	if code == "" {
		return "", ""
	}
	if strings.HasPrefix(code, "+") || mask.Digits(code) == code {
		return "", mask.Digits(code)
	}
	return strings.ToUpper(code), ""
}
