package config

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/dshills/phonemask/internal/input/key"
)

// Config holds every phonemask setting.
type Config struct {
	Mask    MaskConfig    `toml:"mask"`
	Catalog CatalogConfig `toml:"catalog"`
	Logging LoggingConfig `toml:"logging"`
}

// MaskConfig holds field behavior settings.
type MaskConfig struct {
	// DefaultCountry is used when a code cannot be resolved.
	DefaultCountry string `toml:"default_country" validate:"required"`

	// RetainDigits carries entered digits over on country change.
	RetainDigits bool `toml:"retain_digits"`

	// LockedKeys cannot move the caret into, or delete, the prefix.
	LockedKeys []string `toml:"locked_keys" validate:"dive,required"`

	// CycleKey switches to the next catalog country in the terminal field.
	CycleKey string `toml:"cycle_key" validate:"required"`

	// Detect guesses the initial country from the locale.
	Detect bool `toml:"detect"`
}

// CatalogConfig selects where countries come from.
type CatalogConfig struct {
	// Path is an optional TOML or YAML catalog replacing the built-in one.
	Path string `toml:"path" validate:"required_if=Watch true"`

	// Source is "table", "numberplan", or "both" (table first).
	Source string `toml:"source" validate:"oneof=table numberplan both"`

	// Watch reloads the catalog file when it changes.
	Watch bool `toml:"watch"`
}

// LoggingConfig holds logger settings.
type LoggingConfig struct {
	Level string `toml:"level" validate:"oneof=debug info warn error"`

	// File receives log lines while the interactive editor owns the
	// terminal. Empty discards them.
	File string `toml:"file"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Mask: MaskConfig{
			DefaultCountry: "UA",
			LockedKeys:     []string{"Backspace", "Left", "Up", "Home"},
			CycleKey:       "Ctrl+N",
		},
		Catalog: CatalogConfig{
			Source: "both",
		},
		Logging: LoggingConfig{
			Level: "warn",
		},
	}
}

// LockedKeys returns the parsed locked key list.
func (c *Config) LockedKeys() ([]key.Event, error) {
	return key.ParseList(c.Mask.LockedKeys)
}

// CycleKey returns the parsed country-cycling binding.
func (c *Config) CycleKey() (key.Event, error) {
	return key.Parse(c.Mask.CycleKey)
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("toml"), ",")
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	return v
}

// Validate checks struct constraints and that key specifications parse.
func (c *Config) Validate() error {
	var errs ValidationErrors

	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return err
		}
		for _, fe := range verrs {
			errs = append(errs, &ValidationError{
				Path:    strings.TrimPrefix(fe.Namespace(), "Config."),
				Message: describe(fe),
				Value:   fe.Value(),
			})
		}
	}

	for i, spec := range c.Mask.LockedKeys {
		if spec == "" {
			continue
		}
		if _, err := key.Parse(spec); err != nil {
			errs = append(errs, &ValidationError{
				Path:    fmt.Sprintf("mask.locked_keys[%d]", i),
				Message: err.Error(),
				Value:   spec,
			})
		}
	}
	if c.Mask.CycleKey != "" {
		if _, err := key.Parse(c.Mask.CycleKey); err != nil {
			errs = append(errs, &ValidationError{
				Path:    "mask.cycle_key",
				Message: err.Error(),
				Value:   c.Mask.CycleKey,
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "required_if":
		return "is required when " + fe.Param()
	case "oneof":
		return "must be one of: " + fe.Param()
	default:
		return "failed " + fe.Tag() + " check"
	}
}
