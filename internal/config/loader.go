package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
)

// EnvPrefix prefixes every environment variable phonemask reads.
const EnvPrefix = "PHONEMASK_"

// LoadOptions controls where configuration is read from.
type LoadOptions struct {
	// Path is the TOML config file. Empty means defaults only; a missing
	// file is an error only when Required is set.
	Path string

	// Required makes a missing Path an error.
	Required bool

	// EnvFile is an optional dotenv file loaded before reading the
	// environment. Variables already set in the environment win.
	EnvFile string

	// Getenv reads the environment. Defaults to os.LookupEnv.
	Getenv func(string) (string, bool)
}

// Load builds a Config from defaults, the TOML file, the dotenv file, and
// the environment, then validates it.
func Load(opts LoadOptions) (*Config, error) {
	cfg := Default()

	if opts.Path != "" {
		if err := cfg.loadFile(opts.Path, opts.Required); err != nil {
			return nil, err
		}
	}

	if opts.EnvFile != "" {
		if err := godotenv.Load(opts.EnvFile); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("loading %s: %w", opts.EnvFile, err)
		}
	}

	getenv := opts.Getenv
	if getenv == nil {
		getenv = os.LookupEnv
	}
	if err := cfg.applyEnv(getenv); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// loadFile overlays the TOML file at path onto c.
func (c *Config) loadFile(path string, required bool) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			if required {
				return fmt.Errorf("%w: %s", ErrFileNotFound, path)
			}
			return nil
		}
		return fmt.Errorf("reading config file %s: %w", path, err)
	}
	return c.parse(path, data)
}

// parse decodes TOML data onto c. Unknown keys are rejected.
func (c *Config) parse(source string, data []byte) error {
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(c); err != nil {
		perr := &ParseError{Path: source, Message: err.Error(), Err: err}

		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			perr.Line, perr.Column = derr.Position()
		}
		var serr *toml.StrictMissingError
		if errors.As(err, &serr) {
			perr.Message = strings.TrimSpace(serr.String())
		}
		return perr
	}
	return nil
}

// applyEnv overlays PHONEMASK_* variables onto c.
func (c *Config) applyEnv(getenv func(string) (string, bool)) error {
	str := func(name string, dst *string) {
		if v, ok := getenv(EnvPrefix + name); ok {
			*dst = strings.TrimSpace(v)
		}
	}
	boolean := func(name string, dst *bool) error {
		v, ok := getenv(EnvPrefix + name)
		if !ok {
			return nil
		}
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return &ValidationError{Path: EnvPrefix + name, Message: "must be a boolean", Value: v}
		}
		*dst = b
		return nil
	}

	str("DEFAULT_COUNTRY", &c.Mask.DefaultCountry)
	str("CYCLE_KEY", &c.Mask.CycleKey)
	str("CATALOG", &c.Catalog.Path)
	str("CATALOG_SOURCE", &c.Catalog.Source)
	str("LOG_LEVEL", &c.Logging.Level)
	str("LOG_FILE", &c.Logging.File)

	if v, ok := getenv(EnvPrefix + "LOCKED_KEYS"); ok {
		c.Mask.LockedKeys = splitList(v)
	}

	var errs ValidationErrors
	for _, b := range []struct {
		name string
		dst  *bool
	}{
		{"RETAIN_DIGITS", &c.Mask.RetainDigits},
		{"DETECT", &c.Mask.Detect},
		{"CATALOG_WATCH", &c.Catalog.Watch},
	} {
		if err := boolean(b.name, b.dst); err != nil {
			var verr *ValidationError
			if errors.As(err, &verr) {
				errs = append(errs, verr)
			}
		}
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// splitList splits a comma separated list, dropping empty items.
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
