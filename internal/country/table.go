package country

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

//go:embed catalog.toml
var defaultCatalog []byte

// Format identifies a catalog file format.
type Format string

const (
	// FormatTOML is a TOML catalog with [[country]] tables.
	FormatTOML Format = "toml"
	// FormatYAML is a YAML catalog with a top-level "countries" list.
	FormatYAML Format = "yaml"
)

// FormatForPath picks the catalog format from a file extension.
func FormatForPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unsupported catalog extension %q", filepath.Ext(path))
	}
}

type catalogFile struct {
	Countries []Country `toml:"country" yaml:"countries"`
}

// Table is an in-memory country catalog. It is safe for concurrent use.
type Table struct {
	mu       sync.RWMutex
	ordered  []Country
	byRegion map[string]Country
	byDial   map[string]Country
}

// NewTable creates a table from countries. Every entry is validated;
// duplicate region codes are rejected.
func NewTable(countries []Country) (*Table, error) {
	t := &Table{}
	if err := t.Replace(countries); err != nil {
		return nil, err
	}
	return t, nil
}

// ParseTable parses a catalog in the given format.
func ParseTable(data []byte, format Format) (*Table, error) {
	countries, err := parseCatalog(data, format)
	if err != nil {
		return nil, err
	}
	return NewTable(countries)
}

// LoadTable reads a catalog file; the format follows the extension.
func LoadTable(path string) (*Table, error) {
	countries, err := readCatalog(path)
	if err != nil {
		return nil, err
	}
	return NewTable(countries)
}

// DefaultTable returns the embedded catalog.
func DefaultTable() *Table {
	t, err := ParseTable(defaultCatalog, FormatTOML)
	if err != nil {
		panic("country: embedded catalog is invalid: " + err.Error())
	}
	return t
}

// Replace swaps the table contents atomically. On error the table is left
// unchanged.
func (t *Table) Replace(countries []Country) error {
	ordered := make([]Country, 0, len(countries))
	byRegion := make(map[string]Country, len(countries))
	byDial := make(map[string]Country, len(countries))

	for _, c := range countries {
		c = c.normalized()
		if err := c.Validate(); err != nil {
			return err
		}
		if _, dup := byRegion[c.Code]; dup {
			return fmt.Errorf("%w: duplicate code %q", ErrInvalidCountry, c.Code)
		}
		byRegion[c.Code] = c
		if _, seen := byDial[c.Prefix]; !seen {
			byDial[c.Prefix] = c
		}
		ordered = append(ordered, c)
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	t.ordered = ordered
	t.byRegion = byRegion
	t.byDial = byDial
	return nil
}

// Resolve implements Lookup.
func (t *Table) Resolve(code string) (Country, bool) {
	region, dial := parseCode(code)

	t.mu.RLock()
	defer t.mu.RUnlock()

	switch {
	case region != "":
		c, ok := t.byRegion[region]
		return c, ok
	case dial != "":
		c, ok := t.byDial[dial]
		return c, ok
	default:
		return Country{}, false
	}
}

// Len returns the number of countries.
func (t *Table) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.ordered)
}

// All returns the countries sorted by name.
func (t *Table) All() []Country {
	t.mu.RLock()
	out := make([]Country, len(t.ordered))
	copy(out, t.ordered)
	t.mu.RUnlock()

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Name < out[j].Name
	})
	return out
}

// Codes returns the region codes in catalog order.
func (t *Table) Codes() []string {
	t.mu.RLock()
	defer t.mu.RUnlock()

	codes := make([]string, len(t.ordered))
	for i, c := range t.ordered {
		codes[i] = c.Code
	}
	return codes
}

func readCatalog(path string) ([]Country, error) {
	format, err := FormatForPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog %s: %w", path, err)
	}
	countries, err := parseCatalog(data, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return countries, nil
}

func parseCatalog(data []byte, format Format) ([]Country, error) {
	var file catalogFile

	switch format {
	case FormatTOML:
		dec := toml.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&file); err != nil {
			return nil, fmt.Errorf("parsing TOML catalog: %w", err)
		}
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&file); err != nil {
			return nil, fmt.Errorf("parsing YAML catalog: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported catalog format %q", format)
	}

	return file.Countries, nil
}
