package key

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

// Parse errors
var (
	ErrEmptySpec   = errors.New("empty key specification")
	ErrInvalidSpec = errors.New("invalid key specification")
)

// Parse parses a key specification string into an Event.
//
// Supported formats:
//   - Single character: "5", "a", "A", "+"
//   - Special keys: "Backspace", "Home", "ArrowLeft", "Space"
//   - With modifiers: "Ctrl+N", "Alt+Left"
//   - Angle-bracket style: "<C-n>", "<BS>", "<Home>"
func Parse(spec string) (Event, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return Event{}, ErrEmptySpec
	}

	if len(spec) > 2 && strings.HasPrefix(spec, "<") && strings.HasSuffix(spec, ">") {
		return parseBracketStyle(spec[1 : len(spec)-1])
	}

	// "+" on its own is a character, not a separator.
	if len(spec) > 1 && strings.Contains(spec, "+") {
		return parseModifierStyle(spec)
	}

	return parseKey(spec, ModNone)
}

// parseBracketStyle parses notation like "C-n", "BS", "Home".
func parseBracketStyle(inner string) (Event, error) {
	parts := strings.Split(strings.TrimSpace(inner), "-")

	var mods Modifier
	for _, p := range parts[:len(parts)-1] {
		mod := ModifierFromName(p)
		if mod == ModNone {
			return Event{}, fmt.Errorf("%w: unknown modifier %q", ErrInvalidSpec, p)
		}
		mods = mods.With(mod)
	}

	return parseKey(parts[len(parts)-1], mods)
}

// parseModifierStyle parses "Ctrl+N" style notation.
func parseModifierStyle(spec string) (Event, error) {
	parts := strings.Split(spec, "+")

	// A trailing empty part means the key itself is '+', as in "Shift++".
	keyPart := parts[len(parts)-1]
	modParts := parts[:len(parts)-1]
	if keyPart == "" && len(parts) > 2 && parts[len(parts)-2] == "" {
		keyPart = "+"
		modParts = parts[:len(parts)-2]
	}

	var mods Modifier
	for _, p := range modParts {
		mod := ModifierFromName(p)
		if mod == ModNone {
			return Event{}, fmt.Errorf("%w: unknown modifier %q", ErrInvalidSpec, p)
		}
		mods = mods.With(mod)
	}

	return parseKey(keyPart, mods)
}

// parseKey parses a key name or single character with known modifiers.
func parseKey(keyPart string, mods Modifier) (Event, error) {
	if keyPart != " " {
		keyPart = strings.TrimSpace(keyPart)
	}
	if keyPart == "" {
		return Event{}, ErrInvalidSpec
	}

	if strings.EqualFold(keyPart, "space") {
		return NewRuneEvent(' ', mods), nil
	}
	if k := KeyFromName(keyPart); k != KeyNone {
		return NewSpecialEvent(k, mods), nil
	}

	runes := []rune(keyPart)
	if len(runes) != 1 {
		return Event{}, fmt.Errorf("%w: unknown key %q", ErrInvalidSpec, keyPart)
	}

	r := runes[0]
	switch {
	case mods.HasCtrl():
		r = unicode.ToLower(r)
	case unicode.IsUpper(r):
		mods = mods.With(ModShift)
	}
	return NewRuneEvent(r, mods), nil
}

// ParseList parses several specifications, failing on the first invalid one.
func ParseList(specs []string) ([]Event, error) {
	events := make([]Event, 0, len(specs))
	for _, spec := range specs {
		ev, err := Parse(spec)
		if err != nil {
			return nil, fmt.Errorf("key %q: %w", spec, err)
		}
		events = append(events, ev)
	}
	return events, nil
}
