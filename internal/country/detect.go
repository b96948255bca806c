package country

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"golang.org/x/sync/errgroup"
	"golang.org/x/text/language"

	"github.com/dshills/phonemask/internal/logging"
)

// ErrNotDetected is returned by detectors that found no country.
var ErrNotDetected = errors.New("country not detected")

// Detector guesses the user's country code.
type Detector interface {
	Detect(ctx context.Context) (string, error)
}

// DetectorFunc adapts a function to the Detector interface.
type DetectorFunc func(ctx context.Context) (string, error)

// Detect implements Detector.
func (f DetectorFunc) Detect(ctx context.Context) (string, error) {
	return f(ctx)
}

// StaticDetector always reports the same code. Empty means not detected.
type StaticDetector string

// Detect implements Detector.
func (d StaticDetector) Detect(context.Context) (string, error) {
	if d == "" {
		return "", ErrNotDetected
	}
	return string(d), nil
}

// LocaleDetector reads the region from the POSIX locale environment.
type LocaleDetector struct {
	// Getenv defaults to os.Getenv.
	Getenv func(string) string
}

// localeVars are consulted in POSIX precedence order.
var localeVars = []string{"LC_ALL", "LC_MESSAGES", "LANG"}

// Detect implements Detector.
func (d LocaleDetector) Detect(ctx context.Context) (string, error) {
	getenv := d.Getenv
	if getenv == nil {
		getenv = os.Getenv
	}

	for _, name := range localeVars {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		if region, ok := regionFromLocale(getenv(name)); ok {
			return region, nil
		}
	}
	return "", ErrNotDetected
}

// regionFromLocale extracts the region from values like "uk_UA.UTF-8".
func regionFromLocale(locale string) (string, bool) {
	if i := strings.IndexAny(locale, ".@"); i >= 0 {
		locale = locale[:i]
	}
	if locale == "" || locale == "C" || locale == "POSIX" {
		return "", false
	}

	tag, err := language.Parse(strings.ReplaceAll(locale, "_", "-"))
	if err != nil {
		return "", false
	}
	region, conf := tag.Region()
	if conf < language.High {
		return "", false
	}
	return region.String(), true
}

// Detect runs detectors concurrently and returns the country of the first
// detector, in argument order, whose code resolves. Failed or unknown
// detections fall back to the resolver's default. Detect completes before
// returning, so callers can bind fields with the final country.
func Detect(ctx context.Context, r *Resolver, log *logging.Logger, detectors ...Detector) Country {
	if log == nil {
		log = logging.Nop()
	}

	codes := make([]string, len(detectors))
	var g errgroup.Group
	for i, d := range detectors {
		g.Go(func() error {
			code, err := d.Detect(ctx)
			if err != nil {
				return fmt.Errorf("detector %d: %w", i, err)
			}
			codes[i] = code
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		log.Debug("detection incomplete: %v", err)
	}

	for _, code := range codes {
		if code == "" {
			continue
		}
		if c, ok := r.Lookup(code); ok {
			log.Debug("detected country %s", c)
			return c
		}
		log.Debug("detected code %q is unknown", code)
	}
	return r.Default()
}
