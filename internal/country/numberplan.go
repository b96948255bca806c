package country

import (
	"slices"
	"strconv"
	"strings"

	"github.com/nyaruka/phonenumbers"
	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// NumberPlan derives countries from libphonenumber metadata. The pattern
// is the international format of the region's example mobile number with
// every digit replaced by a placeholder.
type NumberPlan struct {
	names display.Namer
}

// NewNumberPlan creates a NumberPlan with English region names.
func NewNumberPlan() *NumberPlan {
	return &NumberPlan{names: display.Regions(language.English)}
}

// Resolve implements Lookup.
func (p *NumberPlan) Resolve(code string) (Country, bool) {
	region, dial := parseCode(code)
	if dial != "" {
		cc, err := strconv.Atoi(dial)
		if err != nil {
			return Country{}, false
		}
		region = phonenumbers.GetRegionCodeForCountryCode(cc)
	}
	if region == "" || !phonenumbers.GetSupportedRegions()[region] {
		return Country{}, false
	}

	cc := phonenumbers.GetCountryCodeForRegion(region)
	if cc == 0 {
		return Country{}, false
	}

	example := phonenumbers.GetExampleNumberForType(region, phonenumbers.MOBILE)
	if example == nil {
		example = phonenumbers.GetExampleNumber(region)
	}
	if example == nil {
		return Country{}, false
	}

	prefix := strconv.Itoa(cc)
	intl := phonenumbers.Format(example, phonenumbers.INTERNATIONAL)
	pattern := PatternFromExample(strings.TrimPrefix(intl, "+"+prefix))
	if pattern == "" {
		return Country{}, false
	}

	return Country{
		Code:    region,
		Name:    p.regionName(region),
		Prefix:  prefix,
		Pattern: pattern,
		Flag:    FlagEmoji(region),
	}, true
}

// Regions returns every region the metadata knows, sorted.
func (p *NumberPlan) Regions() []string {
	supported := phonenumbers.GetSupportedRegions()
	regions := make([]string, 0, len(supported))
	for r := range supported {
		regions = append(regions, r)
	}
	slices.Sort(regions)
	return regions
}

func (p *NumberPlan) regionName(region string) string {
	r, err := language.ParseRegion(region)
	if err != nil {
		return region
	}
	if name := p.names.Name(r); name != "" {
		return name
	}
	return region
}

// PatternFromExample turns a formatted national number such as
// " 50 123 4567" into a pattern ("__ ___ ____").
func PatternFromExample(formatted string) string {
	formatted = strings.TrimSpace(formatted)
	var b strings.Builder
	for _, r := range formatted {
		if r >= '0' && r <= '9' {
			b.WriteByte('_')
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
