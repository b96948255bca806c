// Package country resolves country codes into the prefix and pattern a
// masked field needs.
//
// Lookups accept an ISO region ("UA", "ua") or a dialing code with or
// without '+' ("+380", "380"). Three sources are provided:
//
//   - Table: a catalog loaded from TOML or YAML, or the embedded default
//   - NumberPlan: prefixes and patterns derived from libphonenumber metadata
//   - Chain: tries several lookups in order
//
// A Resolver wraps a Lookup with a configured default country, so callers
// never have to handle a missing country: unknown codes fall back to the
// default and are logged.
//
// Country detection (Detect) runs before any field is bound, so a field's
// mask never reflects a stale country.
package country
