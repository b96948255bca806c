// Package config provides configuration loading for phonemask.
//
// Configuration is organized in layers with higher layers overriding lower:
//
//	┌─────────────────────────────┐
//	│  4. Environment Variables   │  ← PHONEMASK_* (highest priority)
//	├─────────────────────────────┤
//	│  3. .env File               │  ← never overrides the real environment
//	├─────────────────────────────┤
//	│  2. Config File             │  ← phonemask.toml
//	├─────────────────────────────┤
//	│  1. Built-in Defaults       │  ← Lowest priority
//	└─────────────────────────────┘
//
// Command line flags are applied by the caller after Load.
//
// # Configuration Files
//
//	# phonemask.toml
//	[mask]
//	default_country = "UA"
//	retain_digits = false
//	locked_keys = ["Backspace", "Left", "Up", "Home"]
//	cycle_key = "Ctrl+N"
//
//	[catalog]
//	path = "countries.yaml"
//	source = "both"
//	watch = true
//
//	[logging]
//	level = "info"
//
// # Error Handling
//
//   - ErrFileNotFound: an explicitly requested file doesn't exist
//   - *ParseError: the TOML file is malformed or has unknown keys
//   - ErrValidationFailed: a value is out of range; see ValidationErrors
package config
