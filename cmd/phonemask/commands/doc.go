// Package commands implements the phonemask command line.
//
//	phonemask format [--country UA] [--event input|focus|blur] [TEXT...]
//	phonemask countries [--numberplan]
//	phonemask edit [--country UA]
package commands
