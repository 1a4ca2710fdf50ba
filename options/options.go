// Package options holds the conversion settings shared by the converter and
// its callers.
package options

import (
	"golang.org/x/text/encoding"
)

type Flag int

const (
	FlagExpandOpaque  Flag = 1 << iota // expand opaque values below the root instead of passing them through
	FlagNestedRecords                  // in record mode, produce records for nested mappings and expanded opaque values
	FlagStrictFold                     // key folding rejects opaque values instead of passing them through

	FlagAll  = (1 << iota) - 1 // all flags combined
	FlagNone = 0               // no flags set
)

// Has reports whether every bit of flag is set in f.
func (f Flag) Has(flag Flag) bool {
	return f&flag == flag
}

// With returns f with flag set or cleared.
func (f Flag) With(flag Flag, on bool) Flag {
	if on {
		return f | flag
	}
	return f &^ flag
}

// DefaultMaxDepth is the nesting depth at which conversion stops with an error.
const DefaultMaxDepth = 512

// Options configures a single conversion.
type Options struct {
	Flags Flag

	// MaxDepth bounds recursion; zero or less disables the bound.
	MaxDepth int

	// Encoding decodes binary values to text. Nil means DefaultEncoding.
	Encoding encoding.Encoding
}

// Default returns the options used when a caller configures nothing.
func Default() Options {
	return Options{
		Flags:    FlagNone,
		MaxDepth: DefaultMaxDepth,
		Encoding: DefaultEncoding(),
	}
}

// TextEncoding returns o.Encoding, falling back to DefaultEncoding.
func (o Options) TextEncoding() encoding.Encoding {
	if o.Encoding == nil {
		return DefaultEncoding()
	}
	return o.Encoding
}
