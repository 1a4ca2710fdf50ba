package options

import (
	"golang.org/x/text/encoding"
)

// strictUTF8 is UTF-8 that rejects malformed input instead of substituting
// U+FFFD.
type strictUTF8 struct{}

func (strictUTF8) NewDecoder() *encoding.Decoder {
	return &encoding.Decoder{Transformer: encoding.UTF8Validator}
}

func (strictUTF8) NewEncoder() *encoding.Encoder {
	return &encoding.Encoder{Transformer: encoding.UTF8Validator}
}

func (strictUTF8) String() string { return "UTF-8" }

var defaultEncoding encoding.Encoding = strictUTF8{}

// DefaultEncoding returns the process-wide text encoding used to decode
// binary values. It is fixed for the lifetime of the process; callers that
// need another encoding set Options.Encoding.
func DefaultEncoding() encoding.Encoding {
	return defaultEncoding
}
