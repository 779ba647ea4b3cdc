package wxr

import (
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/transform"
)

// Converter re-encodes extracted text values into the destination charset.
// A nil Converter passes values through unchanged.
type Converter struct {
	enc encoding.Encoding
}

// NewConverter resolves the destination charset by IANA/HTML name. Unknown
// names fall back to Latin-1, which is what legacy destinations expect.
// A utf-8 destination needs no conversion and yields nil.
func NewConverter(destCharset string) *Converter {
	name := strings.TrimSpace(strings.ToLower(destCharset))
	if name == "" || name == "utf-8" || name == "utf8" {
		return nil
	}
	enc, err := htmlindex.Get(name)
	if err != nil || enc == nil {
		enc = charmap.ISO8859_1
	}
	return &Converter{enc: enc}
}

// NeedsConversion reports whether text values must be re-encoded: the channel
// declares a utf8-family source language while the destination charset is not
// utf-8.
func NeedsConversion(language, destCharset string) bool {
	if NewConverter(destCharset) == nil {
		return false
	}
	return strings.Contains(language, "utf8")
}

// Convert re-encodes a single value, passing it through unchanged when the
// conversion fails or no conversion is configured.
func (c *Converter) Convert(value string) string {
	if c == nil || value == "" {
		return value
	}
	converted, _, err := transform.String(c.enc.NewEncoder(), value)
	if err != nil {
		return value
	}
	return converted
}
