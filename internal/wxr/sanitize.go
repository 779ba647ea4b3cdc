package wxr

import (
	"bytes"
	"unicode/utf8"

	"golang.org/x/text/transform"
)

// ValidCharFilter returns a transformer that drops bytes and runes outside
// the XML-legal scalar set (tab, LF, CR, 0x20-0xD7FF, 0xE000-0xFFFD).
// Exports written by broken serializers routinely carry control characters
// that would otherwise abort decoding.
func ValidCharFilter() transform.Transformer {
	return validCharFilter{}
}

type validCharFilter struct {
	transform.NopResetter
}

func (validCharFilter) Transform(dst, src []byte, atEOF bool) (nDst, nSrc int, err error) {
	for nSrc < len(src) {
		r, size := utf8.DecodeRune(src[nSrc:])
		if r == utf8.RuneError && size == 1 {
			if !atEOF && !utf8.FullRune(src[nSrc:]) {
				err = transform.ErrShortSrc
				return
			}
			// Invalid byte, drop it.
			nSrc++
			continue
		}
		if !legalXMLRune(r) {
			nSrc += size
			continue
		}
		if nDst+size > len(dst) {
			err = transform.ErrShortDst
			return
		}
		copy(dst[nDst:], src[nSrc:nSrc+size])
		nDst += size
		nSrc += size
	}
	return
}

func legalXMLRune(r rune) bool {
	switch {
	case r == 0x09 || r == 0x0A || r == 0x0D:
		return true
	case r >= 0x20 && r <= 0xD7FF:
		return true
	case r >= 0xE000 && r <= 0xFFFD:
		return true
	}
	return false
}

type namespaceDefault struct {
	attr string
	uri  string
}

var defaultNamespaces = []namespaceDefault{
	{attr: `xmlns:wp=`, uri: NamespaceWP},
	{attr: `xmlns:evo=`, uri: NamespaceEvo},
	{attr: `xmlns:excerpt=`, uri: NamespaceExcerpt},
}

// Variant URIs seen in the wild, normalized to the canonical namespaces.
// Excerpt variants must be rewritten before the plain wp variants because the
// latter are prefixes of the former.
var namespaceVariants = [][2]string{
	{"http://wordpress.org/export/1.0/excerpt/", NamespaceExcerpt},
	{"http://wordpress.org/export/1.2/excerpt/", NamespaceExcerpt},
	{"http://wordpress.org/export/1.0/", NamespaceWP},
	{"http://wordpress.org/export/1.2/", NamespaceWP},
	{"http://b2evolution.net/export/1.0/", NamespaceEvo},
}

// NormalizeNamespaces rewrites version-variant namespace URIs to their
// canonical form and injects declarations for the wp, evo and excerpt
// prefixes when the root element lacks them.
func NormalizeNamespaces(data []byte) []byte {
	for _, variant := range namespaceVariants {
		data = bytes.ReplaceAll(data, []byte(variant[0]), []byte(variant[1]))
	}

	open := bytes.Index(data, []byte("<rss"))
	if open < 0 {
		return data
	}
	end := bytes.IndexByte(data[open:], '>')
	if end < 0 {
		return data
	}
	rootTag := data[open : open+end]

	var missing []byte
	for _, ns := range defaultNamespaces {
		if !bytes.Contains(rootTag, []byte(ns.attr)) {
			missing = append(missing, []byte(` `+ns.attr+`"`+ns.uri+`"`)...)
		}
	}
	if len(missing) == 0 {
		return data
	}

	out := make([]byte, 0, len(data)+len(missing))
	out = append(out, data[:open+len("<rss")]...)
	out = append(out, missing...)
	out = append(out, data[open+len("<rss"):]...)
	return out
}
