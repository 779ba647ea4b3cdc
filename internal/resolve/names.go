package resolve

import (
	"html"
	"regexp"
	"strings"
	"unicode/utf8"
)

const (
	maxLoginLength   = 20
	maxTagNameLength = 50
)

var loginSanitizer = regexp.MustCompile(`[^a-zA-Z0-9_\-.]`)

// SanitizeLogin normalizes a source login into the destination's allowed
// character set: unauthorized characters become underscores, the result is
// lowercased and capped at 20 characters.
func SanitizeLogin(login string) string {
	login = loginSanitizer.ReplaceAllString(login, "_")
	login = strings.ToLower(login)
	if utf8.RuneCountInString(login) > maxLoginLength {
		runes := []rune(login)
		login = string(runes[:maxLoginLength])
	}
	return login
}

// NormalizeTagName decodes HTML entities and truncates the tag name to the
// destination column width, keeping multi-byte runes intact.
func NormalizeTagName(name string) string {
	name = html.UnescapeString(name)
	if len(name) <= maxTagNameLength {
		return name
	}
	cut := maxTagNameLength
	for cut > 0 && !utf8.RuneStart(name[cut]) {
		cut--
	}
	return name[:cut]
}
