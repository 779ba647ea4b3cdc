package importer

import (
	"encoding/binary"
	"fmt"
	"net"
	"path"
	"regexp"
	"strconv"
	"strings"
)

var (
	// [caption id="attachment_123" ...]...[/caption] blocks referencing an
	// attachment post.
	captionPattern = regexp.MustCompile(`(?is)\[caption[^\]]+id="attachment_(\d+)"[^\]]+\].+?\[/caption\]`)

	// <img src="..."> tags, matched against imported files by base name.
	imgPattern = regexp.MustCompile(`(?i)<img[^>]+src="([^"]+)"[^>]*>`)

	// Everything up to the last slash or backslash of a path.
	dirPrefixPattern = regexp.MustCompile(`^.+[/\\]`)

	// The last path segment of a permalink URL.
	permalinkSlugPattern = regexp.MustCompile(`/([^/]+)/?$`)

	htmlTagPattern    = regexp.MustCompile(`<[^>]*>`)
	whitespacePattern = regexp.MustCompile(`\s+`)
)

const maxExcerptLength = 254

var imageExtensions = map[string]bool{
	".gif":  true,
	".jpeg": true,
	".jpg":  true,
	".png":  true,
	".svg":  true,
	".webp": true,
}

// baseName strips any directory prefix, regardless of separator style.
func baseName(p string) string {
	return dirPrefixPattern.ReplaceAllString(p, "")
}

// slugFromPermalink extracts the last path segment of a post URL.
func slugFromPermalink(link string) string {
	m := permalinkSlugPattern.FindStringSubmatch(link)
	if m == nil {
		return ""
	}
	return m[1]
}

// excerptFromContent derives a plain-text excerpt from rendered content,
// cutting on a word boundary.
func excerptFromContent(content string) string {
	text := htmlTagPattern.ReplaceAllString(content, " ")
	text = strings.TrimSpace(whitespacePattern.ReplaceAllString(text, " "))
	if len(text) <= maxExcerptLength {
		return text
	}
	cut := strings.LastIndex(text[:maxExcerptLength], " ")
	if cut <= 0 {
		cut = maxExcerptLength
	}
	return text[:cut] + "…"
}

// inlineTag renders the destination inline placeholder for a linked file.
func inlineTag(linkID int64, filePath string) string {
	if imageExtensions[strings.ToLower(path.Ext(filePath))] {
		return fmt.Sprintf("[image:%d]", linkID)
	}
	return fmt.Sprintf("[file:%d]", linkID)
}

// ipv4ToInt converts a dotted IPv4 address to its integer form. Returns 0
// for anything that is not a valid IPv4 address.
func ipv4ToInt(ip string) uint32 {
	parsed := net.ParseIP(ip)
	if parsed == nil {
		return 0
	}
	v4 := parsed.To4()
	if v4 == nil {
		return 0
	}
	return binary.BigEndian.Uint32(v4)
}

// serializedFileValue extracts the 'file' entry of a PHP-serialized
// attachment metadata blob without deserializing the whole structure.
func serializedFileValue(data string) (string, bool) {
	const marker = `s:4:"file";s:`
	idx := strings.Index(data, marker)
	if idx < 0 {
		return "", false
	}
	rest := data[idx+len(marker):]
	sep := strings.Index(rest, `:"`)
	if sep < 0 {
		return "", false
	}
	length, err := strconv.Atoi(rest[:sep])
	if err != nil || length < 0 {
		return "", false
	}
	value := rest[sep+2:]
	if len(value) < length+2 || value[length:length+2] != `";` {
		return "", false
	}
	return value[:length], true
}

// itemStatuses maps source post statuses to destination statuses. Statuses
// already valid at the destination pass through unchanged.
var itemStatuses = map[string]string{
	"publish":    "published",
	"pending":    "review",
	"draft":      "draft",
	"inherit":    "draft",
	"trash":      "deprecated",
	"published":  "published",
	"community":  "community",
	"deprecated": "deprecated",
	"protected":  "protected",
	"private":    "private",
	"review":     "review",
	"redirected": "redirected",
}

func itemStatus(status string) string {
	if mapped, ok := itemStatuses[status]; ok {
		return mapped
	}
	return "review"
}

func commentStatusOf(status string) string {
	switch status {
	case "open", "closed", "disabled":
		return status
	}
	return "open"
}
