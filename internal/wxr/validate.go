package wxr

import (
	"encoding/xml"
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ErrInvalidFormat marks documents that parse as XML but carry no recognized
// version marker.
var ErrInvalidFormat = errors.New("wxr: missing or invalid WXR version number")

var (
	wxrVersionPattern = regexp.MustCompile(`^\d+\.\d+$`)
	appVersionPattern = regexp.MustCompile(`(?i)^[\d.]+(-[a-z]+)?$`)
)

type checkChannel struct {
	WXRVersion string `xml:"http://wordpress.org/export/1.1/ wxr_version"`
	AppVersion string `xml:"http://b2evolution.net/export/2.0/ app_version"`
}

type checkFile struct {
	Channel checkChannel `xml:"channel"`
}

// CheckFile validates that the file at path is structurally a WXR document:
// it must decode as XML after invalid-character filtering and declare either
// a well-formed WXR version or a well-formed application version.
func CheckFile(path string) error {
	raw, err := readFiltered(path)
	if err != nil {
		return err
	}

	var file checkFile
	if err := xml.Unmarshal(raw, &file); err != nil {
		return fmt.Errorf("wxr: decode %s: %w", path, err)
	}

	if v := strings.TrimSpace(file.Channel.WXRVersion); v != "" {
		if wxrVersionPattern.MatchString(v) {
			return nil
		}
		return fmt.Errorf("%w: wxr_version %q", ErrInvalidFormat, v)
	}
	if v := strings.TrimSpace(file.Channel.AppVersion); v != "" {
		if appVersionPattern.MatchString(v) {
			return nil
		}
		return fmt.Errorf("%w: app_version %q", ErrInvalidFormat, v)
	}
	return ErrInvalidFormat
}
