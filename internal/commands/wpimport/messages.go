package wpimportcmd

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/goliatone/go-wpimport/internal/importer"
)

const importCollectionMessageType = "wpimport.collection.import"

// ImportCollectionCommand runs a full export import into one destination
// collection. Path may point at the XML document itself or at a ZIP archive
// containing it together with the attachment files.
type ImportCollectionCommand struct {
	// Path selects the export document or archive to import.
	Path string `json:"path"`
	// CollectionID is the destination collection.
	CollectionID int64 `json:"collection_id"`
	// Mode is "append" (default) or "replace".
	Mode string `json:"mode,omitempty"`
	// DeleteFiles also removes media files orphaned by a replace run.
	DeleteFiles bool `json:"delete_files,omitempty"`
	// MatchImages rewrites <img> tags matching imported files into inline tags.
	MatchImages bool `json:"match_images,omitempty"`
	// AllowExtracted reuses a folder left behind by an earlier extraction of
	// the same archive.
	AllowExtracted bool `json:"allow_extracted,omitempty"`
	// DestinationCharset declares the destination database charset when it is
	// not UTF-8.
	DestinationCharset string `json:"destination_charset,omitempty"`

	// TypeByName maps source item type names to destination item type IDs. A
	// zero ID skips posts of that type.
	TypeByName map[string]int64 `json:"type_by_name,omitempty"`
	// TypeByUsage maps source post types to destination item type IDs.
	TypeByUsage map[string]int64 `json:"type_by_usage,omitempty"`
	// TypeFallback applies when neither map matches.
	TypeFallback int64 `json:"type_fallback,omitempty"`
}

// Type implements command.Message.
func (ImportCollectionCommand) Type() string { return importCollectionMessageType }

// Validate ensures the command addresses an importable source and a concrete
// destination before the handler executes.
func (cmd ImportCollectionCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.Path, validation.Required, validation.By(func(value any) error {
			if strings.TrimSpace(value.(string)) == "" {
				return validation.NewError("wpimport.collection.import.path_required", "path is required")
			}
			return nil
		})),
		validation.Field(&cmd.CollectionID, validation.Required, validation.Min(1)),
		validation.Field(&cmd.Mode, validation.In("", importer.ModeAppend, importer.ModeReplace)),
		validation.Field(&cmd.DeleteFiles, validation.By(func(any) error {
			if cmd.DeleteFiles && cmd.Mode != importer.ModeReplace {
				return validation.NewError("wpimport.collection.import.delete_files_mode", "delete_files requires replace mode")
			}
			return nil
		})),
	)
}

// ImportMode normalizes the command's mode, defaulting to append.
func (cmd ImportCollectionCommand) ImportMode() string {
	if cmd.Mode == "" {
		return importer.ModeAppend
	}
	return cmd.Mode
}
