package wpimport

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
	wpimportcmd "github.com/goliatone/go-wpimport/internal/commands/wpimport"
	"github.com/goliatone/go-wpimport/internal/importer"
)

// Config collects everything one import run needs beyond its database handle.
type Config struct {
	// MediaDir is the destination media base directory. Archives extract under
	// its import/ subfolder and imported files land in its root folders.
	MediaDir string `json:"media_dir"`
	// Path is the export document or archive to import.
	Path string `json:"path"`
	// CollectionID is the destination collection.
	CollectionID int64 `json:"collection_id"`
	// Mode is "append" (default) or "replace".
	Mode string `json:"mode"`
	// DeleteFiles removes media files orphaned by a replace run.
	DeleteFiles bool `json:"delete_files"`
	// MatchImages rewrites matching <img> tags into inline file tags.
	MatchImages bool `json:"match_images"`
	// AllowExtracted reuses a previously extracted archive folder.
	AllowExtracted bool `json:"allow_extracted"`
	// DestinationCharset is the destination database charset when not UTF-8.
	DestinationCharset string `json:"destination_charset"`

	// TypeByName maps source item type names to destination item type IDs; a
	// zero ID skips posts of that type.
	TypeByName map[string]int64 `json:"type_by_name"`
	// TypeByUsage maps source post types (post, page) to destination item
	// type IDs.
	TypeByUsage map[string]int64 `json:"type_by_usage"`
	// TypeFallback applies when neither mapping matches.
	TypeFallback int64 `json:"type_fallback"`
}

// DefaultConfig returns a config with the defaults an interactive run
// assumes: append mode, keep files, leave markup alone.
func DefaultConfig() Config {
	return Config{
		Mode: importer.ModeAppend,
	}
}

// Validate checks the config before a run starts.
func (c Config) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.MediaDir, validation.Required),
		validation.Field(&c.Path, validation.Required),
		validation.Field(&c.CollectionID, validation.Required, validation.Min(1)),
		validation.Field(&c.Mode, validation.In("", importer.ModeAppend, importer.ModeReplace)),
		validation.Field(&c.DeleteFiles, validation.By(func(any) error {
			if c.DeleteFiles && c.Mode != importer.ModeReplace {
				return validation.NewError("wpimport.config.delete_files_mode", "delete_files requires replace mode")
			}
			return nil
		})),
	)
}

// Command translates the config into the import command message.
func (c Config) Command() ImportCollectionCommand {
	return wpimportcmd.ImportCollectionCommand{
		Path:               c.Path,
		CollectionID:       c.CollectionID,
		Mode:               c.Mode,
		DeleteFiles:        c.DeleteFiles,
		MatchImages:        c.MatchImages,
		AllowExtracted:     c.AllowExtracted,
		DestinationCharset: c.DestinationCharset,
		TypeByName:         c.TypeByName,
		TypeByUsage:        c.TypeByUsage,
		TypeFallback:       c.TypeFallback,
	}
}
