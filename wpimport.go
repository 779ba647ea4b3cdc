// Package wpimport imports WordPress and b2evolution WXR exports into a
// destination CMS database. The root package exposes the handful of types a
// host application needs; the pipeline itself lives in internal packages.
package wpimport

import (
	"database/sql"
	"io"

	wpimportcmd "github.com/goliatone/go-wpimport/internal/commands/wpimport"
	"github.com/goliatone/go-wpimport/internal/files"
	"github.com/goliatone/go-wpimport/internal/importer"
	"github.com/goliatone/go-wpimport/internal/progress"
	"github.com/goliatone/go-wpimport/internal/store"
	"github.com/goliatone/go-wpimport/pkg/interfaces"
	"github.com/uptrace/bun"
)

type (
	// ImportCollectionCommand is the command message driving one import run.
	ImportCollectionCommand = wpimportcmd.ImportCollectionCommand
	// Dependencies wires the services the import handler executes against.
	Dependencies = wpimportcmd.Dependencies
	// Stats summarizes the outcome of a run.
	Stats = importer.Stats
	// Reporter receives human-readable progress during a run.
	Reporter = progress.Reporter
	// Logger is the leveled logging contract used throughout the pipeline.
	Logger = interfaces.Logger
)

// Import modes accepted by Config and ImportCollectionCommand.
const (
	ModeAppend  = importer.ModeAppend
	ModeReplace = importer.ModeReplace
)

// OpenDB wraps a sqlite database handle with the bun dialect the store uses.
func OpenDB(sqldb *sql.DB) *bun.DB {
	return store.OpenDB(sqldb)
}

// CreateSchema creates the destination tables when they do not exist yet.
var CreateSchema = store.CreateSchema

// NewImportCollectionHandler builds the commander for ImportCollectionCommand.
var NewImportCollectionHandler = wpimportcmd.NewImportCollectionHandler

// NewStorage scopes media file placement under the given media directory.
func NewStorage(mediaDir string) *files.Storage {
	return files.New(mediaDir)
}

// NewConsoleReporter writes progress to the given writer and, once a run
// starts, into the run's log file.
func NewConsoleReporter(live io.Writer) *progress.Console {
	return progress.NewConsole(live)
}
