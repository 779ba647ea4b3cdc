package wpimportcmd

import (
	"context"

	"github.com/goliatone/go-wpimport/internal/commands"
	"github.com/goliatone/go-wpimport/internal/files"
	"github.com/goliatone/go-wpimport/internal/importer"
	"github.com/goliatone/go-wpimport/internal/logging"
	"github.com/goliatone/go-wpimport/internal/progress"
	"github.com/goliatone/go-wpimport/internal/source"
	"github.com/goliatone/go-wpimport/internal/store"
	"github.com/goliatone/go-wpimport/internal/wxr"
	"github.com/goliatone/go-wpimport/pkg/interfaces"
	"github.com/uptrace/bun"
)

// Dependencies holds the services the import handler executes against. When
// a LoggerProvider is supplied the handler derives its own command-scoped
// logger from it.
type Dependencies struct {
	DB       *bun.DB
	Storage  *files.Storage
	Reporter progress.Reporter
	Logger   interfaces.Logger
	Provider interfaces.LoggerProvider
}

// NewImportCollectionHandler builds the commander for ImportCollectionCommand.
// The execution timeout is disabled because large exports legitimately take
// minutes to import.
func NewImportCollectionHandler(deps Dependencies) *commands.Handler[ImportCollectionCommand] {
	if deps.Reporter == nil {
		deps.Reporter = progress.Discard
	}
	if deps.Logger == nil {
		if deps.Provider != nil {
			deps.Logger = logging.ImporterLogger(deps.Provider)
		} else {
			deps.Logger = logging.NoOp()
		}
	}

	handlerLogger := deps.Logger
	if deps.Provider != nil {
		handlerLogger = commands.CommandLogger(deps.Provider, "collection")
	}

	return commands.NewHandler(func(ctx context.Context, msg ImportCollectionCommand) error {
		return runImport(ctx, deps, msg)
	},
		commands.WithLogger[ImportCollectionCommand](handlerLogger),
		commands.WithOperation[ImportCollectionCommand]("collection.import"),
		commands.WithTimeout[ImportCollectionCommand](0),
	)
}

func runImport(ctx context.Context, deps Dependencies, msg ImportCollectionCommand) error {
	ctx = logging.ContextWithFields(ctx, map[string]any{
		"collection_id": msg.CollectionID,
		"import_path":   msg.Path,
	})

	src, err := source.Locate(msg.Path, source.Options{
		MediaDir:       deps.Storage.MediaDir(),
		AllowExtracted: msg.AllowExtracted,
	})
	if err != nil {
		return err
	}

	doc, err := wxr.Parse(src.DocumentPath, wxr.ParseOptions{
		DestinationCharset: msg.DestinationCharset,
	})
	if err != nil {
		return err
	}

	// A console reporter additionally persists the run into a log file named
	// after the source site and the destination collection.
	if console, ok := deps.Reporter.(*progress.Console); ok {
		coll, err := store.New(deps.DB).CollectionByID(ctx, msg.CollectionID)
		if err != nil {
			return err
		}
		if _, err := console.StartLogFile(deps.Storage.LogDir(), doc.BaseURL, coll.URLName); err != nil {
			return err
		}
		defer console.Close()
	}

	imp := importer.New(deps.DB, deps.Storage, deps.Reporter, deps.Logger, importer.Options{
		CollectionID:       msg.CollectionID,
		Mode:               msg.ImportMode(),
		DeleteFiles:        msg.DeleteFiles,
		MatchImages:        msg.MatchImages,
		DestinationCharset: msg.DestinationCharset,
		TypeByName:         msg.TypeByName,
		TypeByUsage:        msg.TypeByUsage,
		TypeFallback:       msg.TypeFallback,
	})
	_, err = imp.Run(ctx, doc, src)
	return err
}
