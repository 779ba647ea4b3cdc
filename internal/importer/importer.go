package importer

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/goliatone/go-wpimport/internal/files"
	"github.com/goliatone/go-wpimport/internal/logging"
	"github.com/goliatone/go-wpimport/internal/progress"
	"github.com/goliatone/go-wpimport/internal/resolve"
	"github.com/goliatone/go-wpimport/internal/source"
	"github.com/goliatone/go-wpimport/internal/store"
	"github.com/goliatone/go-wpimport/internal/wxr"
	"github.com/goliatone/go-wpimport/pkg/interfaces"
	"github.com/uptrace/bun"
)

// Import modes. Append keeps existing collection content, replace wipes it
// before importing.
const (
	ModeAppend  = "append"
	ModeReplace = "replace"
)

// Options configure one import run.
type Options struct {
	// CollectionID is the destination collection.
	CollectionID int64
	// Mode is ModeAppend or ModeReplace.
	Mode string
	// DeleteFiles additionally removes media files orphaned by a replace run.
	// Ignored in append mode.
	DeleteFiles bool
	// MatchImages rewrites <img> tags whose source matches an imported file
	// into inline placeholders.
	MatchImages bool
	// DestinationCharset is the destination database charset. Values are
	// re-encoded when it differs from the export's UTF-8.
	DestinationCharset string

	// TypeByName maps source item type names to destination item type IDs.
	// A zero ID marks the type as deliberately skipped.
	TypeByName map[string]int64
	// TypeByUsage maps source post types (post, page) to destination item
	// type IDs when no item type name matched.
	TypeByUsage map[string]int64
	// TypeFallback is used when neither map matches.
	TypeFallback int64
}

// Importer drives the import of one parsed export into the destination.
type Importer struct {
	db       *bun.DB
	storage  *files.Storage
	reporter progress.Reporter
	logger   interfaces.Logger
	opts     Options
}

func New(db *bun.DB, storage *files.Storage, reporter progress.Reporter, logger interfaces.Logger, opts Options) *Importer {
	if reporter == nil {
		reporter = progress.Discard
	}
	if logger == nil {
		logger = logging.NoOp()
	}
	return &Importer{
		db:       db,
		storage:  storage,
		reporter: reporter,
		logger:   logger,
		opts:     opts,
	}
}

// run carries the cross-phase state of one import: the source to destination
// ID maps every later phase depends on.
type run struct {
	im   *Importer
	doc  *wxr.Document
	src  *source.Source
	st   *store.Store
	res  *resolve.Resolver
	conv *wxr.Converter
	coll *store.Collection
	log  interfaces.Logger

	// authors maps sanitized source logins to destination user IDs,
	// authorIDs maps source user IDs the same way.
	authors   map[string]int64
	authorIDs map[int]int64
	// userLinks defers per-user attachment links until their files exist:
	// destination user ID to source file ID to link record.
	userLinks   map[int64]map[int64]wxr.Link
	avatarFiles map[int64]int64

	// fileIDs maps source file record IDs to inserted destination records.
	fileIDs map[int64]*store.File
	// attachments maps file base names to imported files. Ambiguous names
	// (two files sharing one base name) are invalidated with a nil entry.
	attachments map[string]*store.File

	// chapters maps category slugs to destination chapter IDs.
	chapters         map[string]int64
	defaultChapterID int64
	pagesChapterID   int64

	// tagIDs maps normalized tag names to destination tag IDs used this run,
	// existingTags carries every destination tag.
	tagIDs       map[string]int64
	existingTags map[string]int64

	// attachmentFiles maps source attachment post IDs to their imported
	// files, attachedPostFiles groups attachment post IDs under their
	// parent post.
	attachmentFiles   map[int]*store.File
	attachedPostFiles map[int][]int

	// postIDs and commentIDs map source IDs to destination IDs.
	postIDs    map[int]int64
	commentIDs map[int]int64

	// fieldSchemas caches the custom field schema per item type.
	fieldSchemas map[int64]map[string]string

	stats Stats
}

// Run imports the document into the configured collection. In replace mode
// existing content is removed in its own transaction, orphaned media files
// are deleted on disk, and only then the import transaction starts.
func (im *Importer) Run(ctx context.Context, doc *wxr.Document, src *source.Source) (*Stats, error) {
	var conv *wxr.Converter
	if wxr.NeedsConversion(doc.Language, im.opts.DestinationCharset) {
		conv = wxr.NewConverter(im.opts.DestinationCharset)
	}

	r := &run{
		im:                im,
		doc:               doc,
		src:               src,
		conv:              conv,
		authors:           map[string]int64{},
		authorIDs:         map[int]int64{},
		userLinks:         map[int64]map[int64]wxr.Link{},
		avatarFiles:       map[int64]int64{},
		fileIDs:           map[int64]*store.File{},
		attachments:       map[string]*store.File{},
		chapters:          map[string]int64{},
		tagIDs:            map[string]int64{},
		attachmentFiles:   map[int]*store.File{},
		attachedPostFiles: map[int][]int{},
		postIDs:           map[int]int64{},
		commentIDs:        map[int]int64{},
	}

	im.logger.Info("starting import",
		"collection_id", im.opts.CollectionID,
		"mode", im.opts.Mode,
		"authors", len(doc.Authors),
		"files", len(doc.Files),
		"posts", len(doc.Posts),
	)

	if im.opts.Mode == ModeReplace {
		if err := r.replacePhase(ctx); err != nil {
			return &r.stats, err
		}
	}

	if err := r.importPhase(ctx); err != nil {
		return &r.stats, err
	}

	im.logger.Info("import finished",
		"users_created", r.stats.UsersCreated,
		"files_created", r.stats.FilesCreated,
		"posts_created", r.stats.PostsCreated,
		"comments_created", r.stats.CommentsCreated,
	)
	return &r.stats, nil
}

// replacePhase deletes existing collection content in its own transaction,
// then removes orphaned media files outside any transaction so a crash
// between the two leaves records gone but files present, never the reverse.
func (r *run) replacePhase(ctx context.Context) error {
	var orphanedFileIDs []int64

	err := r.inTx(ctx, func(st *store.Store) error {
		r.st = st
		ids, err := r.deleteExisting(ctx)
		orphanedFileIDs = ids
		return err
	})
	if err != nil {
		return err
	}

	if r.im.opts.DeleteFiles {
		r.st = store.New(r.im.db)
		if err := r.deleteOrphanedFiles(ctx, orphanedFileIDs); err != nil {
			return err
		}
	}
	return nil
}

func (r *run) importPhase(ctx context.Context) error {
	return r.inTx(ctx, func(st *store.Store) error {
		r.st = st
		r.res = resolve.New(st)

		coll, err := st.CollectionByID(ctx, r.im.opts.CollectionID)
		if err != nil {
			return err
		}
		r.coll = coll

		docPath := ""
		if r.src != nil {
			docPath = r.src.DocumentPath
		}
		r.log = logging.WithImportContext(r.im.logger, docPath, coll.URLName, "")

		if err := r.importAuthors(ctx); err != nil {
			return err
		}
		if err := r.importFiles(ctx); err != nil {
			return err
		}
		if err := r.importCategories(ctx); err != nil {
			return err
		}
		if err := r.importTags(ctx); err != nil {
			return err
		}
		if err := r.importAttachments(ctx); err != nil {
			return err
		}
		if err := r.importPosts(ctx); err != nil {
			return err
		}
		return nil
	})
}

func (r *run) inTx(ctx context.Context, fn func(st *store.Store) error) error {
	tx, err := r.im.db.BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		return fmt.Errorf("importer: begin transaction: %w", err)
	}
	if err := fn(store.New(tx)); err != nil {
		tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("importer: commit: %w", err)
	}
	return nil
}

// convert re-encodes a value for the destination charset when required.
func (r *run) convert(s string) string {
	if r.conv == nil {
		return s
	}
	return r.conv.Convert(s)
}

func (r *run) logger() interfaces.Logger {
	if r.log != nil {
		return r.log
	}
	return r.im.logger
}

func (r *run) report() progress.Reporter {
	return r.im.reporter
}
