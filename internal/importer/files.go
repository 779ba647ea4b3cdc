package importer

import (
	"context"
	"path/filepath"

	"github.com/goliatone/go-wpimport/internal/store"
	"github.com/goliatone/go-wpimport/internal/wxr"
)

// importFiles copies the export's media files into the destination media
// directory and records them. Deferred per-user attachment links and avatar
// references are applied once their files exist.
func (r *run) importFiles(ctx context.Context) error {
	if len(r.doc.Files) == 0 {
		return nil
	}
	if r.src == nil || r.src.AttachmentsDir == "" {
		r.report().Warning("No attachments folder found, %d files not imported", len(r.doc.Files))
		return nil
	}
	r.report().Log("Importing files...")

	for i := range r.doc.Files {
		file := &r.doc.Files[i]
		if err := r.importFile(ctx, file); err != nil {
			return err
		}
	}

	if err := r.applyUserLinks(ctx); err != nil {
		return err
	}

	r.report().Success("%d files imported, %d failed", r.stats.FilesCreated, r.stats.FilesFailed)
	return nil
}

func (r *run) importFile(ctx context.Context, file *wxr.File) error {
	rootType, rootID, rootDir, err := r.destFileRoot(ctx, file)
	if err != nil {
		return err
	}

	srcPath := filepath.Join(r.src.AttachmentsDir, filepath.FromSlash(file.ZipPath+file.Path))
	relPath, err := r.im.storage.Place(srcPath, rootDir, file.Path)
	if err != nil {
		r.report().Warning("Could not copy file %s: %v", file.Path, err)
		r.stats.FilesFailed++
		return nil
	}

	rec := &store.File{
		RootType: rootType,
		RootID:   rootID,
		Path:     relPath,
		Title:    r.convert(file.Title),
		Alt:      r.convert(file.Alt),
		Desc:     r.convert(file.Desc),
	}
	if err := r.st.InsertFile(ctx, rec); err != nil {
		return err
	}
	r.fileIDs[file.ID] = rec
	r.stats.FilesCreated++

	r.indexAttachmentName(file.Path, rec)
	return nil
}

// indexAttachmentName registers an imported file's base name for <img> tag
// matching. Two files sharing one base name make the name unusable for
// matching, no matter which pass imported them.
func (r *run) indexAttachmentName(path string, rec *store.File) {
	base := baseName(path)
	if prev, seen := r.attachments[base]; seen && prev != rec {
		if prev != nil {
			r.report().Warning("Duplicate file name %q, skipping it for <img> tag matching", base)
		}
		r.attachments[base] = nil
	} else {
		r.attachments[base] = rec
	}
}

// destFileRoot maps the source file root onto a destination root. User roots
// of unmapped users and unknown root types land in the collection root.
func (r *run) destFileRoot(ctx context.Context, file *wxr.File) (string, int64, string, error) {
	switch file.RootType {
	case "shared":
		return "shared", 0, r.im.storage.SharedRoot(), nil
	case "user":
		if destUserID, ok := r.authorIDs[int(file.RootID)]; ok {
			user, err := r.st.UserByID(ctx, destUserID)
			if err != nil {
				return "", 0, "", err
			}
			if user != nil {
				return "user", destUserID, r.im.storage.UserRoot(user.Login), nil
			}
		}
	}
	return "collection", r.coll.ID, r.im.storage.CollectionRoot(r.coll.URLName), nil
}

func (r *run) applyUserLinks(ctx context.Context) error {
	for destUserID, links := range r.userLinks {
		for srcFileID, link := range links {
			rec := r.fileIDs[srcFileID]
			if rec == nil {
				continue
			}
			userID := destUserID
			if err := r.st.InsertLink(ctx, &store.Link{
				UserID:         &userID,
				FileID:         rec.ID,
				CreatorUserID:  destUserID,
				LastEditUserID: destUserID,
				Position:       linkPosition(link.Position),
				Order:          link.Order,
			}); err != nil {
				return err
			}
			r.stats.LinksCreated++

			if r.avatarFiles[destUserID] == srcFileID {
				if err := r.st.UpdateUserAvatar(ctx, destUserID, rec.ID); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

func linkPosition(pos string) string {
	if pos == "" {
		return "aftermore"
	}
	return pos
}
