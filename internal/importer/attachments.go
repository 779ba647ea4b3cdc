package importer

import (
	"context"
	"path/filepath"

	"github.com/goliatone/go-wpimport/internal/store"
	"github.com/goliatone/go-wpimport/internal/wxr"
)

// importAttachments imports the files carried by attachment posts. The file
// reference hides in post meta, either as a plain path or inside serialized
// attachment metadata; the first entry that imports wins and later entries
// for the same post are ignored. Parent references are remembered so the
// main post pass can link leftover attachments.
func (r *run) importAttachments(ctx context.Context) error {
	r.report().Log("Importing the files from attachment posts...")

	for i := range r.doc.Posts {
		post := &r.doc.Posts[i]
		if post.Type != "attachment" {
			continue
		}

		if post.ParentID != 0 {
			r.attachedPostFiles[post.ParentID] = append(r.attachedPostFiles[post.ParentID], post.ID)
		}

		tried := map[string]bool{}
		for _, meta := range post.Meta {
			var filePath string
			switch meta.Key {
			case "_wp_attached_file":
				filePath = meta.Value
			case "_wp_attachment_metadata":
				value, ok := serializedFileValue(meta.Value)
				if !ok {
					continue
				}
				filePath = value
			default:
				continue
			}
			if filePath == "" || tried[filePath] {
				continue
			}
			tried[filePath] = true

			rec, err := r.importAttachmentFile(ctx, post, filePath)
			if err != nil {
				return err
			}
			if rec == nil {
				continue
			}
			r.attachmentFiles[post.ID] = rec
			r.indexAttachmentName(filePath, rec)
			break
		}

		if _, ok := r.attachmentFiles[post.ID]; !ok {
			r.report().Warning("Attachment post #%d carries no importable file", post.ID)
		}
	}
	return nil
}

// importAttachmentFile copies one attachment into the collection's media
// root and records it. Copy failures are reported and leave the attachment
// without a file, they never abort the run.
func (r *run) importAttachmentFile(ctx context.Context, post *wxr.Post, filePath string) (*store.File, error) {
	if r.src == nil || r.src.AttachmentsDir == "" {
		return nil, nil
	}

	srcPath := filepath.Join(r.src.AttachmentsDir, filepath.FromSlash(filePath))
	destName := dirPrefixPattern.ReplaceAllString(filePath, "")
	relPath, err := r.im.storage.Place(srcPath, r.im.storage.CollectionRoot(r.coll.URLName), destName)
	if err != nil {
		r.report().Warning("Could not copy file %s: %v", filePath, err)
		r.stats.FilesFailed++
		return nil, nil
	}

	desc := post.Content
	if desc == "" {
		desc = post.Excerpt
	}
	rec := &store.File{
		RootType: "collection",
		RootID:   r.coll.ID,
		Path:     relPath,
		Title:    r.convert(post.Title),
		Desc:     r.convert(desc),
	}
	if err := r.st.InsertFile(ctx, rec); err != nil {
		return nil, err
	}
	r.stats.FilesCreated++
	return rec, nil
}
