package importer

import (
	"context"
)

// deleteExisting removes the collection's current content: comments first,
// then items with their side tables, then categories, then tags left without
// any remaining item. It returns the file IDs that were attached to the
// deleted items, candidates for physical deletion.
func (r *run) deleteExisting(ctx context.Context) ([]int64, error) {
	r.report().Log("Removing previous content of the destination collection...")

	chapterIDs, err := r.st.ChapterIDs(ctx, r.im.opts.CollectionID)
	if err != nil {
		return nil, err
	}
	itemIDs, err := r.st.ItemIDsByMainChapters(ctx, chapterIDs)
	if err != nil {
		return nil, err
	}

	var orphanedFileIDs []int64
	if r.im.opts.DeleteFiles {
		orphanedFileIDs, err = r.st.FileIDsLinkedToItems(ctx, itemIDs)
		if err != nil {
			return nil, err
		}
	}

	commentIDs, err := r.st.CommentIDsByItems(ctx, itemIDs)
	if err != nil {
		return nil, err
	}
	if err := r.st.DeleteCommentsByItems(ctx, itemIDs); err != nil {
		return nil, err
	}
	if err := r.st.DeleteCommentVotes(ctx, commentIDs); err != nil {
		return nil, err
	}
	if err := r.st.DeleteLinksByComments(ctx, commentIDs); err != nil {
		return nil, err
	}
	r.stats.CommentsDeleted = len(commentIDs)

	tagIDs, err := r.st.TagIDsByItems(ctx, itemIDs)
	if err != nil {
		return nil, err
	}
	keepTagIDs, err := r.st.TagIDsExcludingItems(ctx, itemIDs)
	if err != nil {
		return nil, err
	}

	if err := r.st.DeleteItemsByMainChapters(ctx, chapterIDs); err != nil {
		return nil, err
	}
	if err := r.st.DeleteItemDependents(ctx, itemIDs); err != nil {
		return nil, err
	}
	r.stats.ItemsDeleted = len(itemIDs)

	if err := r.st.DeleteChaptersByCollection(ctx, r.im.opts.CollectionID); err != nil {
		return nil, err
	}

	if err := r.st.DeleteTags(ctx, tagIDs, keepTagIDs); err != nil {
		return nil, err
	}
	if err := r.st.DeleteItemTagsByItems(ctx, itemIDs); err != nil {
		return nil, err
	}

	r.logger().Debug("previous content removed",
		"items", len(itemIDs),
		"comments", len(commentIDs),
		"chapters", len(chapterIDs),
	)
	r.report().Success("Removed %d items and %d comments", len(itemIDs), len(commentIDs))
	return orphanedFileIDs, nil
}

// deleteOrphanedFiles removes the files that were only attached to the
// deleted content, both their records and the files on disk. Files still
// linked elsewhere (another collection, a user profile) are spared.
func (r *run) deleteOrphanedFiles(ctx context.Context, candidates []int64) error {
	if len(candidates) == 0 {
		return nil
	}

	stillLinked, err := r.st.FileIDsStillLinked(ctx, candidates)
	if err != nil {
		return err
	}
	spared := make(map[int64]bool, len(stillLinked))
	for _, id := range stillLinked {
		spared[id] = true
	}

	for _, fileID := range candidates {
		if spared[fileID] {
			continue
		}
		file, err := r.st.FileByID(ctx, fileID)
		if err != nil {
			return err
		}
		if file == nil {
			continue
		}
		rootDir, err := r.fileRootDir(ctx, file.RootType, file.RootID)
		if err != nil {
			return err
		}
		if rootDir != "" {
			if err := r.im.storage.Remove(rootDir, file.Path); err != nil {
				r.report().Warning("Could not delete file %s: %v", file.Path, err)
				continue
			}
		}
		if err := r.st.DeleteFile(ctx, fileID); err != nil {
			return err
		}
		r.stats.FilesDeleted++
	}

	if r.stats.FilesDeleted > 0 {
		r.report().Success("Deleted %d orphaned media files", r.stats.FilesDeleted)
	}
	return nil
}

// fileRootDir resolves a file record's root to the on-disk directory it
// lives under.
func (r *run) fileRootDir(ctx context.Context, rootType string, rootID int64) (string, error) {
	switch rootType {
	case "shared":
		return r.im.storage.SharedRoot(), nil
	case "user":
		user, err := r.st.UserByID(ctx, rootID)
		if err != nil {
			return "", err
		}
		if user == nil {
			return "", nil
		}
		return r.im.storage.UserRoot(user.Login), nil
	case "collection":
		coll, err := r.st.CollectionByID(ctx, rootID)
		if err != nil {
			return "", err
		}
		return r.im.storage.CollectionRoot(coll.URLName), nil
	}
	return "", nil
}
