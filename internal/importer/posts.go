package importer

import (
	"context"
	"fmt"
	"strconv"

	"github.com/goliatone/go-slug"
	"github.com/goliatone/go-wpimport/internal/resolve"
	"github.com/goliatone/go-wpimport/internal/store"
	"github.com/goliatone/go-wpimport/internal/wxr"
)

const (
	pagesChapterName = "Standalone Pages"
	pagesChapterSlug = "standalone-pages"
)

// importPosts runs the main post pass, the parent second pass and the
// comment import. Attachments were resolved earlier and revisions are
// skipped outright.
func (r *run) importPosts(ctx context.Context) error {
	r.report().Log("Importing posts...")

	for i := range r.doc.Posts {
		post := &r.doc.Posts[i]
		switch post.Type {
		case "attachment":
			continue
		case "revision":
			r.report().Warning("Skipping revision of post #%d", post.ParentID)
			r.stats.PostsSkipped++
			continue
		}
		if err := r.importPost(ctx, post); err != nil {
			return err
		}
	}

	// Parents may appear after their children, so references resolve in a
	// second pass once every post has an ID.
	for i := range r.doc.Posts {
		post := &r.doc.Posts[i]
		if post.ParentID == 0 {
			continue
		}
		itemID, ok := r.postIDs[post.ID]
		if !ok {
			continue
		}
		parentID, ok := r.postIDs[post.ParentID]
		if !ok {
			continue
		}
		if err := r.st.UpdateItemParent(ctx, itemID, parentID); err != nil {
			return err
		}
	}

	if err := r.importComments(ctx); err != nil {
		return err
	}

	r.report().Success("%d posts created, %d skipped, %d failed", r.stats.PostsCreated, r.stats.PostsSkipped, r.stats.PostsFailed)
	return nil
}

func (r *run) importPost(ctx context.Context, post *wxr.Post) error {
	itemTypeID, err := r.resolveItemType(ctx, post)
	if err != nil {
		r.report().Error("Post #%d: %v", post.ID, err)
		r.stats.PostsFailed++
		return nil
	}
	if itemTypeID == 0 {
		r.report().Warning("Skipping post #%d, its type is configured to be skipped", post.ID)
		r.stats.PostsSkipped++
		return nil
	}

	mainChapterID, extraChapterIDs, tagSlugs, err := r.resolveTerms(ctx, post)
	if err != nil {
		return err
	}

	creatorID := r.authorID(post.Author, 1)
	lastEditID := r.authorID(post.LastEditUser, creatorID)

	content := r.convert(post.Content)

	excerpt := r.convert(post.Excerpt)
	autogenerated := post.ExcerptAutogenerated != 0
	if excerpt == "" && content != "" {
		excerpt = excerptFromContent(content)
		autogenerated = true
	}

	urlTitle := post.URLTitle
	if urlTitle == "" {
		urlTitle = slugFromPermalink(r.convert(post.Link))
	}
	if urlTitle == "" {
		if normalized, err := slug.Normalize(r.convert(post.Title)); err == nil {
			urlTitle = normalized
		}
	}

	notifications := post.NotificationsStatus
	if notifications == "" {
		notifications = "noreq"
	}

	regional, err := r.res.RegionalChain(ctx, post.Country, post.Region, post.Subregion, post.City)
	if err != nil {
		return err
	}

	item := &store.Item{
		MainChapterID:        mainChapterID,
		CreatorUserID:        creatorID,
		LastEditUserID:       lastEditID,
		ItemTypeID:           itemTypeID,
		Title:                r.convert(post.Title),
		Content:              content,
		Excerpt:              excerpt,
		ExcerptAutogenerated: autogenerated,
		URLTitle:             urlTitle,
		TitleTag:             post.TitleTag,
		URL:                  post.URL,
		Status:               itemStatus(post.Status),
		CommentStatus:        commentStatusOf(post.CommentStatus),
		NotificationsStatus:  notifications,
		Renderers:            post.Renderers,
		Locale:               post.Locale,
		Priority:             post.Priority,
		Featured:             post.Featured != 0 || post.IsSticky != 0,
		Order:                post.Order,
		DateSet:              post.Date != "",
		DateStart:            post.Date,
		DateDeadline:         post.DateDeadline,
		DateCreated:          post.DateCreated,
		DateModified:         post.DateModified,
		CountryID:            regional.CountryID,
		RegionID:             regional.RegionID,
		SubregionID:          regional.SubregionID,
		CityID:               regional.CityID,
	}
	if post.AssignedUser != "" {
		if id, ok := r.authors[resolve.SanitizeLogin(post.AssignedUser)]; ok {
			item.AssignedUserID = &id
		}
	}

	if err := r.st.InsertItem(ctx, item); err != nil {
		r.report().Error("Could not create post #%d: %v", post.ID, err)
		r.stats.PostsFailed++
		return nil
	}
	r.postIDs[post.ID] = item.ID
	r.stats.PostsCreated++

	for _, chapterID := range append([]int64{mainChapterID}, extraChapterIDs...) {
		if err := r.st.InsertItemChapter(ctx, item.ID, chapterID); err != nil {
			return err
		}
	}
	for _, tagSlug := range tagSlugs {
		tagID, ok := r.lookupTag(tagSlug)
		if !ok {
			continue
		}
		if err := r.st.InsertItemTag(ctx, item.ID, tagID); err != nil {
			return err
		}
	}

	if err := r.importCustomFields(ctx, post, item.ID, itemTypeID); err != nil {
		return err
	}

	newContent, err := r.linkFiles(ctx, post, item.ID, content)
	if err != nil {
		return err
	}
	if newContent != content {
		if err := r.st.UpdateItemContent(ctx, item.ID, newContent); err != nil {
			return err
		}
	}
	return nil
}

// resolveItemType maps the source item type onto a destination item type ID.
// A zero return means the post is configured to be skipped.
func (r *run) resolveItemType(ctx context.Context, post *wxr.Post) (int64, error) {
	var id int64
	var matched bool
	if post.ItemType != "" {
		id, matched = r.im.opts.TypeByName[post.ItemType]
	}
	if !matched {
		id, matched = r.im.opts.TypeByUsage[post.Type]
	}
	if !matched {
		id = r.im.opts.TypeFallback
	}
	if id == 0 {
		return 0, nil
	}

	ityp, err := r.st.ItemTypeByID(ctx, id)
	if err != nil {
		return 0, err
	}
	if ityp == nil {
		return 0, fmt.Errorf("item type #%d does not exist at the destination", id)
	}
	return id, nil
}

// resolveTerms splits a post's term references into the main category, the
// extra categories and the tag slugs. Pages land under a dedicated chapter
// regardless of their categories.
func (r *run) resolveTerms(ctx context.Context, post *wxr.Post) (int64, []int64, []string, error) {
	var mainChapterID int64
	var extras []int64
	var tags []string

	if post.Type == "page" {
		id, err := r.ensurePagesChapter(ctx)
		if err != nil {
			return 0, nil, nil, err
		}
		mainChapterID = id
	}

	for _, term := range post.Terms {
		switch term.Domain {
		case "category":
			chapterID, ok := r.chapters[r.convert(term.Slug)]
			if !ok {
				continue
			}
			if mainChapterID == 0 {
				mainChapterID = chapterID
			} else if chapterID != mainChapterID {
				extras = append(extras, chapterID)
			}
		case "post_tag":
			tags = append(tags, term.Slug)
		}
	}

	if mainChapterID == 0 {
		mainChapterID = r.defaultChapterID
	}
	return mainChapterID, extras, tags, nil
}

func (r *run) ensurePagesChapter(ctx context.Context) (int64, error) {
	if r.pagesChapterID != 0 {
		return r.pagesChapterID, nil
	}
	if id, ok := r.chapters[pagesChapterSlug]; ok {
		r.pagesChapterID = id
		return id, nil
	}

	chapter := &store.Chapter{
		CollectionID: r.coll.ID,
		Name:         pagesChapterName,
		URLName:      pagesChapterSlug,
	}
	if err := r.st.InsertChapter(ctx, chapter); err != nil {
		return 0, err
	}
	r.chapters[pagesChapterSlug] = chapter.ID
	r.pagesChapterID = chapter.ID
	r.stats.CategoriesCreated++
	return chapter.ID, nil
}

// authorID resolves a source login to a destination user, falling back to
// the given default for unknown or absent logins.
func (r *run) authorID(login string, fallback int64) int64 {
	if login == "" {
		return fallback
	}
	if id, ok := r.authors[resolve.SanitizeLogin(login)]; ok {
		return id
	}
	return fallback
}

// importCustomFields persists custom field values after checking them
// against the item type's declared schema. Mismatches are reported per field
// and do not fail the post.
func (r *run) importCustomFields(ctx context.Context, post *wxr.Post, itemID, itemTypeID int64) error {
	if len(post.CustomFields) == 0 {
		return nil
	}
	schema, err := r.customFieldSchema(ctx, itemTypeID)
	if err != nil {
		return err
	}

	for _, field := range post.CustomFields {
		name := r.convert(field.Name)
		declared, ok := schema[name]
		if !ok {
			r.report().Error("Post #%d: custom field %q is not defined on the item type", post.ID, name)
			continue
		}
		if declared != r.convert(field.Type) {
			r.report().Error("Post #%d: custom field %q has type %q, expected %q", post.ID, name, field.Type, declared)
			continue
		}
		if err := r.st.SetItemSetting(ctx, itemID, "custom:"+name, r.convert(field.Value)); err != nil {
			return err
		}
	}
	return nil
}

func (r *run) customFieldSchema(ctx context.Context, itemTypeID int64) (map[string]string, error) {
	if r.fieldSchemas == nil {
		r.fieldSchemas = map[int64]map[string]string{}
	}
	if schema, ok := r.fieldSchemas[itemTypeID]; ok {
		return schema, nil
	}
	schema, err := r.st.CustomFieldsForType(ctx, itemTypeID)
	if err != nil {
		return nil, err
	}
	r.fieldSchemas[itemTypeID] = schema
	return schema, nil
}

// linkFiles attaches the post's files in four passes: explicit link records,
// caption blocks, matched inline images and the catch-all over attachment
// posts parented to this post. Caption and image markup is rewritten to
// inline placeholders referencing the created links.
func (r *run) linkFiles(ctx context.Context, post *wxr.Post, itemID int64, content string) (string, error) {
	linked := map[int64]int64{}
	maxOrder := 0

	createLink := func(rec *store.File, position string, order int) (int64, error) {
		if linkID, ok := linked[rec.ID]; ok {
			return linkID, nil
		}
		link := &store.Link{
			ItemID:         &itemID,
			FileID:         rec.ID,
			CreatorUserID:  r.authorID(post.Author, 1),
			LastEditUserID: r.authorID(post.Author, 1),
			Position:       position,
			Order:          order,
		}
		if err := r.st.InsertLink(ctx, link); err != nil {
			return 0, err
		}
		linked[rec.ID] = link.ID
		if order > maxOrder {
			maxOrder = order
		}
		r.stats.LinksCreated++
		return link.ID, nil
	}

	for _, link := range post.Links {
		if link.FileID == 0 {
			continue
		}
		rec := r.fileIDs[link.FileID]
		if rec == nil {
			continue
		}
		if _, err := createLink(rec, linkPosition(link.Position), link.Order); err != nil {
			return "", err
		}
	}

	var linkErr error
	content = captionPattern.ReplaceAllStringFunc(content, func(match string) string {
		if linkErr != nil {
			return match
		}
		m := captionPattern.FindStringSubmatch(match)
		attachmentPostID, _ := strconv.Atoi(m[1])
		rec := r.attachmentFiles[attachmentPostID]
		if rec == nil {
			return match
		}
		linkID, err := createLink(rec, "inline", maxOrder+1)
		if err != nil {
			linkErr = err
			return match
		}
		return inlineTag(linkID, rec.Path)
	})
	if linkErr != nil {
		return "", linkErr
	}

	if r.im.opts.MatchImages {
		content = imgPattern.ReplaceAllStringFunc(content, func(match string) string {
			if linkErr != nil {
				return match
			}
			m := imgPattern.FindStringSubmatch(match)
			rec := r.attachments[baseName(m[1])]
			if rec == nil {
				return match
			}
			linkID, err := createLink(rec, "inline", maxOrder+1)
			if err != nil {
				linkErr = err
				return match
			}
			return inlineTag(linkID, rec.Path)
		})
		if linkErr != nil {
			return "", linkErr
		}
	}

	for _, attachmentPostID := range r.attachedPostFiles[post.ID] {
		rec := r.attachmentFiles[attachmentPostID]
		if rec == nil {
			continue
		}
		if _, err := createLink(rec, "aftermore", maxOrder+1); err != nil {
			return "", err
		}
	}

	for _, meta := range post.Meta {
		if meta.Key != "_thumbnail_id" {
			continue
		}
		attachmentPostID, err := strconv.Atoi(meta.Value)
		if err != nil {
			continue
		}
		rec := r.attachmentFiles[attachmentPostID]
		if rec == nil {
			continue
		}
		if _, err := createLink(rec, "cover", maxOrder+1); err != nil {
			return "", err
		}
		break
	}

	return content, nil
}
