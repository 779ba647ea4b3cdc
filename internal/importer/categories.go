package importer

import (
	"context"

	"github.com/goliatone/go-wpimport/internal/store"
)

// importCategories creates the collection's category tree. Parents are
// resolved by slug against categories created earlier in the same pass, so
// exports must list parents before children, which they do.
func (r *run) importCategories(ctx context.Context) error {
	existing, err := r.st.ChapterSlugs(ctx, r.coll.ID)
	if err != nil {
		return err
	}
	for slug, id := range existing {
		r.chapters[slug] = id
	}

	if len(r.doc.Categories) > 0 {
		r.report().Log("Importing categories...")
	}

	for i := range r.doc.Categories {
		cat := &r.doc.Categories[i]
		slug := r.convert(cat.Slug)
		if slug == "" {
			continue
		}
		if _, ok := r.chapters[slug]; ok {
			continue
		}

		chapter := &store.Chapter{
			CollectionID: r.coll.ID,
			Name:         r.convert(cat.Name),
			URLName:      slug,
			Description:  r.convert(cat.Description),
		}
		if cat.Order != "" {
			order := r.convert(cat.Order)
			chapter.Order = &order
		}
		if cat.Parent != "" {
			if parentID, ok := r.chapters[r.convert(cat.Parent)]; ok {
				chapter.ParentID = &parentID
			}
		}

		if err := r.st.InsertChapter(ctx, chapter); err != nil {
			return err
		}
		r.chapters[slug] = chapter.ID
		r.stats.CategoriesCreated++

		if r.defaultChapterID == 0 {
			r.defaultChapterID = chapter.ID
		}
	}

	if r.stats.CategoriesCreated > 0 {
		r.report().Success("%d categories created", r.stats.CategoriesCreated)
	}

	return r.ensureDefaultChapter(ctx, existing)
}

// ensureDefaultChapter guarantees a main category exists for posts without
// one: the first category created this run, else the first existing one,
// else a new catch-all.
func (r *run) ensureDefaultChapter(ctx context.Context, existing map[string]int64) error {
	if r.defaultChapterID != 0 {
		return nil
	}
	for _, id := range existing {
		if r.defaultChapterID == 0 || id < r.defaultChapterID {
			r.defaultChapterID = id
		}
	}
	if r.defaultChapterID != 0 {
		return nil
	}

	chapter := &store.Chapter{
		CollectionID: r.coll.ID,
		Name:         "Uncategorized",
		URLName:      r.coll.URLName + "-main",
	}
	if err := r.st.InsertChapter(ctx, chapter); err != nil {
		return err
	}
	r.chapters[chapter.URLName] = chapter.ID
	r.defaultChapterID = chapter.ID
	r.stats.CategoriesCreated++
	return nil
}
