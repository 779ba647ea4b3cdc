package importer

import (
	"context"

	"github.com/goliatone/go-wpimport/internal/resolve"
	"github.com/goliatone/go-wpimport/internal/store"
)

// importTags creates the channel-level tags, reusing destination tags of the
// same normalized name.
func (r *run) importTags(ctx context.Context) error {
	existing, err := r.st.TagNames(ctx)
	if err != nil {
		return err
	}
	r.existingTags = existing

	names := make([]string, 0, len(r.doc.Tags)+len(r.doc.Terms))
	for _, tag := range r.doc.Tags {
		names = append(names, tag.Name)
	}
	// Generic taxonomy terms of the tag taxonomy count as tags too.
	for _, term := range r.doc.Terms {
		if term.Taxonomy == "post_tag" {
			names = append(names, term.Name)
		}
	}
	if len(names) == 0 {
		return nil
	}
	r.report().Log("Importing tags...")

	for _, name := range names {
		if _, err := r.ensureTag(ctx, name); err != nil {
			return err
		}
	}

	r.report().Success("%d tags created", r.stats.TagsCreated)
	return nil
}

// ensureTag resolves a tag by normalized name, creating it when missing.
// Returns 0 for names that normalize to nothing.
func (r *run) ensureTag(ctx context.Context, rawName string) (int64, error) {
	name := resolve.NormalizeTagName(r.convert(rawName))
	if name == "" {
		return 0, nil
	}
	if id, ok := r.tagIDs[name]; ok {
		return id, nil
	}
	if id, ok := r.existingTags[name]; ok {
		r.tagIDs[name] = id
		return id, nil
	}

	tag := &store.Tag{Name: name}
	if err := r.st.InsertTag(ctx, tag); err != nil {
		return 0, err
	}
	r.existingTags[name] = tag.ID
	r.tagIDs[name] = tag.ID
	r.stats.TagsCreated++
	return tag.ID, nil
}

// lookupTag resolves a post term's tag reference by its slug. Post terms
// only link tags that already exist, they never create new ones.
func (r *run) lookupTag(rawSlug string) (int64, bool) {
	name := resolve.NormalizeTagName(r.convert(rawSlug))
	if name == "" {
		return 0, false
	}
	if id, ok := r.tagIDs[name]; ok {
		return id, true
	}
	if id, ok := r.existingTags[name]; ok {
		return id, true
	}
	return 0, false
}
