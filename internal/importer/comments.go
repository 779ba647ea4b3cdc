package importer

import (
	"context"
	"unicode/utf8"

	"github.com/goliatone/go-wpimport/internal/store"
	"github.com/goliatone/go-wpimport/internal/wxr"
)

const maxCommentAuthorLength = 100

// importComments walks every imported post's comments in document order so
// parent comments exist before their replies reference them.
func (r *run) importComments(ctx context.Context) error {
	total := 0
	for i := range r.doc.Posts {
		post := &r.doc.Posts[i]
		itemID, ok := r.postIDs[post.ID]
		if !ok {
			// Comments of posts that were not imported go nowhere.
			r.stats.CommentsSkipped += len(post.Comments)
			continue
		}
		for j := range post.Comments {
			if err := r.importComment(ctx, itemID, &post.Comments[j]); err != nil {
				return err
			}
			total++
		}
	}
	if total > 0 {
		r.report().Success("%d comments created, %d failed", r.stats.CommentsCreated, r.stats.CommentsFailed)
	}
	return nil
}

func (r *run) importComment(ctx context.Context, itemID int64, src *wxr.Comment) error {
	status := src.Status
	if status == "" {
		if src.Approved == "1" {
			status = "published"
		} else {
			status = "draft"
		}
	}

	notifStatus := src.NotifStatus
	if notifStatus == "" {
		notifStatus = "noreq"
	}

	ipCountryID, err := r.commentIPCountry(ctx, src.IPCountry)
	if err != nil {
		return err
	}

	cmt := &store.Comment{
		ItemID:             itemID,
		Author:             truncateBytes(r.convert(src.Author), maxCommentAuthorLength),
		AuthorIP:           src.AuthorIP,
		AuthorEmail:        src.AuthorEmail,
		AuthorURL:          src.AuthorURL,
		IPCountryID:        ipCountryID,
		Date:               src.Date,
		Content:            r.convert(src.Content),
		Status:             status,
		Rating:             src.Rating,
		Featured:           src.Featured != 0,
		AuthorURLNofollow:  src.NofollowFlag(),
		AuthorURLUGC:       src.UGCFlag(),
		AuthorURLSponsored: src.AuthorURLSponsored,
		HelpfulAddVotes:    src.HelpfulAddVotes,
		HelpfulCountVotes:  src.HelpfulCountVotes,
		SpamAddVotes:       src.SpamAddVotes,
		SpamCountVotes:     src.SpamCountVotes,
		Karma:              src.Karma,
		SpamKarma:          src.SpamKarma,
		AllowMsgform:       src.AllowMsgform,
		NotifStatus:        notifStatus,
	}
	if src.UserID != 0 {
		if destID, ok := r.authorIDs[src.UserID]; ok {
			cmt.AuthorUserID = &destID
		}
	}
	if src.ParentID != 0 {
		if destID, ok := r.commentIDs[src.ParentID]; ok {
			cmt.ParentID = &destID
		}
	}

	if err := r.st.InsertComment(ctx, cmt); err != nil {
		// Replies to this comment fall back to top level, the run goes on.
		r.report().Error("Could not create comment #%d: %v", src.ID, err)
		r.stats.CommentsFailed++
		return nil
	}
	r.commentIDs[src.ID] = cmt.ID
	r.stats.CommentsCreated++
	return nil
}

// commentIPCountry resolves the source's country annotation, which may carry
// either a code or a full name.
func (r *run) commentIPCountry(ctx context.Context, value string) (int64, error) {
	if value == "" {
		return 0, nil
	}
	id, err := r.res.CountryID(ctx, value)
	if err != nil || id != 0 {
		return id, err
	}
	ctry, err := r.st.CountryByName(ctx, value)
	if err != nil || ctry == nil {
		return 0, err
	}
	return ctry.ID, nil
}

// truncateBytes caps a string at max bytes without splitting a rune.
func truncateBytes(s string, max int) string {
	if len(s) <= max {
		return s
	}
	cut := max
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}
