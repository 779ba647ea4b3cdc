package store

import (
	"context"
	"testing"

	"github.com/goliatone/go-wpimport/pkg/testsupport"
	"github.com/uptrace/bun"
)

func newTestDB(t *testing.T) (*bun.DB, *Store) {
	t.Helper()
	sqldb, err := testsupport.NewIsolatedMemoryDB()
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	db := OpenDB(sqldb)
	t.Cleanup(func() { db.Close() })
	if err := CreateSchema(context.Background(), db); err != nil {
		t.Fatalf("create schema: %v", err)
	}
	return db, New(db)
}

func TestInsertReadsBackGeneratedID(t *testing.T) {
	ctx := context.Background()
	_, st := newTestDB(t)

	grp := &Group{Name: "Normal Users"}
	if err := st.InsertGroup(ctx, grp); err != nil {
		t.Fatalf("InsertGroup returned error: %v", err)
	}
	if grp.ID == 0 {
		t.Fatal("expected generated group ID")
	}

	user := &User{Login: "mary", GroupID: grp.ID, Status: "autoactivated"}
	if err := st.InsertUser(ctx, user); err != nil {
		t.Fatalf("InsertUser returned error: %v", err)
	}
	if user.ID == 0 {
		t.Fatal("expected generated user ID")
	}

	logins, err := st.UserLogins(ctx)
	if err != nil {
		t.Fatalf("UserLogins returned error: %v", err)
	}
	if logins["mary"] != user.ID {
		t.Fatalf("expected login map to carry #%d, got %v", user.ID, logins)
	}
}

func TestLookupsReturnNilOnMiss(t *testing.T) {
	ctx := context.Background()
	_, st := newTestDB(t)

	if grp, err := st.GroupByName(ctx, "nobody"); err != nil || grp != nil {
		t.Fatalf("GroupByName miss = (%v, %v), want (nil, nil)", grp, err)
	}
	if ctry, err := st.CountryByCode(ctx, "XX"); err != nil || ctry != nil {
		t.Fatalf("CountryByCode miss = (%v, %v), want (nil, nil)", ctry, err)
	}
	if item, err := st.ItemByID(ctx, 42); err != nil || item != nil {
		t.Fatalf("ItemByID miss = (%v, %v), want (nil, nil)", item, err)
	}
	if _, err := st.CollectionByID(ctx, 42); err == nil {
		t.Fatal("expected error for missing collection")
	}
}

func TestSetUserSettingUpserts(t *testing.T) {
	ctx := context.Background()
	db, st := newTestDB(t)

	grp := &Group{Name: "Normal Users"}
	if err := st.InsertGroup(ctx, grp); err != nil {
		t.Fatalf("InsertGroup returned error: %v", err)
	}
	user := &User{Login: "mary", GroupID: grp.ID, Status: "autoactivated"}
	if err := st.InsertUser(ctx, user); err != nil {
		t.Fatalf("InsertUser returned error: %v", err)
	}

	if err := st.SetUserSetting(ctx, user.ID, "created_fromIPv4", "123"); err != nil {
		t.Fatalf("SetUserSetting returned error: %v", err)
	}
	if err := st.SetUserSetting(ctx, user.ID, "created_fromIPv4", "456"); err != nil {
		t.Fatalf("SetUserSetting second write returned error: %v", err)
	}

	var settings []UserSetting
	if err := db.NewSelect().Model(&settings).Scan(ctx); err != nil {
		t.Fatalf("read settings: %v", err)
	}
	if len(settings) != 1 || settings[0].Value != "456" {
		t.Fatalf("expected one upserted setting with value 456, got %+v", settings)
	}
}

func TestReplaceCleanupRemovesDependents(t *testing.T) {
	ctx := context.Background()
	db, st := newTestDB(t)

	coll := &Collection{Name: "Demo", URLName: "demo"}
	if err := st.InsertCollection(ctx, coll); err != nil {
		t.Fatalf("InsertCollection returned error: %v", err)
	}
	cat := &Chapter{CollectionID: coll.ID, Name: "News", URLName: "news"}
	if err := st.InsertChapter(ctx, cat); err != nil {
		t.Fatalf("InsertChapter returned error: %v", err)
	}
	ityp := &ItemType{Name: "Post", Usage: "post"}
	if err := st.InsertItemType(ctx, ityp); err != nil {
		t.Fatalf("InsertItemType returned error: %v", err)
	}
	item := &Item{
		MainChapterID:  cat.ID,
		CreatorUserID:  1,
		LastEditUserID: 1,
		ItemTypeID:     ityp.ID,
		Title:          "Hello",
		URLTitle:       "hello",
		Status:         "published",
		CommentStatus:  "open",
	}
	if err := st.InsertItem(ctx, item); err != nil {
		t.Fatalf("InsertItem returned error: %v", err)
	}
	if err := st.SetItemSetting(ctx, item.ID, "old", "1"); err != nil {
		t.Fatalf("SetItemSetting returned error: %v", err)
	}
	file := &File{RootType: "collection", RootID: coll.ID, Path: "a.jpg"}
	if err := st.InsertFile(ctx, file); err != nil {
		t.Fatalf("InsertFile returned error: %v", err)
	}
	link := &Link{ItemID: &item.ID, FileID: file.ID, Position: "aftermore", Order: 1}
	if err := st.InsertLink(ctx, link); err != nil {
		t.Fatalf("InsertLink returned error: %v", err)
	}
	cmt := &Comment{ItemID: item.ID, Author: "anon", Status: "published"}
	if err := st.InsertComment(ctx, cmt); err != nil {
		t.Fatalf("InsertComment returned error: %v", err)
	}

	chapterIDs, err := st.ChapterIDs(ctx, coll.ID)
	if err != nil {
		t.Fatalf("ChapterIDs returned error: %v", err)
	}
	itemIDs, err := st.ItemIDsByMainChapters(ctx, chapterIDs)
	if err != nil {
		t.Fatalf("ItemIDsByMainChapters returned error: %v", err)
	}
	if len(itemIDs) != 1 || itemIDs[0] != item.ID {
		t.Fatalf("expected item #%d, got %v", item.ID, itemIDs)
	}

	commentIDs, err := st.CommentIDsByItems(ctx, itemIDs)
	if err != nil {
		t.Fatalf("CommentIDsByItems returned error: %v", err)
	}
	if err := st.DeleteCommentsByItems(ctx, itemIDs); err != nil {
		t.Fatalf("DeleteCommentsByItems returned error: %v", err)
	}
	if err := st.DeleteCommentVotes(ctx, commentIDs); err != nil {
		t.Fatalf("DeleteCommentVotes returned error: %v", err)
	}
	if err := st.DeleteItemsByMainChapters(ctx, chapterIDs); err != nil {
		t.Fatalf("DeleteItemsByMainChapters returned error: %v", err)
	}
	if err := st.DeleteItemDependents(ctx, itemIDs); err != nil {
		t.Fatalf("DeleteItemDependents returned error: %v", err)
	}
	if err := st.DeleteChaptersByCollection(ctx, coll.ID); err != nil {
		t.Fatalf("DeleteChaptersByCollection returned error: %v", err)
	}

	for _, model := range []any{(*Item)(nil), (*Comment)(nil), (*ItemSetting)(nil), (*Link)(nil), (*Chapter)(nil)} {
		count, err := db.NewSelect().Model(model).Count(ctx)
		if err != nil {
			t.Fatalf("count %T: %v", model, err)
		}
		if count != 0 {
			t.Fatalf("expected %T table empty, found %d rows", model, count)
		}
	}
}

func TestDeleteTagsSparesKeepList(t *testing.T) {
	ctx := context.Background()
	db, st := newTestDB(t)

	orphan := &Tag{Name: "orphan"}
	if err := st.InsertTag(ctx, orphan); err != nil {
		t.Fatalf("InsertTag returned error: %v", err)
	}
	shared := &Tag{Name: "shared"}
	if err := st.InsertTag(ctx, shared); err != nil {
		t.Fatalf("InsertTag returned error: %v", err)
	}

	if err := st.DeleteTags(ctx, []int64{orphan.ID, shared.ID}, []int64{shared.ID}); err != nil {
		t.Fatalf("DeleteTags returned error: %v", err)
	}

	names, err := st.TagNames(ctx)
	if err != nil {
		t.Fatalf("TagNames returned error: %v", err)
	}
	if _, ok := names["orphan"]; ok {
		t.Fatal("expected orphan tag deleted")
	}
	if _, ok := names["shared"]; !ok {
		t.Fatal("expected shared tag spared")
	}

	count, err := db.NewSelect().Model((*Tag)(nil)).Count(ctx)
	if err != nil {
		t.Fatalf("count tags: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected one surviving tag, got %d", count)
	}
}
