package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/uptrace/bun"
)

// Store exposes the typed queries the import pipeline needs. Lookup methods
// return (nil, nil) when no row matches so callers can treat a miss as a
// plain condition instead of an error.
type Store struct {
	db bun.IDB
}

// New wraps a bun database handle. Pass a *bun.DB for standalone use or a
// bun.Tx to scope every query to a transaction.
func New(db bun.IDB) *Store {
	return &Store{db: db}
}

// WithTx returns a store bound to the given transaction.
func (s *Store) WithTx(tx bun.Tx) *Store {
	return &Store{db: tx}
}

func noRows(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

// --- collections ---

func (s *Store) CollectionByID(ctx context.Context, id int64) (*Collection, error) {
	coll := new(Collection)
	err := s.db.NewSelect().Model(coll).Where("id = ?", id).Scan(ctx)
	if noRows(err) {
		return nil, fmt.Errorf("store: collection #%d not found", id)
	}
	if err != nil {
		return nil, err
	}
	return coll, nil
}

func (s *Store) InsertCollection(ctx context.Context, coll *Collection) error {
	_, err := s.db.NewInsert().Model(coll).Exec(ctx)
	return err
}

// --- groups ---

func (s *Store) GroupByName(ctx context.Context, name string) (*Group, error) {
	grp := new(Group)
	err := s.db.NewSelect().Model(grp).Where("name = ?", name).Scan(ctx)
	if noRows(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return grp, nil
}

func (s *Store) InsertGroup(ctx context.Context, grp *Group) error {
	_, err := s.db.NewInsert().Model(grp).Exec(ctx)
	return err
}

// --- users ---

// UserLogins returns every destination login mapped to its user ID.
func (s *Store) UserLogins(ctx context.Context) (map[string]int64, error) {
	var users []User
	if err := s.db.NewSelect().Model(&users).Column("id", "login").Scan(ctx); err != nil {
		return nil, err
	}
	logins := make(map[string]int64, len(users))
	for _, u := range users {
		logins[u.Login] = u.ID
	}
	return logins, nil
}

func (s *Store) InsertUser(ctx context.Context, user *User) error {
	_, err := s.db.NewInsert().Model(user).Exec(ctx)
	return err
}

func (s *Store) UserByID(ctx context.Context, id int64) (*User, error) {
	user := new(User)
	err := s.db.NewSelect().Model(user).Where("id = ?", id).Scan(ctx)
	if noRows(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (s *Store) UpdateUserAvatar(ctx context.Context, userID, fileID int64) error {
	_, err := s.db.NewUpdate().Model((*User)(nil)).
		Set("avatar_file_id = ?", fileID).
		Where("id = ?", userID).
		Exec(ctx)
	return err
}

// SetUserSetting upserts a per-user setting value.
func (s *Store) SetUserSetting(ctx context.Context, userID int64, name, value string) error {
	setting := &UserSetting{UserID: userID, Name: name, Value: value}
	_, err := s.db.NewInsert().Model(setting).
		On("CONFLICT (user_id, name) DO UPDATE").
		Set("value = EXCLUDED.value").
		Exec(ctx)
	return err
}

// --- regional lookups ---

func (s *Store) CountryByCode(ctx context.Context, code string) (*Country, error) {
	ctry := new(Country)
	err := s.db.NewSelect().Model(ctry).Where("code = ?", code).Scan(ctx)
	if noRows(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return ctry, nil
}

func (s *Store) CountryByName(ctx context.Context, name string) (*Country, error) {
	ctry := new(Country)
	err := s.db.NewSelect().Model(ctry).Where("name = ?", name).Scan(ctx)
	if noRows(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return ctry, nil
}

func (s *Store) RegionByName(ctx context.Context, name string) (*Region, error) {
	rgn := new(Region)
	err := s.db.NewSelect().Model(rgn).Where("name = ?", name).Scan(ctx)
	if noRows(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return rgn, nil
}

func (s *Store) SubregionByName(ctx context.Context, name string) (*Subregion, error) {
	subrg := new(Subregion)
	err := s.db.NewSelect().Model(subrg).Where("name = ?", name).Scan(ctx)
	if noRows(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return subrg, nil
}

func (s *Store) CityByName(ctx context.Context, name string) (*City, error) {
	city := new(City)
	err := s.db.NewSelect().Model(city).Where("name = ?", name).Scan(ctx)
	if noRows(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return city, nil
}

// --- chapters ---

// ChapterSlugs returns url name to chapter ID for one collection.
func (s *Store) ChapterSlugs(ctx context.Context, collectionID int64) (map[string]int64, error) {
	var chapters []Chapter
	err := s.db.NewSelect().Model(&chapters).
		Column("id", "url_name").
		Where("collection_id = ?", collectionID).
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	slugs := make(map[string]int64, len(chapters))
	for _, cat := range chapters {
		slugs[cat.URLName] = cat.ID
	}
	return slugs, nil
}

func (s *Store) ChapterIDs(ctx context.Context, collectionID int64) ([]int64, error) {
	var ids []int64
	err := s.db.NewSelect().Model((*Chapter)(nil)).
		Column("id").
		Where("collection_id = ?", collectionID).
		Scan(ctx, &ids)
	return ids, err
}

func (s *Store) InsertChapter(ctx context.Context, cat *Chapter) error {
	_, err := s.db.NewInsert().Model(cat).Exec(ctx)
	return err
}

// --- tags ---

// TagNames returns every destination tag name mapped to its ID.
func (s *Store) TagNames(ctx context.Context) (map[string]int64, error) {
	var tags []Tag
	if err := s.db.NewSelect().Model(&tags).Scan(ctx); err != nil {
		return nil, err
	}
	names := make(map[string]int64, len(tags))
	for _, tag := range tags {
		names[tag.Name] = tag.ID
	}
	return names, nil
}

func (s *Store) InsertTag(ctx context.Context, tag *Tag) error {
	_, err := s.db.NewInsert().Model(tag).Exec(ctx)
	return err
}

func (s *Store) InsertItemTag(ctx context.Context, itemID, tagID int64) error {
	_, err := s.db.NewInsert().Model(&ItemTag{ItemID: itemID, TagID: tagID}).Exec(ctx)
	return err
}

// --- item types ---

func (s *Store) ItemTypeByID(ctx context.Context, id int64) (*ItemType, error) {
	ityp := new(ItemType)
	err := s.db.NewSelect().Model(ityp).Where("id = ?", id).Scan(ctx)
	if noRows(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return ityp, nil
}

func (s *Store) InsertItemType(ctx context.Context, ityp *ItemType) error {
	_, err := s.db.NewInsert().Model(ityp).Exec(ctx)
	return err
}

func (s *Store) InsertItemTypeCustomField(ctx context.Context, field *ItemTypeCustomField) error {
	_, err := s.db.NewInsert().Model(field).Exec(ctx)
	return err
}

// CustomFieldsForType returns the declared custom field schema of an item
// type as a name to type map.
func (s *Store) CustomFieldsForType(ctx context.Context, itemTypeID int64) (map[string]string, error) {
	var fields []ItemTypeCustomField
	err := s.db.NewSelect().Model(&fields).
		Where("item_type_id = ?", itemTypeID).
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	schema := make(map[string]string, len(fields))
	for _, field := range fields {
		schema[field.Name] = field.Type
	}
	return schema, nil
}

// --- items ---

func (s *Store) InsertItem(ctx context.Context, item *Item) error {
	_, err := s.db.NewInsert().Model(item).Exec(ctx)
	return err
}

func (s *Store) UpdateItemContent(ctx context.Context, itemID int64, content string) error {
	_, err := s.db.NewUpdate().Model((*Item)(nil)).
		Set("content = ?", content).
		Where("id = ?", itemID).
		Exec(ctx)
	return err
}

func (s *Store) UpdateItemParent(ctx context.Context, itemID, parentID int64) error {
	_, err := s.db.NewUpdate().Model((*Item)(nil)).
		Set("parent_id = ?", parentID).
		Where("id = ?", itemID).
		Exec(ctx)
	return err
}

func (s *Store) ItemByID(ctx context.Context, id int64) (*Item, error) {
	item := new(Item)
	err := s.db.NewSelect().Model(item).Where("id = ?", id).Scan(ctx)
	if noRows(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return item, nil
}

func (s *Store) ItemIDsByMainChapters(ctx context.Context, chapterIDs []int64) ([]int64, error) {
	if len(chapterIDs) == 0 {
		return nil, nil
	}
	var ids []int64
	err := s.db.NewSelect().Model((*Item)(nil)).
		Column("id").
		Where("main_chapter_id IN (?)", bun.In(chapterIDs)).
		Scan(ctx, &ids)
	return ids, err
}

func (s *Store) SetItemSetting(ctx context.Context, itemID int64, name, value string) error {
	setting := &ItemSetting{ItemID: itemID, Name: name, Value: value}
	_, err := s.db.NewInsert().Model(setting).
		On("CONFLICT (item_id, name) DO UPDATE").
		Set("value = EXCLUDED.value").
		Exec(ctx)
	return err
}

func (s *Store) InsertItemChapter(ctx context.Context, itemID, chapterID int64) error {
	_, err := s.db.NewInsert().Model(&ItemChapter{ItemID: itemID, ChapterID: chapterID}).
		On("CONFLICT (item_id, chapter_id) DO NOTHING").
		Exec(ctx)
	return err
}

// --- files ---

func (s *Store) FileByID(ctx context.Context, id int64) (*File, error) {
	file := new(File)
	err := s.db.NewSelect().Model(file).Where("id = ?", id).Scan(ctx)
	if noRows(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return file, nil
}

func (s *Store) InsertFile(ctx context.Context, file *File) error {
	_, err := s.db.NewInsert().Model(file).Exec(ctx)
	return err
}

func (s *Store) DeleteFile(ctx context.Context, id int64) error {
	_, err := s.db.NewDelete().Model((*File)(nil)).Where("id = ?", id).Exec(ctx)
	return err
}

// --- links ---

func (s *Store) InsertLink(ctx context.Context, link *Link) error {
	_, err := s.db.NewInsert().Model(link).Exec(ctx)
	return err
}

// FileIDsLinkedToItems returns the distinct file IDs attached to any of the
// given items.
func (s *Store) FileIDsLinkedToItems(ctx context.Context, itemIDs []int64) ([]int64, error) {
	if len(itemIDs) == 0 {
		return nil, nil
	}
	var ids []int64
	err := s.db.NewSelect().Model((*Link)(nil)).
		ColumnExpr("DISTINCT file_id").
		Where("item_id IN (?)", bun.In(itemIDs)).
		Scan(ctx, &ids)
	return ids, err
}

// FileIDsStillLinked narrows candidates to the IDs that still appear in any
// link record, e.g. from another collection or a user profile.
func (s *Store) FileIDsStillLinked(ctx context.Context, candidates []int64) ([]int64, error) {
	if len(candidates) == 0 {
		return nil, nil
	}
	var ids []int64
	err := s.db.NewSelect().Model((*Link)(nil)).
		ColumnExpr("DISTINCT file_id").
		Where("file_id IN (?)", bun.In(candidates)).
		Scan(ctx, &ids)
	return ids, err
}

// --- comments ---

func (s *Store) InsertComment(ctx context.Context, cmt *Comment) error {
	_, err := s.db.NewInsert().Model(cmt).Exec(ctx)
	return err
}

func (s *Store) CommentIDsByItems(ctx context.Context, itemIDs []int64) ([]int64, error) {
	if len(itemIDs) == 0 {
		return nil, nil
	}
	var ids []int64
	err := s.db.NewSelect().Model((*Comment)(nil)).
		Column("id").
		Where("item_id IN (?)", bun.In(itemIDs)).
		Scan(ctx, &ids)
	return ids, err
}

// --- replace-mode deletion ---

func (s *Store) DeleteCommentsByItems(ctx context.Context, itemIDs []int64) error {
	if len(itemIDs) == 0 {
		return nil
	}
	_, err := s.db.NewDelete().Model((*Comment)(nil)).
		Where("item_id IN (?)", bun.In(itemIDs)).
		Exec(ctx)
	return err
}

func (s *Store) DeleteCommentVotes(ctx context.Context, commentIDs []int64) error {
	if len(commentIDs) == 0 {
		return nil
	}
	_, err := s.db.NewDelete().Model((*CommentVote)(nil)).
		Where("comment_id IN (?)", bun.In(commentIDs)).
		Exec(ctx)
	return err
}

func (s *Store) DeleteLinksByComments(ctx context.Context, commentIDs []int64) error {
	if len(commentIDs) == 0 {
		return nil
	}
	_, err := s.db.NewDelete().Model((*Link)(nil)).
		Where("comment_id IN (?)", bun.In(commentIDs)).
		Exec(ctx)
	return err
}

func (s *Store) DeleteItemsByMainChapters(ctx context.Context, chapterIDs []int64) error {
	if len(chapterIDs) == 0 {
		return nil
	}
	_, err := s.db.NewDelete().Model((*Item)(nil)).
		Where("main_chapter_id IN (?)", bun.In(chapterIDs)).
		Exec(ctx)
	return err
}

// DeleteItemDependents removes the per-item side tables for the given items:
// settings, versions, category associations, per-user data, links and link
// votes.
func (s *Store) DeleteItemDependents(ctx context.Context, itemIDs []int64) error {
	if len(itemIDs) == 0 {
		return nil
	}
	if _, err := s.db.NewDelete().Model((*ItemSetting)(nil)).
		Where("item_id IN (?)", bun.In(itemIDs)).Exec(ctx); err != nil {
		return err
	}
	if _, err := s.db.NewDelete().Model((*ItemVersion)(nil)).
		Where("item_id IN (?)", bun.In(itemIDs)).Exec(ctx); err != nil {
		return err
	}
	if _, err := s.db.NewDelete().Model((*ItemChapter)(nil)).
		Where("item_id IN (?)", bun.In(itemIDs)).Exec(ctx); err != nil {
		return err
	}
	if _, err := s.db.NewDelete().Model((*ItemUserData)(nil)).
		Where("item_id IN (?)", bun.In(itemIDs)).Exec(ctx); err != nil {
		return err
	}
	var linkIDs []int64
	err := s.db.NewSelect().Model((*Link)(nil)).
		Column("id").
		Where("item_id IN (?)", bun.In(itemIDs)).
		Scan(ctx, &linkIDs)
	if err != nil {
		return err
	}
	if len(linkIDs) > 0 {
		if _, err := s.db.NewDelete().Model((*LinkVote)(nil)).
			Where("link_id IN (?)", bun.In(linkIDs)).Exec(ctx); err != nil {
			return err
		}
		if _, err := s.db.NewDelete().Model((*Link)(nil)).
			Where("id IN (?)", bun.In(linkIDs)).Exec(ctx); err != nil {
			return err
		}
	}
	return nil
}

func (s *Store) DeleteChaptersByCollection(ctx context.Context, collectionID int64) error {
	_, err := s.db.NewDelete().Model((*Chapter)(nil)).
		Where("collection_id = ?", collectionID).
		Exec(ctx)
	return err
}

func (s *Store) TagIDsByItems(ctx context.Context, itemIDs []int64) ([]int64, error) {
	if len(itemIDs) == 0 {
		return nil, nil
	}
	var ids []int64
	err := s.db.NewSelect().Model((*ItemTag)(nil)).
		ColumnExpr("DISTINCT tag_id").
		Where("item_id IN (?)", bun.In(itemIDs)).
		Scan(ctx, &ids)
	return ids, err
}

func (s *Store) TagIDsExcludingItems(ctx context.Context, itemIDs []int64) ([]int64, error) {
	if len(itemIDs) == 0 {
		return nil, nil
	}
	var ids []int64
	err := s.db.NewSelect().Model((*ItemTag)(nil)).
		ColumnExpr("DISTINCT tag_id").
		Where("item_id NOT IN (?)", bun.In(itemIDs)).
		Scan(ctx, &ids)
	return ids, err
}

// DeleteTags removes the given tags, sparing any ID present in keep.
func (s *Store) DeleteTags(ctx context.Context, tagIDs, keep []int64) error {
	if len(tagIDs) == 0 {
		return nil
	}
	q := s.db.NewDelete().Model((*Tag)(nil)).
		Where("id IN (?)", bun.In(tagIDs))
	if len(keep) > 0 {
		q = q.Where("id NOT IN (?)", bun.In(keep))
	}
	_, err := q.Exec(ctx)
	return err
}

func (s *Store) DeleteItemTagsByItems(ctx context.Context, itemIDs []int64) error {
	if len(itemIDs) == 0 {
		return nil
	}
	_, err := s.db.NewDelete().Model((*ItemTag)(nil)).
		Where("item_id IN (?)", bun.In(itemIDs)).
		Exec(ctx)
	return err
}
