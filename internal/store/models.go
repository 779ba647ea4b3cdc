package store

import (
	"time"

	"github.com/uptrace/bun"
)

// Collection is the destination blog/collection content is imported into.
type Collection struct {
	bun.BaseModel `bun:"table:collections,alias:coll"`

	ID        int64     `bun:"id,pk,autoincrement" json:"id"`
	Name      string    `bun:"name,notnull" json:"name"`
	ShortName string    `bun:"short_name" json:"short_name"`
	URLName   string    `bun:"url_name,notnull,unique" json:"url_name"`
	OwnerID   int64     `bun:"owner_id" json:"owner_id"`
	Locale    string    `bun:"locale" json:"locale"`
	BaseURL   string    `bun:"base_url" json:"base_url"`
	CreatedAt time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
}

// Group is a destination user group.
type Group struct {
	bun.BaseModel `bun:"table:groups,alias:grp"`

	ID   int64  `bun:"id,pk,autoincrement" json:"id"`
	Name string `bun:"name,notnull,unique" json:"name"`
}

// User is a destination account.
type User struct {
	bun.BaseModel `bun:"table:users,alias:u"`

	ID               int64      `bun:"id,pk,autoincrement" json:"id"`
	Login            string     `bun:"login,notnull,unique" json:"login"`
	Email            string     `bun:"email" json:"email"`
	FirstName        string     `bun:"first_name" json:"first_name"`
	LastName         string     `bun:"last_name" json:"last_name"`
	Nickname         string     `bun:"nickname" json:"nickname"`
	Pass             string     `bun:"pass" json:"-"`
	Salt             string     `bun:"salt" json:"-"`
	PassDriver       string     `bun:"pass_driver" json:"-"`
	GroupID          int64      `bun:"group_id,notnull" json:"group_id"`
	Status           string     `bun:"status,notnull" json:"status"`
	URL              string     `bun:"url" json:"url"`
	Level            int        `bun:"level" json:"level"`
	Locale           string     `bun:"locale" json:"locale"`
	Gender           string     `bun:"gender" json:"gender"`
	AgeMin           int        `bun:"age_min" json:"age_min"`
	AgeMax           int        `bun:"age_max" json:"age_max"`
	RegCountryID     int64      `bun:"reg_country_id" json:"reg_country_id"`
	CountryID        int64      `bun:"country_id" json:"country_id"`
	RegionID         int64      `bun:"region_id" json:"region_id"`
	SubregionID      int64      `bun:"subregion_id" json:"subregion_id"`
	CityID           int64      `bun:"city_id" json:"city_id"`
	Source           string     `bun:"source" json:"source"`
	AvatarFileID     int64      `bun:"avatar_file_id" json:"avatar_file_id"`
	CreatedAt        time.Time  `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
	LastSeenAt       *time.Time `bun:"last_seen_at,nullzero" json:"last_seen_at,omitempty"`
	ProfileUpdatedAt time.Time  `bun:"profile_updated_at,nullzero,default:current_timestamp" json:"profile_updated_at"`
}

// UserSetting is a per-user key/value setting.
type UserSetting struct {
	bun.BaseModel `bun:"table:user_settings,alias:uset"`

	UserID int64  `bun:"user_id,pk" json:"user_id"`
	Name   string `bun:"name,pk" json:"name"`
	Value  string `bun:"value" json:"value"`
}

// Country is a regional lookup entity, matched by code during import.
type Country struct {
	bun.BaseModel `bun:"table:countries,alias:ctry"`

	ID   int64  `bun:"id,pk,autoincrement" json:"id"`
	Code string `bun:"code,notnull,unique" json:"code"`
	Name string `bun:"name,notnull" json:"name"`
}

// Region belongs to a country and is matched by name.
type Region struct {
	bun.BaseModel `bun:"table:regions,alias:rgn"`

	ID        int64  `bun:"id,pk,autoincrement" json:"id"`
	CountryID int64  `bun:"country_id,notnull" json:"country_id"`
	Name      string `bun:"name,notnull" json:"name"`
}

// Subregion belongs to a region and is matched by name.
type Subregion struct {
	bun.BaseModel `bun:"table:subregions,alias:subrg"`

	ID       int64  `bun:"id,pk,autoincrement" json:"id"`
	RegionID int64  `bun:"region_id,notnull" json:"region_id"`
	Name     string `bun:"name,notnull" json:"name"`
}

// City belongs to a region and is matched by name.
type City struct {
	bun.BaseModel `bun:"table:cities,alias:city"`

	ID       int64  `bun:"id,pk,autoincrement" json:"id"`
	RegionID int64  `bun:"region_id,notnull" json:"region_id"`
	Name     string `bun:"name,notnull" json:"name"`
}

// Chapter is a hierarchical category scoped to a collection.
type Chapter struct {
	bun.BaseModel `bun:"table:chapters,alias:cat"`

	ID           int64   `bun:"id,pk,autoincrement" json:"id"`
	CollectionID int64   `bun:"collection_id,notnull" json:"collection_id"`
	ParentID     *int64  `bun:"parent_id" json:"parent_id,omitempty"`
	Name         string  `bun:"name,notnull" json:"name"`
	URLName      string  `bun:"url_name,notnull" json:"url_name"`
	Description  string  `bun:"description" json:"description"`
	Order        *string `bun:"sort_order" json:"sort_order,omitempty"`
}

// Tag is a global item tag.
type Tag struct {
	bun.BaseModel `bun:"table:tags,alias:tag"`

	ID   int64  `bun:"id,pk,autoincrement" json:"id"`
	Name string `bun:"name,notnull,unique" json:"name"`
}

// ItemTag associates an item with a tag.
type ItemTag struct {
	bun.BaseModel `bun:"table:item_tags,alias:itag"`

	ItemID int64 `bun:"item_id,pk" json:"item_id"`
	TagID  int64 `bun:"tag_id,pk" json:"tag_id"`
}

// ItemType is a destination content type, selectable by name or usage.
type ItemType struct {
	bun.BaseModel `bun:"table:item_types,alias:ityp"`

	ID    int64  `bun:"id,pk,autoincrement" json:"id"`
	Name  string `bun:"name,notnull" json:"name"`
	Usage string `bun:"usage,notnull" json:"usage"`
}

// ItemTypeCustomField declares one custom field of an item type's schema.
type ItemTypeCustomField struct {
	bun.BaseModel `bun:"table:item_type_custom_fields,alias:itcf"`

	ID         int64  `bun:"id,pk,autoincrement" json:"id"`
	ItemTypeID int64  `bun:"item_type_id,notnull" json:"item_type_id"`
	Name       string `bun:"name,notnull" json:"name"`
	Type       string `bun:"type,notnull" json:"type"`
}

// Item is a destination post or page.
type Item struct {
	bun.BaseModel `bun:"table:items,alias:post"`

	ID                   int64  `bun:"id,pk,autoincrement" json:"id"`
	MainChapterID        int64  `bun:"main_chapter_id,notnull" json:"main_chapter_id"`
	ParentID             *int64 `bun:"parent_id" json:"parent_id,omitempty"`
	CreatorUserID        int64  `bun:"creator_user_id,notnull" json:"creator_user_id"`
	LastEditUserID       int64  `bun:"lastedit_user_id,notnull" json:"lastedit_user_id"`
	AssignedUserID       *int64 `bun:"assigned_user_id" json:"assigned_user_id,omitempty"`
	ItemTypeID           int64  `bun:"item_type_id,notnull" json:"item_type_id"`
	Title                string `bun:"title" json:"title"`
	Content              string `bun:"content" json:"content"`
	Excerpt              string `bun:"excerpt" json:"excerpt"`
	ExcerptAutogenerated bool   `bun:"excerpt_autogenerated" json:"excerpt_autogenerated"`
	URLTitle             string `bun:"url_title,notnull" json:"url_title"`
	TitleTag             string `bun:"title_tag" json:"title_tag"`
	URL                  string `bun:"url" json:"url"`
	Status               string `bun:"status,notnull" json:"status"`
	CommentStatus        string `bun:"comment_status,notnull" json:"comment_status"`
	NotificationsStatus  string `bun:"notifications_status" json:"notifications_status"`
	Renderers            string `bun:"renderers" json:"renderers"`
	Locale               string `bun:"locale" json:"locale"`
	Priority             int    `bun:"priority" json:"priority"`
	Featured             bool   `bun:"featured" json:"featured"`
	Order                int    `bun:"sort_order" json:"sort_order"`
	DateSet              bool   `bun:"date_set" json:"date_set"`
	DateStart            string `bun:"date_start" json:"date_start"`
	DateDeadline         string `bun:"date_deadline" json:"date_deadline"`
	DateCreated          string `bun:"date_created" json:"date_created"`
	DateModified         string `bun:"date_modified" json:"date_modified"`
	CountryID            int64  `bun:"country_id" json:"country_id"`
	RegionID             int64  `bun:"region_id" json:"region_id"`
	SubregionID          int64  `bun:"subregion_id" json:"subregion_id"`
	CityID               int64  `bun:"city_id" json:"city_id"`
}

// ItemChapter associates an item with an extra category.
type ItemChapter struct {
	bun.BaseModel `bun:"table:item_chapters,alias:postcat"`

	ItemID    int64 `bun:"item_id,pk" json:"item_id"`
	ChapterID int64 `bun:"chapter_id,pk" json:"chapter_id"`
}

// ItemSetting is a per-item key/value setting (custom field values land here).
type ItemSetting struct {
	bun.BaseModel `bun:"table:item_settings,alias:iset"`

	ItemID int64  `bun:"item_id,pk" json:"item_id"`
	Name   string `bun:"name,pk" json:"name"`
	Value  string `bun:"value" json:"value"`
}

// ItemVersion is a stored revision of an item. Imported content carries no
// versions; the table exists as a replace-mode cleanup target.
type ItemVersion struct {
	bun.BaseModel `bun:"table:item_versions,alias:iver"`

	ID     int64 `bun:"id,pk,autoincrement" json:"id"`
	ItemID int64 `bun:"item_id,notnull" json:"item_id"`
}

// ItemUserData tracks per-user item state (read status and similar).
type ItemUserData struct {
	bun.BaseModel `bun:"table:item_user_data,alias:itud"`

	ItemID int64 `bun:"item_id,pk" json:"item_id"`
	UserID int64 `bun:"user_id,pk" json:"user_id"`
}

// Comment is a destination comment.
type Comment struct {
	bun.BaseModel `bun:"table:comments,alias:cmt"`

	ID                 int64  `bun:"id,pk,autoincrement" json:"id"`
	ItemID             int64  `bun:"item_id,notnull" json:"item_id"`
	ParentID           *int64 `bun:"parent_id" json:"parent_id,omitempty"`
	AuthorUserID       *int64 `bun:"author_user_id" json:"author_user_id,omitempty"`
	Author             string `bun:"author" json:"author"`
	AuthorIP           string `bun:"author_ip" json:"author_ip"`
	AuthorEmail        string `bun:"author_email" json:"author_email"`
	AuthorURL          string `bun:"author_url" json:"author_url"`
	IPCountryID        int64  `bun:"ip_country_id" json:"ip_country_id"`
	Date               string `bun:"date" json:"date"`
	Content            string `bun:"content" json:"content"`
	Status             string `bun:"status,notnull" json:"status"`
	Rating             int    `bun:"rating" json:"rating"`
	Featured           bool   `bun:"featured" json:"featured"`
	AuthorURLNofollow  int    `bun:"author_url_nofollow" json:"author_url_nofollow"`
	AuthorURLUGC       int    `bun:"author_url_ugc" json:"author_url_ugc"`
	AuthorURLSponsored int    `bun:"author_url_sponsored" json:"author_url_sponsored"`
	HelpfulAddVotes    int    `bun:"helpful_addvotes" json:"helpful_addvotes"`
	HelpfulCountVotes  int    `bun:"helpful_countvotes" json:"helpful_countvotes"`
	SpamAddVotes       int    `bun:"spam_addvotes" json:"spam_addvotes"`
	SpamCountVotes     int    `bun:"spam_countvotes" json:"spam_countvotes"`
	Karma              int    `bun:"karma" json:"karma"`
	SpamKarma          int    `bun:"spam_karma" json:"spam_karma"`
	AllowMsgform       int    `bun:"allow_msgform" json:"allow_msgform"`
	NotifStatus        string `bun:"notif_status" json:"notif_status"`
}

// CommentVote is a per-user comment vote, a replace-mode cleanup target.
type CommentVote struct {
	bun.BaseModel `bun:"table:comment_votes,alias:cmvt"`

	CommentID int64 `bun:"comment_id,pk" json:"comment_id"`
	UserID    int64 `bun:"user_id,pk" json:"user_id"`
	Helpful   int   `bun:"helpful" json:"helpful"`
}

// File is a destination media file record.
type File struct {
	bun.BaseModel `bun:"table:files,alias:file"`

	ID       int64  `bun:"id,pk,autoincrement" json:"id"`
	RootType string `bun:"root_type,notnull" json:"root_type"`
	RootID   int64  `bun:"root_id,notnull" json:"root_id"`
	Path     string `bun:"path,notnull" json:"path"`
	Title    string `bun:"title" json:"title"`
	Alt      string `bun:"alt" json:"alt"`
	Desc     string `bun:"description" json:"description"`
}

// Link attaches a file to an item, comment or user.
type Link struct {
	bun.BaseModel `bun:"table:links,alias:link"`

	ID             int64     `bun:"id,pk,autoincrement" json:"id"`
	ItemID         *int64    `bun:"item_id" json:"item_id,omitempty"`
	CommentID      *int64    `bun:"comment_id" json:"comment_id,omitempty"`
	UserID         *int64    `bun:"user_id" json:"user_id,omitempty"`
	FileID         int64     `bun:"file_id,notnull" json:"file_id"`
	CreatorUserID  int64     `bun:"creator_user_id" json:"creator_user_id"`
	LastEditUserID int64     `bun:"lastedit_user_id" json:"lastedit_user_id"`
	Position       string    `bun:"position,notnull" json:"position"`
	Order          int       `bun:"sort_order,notnull" json:"sort_order"`
	CreatedAt      time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
	ModifiedAt     time.Time `bun:"modified_at,nullzero,default:current_timestamp" json:"modified_at"`
}

// LinkVote is a per-user link vote, a replace-mode cleanup target.
type LinkVote struct {
	bun.BaseModel `bun:"table:link_votes,alias:lvot"`

	LinkID int64 `bun:"link_id,pk" json:"link_id"`
	UserID int64 `bun:"user_id,pk" json:"user_id"`
	Vote   int   `bun:"vote" json:"vote"`
}
