package wxr

// Namespace URIs recognized in WXR exports. Version-variant URIs are
// normalized to these canonical values before decoding.
const (
	NamespaceWP      = "http://wordpress.org/export/1.1/"
	NamespaceEvo     = "http://b2evolution.net/export/2.0/"
	NamespaceExcerpt = "http://wordpress.org/export/1.1/excerpt/"
	NamespaceContent = "http://purl.org/rss/1.0/modules/content/"
	NamespaceDC      = "http://purl.org/dc/elements/1.1/"
)

// Document is the fully parsed export. It is built once by Parse and must be
// treated as read-only by consumers.
type Document struct {
	Title      string
	BaseURL    string
	Language   string
	WXRVersion string
	AppVersion string

	Authors    []Author
	Files      []File
	Categories []Category
	Tags       []Tag
	Terms      []Term
	Posts      []Post

	Stats ParseStats
}

// ParseStats records heap growth during the two parse stages. Diagnostic only.
type ParseStats struct {
	ParsingBytes  int64
	DocumentBytes int64
}

// Author is a source user record together with its deferred attachment links.
type Author struct {
	ID                 int    `xml:"http://wordpress.org/export/1.1/ author_id"`
	Login              string `xml:"http://wordpress.org/export/1.1/ author_login"`
	Email              string `xml:"http://wordpress.org/export/1.1/ author_email"`
	DisplayName        string `xml:"http://wordpress.org/export/1.1/ author_display_name"`
	FirstName          string `xml:"http://wordpress.org/export/1.1/ author_first_name"`
	LastName           string `xml:"http://wordpress.org/export/1.1/ author_last_name"`
	Pass               string `xml:"http://b2evolution.net/export/2.0/ author_pass"`
	Salt               string `xml:"http://b2evolution.net/export/2.0/ author_salt"`
	PassDriver         string `xml:"http://b2evolution.net/export/2.0/ author_pass_driver"`
	Group              string `xml:"http://b2evolution.net/export/2.0/ author_group"`
	Status             string `xml:"http://b2evolution.net/export/2.0/ author_status"`
	Nickname           string `xml:"http://b2evolution.net/export/2.0/ author_nickname"`
	URL                string `xml:"http://b2evolution.net/export/2.0/ author_url"`
	Level              int    `xml:"http://b2evolution.net/export/2.0/ author_level"`
	Locale             string `xml:"http://b2evolution.net/export/2.0/ author_locale"`
	Gender             string `xml:"http://b2evolution.net/export/2.0/ author_gender"`
	AgeMin             int    `xml:"http://b2evolution.net/export/2.0/ author_age_min"`
	AgeMax             int    `xml:"http://b2evolution.net/export/2.0/ author_age_max"`
	CreatedFromCountry string `xml:"http://b2evolution.net/export/2.0/ author_created_from_country"`
	Country            string `xml:"http://b2evolution.net/export/2.0/ author_country"`
	Region             string `xml:"http://b2evolution.net/export/2.0/ author_region"`
	Subregion          string `xml:"http://b2evolution.net/export/2.0/ author_subregion"`
	City               string `xml:"http://b2evolution.net/export/2.0/ author_city"`
	Source             string `xml:"http://b2evolution.net/export/2.0/ author_source"`
	CreatedTS          string `xml:"http://b2evolution.net/export/2.0/ author_created_ts"`
	LastSeenTS         string `xml:"http://b2evolution.net/export/2.0/ author_lastseen_ts"`
	CreatedFromIPv4    string `xml:"http://b2evolution.net/export/2.0/ author_created_fromIPv4"`
	ProfileUpdateDate  string `xml:"http://b2evolution.net/export/2.0/ author_profileupdate_date"`
	AvatarFileID       int64  `xml:"http://b2evolution.net/export/2.0/ author_avatar_file_ID"`
	Links              []Link `xml:"http://b2evolution.net/export/2.0/ link"`
}

// File describes a media file carried by the export.
type File struct {
	ID       int64  `xml:"http://b2evolution.net/export/2.0/ file_ID"`
	RootType string `xml:"http://b2evolution.net/export/2.0/ file_root_type"`
	RootID   int64  `xml:"http://b2evolution.net/export/2.0/ file_root_ID"`
	Path     string `xml:"http://b2evolution.net/export/2.0/ file_path"`
	Title    string `xml:"http://b2evolution.net/export/2.0/ file_title"`
	Alt      string `xml:"http://b2evolution.net/export/2.0/ file_alt"`
	Desc     string `xml:"http://b2evolution.net/export/2.0/ file_desc"`
	ZipPath  string `xml:"http://b2evolution.net/export/2.0/ zip_path"`
}

// Category is a channel-level category definition. The parent reference is
// the parent's slug, not an ID.
type Category struct {
	TermID      int    `xml:"http://wordpress.org/export/1.1/ term_id"`
	Slug        string `xml:"http://wordpress.org/export/1.1/ category_nicename"`
	Parent      string `xml:"http://wordpress.org/export/1.1/ category_parent"`
	Name        string `xml:"http://wordpress.org/export/1.1/ cat_name"`
	Description string `xml:"http://wordpress.org/export/1.1/ cat_description"`
	Order       string `xml:"http://wordpress.org/export/1.1/ cat_order"`
}

// Tag is a channel-level tag definition.
type Tag struct {
	TermID      int    `xml:"http://wordpress.org/export/1.1/ term_id"`
	Slug        string `xml:"http://wordpress.org/export/1.1/ tag_slug"`
	Name        string `xml:"http://wordpress.org/export/1.1/ tag_name"`
	Description string `xml:"http://wordpress.org/export/1.1/ tag_description"`
}

// Term is a generic taxonomy entry. Terms of the post_tag taxonomy count as
// tags, other taxonomies are parsed for completeness.
type Term struct {
	TermID      int    `xml:"http://wordpress.org/export/1.1/ term_id"`
	Taxonomy    string `xml:"http://wordpress.org/export/1.1/ term_taxonomy"`
	Slug        string `xml:"http://wordpress.org/export/1.1/ term_slug"`
	Parent      string `xml:"http://wordpress.org/export/1.1/ term_parent"`
	Name        string `xml:"http://wordpress.org/export/1.1/ term_name"`
	Description string `xml:"http://wordpress.org/export/1.1/ term_description"`
}

// Post is an RSS item with its nested comments, links, custom fields and meta.
type Post struct {
	Title   string `xml:"title"`
	Link    string `xml:"link"`
	GUID    string `xml:"guid"`
	Author  string `xml:"http://purl.org/dc/elements/1.1/ creator"`
	Content string `xml:"http://purl.org/rss/1.0/modules/content/ encoded"`
	Excerpt string `xml:"http://wordpress.org/export/1.1/excerpt/ encoded"`

	ID            int    `xml:"http://wordpress.org/export/1.1/ post_id"`
	Date          string `xml:"http://wordpress.org/export/1.1/ post_date"`
	DateGMT       string `xml:"http://wordpress.org/export/1.1/ post_date_gmt"`
	CommentStatus string `xml:"http://wordpress.org/export/1.1/ comment_status"`
	PingStatus    string `xml:"http://wordpress.org/export/1.1/ ping_status"`
	Name          string `xml:"http://wordpress.org/export/1.1/ post_name"`
	Status        string `xml:"http://wordpress.org/export/1.1/ status"`
	ParentID      int    `xml:"http://wordpress.org/export/1.1/ post_parent"`
	MenuOrder     int    `xml:"http://wordpress.org/export/1.1/ menu_order"`
	Type          string `xml:"http://wordpress.org/export/1.1/ post_type"`
	Password      string `xml:"http://wordpress.org/export/1.1/ post_password"`
	IsSticky      int    `xml:"http://wordpress.org/export/1.1/ is_sticky"`
	AttachmentURL string `xml:"http://wordpress.org/export/1.1/ attachment_url"`

	ItemType             string `xml:"http://b2evolution.net/export/2.0/ itemtype"`
	DateMode             string `xml:"http://b2evolution.net/export/2.0/ post_date_mode"`
	LastEditUser         string `xml:"http://b2evolution.net/export/2.0/ post_lastedit_user"`
	AssignedUser         string `xml:"http://b2evolution.net/export/2.0/ post_assigned_user"`
	DateDeadline         string `xml:"http://b2evolution.net/export/2.0/ post_datedeadline"`
	DateCreated          string `xml:"http://b2evolution.net/export/2.0/ post_datecreated"`
	DateModified         string `xml:"http://b2evolution.net/export/2.0/ post_datemodified"`
	Locale               string `xml:"http://b2evolution.net/export/2.0/ post_locale"`
	ExcerptAutogenerated int    `xml:"http://b2evolution.net/export/2.0/ post_excerpt_autogenerated"`
	URLTitle             string `xml:"http://b2evolution.net/export/2.0/ post_urltitle"`
	TitleTag             string `xml:"http://b2evolution.net/export/2.0/ post_titletag"`
	URL                  string `xml:"http://b2evolution.net/export/2.0/ post_url"`
	NotificationsStatus  string `xml:"http://b2evolution.net/export/2.0/ post_notifications_status"`
	Renderers            string `xml:"http://b2evolution.net/export/2.0/ post_renderers"`
	Priority             int    `xml:"http://b2evolution.net/export/2.0/ post_priority"`
	Featured             int    `xml:"http://b2evolution.net/export/2.0/ post_featured"`
	Order                int    `xml:"http://b2evolution.net/export/2.0/ post_order"`
	Country              string `xml:"http://b2evolution.net/export/2.0/ post_country"`
	Region               string `xml:"http://b2evolution.net/export/2.0/ post_region"`
	Subregion            string `xml:"http://b2evolution.net/export/2.0/ post_subregion"`
	City                 string `xml:"http://b2evolution.net/export/2.0/ post_city"`

	Terms        []TermRef     `xml:"category"`
	CustomFields []CustomField `xml:"http://b2evolution.net/export/2.0/ custom_field"`
	Meta         []Meta        `xml:"http://wordpress.org/export/1.1/ postmeta"`
	Comments     []Comment     `xml:"http://wordpress.org/export/1.1/ comment"`
	Links        []Link        `xml:"http://b2evolution.net/export/2.0/ link"`
}

// TermRef is a category/tag reference attached to a post. References without
// a nicename attribute are dropped during parsing.
type TermRef struct {
	Domain string `xml:"domain,attr"`
	Slug   string `xml:"nicename,attr"`
	Name   string `xml:",chardata"`
}

// CustomField is a typed item custom field value.
type CustomField struct {
	Name  string `xml:"name,attr"`
	Type  string `xml:"type,attr"`
	Value string `xml:",chardata"`
}

// Meta is a generic key/value meta entry (post meta or comment meta).
type Meta struct {
	Key   string `xml:"http://wordpress.org/export/1.1/ meta_key"`
	Value string `xml:"http://wordpress.org/export/1.1/ meta_value"`
}

// Comment is a nested comment record. A few flags keep pointer types because
// their absence carries meaning; use the accessor methods to read them.
type Comment struct {
	ID          int    `xml:"http://wordpress.org/export/1.1/ comment_id"`
	Author      string `xml:"http://wordpress.org/export/1.1/ comment_author"`
	AuthorEmail string `xml:"http://wordpress.org/export/1.1/ comment_author_email"`
	AuthorIP    string `xml:"http://wordpress.org/export/1.1/ comment_author_IP"`
	AuthorURL   string `xml:"http://wordpress.org/export/1.1/ comment_author_url"`
	Date        string `xml:"http://wordpress.org/export/1.1/ comment_date"`
	DateGMT     string `xml:"http://wordpress.org/export/1.1/ comment_date_gmt"`
	Content     string `xml:"http://wordpress.org/export/1.1/ comment_content"`
	Approved    string `xml:"http://wordpress.org/export/1.1/ comment_approved"`
	Type        string `xml:"http://wordpress.org/export/1.1/ comment_type"`
	ParentID    int    `xml:"http://wordpress.org/export/1.1/ comment_parent"`
	UserID      int    `xml:"http://wordpress.org/export/1.1/ comment_user_id"`

	Status             string `xml:"http://b2evolution.net/export/2.0/ comment_status"`
	IPCountry          string `xml:"http://b2evolution.net/export/2.0/ comment_IP_country"`
	Rating             int    `xml:"http://b2evolution.net/export/2.0/ comment_rating"`
	Featured           int    `xml:"http://b2evolution.net/export/2.0/ comment_featured"`
	AuthorURLNofollow  *int   `xml:"http://b2evolution.net/export/2.0/ comment_author_url_nofollow"`
	LegacyNofollow     *int   `xml:"http://b2evolution.net/export/2.0/ comment_nofollow"`
	AuthorURLUGC       *int   `xml:"http://b2evolution.net/export/2.0/ comment_author_url_ugc"`
	AuthorURLSponsored int    `xml:"http://b2evolution.net/export/2.0/ comment_author_url_sponsored"`
	HelpfulAddVotes    int    `xml:"http://b2evolution.net/export/2.0/ comment_helpful_addvotes"`
	HelpfulCountVotes  int    `xml:"http://b2evolution.net/export/2.0/ comment_helpful_countvotes"`
	SpamAddVotes       int    `xml:"http://b2evolution.net/export/2.0/ comment_spam_addvotes"`
	SpamCountVotes     int    `xml:"http://b2evolution.net/export/2.0/ comment_spam_countvotes"`
	Karma              int    `xml:"http://b2evolution.net/export/2.0/ comment_comment_karma"`
	SpamKarma          int    `xml:"http://b2evolution.net/export/2.0/ comment_spam_karma"`
	AllowMsgform       int    `xml:"http://b2evolution.net/export/2.0/ comment_allow_msgform"`
	NotifStatus        string `xml:"http://b2evolution.net/export/2.0/ comment_notif_status"`

	Meta []Meta `xml:"http://wordpress.org/export/1.1/ commentmeta"`
}

// NofollowFlag returns the author URL nofollow flag, falling back to the
// legacy element name used by older exports.
func (c *Comment) NofollowFlag() int {
	if c.AuthorURLNofollow != nil {
		return *c.AuthorURLNofollow
	}
	if c.LegacyNofollow != nil {
		return *c.LegacyNofollow
	}
	return 0
}

// UGCFlag returns the author URL user-generated-content flag, defaulting to 1
// when the export omits the element.
func (c *Comment) UGCFlag() int {
	if c.AuthorURLUGC != nil {
		return *c.AuthorURLUGC
	}
	return 1
}

// Link is an attachment association record. Exactly one of ItemID, CommentID
// or UserID identifies the owner in the source ID space.
type Link struct {
	ID             int64  `xml:"http://b2evolution.net/export/2.0/ link_ID"`
	DateCreated    string `xml:"http://b2evolution.net/export/2.0/ link_datecreated"`
	DateModified   string `xml:"http://b2evolution.net/export/2.0/ link_datemodified"`
	CreatorUserID  int64  `xml:"http://b2evolution.net/export/2.0/ link_creator_user_ID"`
	LastEditUserID int64  `xml:"http://b2evolution.net/export/2.0/ link_lastedit_user_ID"`
	ItemID         int64  `xml:"http://b2evolution.net/export/2.0/ link_itm_ID"`
	CommentID      int64  `xml:"http://b2evolution.net/export/2.0/ link_cmt_ID"`
	UserID         int64  `xml:"http://b2evolution.net/export/2.0/ link_usr_ID"`
	FileID         int64  `xml:"http://b2evolution.net/export/2.0/ link_file_ID"`
	Position       string `xml:"http://b2evolution.net/export/2.0/ link_position"`
	Order          int    `xml:"http://b2evolution.net/export/2.0/ link_order"`
}
