package wxr

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

const sampleExport = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0"
	xmlns:content="http://purl.org/rss/1.0/modules/content/"
	xmlns:excerpt="http://wordpress.org/export/1.1/excerpt/"
	xmlns:dc="http://purl.org/dc/elements/1.1/"
	xmlns:wp="http://wordpress.org/export/1.1/"
	xmlns:evo="http://b2evolution.net/export/2.0/">
<channel>
	<title>Demo Blog</title>
	<link>https://demo.example.com</link>
	<language>en-US</language>
	<wp:wxr_version>1.2</wp:wxr_version>
	<wp:base_site_url>https://demo.example.com</wp:base_site_url>
	<wp:author>
		<wp:author_id>3</wp:author_id>
		<wp:author_login>mary</wp:author_login>
		<wp:author_email>mary@example.com</wp:author_email>
		<wp:author_display_name><![CDATA[Mary]]></wp:author_display_name>
		<evo:author_group>Bloggers</evo:author_group>
		<evo:author_gender>female</evo:author_gender>
		<evo:author_avatar_file_ID>7</evo:author_avatar_file_ID>
		<evo:link>
			<evo:link_ID>11</evo:link_ID>
			<evo:link_usr_ID>3</evo:link_usr_ID>
			<evo:link_file_ID>7</evo:link_file_ID>
			<evo:link_position>aftermore</evo:link_position>
			<evo:link_order>1</evo:link_order>
		</evo:link>
	</wp:author>
	<evo:file>
		<evo:file_ID>7</evo:file_ID>
		<evo:file_root_type>user</evo:file_root_type>
		<evo:file_root_ID>3</evo:file_root_ID>
		<evo:file_path>profile/mary.jpg</evo:file_path>
		<evo:file_title>Mary's avatar</evo:file_title>
	</evo:file>
	<wp:category>
		<wp:term_id>2</wp:term_id>
		<wp:category_nicename>news</wp:category_nicename>
		<wp:category_parent></wp:category_parent>
		<wp:cat_name><![CDATA[News]]></wp:cat_name>
	</wp:category>
	<wp:tag>
		<wp:term_id>5</wp:term_id>
		<wp:tag_slug>golang</wp:tag_slug>
		<wp:tag_name><![CDATA[golang]]></wp:tag_name>
	</wp:tag>
	<item>
		<title>Hello World</title>
		<link>https://demo.example.com/2020/01/hello-world/</link>
		<dc:creator>mary</dc:creator>
		<content:encoded><![CDATA[<p>First!</p>]]></content:encoded>
		<excerpt:encoded><![CDATA[Short version]]></excerpt:encoded>
		<wp:post_id>42</wp:post_id>
		<wp:post_date>2020-01-02 03:04:05</wp:post_date>
		<wp:comment_status>open</wp:comment_status>
		<wp:status>publish</wp:status>
		<wp:post_type>post</wp:post_type>
		<category domain="category" nicename="news"><![CDATA[News]]></category>
		<category domain="post_tag" nicename="golang"><![CDATA[golang]]></category>
		<category domain="category"><![CDATA[No slug, dropped]]></category>
		<evo:custom_field name="price" type="double">12.5</evo:custom_field>
		<wp:postmeta>
			<wp:meta_key>_thumbnail_id</wp:meta_key>
			<wp:meta_value>77</wp:meta_value>
		</wp:postmeta>
		<wp:comment>
			<wp:comment_id>9</wp:comment_id>
			<wp:comment_author><![CDATA[Bob]]></wp:comment_author>
			<wp:comment_approved>1</wp:comment_approved>
			<wp:comment_parent>0</wp:comment_parent>
		</wp:comment>
	</item>
</channel>
</rss>`

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return path
}

func TestParsePopulatesDocument(t *testing.T) {
	path := writeTempFile(t, "export.xml", sampleExport)

	doc, err := Parse(path, ParseOptions{})
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}

	if doc.WXRVersion != "1.2" {
		t.Fatalf("expected wxr version 1.2, got %q", doc.WXRVersion)
	}
	if doc.BaseURL != "https://demo.example.com" {
		t.Fatalf("unexpected base url %q", doc.BaseURL)
	}

	if len(doc.Authors) != 1 {
		t.Fatalf("expected 1 author, got %d", len(doc.Authors))
	}
	author := doc.Authors[0]
	if author.ID != 3 || author.Login != "mary" || author.Group != "Bloggers" {
		t.Fatalf("unexpected author %+v", author)
	}
	if author.PassDriver != "evo$md5" {
		t.Fatalf("expected default pass driver, got %q", author.PassDriver)
	}
	if len(author.Links) != 1 || author.Links[0].FileID != 7 {
		t.Fatalf("expected deferred avatar link, got %+v", author.Links)
	}

	if len(doc.Files) != 1 || doc.Files[0].RootType != "user" || doc.Files[0].Path != "profile/mary.jpg" {
		t.Fatalf("unexpected files %+v", doc.Files)
	}
	if len(doc.Categories) != 1 || doc.Categories[0].Slug != "news" {
		t.Fatalf("unexpected categories %+v", doc.Categories)
	}
	if len(doc.Tags) != 1 || doc.Tags[0].Name != "golang" {
		t.Fatalf("unexpected tags %+v", doc.Tags)
	}

	if len(doc.Posts) != 1 {
		t.Fatalf("expected 1 post, got %d", len(doc.Posts))
	}
	post := doc.Posts[0]
	if post.ID != 42 || post.Type != "post" || post.Author != "mary" {
		t.Fatalf("unexpected post %+v", post)
	}
	if post.Content != "<p>First!</p>" {
		t.Fatalf("unexpected content %q", post.Content)
	}
	if post.Excerpt != "Short version" {
		t.Fatalf("unexpected excerpt %q", post.Excerpt)
	}
	if len(post.Terms) != 2 {
		t.Fatalf("expected term refs without nicename to be dropped, got %+v", post.Terms)
	}
	if post.Terms[0].Domain != "category" || post.Terms[0].Slug != "news" {
		t.Fatalf("unexpected first term %+v", post.Terms[0])
	}
	if len(post.CustomFields) != 1 || post.CustomFields[0].Name != "price" || post.CustomFields[0].Value != "12.5" {
		t.Fatalf("unexpected custom fields %+v", post.CustomFields)
	}
	if len(post.Meta) != 1 || post.Meta[0].Key != "_thumbnail_id" || post.Meta[0].Value != "77" {
		t.Fatalf("unexpected meta %+v", post.Meta)
	}
	if len(post.Comments) != 1 || post.Comments[0].ID != 9 || post.Comments[0].Approved != "1" {
		t.Fatalf("unexpected comments %+v", post.Comments)
	}
	if got := post.Comments[0].UGCFlag(); got != 1 {
		t.Fatalf("expected default ugc flag 1, got %d", got)
	}
	if got := post.Comments[0].NofollowFlag(); got != 0 {
		t.Fatalf("expected nofollow flag 0, got %d", got)
	}
}

func TestParseDefaultsMissingNamespaces(t *testing.T) {
	export := `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0" xmlns:content="http://purl.org/rss/1.0/modules/content/" xmlns:dc="http://purl.org/dc/elements/1.1/">
<channel>
	<title>Bare</title>
	<wp:wxr_version>1.1</wp:wxr_version>
	<item>
		<title>Post</title>
		<wp:post_id>1</wp:post_id>
		<wp:post_type>post</wp:post_type>
	</item>
</channel>
</rss>`
	path := writeTempFile(t, "bare.xml", export)

	doc, err := Parse(path, ParseOptions{})
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if doc.WXRVersion != "1.1" {
		t.Fatalf("expected defaulted wp namespace to resolve version, got %q", doc.WXRVersion)
	}
	if len(doc.Posts) != 1 || doc.Posts[0].ID != 1 {
		t.Fatalf("unexpected posts %+v", doc.Posts)
	}
}

func TestParseNormalizesVariantNamespaces(t *testing.T) {
	export := `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0" xmlns:wp="http://wordpress.org/export/1.0/" xmlns:excerpt="http://wordpress.org/export/1.0/excerpt/">
<channel>
	<wp:wxr_version>1.0</wp:wxr_version>
	<item>
		<title>Old</title>
		<wp:post_id>2</wp:post_id>
		<excerpt:encoded><![CDATA[legacy excerpt]]></excerpt:encoded>
	</item>
</channel>
</rss>`
	path := writeTempFile(t, "legacy.xml", export)

	doc, err := Parse(path, ParseOptions{})
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if doc.WXRVersion != "1.0" {
		t.Fatalf("expected version from variant namespace, got %q", doc.WXRVersion)
	}
	if len(doc.Posts) != 1 || doc.Posts[0].Excerpt != "legacy excerpt" {
		t.Fatalf("expected excerpt from variant namespace, got %+v", doc.Posts)
	}
}

func TestParseFiltersInvalidCharacters(t *testing.T) {
	export := "<?xml version=\"1.0\"?>\n<rss xmlns:wp=\"http://wordpress.org/export/1.1/\"><channel>" +
		"<wp:wxr_version>1.1</wp:wxr_version><title>bad\x01\x02title</title></channel></rss>"
	path := writeTempFile(t, "dirty.xml", export)

	doc, err := Parse(path, ParseOptions{})
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if doc.Title != "badtitle" {
		t.Fatalf("expected control characters stripped, got %q", doc.Title)
	}
}

func TestCheckFile(t *testing.T) {
	valid := writeTempFile(t, "valid.xml", sampleExport)
	if err := CheckFile(valid); err != nil {
		t.Fatalf("expected valid file, got %v", err)
	}

	evoOnly := `<?xml version="1.0"?>
<rss xmlns:evo="http://b2evolution.net/export/2.0/"><channel><evo:app_version>7.2.3-stable</evo:app_version></channel></rss>`
	path := writeTempFile(t, "evo.xml", evoOnly)
	if err := CheckFile(path); err != nil {
		t.Fatalf("expected valid app version, got %v", err)
	}

	noVersion := `<?xml version="1.0"?><rss><channel><title>x</title></channel></rss>`
	path = writeTempFile(t, "noversion.xml", noVersion)
	if err := CheckFile(path); !errors.Is(err, ErrInvalidFormat) {
		t.Fatalf("expected ErrInvalidFormat, got %v", err)
	}

	badVersion := `<?xml version="1.0"?>
<rss xmlns:wp="http://wordpress.org/export/1.1/"><channel><wp:wxr_version>abc</wp:wxr_version></channel></rss>`
	path = writeTempFile(t, "badversion.xml", badVersion)
	if err := CheckFile(path); !errors.Is(err, ErrInvalidFormat) {
		t.Fatalf("expected ErrInvalidFormat for malformed version, got %v", err)
	}
}

func TestConverterReencodesValues(t *testing.T) {
	conv := NewConverter("iso-8859-1")
	if conv == nil {
		t.Fatal("expected converter for latin1 destination")
	}
	got := conv.Convert("café")
	if got != "caf\xe9" {
		t.Fatalf("expected latin1 bytes, got %q", got)
	}

	if NewConverter("utf-8") != nil {
		t.Fatal("expected nil converter for utf-8 destination")
	}
	if !NeedsConversion("en-utf8", "latin1") {
		t.Fatal("expected conversion for utf8 source and latin1 destination")
	}
	if NeedsConversion("en-US", "latin1") {
		t.Fatal("expected no conversion for non-utf8 source language")
	}
}
