package wxr

import (
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"runtime"

	"golang.org/x/text/transform"
)

// ParseOptions tune how the document text is post-processed.
type ParseOptions struct {
	// DestinationCharset re-encodes text values when the channel declares a
	// utf8-family source language. Empty or utf-8 means no conversion.
	DestinationCharset string
}

type wxrFile struct {
	Channel wxrChannel `xml:"channel"`
}

type wxrChannel struct {
	Title       string `xml:"title"`
	Link        string `xml:"link"`
	Language    string `xml:"language"`
	WXRVersion  string `xml:"http://wordpress.org/export/1.1/ wxr_version"`
	BaseSiteURL string `xml:"http://wordpress.org/export/1.1/ base_site_url"`
	AppVersion  string `xml:"http://b2evolution.net/export/2.0/ app_version"`

	Authors    []Author   `xml:"http://wordpress.org/export/1.1/ author"`
	Files      []File     `xml:"http://b2evolution.net/export/2.0/ file"`
	OldFiles   []File     `xml:"file"`
	Categories []Category `xml:"http://wordpress.org/export/1.1/ category"`
	Tags       []Tag      `xml:"http://wordpress.org/export/1.1/ tag"`
	Terms      []Term     `xml:"http://wordpress.org/export/1.1/ term"`
	Items      []Post     `xml:"item"`
}

// Parse reads, filters and decodes a WXR document. The returned Document is
// complete and owned by the caller; the parser keeps no reference to it.
func Parse(path string, opts ParseOptions) (*Document, error) {
	raw, err := readFiltered(path)
	if err != nil {
		return nil, err
	}

	var stats ParseStats
	before := heapInUse()

	var file wxrFile
	if err := xml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("wxr: decode %s: %w", path, err)
	}
	afterDecode := heapInUse()
	stats.ParsingBytes = heapDelta(before, afterDecode)

	doc := buildDocument(&file.Channel)
	stats.DocumentBytes = heapDelta(afterDecode, heapInUse())
	doc.Stats = stats

	if NeedsConversion(doc.Language, opts.DestinationCharset) {
		convertDocument(doc, NewConverter(opts.DestinationCharset))
	}

	return doc, nil
}

func readFiltered(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("wxr: open %s: %w", path, err)
	}
	defer f.Close()

	raw, err := io.ReadAll(transform.NewReader(f, ValidCharFilter()))
	if err != nil {
		return nil, fmt.Errorf("wxr: read %s: %w", path, err)
	}
	return NormalizeNamespaces(raw), nil
}

func buildDocument(ch *wxrChannel) *Document {
	doc := &Document{
		Title:      ch.Title,
		BaseURL:    ch.BaseSiteURL,
		Language:   ch.Language,
		WXRVersion: ch.WXRVersion,
		AppVersion: ch.AppVersion,
		Authors:    ch.Authors,
		Files:      append(ch.Files, ch.OldFiles...),
		Categories: ch.Categories,
		Tags:       ch.Tags,
		Terms:      ch.Terms,
		Posts:      ch.Items,
	}

	for i := range doc.Authors {
		if doc.Authors[i].PassDriver == "" {
			doc.Authors[i].PassDriver = "evo$md5"
		}
	}

	for i := range doc.Posts {
		post := &doc.Posts[i]
		if len(post.Terms) == 0 {
			continue
		}
		kept := post.Terms[:0]
		for _, term := range post.Terms {
			if term.Slug != "" {
				kept = append(kept, term)
			}
		}
		post.Terms = kept
	}

	return doc
}

// convertDocument applies charset conversion to the same human-readable text
// values the source platform converts. Identifier-like values (logins, slugs,
// status tags) stay untouched.
func convertDocument(doc *Document, conv *Converter) {
	for i := range doc.Authors {
		a := &doc.Authors[i]
		a.DisplayName = conv.Convert(a.DisplayName)
		a.FirstName = conv.Convert(a.FirstName)
		a.LastName = conv.Convert(a.LastName)
		a.Nickname = conv.Convert(a.Nickname)
	}
	for i := range doc.Files {
		f := &doc.Files[i]
		f.Title = conv.Convert(f.Title)
		f.Alt = conv.Convert(f.Alt)
		f.Desc = conv.Convert(f.Desc)
	}
	for i := range doc.Categories {
		c := &doc.Categories[i]
		c.Slug = conv.Convert(c.Slug)
		c.Name = conv.Convert(c.Name)
		c.Description = conv.Convert(c.Description)
		c.Order = conv.Convert(c.Order)
	}
	for i := range doc.Tags {
		t := &doc.Tags[i]
		t.Name = conv.Convert(t.Name)
		t.Description = conv.Convert(t.Description)
	}
	for i := range doc.Terms {
		t := &doc.Terms[i]
		t.Name = conv.Convert(t.Name)
		t.Description = conv.Convert(t.Description)
	}
	for i := range doc.Posts {
		p := &doc.Posts[i]
		p.Title = conv.Convert(p.Title)
		p.Link = conv.Convert(p.Link)
		p.Content = conv.Convert(p.Content)
		p.Excerpt = conv.Convert(p.Excerpt)
		for j := range p.Terms {
			p.Terms[j].Slug = conv.Convert(p.Terms[j].Slug)
		}
		for j := range p.CustomFields {
			cf := &p.CustomFields[j]
			cf.Name = conv.Convert(cf.Name)
			cf.Type = conv.Convert(cf.Type)
			cf.Value = conv.Convert(cf.Value)
		}
		for j := range p.Meta {
			p.Meta[j].Value = conv.Convert(p.Meta[j].Value)
		}
		for j := range p.Comments {
			cm := &p.Comments[j]
			cm.Author = conv.Convert(cm.Author)
			cm.Content = conv.Convert(cm.Content)
			for k := range cm.Meta {
				cm.Meta[k].Value = conv.Convert(cm.Meta[k].Value)
			}
		}
	}
}

func heapInUse() int64 {
	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)
	return int64(ms.HeapAlloc)
}

func heapDelta(before, after int64) int64 {
	if after < before {
		return 0
	}
	return after - before
}
