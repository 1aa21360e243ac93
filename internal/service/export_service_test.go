package service

import (
	"encoding/xml"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/frostlog/internal/db"
)

const (
	testBaseURL  = "http://localhost:3000"
	testSiteName = "测试博客"
	testSiteDesc = "测试描述"
)

func newTestExportService(t *testing.T) (*ExportService, *PostService) {
	t.Helper()
	gdb := setupServiceTestDB(t)
	return NewExportService(gdb, testBaseURL, testSiteName, testSiteDesc), NewPostService(gdb)
}

func TestExportService_SitemapEmpty(t *testing.T) {
	exports, _ := newTestExportService(t)

	body, err := exports.RenderSitemap()
	if err != nil {
		t.Fatalf("render sitemap: %v", err)
	}

	var parsed sitemapURLSet
	if err := xml.Unmarshal(body, &parsed); err != nil {
		t.Fatalf("sitemap must stay well-formed with zero posts: %v", err)
	}
	if len(parsed.URLs) != len(staticSections) {
		t.Fatalf("expected %d static entries, got %d", len(staticSections), len(parsed.URLs))
	}
	for _, entry := range parsed.URLs {
		if entry.ChangeFreq != "weekly" || entry.Priority != "0.8" {
			t.Fatalf("static section should be weekly/0.8, got %+v", entry)
		}
	}
}

func TestExportService_SitemapIncludesPublishedPosts(t *testing.T) {
	exports, posts := newTestExportService(t)

	draft, err := posts.Create(PostInput{Title: "Draft post"})
	if err != nil {
		t.Fatalf("create draft: %v", err)
	}
	_ = draft

	published, err := posts.Create(PostInput{Title: "Published post"})
	if err != nil {
		t.Fatalf("create post: %v", err)
	}
	if _, err := posts.Publish(published.ID); err != nil {
		t.Fatalf("publish post: %v", err)
	}

	body, err := exports.RenderSitemap()
	if err != nil {
		t.Fatalf("render sitemap: %v", err)
	}

	var parsed sitemapURLSet
	if err := xml.Unmarshal(body, &parsed); err != nil {
		t.Fatalf("unmarshal sitemap: %v", err)
	}
	if len(parsed.URLs) != len(staticSections)+1 {
		t.Fatalf("expected %d entries, got %d", len(staticSections)+1, len(parsed.URLs))
	}

	last := parsed.URLs[len(parsed.URLs)-1]
	if last.Loc != testBaseURL+"/post/published-post" {
		t.Fatalf("unexpected post loc %q", last.Loc)
	}
	if last.ChangeFreq != "monthly" || last.Priority != "0.6" {
		t.Fatalf("post entry should be monthly/0.6, got %+v", last)
	}
	if strings.Contains(string(body), "draft-post") {
		t.Fatalf("sitemap must not expose drafts")
	}
}

func TestExportService_FeedEmpty(t *testing.T) {
	exports, _ := newTestExportService(t)

	body, err := exports.RenderFeed()
	if err != nil {
		t.Fatalf("render feed: %v", err)
	}

	var parsed feedDocument
	if err := xml.Unmarshal(body, &parsed); err != nil {
		t.Fatalf("feed must stay well-formed with zero posts: %v", err)
	}
	if parsed.Version != "2.0" {
		t.Fatalf("expected rss 2.0, got %q", parsed.Version)
	}
	if parsed.Channel.Title != testSiteName {
		t.Fatalf("expected channel title %q, got %q", testSiteName, parsed.Channel.Title)
	}
	if len(parsed.Channel.Items) != 0 {
		t.Fatalf("expected zero items, got %d", len(parsed.Channel.Items))
	}
}

func TestExportService_FeedContent(t *testing.T) {
	exports, posts := newTestExportService(t)

	withExcerpt, err := posts.Create(PostInput{
		Title:   "With excerpt",
		Content: stringOfRunes(400),
		Excerpt: "hand written summary",
	})
	if err != nil {
		t.Fatalf("create post: %v", err)
	}
	if _, err := posts.Publish(withExcerpt.ID); err != nil {
		t.Fatalf("publish post: %v", err)
	}

	truncated, err := posts.Create(PostInput{Title: "Truncated", Content: stringOfRunes(400)})
	if err != nil {
		t.Fatalf("create post: %v", err)
	}
	if _, err := posts.Publish(truncated.ID); err != nil {
		t.Fatalf("publish post: %v", err)
	}

	body, err := exports.RenderFeed()
	if err != nil {
		t.Fatalf("render feed: %v", err)
	}

	var parsed feedDocument
	if err := xml.Unmarshal(body, &parsed); err != nil {
		t.Fatalf("unmarshal feed: %v", err)
	}
	if len(parsed.Channel.Items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(parsed.Channel.Items))
	}

	byTitle := make(map[string]feedItem)
	for _, item := range parsed.Channel.Items {
		byTitle[item.Title] = item
	}

	if item := byTitle["With excerpt"]; item.Description != "hand written summary" {
		t.Fatalf("excerpt should win over content, got %q", item.Description)
	}
	if item := byTitle["Truncated"]; len([]rune(item.Description)) != 203 || !strings.HasSuffix(item.Description, "...") {
		t.Fatalf("expected 200 runes + marker, got %d runes", len([]rune(item.Description)))
	}

	for _, item := range parsed.Channel.Items {
		if item.GUID != item.Link {
			t.Fatalf("guid must equal canonical link, got %q vs %q", item.GUID, item.Link)
		}
		if item.PubDate == "" {
			t.Fatalf("expected pubDate on published item")
		}
		if _, err := time.Parse(time.RFC1123Z, item.PubDate); err != nil {
			t.Fatalf("pubDate not RFC1123Z: %v", err)
		}
	}
}

func TestExportService_FeedLimitAndOrder(t *testing.T) {
	gdb := setupServiceTestDB(t)
	exports := NewExportService(gdb, testBaseURL, testSiteName, testSiteDesc)

	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 25; i++ {
		stamp := base.Add(time.Duration(i) * time.Hour)
		post := db.Post{
			Title:       fmt.Sprintf("Post %02d", i),
			Slug:        fmt.Sprintf("post-%02d", i),
			Status:      db.PostStatusPublished,
			PublishedAt: &stamp,
			Tags:        []string{},
		}
		if err := gdb.Create(&post).Error; err != nil {
			t.Fatalf("seed post %d: %v", i, err)
		}
	}

	body, err := exports.RenderFeed()
	if err != nil {
		t.Fatalf("render feed: %v", err)
	}

	var parsed feedDocument
	if err := xml.Unmarshal(body, &parsed); err != nil {
		t.Fatalf("unmarshal feed: %v", err)
	}
	if len(parsed.Channel.Items) != 20 {
		t.Fatalf("feed must cap at 20 items, got %d", len(parsed.Channel.Items))
	}
	if parsed.Channel.Items[0].Title != "Post 24" {
		t.Fatalf("expected newest post first, got %q", parsed.Channel.Items[0].Title)
	}
	if parsed.Channel.Items[19].Title != "Post 05" {
		t.Fatalf("expected Post 05 last, got %q", parsed.Channel.Items[19].Title)
	}
}

func TestExportService_FeedMissingPublishedAt(t *testing.T) {
	gdb := setupServiceTestDB(t)
	exports := NewExportService(gdb, testBaseURL, testSiteName, testSiteDesc)

	// 防御性场景：已发布但时间戳缺失的文章不应破坏整个导出
	post := db.Post{Title: "No stamp", Slug: "no-stamp", Status: db.PostStatusPublished, Tags: []string{}}
	if err := gdb.Create(&post).Error; err != nil {
		t.Fatalf("seed post: %v", err)
	}

	body, err := exports.RenderFeed()
	if err != nil {
		t.Fatalf("render feed: %v", err)
	}

	var parsed feedDocument
	if err := xml.Unmarshal(body, &parsed); err != nil {
		t.Fatalf("unmarshal feed: %v", err)
	}
	if len(parsed.Channel.Items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(parsed.Channel.Items))
	}
	if parsed.Channel.Items[0].PubDate != "" {
		t.Fatalf("expected omitted pubDate, got %q", parsed.Channel.Items[0].PubDate)
	}
}
