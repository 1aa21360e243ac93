package service

import (
	"encoding/xml"
	"time"

	"github.com/frostlog/internal/db"
	"gorm.io/gorm"
)

// RSS 条目数量上限
const feedItemLimit = 20

// ExportService 将已发布文章投影为 sitemap 与 RSS 文档。
// 只读组件，不修改存储状态。
type ExportService struct {
	db              *gorm.DB
	baseURL         string
	siteName        string
	siteDescription string
}

// NewExportService creates an ExportService instance.
func NewExportService(gdb *gorm.DB, baseURL, siteName, siteDescription string) *ExportService {
	return &ExportService{
		db:              gdb,
		baseURL:         baseURL,
		siteName:        siteName,
		siteDescription: siteDescription,
	}
}

// 站点固定栏目，在 sitemap 中具有更高的权重和更新频率。
var staticSections = []string{"", "/home", "/about", "/archive", "/category", "/tag"}

type sitemapEntry struct {
	Loc        string `xml:"loc"`
	LastMod    string `xml:"lastmod"`
	ChangeFreq string `xml:"changefreq"`
	Priority   string `xml:"priority"`
}

type sitemapURLSet struct {
	XMLName xml.Name       `xml:"urlset"`
	Xmlns   string         `xml:"xmlns,attr"`
	URLs    []sitemapEntry `xml:"url"`
}

type feedItem struct {
	Title       string `xml:"title"`
	Link        string `xml:"link"`
	Description string `xml:"description"`
	PubDate     string `xml:"pubDate,omitempty"`
	GUID        string `xml:"guid"`
}

type feedChannel struct {
	Title       string     `xml:"title"`
	Link        string     `xml:"link"`
	Description string     `xml:"description"`
	Language    string     `xml:"language"`
	Items       []feedItem `xml:"item"`
}

type feedDocument struct {
	XMLName xml.Name    `xml:"rss"`
	Version string      `xml:"version,attr"`
	Channel feedChannel `xml:"channel"`
}

// RenderSitemap 枚举固定栏目与全部已发布文章，生成 sitemap.xml。
func (s *ExportService) RenderSitemap() ([]byte, error) {
	urlSet := sitemapURLSet{Xmlns: "http://www.sitemaps.org/schemas/sitemap/0.9"}

	today := time.Now().UTC().Format("2006-01-02")
	for _, section := range staticSections {
		urlSet.URLs = append(urlSet.URLs, sitemapEntry{
			Loc:        s.baseURL + section,
			LastMod:    today,
			ChangeFreq: "weekly",
			Priority:   "0.8",
		})
	}

	var posts []db.Post
	if err := s.db.
		Where("status = ?", db.PostStatusPublished).
		Order("published_at desc, created_at desc").
		Find(&posts).Error; err != nil {
		return nil, err
	}

	for _, post := range posts {
		urlSet.URLs = append(urlSet.URLs, sitemapEntry{
			Loc:        s.postLink(post.Slug),
			LastMod:    post.UpdatedAt.UTC().Format("2006-01-02"),
			ChangeFreq: "monthly",
			Priority:   "0.6",
		})
	}

	return marshalXML(urlSet)
}

// RenderFeed 生成 RSS 2.0 订阅源，最多包含最近发布的 20 篇文章。
func (s *ExportService) RenderFeed() ([]byte, error) {
	doc := feedDocument{
		Version: "2.0",
		Channel: feedChannel{
			Title:       s.siteName,
			Link:        s.baseURL,
			Description: s.siteDescription,
			Language:    "zh-CN",
			Items:       []feedItem{},
		},
	}

	var posts []db.Post
	if err := s.db.
		Where("status = ?", db.PostStatusPublished).
		Order("published_at desc, created_at desc").
		Limit(feedItemLimit).
		Find(&posts).Error; err != nil {
		return nil, err
	}

	for _, post := range posts {
		link := s.postLink(post.Slug)
		item := feedItem{
			Title:       post.Title,
			Link:        link,
			Description: feedDescription(post),
			GUID:        link,
		}
		// published_at 缺失时省略 pubDate，不让单篇文章毁掉整个导出
		if post.PublishedAt != nil {
			item.PubDate = post.PublishedAt.UTC().Format(time.RFC1123Z)
		}
		doc.Channel.Items = append(doc.Channel.Items, item)
	}

	return marshalXML(doc)
}

func (s *ExportService) postLink(slug string) string {
	return s.baseURL + "/post/" + slug
}

// feedDescription 优先使用摘要，否则截取正文前 200 个字符并附省略号。
func feedDescription(post db.Post) string {
	if post.Excerpt != "" {
		return post.Excerpt
	}
	runes := []rune(post.Content)
	if len(runes) > 200 {
		return string(runes[:200]) + "..."
	}
	return post.Content
}

func marshalXML(v interface{}) ([]byte, error) {
	body, err := xml.Marshal(v)
	if err != nil {
		return nil, err
	}
	return append([]byte(xml.Header), body...), nil
}
