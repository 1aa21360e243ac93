package handler

import (
	"bytes"
	"log"
	"net/http"
	"time"

	"github.com/frostlog/internal/db"
	"github.com/frostlog/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

var (
	markdownEngine = goldmark.New(
		goldmark.WithExtensions(extension.GFM, extension.Linkify, extension.Table),
		goldmark.WithRendererOptions(html.WithHardWraps(), html.WithXHTML()),
	)
	sanitizer = bluemonday.UGCPolicy()
)

// Health 健康检查
func (a *API) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// ListPublishedPosts 获取已发布文章列表，供前台展示
func (a *API) ListPublishedPosts(c *gin.Context) {
	filter := service.PostFilter{
		Search:   c.Query("search"),
		Category: c.Query("category"),
		Tag:      c.Query("tag"),
		Page:     queryInt(c, "page", 1),
		PerPage:  queryInt(c, "per_page", 10),
	}

	result, err := a.posts.ListPublished(filter)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "获取文章列表失败")
		return
	}

	respondData(c, gin.H{
		"items":        result.Posts,
		"total":        result.Total,
		"pages":        result.TotalPages,
		"current_page": result.Page,
	})
}

// GetPublishedPost 按 ID 获取已发布文章；草稿对外不可见
func (a *API) GetPublishedPost(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "无效的文章ID")
		return
	}

	post, err := a.posts.GetPublished(id)
	if err != nil {
		a.respondPublicPostError(c, err)
		return
	}

	respondData(c, a.publicPostDetail(post))
}

// GetPublishedPostBySlug 按 slug 获取已发布文章
func (a *API) GetPublishedPostBySlug(c *gin.Context) {
	post, err := a.posts.GetPublishedBySlug(c.Param("slug"))
	if err != nil {
		a.respondPublicPostError(c, err)
		return
	}

	respondData(c, a.publicPostDetail(post))
}

// publicPostDetail 在文章字段之外附带渲染后的安全 HTML 正文。
func (a *API) publicPostDetail(post *db.Post) gin.H {
	return gin.H{
		"id":           post.ID,
		"title":        post.Title,
		"slug":         post.Slug,
		"content":      post.Content,
		"content_html": renderMarkdown(post.Content),
		"excerpt":      post.Excerpt,
		"status":       post.Status,
		"cover_url":    post.CoverURL,
		"category":     post.Category,
		"tags":         post.Tags,
		"read_time":    post.ReadTime,
		"published_at": post.PublishedAt,
		"created_at":   post.CreatedAt,
		"updated_at":   post.UpdatedAt,
	}
}

func (a *API) respondPublicPostError(c *gin.Context, err error) {
	if err == service.ErrPostNotFound {
		respondError(c, http.StatusNotFound, "文章不存在或未发布")
		return
	}
	respondError(c, http.StatusInternalServerError, "服务器内部错误")
}

func renderMarkdown(content string) string {
	var buf bytes.Buffer
	if err := markdownEngine.Convert([]byte(content), &buf); err != nil {
		log.Printf("render markdown: %v", err)
		return ""
	}
	return sanitizer.Sanitize(buf.String())
}

// ListCategories 获取分类词表
func (a *API) ListCategories(c *gin.Context) {
	categories, err := a.categories.List()
	if err != nil {
		respondError(c, http.StatusInternalServerError, "获取分类列表失败")
		return
	}
	respondData(c, categories)
}

// ListPublishedCategories 获取已发布文章的分类统计
func (a *API) ListPublishedCategories(c *gin.Context) {
	usages, err := a.categories.PublishedUsage()
	if err != nil {
		respondError(c, http.StatusInternalServerError, "获取分类统计失败")
		return
	}
	respondData(c, usages)
}

// ListTags 获取标签词表
func (a *API) ListTags(c *gin.Context) {
	tags, err := a.tags.List()
	if err != nil {
		respondError(c, http.StatusInternalServerError, "获取标签列表失败")
		return
	}
	respondData(c, tags)
}

// ListPublishedTags 获取已发布文章的标签统计
func (a *API) ListPublishedTags(c *gin.Context) {
	usages, err := a.tags.PublishedUsage()
	if err != nil {
		respondError(c, http.StatusInternalServerError, "获取标签统计失败")
		return
	}
	respondData(c, usages)
}

// GetStats 获取站点统计信息
func (a *API) GetStats(c *gin.Context) {
	postCount, err := a.posts.Count()
	if err != nil {
		respondError(c, http.StatusInternalServerError, "获取统计信息失败")
		return
	}
	categoryCount, err := a.categories.Count()
	if err != nil {
		respondError(c, http.StatusInternalServerError, "获取统计信息失败")
		return
	}
	tagCount, err := a.tags.Count()
	if err != nil {
		respondError(c, http.StatusInternalServerError, "获取统计信息失败")
		return
	}

	respondData(c, gin.H{
		"total_posts":      postCount,
		"total_categories": categoryCount,
		"total_tags":       tagCount,
	})
}

// Sitemap 输出 sitemap.xml
func (a *API) Sitemap(c *gin.Context) {
	body, err := a.exports.RenderSitemap()
	if err != nil {
		respondError(c, http.StatusInternalServerError, "生成 sitemap 失败")
		return
	}
	c.Data(http.StatusOK, "application/xml; charset=utf-8", body)
}

// Feed 输出 RSS 订阅源
func (a *API) Feed(c *gin.Context) {
	body, err := a.exports.RenderFeed()
	if err != nil {
		respondError(c, http.StatusInternalServerError, "生成 RSS 失败")
		return
	}
	c.Data(http.StatusOK, "application/rss+xml; charset=utf-8", body)
}
