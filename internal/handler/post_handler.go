package handler

import (
	"errors"
	"net/http"

	"github.com/frostlog/internal/service"
	"github.com/gin-gonic/gin"
)

type postPayload struct {
	Title    *string   `json:"title"`
	Slug     *string   `json:"slug"`
	Content  *string   `json:"content"`
	Excerpt  *string   `json:"excerpt"`
	Status   *string   `json:"status"`
	Category *string   `json:"category"`
	Tags     *[]string `json:"tags"`
	CoverURL *string   `json:"cover_url"`
}

// ListPosts 获取后台文章列表，支持关键词、状态与分类过滤
func (a *API) ListPosts(c *gin.Context) {
	filter := service.PostFilter{
		Search:   c.Query("q"),
		Status:   c.Query("status"),
		Category: c.Query("category"),
		Page:     queryInt(c, "page", 1),
		PerPage:  queryInt(c, "per_page", 10),
	}

	result, err := a.posts.List(filter)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "获取文章列表失败")
		return
	}

	respondData(c, gin.H{
		"items": result.Posts,
		"total": result.Total,
		"page":  result.Page,
		"pages": result.TotalPages,
	})
}

// GetPost 获取单篇文章，含草稿
func (a *API) GetPost(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "无效的文章ID")
		return
	}

	post, err := a.posts.Get(id)
	if err != nil {
		status, message := postErrorStatus(err)
		respondError(c, status, message)
		return
	}

	respondData(c, post)
}

// CreatePost 创建新文章，未提供 slug 时按标题生成
func (a *API) CreatePost(c *gin.Context) {
	var payload postPayload
	if !bindJSON(c, &payload, "无效的请求体") {
		return
	}

	input := service.PostInput{}
	if payload.Title != nil {
		input.Title = *payload.Title
	}
	if payload.Slug != nil {
		input.Slug = *payload.Slug
	}
	if payload.Content != nil {
		input.Content = *payload.Content
	}
	if payload.Excerpt != nil {
		input.Excerpt = *payload.Excerpt
	}
	if payload.Status != nil {
		input.Status = *payload.Status
	}
	if payload.Category != nil {
		input.Category = *payload.Category
	}
	if payload.Tags != nil {
		input.Tags = *payload.Tags
	}
	if payload.CoverURL != nil {
		input.CoverURL = *payload.CoverURL
	}

	post, err := a.posts.Create(input)
	if err != nil {
		status, message := postErrorStatus(err)
		respondError(c, status, message)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    gin.H{"id": post.ID},
		"message": "创建成功",
	})
}

// UpdatePost 部分更新文章，只应用请求中出现的字段
func (a *API) UpdatePost(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "无效的文章ID")
		return
	}

	var payload postPayload
	if !bindJSON(c, &payload, "无效的请求体") {
		return
	}

	update := service.PostUpdate{
		Title:    payload.Title,
		Slug:     payload.Slug,
		Content:  payload.Content,
		Excerpt:  payload.Excerpt,
		Status:   payload.Status,
		Category: payload.Category,
		Tags:     payload.Tags,
		CoverURL: payload.CoverURL,
	}

	if _, err := a.posts.Update(id, update); err != nil {
		status, message := postErrorStatus(err)
		respondError(c, status, message)
		return
	}

	respondMessage(c, "更新成功")
}

// DeletePost 删除文章，硬删除
func (a *API) DeletePost(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "无效的文章ID")
		return
	}

	if err := a.posts.Delete(id); err != nil {
		status, message := postErrorStatus(err)
		respondError(c, status, message)
		return
	}

	respondMessage(c, "已删除")
}

// PublishPost 发布文章
func (a *API) PublishPost(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "无效的文章ID")
		return
	}

	if _, err := a.posts.Publish(id); err != nil {
		status, message := postErrorStatus(err)
		respondError(c, status, message)
		return
	}

	respondMessage(c, "已发布")
}

// UnpublishPost 将文章撤回为草稿
func (a *API) UnpublishPost(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "无效的文章ID")
		return
	}

	if _, err := a.posts.Unpublish(id); err != nil {
		status, message := postErrorStatus(err)
		respondError(c, status, message)
		return
	}

	respondMessage(c, "已撤回为草稿")
}

func postErrorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, service.ErrPostNotFound):
		return http.StatusNotFound, "文章不存在"
	case errors.Is(err, service.ErrTitleRequired):
		return http.StatusBadRequest, "标题不能为空"
	case errors.Is(err, service.ErrTitleTooLong):
		return http.StatusBadRequest, "标题过长(<=200)"
	case errors.Is(err, service.ErrExcerptTooLong):
		return http.StatusBadRequest, "摘要过长(<=500)"
	case errors.Is(err, service.ErrSlugInvalid):
		return http.StatusBadRequest, "slug 格式仅允许小写字母、数字及中划线"
	case errors.Is(err, service.ErrSlugTaken):
		return http.StatusConflict, "slug 已存在"
	case errors.Is(err, service.ErrInvalidStatus):
		return http.StatusBadRequest, "非法状态"
	default:
		return http.StatusInternalServerError, "服务器内部错误"
	}
}
