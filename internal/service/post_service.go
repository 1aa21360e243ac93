package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/frostlog/internal/db"
	"gorm.io/gorm"
)

var (
	ErrPostNotFound   = errors.New("post not found")
	ErrTitleRequired  = errors.New("title is required")
	ErrTitleTooLong   = errors.New("title exceeds 200 characters")
	ErrExcerptTooLong = errors.New("excerpt exceeds 500 characters")
	ErrSlugInvalid    = errors.New("slug may only contain lowercase letters, digits and hyphens")
	ErrSlugTaken      = errors.New("slug already exists")
	ErrInvalidStatus  = errors.New("invalid post status")
)

const (
	maxTitleLen   = 200
	maxExcerptLen = 500
)

// PostService wraps post related database operations.
type PostService struct {
	db *gorm.DB
}

// NewPostService creates a PostService instance.
func NewPostService(gdb *gorm.DB) *PostService {
	return &PostService{db: gdb}
}

// PostInput represents fields accepted when creating a post.
type PostInput struct {
	Title    string
	Slug     string
	Content  string
	Excerpt  string
	Status   string
	Category string
	Tags     []string
	CoverURL string
}

// PostUpdate 描述部分更新时可设置的字段，指针判断是否显式传入。
type PostUpdate struct {
	Title    *string
	Slug     *string
	Content  *string
	Excerpt  *string
	Status   *string
	Category *string
	Tags     *[]string
	CoverURL *string
}

// PostFilter describes filters for listing posts.
type PostFilter struct {
	Search   string
	Status   string
	Category string
	Tag      string
	Page     int
	PerPage  int
}

// PostListResult aggregates paginated list data and counters.
type PostListResult struct {
	Posts      []db.Post
	Total      int64
	TotalPages int
	Page       int
	PerPage    int
}

// Create persists a new post, generating a unique slug when none is supplied.
func (s *PostService) Create(input PostInput) (*db.Post, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, ErrTitleRequired
	}
	if len([]rune(title)) > maxTitleLen {
		return nil, ErrTitleTooLong
	}
	if len([]rune(input.Excerpt)) > maxExcerptLen {
		return nil, ErrExcerptTooLong
	}

	status := input.Status
	if status == "" {
		status = db.PostStatusDraft
	}
	if status != db.PostStatusDraft && status != db.PostStatusPublished {
		return nil, ErrInvalidStatus
	}

	slug := strings.TrimSpace(input.Slug)
	if slug != "" && !validSlug(slug) {
		return nil, ErrSlugInvalid
	}

	post := db.Post{
		Title:    title,
		Content:  input.Content,
		Excerpt:  input.Excerpt,
		Status:   status,
		Category: input.Category,
		Tags:     normalizeTags(input.Tags),
		CoverURL: input.CoverURL,
		ReadTime: calculateReadTime(input.Content),
	}

	if status == db.PostStatusPublished {
		now := time.Now().UTC()
		post.PublishedAt = &now
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if slug == "" {
			generated, genErr := resolveSlug(tx, slugify(title), 0)
			if genErr != nil {
				return genErr
			}
			post.Slug = generated
		} else {
			var count int64
			if err := tx.Model(&db.Post{}).Where("slug = ?", slug).Count(&count).Error; err != nil {
				return err
			}
			if count > 0 {
				return ErrSlugTaken
			}
			post.Slug = slug
		}

		// 唯一索引是权威防线：预检通过但提交撞车时由这里兜底。
		if err := tx.Create(&post).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrSlugTaken
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &post, nil
}

// Update applies a partial update: only fields present are touched.
// 全部字段校验通过后才落库，失败时不产生部分写入。
func (s *PostService) Update(id uint, update PostUpdate) (*db.Post, error) {
	var existing db.Post
	if err := s.db.First(&existing, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}

	if update.Title != nil {
		title := strings.TrimSpace(*update.Title)
		if title == "" {
			return nil, ErrTitleRequired
		}
		if len([]rune(title)) > maxTitleLen {
			return nil, ErrTitleTooLong
		}
		existing.Title = title
	}

	if update.Excerpt != nil {
		if len([]rune(*update.Excerpt)) > maxExcerptLen {
			return nil, ErrExcerptTooLong
		}
		existing.Excerpt = *update.Excerpt
	}

	if update.Status != nil {
		status := *update.Status
		if status == "" {
			status = db.PostStatusDraft
		}
		if status != db.PostStatusDraft && status != db.PostStatusPublished {
			return nil, ErrInvalidStatus
		}
		existing.Status = status
		if status == db.PostStatusPublished && existing.PublishedAt == nil {
			now := time.Now().UTC()
			existing.PublishedAt = &now
		}
	}

	newSlug := existing.Slug
	if update.Slug != nil {
		newSlug = strings.TrimSpace(*update.Slug)
		if newSlug != "" && !validSlug(newSlug) {
			return nil, ErrSlugInvalid
		}
	}

	if update.Content != nil {
		existing.Content = *update.Content
		existing.ReadTime = calculateReadTime(existing.Content)
	}
	if update.Category != nil {
		existing.Category = *update.Category
	}
	if update.Tags != nil {
		existing.Tags = normalizeTags(*update.Tags)
	}
	if update.CoverURL != nil {
		existing.CoverURL = *update.CoverURL
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if update.Slug != nil {
			if newSlug == "" {
				// 传空 slug 表示按当前标题重新生成
				generated, genErr := resolveSlug(tx, slugify(existing.Title), existing.ID)
				if genErr != nil {
					return genErr
				}
				newSlug = generated
			} else if newSlug != existing.Slug {
				var count int64
				if err := tx.Model(&db.Post{}).
					Where("slug = ? AND id <> ?", newSlug, existing.ID).
					Count(&count).Error; err != nil {
					return err
				}
				if count > 0 {
					return ErrSlugTaken
				}
			}
			existing.Slug = newSlug
		}

		if err := tx.Save(&existing).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrSlugTaken
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &existing, nil
}

// Publish 将文章置为已发布；首次发布时写入 published_at，之后保持不变。
// 对已发布文章重复发布不修改时间戳，但仍会刷新 updated_at。
func (s *PostService) Publish(id uint) (*db.Post, error) {
	var post db.Post
	if err := s.db.First(&post, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}

	post.Status = db.PostStatusPublished
	if post.PublishedAt == nil {
		now := time.Now().UTC()
		post.PublishedAt = &now
	}

	if err := s.db.Save(&post).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

// Unpublish 将文章撤回为草稿。published_at 保留作为发布历史。
func (s *PostService) Unpublish(id uint) (*db.Post, error) {
	var post db.Post
	if err := s.db.First(&post, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}

	post.Status = db.PostStatusDraft

	if err := s.db.Save(&post).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

// Delete removes a post by id. Hard delete.
func (s *PostService) Delete(id uint) error {
	result := s.db.Delete(&db.Post{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrPostNotFound
	}
	return nil
}

// Get fetches a post by id regardless of status.
func (s *PostService) Get(id uint) (*db.Post, error) {
	var post db.Post
	if err := s.db.First(&post, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}
	return &post, nil
}

// GetPublished fetches a published post by id; drafts stay invisible here.
func (s *PostService) GetPublished(id uint) (*db.Post, error) {
	var post db.Post
	if err := s.db.Where("id = ? AND status = ?", id, db.PostStatusPublished).
		First(&post).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}
	return &post, nil
}

// GetPublishedBySlug fetches a published post by slug.
func (s *PostService) GetPublishedBySlug(slug string) (*db.Post, error) {
	var post db.Post
	if err := s.db.Where("slug = ? AND status = ?", slug, db.PostStatusPublished).
		First(&post).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}
	return &post, nil
}

// List provides paginated posts for the admin view, newest update first.
func (s *PostService) List(filter PostFilter) (*PostListResult, error) {
	result := newListResult(filter)

	query := applyPostFilters(s.db.Model(&db.Post{}), filter)
	if err := query.Count(&result.Total).Error; err != nil {
		return nil, err
	}

	offset := (result.Page - 1) * result.PerPage
	var posts []db.Post
	dataQuery := applyPostFilters(s.db.Model(&db.Post{}), filter)
	if err := dataQuery.
		Order("updated_at desc").
		Limit(result.PerPage).
		Offset(offset).
		Find(&posts).Error; err != nil {
		return nil, err
	}

	result.Posts = posts
	result.TotalPages = totalPages(result.Total, result.PerPage)
	return result, nil
}

// ListPublished provides paginated published posts for the public site,
// 发布时间倒序排列，发布时间相同时回退到创建时间。
func (s *PostService) ListPublished(filter PostFilter) (*PostListResult, error) {
	result := newListResult(filter)
	filter.Status = db.PostStatusPublished

	query := applyPostFilters(s.db.Model(&db.Post{}), filter)
	if err := query.Count(&result.Total).Error; err != nil {
		return nil, err
	}

	offset := (result.Page - 1) * result.PerPage
	var posts []db.Post
	dataQuery := applyPostFilters(s.db.Model(&db.Post{}), filter)
	if err := dataQuery.
		Order("published_at desc, created_at desc").
		Limit(result.PerPage).
		Offset(offset).
		Find(&posts).Error; err != nil {
		return nil, err
	}

	result.Posts = posts
	result.TotalPages = totalPages(result.Total, result.PerPage)
	return result, nil
}

// Count 返回文章总数，供统计接口使用。
func (s *PostService) Count() (int64, error) {
	var count int64
	if err := s.db.Model(&db.Post{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// resolveSlug 在候选 slug 已被占用时依次追加 -2、-3…，直到找到空闲值。
// 检查针对实时数据，不做预留。
func resolveSlug(tx *gorm.DB, base string, excludeID uint) (string, error) {
	candidate := base
	for i := 2; ; i++ {
		query := tx.Model(&db.Post{}).Where("slug = ?", candidate)
		if excludeID != 0 {
			query = query.Where("id <> ?", excludeID)
		}

		var count int64
		if err := query.Count(&count).Error; err != nil {
			return "", err
		}
		if count == 0 {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", base, i)
	}
}

func applyPostFilters(query *gorm.DB, filter PostFilter) *gorm.DB {
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		query = query.Where("(title LIKE ? OR excerpt LIKE ? OR content LIKE ?)", like, like, like)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.Tag != "" {
		// tags 以 JSON 数组存储，元素匹配依赖带引号的包含判断
		query = query.Where("tags LIKE ?", fmt.Sprintf(`%%"%s"%%`, filter.Tag))
	}
	return query
}

func newListResult(filter PostFilter) *PostListResult {
	result := &PostListResult{Page: filter.Page, PerPage: filter.PerPage}
	if result.Page <= 0 {
		result.Page = 1
	}
	if result.PerPage <= 0 {
		result.PerPage = 10
	}
	return result
}

func totalPages(total int64, perPage int) int {
	return int((total + int64(perPage) - 1) / int64(perPage))
}

// calculateReadTime 按每分钟 300 字估算阅读时长：
// 去掉换行后按字符数整除，下限为 1 分钟。
func calculateReadTime(content string) int {
	chars := len([]rune(strings.ReplaceAll(content, "\n", "")))
	minutes := chars / 300
	if minutes < 1 {
		minutes = 1
	}
	return minutes
}

func normalizeTags(tags []string) []string {
	if tags == nil {
		return []string{}
	}
	cleaned := make([]string, 0, len(tags))
	seen := make(map[string]struct{}, len(tags))
	for _, tag := range tags {
		trimmed := strings.TrimSpace(tag)
		if trimmed == "" {
			continue
		}
		if _, dup := seen[trimmed]; dup {
			continue
		}
		seen[trimmed] = struct{}{}
		cleaned = append(cleaned, trimmed)
	}
	return cleaned
}
