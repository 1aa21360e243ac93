package service

import (
	"errors"
	"sort"
	"strings"

	"github.com/frostlog/internal/db"
	"gorm.io/gorm"
)

var (
	ErrTagExists   = errors.New("tag already exists")
	ErrTagNotFound = errors.New("tag not found")
	ErrTagName     = errors.New("tag name is required")
)

// TagService wraps tag vocabulary operations.
type TagService struct {
	db *gorm.DB
}

// TagUsage 描述标签在已发布文章中的使用次数
type TagUsage struct {
	Name  string `json:"name"`
	Count int64  `json:"count"`
}

// NewTagService creates a TagService instance.
func NewTagService(gdb *gorm.DB) *TagService {
	return &TagService{db: gdb}
}

// List returns tags ordered by name.
func (s *TagService) List() ([]db.Tag, error) {
	var tags []db.Tag
	if err := s.db.Order("name asc").Find(&tags).Error; err != nil {
		return nil, err
	}
	return tags, nil
}

// Create inserts a new tag with unique name.
func (s *TagService) Create(name string) (*db.Tag, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return nil, ErrTagName
	}

	tag := db.Tag{Name: trimmed}
	if err := s.db.Create(&tag).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrTagExists
		}
		return nil, err
	}
	return &tag, nil
}

// Update renames an existing tag.
func (s *TagService) Update(id uint, name string) (*db.Tag, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return nil, ErrTagName
	}

	var tag db.Tag
	if err := s.db.First(&tag, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTagNotFound
		}
		return nil, err
	}

	tag.Name = trimmed
	if err := s.db.Save(&tag).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrTagExists
		}
		return nil, err
	}
	return &tag, nil
}

// Delete removes a tag from the vocabulary.
func (s *TagService) Delete(id uint) error {
	result := s.db.Delete(&db.Tag{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrTagNotFound
	}
	return nil
}

// PublishedUsage 汇总已发布文章的标签使用次数，按次数倒序。
// 标签以 JSON 数组落在文章行上，统计在应用层完成。
func (s *TagService) PublishedUsage() ([]TagUsage, error) {
	var posts []db.Post
	if err := s.db.
		Select("tags").
		Where("status = ?", db.PostStatusPublished).
		Find(&posts).Error; err != nil {
		return nil, err
	}

	counts := make(map[string]int64)
	for _, post := range posts {
		for _, tag := range post.Tags {
			counts[tag]++
		}
	}

	usages := make([]TagUsage, 0, len(counts))
	for name, count := range counts {
		usages = append(usages, TagUsage{Name: name, Count: count})
	}
	sort.Slice(usages, func(i, j int) bool {
		if usages[i].Count != usages[j].Count {
			return usages[i].Count > usages[j].Count
		}
		return usages[i].Name < usages[j].Name
	})
	return usages, nil
}

// Count 返回标签总数，供统计接口使用。
func (s *TagService) Count() (int64, error) {
	var count int64
	if err := s.db.Model(&db.Tag{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
