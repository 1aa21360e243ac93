package service

import (
	"errors"
	"strings"

	"github.com/frostlog/internal/db"
	"gorm.io/gorm"
)

var (
	ErrCategoryExists   = errors.New("category already exists")
	ErrCategoryNotFound = errors.New("category not found")
	ErrCategoryName     = errors.New("category name is required")
)

// CategoryService wraps category vocabulary operations.
type CategoryService struct {
	db *gorm.DB
}

// CategoryUsage 描述某个分类下已发布文章的数量
type CategoryUsage struct {
	Name  string `json:"name"`
	Count int64  `json:"count"`
}

// NewCategoryService creates a CategoryService instance.
func NewCategoryService(gdb *gorm.DB) *CategoryService {
	return &CategoryService{db: gdb}
}

// List returns categories ordered by name.
func (s *CategoryService) List() ([]db.Category, error) {
	var categories []db.Category
	if err := s.db.Order("name asc").Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

// Create inserts a new category with unique name.
func (s *CategoryService) Create(name, description string) (*db.Category, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return nil, ErrCategoryName
	}

	category := db.Category{Name: trimmed, Description: strings.TrimSpace(description)}
	if err := s.db.Create(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrCategoryExists
		}
		return nil, err
	}
	return &category, nil
}

// Update renames a category or changes its description.
func (s *CategoryService) Update(id uint, name, description string) (*db.Category, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return nil, ErrCategoryName
	}

	var category db.Category
	if err := s.db.First(&category, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}

	category.Name = trimmed
	category.Description = strings.TrimSpace(description)
	if err := s.db.Save(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrCategoryExists
		}
		return nil, err
	}
	return &category, nil
}

// Delete removes a category from the vocabulary.
// 文章上的分类是字符串标注，不随词表删除改写。
func (s *CategoryService) Delete(id uint) error {
	result := s.db.Delete(&db.Category{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrCategoryNotFound
	}
	return nil
}

// PublishedUsage 统计每个分类下已发布文章的数量，按数量倒序。
func (s *CategoryService) PublishedUsage() ([]CategoryUsage, error) {
	var rows []CategoryUsage
	err := s.db.Model(&db.Post{}).
		Select("category AS name, COUNT(*) AS count").
		Where("status = ? AND category IS NOT NULL AND category <> ''", db.PostStatusPublished).
		Group("category").
		Order("count desc").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	if rows == nil {
		rows = []CategoryUsage{}
	}
	return rows, nil
}

// Count 返回分类总数，供统计接口使用。
func (s *CategoryService) Count() (int64, error) {
	var count int64
	if err := s.db.Model(&db.Category{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
