package db

import "time"

// Post 定义了文章模型
// 不嵌入 gorm.Model：删除为硬删除，软删除的 DeletedAt 会与 slug 唯一索引冲突。
type Post struct {
	ID          uint       `gorm:"primarykey" json:"id"`
	Title       string     `gorm:"size:200;not null" json:"title"`
	Slug        string     `gorm:"size:220;uniqueIndex;not null" json:"slug"`
	Content     string     `gorm:"type:text" json:"content"`
	Excerpt     string     `gorm:"size:500" json:"excerpt"`
	Status      string     `gorm:"size:20;default:draft;index" json:"status"`
	Category    string     `gorm:"size:100" json:"category"`
	Tags        []string   `gorm:"serializer:json" json:"tags"`
	CoverURL    string     `gorm:"size:500" json:"cover_url"`
	ReadTime    int        `gorm:"default:1" json:"read_time"`
	PublishedAt *time.Time `json:"published_at"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// 文章状态枚举，持久化层只允许这两个值。
const (
	PostStatusDraft     = "draft"
	PostStatusPublished = "published"
)
