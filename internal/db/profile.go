package db

import "time"

// Profile 定义了作者个人资料，单例记录，更新采用最后写入生效
type Profile struct {
	ID         uint      `gorm:"primarykey" json:"id"`
	Name       string    `gorm:"size:100;not null" json:"name"`
	Avatar     string    `gorm:"size:500" json:"avatar"`
	Bio        string    `gorm:"type:text" json:"bio"`
	Email      string    `gorm:"size:100" json:"email"`
	Location   string    `gorm:"size:100" json:"location"`
	Website    string    `gorm:"size:500" json:"website"`
	Github     string    `gorm:"size:500" json:"github"`
	Twitter    string    `gorm:"size:500" json:"twitter"`
	Skills     []string  `gorm:"serializer:json" json:"skills"`
	Interests  []string  `gorm:"serializer:json" json:"interests"`
	Education  string    `gorm:"size:200" json:"education"`
	Occupation string    `gorm:"size:200" json:"occupation"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
