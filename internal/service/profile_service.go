package service

import (
	"errors"

	"github.com/frostlog/internal/db"
	"gorm.io/gorm"
)

// ErrProfileNotFound 在尚未保存任何个人资料时返回
var ErrProfileNotFound = errors.New("profile not found")

// ProfileService 负责维护作者个人资料，单例记录，最后写入生效。
type ProfileService struct {
	db *gorm.DB
}

// NewProfileService 构造 ProfileService
func NewProfileService(gdb *gorm.DB) *ProfileService {
	return &ProfileService{db: gdb}
}

// ProfileUpdate 描述更新个人资料时可设置的字段，指针判断是否显式传入。
type ProfileUpdate struct {
	Name       *string
	Avatar     *string
	Bio        *string
	Email      *string
	Location   *string
	Website    *string
	Github     *string
	Twitter    *string
	Skills     *[]string
	Interests  *[]string
	Education  *string
	Occupation *string
}

// Get 返回已保存的个人资料；尚未保存时返回 ErrProfileNotFound。
func (s *ProfileService) Get() (*db.Profile, error) {
	var profile db.Profile
	if err := s.db.First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	return &profile, nil
}

// Update 以最后写入生效的方式应用部分更新；首次更新时创建记录。
func (s *ProfileService) Update(update ProfileUpdate) (*db.Profile, error) {
	var profile db.Profile
	if err := s.db.First(&profile).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}

	if update.Name != nil {
		profile.Name = *update.Name
	}
	if update.Avatar != nil {
		profile.Avatar = *update.Avatar
	}
	if update.Bio != nil {
		profile.Bio = *update.Bio
	}
	if update.Email != nil {
		profile.Email = *update.Email
	}
	if update.Location != nil {
		profile.Location = *update.Location
	}
	if update.Website != nil {
		profile.Website = *update.Website
	}
	if update.Github != nil {
		profile.Github = *update.Github
	}
	if update.Twitter != nil {
		profile.Twitter = *update.Twitter
	}
	if update.Skills != nil {
		profile.Skills = *update.Skills
	}
	if update.Interests != nil {
		profile.Interests = *update.Interests
	}
	if update.Education != nil {
		profile.Education = *update.Education
	}
	if update.Occupation != nil {
		profile.Occupation = *update.Occupation
	}

	if err := s.db.Save(&profile).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}
