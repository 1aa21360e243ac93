package handler

import (
	"github.com/frostlog/internal/config"
	"github.com/frostlog/internal/service"
	"gorm.io/gorm"
)

// API bundles shared dependencies for HTTP handlers.
type API struct {
	db         *gorm.DB
	posts      *service.PostService
	categories *service.CategoryService
	tags       *service.TagService
	profiles   *service.ProfileService
	exports    *service.ExportService
	auth       *service.AuthService
	uploadDir  string
	uploadURL  string
}

// NewAPI constructs a handler set with shared services.
func NewAPI(gdb *gorm.DB, cfg config.AppConfig) *API {
	return &API{
		db:         gdb,
		posts:      service.NewPostService(gdb),
		categories: service.NewCategoryService(gdb),
		tags:       service.NewTagService(gdb),
		profiles:   service.NewProfileService(gdb),
		exports:    service.NewExportService(gdb, cfg.SiteBaseURL, cfg.SiteName, cfg.SiteDescription),
		auth:       service.NewAuthService(gdb, cfg.JWTSecret),
		uploadDir:  cfg.UploadDir,
		uploadURL:  cfg.UploadURLPath,
	}
}
