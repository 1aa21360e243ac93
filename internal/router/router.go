package router

import (
	"github.com/frostlog/internal/config"
	"github.com/frostlog/internal/handler"
	"github.com/gin-gonic/gin"
)

// SetupRouter 配置 Gin 引擎和路由
func SetupRouter(api *handler.API, cfg config.AppConfig) *gin.Engine {
	r := gin.Default()

	// 静态提供上传文件
	r.Static(cfg.UploadURLPath, cfg.UploadDir)

	// 导出文档
	r.GET("/sitemap.xml", api.Sitemap)
	r.GET("/rss.xml", api.Feed)

	apiGroup := r.Group("/api")
	{
		apiGroup.GET("/health", api.Health)
		apiGroup.POST("/auth/login", api.Login)

		// 公开读路径，不经过认证
		apiGroup.GET("/posts/published", api.ListPublishedPosts)
		apiGroup.GET("/posts/slug/:slug", api.GetPublishedPostBySlug)
		apiGroup.GET("/posts/:id", api.GetPublishedPost)
		apiGroup.GET("/categories", api.ListCategories)
		apiGroup.GET("/categories/published", api.ListPublishedCategories)
		apiGroup.GET("/tags", api.ListTags)
		apiGroup.GET("/tags/published", api.ListPublishedTags)
		apiGroup.GET("/stats", api.GetStats)
		apiGroup.GET("/profile", api.GetProfile)

		apiGroup.PUT("/profile", api.AuthRequired(), api.UpdateProfile)

		// 后台管理路由，全部需要 Bearer 认证
		admin := apiGroup.Group("/admin")
		admin.Use(api.AuthRequired())
		{
			admin.GET("/posts", api.ListPosts)
			admin.POST("/posts", api.CreatePost)
			admin.GET("/posts/:id", api.GetPost)
			admin.PUT("/posts/:id", api.UpdatePost)
			admin.DELETE("/posts/:id", api.DeletePost)
			admin.POST("/posts/:id/publish", api.PublishPost)
			admin.POST("/posts/:id/unpublish", api.UnpublishPost)

			admin.POST("/categories", api.CreateCategory)
			admin.PUT("/categories/:id", api.UpdateCategory)
			admin.DELETE("/categories/:id", api.DeleteCategory)

			admin.POST("/tags", api.CreateTag)
			admin.PUT("/tags/:id", api.UpdateTag)
			admin.DELETE("/tags/:id", api.DeleteTag)

			admin.POST("/upload", api.UploadFile)
		}
	}

	return r
}
