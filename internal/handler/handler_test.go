package handler

import (
	"fmt"
	"testing"
	"time"

	"github.com/frostlog/internal/config"
	"github.com/frostlog/internal/db"
	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func testConfig(t *testing.T) config.AppConfig {
	t.Helper()
	return config.AppConfig{
		JWTSecret:       "handler-test-secret",
		UploadDir:       t.TempDir(),
		UploadURLPath:   "/uploads",
		SiteBaseURL:     "http://localhost:3000",
		SiteName:        "测试博客",
		SiteDescription: "测试描述",
	}
}

func setupTestAPI(t *testing.T) (*API, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:frostlog-handler-%d?mode=memory&cache=shared", time.Now().UnixNano())
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := gdb.AutoMigrate(&db.User{}, &db.Post{}, &db.Category{}, &db.Tag{}, &db.Profile{}); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return NewAPI(gdb, testConfig(t)), gdb
}
