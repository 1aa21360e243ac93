package router

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/frostlog/internal/config"
	"github.com/frostlog/internal/db"
	"github.com/frostlog/internal/handler"
	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:frostlog-router-%d?mode=memory&cache=shared", time.Now().UnixNano())
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
	if err := db.EnsureUser(gdb, "admin", "router-test"); err != nil {
		t.Fatalf("failed to seed admin user: %v", err)
	}

	cfg := config.AppConfig{
		JWTSecret:       "router-test-secret",
		UploadDir:       t.TempDir(),
		UploadURLPath:   "/uploads",
		SiteBaseURL:     "http://localhost:3000",
		SiteName:        "测试博客",
		SiteDescription: "测试描述",
	}

	return SetupRouter(handler.NewAPI(gdb, cfg), cfg)
}

func doJSON(t *testing.T, r *gin.Engine, method, target, token string, payload any) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if payload != nil {
		body, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("marshal payload: %v", err)
		}
		req = httptest.NewRequest(method, target, bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHealthEndpoint(t *testing.T) {
	r := setupTestRouter(t)

	w := doJSON(t, r, http.MethodGet, "/api/health", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
}

func TestAdminRoutesRequireToken(t *testing.T) {
	r := setupTestRouter(t)

	for _, target := range []string{"/api/admin/posts", "/api/admin/categories", "/api/admin/tags"} {
		method := http.MethodGet
		if target != "/api/admin/posts" {
			method = http.MethodPost
		}
		w := doJSON(t, r, method, target, "", nil)
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("%s %s: expected 401 without token, got %d", method, target, w.Code)
		}
	}
}

// 走完整的登录、建文、发布、公开读取链路
func TestPublishFlow(t *testing.T) {
	r := setupTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/auth/login", "", map[string]any{
		"username": "admin",
		"password": "router-test",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("login: expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var loginResp struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &loginResp); err != nil {
		t.Fatalf("unmarshal login response: %v", err)
	}
	token := loginResp.AccessToken
	if token == "" {
		t.Fatal("login returned empty token")
	}

	w = doJSON(t, r, http.MethodPost, "/api/admin/posts", token, map[string]any{
		"title":   "Router Flow",
		"content": "full stack round trip",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("create: expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var createResp struct {
		Data struct {
			ID uint `json:"id"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &createResp); err != nil {
		t.Fatalf("unmarshal create response: %v", err)
	}

	// 草稿对公开接口不可见
	w = doJSON(t, r, http.MethodGet, "/api/posts/slug/router-flow", "", nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("draft fetch: expected 404, got %d", w.Code)
	}

	target := fmt.Sprintf("/api/admin/posts/%d/publish", createResp.Data.ID)
	w = doJSON(t, r, http.MethodPost, target, token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("publish: expected 200, got %d: %s", w.Code, w.Body.String())
	}

	w = doJSON(t, r, http.MethodGet, "/api/posts/slug/router-flow", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("published fetch: expected 200, got %d: %s", w.Code, w.Body.String())
	}

	w = doJSON(t, r, http.MethodGet, "/sitemap.xml", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("sitemap: expected 200, got %d", w.Code)
	}
	if !bytes.Contains(w.Body.Bytes(), []byte("http://localhost:3000/post/router-flow")) {
		t.Fatalf("sitemap missing published post entry: %s", w.Body.String())
	}
}
