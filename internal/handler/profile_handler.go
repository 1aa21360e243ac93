package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/frostlog/internal/service"
	"github.com/gin-gonic/gin"
)

// GetProfile 获取作者个人资料；尚未保存时返回默认资料
func (a *API) GetProfile(c *gin.Context) {
	profile, err := a.profiles.Get()
	if err != nil {
		if errors.Is(err, service.ErrProfileNotFound) {
			respondData(c, defaultProfile())
			return
		}
		respondError(c, http.StatusInternalServerError, "获取个人资料失败")
		return
	}
	respondData(c, profile)
}

// UpdateProfile 部分更新个人资料，最后写入生效
func (a *API) UpdateProfile(c *gin.Context) {
	var payload struct {
		Name       *string   `json:"name"`
		Avatar     *string   `json:"avatar"`
		Bio        *string   `json:"bio"`
		Email      *string   `json:"email"`
		Location   *string   `json:"location"`
		Website    *string   `json:"website"`
		Github     *string   `json:"github"`
		Twitter    *string   `json:"twitter"`
		Skills     *[]string `json:"skills"`
		Interests  *[]string `json:"interests"`
		Education  *string   `json:"education"`
		Occupation *string   `json:"occupation"`
	}
	if !bindJSON(c, &payload, "无效的请求体") {
		return
	}

	update := service.ProfileUpdate{
		Name:       payload.Name,
		Avatar:     payload.Avatar,
		Bio:        payload.Bio,
		Email:      payload.Email,
		Location:   payload.Location,
		Website:    payload.Website,
		Github:     payload.Github,
		Twitter:    payload.Twitter,
		Skills:     payload.Skills,
		Interests:  payload.Interests,
		Education:  payload.Education,
		Occupation: payload.Occupation,
	}

	if _, err := a.profiles.Update(update); err != nil {
		respondError(c, http.StatusInternalServerError, "更新个人资料失败")
		return
	}

	respondMessage(c, "个人资料更新成功")
}

// defaultProfile 在没有保存过资料时兜底返回的默认展示数据。
func defaultProfile() gin.H {
	return gin.H{
		"id":         1,
		"name":       "霜雪旧曾谙",
		"avatar":     "/avatar.jpg",
		"bio":        "计算机专业学生 | 二次元爱好者 | 海洋探索者 | 哲学思考者",
		"email":      "example@email.com",
		"location":   "中国",
		"website":    "https://example.com",
		"github":     "https://github.com/username",
		"twitter":    "https://twitter.com/username",
		"skills":     []string{"Vue.js", "Python", "Flask", "MySQL", "TypeScript", "Tailwind CSS"},
		"interests":  []string{"二次元", "海洋", "自然", "哲学", "技术分享"},
		"education":  "计算机科学与技术",
		"occupation": "学生",
		"updated_at": time.Now().UTC().Format(time.RFC3339),
	}
}
