package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/frostlog/internal/service"
	"github.com/gin-gonic/gin"
)

const principalContextKey = "__principal"

// Login 校验管理员凭证并签发访问令牌
func (a *API) Login(c *gin.Context) {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if !bindJSON(c, &req, "无效的请求体") {
		return
	}

	if strings.TrimSpace(req.Username) == "" || req.Password == "" {
		respondError(c, http.StatusBadRequest, "用户名或密码不能为空")
		return
	}

	token, user, err := a.auth.Login(req.Username, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			respondError(c, http.StatusUnauthorized, "用户名或密码错误")
			return
		}
		respondError(c, http.StatusInternalServerError, "登录失败")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"access_token": token,
		"user": gin.H{
			"username": user.Username,
			"role":     user.Role,
		},
	})
}

// AuthRequired 校验 Bearer 访问令牌的认证中间件。
// 未认证返回 401，非管理员角色返回 403，核心逻辑不会被触达。
func (a *API) AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			respondError(c, http.StatusUnauthorized, "Unauthorized")
			c.Abort()
			return
		}

		claims, err := a.auth.VerifyToken(strings.TrimSpace(header[len("Bearer "):]))
		if err != nil {
			if errors.Is(err, service.ErrTokenExpired) {
				respondError(c, http.StatusUnauthorized, "Token expired")
			} else {
				respondError(c, http.StatusUnauthorized, "Invalid token")
			}
			c.Abort()
			return
		}

		if claims.Role != "admin" {
			respondError(c, http.StatusForbidden, "Forbidden")
			c.Abort()
			return
		}

		c.Set(principalContextKey, claims)
		c.Next()
	}
}
