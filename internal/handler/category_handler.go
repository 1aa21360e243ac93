package handler

import (
	"errors"
	"net/http"

	"github.com/frostlog/internal/service"
	"github.com/gin-gonic/gin"
)

type categoryPayload struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// CreateCategory 创建分类
func (a *API) CreateCategory(c *gin.Context) {
	var payload categoryPayload
	if !bindJSON(c, &payload, "无效的请求体") {
		return
	}

	category, err := a.categories.Create(payload.Name, payload.Description)
	if err != nil {
		status, message := categoryErrorStatus(err)
		respondError(c, status, message)
		return
	}

	respondData(c, category)
}

// UpdateCategory 更新分类
func (a *API) UpdateCategory(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "无效的分类ID")
		return
	}

	var payload categoryPayload
	if !bindJSON(c, &payload, "无效的请求体") {
		return
	}

	category, err := a.categories.Update(id, payload.Name, payload.Description)
	if err != nil {
		status, message := categoryErrorStatus(err)
		respondError(c, status, message)
		return
	}

	respondData(c, category)
}

// DeleteCategory 删除分类
func (a *API) DeleteCategory(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "无效的分类ID")
		return
	}

	if err := a.categories.Delete(id); err != nil {
		status, message := categoryErrorStatus(err)
		respondError(c, status, message)
		return
	}

	respondMessage(c, "已删除")
}

func categoryErrorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, service.ErrCategoryNotFound):
		return http.StatusNotFound, "分类不存在"
	case errors.Is(err, service.ErrCategoryName):
		return http.StatusBadRequest, "分类名称不能为空"
	case errors.Is(err, service.ErrCategoryExists):
		return http.StatusConflict, "分类已存在"
	default:
		return http.StatusInternalServerError, "服务器内部错误"
	}
}
