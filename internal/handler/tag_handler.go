package handler

import (
	"errors"
	"net/http"

	"github.com/frostlog/internal/service"
	"github.com/gin-gonic/gin"
)

type tagPayload struct {
	Name string `json:"name"`
}

// CreateTag 创建标签
func (a *API) CreateTag(c *gin.Context) {
	var payload tagPayload
	if !bindJSON(c, &payload, "无效的请求体") {
		return
	}

	tag, err := a.tags.Create(payload.Name)
	if err != nil {
		status, message := tagErrorStatus(err)
		respondError(c, status, message)
		return
	}

	respondData(c, tag)
}

// UpdateTag 重命名标签
func (a *API) UpdateTag(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "无效的标签ID")
		return
	}

	var payload tagPayload
	if !bindJSON(c, &payload, "无效的请求体") {
		return
	}

	tag, err := a.tags.Update(id, payload.Name)
	if err != nil {
		status, message := tagErrorStatus(err)
		respondError(c, status, message)
		return
	}

	respondData(c, tag)
}

// DeleteTag 删除标签
func (a *API) DeleteTag(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "无效的标签ID")
		return
	}

	if err := a.tags.Delete(id); err != nil {
		status, message := tagErrorStatus(err)
		respondError(c, status, message)
		return
	}

	respondMessage(c, "已删除")
}

func tagErrorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, service.ErrTagNotFound):
		return http.StatusNotFound, "标签不存在"
	case errors.Is(err, service.ErrTagName):
		return http.StatusBadRequest, "标签名称不能为空"
	case errors.Is(err, service.ErrTagExists):
		return http.StatusConflict, "标签已存在"
	default:
		return http.StatusInternalServerError, "服务器内部错误"
	}
}
