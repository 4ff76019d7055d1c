package handler

import (
	"github.com/gin-gonic/gin"

	"videoflow/internal/dto"
	"videoflow/internal/response"
	apperrors "videoflow/pkg/errors"
)

func (h *Handler) ParseScript(c *gin.Context) {
	var req dto.ParseScriptReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorResponse(c, apperrors.Wrap(apperrors.CodeInvalidParams, "Invalid parameters", err))
		return
	}

	svc, _ := h.stack()

	data, err := svc.ParseScript(req)
	if err != nil {
		response.ErrorResponse(c, err)
		return
	}
	response.Success(c, data)
}

func (h *Handler) RewriteScript(c *gin.Context) {
	var req dto.RewriteScriptReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorResponse(c, apperrors.Wrap(apperrors.CodeInvalidParams, "Invalid parameters", err))
		return
	}

	svc, _ := h.stack()

	data, err := svc.RewriteScript(c.Request.Context(), req)
	if err != nil {
		response.ErrorResponse(c, err)
		return
	}
	response.Success(c, data)
}
