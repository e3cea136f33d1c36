package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/meharshjain/leave-approval-system/internal/shared/apperror"
	"github.com/meharshjain/leave-approval-system/internal/shared/response"
)

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("auth.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("auth.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		mapped := apperror.ToHTTP(apperror.MapValidationError(err))
		response.Error(c, mapped.Status, mapped.Code, mapped.Message, nil)
		return
	}

	pair, me, err := h.service.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		httpErr := apperror.ToHTTP(err)
		h.logger.Warn("login failed", zap.String("email", req.Email), zap.String("code", httpErr.Code))
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, nil)
		return
	}

	c.SetCookie("access_token", pair.AccessToken, 15*60, "/", "", false, true)

	response.Success(c, http.StatusOK, gin.H{
		"tokens": pair,
		"user":   me,
	}, nil)
}

func (h *Handler) Refresh(c *gin.Context) {
	var req RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		mapped := apperror.ToHTTP(apperror.MapValidationError(err))
		response.Error(c, mapped.Status, mapped.Code, mapped.Message, nil)
		return
	}

	pair, me, err := h.service.RefreshToken(c.Request.Context(), req.RefreshToken)
	if err != nil {
		httpErr := apperror.ToHTTP(err)
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, nil)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"tokens": pair,
		"user":   me,
	}, nil)
}

func (h *Handler) Me(c *gin.Context) {
	me, err := h.service.GetMe(c.Request.Context(), c.GetString("employee_id"))
	if err != nil {
		httpErr := apperror.ToHTTP(err)
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, nil)
		return
	}

	response.Success(c, http.StatusOK, me, nil)
}
