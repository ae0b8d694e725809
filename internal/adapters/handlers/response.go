package handlers

import (
	"errors"
	"net/http"

	apperrors "github.com/iwtcode/rotaprintAdapter/pkg/errors"

	"github.com/gin-gonic/gin"
)

// ErrorResponse возвращает стандартизированный ответ с ошибкой
func (h *Handler) ErrorResponse(c *gin.Context, err error, statusCode int, message string, showError bool) {
	errorMessage := message
	if showError && err != nil {
		errorMessage = message + ": " + err.Error()
	}

	body := gin.H{
		"code":    statusCode,
		"message": errorMessage,
	}
	var verrs apperrors.ValidationErrors
	if errors.As(err, &verrs) {
		body["keys"] = verrs.Keys()
	}

	h.logger.Error(message, "error", err, "statusCode", statusCode)
	c.AbortWithStatusJSON(statusCode, gin.H{
		"status": "error",
		"error":  body,
	})
}

// BadRequest возвращает ошибку 400
func (h *Handler) BadRequest(c *gin.Context, err error, message string) {
	if message == "" {
		message = apperrors.BadRequest
	}
	h.ErrorResponse(c, err, http.StatusBadRequest, message, true)
}

// InternalError возвращает ошибку 500
func (h *Handler) InternalError(c *gin.Context, err error) {
	h.ErrorResponse(c, err, http.StatusInternalServerError, apperrors.InternalServerError, false)
}

// NotFound возвращает ошибку 404
func (h *Handler) NotFound(c *gin.Context, err error) {
	h.ErrorResponse(c, err, http.StatusNotFound, apperrors.NotFound, true)
}

// AppError возвращает ответ по классу ошибки консоли
func (h *Handler) AppError(c *gin.Context, err error) {
	appErr := apperrors.ToAppError(err)
	h.ErrorResponse(c, err, appErr.Code, appErr.Message, appErr.IsUserFacing)
}

// OK возвращает успешный ответ с сообщением
func (h *Handler) OK(c *gin.Context, message string) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "message": message})
}
