package handlers

import (
	"errors"
	"net/http"

	"github.com/iwtcode/rotaprintAdapter/internal/domain/models"
	apperrors "github.com/iwtcode/rotaprintAdapter/pkg/errors"

	"github.com/gin-gonic/gin"
)

// GetSettings возвращает таблицу настроек.
// @Summary Настройки
// @Description Значения бэкенда, черновик оператора, заводские значения и список измененных ключей.
// @Tags Settings
// @Produce json
// @Success 200 {object} models.SettingsResponse "Таблица настроек"
// @Failure 503 {object} models.ErrorResponse "Сессия остановлена"
// @Router /settings [get]
func (h *Handler) GetSettings(c *gin.Context) {
	resp, err := h.usecase.GetSettings()
	if err != nil {
		h.AppError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// FetchSettings запрашивает таблицу у бэкенда.
// @Summary Обновить настройки
// @Tags Settings
// @Produce json
// @Success 200 {object} models.MessageResponse "Запрос отправлен"
// @Failure 503 {object} models.ErrorResponse "Нет соединения"
// @Router /settings/fetch [post]
func (h *Handler) FetchSettings(c *gin.Context) {
	if err := h.usecase.FetchSettings(); err != nil {
		h.AppError(c, err)
		return
	}
	h.OK(c, "Settings requested")
}

// EditSetting меняет значение поля в черновике.
// @Summary Изменить поле
// @Tags Settings
// @Accept json
// @Produce json
// @Param key path string true "Ключ настройки"
// @Param input body models.SettingValueRequest true "Новое значение"
// @Success 200 {object} models.MessageResponse "Поле изменено"
// @Failure 400 {object} models.ErrorResponse "Неверный формат запроса"
// @Router /settings/{key} [put]
func (h *Handler) EditSetting(c *gin.Context) {
	var req models.SettingValueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err, "Invalid request payload")
		return
	}
	key := c.Param("key")
	if err := h.usecase.EditSetting(key, req.Value); err != nil {
		h.AppError(c, err)
		return
	}
	h.OK(c, "Setting "+key+" edited")
}

// ResetSetting возвращает полю заводское значение.
// @Summary Сбросить поле
// @Tags Settings
// @Produce json
// @Param key path string true "Ключ настройки"
// @Success 200 {object} models.MessageResponse "Поле сброшено"
// @Failure 404 {object} models.ErrorResponse "Нет заводского значения для ключа"
// @Router /settings/{key}/default [post]
func (h *Handler) ResetSetting(c *gin.Context) {
	key := c.Param("key")
	if err := h.usecase.ResetSetting(key); err != nil {
		h.AppError(c, err)
		return
	}
	h.OK(c, "Setting "+key+" reset to default")
}

// ReviewSettings снимает копию изменений для подтверждения.
// @Summary Проверить изменения
// @Description Возвращает таблицу изменений. При недопустимых значениях отвечает 422, таблица в ответе сохраняется.
// @Tags Settings
// @Produce json
// @Success 200 {object} models.ReviewResponse "Изменения можно подтвердить"
// @Failure 409 {object} models.ErrorResponse "Нет изменений"
// @Failure 422 {object} models.ReviewResponse "Есть недопустимые значения"
// @Router /settings/review [post]
func (h *Handler) ReviewSettings(c *gin.Context) {
	review, err := h.usecase.ReviewSettings()
	var verrs apperrors.ValidationErrors
	if errors.As(err, &verrs) {
		h.logger.Warn("Review has invalid fields", "keys", verrs.Keys())
		c.JSON(apperrors.InvalidDataCode, models.ReviewResponse{Status: "invalid", Review: review})
		return
	}
	if err != nil {
		h.AppError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.ReviewResponse{Status: "ok", Review: review})
}

// ConfirmSettings записывает проверенные изменения.
// @Summary Подтвердить изменения
// @Tags Settings
// @Produce json
// @Success 200 {object} models.MessageResponse "Изменения отправлены"
// @Failure 409 {object} models.ErrorResponse "Сначала нужна проверка"
// @Failure 503 {object} models.ErrorResponse "Нет соединения"
// @Router /settings/confirm [post]
func (h *Handler) ConfirmSettings(c *gin.Context) {
	if err := h.usecase.ConfirmSettings(); err != nil {
		h.AppError(c, err)
		return
	}
	h.OK(c, "Settings sent")
}

// CancelReview отменяет проверку.
// @Summary Отменить проверку
// @Tags Settings
// @Produce json
// @Success 200 {object} models.MessageResponse "Проверка отменена"
// @Router /settings/cancel [post]
func (h *Handler) CancelReview(c *gin.Context) {
	if err := h.usecase.CancelReview(); err != nil {
		h.AppError(c, err)
		return
	}
	h.OK(c, "Review cancelled")
}

// DiscardEdits отбрасывает черновик.
// @Summary Отбросить правки
// @Tags Settings
// @Produce json
// @Success 200 {object} models.MessageResponse "Правки отброшены"
// @Router /settings/discard [post]
func (h *Handler) DiscardEdits(c *gin.Context) {
	if err := h.usecase.DiscardEdits(); err != nil {
		h.AppError(c, err)
		return
	}
	h.OK(c, "Edits discarded")
}
