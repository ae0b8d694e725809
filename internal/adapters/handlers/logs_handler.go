package handlers

import (
	"net/http"

	"github.com/iwtcode/rotaprintAdapter/internal/domain/models"

	"github.com/gin-gonic/gin"
)

// GetLogs возвращает буфер журнала бэкенда.
// @Summary Журнал
// @Tags Logs
// @Produce json
// @Success 200 {object} models.LogsResponse "Строки журнала"
// @Failure 503 {object} models.ErrorResponse "Сессия остановлена"
// @Router /logs [get]
func (h *Handler) GetLogs(c *gin.Context) {
	resp, err := h.usecase.GetLogs()
	if err != nil {
		h.AppError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// SetLogVisible открывает или скрывает панель журнала.
// @Summary Видимость журнала
// @Description Пока панель скрыта, журнал не запрашивается.
// @Tags Logs
// @Accept json
// @Produce json
// @Param input body models.VisibilityRequest true "Видимость панели"
// @Success 200 {object} models.MessageResponse "Видимость изменена"
// @Failure 400 {object} models.ErrorResponse "Неверный формат запроса"
// @Router /logs/visibility [post]
func (h *Handler) SetLogVisible(c *gin.Context) {
	var req models.VisibilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err, "Invalid request payload")
		return
	}
	if err := h.usecase.SetLogVisible(*req.Visible); err != nil {
		h.AppError(c, err)
		return
	}
	if *req.Visible {
		h.OK(c, "Log panel shown")
		return
	}
	h.OK(c, "Log panel hidden")
}

// UpdateLogViewport передает геометрию панели журнала.
// @Summary Прокрутка журнала
// @Description Если панель прокручена к низу, новые строки прокручивают ее автоматически.
// @Tags Logs
// @Accept json
// @Produce json
// @Param input body models.ViewportRequest true "Геометрия панели"
// @Success 200 {object} models.MessageResponse "Геометрия принята"
// @Failure 400 {object} models.ErrorResponse "Неверный формат запроса"
// @Router /logs/viewport [post]
func (h *Handler) UpdateLogViewport(c *gin.Context) {
	var req models.ViewportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err, "Invalid request payload")
		return
	}
	if err := h.usecase.UpdateLogViewport(req); err != nil {
		h.AppError(c, err)
		return
	}
	h.OK(c, "Viewport updated")
}
