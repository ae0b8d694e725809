package handlers

import (
	"net/http"
	"strconv"

	"github.com/iwtcode/rotaprintAdapter/internal/domain/models"

	"github.com/gin-gonic/gin"
)

// GetConnection возвращает состояние сессии консоли.
// @Summary Состояние соединения
// @Description Возвращает состояние websocket-соединения с бэкендом, текущую страницу и связь с прошивкой.
// @Tags Connection
// @Produce json
// @Success 200 {object} models.ConnectionResponse "Состояние сессии"
// @Failure 503 {object} models.ErrorResponse "Сессия остановлена"
// @Router /connect [get]
func (h *Handler) GetConnection(c *gin.Context) {
	info, err := h.usecase.GetConnection()
	if err != nil {
		h.AppError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.ConnectionResponse{Status: "ok", ConnectionInfo: info})
}

// Reconnect переподключается к бэкенду.
// @Summary Переподключиться
// @Description Закрывает текущее соединение и открывает новое. Стартовая цепочка запускается заново.
// @Tags Connection
// @Produce json
// @Success 200 {object} models.MessageResponse "Переподключение начато"
// @Failure 503 {object} models.ErrorResponse "Сессия остановлена"
// @Router /connect/reconnect [post]
func (h *Handler) Reconnect(c *gin.Context) {
	h.logger.Info("Operator requested reconnect")
	if err := h.usecase.Reconnect(); err != nil {
		h.AppError(c, err)
		return
	}
	h.OK(c, "Reconnecting")
}

// Navigate сообщает о переходе оператора на страницу.
// @Summary Сменить страницу
// @Description На странице monitor включается циклический опрос состояния станка.
// @Tags Connection
// @Accept json
// @Produce json
// @Param input body models.PageRequest true "Страница: overview или monitor"
// @Success 200 {object} models.MessageResponse "Страница изменена"
// @Failure 400 {object} models.ErrorResponse "Неверный формат запроса"
// @Failure 403 {object} models.ErrorResponse "Консоль открыта в другом месте"
// @Failure 422 {object} models.ErrorResponse "Неизвестная страница"
// @Router /page [post]
func (h *Handler) Navigate(c *gin.Context) {
	var req models.PageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err, "Invalid request payload")
		return
	}
	if err := h.usecase.Navigate(req.Page); err != nil {
		h.AppError(c, err)
		return
	}
	h.OK(c, "Page changed to "+req.Page)
}

// GetStatus возвращает последний снимок состояния станка.
// @Summary Состояние станка
// @Description Последний ответ GCS: положение осей, фаза работы, последняя ошибка.
// @Tags Status
// @Produce json
// @Success 200 {object} models.StatusResponse "Снимок состояния"
// @Failure 503 {object} models.ErrorResponse "Сессия остановлена"
// @Router /status [get]
func (h *Handler) GetStatus(c *gin.Context) {
	fields, err := h.usecase.GetStatus()
	if err != nil {
		h.AppError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.StatusResponse{Status: "ok", Fields: fields})
}

// GetNotifications возвращает уведомления оператора.
// @Summary Уведомления
// @Description Возвращает уведомления с номером больше after.
// @Tags Status
// @Produce json
// @Param after query int false "Номер последнего полученного уведомления"
// @Success 200 {object} models.NotificationsResponse "Уведомления"
// @Failure 400 {object} models.ErrorResponse "Неверный номер"
// @Router /notifications [get]
func (h *Handler) GetNotifications(c *gin.Context) {
	var after uint64
	if raw := c.Query("after"); raw != "" {
		v, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			h.BadRequest(c, err, "Invalid 'after' parameter")
			return
		}
		after = v
	}
	c.JSON(http.StatusOK, models.NotificationsResponse{
		Status:        "ok",
		Notifications: h.usecase.GetNotifications(after),
	})
}
