package handlers

import (
	"fmt"
	"strconv"

	"github.com/iwtcode/rotaprintAdapter/internal/domain/models"
	rpmodels "github.com/iwtcode/rotaprintAdapter/models"

	"github.com/gin-gonic/gin"
)

// MachineAction отправляет станку команду без параметров.
// @Summary Команда станку
// @Description home - цикл поиска нуля, hold/release - пауза и продолжение, lighting - подсветка, reconnect - переподключение прошивки.
// @Tags Machine
// @Produce json
// @Param action path string true "home, hold, release, lighting или reconnect"
// @Success 200 {object} models.MessageResponse "Команда отправлена"
// @Failure 422 {object} models.ErrorResponse "Неизвестное действие"
// @Failure 503 {object} models.ErrorResponse "Нет соединения"
// @Router /machine/{action} [post]
func (h *Handler) MachineAction(c *gin.Context) {
	action := c.Param("action")
	h.logger.Info("Machine action requested", "action", action)
	if err := h.usecase.MachineAction(action); err != nil {
		h.AppError(c, err)
		return
	}
	h.OK(c, "Action "+action+" sent")
}

// ChangeBatch выбирает позицию партии.
// @Summary Позиция партии
// @Tags Machine
// @Accept json
// @Produce json
// @Param input body models.BatchRequest true "Позиция от -1 до 4"
// @Success 200 {object} models.MessageResponse "Команда отправлена"
// @Failure 422 {object} models.ErrorResponse "Позиция вне диапазона"
// @Router /machine/batch [post]
func (h *Handler) ChangeBatch(c *gin.Context) {
	var req models.BatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err, "Invalid request payload")
		return
	}
	if err := h.usecase.ChangeBatch(*req.Batch); err != nil {
		h.AppError(c, err)
		return
	}
	h.OK(c, "Batch "+strconv.Itoa(*req.Batch)+" selected")
}

// RawCommand отправляет строку прошивке.
// @Summary Строка для прошивки
// @Tags Machine
// @Accept json
// @Produce json
// @Param input body models.RawCommandRequest true "Команда"
// @Success 200 {object} models.MessageResponse "Команда отправлена"
// @Failure 400 {object} models.ErrorResponse "Неверный формат запроса"
// @Router /machine/raw [post]
func (h *Handler) RawCommand(c *gin.Context) {
	var req models.RawCommandRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err, "Invalid request payload")
		return
	}
	if err := h.usecase.RawCommand(req.Command); err != nil {
		h.AppError(c, err)
		return
	}
	h.OK(c, "Command sent")
}

// RotateTo поворачивает деталь по оси Y.
// @Summary Повернуть деталь
// @Tags Machine
// @Accept json
// @Produce json
// @Param input body models.RotateRequest true "Положение"
// @Success 200 {object} models.MessageResponse "Команда отправлена"
// @Failure 400 {object} models.ErrorResponse "Неверный формат запроса"
// @Router /machine/rotate [post]
func (h *Handler) RotateTo(c *gin.Context) {
	var req models.RotateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err, "Invalid request payload")
		return
	}
	if err := h.usecase.RotateTo(*req.Position); err != nil {
		h.AppError(c, err)
		return
	}
	h.OK(c, fmt.Sprintf("Rotating to %g", *req.Position))
}

// SubmitGCode загружает программу на бэкенд.
// @Summary Загрузить G-код
// @Tags Machine
// @Accept json
// @Produce json
// @Param input body models.GCodeRequest true "Программа"
// @Success 200 {object} models.MessageResponse "Программа отправлена"
// @Failure 400 {object} models.ErrorResponse "Неверный формат запроса"
// @Failure 422 {object} models.ErrorResponse "Пустая программа"
// @Router /machine/gcode [post]
func (h *Handler) SubmitGCode(c *gin.Context) {
	var req models.GCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err, "Invalid request payload")
		return
	}
	if err := h.usecase.SubmitGCode(req.Program); err != nil {
		h.AppError(c, err)
		return
	}
	h.OK(c, "Program sent")
}

// Print запускает печать.
// @Summary Печать
// @Description Отправляет параметры задания (SET) и команду печати (PRN).
// @Tags Machine
// @Accept json
// @Produce json
// @Param input body rpmodels.PrintOptions true "Параметры задания"
// @Success 200 {object} models.MessageResponse "Задание отправлено"
// @Failure 400 {object} models.ErrorResponse "Неверный формат запроса"
// @Failure 422 {object} models.ErrorResponse "Недопустимые параметры"
// @Router /machine/print [post]
func (h *Handler) Print(c *gin.Context) {
	var req rpmodels.PrintOptions
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err, "Invalid request payload")
		return
	}
	h.logger.Info("Print requested", "radius", req.Radius, "length", req.Length, "batch", req.Batch)
	if err := h.usecase.Print(req); err != nil {
		h.AppError(c, err)
		return
	}
	h.OK(c, "Print job sent")
}

// Manual отправляет произвольную известную команду бэкенда.
// @Summary Ручная команда
// @Tags Machine
// @Accept json
// @Produce json
// @Param input body models.ManualCommandRequest true "Команда и нагрузка"
// @Success 200 {object} models.MessageResponse "Команда отправлена"
// @Failure 422 {object} models.ErrorResponse "Неизвестная команда"
// @Router /machine/command [post]
func (h *Handler) Manual(c *gin.Context) {
	var req models.ManualCommandRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err, "Invalid request payload")
		return
	}
	if err := h.usecase.Manual(req.Command, req.Payload); err != nil {
		h.AppError(c, err)
		return
	}
	h.OK(c, "Command "+req.Command+" sent")
}
