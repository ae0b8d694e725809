package models

import (
	"time"

	rpmodels "github.com/iwtcode/rotaprintAdapter/models"
)

// PageRequest - переход оператора на страницу консоли.
type PageRequest struct {
	Page string `json:"page" binding:"required" example:"monitor"`
}

// SettingValueRequest - новое значение поля настроек.
type SettingValueRequest struct {
	Value string `json:"value" example:"250"`
}

// VisibilityRequest открывает или скрывает панель журнала.
type VisibilityRequest struct {
	Visible *bool `json:"visible" binding:"required" example:"true"`
}

// ViewportRequest - геометрия панели журнала.
type ViewportRequest struct {
	ScrollTop    float64 `json:"scroll_top" example:"950"`
	ScrollHeight float64 `json:"scroll_height" example:"1400"`
	ClientHeight float64 `json:"client_height" example:"400"`
}

// BatchRequest выбирает позицию партии.
type BatchRequest struct {
	Batch *int `json:"batch" binding:"required" example:"2"`
}

// RawCommandRequest - строка для прошивки.
type RawCommandRequest struct {
	Command string `json:"command" binding:"required" example:"$H"`
}

// RotateRequest - положение детали по оси Y.
type RotateRequest struct {
	Position *float64 `json:"position" binding:"required" example:"12.5"`
}

// GCodeRequest - программа для загрузки.
type GCodeRequest struct {
	Program string `json:"program" binding:"required" example:"G21\nG90\nG0X0Y0"`
}

// ManualCommandRequest - произвольная известная команда бэкенда.
type ManualCommandRequest struct {
	Command string `json:"command" binding:"required" example:"ECO"`
	Payload string `json:"payload" example:"ping"`
}

// PrinterState - связь бэкенда с прошивкой.
type PrinterState struct {
	Connected bool `json:"connected"`
	Known     bool `json:"known"`
}

// ConnectionInfo описывает сессию консоли.
type ConnectionInfo struct {
	SessionID string        `json:"session_id"`
	Endpoint  string        `json:"endpoint"`
	State     string        `json:"state" example:"open"`
	Page      rpmodels.Page `json:"page" example:"overview"`
	Printer   PrinterState  `json:"printer"`
}

// RecordedNotification - уведомление, показанное оператору.
type RecordedNotification struct {
	ID        uint64                `json:"id"`
	CreatedAt time.Time             `json:"created_at"`
	Notice    rpmodels.Notification `json:"notification"`
}
