package models

import (
	rpmodels "github.com/iwtcode/rotaprintAdapter/models"
)

// ErrorResponse представляет стандартный ответ с ошибкой.
type ErrorResponse struct {
	Status string `json:"status" example:"error"`
	Error  struct {
		Code    int      `json:"code" example:"503"`
		Message string   `json:"message" example:"Бэкенд недоступен"`
		Keys    []string `json:"keys,omitempty"`
	} `json:"error"`
}

// MessageResponse представляет стандартный успешный ответ с сообщением.
type MessageResponse struct {
	Status  string `json:"status" example:"ok"`
	Message string `json:"message" example:"Command HME sent"`
}

// ConnectionResponse - состояние сессии консоли.
type ConnectionResponse struct {
	Status         string          `json:"status" example:"ok"`
	ConnectionInfo *ConnectionInfo `json:"connection_info"`
}

// SettingsResponse - таблица настроек и несохраненные правки.
type SettingsResponse struct {
	Status   string            `json:"status" example:"ok"`
	Remote   map[string]string `json:"remote"`
	Draft    map[string]string `json:"draft"`
	Defaults map[string]string `json:"defaults"`
	Changed  []string          `json:"changed"`
	Pending  map[string]string `json:"pending,omitempty"`
}

// ReviewResponse - изменения, ожидающие подтверждения.
type ReviewResponse struct {
	Status string          `json:"status" example:"ok"`
	Review rpmodels.Review `json:"review"`
}

// StatusResponse - последний снимок состояния станка.
type StatusResponse struct {
	Status string            `json:"status" example:"ok"`
	Fields map[string]string `json:"fields"`
}

// LogsResponse - буфер журнала бэкенда.
type LogsResponse struct {
	Status   string              `json:"status" example:"ok"`
	Entries  []rpmodels.LogEntry `json:"entries"`
	Consumed int                 `json:"consumed"`
	Visible  bool                `json:"visible"`
}

// NotificationsResponse - последние уведомления оператора.
type NotificationsResponse struct {
	Status        string                 `json:"status" example:"ok"`
	Notifications []RecordedNotification `json:"notifications"`
}
