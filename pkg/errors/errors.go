package errors

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

const (
	InternalServerError = "internal server error"
	BadRequest          = "bad request"
	NotFound            = "not_found"
	Conflict            = "conflict"
	Unavailable         = "service unavailable"

	InvalidDataCode         = 422
	ConflictErrorCode       = 409
	ForbiddenErrorCode      = 403
	InternalServerErrorCode = 500
	NotFoundErrorCode       = 404
	UnavailableErrorCode    = 503
)

// AppError представляет собой стандартизированную структуру ошибки для API.
type AppError struct {
	Code         int    `json:"code"`    // HTTP статус код
	Message      string `json:"message"` // Сообщение для клиента
	Err          error  `json:"-"`       // Внутренняя ошибка, не для клиента
	IsUserFacing bool   `json:"-"`       // Флаг, указывающий, можно ли показывать `Err`
}

func (a *AppError) Error() string {
	if a == nil {
		return ""
	}
	if a.Err != nil {
		return fmt.Sprintf("%s (code: %d): %v", a.Message, a.Code, a.Err)
	}
	return fmt.Sprintf("%s (code: %d)", a.Message, a.Code)
}

func (a *AppError) Unwrap() error { return a.Err }

// NewAppError создает новый экземпляр AppError.
func NewAppError(httpCode int, message string, err error, isUserFacing bool) *AppError {
	return &AppError{
		Code:         httpCode,
		Message:      message,
		Err:          err,
		IsUserFacing: isUserFacing,
	}
}

var (
	ErrNotConnected  = errors.New("not connected")
	ErrAccessDenied  = errors.New("access denied: console already open elsewhere")
	ErrNothingToSend = errors.New("no changed settings to commit")
	ErrReviewNeeded  = errors.New("settings review required before commit")
	ErrUnknownKey    = errors.New("unknown setting key")
	ErrSessionClosed = errors.New("session closed")
)

// ProtocolError описывает конверт, который не удалось разобрать.
// Сообщение отбрасывается, соединение остается открытым.
type ProtocolError struct {
	Raw string
	Err error
}

func (e *ProtocolError) Error() string {
	raw := e.Raw
	if len(raw) > 64 {
		raw = raw[:64] + "..."
	}
	return fmt.Sprintf("malformed envelope %q: %v", raw, e.Err)
}

func (e *ProtocolError) Unwrap() error { return e.Err }

// ValidationError описывает недопустимое значение одного поля при проверке изменений.
type ValidationError struct {
	Key    string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("setting %s: %s", e.Key, e.Reason)
}

// ValidationErrors собирает ошибки по всем полям, не прошедшим проверку.
type ValidationErrors []*ValidationError

func (v ValidationErrors) Error() string {
	parts := make([]string, 0, len(v))
	for _, e := range v {
		parts = append(parts, e.Error())
	}
	return "invalid settings: " + strings.Join(parts, "; ")
}

// Keys возвращает ключи полей с ошибками в порядке обнаружения.
func (v ValidationErrors) Keys() []string {
	keys := make([]string, 0, len(v))
	for _, e := range v {
		keys = append(keys, e.Key)
	}
	return keys
}

// RemoteError - сервер ответил сентинелом ERROR на команду.
type RemoteError struct {
	Command string
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("remote error on command %s", e.Command)
}

// TransportError - сбой нижележащего соединения.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("transport %s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// ToAppError сопоставляет ошибку консоли HTTP-коду.
func ToAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}

	var verrs ValidationErrors
	var verr *ValidationError
	var terr *TransportError
	switch {
	case errors.As(err, &verrs), errors.As(err, &verr):
		return NewAppError(InvalidDataCode, "invalid data", err, true)
	case errors.Is(err, ErrAccessDenied):
		return NewAppError(ForbiddenErrorCode, "console is open elsewhere", err, true)
	case errors.Is(err, ErrUnknownKey):
		return NewAppError(NotFoundErrorCode, NotFound, err, true)
	case errors.Is(err, ErrReviewNeeded), errors.Is(err, ErrNothingToSend):
		return NewAppError(ConflictErrorCode, Conflict, err, true)
	case errors.Is(err, ErrNotConnected), errors.Is(err, ErrSessionClosed), errors.As(err, &terr):
		return NewAppError(UnavailableErrorCode, Unavailable, err, true)
	case errors.Is(err, context.DeadlineExceeded):
		return NewAppError(UnavailableErrorCode, "console did not respond in time", err, false)
	}
	return NewAppError(InternalServerErrorCode, InternalServerError, err, false)
}
