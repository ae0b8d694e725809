package usecases

import (
	"github.com/iwtcode/rotaprintAdapter/internal/config"
	"github.com/iwtcode/rotaprintAdapter/internal/interfaces"
)

// NewUsecases - конструктор для всех use case консоли
func NewUsecases(
	consoleSvc interfaces.ConsoleService,
	cfg *config.AppConfig,
) interfaces.Usecases {
	return NewUsecase(consoleSvc, cfg)
}
