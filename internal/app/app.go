package app

import (
	"context"
	"net/http"
	"time"

	"github.com/iwtcode/rotaprintAdapter/internal/adapters/handlers"
	"github.com/iwtcode/rotaprintAdapter/internal/config"
	"github.com/iwtcode/rotaprintAdapter/internal/interfaces"
	"github.com/iwtcode/rotaprintAdapter/internal/middleware/logging"
	"github.com/iwtcode/rotaprintAdapter/internal/middleware/swagger"
	"github.com/iwtcode/rotaprintAdapter/internal/services/console_service"
	"github.com/iwtcode/rotaprintAdapter/internal/services/kafka"
	"github.com/iwtcode/rotaprintAdapter/internal/usecases"

	"go.uber.org/fx"
)

// New создает новый экземпляр fx.App
func New(opts *config.Options) *fx.App {
	return fx.New(
		fx.Supply(opts),
		ConfigModule,
		LoggingModule,
		ProducerModule,
		ServiceModule,
		UsecaseModule,
		HttpServerModule,
		// Invoke-функции для запуска фоновых задач и хуков жизненного цикла
		fx.Invoke(InvokeConsoleSession),
	)
}

// --- Модули FX ---

var ConfigModule = fx.Module("config_module",
	fx.Provide(config.LoadConfiguration),
)

func ProvideLogger(lc fx.Lifecycle, cfg *config.AppConfig) *logging.Logger {
	loggerCfg := &logging.Config{
		Enabled:    cfg.Logging.Enable,
		Level:      cfg.Logging.Level,
		LogsDir:    cfg.Logging.LogsDir,
		SavingDays: uint(cfg.Logging.SavingDays),
	}
	logger := logging.NewLogger(loggerCfg, "RotaprintConsole")
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return logger.Close()
		},
	})
	return logger
}

var LoggingModule = fx.Module("logging_module",
	fx.Provide(ProvideLogger),
)

func ProvideProducer(lc fx.Lifecycle, cfg *config.AppConfig, logger *logging.Logger) (interfaces.KafkaService, error) {
	producer, err := kafka.NewKafkaProducer(cfg, logger)
	if err != nil {
		return nil, err
	}
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			logger.Info("Closing Kafka producer...")
			return producer.Close()
		},
	})
	return producer, nil
}

var ProducerModule = fx.Module("producer_module",
	fx.Provide(
		ProvideProducer,
		kafka.NewEncoder,
	),
)

var ServiceModule = fx.Module("service_module",
	fx.Provide(console_service.NewConsoleService),
)

var UsecaseModule = fx.Module("usecases_module",
	fx.Provide(usecases.NewUsecases),
)

func NewSwaggerConfig(cfg *config.AppConfig) *swagger.Config {
	return &swagger.Config{
		Enabled: cfg.GinMode != "release",
		Path:    "/swagger",
		Host:    "localhost:" + cfg.ServerPort,
	}
}

var HttpServerModule = fx.Module("http_server_module",
	fx.Provide(
		NewSwaggerConfig,
		handlers.NewHandler,
		handlers.ProvideRouter,
	),
	fx.Invoke(InvokeHttpServer),
)

// InvokeConsoleSession открывает сессию консоли при старте и закрывает при остановке.
// Хук продюсера добавлен раньше, поэтому при остановке он выполняется после закрытия сессии
// и оставшиеся события успевают уйти.
func InvokeConsoleSession(lc fx.Lifecycle, consoleSvc interfaces.ConsoleService, cfg *config.AppConfig, logger *logging.Logger) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			logger.Info("Opening console session", "endpoint", cfg.Rotaprint.URL)
			return consoleSvc.Start(ctx)
		},
		OnStop: func(ctx context.Context) error {
			logger.Info("Closing console session...", "sessionID", consoleSvc.SessionID())
			return consoleSvc.Stop()
		},
	})
}

// InvokeHttpServer запускает HTTP-сервер.
func InvokeHttpServer(lc fx.Lifecycle, cfg *config.AppConfig, h http.Handler, logger *logging.Logger) {
	serverAddr := ":" + cfg.ServerPort
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      h,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			logger.Info("HTTP Server is starting", "address", serverAddr)
			go func() {
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					logger.Error("Failed to start server", "error", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Info("Stopping HTTP server...")
			return server.Shutdown(ctx)
		},
	})
}
