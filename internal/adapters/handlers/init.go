package handlers

import (
	"net/http"

	"github.com/iwtcode/rotaprintAdapter/internal/config"
	"github.com/iwtcode/rotaprintAdapter/internal/interfaces"
	"github.com/iwtcode/rotaprintAdapter/internal/middleware/logging"
	"github.com/iwtcode/rotaprintAdapter/internal/middleware/swagger"

	"github.com/gin-gonic/gin"
)

// Handler - структура для обработчиков HTTP-запросов
type Handler struct {
	usecase interfaces.Usecases
	logger  *logging.Logger
}

// NewHandler создает новый экземпляр Handler
func NewHandler(usecase interfaces.Usecases, logger *logging.Logger) *Handler {
	return &Handler{
		usecase: usecase,
		logger:  logger.WithPrefix("HANDLER"),
	}
}

// ProvideRouter настраивает и возвращает HTTP-роутер
func ProvideRouter(h *Handler, cfg *config.AppConfig, swagCfg *swagger.Config) http.Handler {
	gin.SetMode(cfg.GinMode)

	router := gin.New()
	router.Use(gin.Recovery())

	// Swagger
	swagger.Setup(router, swagCfg)

	// Logger Middleware
	router.Use(LoggingMiddleware(h.logger))

	// Группа API v1
	v1 := router.Group("/api/v1")
	{
		connection := v1.Group("/connect")
		{
			connection.GET("", h.GetConnection)
			connection.POST("/reconnect", h.Reconnect)
		}

		v1.POST("/page", h.Navigate)
		v1.GET("/status", h.GetStatus)
		v1.GET("/notifications", h.GetNotifications)

		settings := v1.Group("/settings")
		{
			settings.GET("", h.GetSettings)
			settings.POST("/fetch", h.FetchSettings)
			settings.PUT("/:key", h.EditSetting)
			settings.POST("/:key/default", h.ResetSetting)
			settings.POST("/review", h.ReviewSettings)
			settings.POST("/confirm", h.ConfirmSettings)
			settings.POST("/cancel", h.CancelReview)
			settings.POST("/discard", h.DiscardEdits)
		}

		logs := v1.Group("/logs")
		{
			logs.GET("", h.GetLogs)
			logs.POST("/visibility", h.SetLogVisible)
			logs.POST("/viewport", h.UpdateLogViewport)
		}

		machine := v1.Group("/machine")
		{
			machine.POST("/:action", h.MachineAction)
			machine.POST("/batch", h.ChangeBatch)
			machine.POST("/raw", h.RawCommand)
			machine.POST("/rotate", h.RotateTo)
			machine.POST("/gcode", h.SubmitGCode)
			machine.POST("/print", h.Print)
			machine.POST("/command", h.Manual)
		}
	}

	return router
}
