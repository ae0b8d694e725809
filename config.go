package rotaprint

import (
	"os"
	"strconv"
	"time"

	"github.com/iwtcode/rotaprintAdapter/models"
)

// Config хранит модель конфигурации клиента
type Config struct {
	URL         string
	DialTimeout time.Duration
	Page        models.Page
	LogLevel    string
}

// Load загружает конфигурацию из переменных окружения
func Load() *Config {
	url := os.Getenv("ROTAPRINT_URL")
	if url == "" {
		url = "ws://localhost:8765"
	}

	timeoutStr := os.Getenv("ROTAPRINT_DIAL_TIMEOUT")
	timeout, err := strconv.ParseInt(timeoutStr, 10, 32)
	if err != nil || timeout <= 0 {
		timeout = 5000
	}

	page := models.Page(os.Getenv("ROTAPRINT_PAGE"))
	if !page.Valid() {
		page = models.PageOverview
	}

	logLevel := os.Getenv("LOG_LEVEL")
	if logLevel == "" {
		logLevel = "info"
	}

	return &Config{
		URL:         url,
		DialTimeout: time.Duration(timeout) * time.Millisecond,
		Page:        page,
		LogLevel:    logLevel,
	}
}
