package middleware

import (
	"time"

	"github.com/labstack/echo/v4"

	"github.com/shrinkarr/shrinkarr/internal/config"
	"github.com/shrinkarr/shrinkarr/pkg/logger"
)

type MiddlewareManager struct {
	cfg     *config.Config
	origins []string
	logger  logger.Logger
}

func NewMiddlewareManager(cfg *config.Config, origins []string, logger logger.Logger) *MiddlewareManager {
	return &MiddlewareManager{cfg: cfg, origins: origins, logger: logger}
}

// RequestLoggerMiddleware logs method, path, status and latency per request.
func (mw *MiddlewareManager) RequestLoggerMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()
		err := next(c)
		req := c.Request()
		res := c.Response()
		mw.logger.Infof("%s %s, status: %d, latency: %s",
			req.Method, req.URL.Path, res.Status, time.Since(start))
		return err
	}
}
