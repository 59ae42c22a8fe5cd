package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"itemtracker/internal/config"
	"itemtracker/internal/handler"
	mw "itemtracker/internal/middleware"
	"itemtracker/internal/validator"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
)

// Routes is anything that mounts endpoints on the echo instance.
type Routes interface {
	RegisterRoutes(e *echo.Echo)
}

// New builds the echo instance with the shared middleware stack and
// registers every handler in routes.
func New(cfg config.Config, routes ...Routes) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Logger.SetLevel(LogLevel(cfg.LogLevel))
	e.Logger.SetHeader(`{"time":"${time_rfc3339}","level":"${level}","prefix":"${prefix}"}`)

	e.JSONSerializer = handler.JSONSerializer{}
	e.Validator = handler.NewRequestValidator(validator.New())
	e.HTTPErrorHandler = handler.HTTPErrorHandler

	// /items/ and /items are the same resource
	e.Pre(middleware.RemoveTrailingSlash())

	e.Use(middleware.Recover())
	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(mw.AccessLog())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: cfg.CORSAllowOrigins,
		AllowMethods: []string{
			http.MethodGet, http.MethodPost, http.MethodPut,
			http.MethodPatch, http.MethodDelete, http.MethodOptions,
		},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept},
	}))
	e.Use(mw.RequireJSON())

	for _, r := range routes {
		r.RegisterRoutes(e)
	}

	return e
}

// Run serves until ctx is cancelled, then drains in-flight requests for at
// most grace.
func Run(ctx context.Context, e *echo.Echo, addr string, grace time.Duration) error {
	errCh := make(chan error, 1)
	go func() {
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), grace)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}

// LogLevel maps LOG_LEVEL onto gommon's levels.
func LogLevel(level string) log.Lvl {
	switch level {
	case "debug":
		return log.DEBUG
	case "warn":
		return log.WARN
	case "error":
		return log.ERROR
	default:
		return log.INFO
	}
}
