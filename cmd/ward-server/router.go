package main

import (
	"net/http"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"

	"github.com/ward/ward/internal/config"
	"github.com/ward/ward/internal/domain/clinician"
	"github.com/ward/ward/internal/domain/patient"
	"github.com/ward/ward/internal/domain/task"
	"github.com/ward/ward/internal/platform/middleware"
)

const version = "0.1.0"

type services struct {
	users    *clinician.Service
	patients *patient.Service
	tasks    *task.Service
}

// newRouter builds the HTTP surface. dbHealth may be nil when no pool is
// available.
func newRouter(cfg *config.Config, logger zerolog.Logger, svc services, dbHealth echo.HandlerFunc) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = middleware.ErrorHandler(e)

	// Global middleware
	e.Use(middleware.Recovery(logger))
	e.Use(middleware.RequestID())
	e.Use(middleware.Logger(logger))
	e.Use(middleware.SecurityHeaders())
	e.Use(middleware.RequestTimeout(cfg.RequestTimeout))
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: cfg.CORSOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodOptions},
		AllowHeaders: []string{"Content-Type", middleware.RequestIDHeader},
	}))

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"status":  "ok",
			"version": version,
		})
	})
	if dbHealth != nil {
		e.GET("/health/db", dbHealth)
	}

	root := e.Group("")
	clinician.NewHandler(svc.users).RegisterRoutes(root)
	patient.NewHandler(svc.patients).RegisterRoutes(root)
	task.NewHandler(svc.tasks).RegisterRoutes(root)

	return e
}
