package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/profitpulse/shop-sync-service/internal/delivery/http/handlers"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Server struct {
	echo             *echo.Echo
	syncHandler      *handlers.SyncHandler
	analyticsHandler *handlers.AnalyticsHandler
}

func NewServer(syncHandler *handlers.SyncHandler, analyticsHandler *handlers.AnalyticsHandler) *Server {
	e := echo.New()
	e.HideBanner = true

	e.Use(middleware.RequestLogger())
	e.Use(middleware.Recover())

	s := &Server{
		echo:             e,
		syncHandler:      syncHandler,
		analyticsHandler: analyticsHandler,
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.echo.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})
	s.echo.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	s.echo.POST("/sync/reap", s.syncHandler.ReapGhosts)
	s.echo.POST("/sync/:storeID/start", s.syncHandler.StartSync)
	s.echo.POST("/sync/:storeID/stop", s.syncHandler.StopSync)
	s.echo.POST("/sync/:storeID/backfill", s.syncHandler.BackfillRefunds)
	s.echo.GET("/sync/:storeID/status", s.syncHandler.GetStatus)

	s.echo.GET("/stores/:storeID/summary", s.analyticsHandler.GetSummary)
}

func (s *Server) Start(address string) error {
	return s.echo.Start(address)
}

func (s *Server) Shutdown() error {
	return s.echo.Close()
}
