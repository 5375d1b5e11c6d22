package server

import (
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mohammad-safakhou/loopcast/models"
)

// Server is the daemon's ops endpoint: health, prometheus metrics, and the
// status of the most recent run.
type Server struct {
	echo   *echo.Echo
	logger *log.Logger

	mu          sync.RWMutex
	lastEpisode *models.Episode
	lastError   string
	lastRunAt   time.Time
}

func New() *Server {
	s := &Server{
		logger: log.New(log.Writer(), "[HTTP] ", log.LstdFlags),
	}

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.HTTPErrorHandler = func(err error, c echo.Context) {
		code := http.StatusInternalServerError
		msg := err.Error()
		if he, ok := err.(*echo.HTTPError); ok {
			code = he.Code
			if he.Message != nil {
				msg = fmt.Sprint(he.Message)
			}
		}
		req := c.Request()
		s.logger.Printf("%d %s %s from %s: %v", code, req.Method, req.URL.Path, c.RealIP(), err)
		if !c.Response().Committed {
			_ = c.JSON(code, map[string]interface{}{"error": msg})
		}
	}

	e.GET("/healthz", func(c echo.Context) error { return c.String(http.StatusOK, "ok") })
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	e.GET("/status", s.handleStatus)

	s.echo = e
	return s
}

// RecordRun stores the outcome of the latest run for /status.
func (s *Server) RecordRun(episode *models.Episode, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lastRunAt = time.Now()
	if err != nil {
		s.lastError = err.Error()
		return
	}
	s.lastError = ""
	s.lastEpisode = episode
}

func (s *Server) handleStatus(c echo.Context) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	resp := map[string]interface{}{
		"last_run_at": s.lastRunAt,
	}
	if s.lastError != "" {
		resp["last_error"] = s.lastError
	}
	if s.lastEpisode != nil {
		resp["last_episode"] = s.lastEpisode
	}
	return c.JSON(http.StatusOK, resp)
}

// Start blocks serving on addr.
func (s *Server) Start(addr string) error {
	return s.echo.Start(addr)
}
