package echoapi

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"

	"github.com/mergington/highschool/core"
	"github.com/mergington/highschool/core/activity"
	"github.com/mergington/highschool/core/announcement"
	"github.com/mergington/highschool/core/teacher"
	"github.com/mergington/highschool/services/metrics"
)

type (
	Options struct {
		Addr           string
		Debug          bool
		TestMode       bool
		DisableReqLogs bool
		Logger         core.Logger

		// SignalShutdown is called when a handler returns a shutdown error;
		// the owner is expected to stop the server.
		SignalShutdown func()

		// Healthcheck backs /healthz; usually the DB ping. nil means always healthy.
		Healthcheck func(ctx context.Context) error

		TeacherSvc      *teacher.Service
		ActivitySvc     *activity.Service
		AnnouncementSvc *announcement.Service
	}

	Server interface {
		http.Handler
		Start()
		Stop(context.Context) error
	}

	server struct {
		opts *Options
		app  *echo.Echo
	}
)

var _ Server = (*server)(nil)

func NewServer(opts *Options) Server {
	if opts.SignalShutdown == nil {
		opts.SignalShutdown = func() {}
	}
	s := &server{
		opts: opts,
		app:  echo.New(),
	}
	s.setup()
	return s
}

func (s *server) setup() {
	s.app.Pre(middleware.RemoveTrailingSlash())
	if !s.opts.DisableReqLogs {
		s.app.Use(middleware.Logger())
	}
	// do not recover in DEV|TEST mode
	if !(s.opts.Debug || s.opts.TestMode) {
		s.app.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{LogLevel: log.ERROR}))
	}
	s.app.Use(metricsMiddleware())

	s.app.HTTPErrorHandler = newAppHTTPErrorHandler(s.opts.Logger, s.opts.SignalShutdown)
	s.app.Debug = s.opts.Debug
	s.app.HideBanner = true

	s.app.GET("/", home)
	s.app.GET("/healthz", s.healthz)
	s.app.GET("/metrics", echo.WrapHandler(metrics.Handler()))

	registerActivityAPI(s.app, s.opts.ActivitySvc)
	registerAnnouncementAPI(s.app, s.opts.AnnouncementSvc)
	registerAuthAPI(s.app, s.opts.TeacherSvc)
}

func (s *server) Start() {
	s.app.Logger.Fatal(s.app.Start(s.opts.Addr))
}

func (s *server) Stop(ctx context.Context) error {
	return s.app.Shutdown(ctx)
}

func (s *server) ServeHTTP(w http.ResponseWriter, r *http.Request) { // for tests
	s.app.ServeHTTP(w, r)
}

func home(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "Welcome to the Mergington High School API!")
}

func (s *server) healthz(ctx echo.Context) error {
	if s.opts.Healthcheck != nil {
		checkCtx, cancel := context.WithTimeout(ctx.Request().Context(), 800*time.Millisecond)
		defer cancel()
		t0 := time.Now()
		if err := s.opts.Healthcheck(checkCtx); err != nil {
			return echo.NewHTTPError(http.StatusServiceUnavailable, "db not ok: "+err.Error())
		}
		metrics.ObserveDBPing(time.Since(t0))
	}
	return ctx.String(http.StatusOK, "ok")
}
