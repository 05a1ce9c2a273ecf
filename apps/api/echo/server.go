package echoapi

import (
	"context"
	"net/http"
	"os"
	"syscall"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"

	"github.com/mkabeya/grove/core"
	"github.com/mkabeya/grove/core/note"
	"github.com/mkabeya/grove/core/pomodoro"
	"github.com/mkabeya/grove/core/quiz"
	"github.com/mkabeya/grove/core/stats"
)

type (
	// Deps carries everything the server needs; all of it is constructed in
	// main and injected.
	Deps struct {
		Conf       *core.Config
		Logger     core.Logger
		TokenAuth  *TokenAuth
		Validate   *validator.Validate
		Translator ut.Translator

		NoteSvc     *note.Service
		QuizSvc     *quiz.Service
		PomodoroSvc *pomodoro.Service
		StatsSvc    *stats.Service
	}

	Server interface {
		http.Handler
		Start()
		Stop(context.Context) error
	}

	server struct {
		addr     string
		shutdown chan<- os.Signal
		deps     *Deps
		app      *echo.Echo
	}
)

var _ Server = (*server)(nil)

// NewServer builds the API server. shutdown may be nil; when set, the server
// signals it to request a graceful stop after an unrecoverable error.
func NewServer(addr string, shutdown chan<- os.Signal, deps *Deps) Server {
	s := &server{
		addr:     addr,
		shutdown: shutdown,
		deps:     deps,
		app:      echo.New(),
	}
	s.setup()
	return s
}

func (s *server) signalShutdown() {
	if s.shutdown != nil {
		s.shutdown <- syscall.SIGTERM
	}
}

func (s *server) setup() {
	conf := s.deps.Conf

	s.app.Pre(middleware.RemoveTrailingSlash())
	s.app.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: func() string { return uuid.NewString() },
	}))
	if !conf.TestMode {
		s.app.Use(middleware.Logger())
	}
	// do not recover in DEV|TEST mode
	if !(conf.Debug || conf.TestMode) {
		s.app.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{LogLevel: log.ERROR}))
	}

	s.app.HTTPErrorHandler = newAppHTTPErrorHandler(s.deps.Logger, s.deps.Translator, s.signalShutdown)
	s.app.Debug = conf.Debug

	s.app.GET("/", home)

	api := s.app.Group("/api", s.deps.TokenAuth.Middleware())

	registerNoteAPI(api, s.deps.NoteSvc, s.deps.Validate)
	registerQuizAPI(api, s.deps.QuizSvc, s.deps.Validate)
	registerPomodoroAPI(api, s.deps.PomodoroSvc, s.deps.Validate)
	registerStatsAPI(api, s.deps.StatsSvc)
}

func (s *server) Start() {
	s.app.Logger.Fatal(s.app.Start(s.addr))
}

func (s *server) Stop(ctx context.Context) error {
	return s.app.Shutdown(ctx)
}

func (s *server) ServeHTTP(w http.ResponseWriter, r *http.Request) { // for tests
	s.app.ServeHTTP(w, r)
}

func home(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "Welcome to the Grove API!")
}
