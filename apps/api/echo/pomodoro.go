package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/mkabeya/grove/core/pomodoro"
	"github.com/mkabeya/grove/core/stats"
)

type pomodoroApi struct {
	svc      *pomodoro.Service
	validate *validator.Validate
}

// LogResponse pairs the persisted session with the fully updated stats row.
type LogResponse struct {
	Session pomodoro.Session `json:"session"`
	Stats   stats.Stats      `json:"stats"`
}

func registerPomodoroAPI(g *echo.Group, svc *pomodoro.Service, validate *validator.Validate) {
	api := pomodoroApi{svc: svc, validate: validate}

	pg := g.Group("/pomodoro")
	pg.POST("/log", api.log)
	pg.GET("/history", api.history)
}

// Handlers

func (api *pomodoroApi) log(ctx echo.Context) error {
	subject, err := getContextSubject(ctx)
	if err != nil {
		return err
	}

	var data pomodoro.LogSession
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to LogSession")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	session, updated, err := api.svc.Log(ctx.Request().Context(), subject, data)
	if err != nil {
		return errors.Wrap(err, "logging pomodoro session")
	}
	return ctx.JSON(http.StatusCreated, LogResponse{Session: session, Stats: updated})
}

func (api *pomodoroApi) history(ctx echo.Context) error {
	subject, err := getContextSubject(ctx)
	if err != nil {
		return err
	}

	sessions, err := api.svc.History(ctx.Request().Context(), subject)
	if err != nil {
		return errors.Wrap(err, "querying session history")
	}
	if sessions == nil {
		sessions = []pomodoro.Session{}
	}
	return ctx.JSON(http.StatusOK, sessions)
}
