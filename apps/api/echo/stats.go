package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/mkabeya/grove/core/stats"
)

type statsApi struct {
	svc *stats.Service
}

func registerStatsAPI(g *echo.Group, svc *stats.Service) {
	api := statsApi{svc: svc}

	g.GET("/stats", api.retrieve)
}

// retrieve returns the caller's stats row, creating it on first access.
func (api *statsApi) retrieve(ctx echo.Context) error {
	subject, err := getContextSubject(ctx)
	if err != nil {
		return err
	}

	s, err := api.svc.Get(ctx.Request().Context(), subject)
	if err != nil {
		return errors.Wrap(err, "getting stats")
	}
	return ctx.JSON(http.StatusOK, s)
}
