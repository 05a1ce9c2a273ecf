package echoapi

import (
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/mkabeya/grove/core/quiz"
)

var errQuizNotFoundInCtx = errors.New("quiz object not found in echo.Context")

type quizApi struct {
	svc      *quiz.Service
	validate *validator.Validate
}

func registerQuizAPI(g *echo.Group, svc *quiz.Service, validate *validator.Validate) {
	api := quizApi{svc: svc, validate: validate}

	qg := g.Group("/quizzes")
	qg.GET("", api.query)
	qg.POST("", api.create)
	qg.POST("/check", api.check)

	// detail endpoints
	dg := qg.Group("/:id", quizObjectMiddleware(svc))
	dg.GET("", api.retrieve)
	dg.DELETE("", api.destroy)
}

func quizObjectMiddleware(svc *quiz.Service) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			subject, err := getContextSubject(ctx)
			if err != nil {
				return err
			}

			id, err := strconv.Atoi(ctx.Param("id"))
			if err != nil {
				return errQuizNotFound
			}

			q, err := svc.GetByID(ctx.Request().Context(), id)
			if err != nil {
				if errors.Cause(err) == quiz.ErrNotFound {
					return errQuizNotFound
				}
				return errors.Wrap(err, "finding quiz by ID")
			}
			if q.UserID != subject {
				return errHttpForbidden
			}

			ctx.Set(objectKey, q)
			return next(ctx)
		}
	}
}

// Handlers

func (api *quizApi) query(ctx echo.Context) error {
	subject, err := getContextSubject(ctx)
	if err != nil {
		return err
	}

	quizzes, err := api.svc.Query(ctx.Request().Context(), subject)
	if err != nil {
		return errors.Wrap(err, "querying quizzes")
	}
	if quizzes == nil {
		quizzes = []quiz.Quiz{}
	}
	return ctx.JSON(http.StatusOK, quizzes)
}

func (api *quizApi) create(ctx echo.Context) error {
	subject, err := getContextSubject(ctx)
	if err != nil {
		return err
	}

	var data quiz.NewQuiz
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewQuiz")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	q, err := api.svc.Create(ctx.Request().Context(), subject, data)
	if err != nil {
		return errors.Wrap(err, "creating quiz")
	}
	return ctx.JSON(http.StatusCreated, q)
}

func (api *quizApi) retrieve(ctx echo.Context) error {
	q, ok := ctx.Get(objectKey).(quiz.Quiz)
	if !ok {
		return errors.Wrap(errQuizNotFoundInCtx, "retrieving object from context")
	}
	return ctx.JSON(http.StatusOK, q)
}

func (api *quizApi) destroy(ctx echo.Context) error {
	q, ok := ctx.Get(objectKey).(quiz.Quiz)
	if !ok {
		return errors.Wrap(errQuizNotFoundInCtx, "retrieving object from context")
	}

	if err := api.svc.Delete(ctx.Request().Context(), q.ID); err != nil {
		return errors.Wrap(err, "deleting quiz")
	}
	return ctx.NoContent(http.StatusNoContent)
}

// check grades a free-text answer via the external grading service. Any
// failure of that call, timeouts and malformed replies included, surfaces as a
// plain 500; there is no partial-credit fallback.
func (api *quizApi) check(ctx echo.Context) error {
	var data quiz.CheckAnswer
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to CheckAnswer")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	result, err := api.svc.CheckAnswer(ctx.Request().Context(), data)
	if err != nil {
		ctx.Logger().Errorf("%+v", errors.Wrap(err, "checking answer"))
		return errCheckFailed
	}
	return ctx.JSON(http.StatusOK, result)
}
