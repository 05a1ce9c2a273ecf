package echoapi

import (
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/mkabeya/grove/core/note"
)

var errNoteNotFoundInCtx = errors.New("note object not found in echo.Context")

const objectKey = "object"

type noteApi struct {
	svc      *note.Service
	validate *validator.Validate
}

func registerNoteAPI(g *echo.Group, svc *note.Service, validate *validator.Validate) {
	api := noteApi{svc: svc, validate: validate}

	ng := g.Group("/notes")
	ng.GET("", api.query)
	ng.POST("", api.create)

	// detail endpoints
	dg := ng.Group("/:id", noteObjectMiddleware(svc))
	dg.GET("", api.retrieve)
	dg.PUT("", api.update)
	dg.DELETE("", api.destroy)
}

// noteObjectMiddleware loads the targeted note into the context after checking
// ownership: absent record -> 404, foreign owner -> 403.
func noteObjectMiddleware(svc *note.Service) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			subject, err := getContextSubject(ctx)
			if err != nil {
				return err
			}

			id, err := strconv.Atoi(ctx.Param("id"))
			if err != nil {
				return errNoteNotFound
			}

			n, err := svc.GetByID(ctx.Request().Context(), id)
			if err != nil {
				if errors.Cause(err) == note.ErrNotFound {
					return errNoteNotFound
				}
				return errors.Wrap(err, "finding note by ID")
			}
			if n.UserID != subject {
				return errHttpForbidden
			}

			ctx.Set(objectKey, n)
			return next(ctx)
		}
	}
}

// Handlers

func (api *noteApi) query(ctx echo.Context) error {
	subject, err := getContextSubject(ctx)
	if err != nil {
		return err
	}

	notes, err := api.svc.Query(ctx.Request().Context(), subject)
	if err != nil {
		return errors.Wrap(err, "querying notes")
	}
	if notes == nil {
		notes = []note.Note{}
	}
	return ctx.JSON(http.StatusOK, notes)
}

func (api *noteApi) create(ctx echo.Context) error {
	subject, err := getContextSubject(ctx)
	if err != nil {
		return err
	}

	var data note.NewNote
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewNote")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	n, err := api.svc.Create(ctx.Request().Context(), subject, data)
	if err != nil {
		return errors.Wrap(err, "creating note")
	}
	return ctx.JSON(http.StatusCreated, n)
}

func (api *noteApi) retrieve(ctx echo.Context) error {
	n, ok := ctx.Get(objectKey).(note.Note)
	if !ok {
		return errors.Wrap(errNoteNotFoundInCtx, "retrieving object from context")
	}
	return ctx.JSON(http.StatusOK, n)
}

func (api *noteApi) update(ctx echo.Context) error {
	n, ok := ctx.Get(objectKey).(note.Note)
	if !ok {
		return errors.Wrap(errNoteNotFoundInCtx, "retrieving object from context")
	}

	var data note.UpdateNote
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateNote")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	n, err := api.svc.Update(ctx.Request().Context(), n.ID, data)
	if err != nil {
		return errors.Wrap(err, "updating note")
	}
	return ctx.JSON(http.StatusOK, n)
}

func (api *noteApi) destroy(ctx echo.Context) error {
	n, ok := ctx.Get(objectKey).(note.Note)
	if !ok {
		return errors.Wrap(errNoteNotFoundInCtx, "retrieving object from context")
	}

	if err := api.svc.Delete(ctx.Request().Context(), n.ID); err != nil {
		return errors.Wrap(err, "deleting note")
	}
	return ctx.NoContent(http.StatusNoContent)
}
