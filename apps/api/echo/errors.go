package echoapi

import (
	"fmt"
	"net/http"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"

	"github.com/mkabeya/grove/core"
)

var (
	errUnauthorized     = echo.NewHTTPError(http.StatusUnauthorized, "Unauthorized")
	errHttpForbidden    = echo.NewHTTPError(http.StatusForbidden, "Forbidden")
	errNoteNotFound     = echo.NewHTTPError(http.StatusNotFound, "Note not found")
	errQuizNotFound     = echo.NewHTTPError(http.StatusNotFound, "Quiz not found")
	errCheckFailed      = echo.NewHTTPError(http.StatusInternalServerError, "Failed to check answer")
	internalServerError = "Internal server error"
)

// newAppHTTPErrorHandler returns a custom echo.HTTPErrorHandler that maps our
// error taxonomy to `{message: string}` bodies. Unexpected errors become a
// generic 500; their detail is only ever logged server-side. signalShutdown is
// called whenever a core shutdown error is caught.
func newAppHTTPErrorHandler(logger core.Logger, translator ut.Translator, signalShutdown func()) echo.HTTPErrorHandler {
	return func(err error, ctx echo.Context) {
		var code int
		var message string

		switch origErr := errors.Cause(err).(type) {
		case *echo.HTTPError:
			if origErr == middleware.ErrJWTMissing {
				code = http.StatusUnauthorized
				message = "Unauthorized"
				break
			}
			if origErr.Internal != nil {
				if herr, ok := origErr.Internal.(*echo.HTTPError); ok {
					origErr = herr
				}
			}
			code = origErr.Code
			if code == http.StatusUnauthorized {
				message = "Unauthorized"
			} else {
				message = fmt.Sprintf("%v", origErr.Message)
			}
		case validator.ValidationErrors:
			// carry the first violated field's message
			code = http.StatusBadRequest
			message = origErr[0].Translate(translator)
		case *core.ValidationError:
			code = http.StatusBadRequest
			if len(origErr.Fields) > 0 {
				message = origErr.Fields[0].Error
			} else {
				message = origErr.Error()
			}
		default: // any other error is a server error
			code = http.StatusInternalServerError
			message = internalServerError

			var subj core.Subject
			if claims, cErr := getContextClaims(ctx); cErr == nil {
				subj.ID = claims.Subject
				subj.Email = claims.Email
			}
			logger.Error(internalServerError, errors.Wrap(err, internalServerError), subj)

			// shutting down...
			if core.IsShutdown(err) {
				signalShutdown()
			}
		}

		// Send response
		if !ctx.Response().Committed {
			if ctx.Request().Method == http.MethodHead {
				err = ctx.NoContent(code)
			} else {
				err = ctx.JSON(code, echo.Map{"message": message})
			}
			if err != nil {
				ctx.Echo().Logger.Error(err)
			}
		}
	}
}
