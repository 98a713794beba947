package echoapi

import (
	"net/http"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"

	"github.com/nossauesc/agenda/core"
	"github.com/nossauesc/agenda/core/account"
)

var (
	errUnauthorized     = echo.NewHTTPError(http.StatusUnauthorized, "user not authenticated")
	errNotRegistered    = echo.NewHTTPError(http.StatusForbidden, "account not registered")
	errHttpNotFound     = echo.NewHTTPError(http.StatusNotFound, "not found")
	errTooManyRequests  = echo.NewHTTPError(http.StatusTooManyRequests, "rate limit exceeded")
	errOwnerUnsupported = echo.NewHTTPError(http.StatusBadRequest, "only owner=me is supported")
)

// newAppHTTPErrorHandler returns a custom echo.HTTPErrorHandler that knows how to handle our errors.
// signalShutdown is called in order to gracefully shutdown the Server whenever a core.shutdown error is caught.
func newAppHTTPErrorHandler(logger core.Logger, translator ut.Translator, signalShutdown func()) echo.HTTPErrorHandler {
	return func(err error, ctx echo.Context) {
		var code int
		var message interface{}

		switch origErr := errors.Cause(err).(type) {
		case *echo.HTTPError:
			if origErr == middleware.ErrJWTMissing {
				code = http.StatusUnauthorized
				message = origErr.Message
				break
			}
			if origErr.Internal != nil {
				if herr, ok := origErr.Internal.(*echo.HTTPError); ok {
					origErr = herr
				}
			}
			code = origErr.Code
			message = origErr.Message
		case validator.ValidationErrors:
			code = http.StatusBadRequest
			message = core.TranslateErrors(origErr, translator)
		case *core.ValidationError:
			if origErr.Fields != nil {
				fldErrs := make(map[string]string, len(origErr.Fields))
				for _, fErr := range origErr.Fields {
					fldErrs[fErr.Field] = fErr.Error
				}
				message = fldErrs
			} else {
				message = origErr.Error()
			}
			code = http.StatusBadRequest
		case *core.StoreError:
			// the draft is kept client side; tell whether submitting it again may succeed
			code = http.StatusServiceUnavailable
			if !origErr.Retryable {
				code = http.StatusConflict
			}
			logger.Error("document store write failed", errors.Wrap(err, "writing document"), contextProfile(ctx))
			message = echo.Map{"error": "the record could not be saved", "retryable": origErr.Retryable}
		default: // any other error is a server error
			code = http.StatusInternalServerError
			msg := http.StatusText(http.StatusInternalServerError)
			message = msg
			logger.Error(msg, errors.Wrap(err, msg), contextProfile(ctx))

			// shutting down...
			if core.IsShutdown(err) {
				signalShutdown()
			}
		}

		if ctx.Echo().Debug {
			message = err.Error()
		} else if m, ok := message.(string); ok {
			message = echo.Map{"error": m}
		}

		// Send response
		if !ctx.Response().Committed {
			if ctx.Request().Method == http.MethodHead { // Issue #608
				err = ctx.NoContent(code)
			} else {
				err = ctx.JSON(code, message)
			}
			if err != nil {
				ctx.Echo().Logger.Error(err)
			}
		}
	}
}

// contextProfile returns the authenticated profile, or what the token tells about the user.
func contextProfile(ctx echo.Context) account.Profile {
	if prof, ok := ctx.Get(contextProfileKey).(account.Profile); ok {
		return prof
	}
	var prof account.Profile
	if claims, err := getContextClaims(ctx); err == nil {
		prof.ID = claims.Subject
		prof.DisplayName = claims.Name
		prof.Email = claims.Email
	}
	return prof
}
