package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/mergington/highschool/core"
	"github.com/mergington/highschool/core/activity"
	"github.com/mergington/highschool/core/announcement"
	"github.com/mergington/highschool/core/teacher"
)

// user-facing error texts; kept identical to the original frontend contract
const (
	msgAuthRequired       = "Authentication required for this action"
	msgInvalidTeacher     = "Invalid teacher credentials"
	msgInvalidLogin       = "Invalid username or password"
	msgTeacherNotFound    = "Teacher not found"
	msgActivityNotFound   = "Activity not found"
	msgAlreadySignedUp    = "Already signed up for this activity"
	msgNotRegistered      = "Not registered for this activity"
	msgUpdateFailed       = "Failed to update activity"
	msgAnnounceNotFound   = "Announcement not found"
	msgAnnounceEmptyPatch = "At least one field (message, expiration_date, or start_date) must be provided"
)

// newAppHTTPErrorHandler returns a custom echo.HTTPErrorHandler that knows how to handle our errors.
// signalShutdown is called in order to gracefully shutdown the Server whenever a core.shutdown error is caught.
func newAppHTTPErrorHandler(logger core.Logger, signalShutdown func()) echo.HTTPErrorHandler {
	return func(err error, ctx echo.Context) {
		var code int
		var message interface{}

		switch origErr := errors.Cause(err).(type) {
		case *echo.HTTPError:
			if origErr.Internal != nil {
				if herr, ok := origErr.Internal.(*echo.HTTPError); ok {
					origErr = herr
				}
			}
			code = origErr.Code
			message = origErr.Message
		case validator.ValidationErrors:
			fldErrs := make(map[string]string, len(origErr))
			for _, vErr := range origErr {
				fldErrs[vErr.Field()] = vErr.Translate(core.Translator)
			}
			code = http.StatusBadRequest
			message = fldErrs
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
		default:
			code, message = statusForDomainErr(err)
			if code == http.StatusInternalServerError {
				msg := http.StatusText(http.StatusInternalServerError)
				if errors.Is(err, activity.ErrNothingUpdated) {
					msg = msgUpdateFailed
				}
				message = msg
				if logger != nil {
					logger.Error(msg, errors.Wrap(err, msg))
				}

				// shutting down...
				if core.IsShutdown(err) {
					signalShutdown()
				}
			}
		}

		if ctx.Echo().Debug {
			message = err.Error()
		}
		if m, ok := message.(string); ok {
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

// statusForDomainErr maps domain sentinel errors to HTTP codes.
// Auth failures never leak whether a resource or account exists.
func statusForDomainErr(err error) (int, string) {
	switch {
	case errors.Is(err, teacher.ErrAuthenticationRequired):
		return http.StatusUnauthorized, msgAuthRequired
	case errors.Is(err, teacher.ErrUnknownTeacher):
		return http.StatusUnauthorized, msgInvalidTeacher
	case errors.Is(err, teacher.ErrInvalidCredentials):
		return http.StatusUnauthorized, msgInvalidLogin
	case errors.Is(err, teacher.ErrNotFound):
		return http.StatusNotFound, msgTeacherNotFound
	case errors.Is(err, activity.ErrNotFound):
		return http.StatusNotFound, msgActivityNotFound
	case errors.Is(err, activity.ErrAlreadySignedUp):
		return http.StatusConflict, msgAlreadySignedUp
	case errors.Is(err, activity.ErrNotRegistered):
		return http.StatusBadRequest, msgNotRegistered
	case errors.Is(err, announcement.ErrNotFound):
		return http.StatusNotFound, msgAnnounceNotFound
	case errors.Is(err, announcement.ErrEmptyUpdate):
		return http.StatusBadRequest, msgAnnounceEmptyPatch
	default:
		return http.StatusInternalServerError, ""
	}
}
