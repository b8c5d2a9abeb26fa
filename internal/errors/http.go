package errors

import (
	stderrors "errors"
	"net/http"

	"github.com/labstack/echo/v4"
)

// StatusCode picks the HTTP status for any error reaching the HTTP boundary.
// Typed errors use their code, echo errors (unmatched route, wrong method)
// keep theirs, everything else is a 500.
func StatusCode(err error) int {
	if err == nil {
		return http.StatusOK
	}

	if de, ok := As(err); ok {
		return de.GetHTTPStatus()
	}

	var he *echo.HTTPError
	if stderrors.As(err, &he) {
		return he.Code
	}

	return http.StatusInternalServerError
}

// PublicMessage returns the message that may be shown to a client
func PublicMessage(err error) string {
	if de, ok := As(err); ok {
		return de.Message
	}
	return http.StatusText(StatusCode(err))
}
