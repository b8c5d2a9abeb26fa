package errors

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func TestStatusCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "nil", err: nil, want: http.StatusOK},
		{name: "missing shortHash", err: MissingShortHash(), want: http.StatusBadRequest},
		{name: "invalid type", err: InvalidRequestType("bogus"), want: http.StatusBadRequest},
		{name: "validation", err: ValidationFailed("shortHash", "bad"), want: http.StatusBadRequest},
		{name: "route", err: RouteNotFound("/"), want: http.StatusNotFound},
		{name: "instance", err: InstanceNotFound("axcde", nil), want: http.StatusNotFound},
		{name: "auth", err: AuthenticationFailed("nope"), want: http.StatusUnauthorized},
		{name: "api", err: APICallError("GET", "http://api", fmt.Errorf("refused")), want: http.StatusBadGateway},
		{name: "render", err: RenderFailed("crashed", nil), want: http.StatusInternalServerError},
		{name: "echo error", err: echo.ErrMethodNotAllowed, want: http.StatusMethodNotAllowed},
		{name: "plain error", err: fmt.Errorf("boom"), want: http.StatusInternalServerError},
		{name: "wrapped typed error", err: fmt.Errorf("fetch: %w", InstanceNotFound("axcde", nil)), want: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StatusCode(tt.err))
		})
	}
}

func TestInstanceNotFoundKeepsCause(t *testing.T) {
	cause := APICallError("GET", "http://api/instances", fmt.Errorf("connection refused"))
	err := InstanceNotFound("axcde", cause)

	assert.True(t, HasCode(err, ErrInstanceNotFound))
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, http.StatusNotFound, StatusCode(err))
	assert.Contains(t, err.Error(), "INSTANCE_NOT_FOUND")
}

func TestPublicMessage(t *testing.T) {
	assert.Equal(t, "instance shortHash required", PublicMessage(MissingShortHash()))
	assert.Equal(t, "invalid request type", PublicMessage(InvalidRequestType("x")))
	assert.Equal(t, "Internal Server Error", PublicMessage(fmt.Errorf("secret detail")))
}

func TestDetentionError_WithContext(t *testing.T) {
	err := InvalidRequestType("bogus")
	assert.Equal(t, "bogus", err.Context["type"])

	err = New(ErrInternal, "x")
	err.HTTPStatus = http.StatusTeapot
	assert.Equal(t, http.StatusTeapot, err.GetHTTPStatus())
}
