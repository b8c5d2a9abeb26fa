package testutil

import (
	"net/http"
	"net/http/httptest"
	"net/url"
)

// NewPageRequest builds a GET request carrying navi query parameters
func NewPageRequest(path string, query map[string]string) *http.Request {
	q := url.Values{}
	for key, value := range query {
		q.Set(key, value)
	}
	target := path
	if encoded := q.Encode(); encoded != "" {
		target += "?" + encoded
	}
	return httptest.NewRequest(http.MethodGet, target, nil)
}
