// Package pages maps a navi request and the resolved instance to the page
// that explains why the instance cannot serve traffic.
package pages

import (
	"net/http"

	"detention/internal/errors"
	"detention/internal/types"
	"detention/internal/validation"
)

// Page names, one template each
const (
	Signin       = "signin"
	Migrating    = "migrating"
	Crashed      = "crashed"
	Stopped      = "stopped"
	Running      = "running"
	BuildFailed  = "buildFailed"
	Building     = "building"
	Starting     = "starting"
	Unknown      = "unknown"
	Unresponsive = "unresponsive"
	Invalid      = "invalid"
)

// Names lists every page the renderer must provide
var Names = []string{
	Signin, Migrating, Crashed, Stopped, Running, BuildFailed,
	Building, Starting, Unknown, Unresponsive, Invalid,
}

// Page is the outcome of dispatching a request
type Page struct {
	Name       string
	StatusCode int
	HeaderText string
}

// statusPages is the single source of truth for not_running requests
var statusPages = map[types.Status]Page{
	types.StatusCrashed:      {Name: Crashed, StatusCode: http.StatusServiceUnavailable, HeaderText: "crashed"},
	types.StatusStopped:      {Name: Stopped, StatusCode: http.StatusServiceUnavailable, HeaderText: "is stopped"},
	types.StatusStopping:     {Name: Stopped, StatusCode: http.StatusServiceUnavailable, HeaderText: "is stopping"},
	types.StatusRunning:      {Name: Running, StatusCode: http.StatusServiceUnavailable, HeaderText: "is running"},
	types.StatusNeverStarted: {Name: BuildFailed, StatusCode: http.StatusServiceUnavailable, HeaderText: "build failed"},
	types.StatusBuildFailed:  {Name: BuildFailed, StatusCode: http.StatusServiceUnavailable, HeaderText: "build failed"},
	types.StatusBuilding:     {Name: Building, StatusCode: http.StatusServiceUnavailable, HeaderText: "is building"},
	types.StatusStarting:     {Name: Starting, StatusCode: http.StatusServiceUnavailable, HeaderText: "is starting"},
	types.StatusUnknown:      {Name: Unknown, StatusCode: http.StatusServiceUnavailable, HeaderText: "unknown"},
}

var (
	signinPage       = Page{Name: Signin, StatusCode: http.StatusUnauthorized}
	migratingPage    = Page{Name: Migrating, StatusCode: http.StatusServiceUnavailable, HeaderText: "is migrating"}
	unresponsivePage = Page{Name: Unresponsive, StatusCode: http.StatusServiceUnavailable}
)

// ForStatus returns the not_running page for an instance status. Statuses
// outside the table get the unknown page.
func ForStatus(status types.Status) Page {
	if page, ok := statusPages[status]; ok {
		return page
	}
	return statusPages[types.StatusUnknown]
}

// Dispatch picks the page for a validated request. A nil page with a nil
// error means the request type renders nothing (ports).
func Dispatch(requestType string, instance *types.Instance) (*Page, error) {
	if requestType == validation.TypeSignin {
		page := signinPage
		return &page, nil
	}

	if instance == nil {
		return nil, errors.InstanceNotFound("", nil)
	}

	switch requestType {
	case validation.TypePorts:
		return nil, nil
	case validation.TypeUnresponsive:
		page := unresponsivePage
		return &page, nil
	case validation.TypeNotRunning:
		if instance.DockRemoved() {
			page := migratingPage
			return &page, nil
		}
		page := ForStatus(instance.Status())
		return &page, nil
	}

	return nil, errors.InvalidRequestType(requestType)
}
