package pages

import (
	"net/url"

	"detention/internal/types"
	"detention/internal/validation"
)

// Vars is the flat variable bag handed to the renderer
type Vars map[string]any

// Request holds the query parameters navi attaches to the redirect
type Request struct {
	Type         string
	ShortHash    string
	Status       string
	BranchName   string
	RedirectURL  string
	ContainerURL string
	OwnerName    string
	InstanceName string
	Ports        []string
}

// RequestFromQuery reads the navi query parameters. ports may be given once,
// repeated, or in the bracketed array form.
func RequestFromQuery(q url.Values) Request {
	ports := append([]string{}, q["ports"]...)
	ports = append(ports, q["ports[]"]...)

	return Request{
		Type:         q.Get("type"),
		ShortHash:    q.Get("shortHash"),
		Status:       q.Get("status"),
		BranchName:   q.Get("branchName"),
		RedirectURL:  q.Get("redirectUrl"),
		ContainerURL: q.Get("containerUrl"),
		OwnerName:    q.Get("ownerName"),
		InstanceName: q.Get("instanceName"),
		Ports:        ports,
	}
}

// BaseVars are present on every page, including the invalid page
func BaseVars(version, absoluteURL string) Vars {
	return Vars{
		"localVersion": version,
		"absoluteUrl":  absoluteURL,
	}
}

// BuildVars assembles the view variables for a dispatched page. Query values
// are the fallback; a fetched instance always wins over them.
func BuildVars(base Vars, req Request, instance *types.Instance, page *Page) Vars {
	vars := Vars{}
	for k, v := range base {
		vars[k] = v
	}

	vars["shortHash"] = validation.Truncate(req.ShortHash)
	vars["branchName"] = validation.Truncate(req.BranchName)
	vars["ownerName"] = validation.Truncate(req.OwnerName)
	vars["instanceName"] = validation.Truncate(req.InstanceName)
	vars["redirectUrl"] = validation.SafeURL(req.RedirectURL)
	vars["containerUrl"] = validation.SafeURL(req.ContainerURL)
	vars["ports"] = types.NormalizePorts(req.Ports)

	status, header := queryStatusText(req.Status)
	vars["status"] = status
	vars["headerText"] = header

	if instance != nil {
		vars["branchName"] = instance.BranchName()
		vars["ownerName"] = instance.Username()
		vars["instanceName"] = instance.InstanceName()
		vars["ports"] = instance.ExposedPorts()
		vars["status"] = string(instance.Status())
	}

	if page != nil && page.HeaderText != "" {
		vars["headerText"] = page.HeaderText
	}

	return vars
}

// queryStatusText formats a status passed on the query string, for requests
// answered without an instance lookup. Unknown values are ignored.
func queryStatusText(raw string) (status, header string) {
	s, ok := types.ParseStatus(raw)
	if !ok {
		return "", ""
	}
	if s == types.StatusBuildFailed {
		return "failed to build", "build failed."
	}
	return "is " + string(s), string(s)
}
