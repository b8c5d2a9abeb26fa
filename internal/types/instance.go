// Package types holds the instance snapshot returned by the management API
package types

import (
	"encoding/json"
	"slices"
	"strconv"
	"strings"

	dockertypes "github.com/docker/docker/api/types"
	"github.com/docker/go-connections/nat"
)

// Status is the lifecycle state of an instance
type Status string

const (
	StatusCrashed      Status = "crashed"
	StatusStopped      Status = "stopped"
	StatusStopping     Status = "stopping"
	StatusRunning      Status = "running"
	StatusNeverStarted Status = "neverStarted"
	StatusBuildFailed  Status = "buildFailed"
	StatusBuilding     Status = "building"
	StatusStarting     Status = "starting"
	StatusUnknown      Status = "unknown"
)

// Statuses lists every known status
var Statuses = []Status{
	StatusCrashed,
	StatusStopped,
	StatusStopping,
	StatusRunning,
	StatusNeverStarted,
	StatusBuildFailed,
	StatusBuilding,
	StatusStarting,
	StatusUnknown,
}

// ParseStatus reports whether s is one of the known statuses
func ParseStatus(s string) (Status, bool) {
	status := Status(s)
	if slices.Contains(Statuses, status) {
		return status, true
	}
	return StatusUnknown, false
}

// Instance is a snapshot of a remote-managed container workload. It is
// fetched per request and never cached.
type Instance struct {
	ID             string         `json:"_id,omitempty"`
	ShortHash      string         `json:"shortHash"`
	Name           string         `json:"name"`
	LowerName      string         `json:"lowerName"`
	Owner          Owner          `json:"owner"`
	ContextVersion ContextVersion `json:"contextVersion"`
	Container      *Container     `json:"container,omitempty"`

	// RawStatus is set when the API computes the status itself
	RawStatus string `json:"status,omitempty"`
}

type Owner struct {
	GithubID int64  `json:"github,omitempty"`
	Username string `json:"username"`
}

type ContextVersion struct {
	Branch          string           `json:"branch,omitempty"`
	AppCodeVersions []AppCodeVersion `json:"appCodeVersions,omitempty"`
	Build           Build            `json:"build"`
}

type AppCodeVersion struct {
	Repo   string `json:"repo"`
	Branch string `json:"branch"`
}

// Build timestamps are kept as the API sends them; only presence matters.
type Build struct {
	Started   string `json:"started,omitempty"`
	Completed string `json:"completed,omitempty"`
	Failed    bool   `json:"failed,omitempty"`
}

// Container describes the docker container backing an instance
type Container struct {
	DockerContainer string `json:"dockerContainer,omitempty"`
	DockerHost      string `json:"dockerHost,omitempty"`

	// DockRemoved is set when the dock running the container was reclaimed
	DockRemoved bool `json:"dockRemoved,omitempty"`

	// Ports is keyed by docker port specs ("3000/tcp"); bindings are ignored
	Ports map[nat.Port]json.RawMessage `json:"ports,omitempty"`

	Inspect *Inspect        `json:"inspect,omitempty"`
	Error   *ContainerError `json:"error,omitempty"`
}

// Inspect is the subset of docker inspect output the API forwards
type Inspect struct {
	State *ContainerState `json:"State,omitempty"`
}

// ContainerState extends the docker state with the transitional flags the
// management API sets while it starts or stops a container.
type ContainerState struct {
	dockertypes.ContainerState
	Starting bool `json:"Starting,omitempty"`
	Stopping bool `json:"Stopping,omitempty"`
}

type ContainerError struct {
	Message string `json:"message"`
}

// Username returns the owner's username
func (i *Instance) Username() string {
	return i.Owner.Username
}

// InstanceName returns the lowercase instance name
func (i *Instance) InstanceName() string {
	if i.LowerName != "" {
		return i.LowerName
	}
	return strings.ToLower(i.Name)
}

// BranchName returns the branch the instance was built from
func (i *Instance) BranchName() string {
	if i.ContextVersion.Branch != "" {
		return i.ContextVersion.Branch
	}
	for _, acv := range i.ContextVersion.AppCodeVersions {
		if acv.Branch != "" {
			return acv.Branch
		}
	}
	return ""
}

// DockRemoved reports whether the instance's dock was reclaimed
func (i *Instance) DockRemoved() bool {
	return i.Container != nil && i.Container.DockRemoved
}

// ExposedPorts returns the container's port numbers with protocol suffixes removed
func (i *Instance) ExposedPorts() []string {
	if i.Container == nil {
		return []string{}
	}
	keys := make([]string, 0, len(i.Container.Ports))
	for port := range i.Container.Ports {
		keys = append(keys, string(port))
	}
	return NormalizePorts(keys)
}

// NormalizePorts strips protocol suffixes ("80/tcp" -> "80"), drops keys that
// are not a single valid port number and returns the rest sorted and unique.
func NormalizePorts(keys []string) []string {
	numbers := make([]int, 0, len(keys))
	for _, key := range keys {
		_, port := nat.SplitProtoPort(key)
		if port == "" {
			continue
		}
		n, err := nat.ParsePort(port)
		if err != nil || n < 1 {
			continue
		}
		numbers = append(numbers, n)
	}

	slices.Sort(numbers)
	numbers = slices.Compact(numbers)

	ports := make([]string, len(numbers))
	for idx, n := range numbers {
		ports[idx] = strconv.Itoa(n)
	}
	return ports
}

// Status returns the API-provided status when it is a known value, otherwise
// derives it from the build and container state.
func (i *Instance) Status() Status {
	if status, ok := ParseStatus(i.RawStatus); ok {
		return status
	}
	return i.deriveStatus()
}

func (i *Instance) deriveStatus() Status {
	build := i.ContextVersion.Build
	if build.Failed {
		return StatusBuildFailed
	}
	if build.Started != "" && build.Completed == "" {
		return StatusBuilding
	}

	if i.Container == nil {
		if build.Completed != "" {
			return StatusNeverStarted
		}
		return StatusUnknown
	}

	if i.Container.Inspect == nil || i.Container.Inspect.State == nil {
		if i.Container.Error != nil {
			return StatusCrashed
		}
		// Container record exists but docker has not reported yet
		return StatusStarting
	}

	state := i.Container.Inspect.State
	switch {
	case state.Starting, state.Restarting:
		return StatusStarting
	case state.Stopping:
		return StatusStopping
	case state.Running:
		return StatusRunning
	case state.OOMKilled, state.Dead, state.Error != "", state.ExitCode != 0:
		return StatusCrashed
	case state.Status == "exited", hasTimestamp(state.FinishedAt):
		return StatusStopped
	}
	return StatusUnknown
}

// hasTimestamp treats docker's zero time as unset
func hasTimestamp(ts string) bool {
	return ts != "" && !strings.HasPrefix(ts, "0001-01-01")
}
