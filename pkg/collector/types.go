package collector

import (
	"sort"
	"time"

	"github.com/matzehuels/servicescan/pkg/manifest"
)

// Credentials identify the platform and scope of a run. They are fixed for
// the duration of a run.
type Credentials struct {
	BaseURL string
	Token   string
	// Group optionally restricts the run to one group and its subgroups.
	Group string
	// MaxProjects caps the project listing. Zero means no cap.
	MaxProjects int
}

// String implements fmt.Stringer without exposing the token.
func (c Credentials) String() string {
	scope := c.Group
	if scope == "" {
		scope = "*"
	}
	return c.BaseURL + " (" + scope + ")"
}

// Manifests maps a manifest key to the services it declares.
type Manifests map[string]manifest.Services

// Keys returns the manifest keys in sorted order.
func (m Manifests) Keys() []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// ProjectResult is the contribution of one project. It only exists when
// Manifests is non-empty.
type ProjectResult struct {
	ProjectID   int       `json:"project_id"`
	ProjectName string    `json:"project_name"`
	Manifests   Manifests `json:"services"`
}

// Result is the outcome of a completed run.
type Result struct {
	RunID       string
	Group       string
	CollectedAt time.Time
	// Projects maps project name to its manifests. When two projects share
	// a name, the one listed later wins.
	Projects map[string]Manifests
	Stats    Stats
}

// ProjectNames returns the contributing project names in sorted order.
func (r *Result) ProjectNames() []string {
	names := make([]string, 0, len(r.Projects))
	for name := range r.Projects {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Empty reports whether no project contributed.
func (r *Result) Empty() bool {
	return r == nil || len(r.Projects) == 0
}
