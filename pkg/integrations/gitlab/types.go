package gitlab

// Project is one entry of the project listing. Only the fields the
// collector reads are decoded.
type Project struct {
	ID                int    `json:"id"`
	Name              string `json:"name"`
	PathWithNamespace string `json:"path_with_namespace,omitempty"`
	DefaultBranch     string `json:"default_branch,omitempty"`
}

// Entry types reported by the repository tree.
const (
	EntryBlob = "blob"
	EntryTree = "tree"
)

// TreeEntry is one node of a recursive repository tree listing.
type TreeEntry struct {
	ID   string `json:"id,omitempty"`
	Name string `json:"name"`
	Path string `json:"path"`
	Type string `json:"type"`
	Mode string `json:"mode,omitempty"`
}

// IsBlob reports whether the entry is a file.
func (e TreeEntry) IsBlob() bool { return e.Type == EntryBlob }

type versionResponse struct {
	Version  string `json:"version"`
	Revision string `json:"revision"`
}

type groupResponse struct {
	ID       int    `json:"id"`
	FullPath string `json:"full_path"`
}
