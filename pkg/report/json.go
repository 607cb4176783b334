package report

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/matzehuels/servicescan/pkg/collector"
)

// TimeLayout formats the collected_at metadata field.
const TimeLayout = "2006-01-02 15:04:05"

type document struct {
	Metadata metadata                       `json:"metadata"`
	Projects map[string]collector.Manifests `json:"projects"`
}

type metadata struct {
	CollectedAt string          `json:"collected_at"`
	GitLabGroup string          `json:"gitlab_group"`
	RunID       string          `json:"run_id,omitempty"`
	Statistics  collector.Stats `json:"statistics"`
}

// WriteJSON encodes res as an indented JSON document. Non-ASCII and HTML
// characters are written literally.
func WriteJSON(res *collector.Result, w io.Writer) error {
	group := res.Group
	if group == "" {
		group = collector.AllProjects
	}
	projects := res.Projects
	if projects == nil {
		projects = map[string]collector.Manifests{}
	}

	doc := document{
		Metadata: metadata{
			CollectedAt: res.CollectedAt.Format(TimeLayout),
			GitLabGroup: group,
			RunID:       res.RunID,
			Statistics:  res.Stats,
		},
		Projects: projects,
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}
