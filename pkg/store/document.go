package store

import (
	"time"

	"github.com/matzehuels/servicescan/pkg/collector"
	"github.com/matzehuels/servicescan/pkg/manifest"
)

// runDocument is the stored form of a Result. Projects and manifests are
// arrays so that names containing dots never end up as field names.
type runDocument struct {
	RunID       string            `json:"run_id" bson:"_id"`
	Group       string            `json:"group" bson:"group"`
	CollectedAt time.Time         `json:"collected_at" bson:"collected_at"`
	Stats       statsDocument     `json:"stats" bson:"stats"`
	Projects    []projectDocument `json:"projects" bson:"projects"`
}

type statsDocument struct {
	TotalProjects    int `json:"total_projects" bson:"total_projects"`
	ProjectsWithYAML int `json:"projects_with_yaml" bson:"projects_with_yaml"`
	TotalYAMLFiles   int `json:"total_yaml_files" bson:"total_yaml_files"`
	TotalServices    int `json:"total_services" bson:"total_services"`
	Errors           int `json:"errors" bson:"errors"`
	ProjectsIgnored  int `json:"projects_ignored" bson:"projects_ignored"`
}

type projectDocument struct {
	Name      string             `json:"name" bson:"name"`
	Manifests []manifestDocument `json:"manifests" bson:"manifests"`
}

type manifestDocument struct {
	Path     string            `json:"path" bson:"path"`
	Services []serviceDocument `json:"services" bson:"services"`
}

type serviceDocument struct {
	Name string `json:"name" bson:"name"`
	Tag  string `json:"tag" bson:"tag"`
}

func toDocument(res *collector.Result) runDocument {
	doc := runDocument{
		RunID:       res.RunID,
		Group:       res.Group,
		CollectedAt: res.CollectedAt.UTC().Truncate(time.Millisecond),
		Stats:       statsDocument(res.Stats),
		Projects:    make([]projectDocument, 0, len(res.Projects)),
	}
	for _, name := range res.ProjectNames() {
		manifests := res.Projects[name]
		pd := projectDocument{Name: name, Manifests: make([]manifestDocument, 0, len(manifests))}
		for _, key := range manifests.Keys() {
			services := manifests[key]
			md := manifestDocument{Path: key, Services: make([]serviceDocument, 0, len(services))}
			for _, svc := range services.Names() {
				md.Services = append(md.Services, serviceDocument{Name: svc, Tag: services[svc]})
			}
			pd.Manifests = append(pd.Manifests, md)
		}
		doc.Projects = append(doc.Projects, pd)
	}
	return doc
}

func fromDocument(doc runDocument) *collector.Result {
	res := &collector.Result{
		RunID:       doc.RunID,
		Group:       doc.Group,
		CollectedAt: doc.CollectedAt,
		Stats:       collector.Stats(doc.Stats),
		Projects:    make(map[string]collector.Manifests, len(doc.Projects)),
	}
	for _, pd := range doc.Projects {
		manifests := make(collector.Manifests, len(pd.Manifests))
		for _, md := range pd.Manifests {
			services := make(manifest.Services, len(md.Services))
			for _, s := range md.Services {
				services[s.Name] = s.Tag
			}
			manifests[md.Path] = services
		}
		res.Projects[pd.Name] = manifests
	}
	return res
}
