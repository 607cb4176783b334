package collector

import "sync"

// Stats counts the work done in a run. Counters only grow.
//
// TotalServices counts entries after name normalization, so raw names that
// normalize to the same service in one file count once.
type Stats struct {
	TotalProjects    int `json:"total_projects"`
	ProjectsWithYAML int `json:"projects_with_yaml"`
	TotalYAMLFiles   int `json:"total_yaml_files"`
	TotalServices    int `json:"total_services"`
	Errors           int `json:"errors"`
	ProjectsIgnored  int `json:"projects_ignored"`
}

// Add folds o into s.
func (s *Stats) Add(o Stats) {
	s.TotalProjects += o.TotalProjects
	s.ProjectsWithYAML += o.ProjectsWithYAML
	s.TotalYAMLFiles += o.TotalYAMLFiles
	s.TotalServices += o.TotalServices
	s.Errors += o.Errors
	s.ProjectsIgnored += o.ProjectsIgnored
}

// tally is the run-wide Stats, shared by concurrent units.
type tally struct {
	mu    sync.Mutex
	stats Stats
}

func (t *tally) add(o Stats) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.stats.Add(o)
}

func (t *tally) snapshot() Stats {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.stats
}
