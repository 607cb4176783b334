package collector

import (
	"path"
	"strings"

	"github.com/matzehuels/servicescan/pkg/integrations/gitlab"
)

// DefaultIgnoreFiles are manifest names skipped unless configured otherwise.
var DefaultIgnoreFiles = []string{".gitlab-ci.yml", "docker-compose.yml", "docker-compose.yaml"}

// candidates returns the YAML blobs of entries whose file name is not in
// ignore, in listing order.
func candidates(entries []gitlab.TreeEntry, ignore map[string]bool) []gitlab.TreeEntry {
	var out []gitlab.TreeEntry
	for _, e := range entries {
		if !e.IsBlob() {
			continue
		}
		name := entryName(e)
		if !isYAML(name) || ignore[name] {
			continue
		}
		out = append(out, e)
	}
	return out
}

func entryName(e gitlab.TreeEntry) string {
	if e.Name != "" {
		return e.Name
	}
	return path.Base(e.Path)
}

func isYAML(name string) bool {
	return strings.HasSuffix(name, ".yml") || strings.HasSuffix(name, ".yaml")
}

// manifestKey derives the result key of a manifest from its file name:
// "services_infra.yaml" -> "infra".
func manifestKey(name string) string {
	key := strings.TrimSuffix(name, ".yaml")
	key = strings.TrimSuffix(key, ".yml")
	return strings.TrimPrefix(key, "services_")
}

// ignoredProject reports whether name starts with any of prefixes.
func ignoredProject(name string, prefixes []string) bool {
	for _, p := range prefixes {
		if p != "" && strings.HasPrefix(name, p) {
			return true
		}
	}
	return false
}

func toSet(names []string) map[string]bool {
	set := make(map[string]bool, len(names))
	for _, n := range names {
		if n = strings.TrimSpace(n); n != "" {
			set[n] = true
		}
	}
	return set
}
