package manifest

import (
	"regexp"
	"strings"
)

const servicesPrefix = "services_"

var (
	separatorReplacer = strings.NewReplacer("-", "_", ".", "_")
	bracketPattern    = regexp.MustCompile(`(?s)\[.*?\]`)
	underscoreRuns    = regexp.MustCompile(`_{2,}`)
)

// NormalizeName converts a raw service name or walk path into a map key.
//
//	"services.web-api"   -> "web_api"
//	"jobs[0].deploy"     -> "jobs_deploy"
//	"__a..b__"           -> "a_b"
//
// Bracketed indexes are dropped before separators are collapsed, and the
// "services_" prefix is stripped last, repeatedly, so that
// NormalizeName(NormalizeName(x)) == NormalizeName(x) for every x.
func NormalizeName(name string) string {
	if name == "" {
		return ""
	}

	name = separatorReplacer.Replace(name)
	name = bracketPattern.ReplaceAllString(name, "")
	name = underscoreRuns.ReplaceAllString(name, "_")
	name = strings.Trim(name, "_")
	for strings.HasPrefix(name, servicesPrefix) {
		name = strings.TrimPrefix(name, servicesPrefix)
	}
	return name
}

// NormalizeServices returns a copy of s with every key normalized.
// Entries whose keys collide after normalization keep the value of the
// lexically last raw key.
func NormalizeServices(s Services) Services {
	keys := s.Names()
	out := make(Services, len(s))
	for _, k := range keys {
		out[NormalizeName(k)] = s[k]
	}
	return out
}
