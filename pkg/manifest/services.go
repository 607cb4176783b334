package manifest

import "sort"

// Services maps a service name to its image tag.
type Services map[string]string

// Names returns the service names in sorted order.
func (s Services) Names() []string {
	names := make([]string, 0, len(s))
	for name := range s {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Mode reports how a manifest was read.
type Mode int

const (
	// ModeEmpty means the manifest held no document (or only null).
	ModeEmpty Mode = iota
	// ModeYAML means the manifest parsed and was walked.
	ModeYAML
	// ModeRegex means parsing failed, or the content held several
	// documents, and the regex fallback ran.
	ModeRegex
	// ModeFailed means extraction failed for another reason.
	ModeFailed
)

func (m Mode) String() string {
	switch m {
	case ModeEmpty:
		return "empty"
	case ModeYAML:
		return "yaml"
	case ModeRegex:
		return "regex"
	case ModeFailed:
		return "failed"
	}
	return "unknown"
}
