package report

import (
	"fmt"
	"strings"
)

// Format identifies an output format.
type Format string

const (
	FormatJSON Format = "json"
	FormatText Format = "text"
	FormatCSV  Format = "csv"
	FormatDOT  Format = "dot"
	FormatSVG  Format = "svg"
)

// DefaultFormats is what "all" expands to.
var DefaultFormats = []Format{FormatJSON, FormatText, FormatCSV}

// AllFormats lists every supported format.
var AllFormats = []Format{FormatJSON, FormatText, FormatCSV, FormatDOT, FormatSVG}

// ParseFormats parses a comma-separated format list. "all" (or an empty
// string) selects DefaultFormats. Duplicates are dropped.
func ParseFormats(s string) ([]Format, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	if s == "" || s == "all" {
		return DefaultFormats, nil
	}

	var out []Format
	seen := make(map[Format]bool)
	for _, part := range strings.Split(s, ",") {
		f := Format(strings.TrimSpace(part))
		if f == "all" {
			for _, d := range DefaultFormats {
				if !seen[d] {
					seen[d] = true
					out = append(out, d)
				}
			}
			continue
		}
		if !f.valid() {
			return nil, fmt.Errorf("unknown format %q (want json, text, csv, dot, svg or all)", f)
		}
		if !seen[f] {
			seen[f] = true
			out = append(out, f)
		}
	}
	return out, nil
}

func (f Format) valid() bool {
	for _, a := range AllFormats {
		if f == a {
			return true
		}
	}
	return false
}

// filename returns the output file name of f for the timestamp ts.
func (f Format) filename(ts string) string {
	switch f {
	case FormatJSON:
		return "gitlab_services_" + ts + ".json"
	case FormatText:
		return "services_structure_" + ts + ".txt"
	case FormatCSV:
		return "services_" + ts + ".csv"
	case FormatDOT:
		return "services_graph_" + ts + ".dot"
	case FormatSVG:
		return "services_graph_" + ts + ".svg"
	}
	return string(f) + "_" + ts
}
