package manifest

import (
	"fmt"
	"regexp"
)

// fallbackPatterns recognize image lines in manifests that do not parse.
// They run in order over the whole content.
var fallbackPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?mi)^\s*image\s*:\s*["']?([^"'\n]+)["']?`),
	regexp.MustCompile(`(?mi)"image"\s*:\s*"([^"]+)"`),
	regexp.MustCompile(`(?mi)'image'\s*:\s*'([^']+)'`),
	regexp.MustCompile(`(?mi)^\s*(\w+)\s*:\s*\n\s+image\s*:\s*["']?([^"'\n]+)["']?`),
}

// extractWithRegex applies fallbackPatterns. A match with one capture is
// keyed service_<n>, where n is the number of entries found so far; a match
// with two captures is keyed by the first.
func extractWithRegex(content string) Services {
	services := Services{}
	for _, re := range fallbackPatterns {
		for _, m := range re.FindAllStringSubmatch(content, -1) {
			switch len(m) - 1 {
			case 1:
				services[fmt.Sprintf("service_%d", len(services))] = ExtractImageTag(m[1])
			case 2:
				services[m[1]] = ExtractImageTag(m[2])
			}
		}
	}
	return services
}
