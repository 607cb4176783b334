package manifest

import (
	"fmt"
	"strings"
	"testing"
)

func assertServices(t *testing.T, got, want Services) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("services = %v, want %v", got, want)
	}
	for k, v := range want {
		g, ok := got[k]
		if !ok {
			t.Errorf("missing service %q in %v", k, got)
			continue
		}
		if g != v {
			t.Errorf("service %q = %q, want %q", k, g, v)
		}
	}
}

func TestExtractServicesNested(t *testing.T) {
	content := `
services:
  web:
    image: nginx:1.21
    environment:
      image: hidden:env
    build:
      image: hidden:build
  api:
    image: "registry.example.com:5000/api:${API_TAG}"
    volumes:
      - image: hidden:volume
    ports:
      - image: hidden:port
    networks:
      default:
        image: hidden:network
jobs:
  - name: migrate
    image: migrate:v3
  - steps:
      - image: busybox:1.36
`
	got, mode := Extract(content)
	if mode != ModeYAML {
		t.Errorf("mode = %v, want yaml", mode)
	}
	assertServices(t, got, Services{
		"services.web":     "1.21",
		"services.api":     "API_TAG",
		"jobs[0]":          "v3",
		"jobs[1].steps[0]": "1.36",
	})
}

func TestExtractServicesRootNaming(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    Services
	}{
		{"name field", "name: worker\nimage: alpine:3.19\n", Services{"worker": "3.19"}},
		{"container_name field", "container_name: db\nimage: postgres:16\n", Services{"db": "16"}},
		{"service field", "service: cache\nimage: redis:7\n", Services{"cache": "7"}},
		{"name wins over service", "service: b\nname: a\nimage: x:1\n", Services{"a": "1"}},
		{"unnamed", "image: alpine\n", Services{"unnamed": "alpine"}},
		{"null name skipped", "name: ~\nservice: s\nimage: x:1\n", Services{"s": "1"}},
		{"root sequence", "- image: a:1\n- image: b:2\n", Services{"[0]": "1", "[1]": "2"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertServices(t, ExtractServices(tt.content), tt.want)
		})
	}
}

func TestExtractServicesNonStringImage(t *testing.T) {
	content := `
a:
  image: 123
b:
  image: null
c:
  image:
    repository: nginx
    tag: "1.0"
d:
  image: "123"
`
	assertServices(t, ExtractServices(content), Services{"d": "123"})
}

func TestExtractServicesMergeKeys(t *testing.T) {
	content := `
x-base: &base
  image: base:1.0
  restart: always
app:
  <<: *base
  command: run
worker:
  <<: *base
  image: worker:2.0
`
	assertServices(t, ExtractServices(content), Services{
		"x-base": "1.0",
		"app":    "1.0",
		"worker": "2.0",
	})
}

func TestExtractServicesAlias(t *testing.T) {
	content := `
defaults: &d {image: "shared:9"}
svc: *d
`
	assertServices(t, ExtractServices(content), Services{
		"defaults": "9",
		"svc":      "9",
	})
}

func TestExtractServicesMultiDocument(t *testing.T) {
	deployment := func(name, image string) string {
		return "kind: Deployment\nspec:\n  template:\n    spec:\n      containers:\n" +
			"        - name: " + name + "\n          image: " + image + "\n"
	}
	content := deployment("api", "acme/api:1.0") + "---\n" + deployment("web", "acme/web:2.0")

	got, mode := Extract(content)
	if mode != ModeRegex {
		t.Errorf("mode = %v, want regex", mode)
	}
	assertServices(t, got, Services{"service_0": "1.0", "service_1": "2.0"})
}

func TestExtractServicesSingleDocumentWithMarkers(t *testing.T) {
	got, mode := Extract("---\nweb:\n  image: nginx:1.25\n---\n")
	if mode != ModeYAML {
		t.Errorf("mode = %v, want yaml", mode)
	}
	assertServices(t, got, Services{"web": "1.25"})
}

func TestExtractServicesEmpty(t *testing.T) {
	for _, content := range []string{"", "\n", "---\n", "null\n", "# only a comment\n"} {
		got, mode := Extract(content)
		if len(got) != 0 {
			t.Errorf("Extract(%q) = %v, want empty", content, got)
		}
		if mode != ModeEmpty {
			t.Errorf("Extract(%q) mode = %v, want empty", content, mode)
		}
	}
}

func TestExtractServicesNoImages(t *testing.T) {
	got, mode := Extract("stages:\n  - build\n  - test\nvariables:\n  FOO: bar\n")
	if len(got) != 0 || mode != ModeYAML {
		t.Errorf("Extract() = %v (%v), want empty yaml result", got, mode)
	}
}

func TestExtractServicesDeepNesting(t *testing.T) {
	var b strings.Builder
	var path []string
	for i := 0; i < 40; i++ {
		fmt.Fprintf(&b, "%sl%d:\n", strings.Repeat("  ", i), i)
		path = append(path, fmt.Sprintf("l%d", i))
	}
	fmt.Fprintf(&b, "%simage: deep:42\n", strings.Repeat("  ", 40))

	assertServices(t, ExtractServices(b.String()), Services{strings.Join(path, "."): "42"})
}

func TestExtractServicesRegexFallback(t *testing.T) {
	content := "web:\n  image: nginx:1.21\nworker:\n  image: 'redis:7'\n  command: [run\n"

	got, mode := Extract(content)
	if mode != ModeRegex {
		t.Fatalf("mode = %v, want regex", mode)
	}
	assertServices(t, got, Services{
		"service_0": "1.21",
		"service_1": "7",
		"web":       "1.21",
		"worker":    "7",
	})
}

func TestExtractWithRegexQuotedForms(t *testing.T) {
	content := `{"image": "postgres:16"} and {'image': 'mysql:8'}`

	assertServices(t, extractWithRegex(content), Services{
		"service_0": "16",
		"service_1": "8",
	})
}
