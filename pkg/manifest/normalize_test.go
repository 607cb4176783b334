package manifest

import "testing"

func TestNormalizeName(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"", ""},
		{"web", "web"},
		{"web-api", "web_api"},
		{"services.web", "web"},
		{"services.web-api", "web_api"},
		{"services_web", "web"},
		{"__services_web", "web"},
		{"services[0].web", "web"},
		{"jobs[0]", "jobs"},
		{"jobs[1].steps[0]", "jobs_steps"},
		{"a[x.y]b", "ab"},
		{"__a..b__", "a_b"},
		{"a---b", "a_b"},
		{"services", "services"},
		{"services_", "services"},
		{"services.services.web", "web"},
		{"my.services.web", "my_services_web"},
		{"[0]", ""},
		{"unnamed", "unnamed"},
		{"service_0", "service_0"},
	}

	for _, tt := range tests {
		if got := NormalizeName(tt.name); got != tt.want {
			t.Errorf("NormalizeName(%q) = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestNormalizeNameIdempotent(t *testing.T) {
	inputs := []string{
		"", "_", "-", ".", "[", "]", "[]", "[[a]]", "a[b", "a]b[c]",
		"services", "services_", "_services_x", "services__x", "services[0]_web",
		"services.services_services-x", "x.-_.y", "services-.web", "a[0]-[1].b",
		"ünï-cødé.name", "services_[1]_", "__services__services__",
	}

	for _, in := range inputs {
		once := NormalizeName(in)
		if twice := NormalizeName(once); twice != once {
			t.Errorf("NormalizeName not idempotent for %q: %q then %q", in, once, twice)
		}
	}
}

func TestNormalizeServices(t *testing.T) {
	raw := Services{
		"services.web": "1.21",
		"jobs[0]":      "v3",
		"api-gateway":  "2.0",
	}

	got := NormalizeServices(raw)
	want := Services{"web": "1.21", "jobs": "v3", "api_gateway": "2.0"}
	if len(got) != len(want) {
		t.Fatalf("NormalizeServices() = %v, want %v", got, want)
	}
	for k, v := range want {
		if got[k] != v {
			t.Errorf("NormalizeServices()[%q] = %q, want %q", k, got[k], v)
		}
	}
}
