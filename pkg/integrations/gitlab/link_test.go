package gitlab

import "testing"

func TestParseLinks(t *testing.T) {
	header := `<https://gitlab.com/api/v4/projects?page=2&per_page=50>; rel="next", ` +
		`<https://gitlab.com/api/v4/projects?page=1&per_page=50>; rel="first", ` +
		`<https://gitlab.com/api/v4/projects?page=9&per_page=50>; rel="last"`

	links := parseLinks(header)
	if got := links["next"]; got != "https://gitlab.com/api/v4/projects?page=2&per_page=50" {
		t.Errorf("next = %q", got)
	}
	if got := links["last"]; got != "https://gitlab.com/api/v4/projects?page=9&per_page=50" {
		t.Errorf("last = %q", got)
	}
}

func TestHasNext(t *testing.T) {
	tests := []struct {
		header string
		want   bool
	}{
		{"", false},
		{`<https://x/p?page=1>; rel="first"`, false},
		{`<https://x/p?page=2>; rel="next"`, true},
		{`<https://x/p?page=2>; rel=next`, true},
		{`<https://x/p?page=1>; rel="prev", <https://x/p?page=3>; rel="next"`, true},
		{`https://x/p?page=2; rel="next"`, false},
	}

	for _, tt := range tests {
		if got := hasNext(tt.header); got != tt.want {
			t.Errorf("hasNext(%q) = %v, want %v", tt.header, got, tt.want)
		}
	}
}
