package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestConfigInit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	c, out := newTestCLI()

	if err := execute(t, c, "config", "init", path); err != nil {
		t.Fatalf("config init: %v", err)
	}
	if !strings.Contains(out.String(), "Wrote "+path) {
		t.Errorf("output = %q", out.String())
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `"ignore_projects"`) {
		t.Errorf("example config:\n%s", data)
	}

	if err := execute(t, c, "config", "init", path); err == nil {
		t.Error("expected error when the file exists")
	}
	if err := execute(t, c, "config", "init", path, "--force"); err != nil {
		t.Errorf("config init --force: %v", err)
	}
}

func TestConfigShowRedactsToken(t *testing.T) {
	setupEnv(t, "https://gitlab.example.com")
	t.Setenv("GITLAB_PRIVATE_TOKEN", "glpat-0123456789abcdef")

	c, out := newTestCLI()
	if err := execute(t, c, "config", "show"); err != nil {
		t.Fatalf("config show: %v", err)
	}
	if strings.Contains(out.String(), "glpat-0123456789abcdef") {
		t.Error("token printed in clear")
	}
	if !strings.Contains(out.String(), `"gitlab_url": "https://gitlab.example.com"`) {
		t.Errorf("output:\n%s", out.String())
	}
}

func TestHistoryWithoutArchive(t *testing.T) {
	setupEnv(t, "https://gitlab.example.com")
	c, _ := newTestCLI()
	if err := execute(t, c, "history"); err != errNoArchive {
		t.Errorf("err = %v, want %v", err, errNoArchive)
	}
}
