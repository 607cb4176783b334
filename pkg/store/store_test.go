package store

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/matzehuels/servicescan/pkg/collector"
	"github.com/matzehuels/servicescan/pkg/manifest"
)

func sampleResult(id string, at time.Time) *collector.Result {
	return &collector.Result{
		RunID:       id,
		Group:       "platform",
		CollectedAt: at,
		Projects: map[string]collector.Manifests{
			"billing": {
				"deploy/values.yaml": manifest.Services{"api": "1.2.0", "worker": "1.2.1"},
			},
			"web.frontend": {
				"chart.yml": manifest.Services{"web": "latest"},
			},
		},
		Stats: collector.Stats{TotalProjects: 3, ProjectsWithYAML: 2, TotalYAMLFiles: 2, TotalServices: 3, Errors: 1},
	}
}

func TestDocumentConversion(t *testing.T) {
	at := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	res := sampleResult("run-1", at)

	doc := toDocument(res)
	if len(doc.Projects) != 2 || doc.Projects[0].Name != "billing" || doc.Projects[1].Name != "web.frontend" {
		t.Fatalf("projects not sorted by name: %+v", doc.Projects)
	}
	svcs := doc.Projects[0].Manifests[0].Services
	if len(svcs) != 2 || svcs[0] != (serviceDocument{Name: "api", Tag: "1.2.0"}) {
		t.Errorf("services = %+v", svcs)
	}
	if doc.Stats.Errors != 1 {
		t.Errorf("stats not copied: %+v", doc.Stats)
	}

	back := fromDocument(doc)
	if !reflect.DeepEqual(back, res) {
		t.Errorf("conversion lost data:\n got %+v\nwant %+v", back, res)
	}
}

func TestFileStore(t *testing.T) {
	ctx := context.Background()
	s, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close(ctx)

	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	for i, id := range []string{"a", "b", "c"} {
		if err := s.Save(ctx, sampleResult(id, base.Add(time.Duration(i)*time.Hour))); err != nil {
			t.Fatalf("Save(%s): %v", id, err)
		}
	}

	got, err := s.Get(ctx, "b")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.RunID != "b" || got.Projects["billing"]["deploy/values.yaml"]["worker"] != "1.2.1" {
		t.Errorf("unexpected run: %+v", got)
	}

	if _, err := s.Get(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get(missing) err = %v", err)
	}

	recent, err := s.Recent(ctx, 2)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(recent) != 2 || recent[0].RunID != "c" || recent[1].RunID != "b" {
		t.Errorf("Recent = %+v", recent)
	}
	if recent[0].Stats.TotalServices != 3 {
		t.Errorf("summary stats = %+v", recent[0].Stats)
	}
}

func TestFileStoreRejectsBadID(t *testing.T) {
	s, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	for _, id := range []string{"", "../x", `a\b`} {
		if err := s.Save(context.Background(), sampleResult(id, time.Now())); err == nil {
			t.Errorf("Save(%q) should fail", id)
		}
	}
}

func TestOpen(t *testing.T) {
	ctx := context.Background()

	st, err := Open(ctx, "")
	if err != nil || st != nil {
		t.Errorf("Open(\"\") = %v, %v", st, err)
	}

	dir := t.TempDir()
	st, err = Open(ctx, "file://"+dir)
	if err != nil {
		t.Fatalf("Open(file://): %v", err)
	}
	if fs, ok := st.(*FileStore); !ok || fs.Dir() != dir {
		t.Errorf("Open(file://) = %#v", st)
	}

	if _, err := Open(ctx, "postgres://x"); err == nil {
		t.Error("expected error for unsupported scheme")
	}
}
