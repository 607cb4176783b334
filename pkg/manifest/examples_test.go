package manifest

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestExampleManifests(t *testing.T) {
	tests := []struct {
		file string
		mode Mode
		want Services
	}{
		{"values.yaml", ModeYAML, Services{
			"api":              "2.14.1",
			"worker":           "2.14.1",
			"metrics-exporter": "v0.26.0",
		}},
		{"stack.yml", ModeYAML, Services{
			"x-defaults":       "1.0.0",
			"services.gateway": "1.25-alpine",
			"services.billing": "1.0.0",
			"services.cron":    "CRON_TAG",
		}},
		{"deploy.yaml", ModeRegex, Services{
			"service_0": "3.2.0",
			"service_1": "1.4.0",
			"service_2": "v1.29.1",
		}},
	}

	for _, tt := range tests {
		t.Run(tt.file, func(t *testing.T) {
			data, err := os.ReadFile(filepath.Join("..", "..", "examples", "manifests", tt.file))
			if err != nil {
				t.Fatal(err)
			}
			got, mode := Extract(string(data))
			if mode != tt.mode {
				t.Errorf("mode = %v, want %v", mode, tt.mode)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Extract() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestExampleManifestsNormalized(t *testing.T) {
	data, err := os.ReadFile(filepath.Join("..", "..", "examples", "manifests", "stack.yml"))
	if err != nil {
		t.Fatal(err)
	}
	got := NormalizeServices(ExtractServices(string(data)))
	want := Services{"x_defaults": "1.0.0", "gateway": "1.25-alpine", "billing": "1.0.0", "cron": "CRON_TAG"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("NormalizeServices() = %v, want %v", got, want)
	}
}
