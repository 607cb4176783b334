package config

import (
	"encoding/json"
	"fmt"
	"os"
)

// ExampleFile is the default name written by WriteExample.
const ExampleFile = "config.example.json"

// Example returns the sample configuration written by WriteExample.
func Example() *Config {
	cfg := Default()
	cfg.Token = "YOUR_PRIVATE_TOKEN_HERE"
	cfg.Group = "your-group-name"
	cfg.MaxProjects = 50
	cfg.IgnoreProjects = []string{"test-", "demo-", "example-"}
	return cfg
}

// WriteExample writes Example() as indented JSON to path. An existing file
// is only replaced when overwrite is set.
func WriteExample(path string, overwrite bool) error {
	if path == "" {
		path = ExampleFile
	}
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s already exists", path)
		}
	}

	data, err := json.MarshalIndent(Example(), "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}
