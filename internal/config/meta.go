package config

import (
	"gopkg.in/yaml.v3"
)

type exampleRepo struct {
	ActiveBranch string `yaml:"active_branch"`
	Path         string `yaml:"path"`
	Priority     int    `yaml:"priority"`
}

type exampleFile struct {
	System map[string]any         `yaml:"system"`
	Repos  map[string]exampleRepo `yaml:"repos"`
}

// Example returns a sample registry.yaml built from the defaults
func Example() ([]byte, error) {
	var d struct {
		System map[string]any `yaml:"system"`
	}
	if err := yaml.Unmarshal([]byte(defaults), &d); err != nil {
		return nil, err
	}

	return yaml.Marshal(exampleFile{
		System: d.System,
		Repos: map[string]exampleRepo{
			"api": {ActiveBranch: "main", Path: "~/projects/api", Priority: 9},
			"web": {ActiveBranch: "develop", Path: "~/projects/web", Priority: 5},
		},
	})
}
