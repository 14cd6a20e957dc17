package project

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

type registryEntry struct {
	Code     string   `yaml:"code"`
	Name     string   `yaml:"name"`
	Features []string `yaml:"features"`
}

type registryFile struct {
	Projects []registryEntry `yaml:"projects"`
}

// Registry maps a project code to its metadata. Codes not present in the
// registry still resolve to a bare project, so a missing registry file only
// loses names and feature flags, never access.
type Registry struct {
	byCode map[string]Project
}

// Get returns the registered project for code, or a bare project carrying
// just the code when it is unknown.
func (r *Registry) Get(code string) Project {
	code = NormalizeCode(code)
	if r != nil {
		if p, ok := r.byCode[code]; ok {
			return p
		}
	}
	return Project{Code: code}
}

// Len returns the number of registered projects.
func (r *Registry) Len() int {
	if r == nil {
		return 0
	}
	return len(r.byCode)
}

// LoadRegistry parses a YAML project registry.
func LoadRegistry(r io.Reader) (*Registry, error) {
	var f registryFile
	dec := yaml.NewDecoder(r)
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("decoding project registry: %w", err)
	}

	reg := &Registry{byCode: make(map[string]Project, len(f.Projects))}
	for _, e := range f.Projects {
		code := NormalizeCode(e.Code)
		if code == "" {
			continue
		}
		p := Project{Code: code, Name: e.Name}
		if len(e.Features) > 0 {
			p.Features = make(map[string]bool, len(e.Features))
			for _, feat := range e.Features {
				p.Features[feat] = true
			}
		}
		reg.byCode[code] = p
	}
	return reg, nil
}

// LoadRegistryFile reads a YAML project registry from disk. An empty path
// yields an empty registry.
func LoadRegistryFile(path string) (*Registry, error) {
	if path == "" {
		return &Registry{byCode: map[string]Project{}}, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening project registry: %w", err)
	}
	defer f.Close()
	return LoadRegistry(f)
}
