package playbook

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	runerrors "github.com/merakitools/meraudit/internal/errors"
)

// LoadFile reads and parses a playbook YAML file.
func LoadFile(path string) (*Playbook, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading playbook file: %w", err)
	}
	return Load(data)
}

// Load parses playbook YAML bytes. Structural defects are reported as
// MALFORMED_PLAYBOOK errors before any API call is made.
func Load(data []byte) (*Playbook, error) {
	var p Playbook
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, runerrors.NewMalformedPlaybook(fmt.Sprintf("parsing YAML: %v", err), "")
	}
	if p.Config.Name == "" {
		return nil, runerrors.NewMalformedPlaybook("playbook has no config.name", "")
	}
	if len(p.Steps) == 0 {
		return nil, runerrors.NewMalformedPlaybook("playbook has no api_calls", "")
	}
	if p.Config.Version == "" {
		p.Config.Version = "1.0"
	}
	for i, s := range p.Steps {
		switch {
		case s.Name == "":
			return nil, runerrors.NewMalformedPlaybook(fmt.Sprintf("api call at index %d has no name", i), "")
		case s.API.Endpoint == "":
			return nil, runerrors.NewMalformedPlaybook(fmt.Sprintf("api call %q has no api.endpoint", s.Name), "")
		case s.API.Method == "":
			return nil, runerrors.NewMalformedPlaybook(fmt.Sprintf("api call %q has no api.method", s.Name), "")
		case s.Output == "":
			return nil, runerrors.NewMalformedPlaybook(fmt.Sprintf("api call %q has no output", s.Name), "")
		}
	}
	return &p, nil
}
