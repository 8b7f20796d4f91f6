package playbook

// Playbook is the top-level playbook structure. Immutable once loaded;
// one Playbook is held for the duration of a single run.
type Playbook struct {
	Config Config `yaml:"config"`
	Steps  []Step `yaml:"api_calls"`
}

// Config holds playbook metadata.
type Config struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description,omitempty"`
	Version     string `yaml:"version,omitempty"`
	Author      string `yaml:"author,omitempty"`
}

// Step describes one API call group in a playbook.
type Step struct {
	Name   string `yaml:"name"`
	API    Call   `yaml:"api"`
	Output string `yaml:"output"`
}

// Call describes the API invocation of a step.
type Call struct {
	Endpoint       string         `yaml:"endpoint"`
	Method         string         `yaml:"method"`
	Filters        map[string]any `yaml:"filters,omitempty"`
	RequiresDevice bool           `yaml:"requires_device,omitempty"`
	DependsOn      string         `yaml:"depends_on,omitempty"`
	OutputFilter   []string       `yaml:"output_filter,omitempty"`
}
