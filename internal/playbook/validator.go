package playbook

import (
	"fmt"

	runerrors "github.com/merakitools/meraudit/internal/errors"
	"github.com/merakitools/meraudit/internal/meraki"
)

// Validate checks a playbook for structural correctness beyond what the
// loader enforces: unique names and outputs, known endpoint/method
// pairs of network or device scope, scope agreement with
// requires_device, and explicit backward
// dependencies for device-scoped steps. Forward references are
// rejected, so dependency cycles cannot occur.
func Validate(p *Playbook) error {
	names := map[string]bool{}
	outputIndex := map[string]int{}
	outputScope := map[string]meraki.Scope{}

	for i, s := range p.Steps {
		if names[s.Name] {
			return runerrors.NewMalformedPlaybook(
				fmt.Sprintf("duplicate api call name %q", s.Name), "")
		}
		names[s.Name] = true

		if _, dup := outputIndex[s.Output]; dup {
			return runerrors.NewMalformedPlaybook(
				fmt.Sprintf("api call %q reuses output %q", s.Name, s.Output),
				"each api call needs a unique output folder name")
		}

		spec, ok := meraki.Lookup(s.API.Endpoint, s.API.Method)
		if !ok {
			return runerrors.NewMalformedPlaybook(
				fmt.Sprintf("api call %q: unknown endpoint/method %s.%s", s.Name, s.API.Endpoint, s.API.Method),
				"run 'meraudit endpoints' for the supported catalog")
		}

		if spec.Scope == meraki.ScopeOrganization {
			return runerrors.NewMalformedPlaybook(
				fmt.Sprintf("api call %q: %s.%s is organization-scoped", s.Name, s.API.Endpoint, s.API.Method),
				"organization-scoped calls are not playbook-executable; see 'meraudit inventory'")
		}

		if s.API.RequiresDevice != (spec.Scope == meraki.ScopeDevice) {
			if s.API.RequiresDevice {
				return runerrors.NewMalformedPlaybook(
					fmt.Sprintf("api call %q sets requires_device but %s.%s is %s-scoped", s.Name, s.API.Endpoint, s.API.Method, spec.Scope), "")
			}
			return runerrors.NewMalformedPlaybook(
				fmt.Sprintf("api call %q: %s.%s is device-scoped and needs requires_device", s.Name, s.API.Endpoint, s.API.Method), "")
		}

		if s.API.RequiresDevice {
			if s.API.DependsOn == "" {
				return runerrors.NewMalformedPlaybook(
					fmt.Sprintf("api call %q requires a device source: set api.depends_on to an earlier output", s.Name), "")
			}
			idx, exists := outputIndex[s.API.DependsOn]
			if !exists {
				return runerrors.NewMalformedPlaybook(
					fmt.Sprintf("api call %q depends on unknown output %q", s.Name, s.API.DependsOn),
					"depends_on must name the output of an earlier api call")
			}
			if idx >= i {
				// Unreachable while outputs are registered in order; kept as a guard.
				return runerrors.NewMalformedPlaybook(
					fmt.Sprintf("api call %q has a forward reference to %q", s.Name, s.API.DependsOn), "")
			}
			if outputScope[s.API.DependsOn] != meraki.ScopeNetwork {
				return runerrors.NewMalformedPlaybook(
					fmt.Sprintf("api call %q depends on %q, which is not a network-scoped device listing", s.Name, s.API.DependsOn), "")
			}
		}

		outputIndex[s.Output] = i
		outputScope[s.Output] = spec.Scope
	}

	return nil
}
