package playbook

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	runerrors "github.com/merakitools/meraudit/internal/errors"
)

func networkStep(name, output string) Step {
	return Step{
		Name:   name,
		API:    Call{Endpoint: "networks.devices", Method: "getNetworkDevices"},
		Output: output,
	}
}

func deviceStep(name, output, dependsOn string) Step {
	return Step{
		Name: name,
		API: Call{
			Endpoint:       "devices.switch.ports",
			Method:         "getDeviceSwitchPorts",
			RequiresDevice: true,
			DependsOn:      dependsOn,
		},
		Output: output,
	}
}

func TestValidateAcceptsDeviceChain(t *testing.T) {
	p := &Playbook{
		Config: Config{Name: "ok"},
		Steps: []Step{
			networkStep("get_switches", "switches"),
			deviceStep("get_ports", "ports", "switches"),
		},
	}
	require.NoError(t, Validate(p))
}

func TestValidateRejectsDuplicateName(t *testing.T) {
	p := &Playbook{
		Config: Config{Name: "dup"},
		Steps: []Step{
			networkStep("s1", "a"),
			networkStep("s1", "b"),
		},
	}
	err := Validate(p)
	require.Error(t, err)
	assert.True(t, runerrors.IsKind(err, runerrors.MalformedPlaybook))
	assert.Contains(t, err.Error(), "duplicate")
}

func TestValidateRejectsDuplicateOutput(t *testing.T) {
	p := &Playbook{
		Config: Config{Name: "dup"},
		Steps: []Step{
			networkStep("s1", "same"),
			networkStep("s2", "same"),
		},
	}
	err := Validate(p)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reuses output")
}

func TestValidateRejectsUnknownEndpoint(t *testing.T) {
	p := &Playbook{
		Config: Config{Name: "bad"},
		Steps: []Step{{
			Name:   "s1",
			API:    Call{Endpoint: "networks.teapots", Method: "getNetworkTeapots"},
			Output: "teapots",
		}},
	}
	err := Validate(p)
	require.Error(t, err)
	assert.True(t, runerrors.IsKind(err, runerrors.MalformedPlaybook))
	assert.Contains(t, err.Error(), "unknown endpoint/method")
}

func TestValidateRejectsOrganizationScope(t *testing.T) {
	// The runner only resolves network and device targets, so
	// organization-scoped catalog entries must be refused up front
	// instead of producing wrong-scoped requests at call time.
	p := &Playbook{
		Config: Config{Name: "bad"},
		Steps: []Step{{
			Name:   "s1",
			API:    Call{Endpoint: "organizations.licenses", Method: "getOrganizationLicenses"},
			Output: "licenses",
		}},
	}
	err := Validate(p)
	require.Error(t, err)
	assert.True(t, runerrors.IsKind(err, runerrors.MalformedPlaybook))
	assert.Contains(t, err.Error(), "organization-scoped")
}

func TestValidateRejectsScopeMismatch(t *testing.T) {
	// Device-scoped method without requires_device.
	p := &Playbook{
		Config: Config{Name: "bad"},
		Steps: []Step{{
			Name:   "s1",
			API:    Call{Endpoint: "devices.switch.ports", Method: "getDeviceSwitchPorts"},
			Output: "ports",
		}},
	}
	require.Error(t, Validate(p))

	// requires_device on a network-scoped method.
	p = &Playbook{
		Config: Config{Name: "bad"},
		Steps: []Step{{
			Name:   "s1",
			API:    Call{Endpoint: "networks.devices", Method: "getNetworkDevices", RequiresDevice: true, DependsOn: "x"},
			Output: "devices",
		}},
	}
	require.Error(t, Validate(p))
}

func TestValidateRequiresDependsOn(t *testing.T) {
	p := &Playbook{
		Config: Config{Name: "bad"},
		Steps: []Step{
			networkStep("get_switches", "switches"),
			deviceStep("get_ports", "ports", ""),
		},
	}
	err := Validate(p)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "depends_on")
}

func TestValidateRejectsUnknownDependency(t *testing.T) {
	p := &Playbook{
		Config: Config{Name: "bad"},
		Steps: []Step{
			networkStep("get_switches", "switches"),
			deviceStep("get_ports", "ports", "missing"),
		},
	}
	err := Validate(p)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown output")
}

func TestValidateRejectsForwardDependency(t *testing.T) {
	// The dependency's output is declared after the dependent step, so
	// at validation time it is simply unknown.
	p := &Playbook{
		Config: Config{Name: "bad"},
		Steps: []Step{
			deviceStep("get_ports", "ports", "switches"),
			networkStep("get_switches", "switches"),
		},
	}
	require.Error(t, Validate(p))
}

func TestValidateRejectsNonNetworkDependency(t *testing.T) {
	p := &Playbook{
		Config: Config{Name: "bad"},
		Steps: []Step{
			networkStep("get_switches", "switches"),
			deviceStep("get_ports", "ports", "switches"),
			deviceStep("get_more_ports", "ports2", "ports"),
		},
	}
	err := Validate(p)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not a network-scoped")
}
