package engine

import (
	"github.com/google/uuid"

	"github.com/merakitools/meraudit/internal/meraki"
	"github.com/merakitools/meraudit/internal/projector"
)

// DeviceRef identifies one device discovered by an earlier step,
// together with the network it was found in.
type DeviceRef struct {
	NetworkID   string
	NetworkName string
	Serial      string
	Name        string
}

// RunContext holds the state of one playbook execution: the networks
// selected at launch, and the accumulated outputs later steps resolve
// against. It is owned by the engine for the lifetime of one run.
type RunContext struct {
	RunID    string
	Networks []meraki.Network

	outputs map[string][]projector.Row
	devices map[string][]DeviceRef
}

// NewRunContext creates a context for one run over the given networks.
func NewRunContext(networks []meraki.Network) *RunContext {
	return &RunContext{
		RunID:    uuid.New().String(),
		Networks: networks,
		outputs:  map[string][]projector.Row{},
		devices:  map[string][]DeviceRef{},
	}
}

// RegisterOutput records the projected rows of a completed step under
// its output name. Failed steps register an empty row set so the output
// exists yet supplies nothing.
func (rc *RunContext) RegisterOutput(name string, rows []projector.Row) {
	if rows == nil {
		rows = []projector.Row{}
	}
	rc.outputs[name] = rows
}

// Output returns the rows registered under an output name.
func (rc *RunContext) Output(name string) ([]projector.Row, bool) {
	rows, ok := rc.outputs[name]
	return rows, ok
}

// RegisterDevices records the device index a network-scoped step
// discovered. A successful step with zero devices registers an empty
// non-nil index; a failed step registers nothing, which dependents
// observe as an unresolved dependency.
func (rc *RunContext) RegisterDevices(name string, refs []DeviceRef) {
	if refs == nil {
		refs = []DeviceRef{}
	}
	rc.devices[name] = refs
}

// Devices returns the device index registered under an output name.
func (rc *RunContext) Devices(name string) ([]DeviceRef, bool) {
	refs, ok := rc.devices[name]
	return refs, ok
}
