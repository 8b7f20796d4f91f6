package engine

import (
	"fmt"

	runerrors "github.com/merakitools/meraudit/internal/errors"
	"github.com/merakitools/meraudit/internal/playbook"
)

// Target is the concrete scope of one invocation of a step: a network,
// or a (network, device) pair for device-scoped steps.
type Target struct {
	NetworkID   string
	NetworkName string
	Serial      string
	DeviceName  string
}

// resolveTargets enumerates the invocations a step needs. Network-scoped
// steps get one target per selected network, in launch order.
// Device-scoped steps get one target per device recorded under the
// step's depends_on output, in the order the upstream rows produced
// them, so report rows stay deterministic across runs.
func resolveTargets(step playbook.Step, rc *RunContext) ([]Target, error) {
	if !step.API.RequiresDevice {
		targets := make([]Target, 0, len(rc.Networks))
		for _, n := range rc.Networks {
			targets = append(targets, Target{NetworkID: n.ID, NetworkName: n.Name})
		}
		return targets, nil
	}

	refs, ok := rc.Devices(step.API.DependsOn)
	if !ok {
		return nil, runerrors.NewUnresolvedDependency(step.Name,
			fmt.Sprintf("output %q supplied no device identifiers", step.API.DependsOn))
	}
	targets := make([]Target, 0, len(refs))
	for _, ref := range refs {
		targets = append(targets, Target{
			NetworkID:   ref.NetworkID,
			NetworkName: ref.NetworkName,
			Serial:      ref.Serial,
			DeviceName:  ref.Name,
		})
	}
	return targets, nil
}
