package engine

import (
	"context"

	runerrors "github.com/merakitools/meraudit/internal/errors"
	"github.com/merakitools/meraudit/internal/meraki"
	"github.com/merakitools/meraudit/internal/playbook"
)

// Caller is the API client boundary the engine executes against.
// *meraki.Client satisfies it; tests supply stubs.
type Caller interface {
	Call(ctx context.Context, spec meraki.CallSpec, id string, filters map[string]any) (any, error)
}

// executeTarget issues one resolved invocation and returns its raw
// JSON result. Client failures come back as API_CALL errors tagged
// with the step name.
func executeTarget(ctx context.Context, caller Caller, spec meraki.CallSpec, step playbook.Step, target Target) (any, error) {
	id := target.NetworkID
	if step.API.RequiresDevice {
		id = target.Serial
	}

	raw, err := caller.Call(ctx, spec, id, step.API.Filters)
	if err != nil {
		if re, ok := err.(*runerrors.RunError); ok {
			tagged := *re
			tagged.Step = step.Name
			return nil, &tagged
		}
		return nil, runerrors.NewAPICall(step.Name, 0, err.Error())
	}
	return annotate(raw, step, target), nil
}

// annotate stamps network and device context onto each result object so
// output filters can project networkName, deviceSerial and friends even
// though the API response itself does not carry them. Existing fields
// are never overwritten.
func annotate(raw any, step playbook.Step, target Target) any {
	switch v := raw.(type) {
	case []any:
		for _, item := range v {
			annotate(item, step, target)
		}
	case map[string]any:
		setIfAbsent(v, "networkId", target.NetworkID)
		setIfAbsent(v, "networkName", target.NetworkName)
		if step.API.RequiresDevice {
			setIfAbsent(v, "deviceSerial", target.Serial)
			setIfAbsent(v, "deviceName", target.DeviceName)
		}
	}
	return raw
}

func setIfAbsent(obj map[string]any, key, value string) {
	if _, ok := obj[key]; !ok && value != "" {
		obj[key] = value
	}
}

// deviceRefs extracts a device index from the raw results of a
// network-scoped step: every object carrying a serial becomes a
// DeviceRef, in result order.
func deviceRefs(raw any, target Target) []DeviceRef {
	list, ok := raw.([]any)
	if !ok {
		return nil
	}
	var refs []DeviceRef
	for _, item := range list {
		obj, ok := item.(map[string]any)
		if !ok {
			continue
		}
		serial, ok := obj["serial"].(string)
		if !ok || serial == "" {
			continue
		}
		name, _ := obj["name"].(string)
		refs = append(refs, DeviceRef{
			NetworkID:   target.NetworkID,
			NetworkName: target.NetworkName,
			Serial:      serial,
			Name:        name,
		})
	}
	return refs
}
