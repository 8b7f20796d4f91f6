package meraki

import "sort"

// Scope is the identifier kind a call is issued against.
type Scope int

const (
	ScopeOrganization Scope = iota
	ScopeNetwork
	ScopeDevice
)

func (s Scope) String() string {
	switch s {
	case ScopeOrganization:
		return "organization"
	case ScopeNetwork:
		return "network"
	case ScopeDevice:
		return "device"
	}
	return "unknown"
}

// CallSpec binds an (endpoint, method) pair from a playbook to a
// concrete Dashboard API route. PathTemplate contains one {organizationId},
// {networkId} or {serial} placeholder matching Scope.
type CallSpec struct {
	Endpoint     string
	Method       string
	Scope        Scope
	PathTemplate string
	Description  string
}

// registry is the static catalog of supported Dashboard API calls.
// Playbooks are validated against it at load time: an unknown
// endpoint/method pair fails the load, never the call.
var registry = map[string]CallSpec{}

func register(spec CallSpec) {
	registry[spec.Endpoint+"."+spec.Method] = spec
}

func init() {
	// Network scope
	register(CallSpec{"networks.devices", "getNetworkDevices", ScopeNetwork,
		"/networks/{networkId}/devices", "List the devices in a network"})
	register(CallSpec{"networks.clients", "getNetworkClients", ScopeNetwork,
		"/networks/{networkId}/clients", "List the clients in a network"})
	register(CallSpec{"networks.vlans", "getNetworkVlans", ScopeNetwork,
		"/networks/{networkId}/appliance/vlans", "List the VLANs in a network"})
	register(CallSpec{"networks.switch.settings", "getNetworkSwitchSettings", ScopeNetwork,
		"/networks/{networkId}/switch/settings", "Get switch network settings"})
	register(CallSpec{"networks.switch.dhcp", "getNetworkSwitchDhcpServerPolicy", ScopeNetwork,
		"/networks/{networkId}/switch/dhcpServerPolicy", "Get DHCP server policy"})
	register(CallSpec{"networks.switch.mtu", "getNetworkSwitchMtu", ScopeNetwork,
		"/networks/{networkId}/switch/mtu", "Get switch MTU configuration"})
	register(CallSpec{"networks.switch.stormControl", "getNetworkSwitchStormControl", ScopeNetwork,
		"/networks/{networkId}/switch/stormControl", "Get storm control configuration"})
	register(CallSpec{"switch.accessPolicies", "getNetworkSwitchAccessPolicies", ScopeNetwork,
		"/networks/{networkId}/switch/accessPolicies", "List access policies for a network"})
	register(CallSpec{"switch.portSchedules", "getNetworkSwitchPortSchedules", ScopeNetwork,
		"/networks/{networkId}/switch/portSchedules", "List network port schedules"})
	register(CallSpec{"switch.qosRules", "getNetworkSwitchQosRules", ScopeNetwork,
		"/networks/{networkId}/switch/qosRules", "List QoS rules"})
	register(CallSpec{"switch.stp", "getNetworkSwitchStp", ScopeNetwork,
		"/networks/{networkId}/switch/stp", "Get STP settings"})

	// Device scope
	register(CallSpec{"devices.switch.ports", "getDeviceSwitchPorts", ScopeDevice,
		"/devices/{serial}/switch/ports", "List the switch ports for a device"})
	register(CallSpec{"devices.switch.portSchedules", "getDeviceSwitchPortSchedules", ScopeDevice,
		"/devices/{serial}/switch/ports/schedules", "List port schedules for a switch"})
	register(CallSpec{"devices.switch.routingInterfaces", "getDeviceSwitchRoutingInterfaces", ScopeDevice,
		"/devices/{serial}/switch/routing/interfaces", "List switch routing interfaces"})
	register(CallSpec{"devices.switch.poe", "getDeviceSwitchPortsStatuses", ScopeDevice,
		"/devices/{serial}/switch/ports/statuses", "Get status for all switch ports"})
	register(CallSpec{"devices.management.interface", "getDeviceManagementInterface", ScopeDevice,
		"/devices/{serial}/managementInterface", "Get device management interface settings"})
	register(CallSpec{"devices.lldp.cdp", "getDeviceLldpCdp", ScopeDevice,
		"/devices/{serial}/lldpCdp", "Get LLDP and CDP information"})

	// Organization scope
	register(CallSpec{"organizations.networks", "getOrganizationNetworks", ScopeOrganization,
		"/organizations/{organizationId}/networks", "List the networks in an organization"})
	register(CallSpec{"organizations.devices", "getOrganizationDevices", ScopeOrganization,
		"/organizations/{organizationId}/devices", "List the devices in an organization"})
	register(CallSpec{"organizations.inventory", "getOrganizationInventoryDevices", ScopeOrganization,
		"/organizations/{organizationId}/inventory/devices", "List organization inventory devices"})
	register(CallSpec{"organizations.licenses", "getOrganizationLicenses", ScopeOrganization,
		"/organizations/{organizationId}/licenses", "List organization licenses"})
	register(CallSpec{"monitoring.devices.status", "getOrganizationDevicesStatuses", ScopeOrganization,
		"/organizations/{organizationId}/devices/statuses", "Get device statuses"})
	register(CallSpec{"monitoring.devices.uplink", "getOrganizationDevicesUplinksLossAndLatency", ScopeOrganization,
		"/organizations/{organizationId}/devices/uplinksLossAndLatency", "Get uplink loss and latency for devices"})
	register(CallSpec{"monitoring.alerts", "getOrganizationAlertsProfiles", ScopeOrganization,
		"/organizations/{organizationId}/alerts/profiles", "List alert configurations"})
}

// Lookup returns the CallSpec for an endpoint/method pair.
func Lookup(endpoint, method string) (CallSpec, bool) {
	spec, ok := registry[endpoint+"."+method]
	return spec, ok
}

// Specs returns all registered calls sorted by endpoint then method.
func Specs() []CallSpec {
	out := make([]CallSpec, 0, len(registry))
	for _, spec := range registry {
		out = append(out, spec)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Endpoint != out[j].Endpoint {
			return out[i].Endpoint < out[j].Endpoint
		}
		return out[i].Method < out[j].Method
	})
	return out
}
