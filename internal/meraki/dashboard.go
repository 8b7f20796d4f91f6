package meraki

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
)

// Organization is one Dashboard organization the API key can see.
type Organization struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Network is one network within an organization.
type Network struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	OrgID        string   `json:"organizationId"`
	TimeZone     string   `json:"timeZone"`
	ProductTypes []string `json:"productTypes"`
}

// Device is one device within a network.
type Device struct {
	Serial      string `json:"serial"`
	Name        string `json:"name"`
	Model       string `json:"model"`
	ProductType string `json:"productType"`
	MAC         string `json:"mac"`
	LanIP       string `json:"lanIp"`
	Firmware    string `json:"firmware"`
	NetworkID   string `json:"networkId"`
}

// Organizations lists the organizations visible to the API key.
func (c *Client) Organizations(ctx context.Context) ([]Organization, error) {
	var orgs []Organization
	if err := c.getInto(ctx, "/organizations", &orgs); err != nil {
		return nil, err
	}
	return orgs, nil
}

// OrganizationNetworks lists the networks of one organization.
func (c *Client) OrganizationNetworks(ctx context.Context, orgID string) ([]Network, error) {
	var nets []Network
	path := "/organizations/" + url.PathEscape(orgID) + "/networks"
	if err := c.getInto(ctx, path, &nets); err != nil {
		return nil, err
	}
	return nets, nil
}

// Networks lists the networks of every organization the key can see,
// in organization order.
func (c *Client) Networks(ctx context.Context) ([]Network, error) {
	orgs, err := c.Organizations(ctx)
	if err != nil {
		return nil, err
	}
	var all []Network
	for _, org := range orgs {
		nets, err := c.OrganizationNetworks(ctx, org.ID)
		if err != nil {
			return nil, fmt.Errorf("listing networks of organization %s: %w", org.ID, err)
		}
		all = append(all, nets...)
	}
	return all, nil
}

// NetworkDevices lists the devices of one network.
func (c *Client) NetworkDevices(ctx context.Context, networkID string) ([]Device, error) {
	var devices []Device
	path := "/networks/" + url.PathEscape(networkID) + "/devices"
	if err := c.getInto(ctx, path, &devices); err != nil {
		return nil, err
	}
	return devices, nil
}

// Authenticate verifies the API key by listing organizations.
func (c *Client) Authenticate(ctx context.Context) error {
	_, err := c.Organizations(ctx)
	return err
}

// getInto fetches a path and re-decodes the generic result into out.
func (c *Client) getInto(ctx context.Context, path string, out any) error {
	raw, err := c.get(ctx, path, nil)
	if err != nil {
		return err
	}
	data, err := json.Marshal(raw)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, out)
}
