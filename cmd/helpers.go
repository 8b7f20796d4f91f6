package cmd

import (
	"context"
	"fmt"

	"github.com/merakitools/meraudit/internal/config"
	"github.com/merakitools/meraudit/internal/meraki"
)

// loadClient builds a Dashboard client from configuration. The API key
// is the one thing that cannot be defaulted.
func loadClient() (*meraki.Client, *config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, err
	}
	if cfg.APIKey == "" {
		return nil, nil, fmt.Errorf("no API key: set MERAUDIT_API_KEY or api_key in the config file")
	}
	opts := []meraki.Option{meraki.WithTimeout(cfg.Timeout)}
	if cfg.BaseURL != "" {
		opts = append(opts, meraki.WithBaseURL(cfg.BaseURL))
	}
	return meraki.NewClient(cfg.APIKey, opts...), cfg, nil
}

// selectNetworks resolves the --network/--all-networks selection into
// concrete networks, preserving the API's enumeration order so target
// resolution stays deterministic.
func selectNetworks(ctx context.Context, client *meraki.Client, ids []string, all bool) ([]meraki.Network, error) {
	networks, err := client.Networks(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading networks: %w", err)
	}
	if all {
		return networks, nil
	}
	if len(ids) == 0 {
		return nil, fmt.Errorf("no networks selected: pass --network <id> or --all-networks")
	}

	wanted := map[string]bool{}
	for _, id := range ids {
		wanted[id] = true
	}
	var selected []meraki.Network
	for _, n := range networks {
		if wanted[n.ID] {
			selected = append(selected, n)
			delete(wanted, n.ID)
		}
	}
	for id := range wanted {
		return nil, fmt.Errorf("unknown network id %q", id)
	}
	return selected, nil
}
