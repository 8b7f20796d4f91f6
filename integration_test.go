package main

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/merakitools/meraudit/internal/engine"
	"github.com/merakitools/meraudit/internal/meraki"
	"github.com/merakitools/meraudit/internal/playbook"
	"github.com/merakitools/meraudit/internal/report"
)

const switchAuditPlaybook = `
config:
  name: switch audit
  description: Port configuration audit
  version: "1.0"
  author: netops
api_calls:
  - name: get_switches
    api:
      endpoint: networks.devices
      method: getNetworkDevices
      output_filter: [networkName, name, serial, model]
    output: switches
  - name: get_ports
    api:
      endpoint: devices.switch.ports
      method: getDeviceSwitchPorts
      requires_device: true
      depends_on: switches
      output_filter: [deviceSerial, portId, enabled, tags]
    output: ports
`

// newDashboardStub serves a small fixed inventory: two networks, one
// switch each, two ports per switch.
func newDashboardStub(t *testing.T) *meraki.Client {
	t.Helper()
	mux := http.NewServeMux()
	respond := func(doc string) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) { w.Write([]byte(doc)) }
	}
	mux.HandleFunc("/organizations", respond(`[{"id":"1","name":"Acme"}]`))
	mux.HandleFunc("/organizations/1/networks", respond(`[{"id":"N_1","name":"HQ","organizationId":"1"},{"id":"N_2","name":"Branch","organizationId":"1"}]`))
	mux.HandleFunc("/networks/N_1/devices", respond(`[{"name":"hq-sw1","serial":"Q2AA-0001","model":"MS120"}]`))
	mux.HandleFunc("/networks/N_2/devices", respond(`[{"name":"br-sw1","serial":"Q2BB-0001","model":"MS210"}]`))
	mux.HandleFunc("/devices/Q2AA-0001/switch/ports", respond(`[{"portId":"1","enabled":true,"tags":["uplink","core"]},{"portId":"2","enabled":false,"tags":[]}]`))
	mux.HandleFunc("/devices/Q2BB-0001/switch/ports", respond(`[{"portId":"1","enabled":true,"tags":["uplink"]},{"portId":"2","enabled":true,"tags":[]}]`))

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return meraki.NewClient("key", meraki.WithBaseURL(server.URL))
}

func runOnce(t *testing.T, client *meraki.Client, root string) string {
	t.Helper()
	p, err := playbook.Load([]byte(switchAuditPlaybook))
	if err != nil {
		t.Fatal(err)
	}
	if err := playbook.Validate(p); err != nil {
		t.Fatal(err)
	}

	ctx := context.Background()
	networks, err := client.Networks(ctx)
	if err != nil {
		t.Fatal(err)
	}

	rc := engine.NewRunContext(networks)
	result := engine.New(client).Run(ctx, p, rc)
	if !result.Success {
		t.Fatalf("expected success, got %+v", result.Steps)
	}

	writer := report.NewWriter(root)
	dir, err := writer.Write("audit", p, result, report.Manifest{
		PlaybookName: p.Config.Name,
		ReportName:   "audit",
		ReportType:   "csv",
		Version:      p.Config.Version,
		Author:       p.Config.Author,
		GeneratedAt:  time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
		Duration:     result.Duration,
	})
	if err != nil {
		t.Fatal(err)
	}
	return dir
}

func TestPlaybookRunE2E(t *testing.T) {
	client := newDashboardStub(t)
	dir := runOnce(t, client, t.TempDir())

	switches, err := os.ReadFile(filepath.Join(dir, "switches", "switches.csv"))
	if err != nil {
		t.Fatal(err)
	}
	wantSwitches := "networkName,name,serial,model\n" +
		"HQ,hq-sw1,Q2AA-0001,MS120\n" +
		"Branch,br-sw1,Q2BB-0001,MS210\n"
	if string(switches) != wantSwitches {
		t.Errorf("switches.csv mismatch:\ngot:\n%swant:\n%s", switches, wantSwitches)
	}

	ports, err := os.ReadFile(filepath.Join(dir, "ports", "ports.csv"))
	if err != nil {
		t.Fatal(err)
	}
	wantPorts := "deviceSerial,portId,enabled,tags\n" +
		"Q2AA-0001,1,true,uplink;core\n" +
		"Q2AA-0001,2,false,\n" +
		"Q2BB-0001,1,true,uplink\n" +
		"Q2BB-0001,2,true,\n"
	if string(ports) != wantPorts {
		t.Errorf("ports.csv mismatch:\ngot:\n%swant:\n%s", ports, wantPorts)
	}

	if _, err := os.Stat(filepath.Join(dir, "manifest.csv")); err != nil {
		t.Errorf("manifest.csv missing: %v", err)
	}
}

func TestPlaybookRunIsDeterministic(t *testing.T) {
	client := newDashboardStub(t)
	dirA := runOnce(t, client, t.TempDir())
	dirB := runOnce(t, client, t.TempDir())

	for _, rel := range []string{
		filepath.Join("switches", "switches.csv"),
		filepath.Join("ports", "ports.csv"),
	} {
		a, err := os.ReadFile(filepath.Join(dirA, rel))
		if err != nil {
			t.Fatal(err)
		}
		b, err := os.ReadFile(filepath.Join(dirB, rel))
		if err != nil {
			t.Fatal(err)
		}
		if !bytes.Equal(a, b) {
			t.Errorf("%s differs between identical runs", rel)
		}
	}
}
