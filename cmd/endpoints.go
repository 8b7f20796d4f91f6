package cmd

import (
	"encoding/json"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/merakitools/meraudit/internal/meraki"
)

var endpointsCmd = &cobra.Command{
	Use:   "endpoints",
	Short: "List the supported endpoint/method catalog",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		specs := meraki.Specs()

		if jsonOutput {
			type entry struct {
				Endpoint    string `json:"endpoint"`
				Method      string `json:"method"`
				Scope       string `json:"scope"`
				Description string `json:"description"`
			}
			entries := make([]entry, 0, len(specs))
			for _, s := range specs {
				entries = append(entries, entry{s.Endpoint, s.Method, s.Scope.String(), s.Description})
			}
			return json.NewEncoder(os.Stdout).Encode(entries)
		}

		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.AppendHeader(table.Row{"Endpoint", "Method", "Scope", "Description"})
		for _, s := range specs {
			t.AppendRow(table.Row{s.Endpoint, s.Method, s.Scope, s.Description})
		}
		t.Render()
		return nil
	},
}

func init() {
	rootCmd.AddCommand(endpointsCmd)
}
