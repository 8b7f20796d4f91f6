package cmd

import (
	"encoding/json"
	"os"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var networksCmd = &cobra.Command{
	Use:   "networks",
	Short: "List the networks visible to the API key",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, _, err := loadClient()
		if err != nil {
			return err
		}
		networks, err := client.Networks(cmd.Context())
		if err != nil {
			return err
		}

		if jsonOutput {
			return json.NewEncoder(os.Stdout).Encode(networks)
		}

		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.AppendHeader(table.Row{"Network ID", "Name", "Products"})
		for _, n := range networks {
			t.AppendRow(table.Row{n.ID, n.Name, strings.Join(n.ProductTypes, ", ")})
		}
		t.Render()
		return nil
	},
}

func init() {
	rootCmd.AddCommand(networksCmd)
}
