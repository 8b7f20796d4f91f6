package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/merakitools/meraudit/internal/playbook"
)

var previewCmd = &cobra.Command{
	Use:   "preview <playbook.yaml>",
	Short: "Show a playbook's steps without executing",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := playbook.LoadFile(args[0])
		if err != nil {
			return err
		}
		if err := playbook.Validate(p); err != nil {
			return err
		}

		if jsonOutput {
			return json.NewEncoder(os.Stdout).Encode(p)
		}

		fmt.Printf("Name: %s\n", p.Config.Name)
		if p.Config.Description != "" {
			fmt.Printf("Description: %s\n", p.Config.Description)
		}
		fmt.Printf("Version: %s\n", p.Config.Version)
		if p.Config.Author != "" {
			fmt.Printf("Author: %s\n", p.Config.Author)
		}
		fmt.Println()
		fmt.Println("API Calls:")
		for _, s := range p.Steps {
			fmt.Printf("\n- %s:\n", s.Name)
			fmt.Printf("  Endpoint: %s\n", s.API.Endpoint)
			fmt.Printf("  Method: %s\n", s.API.Method)
			if len(s.API.Filters) > 0 {
				fmt.Printf("  Filters: %v\n", s.API.Filters)
			}
			if s.API.RequiresDevice {
				fmt.Printf("  Devices from: %s\n", s.API.DependsOn)
			}
			if len(s.API.OutputFilter) > 0 {
				fmt.Printf("  Columns: %v\n", s.API.OutputFilter)
			}
			fmt.Printf("  Output: %s\n", s.Output)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(previewCmd)
}
