package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/merakitools/meraudit/internal/playbook"
)

var validateCmd = &cobra.Command{
	Use:   "validate <playbook.yaml>",
	Short: "Validate a playbook file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := playbook.LoadFile(args[0])
		if err == nil {
			err = playbook.Validate(p)
		}
		if err != nil {
			if jsonOutput {
				json.NewEncoder(os.Stdout).Encode(map[string]any{"valid": false, "error": err.Error()})
			} else {
				fmt.Fprintf(os.Stderr, "Validation failed: %s\n", err)
			}
			os.Exit(1)
		}
		if jsonOutput {
			json.NewEncoder(os.Stdout).Encode(map[string]any{"valid": true})
		} else {
			fmt.Println("Playbook is valid.")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
