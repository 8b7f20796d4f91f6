package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/merakitools/meraudit/internal/config"
	"github.com/merakitools/meraudit/internal/playbook"
)

var playbooksCmd = &cobra.Command{
	Use:   "playbooks",
	Short: "List the playbooks in the playbook directory",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}

		matches, err := filepath.Glob(filepath.Join(cfg.PlaybookDir, "*.yaml"))
		if err != nil {
			return err
		}
		more, _ := filepath.Glob(filepath.Join(cfg.PlaybookDir, "*.yml"))
		matches = append(matches, more...)
		sort.Strings(matches)

		type entry struct {
			File        string `json:"file"`
			Name        string `json:"name"`
			Description string `json:"description"`
			Steps       int    `json:"steps"`
			Valid       bool   `json:"valid"`
		}
		var entries []entry
		for _, path := range matches {
			e := entry{File: filepath.Base(path)}
			p, err := playbook.LoadFile(path)
			if err == nil {
				e.Name = p.Config.Name
				e.Description = p.Config.Description
				e.Steps = len(p.Steps)
				e.Valid = playbook.Validate(p) == nil
			}
			entries = append(entries, e)
		}

		if jsonOutput {
			return json.NewEncoder(os.Stdout).Encode(entries)
		}
		if len(entries) == 0 {
			fmt.Printf("No playbooks found under %s\n", cfg.PlaybookDir)
			return nil
		}

		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.AppendHeader(table.Row{"File", "Name", "Steps", "Valid", "Description"})
		for _, e := range entries {
			valid := "yes"
			if !e.Valid {
				valid = "no"
			}
			t.AppendRow(table.Row{e.File, e.Name, e.Steps, valid, strings.TrimSpace(e.Description)})
		}
		t.Render()
		return nil
	},
}

func init() {
	rootCmd.AddCommand(playbooksCmd)
}
