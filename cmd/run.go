package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/briandowns/spinner"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/merakitools/meraudit/internal/engine"
	"github.com/merakitools/meraudit/internal/playbook"
	"github.com/merakitools/meraudit/internal/report"
)

var (
	runNetworks    []string
	runAllNetworks bool
	runReportName  string
)

var runCmd = &cobra.Command{
	Use:   "run <playbook.yaml>",
	Short: "Execute a playbook and write its CSV report",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := playbook.LoadFile(args[0])
		if err != nil {
			return err
		}
		if err := playbook.Validate(p); err != nil {
			return err
		}

		client, cfg, err := loadClient()
		if err != nil {
			return err
		}

		networks, err := selectNetworks(cmd.Context(), client, runNetworks, runAllNetworks)
		if err != nil {
			return err
		}

		reportName := runReportName
		if reportName == "" {
			reportName = p.Config.Name
		}

		var spin *spinner.Spinner
		if !jsonOutput {
			spin = spinner.New(spinner.CharSets[14], 100*time.Millisecond)
			spin.Suffix = fmt.Sprintf(" running %q (%d networks)", p.Config.Name, len(networks))
			spin.Start()
		}

		eng := engine.New(client, engine.WithLogger(logger))
		eng.OnStepDone = func(sr engine.StepResult) {
			if spin != nil {
				// Suffix is read by the render goroutine.
				spin.Lock()
				spin.Suffix = fmt.Sprintf(" %s: %s (%d rows)", sr.Name, sr.Status, sr.RowCount)
				spin.Unlock()
			}
		}

		rc := engine.NewRunContext(networks)
		result := eng.Run(cmd.Context(), p, rc)

		writer := report.NewWriter(cfg.ReportRoot)
		dir, err := writer.Write(reportName, p, result, report.Manifest{
			PlaybookName: p.Config.Name,
			ReportName:   reportName,
			ReportType:   "csv",
			Version:      p.Config.Version,
			Description:  p.Config.Description,
			Author:       p.Config.Author,
			GeneratedAt:  result.StartedAt,
			Duration:     result.Duration,
		})
		if spin != nil {
			spin.Stop()
		}
		if err != nil {
			return fmt.Errorf("writing report: %w", err)
		}

		if jsonOutput {
			return json.NewEncoder(os.Stdout).Encode(result)
		}

		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.AppendHeader(table.Row{"Step", "Output", "Status", "Targets", "Rows", "Duration"})
		for _, sr := range result.Steps {
			status := sr.Status
			if sr.Err != nil {
				status = fmt.Sprintf("%s (%s)", sr.Status, sr.Err.Kind)
			}
			t.AppendRow(table.Row{sr.Name, sr.Output, status, sr.Targets, sr.RowCount, sr.Duration.Round(time.Millisecond)})
		}
		t.Render()

		if result.Success {
			fmt.Printf("Playbook %q completed in %s.\n", p.Config.Name, result.Duration.Round(time.Millisecond))
		} else {
			fmt.Printf("Playbook %q completed with step failures:\n", p.Config.Name)
			for _, sr := range result.Steps {
				if sr.Err != nil {
					fmt.Printf("  %s: %s\n", sr.Name, sr.Err.Message)
					if sr.Err.Hint != "" {
						fmt.Printf("    hint: %s\n", sr.Err.Hint)
					}
				}
			}
		}
		fmt.Printf("Report: %s\n", dir)
		fmt.Printf("Run ID: %s\n", result.RunID)
		return nil
	},
}

func init() {
	runCmd.Flags().StringArrayVar(&runNetworks, "network", nil, "Network ID to audit (repeatable)")
	runCmd.Flags().BoolVar(&runAllNetworks, "all-networks", false, "Audit every visible network")
	runCmd.Flags().StringVar(&runReportName, "report", "", "Report name (defaults to the playbook name)")
	rootCmd.AddCommand(runCmd)
}
