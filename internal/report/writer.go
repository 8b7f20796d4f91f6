// Package report persists projected row sets as a dated CSV tree: one
// subfolder per step output, plus a manifest at the report root.
package report

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/merakitools/meraudit/internal/engine"
	runerrors "github.com/merakitools/meraudit/internal/errors"
	"github.com/merakitools/meraudit/internal/playbook"
	"github.com/merakitools/meraudit/internal/projector"
)

const dirStamp = "20060102_150405"

// Manifest holds the report metadata written alongside the step CSVs.
type Manifest struct {
	PlaybookName string
	ReportName   string
	ReportType   string
	Version      string
	Description  string
	Author       string
	GeneratedAt  time.Time
	Duration     time.Duration
}

// Writer persists run results under a report root directory.
type Writer struct {
	Root string
}

// NewWriter creates a writer rooted at dir.
func NewWriter(dir string) *Writer {
	return &Writer{Root: dir}
}

// Write persists one run: a dated report directory containing one
// subfolder with one CSV per step output, and manifest.csv at the top.
// Write errors are fatal to the run; whatever was already written is
// left in place for inspection. Returns the created directory.
func (w *Writer) Write(reportName string, p *playbook.Playbook, result *engine.Result, m Manifest) (string, error) {
	dir := filepath.Join(w.Root, fmt.Sprintf("%s_%s", reportName, m.GeneratedAt.Format(dirStamp)))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", runerrors.NewIOWrite(fmt.Sprintf("creating report directory: %v", err))
	}

	for _, step := range p.Steps {
		rows := result.Rows[step.Output]
		if err := w.writeStep(dir, step.Output, step.API.OutputFilter, rows); err != nil {
			return dir, err
		}
	}

	if err := w.writeManifest(dir, m, result); err != nil {
		return dir, err
	}
	return dir, nil
}

// writeStep writes <dir>/<output>/<output>.csv with the declared
// columns as header. The header is generated from the output filter,
// never sniffed from rows, so an empty step still gets a headered file.
func (w *Writer) writeStep(dir, output string, columns []string, rows []projector.Row) error {
	stepDir := filepath.Join(dir, output)
	if err := os.MkdirAll(stepDir, 0o755); err != nil {
		return runerrors.NewIOWrite(fmt.Sprintf("creating output folder %s: %v", output, err))
	}

	f, err := os.Create(filepath.Join(stepDir, output+".csv"))
	if err != nil {
		return runerrors.NewIOWrite(fmt.Sprintf("creating %s.csv: %v", output, err))
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	if err := cw.Write(columns); err != nil {
		return runerrors.NewIOWrite(fmt.Sprintf("writing %s.csv header: %v", output, err))
	}
	record := make([]string, len(columns))
	for _, row := range rows {
		for i, col := range columns {
			record[i] = row[col]
		}
		if err := cw.Write(record); err != nil {
			return runerrors.NewIOWrite(fmt.Sprintf("writing %s.csv: %v", output, err))
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return runerrors.NewIOWrite(fmt.Sprintf("flushing %s.csv: %v", output, err))
	}
	return nil
}

// writeManifest writes manifest.csv as field,value records: the report
// metadata followed by one rows_<output> count per step, in step order.
func (w *Writer) writeManifest(dir string, m Manifest, result *engine.Result) error {
	f, err := os.Create(filepath.Join(dir, "manifest.csv"))
	if err != nil {
		return runerrors.NewIOWrite(fmt.Sprintf("creating manifest.csv: %v", err))
	}
	defer f.Close()

	records := [][]string{
		{"field", "value"},
		{"playbook", m.PlaybookName},
		{"report", m.ReportName},
		{"type", m.ReportType},
		{"version", m.Version},
		{"description", m.Description},
		{"author", m.Author},
		{"date", m.GeneratedAt.Format("2006-01-02")},
		{"time", m.GeneratedAt.Format("15:04:05")},
		{"duration_seconds", strconv.FormatFloat(m.Duration.Seconds(), 'f', 3, 64)},
	}
	for _, sr := range result.Steps {
		records = append(records, []string{"rows_" + sr.Output, strconv.Itoa(sr.RowCount)})
	}

	cw := csv.NewWriter(f)
	if err := cw.WriteAll(records); err != nil {
		return runerrors.NewIOWrite(fmt.Sprintf("writing manifest.csv: %v", err))
	}
	return nil
}

// WriteFlat writes a single CSV of pre-projected rows, used by the
// device inventory export. The same empty-value and header semantics as
// step outputs apply.
func (w *Writer) WriteFlat(name string, columns []string, rows []projector.Row, at time.Time) (string, error) {
	dir := filepath.Join(w.Root, fmt.Sprintf("%s_%s", name, at.Format(dirStamp)))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", runerrors.NewIOWrite(fmt.Sprintf("creating report directory: %v", err))
	}
	if err := w.writeStep(dir, name, columns, rows); err != nil {
		return dir, err
	}
	return dir, nil
}
