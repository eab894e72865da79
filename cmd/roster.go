package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/alyansheikhh/reportcard/internal/report"
	"github.com/alyansheikhh/reportcard/internal/ui/card"
)

var rosterCmd = &cobra.Command{
	Use:   "roster <file.xlsx|file.json>",
	Short: "Load a class roster, print a summary and optionally convert it",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := resolveConfig(cmd)
		if err != nil {
			return err
		}

		store := report.NewStore()
		if err := loadRoster(args[0], report.NewBuilder(cfg.Class.Scheme), store); err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		recs := store.List()
		if len(recs) == 0 {
			fmt.Fprintln(out, "No students found.")
			return nil
		}

		if showCards, _ := cmd.Flags().GetBool("cards"); showCards {
			width := terminalWidth()
			for _, rec := range recs {
				a, err := rec.Analyze()
				if err != nil {
					return fmt.Errorf("analyze %s: %w", rec.RollNo, err)
				}
				fmt.Fprintln(out, card.Render(rec, a, cfg.Class, width))
			}
		}

		if err := printRosterTable(out, recs, cfg.Class); err != nil {
			return err
		}

		if path, _ := cmd.Flags().GetString("out"); path != "" {
			if err := exportRecords(path, recs, cfg.Class); err != nil {
				return err
			}
			fmt.Fprintln(os.Stderr, "Exported to", path)
		}
		return nil
	},
}

func init() {
	rosterCmd.Flags().String("out", "", "Write the roster to a .json or .xlsx file")
	rosterCmd.Flags().Bool("cards", false, "Print a report card for every student")
}

// loadRoster reads path into store. XLSX rows are built into new records;
// JSON exports are loaded as-is after validation.
func loadRoster(path string, b *report.Builder, store *report.Store) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open roster: %w", err)
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		doc, err := report.ReadJSON(f)
		if err != nil {
			return fmt.Errorf("read %s: %w", path, err)
		}
		store.Append(doc.Students...)
	case ".xlsx":
		subs, err := report.ReadXLSX(f)
		if err != nil {
			return fmt.Errorf("read %s: %w", path, err)
		}
		for i, sub := range subs {
			rec, err := b.Build(sub)
			if err != nil {
				return fmt.Errorf("student %d (%s): %w", i+1, sub.Name, err)
			}
			store.Append(*rec)
		}
	default:
		return fmt.Errorf("unsupported roster format %q (use .json or .xlsx)", filepath.Ext(path))
	}
	return nil
}

func printRosterTable(w io.Writer, recs []report.StudentRecord, settings report.ClassSettings) error {
	fmt.Fprintf(w, "%s: %d students (%s grading, pass %d%%)\n\n",
		settings.ClassName, len(recs), settings.Scheme.DisplayName(), settings.PassingPercentage)

	fmt.Fprintf(w, "%-10s  %-24s  %-8s  %-9s  %-5s  %-6s  %s\n",
		"Roll No", "Name", "Total", "Percent", "Grade", "Result", "Category")
	fmt.Fprintln(w, strings.Repeat("─", 90))

	for _, rec := range recs {
		a, err := rec.Analyze()
		if err != nil {
			return fmt.Errorf("analyze %s: %w", rec.RollNo, err)
		}
		result := "FAIL"
		if rec.Passed(settings) {
			result = "PASS"
		}
		name := rec.Name
		if r := []rune(name); len(r) > 24 {
			name = string(r[:24])
		}
		fmt.Fprintf(w, "%-10s  %-24s  %-8s  %8.2f%%  %-5s  %-6s  %s %s\n",
			rec.RollNo,
			name,
			fmt.Sprintf("%d/%d", rec.TotalMarks, rec.MaxPossible),
			rec.Percentage,
			rec.Grade.Letter,
			result,
			a.Icon,
			a.PerformanceCategory,
		)
	}
	return nil
}
