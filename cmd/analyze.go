package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/alyansheikhh/reportcard/internal/analysis"
	"github.com/alyansheikhh/reportcard/internal/marks"
	"github.com/alyansheikhh/reportcard/internal/report"
	"github.com/alyansheikhh/reportcard/internal/ui/card"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Build a report card from marks and print its analysis",
	Example: `  reportcard analyze --name "Ayesha Khan" --roll 17 \
    -m Math=95 -m Physics=40 -m Urdu=70 -m English=85 -m Computer=60`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := resolveConfig(cmd)
		if err != nil {
			return err
		}

		sub, err := submissionFromFlags(cmd)
		if err != nil {
			return err
		}

		rec, err := report.NewBuilder(cfg.Class.Scheme).Build(sub)
		if err != nil {
			return err
		}
		a, err := rec.Analyze()
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			if err := enc.Encode(struct {
				Record   *report.StudentRecord `json:"record"`
				Analysis *analysis.Analysis    `json:"analysis"`
			}{rec, a}); err != nil {
				return fmt.Errorf("encode analysis: %w", err)
			}
		} else {
			fmt.Fprintln(out, card.Render(*rec, a, cfg.Class, terminalWidth()))
		}

		if path, _ := cmd.Flags().GetString("export"); path != "" {
			if err := exportRecords(path, []report.StudentRecord{*rec}, cfg.Class); err != nil {
				return err
			}
			fmt.Fprintln(os.Stderr, "Exported to", path)
		}
		return nil
	},
}

func init() {
	addAnalyzeFlags(analyzeCmd)
}

func addAnalyzeFlags(c *cobra.Command) {
	f := c.Flags()
	f.String("name", "", "Student name (required)")
	f.String("roll", "", "Roll number (required)")
	f.StringArrayP("mark", "m", nil, "Subject mark as Subject=Mark (repeatable, in display order)")
	f.Int("attendance", 100, "Attendance percentage")
	f.String("conduct", "", "Conduct: Poor, Fair, Good, Very Good or Excellent (default Good)")
	f.String("remarks", "", "Teacher remarks")
	f.String("date", "", "Assessment date YYYY-MM-DD (default today)")
	f.Bool("json", false, "Print the record and analysis as JSON instead of a card")
	f.String("export", "", "Also export the record to a .json or .xlsx file")
}

func submissionFromFlags(cmd *cobra.Command) (report.Submission, error) {
	f := cmd.Flags()
	var sub report.Submission
	sub.Name, _ = f.GetString("name")
	sub.RollNo, _ = f.GetString("roll")
	sub.Conduct, _ = f.GetString("conduct")
	sub.TeacherRemarks, _ = f.GetString("remarks")
	sub.AssessmentDate, _ = f.GetString("date")

	if f.Changed("attendance") {
		n, _ := f.GetInt("attendance")
		sub.Attendance = &n
	}

	pairs, _ := f.GetStringArray("mark")
	for _, p := range pairs {
		e, err := marks.ParseEntry(p)
		if err != nil {
			return sub, err
		}
		if _, dup := sub.Marks.Get(e.Subject); dup {
			return sub, fmt.Errorf("subject %q given more than once", e.Subject)
		}
		sub.Marks.Set(e.Subject, e.Mark)
	}
	return sub, nil
}

// exportRecords writes recs to path, choosing the format by extension.
func exportRecords(path string, recs []report.StudentRecord, settings report.ClassSettings) error {
	var write func(f *os.File) error
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		write = func(f *os.File) error {
			return report.WriteJSON(f, report.NewDocument(timeNow(), recs...))
		}
	case ".xlsx":
		write = func(f *os.File) error {
			return report.WriteXLSX(f, recs, settings)
		}
	default:
		return fmt.Errorf("unsupported export format %q (use .json or .xlsx)", filepath.Ext(path))
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := write(f); err != nil {
		f.Close()
		return fmt.Errorf("export %s: %w", path, err)
	}
	return f.Close()
}
