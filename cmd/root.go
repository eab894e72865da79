package cmd

import (
	"github.com/spf13/cobra"

	"github.com/alyansheikhh/reportcard/internal/config"
	"github.com/alyansheikhh/reportcard/internal/grading"
)

var rootCmd = &cobra.Command{
	Use:   "reportcard",
	Short: "Student report cards and performance analysis",
	Long: "reportcard builds student report cards from subject marks, grades them, " +
		"analyzes strengths and weaknesses, and exports rosters as JSON or XLSX.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.String("env-file", "", "Load REPORTCARD_* settings from this file (default .env if present)")
	pf.String("scheme", "", "Grading scheme: standard or legacy (overrides REPORTCARD_SCHEME)")
	pf.Int("passing", 0, "Passing percentage (overrides REPORTCARD_PASSING)")
	pf.Int("excellence", 0, "Excellence threshold (overrides REPORTCARD_EXCELLENCE)")
	pf.String("class", "", "Class name shown on cards and exports (overrides REPORTCARD_CLASS)")

	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(gradeCmd)
	rootCmd.AddCommand(rosterCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveConfig loads the env file, then REPORTCARD_* variables, then applies
// any flags the user set explicitly.
func resolveConfig(cmd *cobra.Command) (config.Config, error) {
	flags := cmd.Flags()

	envFile, _ := flags.GetString("env-file")
	if err := config.LoadEnvFile(envFile); err != nil {
		return config.Config{}, err
	}

	cfg, err := config.FromEnv()
	if err != nil {
		return cfg, err
	}

	if flags.Changed("scheme") {
		name, _ := flags.GetString("scheme")
		if cfg.Class.Scheme, err = grading.ParseScheme(name); err != nil {
			return cfg, err
		}
	}
	if flags.Changed("passing") {
		cfg.Class.PassingPercentage, _ = flags.GetInt("passing")
	}
	if flags.Changed("excellence") {
		cfg.Class.ExcellenceThreshold, _ = flags.GetInt("excellence")
	}
	if flags.Changed("class") {
		cfg.Class.ClassName, _ = flags.GetString("class")
	}
	if flags.Changed("addr") {
		cfg.HTTPAddr, _ = flags.GetString("addr")
	}

	return cfg, cfg.Validate()
}
