package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var gradeCmd = &cobra.Command{
	Use:   "grade <percentage>",
	Short: "Print the letter grade for a class percentage",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		pct, err := strconv.ParseFloat(args[0], 64)
		if err != nil {
			return fmt.Errorf("invalid percentage %q: %w", args[0], err)
		}
		if pct < 0 || pct > 100 {
			return fmt.Errorf("percentage %v outside [0, 100]", pct)
		}

		cfg, err := resolveConfig(cmd)
		if err != nil {
			return err
		}

		g := cfg.Class.Scheme.GradeFor(pct)
		fmt.Fprintf(cmd.OutOrStdout(), "%s  (%s, %s scheme)\n", g.Letter, g.Color, cfg.Class.Scheme.DisplayName())
		return nil
	},
}
