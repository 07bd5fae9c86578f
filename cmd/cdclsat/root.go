package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/halvorsen-dev/cdclsat/internal/config"
)

var cfgPath string

var rootCmd = &cobra.Command{
	Use:   "cdclsat",
	Short: "A CDCL SAT solver",
	Long: `cdclsat is a conflict-driven clause learning SAT solver: two-watched-literal
propagation, 1UIP conflict analysis, and a choice of VSIDS-style branching
heuristics.`,
}

func loadConfig() (config.Config, error) {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return config.Config{}, fmt.Errorf("cdclsat: %w", err)
	}
	return cfg, nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "path to a YAML config file")
	rootCmd.AddCommand(solveCmd)
	rootCmd.AddCommand(benchCmd)
}
