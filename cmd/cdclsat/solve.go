package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/halvorsen-dev/cdclsat/internal/config"
	"github.com/halvorsen-dev/cdclsat/internal/dimacs"
	"github.com/halvorsen-dev/cdclsat/internal/sat"
)

var (
	solveMode    string
	solveTimeout time.Duration
	solveGzip    bool
)

var solveCmd = &cobra.Command{
	Use:   "solve <instance.cnf>",
	Short: "Solve a single DIMACS CNF instance",
	Args:  cobra.ExactArgs(1),
	RunE:  runSolve,
}

func init() {
	solveCmd.Flags().StringVar(&solveMode, "mode", "", "branching mode, overrides the config file")
	solveCmd.Flags().DurationVar(&solveTimeout, "timeout", 0, "solve timeout, overrides the config file")
	solveCmd.Flags().BoolVar(&solveGzip, "gzip", false, "treat the instance file as gzip-compressed")
}

func runSolve(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	opts := cfg.Options()
	if solveMode != "" {
		m, err := config.ModeFromMnemonic(solveMode)
		if err != nil {
			return fmt.Errorf("cdclsat: %w", err)
		}
		opts.Mode = m
	}
	if solveTimeout > 0 {
		opts.Timeout = solveTimeout
	}

	s := sat.NewSolver(opts)
	if err := dimacs.LoadDIMACS(args[0], solveGzip, s); err != nil {
		return fmt.Errorf("cdclsat: %w", err)
	}

	status := s.Solve(context.Background())
	fmt.Fprintf(cmd.OutOrStdout(), "%s\n", statusLine(status))
	if status == sat.StatusSatisfiable {
		printModel(cmd, s.Result())
	}
	return nil
}

func statusLine(status sat.Status) string {
	switch status {
	case sat.StatusSatisfiable:
		return "SATISFIABLE"
	case sat.StatusUnsatisfiable:
		return "UNSATISFIABLE"
	case sat.StatusTimeout:
		return "TIMEOUT"
	default:
		return "UNKNOWN"
	}
}

func printModel(cmd *cobra.Command, result []int) {
	out := cmd.OutOrStdout()
	for _, lit := range result[1:] {
		fmt.Fprintf(out, "%d ", lit)
	}
	fmt.Fprintln(out, "0")
}
