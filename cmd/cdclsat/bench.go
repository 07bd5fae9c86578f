package main

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/halvorsen-dev/cdclsat/internal/config"
	"github.com/halvorsen-dev/cdclsat/internal/dimacs"
	"github.com/halvorsen-dev/cdclsat/internal/report"
	"github.com/halvorsen-dev/cdclsat/internal/sat"
)

var (
	benchMode    string
	benchTimeout time.Duration
)

var benchCmd = &cobra.Command{
	Use:   "bench <dir>",
	Short: "Solve every DIMACS instance under a directory tree",
	Args:  cobra.ExactArgs(1),
	RunE:  runBench,
}

func init() {
	benchCmd.Flags().StringVar(&benchMode, "mode", "", "branching mode, overrides the config file")
	benchCmd.Flags().DurationVar(&benchTimeout, "timeout", 0, "per-instance solve timeout, overrides the config file")
}

func findInstances(dir string) ([]string, error) {
	var instances []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if strings.HasSuffix(path, ".cnf") || strings.HasSuffix(path, ".cnf.gz") {
			instances = append(instances, path)
		}
		return nil
	})
	return instances, err
}

func runBench(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	opts := cfg.Options()
	if benchMode != "" {
		m, err := config.ModeFromMnemonic(benchMode)
		if err != nil {
			return fmt.Errorf("cdclsat: %w", err)
		}
		opts.Mode = m
	}
	if benchTimeout > 0 {
		opts.Timeout = benchTimeout
	}

	instances, err := findInstances(args[0])
	if err != nil {
		return fmt.Errorf("cdclsat: walking %q: %w", args[0], err)
	}

	logger := report.NewLogger(cmd.OutOrStdout())
	rate := report.NewEMA(0.7)

	start := time.Now()
	for _, path := range instances {
		gzipped := strings.HasSuffix(path, ".gz")

		s := sat.NewSolver(opts)
		if err := dimacs.LoadDIMACS(path, gzipped, s); err != nil {
			return fmt.Errorf("cdclsat: loading %q: %w", path, err)
		}

		instanceStart := time.Now()
		status := s.Solve(context.Background())
		elapsed := time.Since(instanceStart)

		logger.InstanceSolved(path, status, s.Conflicts(), s.Decisions(), elapsed)
		if elapsed > 0 {
			rate.Add(float64(s.Conflicts()) / elapsed.Seconds())
		}
	}

	logger.Separator(len(instances), time.Since(start), rate.Val())
	return nil
}
