package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/hasbyte1/securitykit/bench"
	"github.com/hasbyte1/securitykit/hashing"
)

var benchFlags struct {
	configPath string
	variant    string
	targetMS   float64
	tolerance  float64
	rounds     int
	outPath    string
}

var benchCmd = &cobra.Command{
	Use:   "bench",
	Short: "Sweep a policy's parameter grid against a latency target",
	Long: `Benchmark every parameter combination of the selected variant's
tuning grid, then pick the most balanced combination whose median hash
time lands within the tolerance band around the target.

The winning parameters are printed as environment-style key=value lines
ready to paste into deployment configuration, or written to a file with
an integrity digest when --out is given.`,
	RunE: runBench,
}

func init() {
	f := benchCmd.Flags()
	f.StringVarP(&benchFlags.configPath, "config", "c", "", "YAML run configuration file")
	f.StringVar(&benchFlags.variant, "variant", "", "algorithm variant to sweep (default argon2)")
	f.Float64Var(&benchFlags.targetMS, "target", 0, "target median hash time in milliseconds")
	f.Float64Var(&benchFlags.tolerance, "tolerance", 0, "acceptance band around the target (fraction)")
	f.IntVar(&benchFlags.rounds, "rounds", 0, "timed hashes per combination")
	f.StringVarP(&benchFlags.outPath, "out", "o", "", "write key=value output to this file")
}

func runBench(cmd *cobra.Command, args []string) error {
	log, err := newLogger()
	if err != nil {
		return err
	}
	defer log.Sync()

	cfg, err := benchRunConfig()
	if err != nil {
		return err
	}

	runner := bench.NewRunner(cfg, hashing.NewDefaultRegistry(), log)
	report, err := runner.Run()
	if err != nil {
		return err
	}

	log.Info("benchmark complete",
		zap.String("run_id", report.RunID),
		zap.Float64("median_ms", report.BestResult.Median),
		zap.Int("near_target", len(report.Near)))

	out := bench.Export(report.Best, "securitykit bench "+report.RunID)
	if benchFlags.outPath != "" {
		if err := os.WriteFile(benchFlags.outPath, []byte(out), 0o644); err != nil {
			return fmt.Errorf("write %s: %w", benchFlags.outPath, err)
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "wrote %s\n", benchFlags.outPath)
		return nil
	}
	fmt.Fprint(cmd.OutOrStdout(), out)
	return nil
}

// benchRunConfig merges the optional YAML file with flag overrides; flags
// win.
func benchRunConfig() (bench.RunConfig, error) {
	cfg := bench.DefaultRunConfig(benchFlags.variant)
	if benchFlags.configPath != "" {
		loaded, err := bench.LoadRunConfig(benchFlags.configPath)
		if err != nil {
			return bench.RunConfig{}, err
		}
		cfg = loaded
	}
	if benchFlags.variant != "" {
		cfg.Variant = benchFlags.variant
	}
	if benchFlags.targetMS > 0 {
		cfg.TargetMS = benchFlags.targetMS
	}
	if benchFlags.tolerance > 0 {
		cfg.Tolerance = benchFlags.tolerance
	}
	if benchFlags.rounds > 0 {
		cfg.Rounds = benchFlags.rounds
	}
	return cfg, nil
}
