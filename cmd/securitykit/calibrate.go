package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/hasbyte1/securitykit/bench"
	"github.com/hasbyte1/securitykit/calibrate"
	"github.com/hasbyte1/securitykit/hashing"
)

var calibrateFlags struct {
	lowerMS       float64
	upperMS       float64
	noCache       bool
	force         bool
	noParallelism bool
	cachePath     string
	outPath       string
}

var calibrateCmd = &cobra.Command{
	Use:   "calibrate",
	Short: "Find Argon2 parameters for this host adaptively",
	Long: `Search for Argon2 cost parameters whose single-hash duration lands
inside the target window, adjusting one cost lever per iteration instead
of sweeping the whole grid.  Results are cached per host; --force
recalibrates and refreshes the cache.`,
	RunE: runCalibrate,
}

func init() {
	f := calibrateCmd.Flags()
	f.Float64Var(&calibrateFlags.lowerMS, "lower", 0, "lower bound of the target window (ms)")
	f.Float64Var(&calibrateFlags.upperMS, "upper", 0, "upper bound of the target window (ms)")
	f.BoolVar(&calibrateFlags.noCache, "no-cache", false, "ignore and do not update the calibration cache")
	f.BoolVar(&calibrateFlags.force, "force", false, "recalibrate even when a cached result exists")
	f.BoolVar(&calibrateFlags.noParallelism, "no-parallelism", false, "pin parallelism to 1")
	f.StringVar(&calibrateFlags.cachePath, "cache", "", "calibration cache file (default per-user cache)")
	f.StringVarP(&calibrateFlags.outPath, "out", "o", "", "write key=value output to this file")
}

func runCalibrate(cmd *cobra.Command, args []string) error {
	log, err := newLogger()
	if err != nil {
		return err
	}
	defer log.Sync()

	opts := calibrate.DefaultOptions()
	if calibrateFlags.lowerMS > 0 {
		opts.TargetLowerMS = calibrateFlags.lowerMS
	}
	if calibrateFlags.upperMS > 0 {
		opts.TargetUpperMS = calibrateFlags.upperMS
	}
	opts.AllowCache = !calibrateFlags.noCache
	opts.Force = calibrateFlags.force
	opts.EnableParallelism = !calibrateFlags.noParallelism
	opts.CachePath = calibrateFlags.cachePath

	res, err := calibrate.Run(opts, log)
	if err != nil {
		return err
	}
	if res.Limited {
		log.Warn("calibration hit its cost limits before reaching the target window",
			zap.Float64("measured_ms", res.MeasuredMS))
	}

	cfg := map[string]string{
		"HASH_VARIANT":       hashing.VariantArgon2,
		"ARGON2_TIME_COST":   strconv.Itoa(res.TimeCost),
		"ARGON2_MEMORY_COST": strconv.Itoa(res.MemoryCost),
		"ARGON2_PARALLELISM": strconv.Itoa(res.Parallelism),
	}
	out := bench.Export(cfg, "securitykit calibrate ("+res.Reason+")")

	if calibrateFlags.outPath != "" {
		if err := os.WriteFile(calibrateFlags.outPath, []byte(out), 0o644); err != nil {
			return fmt.Errorf("write %s: %w", calibrateFlags.outPath, err)
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "wrote %s\n", calibrateFlags.outPath)
		return nil
	}
	fmt.Fprint(cmd.OutOrStdout(), out)
	return nil
}
