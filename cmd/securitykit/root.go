package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/hasbyte1/securitykit/config"
	"github.com/hasbyte1/securitykit/hashing"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "securitykit",
	Short: "Password hashing policy and calibration toolkit",
	Long: `securitykit hashes and verifies passwords, benchmarks hashing
policies against a latency target, and calibrates Argon2 cost
parameters for the current host.

Hashing behaviour is driven by environment variables (HASH_VARIANT,
ARGON2_*, BCRYPT_*, PEPPER_*, PASSWORD_*).`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(hashCmd)
	rootCmd.AddCommand(verifyCmd)
	rootCmd.AddCommand(benchCmd)
	rootCmd.AddCommand(calibrateCmd)
}

// newLogger builds the process logger honouring --verbose.
func newLogger() (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	if verbose {
		cfg = zap.NewDevelopmentConfig()
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}
	return cfg.Build()
}

// newFactory is the composition root shared by the hash and verify
// commands: environment source, default registry, shared pepper cache.
func newFactory(log *zap.Logger) *hashing.Factory {
	return hashing.NewFactory(config.Environ(), hashing.NewDefaultRegistry(), log)
}
