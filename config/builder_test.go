package config_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/hasbyte1/securitykit/config"
)

type tunables struct {
	TimeCost   int      `config:"time_cost" default:"2"`
	MemoryCost int      `config:"memory_cost" default:"65536"`
	Label      string   `config:"label"`
	Verbose    bool     `config:"verbose" default:"false"`
	Hosts      []string `config:"hosts" default:""`

	unexported int `config:"hidden" default:"1"`
	Untagged   int
}

func TestBuildResolvesAndDefaults(t *testing.T) {
	src := config.MapSource{
		"TUNE_TIME_COST": "4",
		"TUNE_LABEL":     "primary",
		"TUNE_VERBOSE":   "yes",
		"TUNE_HOSTS":     "a,b",
	}

	var dst tunables
	err := config.NewBuilder(src, nil, nil).Build(&dst, "TUNE_", "tunables")
	require.NoError(t, err)

	assert.Equal(t, 4, dst.TimeCost)
	assert.Equal(t, 65536, dst.MemoryCost) // default
	assert.Equal(t, "primary", dst.Label)
	assert.True(t, dst.Verbose)
	assert.Equal(t, []string{"a", "b"}, dst.Hosts)
	assert.Zero(t, dst.unexported)
	assert.Zero(t, dst.Untagged)
}

func TestBuildAggregatesAllIssues(t *testing.T) {
	src := config.MapSource{
		"TUNE_TIME_COST": "not-a-number",
		"TUNE_VERBOSE":   "2", // numbers are never booleans
	}

	var dst tunables
	err := config.NewBuilder(src, nil, nil).Build(&dst, "TUNE_", "tunables")
	require.Error(t, err)
	assert.ErrorIs(t, err, config.ErrValidation)

	var verr *config.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "tunables", verr.Label)
	assert.Len(t, verr.Issues, 3) // bad int, bad bool, missing TUNE_LABEL
	assert.Contains(t, verr.Error(), "TUNE_LABEL")
}

func TestBuildWarnsOnDefaultedKeys(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	log := zap.New(core)

	src := config.MapSource{"TUNE_LABEL": "x"}
	var dst tunables
	require.NoError(t, config.NewBuilder(src, nil, log).Build(&dst, "TUNE_", "tunables"))

	warned := map[string]bool{}
	for _, entry := range logs.All() {
		for _, f := range entry.Context {
			if f.Key == "key" {
				warned[f.String] = true
			}
		}
	}
	assert.True(t, warned["TUNE_TIME_COST"])
	assert.True(t, warned["TUNE_MEMORY_COST"])
	assert.False(t, warned["TUNE_LABEL"])
}

type guarded struct {
	Level int `config:"level" default:"5"`
}

func (g *guarded) Validate(log *zap.Logger) error {
	if g.Level > 10 {
		return fmt.Errorf("level %d out of range", g.Level)
	}
	return nil
}

func TestBuildRunsStructValidation(t *testing.T) {
	var ok guarded
	require.NoError(t, config.NewBuilder(config.MapSource{"G_LEVEL": "7"}, nil, nil).
		Build(&ok, "G_", "guarded"))
	assert.Equal(t, 7, ok.Level)

	var bad guarded
	err := config.NewBuilder(config.MapSource{"G_LEVEL": "11"}, nil, nil).
		Build(&bad, "G_", "guarded")
	require.Error(t, err)
	assert.ErrorIs(t, err, config.ErrValidation)

	var verr *config.ValidationError
	require.ErrorAs(t, err, &verr)
	require.NotNil(t, verr.Cause)
	assert.Contains(t, verr.Cause.Error(), "out of range")
}

func TestBuildRejectsNonStructTarget(t *testing.T) {
	var n int
	err := config.NewBuilder(config.MapSource{}, nil, nil).Build(&n, "X_", "scalar")
	require.Error(t, err)
	assert.False(t, errors.Is(err, config.ErrValidation))
}
