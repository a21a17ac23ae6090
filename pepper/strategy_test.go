package pepper_test

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hasbyte1/securitykit/pepper"
)

func build(t *testing.T, cfg pepper.Config) pepper.Strategy {
	t.Helper()
	s, err := pepper.Build(cfg, nil)
	require.NoError(t, err)
	return s
}

func TestNoop(t *testing.T) {
	s := pepper.Noop()
	assert.Equal(t, "noop", s.Name())
	assert.Equal(t, "pw", s.Apply("pw"))
	assert.Equal(t, "", s.Apply(""))
}

func TestBuildDisabledOrNoop(t *testing.T) {
	s := build(t, pepper.Config{Enabled: false, Mode: "hmac", HMACKey: "irrelevant"})
	assert.Equal(t, "noop", s.Name())

	s = build(t, pepper.Config{Enabled: true, Mode: "noop"})
	assert.Equal(t, "noop", s.Name())

	// Empty mode reads as noop.
	s = build(t, pepper.Config{Enabled: true})
	assert.Equal(t, "noop", s.Name())
}

func TestPrefixSuffixStrategies(t *testing.T) {
	s := build(t, pepper.Config{Enabled: true, Mode: "prefix", PrefixValue: "PRE-"})
	assert.Equal(t, "PRE-pw", s.Apply("pw"))

	s = build(t, pepper.Config{Enabled: true, Mode: "suffix", SuffixValue: "-SUF"})
	assert.Equal(t, "pw-SUF", s.Apply("pw"))

	s = build(t, pepper.Config{
		Enabled: true, Mode: "prefix_suffix",
		PrefixValue: "A", SuffixValue: "Z",
	})
	assert.Equal(t, "ApwZ", s.Apply("pw"))
}

func TestSecretFallback(t *testing.T) {
	// Mode-specific values win; the generic secret fills the gaps.
	s := build(t, pepper.Config{
		Enabled: true, Mode: "prefix_suffix",
		PrefixValue: "explicit", Secret: "fallback",
	})
	assert.Equal(t, "explicitpwfallback", s.Apply("pw"))

	s = build(t, pepper.Config{Enabled: true, Mode: "suffix", Secret: "fallback"})
	assert.Equal(t, "pwfallback", s.Apply("pw"))
}

func TestInterleave(t *testing.T) {
	s := build(t, pepper.Config{
		Enabled: true, Mode: "interleave",
		InterleaveToken: "xy", InterleaveFreq: 2,
	})
	// Token characters cycle after every second input character.
	assert.Equal(t, "abxcdyefx", s.Apply("abcdef"))
	assert.Equal(t, "a", s.Apply("a"))
	assert.Equal(t, "", s.Apply(""))
}

func TestInterleaveZeroFrequencyDegradesToNoop(t *testing.T) {
	s := build(t, pepper.Config{
		Enabled: true, Mode: "interleave",
		InterleaveToken: "x", InterleaveFreq: 0,
	})
	assert.Equal(t, "noop", s.Name())
}

func TestHMAC(t *testing.T) {
	s := build(t, pepper.Config{Enabled: true, Mode: "hmac", HMACKey: "super-secret-key"})
	assert.Equal(t, "hmac", s.Name())

	mac := hmac.New(sha256.New, []byte("super-secret-key"))
	mac.Write([]byte("pw"))
	want := hex.EncodeToString(mac.Sum(nil))
	assert.Equal(t, want, s.Apply("pw"))

	// Deterministic and fixed-length regardless of input size.
	assert.Equal(t, s.Apply("pw"), s.Apply("pw"))
	assert.Len(t, s.Apply("a very long password that exceeds typical limits"), 64)
}

func TestHMACErrors(t *testing.T) {
	_, err := pepper.Build(pepper.Config{Enabled: true, Mode: "hmac"}, nil)
	assert.ErrorIs(t, err, pepper.ErrConfig)

	_, err = pepper.Build(pepper.Config{
		Enabled: true, Mode: "hmac",
		HMACKey: "k3y-material", HMACAlgo: "blake3",
	}, nil)
	assert.ErrorIs(t, err, pepper.ErrConstruction)
}

func TestUnknownMode(t *testing.T) {
	_, err := pepper.Build(pepper.Config{Enabled: true, Mode: "rot13"}, nil)
	assert.ErrorIs(t, err, pepper.ErrUnknownStrategy)
}

func TestModes(t *testing.T) {
	assert.Equal(t,
		[]string{"noop", "prefix", "suffix", "prefix_suffix", "interleave", "hmac"},
		pepper.Modes())
}
