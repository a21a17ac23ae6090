package pepper

import (
	"crypto/md5"
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"fmt"
	"hash"
	"strings"

	"go.uber.org/zap"
)

// minHMACKeyLen is the advisory lower bound for HMAC keys; shorter keys are
// accepted with a warning.
const minHMACKeyLen = 8

// digests maps supported PEPPER_HMAC_ALGO values to their constructors.
var digests = map[string]func() hash.Hash{
	"md5":    md5.New,
	"sha1":   sha1.New,
	"sha224": sha256.New224,
	"sha256": sha256.New,
	"sha384": sha512.New384,
	"sha512": sha512.New,
}

// Build translates a parsed [Config] into a concrete [Strategy].
//
// Semantic validation lives here so the parsing layer stays generic:
// missing HMAC key, unsupported digest, and unknown modes are reported as
// pepper errors; an interleave frequency <= 0 degrades to noop with a
// warning.  Callers that must never fail should go through [Pipeline],
// which converts every error into a noop fallback.
func Build(cfg Config, log *zap.Logger) (Strategy, error) {
	if log == nil {
		log = zap.NewNop()
	}

	mode := strings.ToLower(cfg.Mode)
	if mode == "" {
		mode = "noop"
	}
	if !cfg.Enabled || mode == "noop" {
		return Noop(), nil
	}

	switch mode {
	case "prefix":
		return prefixStrategy{prefix: fallback(cfg.PrefixValue, cfg.Secret)}, nil

	case "suffix":
		return suffixStrategy{suffix: fallback(cfg.SuffixValue, cfg.Secret)}, nil

	case "prefix_suffix":
		return prefixSuffixStrategy{
			prefix: fallback(cfg.PrefixValue, cfg.Secret),
			suffix: fallback(cfg.SuffixValue, cfg.Secret),
		}, nil

	case "interleave":
		if cfg.InterleaveFreq <= 0 {
			log.Warn("PEPPER_INTERLEAVE_FREQ <= 0, falling back to noop",
				zap.Int("frequency", cfg.InterleaveFreq))
			return Noop(), nil
		}
		return interleaveStrategy{
			token: fallback(cfg.InterleaveToken, cfg.Secret),
			freq:  cfg.InterleaveFreq,
		}, nil

	case "hmac":
		if cfg.HMACKey == "" {
			return nil, fmt.Errorf("%w: PEPPER_HMAC_KEY required for hmac mode", ErrConfig)
		}
		if len(cfg.HMACKey) < minHMACKeyLen {
			log.Warn("PEPPER_HMAC_KEY is very short, consider a stronger key",
				zap.Int("length", len(cfg.HMACKey)), zap.Int("recommended_min", minHMACKeyLen))
		}
		algo := strings.ToLower(cfg.HMACAlgo)
		if algo == "" {
			algo = "sha256"
		}
		digest, ok := digests[algo]
		if !ok {
			return nil, fmt.Errorf("%w: unsupported HMAC algorithm %q", ErrConstruction, cfg.HMACAlgo)
		}
		return hmacStrategy{key: []byte(cfg.HMACKey), algo: algo, digest: digest}, nil
	}

	return nil, fmt.Errorf("%w: PEPPER_MODE %q", ErrUnknownStrategy, cfg.Mode)
}

// Modes returns the known strategy names.
func Modes() []string {
	return []string{"noop", "prefix", "suffix", "prefix_suffix", "interleave", "hmac"}
}

func fallback(value, secret string) string {
	if value != "" {
		return value
	}
	return secret
}
