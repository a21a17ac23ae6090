package pepper

import (
	"crypto/hmac"
	"encoding/hex"
	"hash"
)

// Strategy transforms a password before hashing.  Implementations are
// immutable and safe for concurrent use.
type Strategy interface {
	// Name returns the strategy's registry key.
	Name() string

	// Apply returns the transformed password.
	Apply(password string) string
}

type noopStrategy struct{}

func (noopStrategy) Name() string                 { return "noop" }
func (noopStrategy) Apply(password string) string { return password }

// Noop returns the identity strategy, the universal safe fallback.
func Noop() Strategy { return noopStrategy{} }

type prefixStrategy struct{ prefix string }

func (prefixStrategy) Name() string                   { return "prefix" }
func (s prefixStrategy) Apply(password string) string { return s.prefix + password }

type suffixStrategy struct{ suffix string }

func (suffixStrategy) Name() string                   { return "suffix" }
func (s suffixStrategy) Apply(password string) string { return password + s.suffix }

type prefixSuffixStrategy struct{ prefix, suffix string }

func (prefixSuffixStrategy) Name() string { return "prefix_suffix" }
func (s prefixSuffixStrategy) Apply(password string) string {
	return s.prefix + password + s.suffix
}

// interleaveStrategy inserts a cyclic token every freq characters.
// Obfuscation only; not a cryptographic transform.
type interleaveStrategy struct {
	token string
	freq  int
}

func (interleaveStrategy) Name() string { return "interleave" }

func (s interleaveStrategy) Apply(password string) string {
	if s.token == "" || s.freq <= 0 {
		return password
	}
	runes := []rune(password)
	tokens := []rune(s.token)
	out := make([]rune, 0, len(runes)+len(runes)/s.freq)
	ti := 0
	for i, ch := range runes {
		out = append(out, ch)
		if (i+1)%s.freq == 0 {
			out = append(out, tokens[ti%len(tokens)])
			ti++
		}
	}
	return string(out)
}

// hmacStrategy maps the password to the hex digest of HMAC(key, password).
// The digest constructor is resolved at build time, so Apply cannot fail.
type hmacStrategy struct {
	key    []byte
	algo   string
	digest func() hash.Hash
}

func (hmacStrategy) Name() string { return "hmac" }

func (s hmacStrategy) Apply(password string) string {
	mac := hmac.New(s.digest, s.key)
	mac.Write([]byte(password))
	return hex.EncodeToString(mac.Sum(nil))
}
