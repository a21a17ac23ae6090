package hashing

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"io"
	"strconv"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/crypto/argon2"
)

// phcVariant is the identifier encoded in produced hash strings.  The
// "argon2" variant always hashes with Argon2id, the mode recommended by
// RFC 9106 for password hashing.
const phcVariant = "argon2id"

// Argon2 hashes passwords with Argon2id, parameterised by an
// [Argon2Policy].  Output uses the PHC string format:
//
//	$argon2id$v=19$m=65536,t=3,p=2$<salt_base64>$<hash_base64>
//
// with standard base64 without padding for salt and hash.  All parameters
// are self-contained in the string, so verification never depends on the
// current policy.
//
// Argon2 is immutable after construction and safe for concurrent use.
type Argon2 struct {
	policy Argon2Policy
}

// NewArgon2 is the registered [Constructor] for the argon2 variant.
// A nil policy selects [DefaultArgon2Policy].
func NewArgon2(policy Policy, log *zap.Logger) (Algorithm, error) {
	p := DefaultArgon2Policy()
	if policy != nil {
		typed, ok := policy.(Argon2Policy)
		if !ok {
			return nil, fmt.Errorf("%w: argon2 requires Argon2Policy, got %T", ErrInvalidPolicy, policy)
		}
		p = typed
	}
	if err := p.Validate(log); err != nil {
		return nil, err
	}
	return &Argon2{policy: p}, nil
}

// Variant implements [Algorithm].
func (a *Argon2) Variant() string { return VariantArgon2 }

// Policy returns the parameter set in use.
func (a *Argon2) Policy() Argon2Policy { return a.policy }

// HashRaw implements [Algorithm].  A fresh random salt of the configured
// length is generated for every call.
func (a *Argon2) HashRaw(peppered string) (string, error) {
	if peppered == "" {
		return "", fmt.Errorf("%w: password must not be empty", ErrHashing)
	}
	salt, err := randomSalt(a.policy.SaltLength)
	if err != nil {
		return "", err
	}
	key := argon2.IDKey(
		[]byte(peppered), salt,
		uint32(a.policy.TimeCost),
		uint32(a.policy.MemoryCost),
		uint8(a.policy.Parallelism),
		uint32(a.policy.HashLength),
	)
	return encodePHC(uint32(argon2.Version),
		uint32(a.policy.MemoryCost), uint32(a.policy.TimeCost), uint8(a.policy.Parallelism),
		salt, key), nil
}

// VerifyRaw implements [Algorithm].  Parameters are read from the stored
// hash itself, so hashes produced under older policies keep verifying.
// Comparison is constant time.
func (a *Argon2) VerifyRaw(storedHash, peppered string) (bool, error) {
	if storedHash == "" || peppered == "" {
		return false, nil
	}
	p, err := decodePHC(storedHash)
	if err != nil {
		return false, err
	}
	computed := argon2.IDKey([]byte(peppered), p.salt, p.time, p.memory, p.threads, p.keyLen)
	return subtle.ConstantTimeCompare(computed, p.hash) == 1, nil
}

// NeedsRehash implements [Algorithm].  It reports true when any parameter
// embedded in storedHash differs from the current policy.
func (a *Argon2) NeedsRehash(storedHash string) (bool, error) {
	p, err := decodePHC(storedHash)
	if err != nil {
		return false, err
	}
	return p.memory != uint32(a.policy.MemoryCost) ||
		p.time != uint32(a.policy.TimeCost) ||
		p.threads != uint8(a.policy.Parallelism) ||
		p.keyLen != uint32(a.policy.HashLength) ||
		len(p.salt) != a.policy.SaltLength, nil
}

// ──────────────────────────────────────────────────────────────────────────────
// PHC string format helpers
// ──────────────────────────────────────────────────────────────────────────────

// argon2Params holds parameters and raw values decoded from a PHC string.
type argon2Params struct {
	version uint32
	memory  uint32
	time    uint32
	threads uint8
	keyLen  uint32
	salt    []byte
	hash    []byte
}

func encodePHC(version, memory, time uint32, threads uint8, salt, hash []byte) string {
	return fmt.Sprintf("$%s$v=%d$m=%d,t=%d,p=%d$%s$%s",
		phcVariant,
		version,
		memory,
		time,
		threads,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(hash),
	)
}

// decodePHC parses an Argon2id PHC hash string.
//
// Expected format (6 dollar-delimited segments, first is empty):
//
//	$argon2id$v=19$m=65536,t=3,p=2$<salt>$<hash>
func decodePHC(encoded string) (*argon2Params, error) {
	parts := strings.Split(encoded, "$")
	if len(parts) != 6 || parts[0] != "" {
		return nil, fmt.Errorf("%w: expected 5-segment PHC string, got %d segments",
			ErrInvalidHash, len(parts)-1)
	}
	if parts[1] != phcVariant {
		return nil, fmt.Errorf("%w: unexpected variant %q", ErrInvalidHash, parts[1])
	}

	version, err := parseKV(parts[2], "v")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidHash, err)
	}

	kvs, err := parsePHCParams(parts[3])
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidHash, err)
	}
	memory, ok1 := kvs["m"]
	time, ok2 := kvs["t"]
	threads, ok3 := kvs["p"]
	if !ok1 || !ok2 || !ok3 {
		return nil, fmt.Errorf("%w: missing m/t/p in parameter segment %q", ErrInvalidHash, parts[3])
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return nil, fmt.Errorf("%w: invalid salt base64: %v", ErrInvalidHash, err)
	}
	hash, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil {
		return nil, fmt.Errorf("%w: invalid hash base64: %v", ErrInvalidHash, err)
	}

	return &argon2Params{
		version: uint32(version),
		memory:  uint32(memory),
		time:    uint32(time),
		threads: uint8(threads),
		keyLen:  uint32(len(hash)),
		salt:    salt,
		hash:    hash,
	}, nil
}

// parseKV parses a "key=value" segment and returns the uint64 value.
func parseKV(s, key string) (uint64, error) {
	prefix := key + "="
	if !strings.HasPrefix(s, prefix) {
		return 0, fmt.Errorf("expected %q prefix in %q", prefix, s)
	}
	return strconv.ParseUint(s[len(prefix):], 10, 64)
}

// parsePHCParams splits "m=65536,t=3,p=2" into a map.
func parsePHCParams(s string) (map[string]uint64, error) {
	out := make(map[string]uint64)
	for _, kv := range strings.Split(s, ",") {
		eq := strings.IndexByte(kv, '=')
		if eq <= 0 {
			return nil, fmt.Errorf("malformed param %q", kv)
		}
		v, err := strconv.ParseUint(kv[eq+1:], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("non-numeric value in %q: %v", kv, err)
		}
		out[kv[:eq]] = v
	}
	return out, nil
}

// randomSalt returns n cryptographically random bytes.
func randomSalt(n int) ([]byte, error) {
	b := make([]byte, n)
	if _, err := io.ReadFull(rand.Reader, b); err != nil {
		return nil, fmt.Errorf("%w: failed to generate salt: %w", ErrHashing, err)
	}
	return b, nil
}
