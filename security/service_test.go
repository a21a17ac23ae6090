package security_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hasbyte1/securitykit/hashing"
	"github.com/hasbyte1/securitykit/password"
	"github.com/hasbyte1/securitykit/security"
)

func fastPolicy() hashing.Argon2Policy {
	return hashing.Argon2Policy{
		TimeCost:    1,
		MemoryCost:  8 * 1024,
		Parallelism: 1,
		HashLength:  16,
		SaltLength:  16,
	}
}

func newService(t *testing.T, policy hashing.Policy) *security.PasswordSecurity {
	t.Helper()
	hasher, err := hashing.NewHasher(hashing.VariantArgon2, policy, nil, hashing.NewDefaultRegistry())
	require.NoError(t, err)
	return security.New(password.NewValidator(password.DefaultPolicy()), hasher, nil)
}

func TestHashValidatesFirst(t *testing.T) {
	svc := newService(t, fastPolicy())

	_, err := svc.Hash("weak")
	assert.ErrorIs(t, err, password.ErrPolicyViolation)

	hash, err := svc.Hash("StrongPass1!")
	require.NoError(t, err)
	assert.NotEmpty(t, hash)
}

func TestHashUncheckedSkipsPolicy(t *testing.T) {
	svc := newService(t, fastPolicy())
	hash, err := svc.HashUnchecked("weak")
	require.NoError(t, err)
	assert.True(t, svc.Verify("weak", hash))
}

func TestVerify(t *testing.T) {
	svc := newService(t, fastPolicy())
	hash, err := svc.Hash("StrongPass1!")
	require.NoError(t, err)

	assert.True(t, svc.Verify("StrongPass1!", hash))
	assert.False(t, svc.Verify("WrongPass1!", hash))

	// Missing input and backend failures read as "no match", never as an
	// error on the login path.
	assert.False(t, svc.Verify("", hash))
	assert.False(t, svc.Verify("StrongPass1!", ""))
	assert.False(t, svc.Verify("StrongPass1!", "corrupted-hash"))
}

func TestRehash(t *testing.T) {
	weak := newService(t, fastPolicy())
	hash, err := weak.Hash("StrongPass1!")
	require.NoError(t, err)

	// Same policy: unchanged.
	same, err := weak.Rehash("StrongPass1!", hash)
	require.NoError(t, err)
	assert.Equal(t, hash, same)

	// Stronger policy: regenerated.
	p := fastPolicy()
	p.TimeCost = 2
	strong := newService(t, p)
	assert.True(t, strong.NeedsRehash(hash))

	upgraded, err := strong.Rehash("StrongPass1!", hash)
	require.NoError(t, err)
	assert.NotEqual(t, hash, upgraded)
	assert.True(t, strong.Verify("StrongPass1!", upgraded))
}

func TestVerifyAndRehash(t *testing.T) {
	weak := newService(t, fastPolicy())
	hash, err := weak.Hash("StrongPass1!")
	require.NoError(t, err)

	// Wrong password: invalid, no rehash.
	res, err := weak.VerifyAndRehash(hash, "WrongPass1!", nil)
	require.NoError(t, err)
	assert.False(t, res.Valid)
	assert.False(t, res.Rehashed)

	// Correct password, fresh hash: valid, no rehash.
	res, err = weak.VerifyAndRehash(hash, "StrongPass1!", nil)
	require.NoError(t, err)
	assert.True(t, res.Valid)
	assert.False(t, res.Rehashed)

	// Correct password, stale hash: valid, rehashed, listener notified.
	p := fastPolicy()
	p.TimeCost = 2
	strong := newService(t, p)

	var gotOld, gotNew string
	res, err = strong.VerifyAndRehash(hash, "StrongPass1!", func(oldHash, newHash string) {
		gotOld, gotNew = oldHash, newHash
	})
	require.NoError(t, err)
	assert.True(t, res.Valid)
	assert.True(t, res.Rehashed)
	assert.Equal(t, hash, gotOld)
	assert.Equal(t, res.NewHash, gotNew)
	assert.True(t, strong.Verify("StrongPass1!", res.NewHash))
	assert.False(t, strong.NeedsRehash(res.NewHash))
}
