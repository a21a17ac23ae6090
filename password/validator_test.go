package password_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/hasbyte1/securitykit/config"
	"github.com/hasbyte1/securitykit/password"
)

func TestValidateDefaultPolicy(t *testing.T) {
	v := password.NewValidator(password.DefaultPolicy())

	tests := []struct {
		name     string
		password string
		wantMsg  string // empty means valid
	}{
		{"all classes present", "ValidPass123!", ""},
		{"too short", "Va1!", "at least 8 characters"},
		{"no uppercase", "alllower1!", "uppercase"},
		{"no lowercase", "ALLUPPER1!", "lowercase"},
		{"no digit", "NoDigits!!", "digit"},
		{"no special", "NoSpecial1", "special"},
		{"empty", "", "at least 8 characters"},
		{"space counts as special", "With Space1", ""},
		{"unicode counts as special", "Pässword12", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(tt.password)
			if tt.wantMsg == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.ErrorIs(t, err, password.ErrPolicyViolation)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestValidateRuleOrder(t *testing.T) {
	// Length is checked before character classes, so a short password with
	// multiple failures reports the length rule.
	v := password.NewValidator(password.DefaultPolicy())
	err := v.Validate("a")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "at least 8 characters")
}

func TestValidateMaxLength(t *testing.T) {
	v := password.NewValidator(password.DefaultPolicy())
	long := "Aa1!" + strings.Repeat("x", password.MaxPasswordLength)
	err := v.Validate(long)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "too long")
}

func TestValidateDisabledRules(t *testing.T) {
	v := password.NewValidator(password.Policy{MinLength: 4})
	assert.NoError(t, v.Validate("aaaa"))
	assert.Error(t, v.Validate("aaa"))
}

func TestPolicyValidateBounds(t *testing.T) {
	p := password.Policy{MinLength: 0}
	assert.ErrorIs(t, p.Validate(nil), password.ErrInvalidPolicy)

	p = password.Policy{MinLength: password.MaxPasswordLength + 1}
	assert.ErrorIs(t, p.Validate(nil), password.ErrInvalidPolicy)

	p = password.Policy{MinLength: 8}
	assert.NoError(t, p.Validate(zap.NewNop()))
}

func TestFromSource(t *testing.T) {
	src := config.MapSource{
		"PASSWORD_MIN_LENGTH":      "10",
		"PASSWORD_REQUIRE_SPECIAL": "false",
	}
	p, err := password.FromSource(src, nil)
	require.NoError(t, err)
	assert.Equal(t, 10, p.MinLength)
	assert.True(t, p.RequireUpper)
	assert.False(t, p.RequireSpecial)

	_, err = password.FromSource(config.MapSource{"PASSWORD_MIN_LENGTH": "0"}, nil)
	assert.ErrorIs(t, err, config.ErrValidation)
}
