package cryptox

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func testHasher() *Hasher { return NewHasher("test-pepper") }

func TestHash(t *testing.T) {
	h := testHasher()

	tests := []struct {
		name     string
		password string
	}{
		{"simple password", "password123"},
		{"complex password", "P@ssw0rd!#$%^&*()"},
		{"long password", strings.Repeat("a", 100)},
		{"empty password", ""},
		{"unicode password", "пароль🔒密码"},
		{"whitespace password", "   spaces   "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hash, err := h.Hash(tt.password)
			require.NoError(t, err)

			// PHC format
			parts := strings.Split(hash, "$")
			require.Len(t, parts, 6)
			require.Equal(t, "argon2id", parts[1])
			require.Equal(t, "v=19", parts[2])
			require.Equal(t, "m=19456,t=2,p=1", parts[3])
			require.NotEmpty(t, parts[4])
			require.NotEmpty(t, parts[5])

			require.NoError(t, h.Verify(tt.password, hash))
		})
	}
}

func TestHash_UniqueSalts(t *testing.T) {
	h := testHasher()

	hash1, err := h.Hash("samepassword")
	require.NoError(t, err)
	hash2, err := h.Hash("samepassword")
	require.NoError(t, err)

	require.NotEqual(t, hash1, hash2, "hashes should differ due to unique salts")
	require.NoError(t, h.Verify("samepassword", hash1))
	require.NoError(t, h.Verify("samepassword", hash2))
}

func TestVerify_WrongPassword(t *testing.T) {
	h := testHasher()
	hash, err := h.Hash("correct-password")
	require.NoError(t, err)

	for _, wrong := range []string{
		"wrong-password",
		"Correct-Password",
		"correct-password ",
		"",
		strings.Repeat("x", 10000),
	} {
		require.ErrorIs(t, h.Verify(wrong, hash), ErrPasswordMismatch)
	}
}

func TestVerify_PepperMatters(t *testing.T) {
	hash, err := NewHasher("pepper-a").Hash("pw")
	require.NoError(t, err)

	require.ErrorIs(t, NewHasher("pepper-b").Verify("pw", hash), ErrPasswordMismatch)
}

func TestVerify_InvalidHashFormat(t *testing.T) {
	h := testHasher()

	for name, invalid := range map[string]string{
		"empty hash":           "",
		"wrong algorithm":      "$bcrypt$v=19$m=19456,t=2,p=1$c2FsdA$aGFzaA",
		"missing parts":        "$argon2id$v=19$m=19456",
		"malformed parameters": "$argon2id$v=19$invalid$c2FsdA$aGFzaA",
		"invalid base64 salt":  "$argon2id$v=19$m=19456,t=2,p=1$!!!invalid!!!$aGFzaA",
		"invalid base64 hash":  "$argon2id$v=19$m=19456,t=2,p=1$c2FsdA$!!!invalid!!!",
		"wrong version":        "$argon2id$v=18$m=19456,t=2,p=1$c2FsdA$aGFzaA",
		"missing version":      "$argon2id$m=19456,t=2,p=1$c2FsdA$aGFzaA",
	} {
		t.Run(name, func(t *testing.T) {
			require.ErrorIs(t, h.Verify("test-password", invalid), ErrInvalidHash)
		})
	}
}
