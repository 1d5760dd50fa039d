package pasetotoken

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newManager(t *testing.T, keys Keys, ttl time.Duration) *Manager {
	t.Helper()
	m, err := New(Config{Mode: keys.Mode, Issuer: "stomatology", Audience: "clinic", AccessTTL: ttl}, keys)
	require.NoError(t, err)
	return m
}

func TestIssueVerify(t *testing.T) {
	for _, keys := range []Keys{NewLocalKeys(), NewPublicKeys()} {
		t.Run(string(keys.Mode), func(t *testing.T) {
			m := newManager(t, keys, time.Hour)
			uid := uuid.New()
			sid := uuid.New()

			tok, err := m.IssueAccess(uid, &sid)
			require.NoError(t, err)

			claims, err := m.Verify(tok)
			require.NoError(t, err)
			assert.Equal(t, uid, claims.GetUserID())
			require.NotNil(t, claims.SessionID)
			assert.Equal(t, sid, *claims.SessionID)
			assert.Equal(t, "access", claims.GetTokenType())
			assert.False(t, claims.IsExpired())
		})
	}
}

func TestVerifyRejects(t *testing.T) {
	keys := NewLocalKeys()
	m := newManager(t, keys, time.Hour)

	tok, err := m.IssueAccess(uuid.New(), nil)
	require.NoError(t, err)

	other := newManager(t, NewLocalKeys(), time.Hour)
	_, err = other.Verify(tok)
	var invalid ErrInvalidToken
	assert.True(t, errors.As(err, &invalid), "foreign key: %v", err)

	wrongAud, err := New(Config{Mode: ModeLocal, Issuer: "stomatology", Audience: "other"}, keys)
	require.NoError(t, err)
	_, err = wrongAud.Verify(tok)
	assert.Error(t, err)

	_, err = m.Verify("v4.local.garbage")
	assert.Error(t, err)
}

func TestNewValidatesConfig(t *testing.T) {
	keys := NewLocalKeys()

	_, err := New(Config{Mode: ModePublic, Issuer: "i", Audience: "a"}, keys)
	assert.Error(t, err)
	_, err = New(Config{Mode: ModeLocal, Audience: "a"}, keys)
	assert.Error(t, err)
	_, err = New(Config{Mode: ModeLocal, Issuer: "i"}, keys)
	assert.Error(t, err)

	m, err := New(Config{Mode: ModeLocal, Issuer: "i", Audience: "a"}, keys)
	require.NoError(t, err)
	assert.Equal(t, time.Hour, m.AccessTTL())
}

func TestLoadKeysRoundTrip(t *testing.T) {
	keys := NewLocalKeys()

	loaded, err := LoadKeys(KeyStrings{Mode: ModeLocal, SymmetricHex: keys.LocalKeyHex()})
	require.NoError(t, err)

	tok, err := newManager(t, keys, time.Minute).IssueAccess(uuid.New(), nil)
	require.NoError(t, err)
	_, err = newManager(t, loaded, time.Minute).Verify(tok)
	assert.NoError(t, err)

	_, err = LoadKeys(KeyStrings{Mode: ModeLocal})
	assert.Error(t, err)
	_, err = LoadKeys(KeyStrings{Mode: "bogus"})
	assert.Error(t, err)
}

func TestLoadPublicKeys(t *testing.T) {
	keys := NewPublicKeys()

	verifyOnly, err := LoadKeys(KeyStrings{Mode: ModePublic, PublicHex: keys.Public.ExportHex()})
	require.NoError(t, err)
	assert.Nil(t, verifyOnly.Secret)

	tok, err := newManager(t, keys, time.Minute).IssueAccess(uuid.New(), nil)
	require.NoError(t, err)
	_, err = newManager(t, verifyOnly, time.Minute).Verify(tok)
	assert.NoError(t, err)

	signer, err := LoadKeys(KeyStrings{Mode: ModePublic, SecretHex: keys.Secret.ExportHex()})
	require.NoError(t, err)
	require.NotNil(t, signer.Public)
	assert.Equal(t, keys.Public.ExportHex(), signer.Public.ExportHex())

	_, err = LoadKeys(KeyStrings{Mode: ModePublic})
	assert.Error(t, err)
	_, err = LoadKeys(KeyStrings{Mode: ModePublic, SecretHex: "zz"})
	assert.Error(t, err)
}

func TestVerifyHonoursClock(t *testing.T) {
	m := newManager(t, NewLocalKeys(), time.Minute)
	issued := time.Now()
	m.now = func() time.Time { return issued }

	tok, err := m.IssueAccess(uuid.New(), nil)
	require.NoError(t, err)

	m.now = func() time.Time { return issued.Add(30 * time.Second) }
	_, err = m.Verify(tok)
	require.NoError(t, err)

	m.now = func() time.Time { return issued.Add(2 * time.Minute) }
	_, err = m.Verify(tok)
	var invalid ErrInvalidToken
	assert.ErrorAs(t, err, &invalid)
}
