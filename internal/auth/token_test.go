package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/ledgerly/ledgerly/internal/platform/httpx"
)

func TestTokenRoundTrip(t *testing.T) {
	issuer := NewTokenIssuer("test-secret", 24*time.Hour)
	userID := uuid.New()

	token, err := issuer.Issue(userID)
	require.NoError(t, err)

	got, err := issuer.Verify(token)
	require.NoError(t, err)
	require.Equal(t, userID, got)
}

func TestExpiredTokenRejected(t *testing.T) {
	issuer := NewTokenIssuer("test-secret", 24*time.Hour)

	issuedAt := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	issuer.WithNow(func() time.Time { return issuedAt })
	token, err := issuer.Issue(uuid.New())
	require.NoError(t, err)

	// Well-formed and correctly signed, but past the validity window.
	issuer.WithNow(func() time.Time { return issuedAt.Add(25 * time.Hour) })
	_, err = issuer.Verify(token)
	require.ErrorIs(t, err, httpx.ErrUnauthorized)
}

func TestTokenWrongSecretRejected(t *testing.T) {
	issuer := NewTokenIssuer("test-secret", 24*time.Hour)
	other := NewTokenIssuer("other-secret", 24*time.Hour)

	token, err := other.Issue(uuid.New())
	require.NoError(t, err)

	_, err = issuer.Verify(token)
	require.ErrorIs(t, err, httpx.ErrUnauthorized)
}

func TestMalformedTokenRejected(t *testing.T) {
	issuer := NewTokenIssuer("test-secret", 24*time.Hour)

	_, err := issuer.Verify("not-a-token")
	require.ErrorIs(t, err, httpx.ErrUnauthorized)
}
