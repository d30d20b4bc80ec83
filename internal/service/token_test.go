package service

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIssueVerifyRoundTrip(t *testing.T) {
	svc := &TokenService{Secret: []byte("test-secret")}

	token, err := svc.Issue(42)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	id, err := svc.Verify(token)
	require.NoError(t, err)
	require.Equal(t, uint(42), id)
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	token, err := (&TokenService{Secret: []byte("secret-a")}).Issue(7)
	require.NoError(t, err)

	_, err = (&TokenService{Secret: []byte("secret-b")}).Verify(token)
	require.Error(t, err)
}

func TestVerifyRejectsMalformedToken(t *testing.T) {
	svc := &TokenService{Secret: []byte("test-secret")}

	_, err := svc.Verify("not-a-token")
	require.Error(t, err)

	_, err = svc.Verify("")
	require.Error(t, err)
}
