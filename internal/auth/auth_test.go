package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestVerifierPlainSecret(t *testing.T) {
	v := NewVerifier(" hunter2 ")

	assert.True(t, v.Configured())
	assert.NoError(t, v.Verify("hunter2"))
	assert.ErrorIs(t, v.Verify("hunter3"), ErrInvalidPassword)
	assert.ErrorIs(t, v.Verify(""), ErrInvalidPassword)
}

func TestVerifierEmptySecretIsMisconfiguration(t *testing.T) {
	v := NewVerifier("")

	assert.False(t, v.Configured())
	err := v.Verify("anything")
	assert.ErrorIs(t, err, ErrSecretNotConfigured)
	assert.NotErrorIs(t, err, ErrInvalidPassword)

	var nilVerifier *Verifier
	assert.ErrorIs(t, nilVerifier.Verify("x"), ErrSecretNotConfigured)
}

func TestVerifierBcryptSecret(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	require.NoError(t, err)

	v := NewVerifier(string(hash))
	assert.NoError(t, v.Verify("s3cret"))
	assert.ErrorIs(t, v.Verify(string(hash)), ErrInvalidPassword)
}

type stubAuthenticator struct {
	err   error
	calls int
	block chan struct{}
}

func (s *stubAuthenticator) Authenticate(context.Context, string) error {
	s.calls++
	if s.block != nil {
		<-s.block
	}
	return s.err
}

func TestGateMountReadsSession(t *testing.T) {
	session := &MemorySession{}
	gate := NewGate(session, &stubAuthenticator{})
	assert.Equal(t, StatusLoading, gate.Status())
	assert.Equal(t, StatusUnauthenticated, gate.Mount())

	require.NoError(t, session.SetAuthenticated(true))
	gate = NewGate(session, &stubAuthenticator{})
	assert.Equal(t, StatusAuthenticated, gate.Mount())
}

func TestGateSubmitSuccess(t *testing.T) {
	session := &MemorySession{}
	gate := NewGate(session, &stubAuthenticator{})
	gate.Mount()

	require.NoError(t, gate.Submit(context.Background(), "pw"))
	assert.Equal(t, StatusAuthenticated, gate.Status())
	assert.True(t, session.Authenticated())
	assert.Empty(t, gate.Message())
}

func TestGateSubmitFailureMessages(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{name: "wrong password", err: ErrInvalidPassword, want: MessageInvalidPassword},
		{name: "misconfigured", err: ErrSecretNotConfigured, want: MessageMisconfigured},
		{name: "network", err: errors.New("connection refused"), want: MessageFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			session := &MemorySession{}
			remote := &stubAuthenticator{err: tt.err}
			gate := NewGate(session, remote)
			gate.Mount()

			for attempt := 0; attempt < 3; attempt++ {
				err := gate.Submit(context.Background(), "bad")
				assert.ErrorIs(t, err, tt.err)
			}
			assert.Equal(t, 3, remote.calls, "attempts are never throttled")
			assert.Equal(t, StatusUnauthenticated, gate.Status())
			assert.Equal(t, tt.want, gate.Message())
			assert.False(t, session.Authenticated())
		})
	}
}

func TestGateRejectsOverlappingSubmit(t *testing.T) {
	remote := &stubAuthenticator{block: make(chan struct{})}
	gate := NewGate(&MemorySession{}, remote)
	gate.Mount()

	done := make(chan error, 1)
	go func() {
		done <- gate.Submit(context.Background(), "pw")
	}()

	require.Eventually(t, gate.Submitting, time.Second, 5*time.Millisecond)
	assert.ErrorIs(t, gate.Submit(context.Background(), "pw"), ErrSubmitInFlight)

	close(remote.block)
	require.NoError(t, <-done)
	assert.False(t, gate.Submitting())
}

func TestGateLogout(t *testing.T) {
	session := &MemorySession{}
	gate := NewGate(session, &stubAuthenticator{})
	gate.Mount()
	require.NoError(t, gate.Submit(context.Background(), "pw"))
	assert.Equal(t, "pw", gate.Password())

	require.NoError(t, gate.Logout())
	assert.Equal(t, StatusUnauthenticated, gate.Status())
	assert.False(t, session.Authenticated())
	assert.Empty(t, gate.Password())
}
