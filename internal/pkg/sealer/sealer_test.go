//go:build unit

package sealer_test

import (
	"testing"

	"parking-booking-gateway/internal/pkg/sealer"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSealOpen(t *testing.T) {
	s := sealer.New("test-session-secret")

	sealed, err := s.Seal("bearer-token")
	require.NoError(t, err)
	assert.NotContains(t, sealed, "bearer-token")

	again, err := s.Seal("bearer-token")
	require.NoError(t, err)
	assert.NotEqual(t, sealed, again, "nonce must differ per seal")

	plain, err := s.Open(sealed)
	require.NoError(t, err)
	assert.Equal(t, "bearer-token", plain)
}

func TestOpenRejects(t *testing.T) {
	s := sealer.New("test-session-secret")
	sealed, err := s.Seal("bearer-token")
	require.NoError(t, err)

	tampered := []byte(sealed)
	if tampered[10] == 'A' {
		tampered[10] = 'B'
	} else {
		tampered[10] = 'A'
	}

	tests := []struct {
		name   string
		sealed string
		opener *sealer.Sealer
	}{
		{name: "other secret", sealed: sealed, opener: sealer.New("another-session-secret")},
		{name: "not base64", sealed: "%%%", opener: s},
		{name: "too short", sealed: "AAAA", opener: s},
		{name: "tampered", sealed: string(tampered), opener: s},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.opener.Open(tt.sealed)
			assert.ErrorIs(t, err, sealer.ErrUnsealFailed)
		})
	}
}
