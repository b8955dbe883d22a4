package jwt

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidate(t *testing.T) {
	m := NewManager("test-secret", "go-floor-inventory", time.Hour)
	id := uuid.New()

	token, err := m.GenerateToken(id, "floor@example.com", "Kumazawa", "STAFF", []string{"overflow:create"}, "v1")
	require.NoError(t, err)

	claims, err := m.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, id, claims.UserID)
	assert.Equal(t, "Kumazawa", claims.DisplayName)
	assert.Equal(t, []string{"overflow:create"}, claims.Privileges)
	assert.Equal(t, "v1", claims.TokenVersion)
}

func TestValidateToken_Rejects(t *testing.T) {
	m := NewManager("test-secret", "go-floor-inventory", time.Hour)

	_, err := m.ValidateToken("")
	assert.ErrorIs(t, err, ErrMissingToken)

	other := NewManager("other-secret", "go-floor-inventory", time.Hour)
	token, err := other.GenerateToken(uuid.New(), "a@example.com", "A", "STAFF", nil, "v1")
	require.NoError(t, err)
	_, err = m.ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)

	expired := NewManager("test-secret", "go-floor-inventory", time.Hour)
	expired.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	token, err = expired.GenerateToken(uuid.New(), "a@example.com", "A", "STAFF", nil, "v1")
	require.NoError(t, err)
	_, err = m.ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
