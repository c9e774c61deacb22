package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogin(t *testing.T) {
	users := map[string]string{"abogado": "clave123"}

	t.Run("ValidCredentials", func(t *testing.T) {
		s := New(users)
		require.NoError(t, s.Login("abogado", "clave123"))
		assert.Equal(t, Authenticated, s.State())
		assert.Equal(t, "abogado", s.User())
	})

	t.Run("WrongPassword", func(t *testing.T) {
		s := New(users)
		err := s.Login("abogado", "otra")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
		assert.Equal(t, Unauthenticated, s.State())
	})

	t.Run("UnknownUser", func(t *testing.T) {
		s := New(users)
		err := s.Login("nadie", "clave123")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
		assert.Equal(t, Unauthenticated, s.State())
	})
}

func TestLogoutClearsTranscript(t *testing.T) {
	s := New(map[string]string{"abogado": "clave123"})
	require.NoError(t, s.Login("abogado", "clave123"))

	s.Append("user", "¿qué pruebas hay?")
	s.Append("assistant", "según el expediente...")
	require.Len(t, s.Transcript(), 2)

	s.Logout()
	assert.Equal(t, Unauthenticated, s.State())
	assert.Empty(t, s.User())
	assert.Empty(t, s.Transcript())
}

func TestTranscriptIsACopy(t *testing.T) {
	s := New(nil)
	s.Append("user", "hola")

	got := s.Transcript()
	got[0].Content = "mutado"

	assert.Equal(t, "hola", s.Transcript()[0].Content)
}
