package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRegisterAndAuthenticate(t *testing.T) {
	f := newFixture(t)

	user, err := f.accounts.Register(context.Background(), "alice", "secret1")
	require.NoError(t, err)
	require.NotEqual(t, "secret1", user.Password)

	got, err := f.accounts.Authenticate(context.Background(), "alice", "secret1")
	require.NoError(t, err)
	require.Equal(t, user.ID, got.ID)

	_, err = f.accounts.Authenticate(context.Background(), "alice", "wrong-pass")
	require.ErrorIs(t, err, ErrUnauthorized)

	_, err = f.accounts.Authenticate(context.Background(), "bob", "secret1")
	require.ErrorIs(t, err, ErrUnauthorized)
}

func TestRegisterValidation(t *testing.T) {
	f := newFixture(t)

	_, err := f.accounts.Register(context.Background(), "", "secret1")
	require.ErrorIs(t, err, ErrValidation)

	_, err = f.accounts.Register(context.Background(), "alice", "short")
	require.ErrorIs(t, err, ErrValidation)

	_, err = f.accounts.Register(context.Background(), "alice", "secret1")
	require.NoError(t, err)
	_, err = f.accounts.Register(context.Background(), "alice", "secret2")
	require.ErrorIs(t, err, ErrValidation)
}

func TestGetUser(t *testing.T) {
	f := newFixture(t)
	u := f.user("carol")

	got, err := f.accounts.Get(context.Background(), u.ID)
	require.NoError(t, err)
	require.Equal(t, "carol", got.Username)

	_, err = f.accounts.Get(context.Background(), 404)
	require.ErrorIs(t, err, ErrNotFound)
}
