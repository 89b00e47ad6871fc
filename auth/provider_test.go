package auth

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"civicreport-be/models"
	"civicreport-be/storage"
)

func newTestProvider(t *testing.T) (*Provider, storage.BlobStore) {
	t.Helper()
	blobs, err := storage.NewFileStore(t.TempDir())
	require.NoError(t, err)
	p := NewProvider(blobs)
	require.NoError(t, p.Init(context.Background()))
	return p, blobs
}

func storedUsers(t *testing.T, blobs storage.BlobStore) []models.User {
	t.Helper()
	data, err := blobs.Get(context.Background(), storage.UsersKey)
	require.NoError(t, err)
	var users []models.User
	require.NoError(t, json.Unmarshal(data, &users))
	return users
}

func TestSignUpAndSignIn(t *testing.T) {
	ctx := context.Background()
	p, blobs := newTestProvider(t)

	session, err := p.SignUp(ctx, "mary@example.com", "hunter22")
	require.NoError(t, err)
	assert.Equal(t, "mary@example.com", session.Email)
	assert.NotEmpty(t, session.UID)
	assert.Equal(t, Session(session), p.Current())

	// the stored record holds a hash, never the password itself
	users := storedUsers(t, blobs)
	require.Len(t, users, 1)
	assert.NotEqual(t, "hunter22", users[0].Password)
	assert.True(t, users[0].ComparePassword("hunter22"))

	p.SignOut(ctx)
	assert.Equal(t, Session(Anonymous{}), p.Current())

	again, err := p.SignIn(ctx, "mary@example.com", "hunter22")
	require.NoError(t, err)
	assert.Equal(t, session.UID, again.UID)
}

func TestSignUpDuplicateEmail(t *testing.T) {
	ctx := context.Background()
	p, blobs := newTestProvider(t)

	_, err := p.SignUp(ctx, "mary@example.com", "hunter22")
	require.NoError(t, err)

	_, err = p.SignUp(ctx, "mary@example.com", "different")
	assert.ErrorIs(t, err, ErrEmailExists)

	// a rejected sign-up must not touch the credential collection
	assert.Len(t, storedUsers(t, blobs), 1)
}

func TestSignInFailures(t *testing.T) {
	ctx := context.Background()
	p, _ := newTestProvider(t)

	_, err := p.SignUp(ctx, "mary@example.com", "hunter22")
	require.NoError(t, err)
	p.SignOut(ctx)

	_, err = p.SignIn(ctx, "mary@example.com", "wrong-password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = p.SignIn(ctx, "nobody@example.com", "hunter22")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	// failed sign-ins leave the session untouched
	assert.Equal(t, Session(Anonymous{}), p.Current())
}

func TestSessionSurvivesRestart(t *testing.T) {
	ctx := context.Background()
	p, blobs := newTestProvider(t)

	session, err := p.SignUp(ctx, "mary@example.com", "hunter22")
	require.NoError(t, err)

	// a fresh provider over the same blobs restores the session on Init
	restarted := NewProvider(blobs)
	assert.False(t, restarted.Ready())
	require.NoError(t, restarted.Init(ctx))
	assert.True(t, restarted.Ready())

	restored, ok := restarted.Current().(Authenticated)
	require.True(t, ok, "expected an authenticated session after restart")
	assert.Equal(t, session.UID, restored.UID)
	assert.Equal(t, session.Email, restored.Email)
}

func TestSeedAdmin(t *testing.T) {
	ctx := context.Background()
	p, blobs := newTestProvider(t)

	require.NoError(t, p.SeedAdmin(ctx, "admin@example.com", "s3cret"))

	users := storedUsers(t, blobs)
	require.Len(t, users, 1)
	assert.Equal(t, models.RoleAdmin, users[0].Role)

	session, err := p.SignIn(ctx, "admin@example.com", "s3cret")
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, session.Role)

	// a second seed is a no-op once any user exists
	require.NoError(t, p.SeedAdmin(ctx, "other@example.com", "pw"))
	assert.Len(t, storedUsers(t, blobs), 1)
}

func TestSeedAdminWithoutConfig(t *testing.T) {
	ctx := context.Background()
	p, blobs := newTestProvider(t)

	require.NoError(t, p.SeedAdmin(ctx, "", ""))

	_, err := blobs.Get(ctx, storage.UsersKey)
	assert.ErrorIs(t, err, storage.ErrNoBlob)
}
