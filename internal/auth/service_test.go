package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/ledgerly/ledgerly/internal/platform/httpx"
)

type memoryRepo struct {
	byEmail map[string]*User
	byID    map[uuid.UUID]*User
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{
		byEmail: make(map[string]*User),
		byID:    make(map[uuid.UUID]*User),
	}
}

func (r *memoryRepo) CreateUser(ctx context.Context, user *User) error {
	if _, ok := r.byEmail[user.Email]; ok {
		return ErrEmailTaken
	}
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	copied := *user
	r.byEmail[user.Email] = &copied
	r.byID[user.ID] = &copied
	return nil
}

func (r *memoryRepo) FindByEmail(ctx context.Context, email string) (*User, error) {
	user, ok := r.byEmail[email]
	if !ok {
		return nil, ErrUserNotFound
	}
	return user, nil
}

func (r *memoryRepo) FindByID(ctx context.Context, id uuid.UUID) (*User, error) {
	user, ok := r.byID[id]
	if !ok {
		return nil, ErrUserNotFound
	}
	return user, nil
}

func newTestService() *Service {
	return NewService(newMemoryRepo(), NewTokenIssuer("test-secret", 24*time.Hour))
}

func TestRegisterRedactsPassword(t *testing.T) {
	svc := newTestService()

	token, user, err := svc.Register(context.Background(), "a@b.test", "hunter22", "Alice")
	require.NoError(t, err)
	require.NotEmpty(t, token)
	require.Equal(t, "a@b.test", user.Email)
	require.Equal(t, "Alice", user.Name)
	require.NotEqual(t, uuid.Nil, user.ID)
}

func TestRegisterMissingFields(t *testing.T) {
	svc := newTestService()

	_, _, err := svc.Register(context.Background(), "a@b.test", "", "")
	require.Error(t, err)
	require.ErrorIs(t, err, httpx.ErrValidation)

	var he *httpx.Error
	require.True(t, errors.As(err, &he))
	require.ElementsMatch(t, []string{"password", "name"}, he.Missing)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc := newTestService()

	_, _, err := svc.Register(context.Background(), "a@b.test", "hunter22", "Alice")
	require.NoError(t, err)

	_, _, err = svc.Register(context.Background(), "a@b.test", "other", "Bob")
	require.ErrorIs(t, err, httpx.ErrConflict)
}

func TestLoginErrorsDoNotEnumerateAccounts(t *testing.T) {
	svc := newTestService()

	_, _, err := svc.Register(context.Background(), "a@b.test", "hunter22", "Alice")
	require.NoError(t, err)

	_, _, wrongPass := svc.Login(context.Background(), "a@b.test", "wrong")
	_, _, unknownEmail := svc.Login(context.Background(), "nobody@b.test", "hunter22")

	require.Error(t, wrongPass)
	require.Error(t, unknownEmail)
	require.Equal(t, wrongPass.Error(), unknownEmail.Error())
	require.ErrorIs(t, wrongPass, httpx.ErrUnauthorized)
	require.ErrorIs(t, unknownEmail, httpx.ErrUnauthorized)
}

func TestLoginSuccess(t *testing.T) {
	svc := newTestService()

	_, _, err := svc.Register(context.Background(), "a@b.test", "hunter22", "Alice")
	require.NoError(t, err)

	token, user, err := svc.Login(context.Background(), "a@b.test", "hunter22")
	require.NoError(t, err)
	require.NotEmpty(t, token)
	require.Equal(t, "a@b.test", user.Email)
}

func TestProfileUnknownUser(t *testing.T) {
	svc := newTestService()

	_, err := svc.Profile(context.Background(), uuid.New())
	require.ErrorIs(t, err, httpx.ErrNotFound)
}
