package service

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/kotoed/denizen/internal/denizen/domain"
	"github.com/kotoed/denizen/internal/denizen/store/drivers/sqlite"
	"github.com/kotoed/denizen/pkg/cryptox"
	"github.com/kotoed/denizen/pkg/expect"
	"github.com/kotoed/denizen/pkg/idx"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	dir, err := os.MkdirTemp("", "denizen-service-test")
	if err != nil {
		panic(err)
	}
	cryptox.SetPepperPath(filepath.Join(dir, "pepper"))

	code := m.Run()
	_ = os.RemoveAll(dir)
	os.Exit(code)
}

func newTestService(t *testing.T) (*DenizenService, *sqlite.Store) {
	t.Helper()

	store, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	require.NoError(t, store.ApplyMigrations())

	return &DenizenService{Store: store}, store
}

func ptr[T any](v T) *T { return &v }

func TestCreate(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	id, err := svc.Create(ctx, domain.CreateDenizen{Username: "  alice ", Email: ptr("alice@example.com"), Password: "hunter2"})
	require.NoError(t, err)
	require.True(t, idx.Valid(id))

	d, err := svc.Read(ctx, id)
	require.NoError(t, err)
	require.Equal(t, "alice", d.Username)
	require.Equal(t, "alice@example.com", *d.Email)
	require.NoError(t, cryptox.VerifyPassword("hunter2", d.PasswordHash))

	t.Run("duplicate username", func(t *testing.T) {
		_, err := svc.Create(ctx, domain.CreateDenizen{Username: "alice", Password: "x"})
		require.ErrorIs(t, err, ErrUsernameTaken)
	})

	t.Run("empty email is stored as none", func(t *testing.T) {
		id, err := svc.Create(ctx, domain.CreateDenizen{Username: "bob", Email: ptr(""), Password: "x"})
		require.NoError(t, err)
		d, err := svc.Read(ctx, id)
		require.NoError(t, err)
		require.Nil(t, d.Email)
	})

	invalidCases := []struct {
		name string
		req  domain.CreateDenizen
		msg  string
	}{
		{"blank username", domain.CreateDenizen{Username: "   ", Password: "x"}, "username is required"},
		{"empty password", domain.CreateDenizen{Username: "carol"}, "password is required"},
		{"bad email", domain.CreateDenizen{Username: "carol", Password: "x", Email: ptr("not-an-email")}, "email is malformed"},
	}
	for _, tc := range invalidCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Create(ctx, tc.req)
			require.ErrorIs(t, err, ErrInvalidRequest)
			require.ErrorIs(t, err, expect.ErrExpectationFailed)
			require.ErrorContains(t, err, tc.msg)
		})
	}
}

func TestReadUnknown(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Read(context.Background(), idx.New().String())
	require.ErrorIs(t, err, ErrDenizenNotFound)

	_, err = svc.ReadProfile(context.Background(), idx.New().String())
	require.ErrorIs(t, err, ErrDenizenNotFound)
}

func TestReadProfileWithoutProfileRow(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	id, err := svc.Create(ctx, domain.CreateDenizen{Username: "dave", Password: "x"})
	require.NoError(t, err)

	info, err := svc.ReadProfile(ctx, id)
	require.NoError(t, err)
	require.Equal(t, id, info.ID)
	require.Equal(t, "dave", info.Username)
	require.Nil(t, info.Email)
	require.Nil(t, info.FirstName)
	require.Empty(t, info.OAuth)
	require.False(t, info.PowerMode)
}

func TestReadProfileIncludesOAuthLinks(t *testing.T) {
	ctx := context.Background()
	svc, store := newTestService(t)

	id, err := svc.Create(ctx, domain.CreateDenizen{Username: "erin", Password: "x"})
	require.NoError(t, err)

	provider := domain.OAuthProvider{ID: idx.New().String(), Name: "github"}
	require.NoError(t, store.OAuthProfiles().CreateProvider(ctx, provider))
	require.NoError(t, store.OAuthProfiles().LinkProfile(ctx, domain.OAuthProfile{
		ID: idx.New().String(), DenizenID: id, ProviderID: provider.ID, OAuthUserID: "1001",
	}))

	info, err := svc.ReadProfile(ctx, id)
	require.NoError(t, err)
	require.Equal(t, []domain.OAuthLink{{Provider: "github", UserID: ptr("1001")}}, info.OAuth)
}

func TestUpdateProfile(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	id, err := svc.Create(ctx, domain.CreateDenizen{Username: "frank", Password: "x"})
	require.NoError(t, err)

	t.Run("creates profile row on first update", func(t *testing.T) {
		err := svc.UpdateProfile(ctx, id, domain.ProfileUpdate{
			Email:     ptr("frank@example.com"),
			FirstName: ptr("Frank"),
			Group:     ptr("13531"),
		})
		require.NoError(t, err)

		info, err := svc.ReadProfile(ctx, id)
		require.NoError(t, err)
		require.Equal(t, "frank@example.com", *info.Email)
		require.Equal(t, "Frank", *info.FirstName)
		require.Nil(t, info.LastName)
		require.Equal(t, "13531", *info.Group)
	})

	t.Run("nil fields are left untouched", func(t *testing.T) {
		require.NoError(t, svc.UpdateProfile(ctx, id, domain.ProfileUpdate{LastName: ptr("Smith"), PowerMode: ptr(true)}))

		info, err := svc.ReadProfile(ctx, id)
		require.NoError(t, err)
		require.Equal(t, "frank@example.com", *info.Email)
		require.Equal(t, "Frank", *info.FirstName)
		require.Equal(t, "Smith", *info.LastName)
		require.True(t, info.PowerMode)
	})

	t.Run("empty email clears it", func(t *testing.T) {
		require.NoError(t, svc.UpdateProfile(ctx, id, domain.ProfileUpdate{Email: ptr("")}))

		info, err := svc.ReadProfile(ctx, id)
		require.NoError(t, err)
		require.Nil(t, info.Email)
		require.Equal(t, "Frank", *info.FirstName)
	})

	t.Run("malformed email is rejected before any write", func(t *testing.T) {
		err := svc.UpdateProfile(ctx, id, domain.ProfileUpdate{Email: ptr("frank@"), FirstName: ptr("Nope")})
		require.ErrorIs(t, err, ErrInvalidRequest)

		info, err := svc.ReadProfile(ctx, id)
		require.NoError(t, err)
		require.Equal(t, "Frank", *info.FirstName)
	})

	t.Run("unknown denizen", func(t *testing.T) {
		err := svc.UpdateProfile(ctx, idx.New().String(), domain.ProfileUpdate{FirstName: ptr("Ghost")})
		require.ErrorIs(t, err, ErrDenizenNotFound)
	})
}

func TestUpdatePassword(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	id, err := svc.Create(ctx, domain.CreateDenizen{Username: "grace", Password: "old-secret"})
	require.NoError(t, err)

	t.Run("wrong old password", func(t *testing.T) {
		err := svc.UpdatePassword(ctx, id, "guess", "new-secret")
		require.ErrorIs(t, err, ErrIncorrectPassword)
	})

	t.Run("empty new password", func(t *testing.T) {
		err := svc.UpdatePassword(ctx, id, "old-secret", "")
		require.ErrorIs(t, err, ErrInvalidRequest)
	})

	t.Run("unknown denizen", func(t *testing.T) {
		err := svc.UpdatePassword(ctx, idx.New().String(), "a", "b")
		require.ErrorIs(t, err, ErrDenizenNotFound)
	})

	t.Run("success replaces the hash", func(t *testing.T) {
		require.NoError(t, svc.UpdatePassword(ctx, id, "old-secret", "new-secret"))

		d, err := svc.Read(ctx, id)
		require.NoError(t, err)
		require.NoError(t, cryptox.VerifyPassword("new-secret", d.PasswordHash))
		require.ErrorIs(t, cryptox.VerifyPassword("old-secret", d.PasswordHash), cryptox.ErrPasswordMismatch)

		require.ErrorIs(t, svc.UpdatePassword(ctx, id, "old-secret", "again"), ErrIncorrectPassword)
	})
}
