package auth

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/rohan/workout-buddy/internal/apperrors"
	"github.com/rohan/workout-buddy/internal/models"
	"github.com/rohan/workout-buddy/internal/store"
)

// fakeUserStore keeps users in a map, enforcing case-insensitive email
// uniqueness the way the real store's index does.
type fakeUserStore struct {
	users map[string]*models.User // keyed by lowercased email
	seq   int
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: map[string]*models.User{}}
}

func (f *fakeUserStore) CreateUser(_ context.Context, email, hashedPassword string) (*models.User, error) {
	key := strings.ToLower(email)
	if _, ok := f.users[key]; ok {
		return nil, store.ErrDuplicateEmail
	}
	f.seq++
	u := &models.User{
		ID:        fmt.Sprintf("user-%d", f.seq),
		Email:     key,
		Password:  hashedPassword,
		CreatedAt: time.Now(),
	}
	f.users[key] = u
	return u, nil
}

func (f *fakeUserStore) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	u, ok := f.users[strings.ToLower(email)]
	if !ok {
		return nil, store.ErrNotFound
	}
	return u, nil
}

const strongPw = "Abc12345!"

func TestSignup(t *testing.T) {
	ctx := context.Background()
	tokens := NewTokenService("test-secret")

	t.Run("success returns decodable token", func(t *testing.T) {
		users := newFakeUserStore()
		svc := NewService(users, tokens)

		resp, err := svc.Signup(ctx, "a@x.com", strongPw)
		require.NoError(t, err)
		require.Equal(t, "a@x.com", resp.Email)

		userID, err := tokens.Verify(resp.Token)
		require.NoError(t, err)
		require.Equal(t, users.users["a@x.com"].ID, userID)
	})

	t.Run("missing fields", func(t *testing.T) {
		svc := NewService(newFakeUserStore(), tokens)
		for _, creds := range [][2]string{{"", strongPw}, {"a@x.com", ""}, {"", ""}} {
			_, err := svc.Signup(ctx, creds[0], creds[1])
			require.EqualError(t, err, "All fields must be filled")
		}
	})

	t.Run("invalid email", func(t *testing.T) {
		svc := NewService(newFakeUserStore(), tokens)
		for _, email := range []string{"not-an-email", "a@b", "a b@x.com", "@x.com"} {
			_, err := svc.Signup(ctx, email, strongPw)
			require.EqualError(t, err, "Email not valid", "email %q", email)
		}
	})

	t.Run("weak passwords", func(t *testing.T) {
		svc := NewService(newFakeUserStore(), tokens)
		for _, pw := range []string{
			"Ab1!",      // too short
			"abc12345!", // no uppercase
			"ABC12345!", // no lowercase
			"Abcdefgh!", // no digit
			"Abc123456", // no special
			"weakpassword",
		} {
			_, err := svc.Signup(ctx, "new@x.com", pw)
			require.EqualError(t, err, "Password not strong enough", "password %q", pw)
		}
	})

	t.Run("duplicate email wins over weak password", func(t *testing.T) {
		users := newFakeUserStore()
		svc := NewService(users, tokens)

		_, err := svc.Signup(ctx, "taken@x.com", strongPw)
		require.NoError(t, err)

		_, err = svc.Signup(ctx, "taken@x.com", "weakpassword")
		require.EqualError(t, err, "Email already in use")

		var appErr *apperrors.Error
		require.ErrorAs(t, err, &appErr)
		require.Equal(t, apperrors.KindConflict, appErr.Kind)
	})

	t.Run("duplicate email is case-insensitive", func(t *testing.T) {
		users := newFakeUserStore()
		svc := NewService(users, tokens)

		_, err := svc.Signup(ctx, "taken@x.com", strongPw)
		require.NoError(t, err)

		_, err = svc.Signup(ctx, "TAKEN@X.COM", strongPw)
		require.EqualError(t, err, "Email already in use")
	})
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	tokens := NewTokenService("test-secret")
	users := newFakeUserStore()
	svc := NewService(users, tokens)

	_, err := svc.Signup(ctx, "a@x.com", strongPw)
	require.NoError(t, err)

	t.Run("success", func(t *testing.T) {
		resp, err := svc.Login(ctx, "a@x.com", strongPw)
		require.NoError(t, err)
		require.Equal(t, "a@x.com", resp.Email)

		userID, err := tokens.Verify(resp.Token)
		require.NoError(t, err)
		require.Equal(t, users.users["a@x.com"].ID, userID)
	})

	t.Run("unknown email", func(t *testing.T) {
		_, err := svc.Login(ctx, "nobody@x.com", strongPw)
		require.EqualError(t, err, "Incorrect email")
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Login(ctx, "a@x.com", "Wrong123!")
		require.EqualError(t, err, "Incorrect password")
	})

	t.Run("missing fields", func(t *testing.T) {
		_, err := svc.Login(ctx, "", "")
		require.EqualError(t, err, "All fields must be filled")
	})
}

func TestStrongPassword(t *testing.T) {
	cases := []struct {
		password string
		want     bool
	}{
		{"Abc12345!", true},
		{"ABCabc1!StrongPassword", true},
		{"p@ssW0rd", true},
		{"Ab1!", false},
		{"alllowercase1!", false},
		{"ALLUPPERCASE1!", false},
		{"NoDigitsHere!", false},
		{"NoSpecials123", false},
		{"", false},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, strongPassword(tc.password), "password %q", tc.password)
	}
}
