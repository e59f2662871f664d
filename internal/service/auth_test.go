package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegister_AndLogin(t *testing.T) {
	svc := newTestServices(t)
	ctx := context.Background()

	userID := registerUser(t, svc, "alice")

	token, err := svc.auth.Login(ctx, LoginRequest{Username: "alice", Password: "secret1"})
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	// Successful login records the time.
	user, err := svc.auth.CurrentUser(ctx, userID)
	require.NoError(t, err)
	assert.NotNil(t, user.LastLoginDate)
}

func TestLogin_EmptyFields(t *testing.T) {
	svc := newTestServices(t)

	_, err := svc.auth.Login(context.Background(), LoginRequest{})
	require.Error(t, err)
	assert.ElementsMatch(t,
		[]string{"Username Cannot Be Empty", "Password Cannot Be Empty"},
		fieldMessages(t, err))
}

func TestLogin_UnknownUserAndWrongPassword_SameMessage(t *testing.T) {
	svc := newTestServices(t)
	ctx := context.Background()

	registerUser(t, svc, "alice")

	_, err := svc.auth.Login(ctx, LoginRequest{Username: "nobody", Password: "secret1"})
	require.Error(t, err)
	assert.Equal(t, []string{"Invalid Email Or Password"}, fieldMessages(t, err))

	_, err = svc.auth.Login(ctx, LoginRequest{Username: "alice", Password: "wrong-pass"})
	require.Error(t, err)
	assert.Equal(t, []string{"Invalid Email Or Password"}, fieldMessages(t, err))
}

func TestRegister_Validation(t *testing.T) {
	svc := newTestServices(t)
	ctx := context.Background()

	tests := []struct {
		name     string
		username string
		password string
		want     []string
	}{
		{
			name: "empty fields",
			want: []string{"Email Cannot Be Empty", "Password Cannot Be Empty"},
		},
		{
			name:     "username too long",
			username: "a-username-well-over-thirty-characters-long",
			password: "secret1",
			want:     []string{"Maximum Length For Username is 30"},
		},
		{
			name:     "password too short",
			username: "bob",
			password: "12345",
			want:     []string{"Minimum Length For Password Is 6"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.auth.Register(ctx, RegisterRequest{Username: tt.username, Password: tt.password})
			require.Error(t, err)
			assert.ElementsMatch(t, tt.want, fieldMessages(t, err))
		})
	}
}

func TestRegister_DuplicateUsername(t *testing.T) {
	svc := newTestServices(t)
	ctx := context.Background()

	registerUser(t, svc, "alice")

	_, err := svc.auth.Register(ctx, RegisterRequest{Username: "alice", Password: "secret1"})
	require.Error(t, err)
	assert.Equal(t, []string{"Email Already Used"}, fieldMessages(t, err))

	// The match is case sensitive, so a differently cased name is new.
	id, err := svc.auth.Register(ctx, RegisterRequest{Username: "Alice", Password: "secret1"})
	require.NoError(t, err)
	assert.NotEmpty(t, id)
}

func TestCurrentUser(t *testing.T) {
	svc := newTestServices(t)
	ctx := context.Background()

	userID := registerUser(t, svc, "alice")

	user, err := svc.auth.CurrentUser(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, userID, user.ID)
	assert.Equal(t, "alice", user.Username)
	assert.False(t, user.CreateDate.IsZero())

	_, err = svc.auth.CurrentUser(ctx, "user_missing")
	require.Error(t, err)
}
