package service

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/j-h-711/MongMongVillage-BE/internal/dto"
	"github.com/j-h-711/MongMongVillage-BE/internal/model"
)

const testSecret = "test-secret"

func newAuthFixture() (AuthService, *fakeUserRepo) {
	repo := newFakeUserRepo()
	return NewAuthService(repo, testSecret, time.Hour), repo
}

func TestSignup(t *testing.T) {
	svc, repo := newAuthFixture()
	ctx := context.Background()

	user, err := svc.Signup(ctx, dto.SignupRequest{
		Email:    "dog@example.com",
		Nickname: "dogperson",
		Password: "password123",
	})
	require.NoError(t, err)
	assert.NotEqual(t, "", user.ID.String())
	assert.Equal(t, model.RoleUser, user.Role)

	stored, err := repo.FindByEmail(ctx, "dog@example.com")
	require.NoError(t, err)
	assert.NotEqual(t, "password123", stored.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("password123")))
}

func TestSignupDuplicateEmail(t *testing.T) {
	svc, _ := newAuthFixture()
	ctx := context.Background()

	_, err := svc.Signup(ctx, dto.SignupRequest{Email: "dog@example.com", Nickname: "first", Password: "password123"})
	require.NoError(t, err)

	_, err = svc.Signup(ctx, dto.SignupRequest{Email: "dog@example.com", Nickname: "second", Password: "password123"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "email address is already registered")
}

func TestSignupDuplicateNickname(t *testing.T) {
	svc, _ := newAuthFixture()
	ctx := context.Background()

	_, err := svc.Signup(ctx, dto.SignupRequest{Email: "a@example.com", Nickname: "dogperson", Password: "password123"})
	require.NoError(t, err)

	_, err = svc.Signup(ctx, dto.SignupRequest{Email: "b@example.com", Nickname: "dogperson", Password: "password123"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nickname is already taken")
}

func TestLoginIssuesToken(t *testing.T) {
	svc, _ := newAuthFixture()
	ctx := context.Background()

	user, err := svc.Signup(ctx, dto.SignupRequest{Email: "dog@example.com", Nickname: "dogperson", Password: "password123"})
	require.NoError(t, err)

	auth, err := svc.Login(ctx, dto.LoginRequest{Email: "dog@example.com", Password: "password123"})
	require.NoError(t, err)
	assert.Equal(t, "Bearer", auth.TokenType)
	assert.Equal(t, model.RoleUser, auth.Role)
	assert.Equal(t, "", auth.User.PasswordHash)

	claims := &AuthClaims{}
	token, err := jwt.ParseWithClaims(auth.AccessToken, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(testSecret), nil
	})
	require.NoError(t, err)
	require.True(t, token.Valid)
	assert.Equal(t, user.ID.String(), claims.Subject)
	assert.Equal(t, "dog@example.com", claims.Email)
	assert.Equal(t, model.RoleUser, claims.Role)
}

func TestLoginFailures(t *testing.T) {
	svc, _ := newAuthFixture()
	ctx := context.Background()

	_, err := svc.Signup(ctx, dto.SignupRequest{Email: "dog@example.com", Nickname: "dogperson", Password: "password123"})
	require.NoError(t, err)

	// Unknown email and wrong password fail with distinct messages.
	_, err = svc.Login(ctx, dto.LoginRequest{Email: "cat@example.com", Password: "password123"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "email is not registered")

	_, err = svc.Login(ctx, dto.LoginRequest{Email: "dog@example.com", Password: "wrongpassword"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "password does not match")
}
