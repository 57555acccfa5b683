package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/galenhq/galen-api/internal/domain"
	"github.com/galenhq/galen-api/internal/mocks"
	"github.com/galenhq/galen-api/internal/service/auth"
	"github.com/galenhq/galen-api/internal/store"
)

func postJSON(t *testing.T, handler http.HandlerFunc, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler(rec, req)
	return rec
}

func decodeAuthResponse(t *testing.T, rec *httptest.ResponseRecorder) AuthResponse {
	t.Helper()

	var resp AuthResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	return resp
}

func TestAuthHandler_Register(t *testing.T) {
	t.Parallel()

	t.Run("successful registration returns token pair", func(t *testing.T) {
		t.Parallel()

		var created *domain.User
		userStore := &mocks.MockUserStore{
			CreateFn: func(ctx context.Context, user *domain.User) error {
				created = user
				return nil
			},
		}
		handler := NewAuthHandler(userStore, &mocks.MockJWTService{}, &mocks.MockPasswordVerifier{}, time.Hour)

		rec := postJSON(t, handler.Register, RegisterRequest{
			Email:    "pat@example.com",
			Password: "a-long-enough-password",
		})

		assert.Equal(t, http.StatusCreated, rec.Code)
		resp := decodeAuthResponse(t, rec)
		assert.Equal(t, created.ID, resp.UserID)
		assert.Equal(t, "mock-access-token", resp.AccessToken)
		assert.Equal(t, "mock-refresh-token", resp.RefreshToken)
		assert.NotEmpty(t, resp.ExpiresAt)
	})

	t.Run("duplicate email returns conflict", func(t *testing.T) {
		t.Parallel()

		userStore := &mocks.MockUserStore{
			CreateFn: func(ctx context.Context, user *domain.User) error {
				return store.ErrEmailExists
			},
		}
		handler := NewAuthHandler(userStore, &mocks.MockJWTService{}, &mocks.MockPasswordVerifier{}, time.Hour)

		rec := postJSON(t, handler.Register, RegisterRequest{
			Email:    "pat@example.com",
			Password: "a-long-enough-password",
		})

		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("short password fails validation", func(t *testing.T) {
		t.Parallel()

		storeTouched := false
		userStore := &mocks.MockUserStore{
			CreateFn: func(ctx context.Context, user *domain.User) error {
				storeTouched = true
				return nil
			},
		}
		handler := NewAuthHandler(userStore, &mocks.MockJWTService{}, &mocks.MockPasswordVerifier{}, time.Hour)

		rec := postJSON(t, handler.Register, RegisterRequest{
			Email:    "pat@example.com",
			Password: "short",
		})

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.False(t, storeTouched)
	})

	t.Run("malformed body returns bad request", func(t *testing.T) {
		t.Parallel()

		handler := NewAuthHandler(&mocks.MockUserStore{}, &mocks.MockJWTService{}, &mocks.MockPasswordVerifier{}, time.Hour)

		req := httptest.NewRequest(http.MethodPost, "/", bytes.NewReader([]byte("{not json")))
		rec := httptest.NewRecorder()
		handler.Register(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestAuthHandler_Login(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	storedUser := &domain.User{
		ID:             userID,
		Email:          "pat@example.com",
		HashedPassword: "stored-hash",
	}

	newHandler := func(verifierSucceeds bool, getErr error) (*AuthHandler, *mocks.MockPasswordVerifier) {
		userStore := &mocks.MockUserStore{
			GetByEmailFn: func(ctx context.Context, email string) (*domain.User, error) {
				if getErr != nil {
					return nil, getErr
				}
				return storedUser, nil
			},
		}
		verifier := &mocks.MockPasswordVerifier{ShouldSucceed: verifierSucceeds}
		return NewAuthHandler(userStore, &mocks.MockJWTService{}, verifier, time.Hour), verifier
	}

	t.Run("valid credentials return token pair", func(t *testing.T) {
		t.Parallel()

		handler, verifier := newHandler(true, nil)
		rec := postJSON(t, handler.Login, LoginRequest{
			Email:    "pat@example.com",
			Password: "correct-password",
		})

		assert.Equal(t, http.StatusOK, rec.Code)
		resp := decodeAuthResponse(t, rec)
		assert.Equal(t, userID, resp.UserID)
		assert.Equal(t, "mock-access-token", resp.AccessToken)

		assert.Equal(t, 1, verifier.CompareCallCount)
		assert.Equal(t, "stored-hash", verifier.CompareCalledWith.HashedPassword)
	})

	t.Run("wrong password returns unauthorized", func(t *testing.T) {
		t.Parallel()

		handler, _ := newHandler(false, nil)
		rec := postJSON(t, handler.Login, LoginRequest{
			Email:    "pat@example.com",
			Password: "wrong-password",
		})

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Contains(t, rec.Body.String(), "Invalid credentials")
	})

	t.Run("unknown email returns the same unauthorized response", func(t *testing.T) {
		t.Parallel()

		handler, _ := newHandler(true, store.ErrUserNotFound)
		rec := postJSON(t, handler.Login, LoginRequest{
			Email:    "nobody@example.com",
			Password: "whatever-password",
		})

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Contains(t, rec.Body.String(), "Invalid credentials")
	})
}

func TestAuthHandler_RefreshToken(t *testing.T) {
	t.Parallel()

	t.Run("valid refresh token rotates the pair", func(t *testing.T) {
		t.Parallel()

		userID := uuid.New()
		jwtService := &mocks.MockJWTService{
			ValidateRefreshTokenFn: func(ctx context.Context, tokenString string) (*auth.Claims, error) {
				assert.Equal(t, "old-refresh-token", tokenString)
				return &auth.Claims{UserID: userID, TokenType: "refresh"}, nil
			},
		}
		handler := NewAuthHandler(&mocks.MockUserStore{}, jwtService, &mocks.MockPasswordVerifier{}, time.Hour)

		rec := postJSON(t, handler.RefreshToken, RefreshTokenRequest{
			RefreshToken: "old-refresh-token",
		})

		assert.Equal(t, http.StatusOK, rec.Code)
		var resp RefreshTokenResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
		assert.Equal(t, "mock-access-token", resp.AccessToken)
		assert.Equal(t, "mock-refresh-token", resp.RefreshToken)
	})

	t.Run("expired refresh token returns unauthorized", func(t *testing.T) {
		t.Parallel()

		jwtService := &mocks.MockJWTService{
			ValidateRefreshTokenFn: func(ctx context.Context, tokenString string) (*auth.Claims, error) {
				return nil, auth.ErrExpiredRefreshToken
			},
		}
		handler := NewAuthHandler(&mocks.MockUserStore{}, jwtService, &mocks.MockPasswordVerifier{}, time.Hour)

		rec := postJSON(t, handler.RefreshToken, RefreshTokenRequest{
			RefreshToken: "stale-token",
		})

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Contains(t, rec.Body.String(), "Invalid refresh token")
	})

	t.Run("access token in refresh slot is rejected", func(t *testing.T) {
		t.Parallel()

		jwtService := &mocks.MockJWTService{
			ValidateRefreshTokenFn: func(ctx context.Context, tokenString string) (*auth.Claims, error) {
				return nil, auth.ErrWrongTokenType
			},
		}
		handler := NewAuthHandler(&mocks.MockUserStore{}, jwtService, &mocks.MockPasswordVerifier{}, time.Hour)

		rec := postJSON(t, handler.RefreshToken, RefreshTokenRequest{
			RefreshToken: "an-access-token",
		})

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("missing refresh token fails validation", func(t *testing.T) {
		t.Parallel()

		handler := NewAuthHandler(&mocks.MockUserStore{}, &mocks.MockJWTService{}, &mocks.MockPasswordVerifier{}, time.Hour)

		rec := postJSON(t, handler.RefreshToken, RefreshTokenRequest{})

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
