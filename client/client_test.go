package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/rentplatform/rentplatform-api/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorCarriesServerDetail(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{"detail": "Product out of stock"})
	}))
	defer server.Close()

	c := New(server.URL, nil)
	err := c.Buy(context.Background(), 1)
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Equal(t, "Product out of stock", apiErr.Error())
}

func TestErrorFallsBackToStatusText(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "not json", http.StatusBadGateway)
	}))
	defer server.Close()

	c := New(server.URL, nil)
	err := c.Buy(context.Background(), 1)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadGateway, apiErr.StatusCode)
	assert.Equal(t, "Bad Gateway", apiErr.Detail)
}

func TestEmptySuccessBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	c := New(server.URL, nil)
	assert.NoError(t, c.Buy(context.Background(), 1))

	// even a typed result tolerates an empty body
	orders, err := c.History(context.Background())
	assert.NoError(t, err)
	assert.Empty(t, orders)
}

func TestBearerInjection(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`[]`))
	}))
	defer server.Close()

	store := NewMemoryTokenStore()
	c := New(server.URL, store)

	// no token, no header
	_, err := c.ListProducts(context.Background())
	require.NoError(t, err)
	assert.Empty(t, gotAuth)

	require.NoError(t, store.Set("tok-123"))
	_, err = c.ListProducts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Bearer tok-123", gotAuth)
}

func TestLoginPersistsTokenAndUser(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/users/login", r.URL.Path)
		var body models.LoginData
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		json.NewEncoder(w).Encode(models.AuthResponse{
			AccessToken: "issued-token",
			TokenType:   "bearer",
			User: models.UserResponse{
				ID:      7,
				Email:   body.Email,
				Role:    "user",
				Balance: 12.5,
			},
		})
	}))
	defer server.Close()

	store := NewMemoryTokenStore()
	c := New(server.URL, store)

	auth, err := c.Login(context.Background(), "user@example.com", "password123")
	require.NoError(t, err)

	// session established from the login response, no extra round trip
	assert.Equal(t, uint(7), auth.User.ID)
	assert.Equal(t, 12.5, auth.User.Balance)

	token, err := store.Get()
	require.NoError(t, err)
	assert.Equal(t, "issued-token", token)

	require.NoError(t, c.Logout())
	token, err = store.Get()
	require.NoError(t, err)
	assert.Empty(t, token)
}

func TestUnauthorizedClearsToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"detail": "Invalid authentication credentials"})
	}))
	defer server.Close()

	store := NewMemoryTokenStore()
	require.NoError(t, store.Set("stale-token"))
	c := New(server.URL, store)

	_, err := c.Me(context.Background())
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)

	token, _ := store.Get()
	assert.Empty(t, token)
}

func TestChangePasswordEndsSession(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"message": "Password changed successfully"})
	}))
	defer server.Close()

	store := NewMemoryTokenStore()
	require.NoError(t, store.Set("old-session"))
	c := New(server.URL, store)

	require.NoError(t, c.ChangePassword(context.Background(), "old", "new"))

	token, _ := store.Get()
	assert.Empty(t, token)
}

func TestAdminNamespace(t *testing.T) {
	var gotPath, gotMethod string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path + "?" + r.URL.RawQuery
		gotMethod = r.Method
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	c := New(server.URL, nil)
	ctx := context.Background()

	require.NoError(t, c.Admin.SetBalance(ctx, "user@example.com", 50))
	assert.Equal(t, http.MethodPut, gotMethod)
	assert.Equal(t, "/admin/users/balance?", gotPath)

	require.NoError(t, c.Admin.DeleteProduct(ctx, 3, true))
	assert.Equal(t, http.MethodDelete, gotMethod)
	assert.Equal(t, "/products/3?permanent=true", gotPath)

	require.NoError(t, c.Admin.DeactivatePromoCode(ctx, 9))
	assert.Equal(t, "/admin/promo-codes/9?", gotPath)
}

func TestCalcOTPEscapesSecret(t *testing.T) {
	var gotSecret string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotSecret = r.URL.Query().Get("secret")
		json.NewEncoder(w).Encode(map[string]string{"otp": "123456"})
	}))
	defer server.Close()

	c := New(server.URL, nil)
	otp, err := c.CalcOTP(context.Background(), "JBSW Y3DP EHPK 3PXP")
	require.NoError(t, err)
	assert.Equal(t, "123456", otp)
	assert.Equal(t, "JBSW Y3DP EHPK 3PXP", gotSecret)
}

func TestFileTokenStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token")
	store := NewFileTokenStore(path)

	// missing file means no session
	token, err := store.Get()
	require.NoError(t, err)
	assert.Empty(t, token)

	require.NoError(t, store.Set("persisted"))

	// a new store over the same path sees the token, like an app restart
	again := NewFileTokenStore(path)
	token, err = again.Get()
	require.NoError(t, err)
	assert.Equal(t, "persisted", token)

	require.NoError(t, again.Clear())
	token, err = again.Get()
	require.NoError(t, err)
	assert.Empty(t, token)

	// clearing an already-empty store is fine
	require.NoError(t, again.Clear())
}
