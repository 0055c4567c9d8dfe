package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogin(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/auth/login", r.URL.Path)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req LoginRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "admin@wisal.org", req.Email)
		assert.Equal(t, "s3cret-pass", req.Password)

		json.NewEncoder(w).Encode(AuthResponse{
			AccessToken: "tok-abc",
			User: &AuthUser{
				ID:            "emp-1",
				Role:          "ADMIN",
				InstitutionID: "inst-9",
			},
		})
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	resp, err := client.Login(context.Background(), "admin@wisal.org", "s3cret-pass")
	require.NoError(t, err)

	assert.Equal(t, "tok-abc", resp.AccessToken)
	require.NotNil(t, resp.User)
	assert.Equal(t, "emp-1", resp.User.ID)
	assert.Equal(t, "ADMIN", resp.User.Role)
	assert.Equal(t, "inst-9", resp.User.InstitutionID)

	// The client never decides the credential value on its own
	assert.Empty(t, client.Credential())
}

func TestLoginValidation(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("invalid payload must not reach the server")
	}))
	defer srv.Close()

	client := NewClient(srv.URL)

	_, err := client.Login(context.Background(), "not-an-email", "s3cret-pass")
	require.Error(t, err)

	_, err = client.Login(context.Background(), "admin@wisal.org", "shrt")
	require.Error(t, err)
}

func TestLoginFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"message":"بيانات الدخول غير صحيحة"}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	_, err := client.Login(context.Background(), "admin@wisal.org", "wrong-pass")
	require.Error(t, err)

	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.Status)
	assert.Equal(t, "بيانات الدخول غير صحيحة", apiErr.Message)
}

func TestRefreshUsesCookie(t *testing.T) {
	var refreshCookie string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/auth/login":
			http.SetCookie(w, &http.Cookie{Name: "refreshToken", Value: "rt-9", Path: "/"})
			json.NewEncoder(w).Encode(AuthResponse{AccessToken: "tok-1"})
		case "/auth/refresh":
			require.Equal(t, http.MethodPost, r.Method)
			if c, err := r.Cookie("refreshToken"); err == nil {
				refreshCookie = c.Value
			}
			json.NewEncoder(w).Encode(AuthResponse{AccessToken: "tok-2"})
		default:
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
	}))
	defer srv.Close()

	client := NewClient(srv.URL)

	_, err := client.Login(context.Background(), "admin@wisal.org", "s3cret-pass")
	require.NoError(t, err)

	resp, err := client.Refresh(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "tok-2", resp.AccessToken)
	assert.Equal(t, "rt-9", refreshCookie, "refresh must ride the session cookie")
}

func TestRefreshWithoutSession(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"message":"لا توجد جلسة"}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	_, err := client.Refresh(context.Background())
	require.Error(t, err)

	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.Status)
}

func TestSignup(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/auth/signup", r.URL.Path)

		var req SignupRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "جمعية الخير", req.InstitutionName)

		json.NewEncoder(w).Encode(AuthResponse{
			AccessToken:   "tok-new",
			InstitutionID: "inst-new",
		})
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	resp, err := client.Signup(context.Background(), SignupRequest{
		InstitutionName: "جمعية الخير",
		Name:            "أحمد",
		Email:           "ahmed@example.org",
		Password:        "s3cret-pass",
	})
	require.NoError(t, err)
	assert.Equal(t, "tok-new", resp.AccessToken)
	assert.Equal(t, "inst-new", resp.InstitutionID)
}

func TestSignupValidation(t *testing.T) {
	client := NewClient("http://127.0.0.1:0")

	_, err := client.Signup(context.Background(), SignupRequest{
		Name:     "أحمد",
		Email:    "ahmed@example.org",
		Password: "s3cret-pass",
	})
	require.Error(t, err, "missing institution name must fail before any request")
}

func TestLogout(t *testing.T) {
	var called bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/auth/logout", r.URL.Path)
		called = true
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	require.NoError(t, client.Logout(context.Background()))
	assert.True(t, called)
}
