package cmd

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func refreshServer(t *testing.T, token string) *httptest.Server {
	t.Helper()

	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/refresh" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		writeAuthResponse(t, w, token)
	}))
}

func TestStatusCommandSignedIn(t *testing.T) {
	token := makeToken(t, map[string]interface{}{
		"sub": "emp-7", "role": "DISTRIBUTER", "institutionId": "inst-3",
	})
	srv := refreshServer(t, token)
	defer srv.Close()

	setTestEnv(t, srv.URL)

	out, err := runCommand(t, nil, "status")
	require.NoError(t, err)
	assert.Contains(t, out, "Signed in.")
	assert.Contains(t, out, "emp-7")
	assert.Contains(t, out, "DISTRIBUTER")
	assert.Contains(t, out, "inst-3")
}

func TestStatusCommandJSON(t *testing.T) {
	token := makeToken(t, map[string]interface{}{
		"sub": "emp-7", "role": "DISTRIBUTER", "institutionId": "inst-3",
	})
	srv := refreshServer(t, token)
	defer srv.Close()

	setTestEnv(t, srv.URL)

	out, err := runCommand(t, nil, "status", "--json")
	require.NoError(t, err)

	var info statusInfo
	require.NoError(t, json.NewDecoder(strings.NewReader(out)).Decode(&info))
	assert.True(t, info.Authenticated)
	assert.Equal(t, "emp-7", info.EmployeeID)
	assert.Equal(t, "DISTRIBUTER", info.Role)
	assert.Equal(t, "inst-3", info.InstitutionID)
}

func TestStatusCommandNotSignedIn(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"message":"انتهت الجلسة"}`))
	}))
	defer srv.Close()

	setTestEnv(t, srv.URL)

	out, err := runCommand(t, nil, "status")
	require.NoError(t, err)
	assert.Contains(t, out, "Not signed in. Run `wisal login` first.")
}
