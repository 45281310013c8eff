package auth

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	_ "github.com/ledgerly/ledgerly/testing"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestRouter(t *testing.T) chi.Router {
	t.Helper()
	tokens := NewTokenIssuer("test-secret", 24*time.Hour)
	service := NewService(newMemoryRepo(), tokens)
	handler := NewHandler(discardLogger(), service, RequireAuth(tokens))

	r := chi.NewRouter()
	r.Route("/auth", handler.MountRoutes)
	return r
}

func doJSON(t *testing.T, router http.Handler, method, path, body, token string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	res := httptest.NewRecorder()
	router.ServeHTTP(res, req)
	return res
}

func TestRegisterEndpoint(t *testing.T) {
	router := newTestRouter(t)

	res := doJSON(t, router, http.MethodPost, "/auth/register",
		`{"email":"a@b.test","password":"hunter22","name":"Alice"}`, "")
	require.Equal(t, http.StatusCreated, res.Code)

	var out struct {
		Token string          `json:"token"`
		User  json.RawMessage `json:"user"`
	}
	require.NoError(t, json.Unmarshal(res.Body.Bytes(), &out))
	require.NotEmpty(t, out.Token)
	require.NotContains(t, string(out.User), "password")
	require.NotContains(t, string(out.User), "hash")
}

func TestRegisterMissingFieldsEndpoint(t *testing.T) {
	router := newTestRouter(t)

	res := doJSON(t, router, http.MethodPost, "/auth/register",
		`{"email":"a@b.test"}`, "")
	require.Equal(t, http.StatusBadRequest, res.Code)

	var out struct {
		Message string   `json:"message"`
		Missing []string `json:"missing"`
	}
	require.NoError(t, json.Unmarshal(res.Body.Bytes(), &out))
	require.Equal(t, "All fields are required", out.Message)
	require.ElementsMatch(t, []string{"password", "name"}, out.Missing)
}

func TestProfileRequiresToken(t *testing.T) {
	router := newTestRouter(t)

	res := doJSON(t, router, http.MethodGet, "/auth/profile", "", "")
	require.Equal(t, http.StatusUnauthorized, res.Code)

	res = doJSON(t, router, http.MethodGet, "/auth/profile", "", "garbage")
	require.Equal(t, http.StatusUnauthorized, res.Code)
}

func TestProfileRoundTrip(t *testing.T) {
	router := newTestRouter(t)

	res := doJSON(t, router, http.MethodPost, "/auth/register",
		`{"email":"a@b.test","password":"hunter22","name":"Alice"}`, "")
	require.Equal(t, http.StatusCreated, res.Code)

	var session struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(res.Body.Bytes(), &session))

	res = doJSON(t, router, http.MethodGet, "/auth/profile", "", session.Token)
	require.Equal(t, http.StatusOK, res.Code)

	var user PublicUser
	require.NoError(t, json.Unmarshal(res.Body.Bytes(), &user))
	require.Equal(t, "a@b.test", user.Email)
	require.Equal(t, "Alice", user.Name)
}
