package handler

import (
	"encoding/hex"
	"net/http"
	"testing"
	"time"

	"github.com/seanlynch0199/MMIS6191-Roses-CloversProperties/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestLoginIssuesHexToken(t *testing.T) {
	e, _ := newTestServer(t, 24*time.Hour)

	tok := login(t, e)
	assert.Len(t, tok, 64)
	_, err := hex.DecodeString(tok)
	assert.NoError(t, err)
}

func TestLoginWrongPassword(t *testing.T) {
	e, _ := newTestServer(t, 24*time.Hour)

	rec := do(e, http.MethodPost, "/api/admin/login", "", `{"password":"wrong"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	var resp struct {
		Error string `json:"error"`
	}
	require.NoError(t, jsonDecode(rec, &resp))
	assert.NotEmpty(t, resp.Error)
}

func TestLoginMissingPassword(t *testing.T) {
	e, _ := newTestServer(t, 24*time.Hour)

	rec := do(e, http.MethodPost, "/api/admin/login", "", `{}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLoginWithBcryptHash(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.MinCost)
	require.NoError(t, err)

	h := NewAuthHandler(nil, config.AuthConfig{AdminPasswordHash: string(hash)})
	assert.True(t, h.checkPassword("admin123"))
	assert.False(t, h.checkPassword("wrong"))
}

func TestGuardedRouteRequiresToken(t *testing.T) {
	e, _ := newTestServer(t, 24*time.Hour)

	// No header at all.
	rec := do(e, http.MethodGet, "/api/admin/properties", "", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// A token nobody issued.
	rec = do(e, http.MethodGet, "/api/admin/properties", "not-a-real-token", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestGuardedRouteAcceptsValidToken(t *testing.T) {
	e, _ := newTestServer(t, 24*time.Hour)

	tok := login(t, e)
	rec := do(e, http.MethodGet, "/api/admin/properties", tok, "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "[]\n", rec.Body.String())
}

func TestGuardedRouteRejectsExpiredToken(t *testing.T) {
	// A store with a negative TTL issues tokens that are already expired.
	e, _ := newTestServer(t, -time.Hour)

	rec := do(e, http.MethodPost, "/api/admin/login", "", `{"password":"`+testPassword+`"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(t, jsonDecode(rec, &resp))

	rec = do(e, http.MethodGet, "/api/admin/properties", resp.Token, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLogoutRevokesToken(t *testing.T) {
	e, store := newTestServer(t, 24*time.Hour)

	tok := login(t, e)
	require.True(t, store.Validate(tok))

	rec := do(e, http.MethodPost, "/api/admin/logout", tok, "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.False(t, store.Validate(tok))

	rec = do(e, http.MethodGet, "/api/admin/properties", tok, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestMe(t *testing.T) {
	e, _ := newTestServer(t, 24*time.Hour)

	tok := login(t, e)
	rec := do(e, http.MethodGet, "/api/admin/me", tok, "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Authenticated bool   `json:"authenticated"`
		Role          string `json:"role"`
	}
	require.NoError(t, jsonDecode(rec, &resp))
	assert.True(t, resp.Authenticated)
	assert.Equal(t, "admin", resp.Role)
}
