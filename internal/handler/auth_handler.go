package handler

import (
	"crypto/subtle"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/seanlynch0199/MMIS6191-Roses-CloversProperties/pkg/config"
	"github.com/seanlynch0199/MMIS6191-Roses-CloversProperties/pkg/logger"
	"github.com/seanlynch0199/MMIS6191-Roses-CloversProperties/pkg/token"
	"github.com/seanlynch0199/MMIS6191-Roses-CloversProperties/prometheus"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// AuthHandler owns the admin login/logout flow. There is exactly one
// administrative principal: a shared secret checked against the deployment
// configuration, exchanged for an opaque bearer token.
type AuthHandler struct {
	store *token.Store
	cfg   config.AuthConfig
}

func NewAuthHandler(store *token.Store, cfg config.AuthConfig) *AuthHandler {
	return &AuthHandler{store: store, cfg: cfg}
}

// Login checks the submitted password and issues a token on success.
func (h *AuthHandler) Login(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.LoginCounter.Inc()

	var req struct {
		Password string `json:"password"`
	}
	if err := c.Bind(&req); err != nil {
		log.Warn("Failed to parse login request", zap.Error(err))
		prometheus.RecordAuthError("invalid_request")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}
	if req.Password == "" {
		prometheus.RecordAuthError("missing_password")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "password is required"})
	}

	if !h.checkPassword(req.Password) {
		log.Warn("Invalid admin password")
		prometheus.RecordAuthError("invalid_password")
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid password"})
	}

	tok, err := h.store.Issue()
	if err != nil {
		log.Error("Failed to issue token", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "token error"})
	}
	prometheus.SetActiveTokens(h.store.Len())

	log.Info("Admin logged in")
	return c.JSON(http.StatusOK, echo.Map{"token": tok})
}

// Logout revokes the caller's token server-side. The route sits behind the
// auth guard, so the token in the header is known valid here.
func (h *AuthHandler) Logout(c echo.Context) error {
	if tok, ok := c.Get("admin_token").(string); ok {
		h.store.Revoke(tok)
		prometheus.SetActiveTokens(h.store.Len())
	}
	logger.FromContext(c).Info("Admin logged out")
	return c.JSON(http.StatusOK, echo.Map{"message": "Logged out"})
}

// Me confirms that the presented token is still valid.
func (h *AuthHandler) Me(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{
		"authenticated": true,
		"role":          "admin",
	})
}

// checkPassword verifies the submitted secret. A configured bcrypt hash takes
// precedence; the plaintext fallback uses a constant-time compare so the
// check leaks no timing information either way.
func (h *AuthHandler) checkPassword(password string) bool {
	if h.cfg.AdminPasswordHash != "" {
		return bcrypt.CompareHashAndPassword([]byte(h.cfg.AdminPasswordHash), []byte(password)) == nil
	}
	return subtle.ConstantTimeCompare([]byte(h.cfg.AdminPassword), []byte(password)) == 1
}
