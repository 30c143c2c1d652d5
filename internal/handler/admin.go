package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/livingroombaithaks/baithak-booking/internal/utils"
)

// AdminHandler implements the single-credential admin login used to
// protect payment verification and cancellation.  There are no user
// accounts: the password is checked against a bcrypt hash supplied by
// the environment and a short-lived token is minted on success.
type AdminHandler struct {
	PasswordHash string // bcrypt hash of the admin password
	JWTSecret    string // secret for signing admin tokens
	TokenTTLMin  int    // token lifetime in minutes
}

// NewAdminHandler constructs an AdminHandler from config values.
func NewAdminHandler(passwordHash, jwtSecret string, tokenTTLMin int) *AdminHandler {
	return &AdminHandler{PasswordHash: passwordHash, JWTSecret: jwtSecret, TokenTTLMin: tokenTTLMin}
}

// Login handles POST /v1/admin/login.  The body carries
// {"password": "..."}.  On success it returns a bearer token and its
// expiry; on failure, 401 with no detail about which check failed.
func (h *AdminHandler) Login(c echo.Context) error {
	var body struct {
		Password string `json:"password"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if body.Password == "" || !utils.VerifyPassword(h.PasswordHash, body.Password) {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
	}
	tok, err := utils.NewAdminToken(h.JWTSecret, h.TokenTTLMin)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to issue token"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"token":      tok.Token,
		"expires_at": tok.Exp,
	})
}
