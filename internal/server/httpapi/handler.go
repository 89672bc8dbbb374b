// Package httpapi exposes the auth engine over HTTP.
//
// The root routes carry the original wire contract (POST / issues a token,
// GET / verifies one); the /users routes expose the same administrative
// operations the CLI drives locally.
package httpapi

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/progrestian/izin/internal/auth"
	"github.com/progrestian/izin/internal/common"
	"github.com/progrestian/izin/internal/logging"
)

// Login is the credential pair presented to POST / and POST /users.
type Login struct {
	Username string `json:"name"`
	Password string `json:"pass"`
}

// Token wraps an encoded token on the wire.
type Token struct {
	Encoded string `json:"enc"`
}

type Handler struct {
	engine *auth.Service
	logger logging.Logger
}

func NewHandler(engine *auth.Service, logger logging.Logger) *Handler {
	return &Handler{engine: engine, logger: logger}
}

// Register attaches all routes to e.
func (h *Handler) Register(e *echo.Echo) {
	e.GET("/", h.VerifyToken)
	e.POST("/", h.IssueToken)

	e.POST("/users", h.CreateUser)
	e.DELETE("/users/:username", h.DeleteUser)
	e.GET("/users", h.ListUsers)
}

// VerifyToken checks the presented token against current credential state.
// The response never says why a token was rejected.
func (h *Handler) VerifyToken(c echo.Context) error {
	var t Token
	// BindBody instead of Bind: the token arrives in the body of a GET
	// request, which Bind would skip. A malformed body decodes as an empty
	// token, which then fails verification.
	_ = (&echo.DefaultBinder{}).BindBody(c, &t)

	err := h.engine.VerifyToken(c.Request().Context(), t.Encoded)
	if err != nil {
		if errors.Is(err, common.ErrorInvalidToken) {
			return c.NoContent(http.StatusUnauthorized)
		}
		h.logger.Error(c.Request().Context(), "token verification failed", "error", err)
		return c.NoContent(http.StatusInternalServerError)
	}

	return c.NoContent(http.StatusOK)
}

// IssueToken authenticates a login and returns a fresh token. Unknown user
// and wrong password are the same 401.
func (h *Handler) IssueToken(c echo.Context) error {
	var login Login
	_ = c.Bind(&login)

	encoded, err := h.engine.IssueToken(c.Request().Context(), login.Username, login.Password)
	if err != nil {
		if errors.Is(err, common.ErrorInvalidCredentials) {
			return c.NoContent(http.StatusUnauthorized)
		}
		h.logger.Error(c.Request().Context(), "token issuance failed", "error", err)
		return c.NoContent(http.StatusInternalServerError)
	}

	return c.JSON(http.StatusOK, Token{Encoded: encoded})
}

func (h *Handler) CreateUser(c echo.Context) error {
	var login Login
	if err := c.Bind(&login); err != nil || login.Username == "" {
		return c.NoContent(http.StatusBadRequest)
	}

	err := h.engine.Register(c.Request().Context(), login.Username, login.Password)
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return c.NoContent(http.StatusConflict)
		}
		h.logger.Error(c.Request().Context(), "user creation failed", "error", err)
		return c.NoContent(http.StatusInternalServerError)
	}

	h.logger.Info(c.Request().Context(), "user created", "username", login.Username)
	return c.NoContent(http.StatusCreated)
}

func (h *Handler) DeleteUser(c echo.Context) error {
	username := c.Param("username")

	err := h.engine.Remove(c.Request().Context(), username)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return c.NoContent(http.StatusNotFound)
		}
		h.logger.Error(c.Request().Context(), "user deletion failed", "error", err)
		return c.NoContent(http.StatusInternalServerError)
	}

	h.logger.Info(c.Request().Context(), "user deleted", "username", username)
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) ListUsers(c echo.Context) error {
	names, err := h.engine.List(c.Request().Context())
	if err != nil {
		h.logger.Error(c.Request().Context(), "user listing failed", "error", err)
		return c.NoContent(http.StatusInternalServerError)
	}

	return c.JSON(http.StatusOK, names)
}
