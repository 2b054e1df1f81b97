package api

import (
	"log/slog"
	"mime"
	"net/http"

	"github.com/utn-progav/autos-api/internal/api/shared"
	"github.com/utn-progav/autos-api/internal/platform/logger"
	"github.com/utn-progav/autos-api/internal/service"
	"github.com/utn-progav/autos-api/internal/service/auth"
)

// AuthHandler handles user registration, token issuance and the current
// user lookup.
type AuthHandler struct {
	userService service.UserService
	jwtService  auth.JWTService
	logger      *slog.Logger
}

// NewAuthHandler creates a new AuthHandler with the given dependencies.
func NewAuthHandler(
	userService service.UserService,
	jwtService auth.JWTService,
	logger *slog.Logger,
) *AuthHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for AuthHandler")
	}

	return &AuthHandler{
		userService: userService,
		jwtService:  jwtService,
		logger:      logger.With(slog.String("component", "auth_handler")),
	}
}

// Register handles POST /usuarios/ requests.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req UserCreateRequest
	if err := decodeBody(r, &req); err != nil {
		HandleAPIError(w, r, err)
		return
	}

	user, err := h.userService.Register(r.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, userToResponse(user))
}

// Token handles POST /auth/token requests. Credentials are read from a JSON
// body or, for OAuth2 password-flow clients, from a form body.
func (h *AuthHandler) Token(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	req, err := readTokenRequest(r)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	user, err := h.userService.Authenticate(r.Context(), req.Username, req.Password)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	token, err := h.jwtService.GenerateToken(r.Context(), user.ID)
	if err != nil {
		log.Error("failed to generate token", slog.Int64("user_id", user.ID))
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError,
			"No se pudo generar el token", err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, TokenResponse{
		AccessToken: token,
		TokenType:   auth.TokenType,
	})
}

// Me handles GET /usuarios/me requests. It requires the auth middleware.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := shared.GetUserID(r.Context())
	if !ok {
		HandleAPIError(w, r, auth.ErrMissingToken)
		return
	}

	user, err := h.userService.GetUser(r.Context(), userID)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, userToResponse(user))
}

func readTokenRequest(r *http.Request) (TokenRequest, error) {
	var req TokenRequest

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "application/x-www-form-urlencoded" || mediaType == "multipart/form-data" {
		req.Username = r.PostFormValue("username")
		req.Password = r.PostFormValue("password")
		return req, shared.ValidateRequest(&req)
	}

	return req, decodeBody(r, &req)
}
