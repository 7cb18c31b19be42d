package tokenservice

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/identity/core/binder"
	"github.com/dmitrymomot/identity/core/handler"
	"github.com/dmitrymomot/identity/core/logger"
	"github.com/dmitrymomot/identity/core/response"
	"github.com/dmitrymomot/identity/pkg/jwt"
)

// Handler serves the token lifecycle endpoints.
type Handler struct {
	signer     *jwt.Service
	store      *CredentialStore
	accessTTL  time.Duration
	refreshTTL time.Duration
	log        *slog.Logger
}

// NewHandler creates the endpoint handler set.
func NewHandler(signer *jwt.Service, store *CredentialStore, accessTTL, refreshTTL time.Duration, log *slog.Logger) *Handler {
	if log == nil {
		log = slog.Default()
	}
	return &Handler{
		signer:     signer,
		store:      store,
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		log:        log,
	}
}

// tsError is the error body shape for the token service surface.
type tsError struct {
	Error string `json:"error"`
}

func tsErr(status int, message string) handler.Response {
	return response.JSONWithStatus(tsError{Error: message}, status)
}

type mintRequest struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
}

type tokenPairResponse struct {
	AccessToken  string `json:"access_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int    `json:"expires_in"`
	RefreshToken string `json:"refresh_token"`
}

// mintPair signs a fresh access token and issues a refresh handle for it.
func (h *Handler) mintPair(r *http.Request, userID, email string) (tokenPairResponse, error) {
	now := time.Now().UTC()
	claims := AccessClaims{
		StandardClaims: jwt.StandardClaims{
			ID:        uuid.NewString(),
			Subject:   userID,
			IssuedAt:  now.Unix(),
			ExpiresAt: now.Add(h.accessTTL).Unix(),
		},
		Email: email,
	}

	accessToken, err := h.signer.Generate(claims)
	if err != nil {
		return tokenPairResponse{}, err
	}
	refreshToken, err := h.store.IssueRefresh(r.Context(), userID, email, h.refreshTTL)
	if err != nil {
		return tokenPairResponse{}, err
	}

	h.log.InfoContext(r.Context(), "access token minted",
		logger.Component("tokenservice"),
		slog.String("user_id", userID),
		slog.String("jti", claims.ID))

	return tokenPairResponse{
		AccessToken:  accessToken,
		TokenType:    "Bearer",
		ExpiresIn:    int(h.accessTTL.Seconds()),
		RefreshToken: refreshToken,
	}, nil
}

// Mint issues an access token plus refresh handle for the given identity.
func (h *Handler) Mint(r *http.Request) handler.Response {
	var req mintRequest
	if err := binder.JSON()(r, &req); err != nil {
		return tsErr(http.StatusBadRequest, "invalid request body")
	}
	if req.UserID == "" {
		return tsErr(http.StatusBadRequest, "user_id is required")
	}

	pair, err := h.mintPair(r, req.UserID, req.Email)
	if err != nil {
		h.log.ErrorContext(r.Context(), "token mint failed",
			logger.Component("tokenservice"),
			slog.String("user_id", req.UserID),
			logger.Error(err))
		return tsErr(http.StatusInternalServerError, "failed to issue token")
	}
	return response.JSON(pair)
}

type validateRequest struct {
	Token string `json:"token"`
}

type validateResponse struct {
	Valid  bool          `json:"valid"`
	Claims *AccessClaims `json:"claims,omitempty"`
	Error  string        `json:"error,omitempty"`
}

// validationMessage maps verifier failures to caller-facing reasons.
func validationMessage(err error) string {
	switch {
	case errors.Is(err, jwt.ErrExpiredToken):
		return "Token has expired"
	case errors.Is(err, jwt.ErrUnexpectedSigningMethod):
		return "Unsupported signing algorithm"
	case errors.Is(err, jwt.ErrInvalidSignature):
		return "Invalid token signature"
	default:
		return "Invalid token"
	}
}

// Validate verifies signature, expiry, and revocation status. Store errors
// fail closed: the response is never valid:true when the blacklist cannot
// be consulted.
func (h *Handler) Validate(r *http.Request) handler.Response {
	var req validateRequest
	if err := binder.JSON()(r, &req); err != nil {
		return response.JSONWithStatus(validateResponse{Valid: false, Error: "invalid request body"}, http.StatusBadRequest)
	}

	var claims AccessClaims
	if err := h.signer.Parse(req.Token, &claims); err != nil {
		return response.JSONWithStatus(validateResponse{Valid: false, Error: validationMessage(err)}, http.StatusUnauthorized)
	}

	revoked, err := h.store.IsRevoked(r.Context(), claims.ID)
	if err != nil {
		h.log.ErrorContext(r.Context(), "revocation check failed",
			logger.Component("tokenservice"),
			slog.String("jti", claims.ID),
			logger.Error(err))
		return response.JSONWithStatus(validateResponse{Valid: false, Error: "revocation status unavailable"}, http.StatusInternalServerError)
	}
	if revoked {
		return response.JSONWithStatus(validateResponse{Valid: false, Error: "Token has been revoked"}, http.StatusUnauthorized)
	}

	return response.JSON(validateResponse{Valid: true, Claims: &claims})
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// Refresh rotates a refresh handle: the old handle is consumed atomically
// before a new access token and handle are issued, so the old handle can
// never be replayed even when minting fails afterwards.
func (h *Handler) Refresh(r *http.Request) handler.Response {
	var req refreshRequest
	if err := binder.JSON()(r, &req); err != nil {
		return tsErr(http.StatusBadRequest, "invalid request body")
	}
	if req.RefreshToken == "" {
		return tsErr(http.StatusBadRequest, "refresh_token is required")
	}

	data, err := h.store.ConsumeRefresh(r.Context(), req.RefreshToken)
	if err != nil {
		if errors.Is(err, ErrRefreshNotFound) {
			return tsErr(http.StatusUnauthorized, "invalid refresh token")
		}
		h.log.ErrorContext(r.Context(), "refresh consume failed",
			logger.Component("tokenservice"), logger.Error(err))
		return tsErr(http.StatusInternalServerError, "failed to refresh token")
	}

	pair, err := h.mintPair(r, data.UserID, data.Email)
	if err != nil {
		h.log.ErrorContext(r.Context(), "token refresh mint failed",
			logger.Component("tokenservice"),
			slog.String("user_id", data.UserID),
			logger.Error(err))
		return tsErr(http.StatusInternalServerError, "failed to refresh token")
	}
	return response.JSON(pair)
}

type revokeRequest struct {
	Token string `json:"token"`
}

type revokeResponse struct {
	Message string `json:"message"`
	JTI     string `json:"jti"`
}

// Revoke blacklists a verified token for its remaining lifetime. Tokens that
// already expired need no store write and return 400.
func (h *Handler) Revoke(r *http.Request) handler.Response {
	var req revokeRequest
	if err := binder.JSON()(r, &req); err != nil {
		return tsErr(http.StatusBadRequest, "invalid request body")
	}

	var claims AccessClaims
	if err := h.signer.Parse(req.Token, &claims); err != nil {
		if errors.Is(err, jwt.ErrExpiredToken) {
			return tsErr(http.StatusBadRequest, "token already expired")
		}
		return tsErr(http.StatusUnauthorized, "invalid token")
	}

	remaining := time.Until(time.Unix(claims.ExpiresAt, 0))
	if err := h.store.Revoke(r.Context(), claims.ID, remaining); err != nil {
		h.log.ErrorContext(r.Context(), "revocation write failed",
			logger.Component("tokenservice"),
			slog.String("jti", claims.ID),
			logger.Error(err))
		return tsErr(http.StatusInternalServerError, "failed to revoke token")
	}

	h.log.InfoContext(r.Context(), "token revoked",
		logger.Component("tokenservice"),
		slog.String("user_id", claims.Subject),
		slog.String("jti", claims.ID))

	return response.JSON(revokeResponse{Message: "token revoked successfully", JTI: claims.ID})
}

type protectedResponse struct {
	Message        string `json:"message"`
	UserID         string `json:"user_id"`
	Email          string `json:"email"`
	TokenIssuedAt  int64  `json:"token_issued_at"`
	TokenExpiresAt int64  `json:"token_expires_at"`
}

// Protected echoes the authenticated claims attached by the bearer
// middleware.
func (h *Handler) Protected(r *http.Request) handler.Response {
	claims, ok := ClaimsFromContext(r.Context())
	if !ok {
		return tsErr(http.StatusUnauthorized, "missing authentication")
	}
	return response.JSON(protectedResponse{
		Message:        "access granted",
		UserID:         claims.Subject,
		Email:          claims.Email,
		TokenIssuedAt:  claims.IssuedAt,
		TokenExpiresAt: claims.ExpiresAt,
	})
}
