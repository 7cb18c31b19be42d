package authserver

import (
	"crypto/subtle"
	"embed"
	"errors"
	"html/template"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/identity/core/binder"
	"github.com/dmitrymomot/identity/core/handler"
	"github.com/dmitrymomot/identity/core/logger"
	"github.com/dmitrymomot/identity/core/response"
)

//go:embed templates/*.html
var templatesFS embed.FS

var templates = template.Must(template.ParseFS(templatesFS, "templates/*.html"))

const (
	codeTTL        = 5 * time.Minute
	accessTokenTTL = time.Hour
)

// consentUserID stands in for an authenticated end-user session. Password
// login for the consent step is out of scope; the seed user owns every
// approved grant.
const consentUserID = "user_001"

// Handler serves the OAuth2 endpoints.
type Handler struct {
	storage Storage
	log     *slog.Logger
}

// NewHandler creates the endpoint handler set.
func NewHandler(storage Storage, log *slog.Logger) *Handler {
	if log == nil {
		log = slog.Default()
	}
	return &Handler{storage: storage, log: log}
}

// oauthError is the RFC 6749 §5.2 error body.
type oauthError struct {
	Code        string `json:"error"`
	Description string `json:"error_description,omitempty"`
}

func oauthErr(status int, code, description string) handler.Response {
	return response.JSONWithStatus(oauthError{Code: code, Description: description}, status)
}

// errorPage renders the HTML error view. Used on the authorize surface where
// redirecting back to an unvalidated redirect_uri would be an open redirect.
func errorPage(status int, message string) handler.Response {
	return response.TemplateWithStatus(templates, "error", map[string]string{"Message": message}, status)
}

type authorizeRequest struct {
	ResponseType string `query:"response_type"`
	ClientID     string `query:"client_id"`
	RedirectURI  string `query:"redirect_uri"`
	Scope        string `query:"scope"`
	State        string `query:"state"`
}

// AuthorizePage renders the consent view after validating the client and the
// registered redirect URI. Validation failures render a 400 page and never
// redirect.
func (h *Handler) AuthorizePage(r *http.Request) handler.Response {
	var req authorizeRequest
	if err := binder.Query()(r, &req); err != nil {
		return errorPage(http.StatusBadRequest, "Malformed authorization request.")
	}

	if req.ResponseType != "code" {
		return errorPage(http.StatusBadRequest, "Unsupported response_type; only \"code\" is supported.")
	}
	if req.ClientID == "" || req.RedirectURI == "" {
		return errorPage(http.StatusBadRequest, "Missing client_id or redirect_uri.")
	}

	client, err := h.storage.GetClient(r.Context(), req.ClientID)
	if err != nil {
		if errors.Is(err, ErrClientNotFound) {
			return errorPage(http.StatusBadRequest, "Unknown client.")
		}
		h.log.ErrorContext(r.Context(), "client lookup failed",
			logger.Component("authserver"), logger.Error(err))
		return errorPage(http.StatusInternalServerError, "Internal error.")
	}
	if client.RedirectURI != req.RedirectURI {
		return errorPage(http.StatusBadRequest, "redirect_uri does not match the registered value.")
	}

	return response.Template(templates, "consent", req)
}

type decisionRequest struct {
	ClientID    string `form:"client_id"`
	RedirectURI string `form:"redirect_uri"`
	Scope       string `form:"scope"`
	State       string `form:"state"`
	Action      string `form:"action"`
}

// AuthorizeDecision handles the consent form submission. The client and
// redirect URI are re-validated before any redirect is issued; only then is
// redirect_uri a trusted target for the code, deny, or server_error outcome.
func (h *Handler) AuthorizeDecision(r *http.Request) handler.Response {
	var req decisionRequest
	if err := binder.Form()(r, &req); err != nil {
		return errorPage(http.StatusBadRequest, "Malformed consent form.")
	}

	client, err := h.storage.GetClient(r.Context(), req.ClientID)
	if err != nil {
		if errors.Is(err, ErrClientNotFound) {
			return errorPage(http.StatusBadRequest, "Unknown client.")
		}
		h.log.ErrorContext(r.Context(), "client lookup failed",
			logger.Component("authserver"), logger.Error(err))
		return errorPage(http.StatusInternalServerError, "Internal error.")
	}
	if client.RedirectURI != req.RedirectURI {
		return errorPage(http.StatusBadRequest, "redirect_uri does not match the registered value.")
	}

	if req.Action != "approve" {
		return response.Redirect(redirectURL(req.RedirectURI, url.Values{
			"error": {"access_denied"},
			"state": {req.State},
		}))
	}

	code := AuthorizationCode{
		Code:        uuid.NewString(),
		ClientID:    req.ClientID,
		UserID:      consentUserID,
		RedirectURI: req.RedirectURI,
		Scope:       req.Scope,
		ExpiresAt:   time.Now().UTC().Add(codeTTL),
	}
	if err := h.storage.CreateAuthorizationCode(r.Context(), code); err != nil {
		h.log.ErrorContext(r.Context(), "failed to store authorization code",
			logger.Component("authserver"),
			slog.String("client_id", req.ClientID),
			logger.Error(err))
		return response.Redirect(redirectURL(req.RedirectURI, url.Values{
			"error": {"server_error"},
			"state": {req.State},
		}))
	}

	h.log.InfoContext(r.Context(), "authorization code issued",
		logger.Component("authserver"),
		slog.String("client_id", req.ClientID),
		slog.String("user_id", consentUserID))

	return response.Redirect(redirectURL(req.RedirectURI, url.Values{
		"code":  {code.Code},
		"state": {req.State},
	}))
}

// redirectURL appends params to base, dropping empty values so absent state
// does not produce state= noise.
func redirectURL(base string, params url.Values) string {
	for key, values := range params {
		if len(values) == 0 || values[0] == "" {
			delete(params, key)
		}
	}
	sep := "?"
	if strings.Contains(base, "?") {
		sep = "&"
	}
	return base + sep + params.Encode()
}

type tokenRequest struct {
	GrantType    string `form:"grant_type"`
	Code         string `form:"code"`
	RedirectURI  string `form:"redirect_uri"`
	ClientID     string `form:"client_id"`
	ClientSecret string `form:"client_secret"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}

// Token exchanges an authorization code for an opaque access token.
// The validation order is fixed: parse, grant_type, client lookup,
// constant-time secret compare, then the transactional code exchange.
func (h *Handler) Token(r *http.Request) handler.Response {
	var req tokenRequest
	if err := binder.Form()(r, &req); err != nil {
		return oauthErr(http.StatusBadRequest, "invalid_request", "failed to parse request body")
	}

	if req.GrantType != "authorization_code" {
		return oauthErr(http.StatusBadRequest, "unsupported_grant_type", "only authorization_code is supported")
	}

	client, err := h.storage.GetClient(r.Context(), req.ClientID)
	if err != nil {
		if errors.Is(err, ErrClientNotFound) {
			return oauthErr(http.StatusUnauthorized, "invalid_client", "unknown client")
		}
		h.log.ErrorContext(r.Context(), "client lookup failed",
			logger.Component("authserver"), logger.Error(err))
		return oauthErr(http.StatusInternalServerError, "server_error", "")
	}
	if subtle.ConstantTimeCompare([]byte(client.Secret), []byte(req.ClientSecret)) != 1 {
		h.log.WarnContext(r.Context(), "client secret mismatch",
			logger.Component("authserver"),
			slog.String("client_id", req.ClientID))
		return oauthErr(http.StatusUnauthorized, "invalid_client", "invalid client credentials")
	}

	issued, err := h.storage.ExchangeCode(r.Context(), req.Code, req.ClientID, req.RedirectURI, uuid.NewString(), accessTokenTTL)
	switch {
	case err == nil:
	case errors.Is(err, ErrCodeNotFound):
		return oauthErr(http.StatusBadRequest, "invalid_grant", "invalid authorization code")
	case errors.Is(err, ErrCodeExpired):
		return oauthErr(http.StatusBadRequest, "invalid_grant", "authorization code expired")
	case errors.Is(err, ErrRedirectURIMismatch):
		return oauthErr(http.StatusBadRequest, "invalid_grant", "redirect URI mismatch")
	default:
		h.log.ErrorContext(r.Context(), "code exchange failed",
			logger.Component("authserver"),
			slog.String("client_id", req.ClientID),
			logger.Error(err))
		return oauthErr(http.StatusInternalServerError, "server_error", "")
	}

	h.log.InfoContext(r.Context(), "access token issued",
		logger.Component("authserver"),
		slog.String("client_id", req.ClientID),
		slog.String("user_id", issued.UserID))

	return response.JSON(tokenResponse{
		AccessToken: issued.Token,
		TokenType:   "Bearer",
		ExpiresIn:   int(accessTokenTTL.Seconds()),
	})
}

type userinfoResponse struct {
	Sub      string `json:"sub"`
	Username string `json:"username"`
}

// Userinfo resolves a Bearer access token to its owning user.
func (h *Handler) Userinfo(r *http.Request) handler.Response {
	token, ok := bearerToken(r)
	if !ok {
		return oauthErr(http.StatusUnauthorized, "invalid_request", "missing or malformed Authorization header")
	}

	stored, err := h.storage.GetAccessToken(r.Context(), token)
	if err != nil {
		if errors.Is(err, ErrTokenNotFound) {
			return oauthErr(http.StatusUnauthorized, "invalid_token", "unknown access token")
		}
		h.log.ErrorContext(r.Context(), "access token lookup failed",
			logger.Component("authserver"), logger.Error(err))
		return oauthErr(http.StatusInternalServerError, "server_error", "")
	}
	if !stored.ExpiresAt.After(time.Now().UTC()) {
		return oauthErr(http.StatusUnauthorized, "invalid_token", "access token expired")
	}

	user, err := h.storage.GetUser(r.Context(), stored.UserID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return oauthErr(http.StatusNotFound, "not_found", "user not found")
		}
		h.log.ErrorContext(r.Context(), "user lookup failed",
			logger.Component("authserver"), logger.Error(err))
		return oauthErr(http.StatusInternalServerError, "server_error", "")
	}

	return response.JSON(userinfoResponse{Sub: user.ID, Username: user.Username})
}

// bearerToken extracts the credential from an Authorization: Bearer header.
func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	token, ok := strings.CutPrefix(header, "Bearer ")
	if !ok || token == "" {
		return "", false
	}
	return token, true
}
