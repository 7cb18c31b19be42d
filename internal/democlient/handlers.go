package democlient

import (
	"crypto/rand"
	"embed"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"html/template"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/dmitrymomot/identity/core/binder"
	"github.com/dmitrymomot/identity/core/cookie"
	"github.com/dmitrymomot/identity/core/handler"
	"github.com/dmitrymomot/identity/core/logger"
	"github.com/dmitrymomot/identity/core/response"
)

//go:embed templates/*.html
var templatesFS embed.FS

var templates = template.Must(template.ParseFS(templatesFS, "templates/*.html"))

// stateCookie holds the CSRF state between the redirect to the provider and
// the callback. Five minutes covers a slow consent screen.
const (
	stateCookieName   = "oauth_state"
	stateCookieMaxAge = 300
)

// Handler serves the demo relying-party flow.
type Handler struct {
	cfg     Config
	cookies *cookie.Manager
	client  *http.Client
	log     *slog.Logger
}

// NewHandler creates the demo client handler set.
func NewHandler(cfg Config, cookies *cookie.Manager, client *http.Client, log *slog.Logger) *Handler {
	if client == nil {
		client = &http.Client{Timeout: cfg.HTTPTimeout}
	}
	if log == nil {
		log = slog.Default()
	}
	return &Handler{cfg: cfg, cookies: cookies, client: client, log: log}
}

// errorPage renders the client error template with the given status.
func errorPage(status int, title, detail string) handler.Response {
	return response.TemplateWithStatus(templates, "client_error", map[string]string{
		"Title":  title,
		"Detail": detail,
	}, status)
}

// Home renders the landing page with a login link.
func (h *Handler) Home(r *http.Request) handler.Response {
	return response.Template(templates, "home", nil)
}

// Login starts the authorization-code flow: it binds a random state value to
// the browser via a signed cookie, then redirects to the provider.
func (h *Handler) Login(r *http.Request) handler.Response {
	state, err := randomState()
	if err != nil {
		h.log.ErrorContext(r.Context(), "state generation failed",
			logger.Component("democlient"), logger.Error(err))
		return errorPage(http.StatusInternalServerError, "Login failed", "could not start the authorization flow")
	}

	return func(w http.ResponseWriter, req *http.Request) error {
		if err := h.cookies.SetSigned(w, stateCookieName, state, cookie.WithMaxAge(stateCookieMaxAge)); err != nil {
			return errorPage(http.StatusInternalServerError, "Login failed", "could not store the state cookie")(w, req)
		}

		params := url.Values{
			"response_type": {"code"},
			"client_id":     {h.cfg.ClientID},
			"redirect_uri":  {h.cfg.RedirectURI},
			"scope":         {h.cfg.Scope},
			"state":         {state},
		}
		return response.Redirect(h.cfg.AuthorizeURL + "?" + params.Encode())(w, req)
	}
}

type callbackParams struct {
	Code             string `query:"code"`
	State            string `query:"state"`
	Error            string `query:"error"`
	ErrorDescription string `query:"error_description"`
}

// Callback finishes the flow: it verifies the echoed state against the signed
// cookie before anything else, exchanges the code for a token, and renders the
// user profile. A missing or mismatched state aborts the flow without ever
// contacting the token endpoint.
func (h *Handler) Callback(r *http.Request) handler.Response {
	var params callbackParams
	if err := binder.Query()(r, &params); err != nil {
		return errorPage(http.StatusBadRequest, "Authorization failed", "malformed callback parameters")
	}

	if params.Error != "" {
		h.log.WarnContext(r.Context(), "authorization denied by provider",
			logger.Component("democlient"),
			slog.String("error", params.Error))
		return errorPage(http.StatusBadRequest, "Authorization failed", callbackErrorDetail(params))
	}

	storedState, err := h.cookies.GetSigned(r, stateCookieName)
	if err != nil || storedState == "" || storedState != params.State {
		h.log.WarnContext(r.Context(), "state verification failed",
			logger.Component("democlient"))
		return func(w http.ResponseWriter, req *http.Request) error {
			h.cookies.Delete(w, stateCookieName)
			return errorPage(http.StatusBadRequest, "Authorization failed", "state parameter does not match the login request")(w, req)
		}
	}
	if params.Code == "" {
		return errorPage(http.StatusBadRequest, "Authorization failed", "authorization code is missing")
	}

	token, exchErr := h.exchangeCode(r, params.Code)
	profile, profileErr := userinfoResponse{}, error(nil)
	if exchErr == nil {
		profile, profileErr = h.fetchUserinfo(r, token.AccessToken)
	}

	return func(w http.ResponseWriter, req *http.Request) error {
		h.cookies.Delete(w, stateCookieName)
		if exchErr != nil {
			h.log.ErrorContext(req.Context(), "code exchange failed",
				logger.Component("democlient"), logger.Error(exchErr))
			return errorPage(http.StatusBadGateway, "Token exchange failed", exchErr.Error())(w, req)
		}
		if profileErr != nil {
			h.log.ErrorContext(req.Context(), "userinfo fetch failed",
				logger.Component("democlient"), logger.Error(profileErr))
			return errorPage(http.StatusBadGateway, "Profile fetch failed", profileErr.Error())(w, req)
		}
		return response.Template(templates, "profile", map[string]any{
			"Sub":       profile.Sub,
			"Username":  profile.Username,
			"TokenType": token.TokenType,
			"ExpiresIn": token.ExpiresIn,
		})(w, req)
	}
}

func callbackErrorDetail(params callbackParams) string {
	if params.ErrorDescription != "" {
		return fmt.Sprintf("%s: %s", params.Error, params.ErrorDescription)
	}
	return params.Error
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}

type providerError struct {
	Code        string `json:"error"`
	Description string `json:"error_description"`
}

// exchangeCode trades the authorization code for an access token at the
// provider's token endpoint.
func (h *Handler) exchangeCode(r *http.Request, code string) (tokenResponse, error) {
	form := url.Values{
		"grant_type":    {"authorization_code"},
		"code":          {code},
		"redirect_uri":  {h.cfg.RedirectURI},
		"client_id":     {h.cfg.ClientID},
		"client_secret": {h.cfg.ClientSecret},
	}

	req, err := http.NewRequestWithContext(r.Context(), http.MethodPost, h.cfg.TokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return tokenResponse{}, fmt.Errorf("exchange code: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := h.client.Do(req)
	if err != nil {
		return tokenResponse{}, fmt.Errorf("exchange code: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return tokenResponse{}, fmt.Errorf("exchange code: read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var perr providerError
		if json.Unmarshal(body, &perr) == nil && perr.Code != "" {
			return tokenResponse{}, fmt.Errorf("provider rejected the code: %s", perr.Code)
		}
		return tokenResponse{}, fmt.Errorf("token endpoint returned status %d", resp.StatusCode)
	}

	var token tokenResponse
	if err := json.Unmarshal(body, &token); err != nil {
		return tokenResponse{}, fmt.Errorf("exchange code: decode response: %w", err)
	}
	if token.AccessToken == "" {
		return tokenResponse{}, fmt.Errorf("token endpoint returned an empty access token")
	}
	return token, nil
}

type userinfoResponse struct {
	Sub      string `json:"sub"`
	Username string `json:"username"`
}

// fetchUserinfo loads the resource-owner profile with the freshly issued token.
func (h *Handler) fetchUserinfo(r *http.Request, accessToken string) (userinfoResponse, error) {
	req, err := http.NewRequestWithContext(r.Context(), http.MethodGet, h.cfg.UserinfoURL, nil)
	if err != nil {
		return userinfoResponse{}, fmt.Errorf("userinfo: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := h.client.Do(req)
	if err != nil {
		return userinfoResponse{}, fmt.Errorf("userinfo: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return userinfoResponse{}, fmt.Errorf("userinfo endpoint returned status %d", resp.StatusCode)
	}

	var profile userinfoResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<20)).Decode(&profile); err != nil {
		return userinfoResponse{}, fmt.Errorf("userinfo: decode response: %w", err)
	}
	return profile, nil
}

func randomState() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
