package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	sharedauth "internship-navigator/internal/shared/auth"
	"internship-navigator/internal/shared/server/respond"
	"internship-navigator/internal/users"
)

const (
	userinfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"
	stateTTL    = 5 * time.Minute
)

// GoogleService runs the Google sign-in flow. A successful callback upserts
// the user record and redirects to the UI with one of our own JWTs; Google
// tokens never leave this package.
type GoogleService struct {
	oauth      *oauth2.Config
	uiRedirect string
	nonces     *nonceStore
	users      *users.Service
}

func NewGoogleService(clientID, clientSecret, redirectURL, uiRedirect string, userSvc *users.Service) *GoogleService {
	return &GoogleService{
		oauth: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  redirectURL,
			Scopes: []string{
				"https://www.googleapis.com/auth/userinfo.email",
				"https://www.googleapis.com/auth/userinfo.profile",
			},
			Endpoint: google.Endpoint,
		},
		uiRedirect: uiRedirect,
		nonces:     &nonceStore{entries: map[string]time.Time{}},
		users:      userSvc,
	}
}

// RegisterRoutes attaches the OAuth endpoints. Both sit on the auth prefix,
// which the bearer middleware skips.
func (s *GoogleService) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/auth/google/start", s.start)
	rg.GET("/auth/google/callback", s.callback)
}

func (s *GoogleService) configured() bool {
	return s.oauth.ClientID != "" && s.oauth.ClientSecret != "" && s.oauth.RedirectURL != ""
}

func (s *GoogleService) start(c *gin.Context) {
	if !s.configured() {
		respond.Error(c, http.StatusInternalServerError, "auth_not_configured", "Google auth not configured", nil)
		return
	}
	state := uuid.NewString()
	s.nonces.issue(state)
	c.Redirect(http.StatusFound, s.oauth.AuthCodeURL(state, oauth2.AccessTypeOffline))
}

func (s *GoogleService) callback(c *gin.Context) {
	state, code := c.Query("state"), c.Query("code")
	if state == "" || code == "" {
		respond.Error(c, http.StatusBadRequest, "invalid_request", "missing state or code", nil)
		return
	}
	if !s.nonces.redeem(state) {
		respond.Error(c, http.StatusBadRequest, "invalid_request", "invalid or expired state", nil)
		return
	}

	ctx := c.Request.Context()
	token, err := s.oauth.Exchange(ctx, code)
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "invalid_request", "failed to exchange code", nil)
		return
	}

	ident, err := s.identity(ctx, token)
	if err != nil {
		respond.Error(c, http.StatusBadGateway, "auth_failed", "failed to fetch user profile", nil)
		return
	}

	subject := "google:" + ident.Sub
	if s.users != nil {
		if err := s.users.UpsertFromOAuth(ctx, subject, ident.Email, ident.Name); err != nil {
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to record user", nil)
			return
		}
	}

	jwt, err := sharedauth.SignJWT(sharedauth.Claims{
		Sub:     subject,
		Email:   ident.Email,
		Name:    ident.Name,
		Picture: ident.Picture,
	})
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to issue token", nil)
		return
	}

	target, err := withToken(s.uiRedirect, jwt)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to redirect", nil)
		return
	}
	c.Redirect(http.StatusFound, target)
}

type googleIdentity struct {
	Sub     string `json:"sub"`
	ID      string `json:"id"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
}

func (s *GoogleService) identity(ctx context.Context, token *oauth2.Token) (googleIdentity, error) {
	resp, err := s.oauth.Client(ctx, token).Get(userinfoURL)
	if err != nil {
		return googleIdentity{}, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return googleIdentity{}, fmt.Errorf("userinfo status %d", resp.StatusCode)
	}

	var ident googleIdentity
	if err := json.NewDecoder(resp.Body).Decode(&ident); err != nil {
		return googleIdentity{}, err
	}
	// The v2 endpoint reports "id" where newer ones report "sub".
	if ident.Sub == "" {
		ident.Sub = ident.ID
	}
	if ident.Sub == "" {
		return googleIdentity{}, errors.New("userinfo missing subject")
	}
	return ident, nil
}

// nonceStore holds single-use OAuth state values. Redeeming removes the
// entry, so a replayed callback fails. Expired entries are pruned on issue.
type nonceStore struct {
	mu      sync.Mutex
	entries map[string]time.Time
}

func (n *nonceStore) issue(state string) {
	now := time.Now()
	n.mu.Lock()
	defer n.mu.Unlock()
	for k, exp := range n.entries {
		if now.After(exp) {
			delete(n.entries, k)
		}
	}
	n.entries[state] = now.Add(stateTTL)
}

func (n *nonceStore) redeem(state string) bool {
	n.mu.Lock()
	exp, ok := n.entries[state]
	delete(n.entries, state)
	n.mu.Unlock()
	return ok && time.Now().Before(exp)
}

func withToken(rawURL, token string) (string, error) {
	if rawURL == "" {
		return "", errors.New("redirect url required")
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", err
	}
	q := u.Query()
	q.Set("token", token)
	u.RawQuery = q.Encode()
	return u.String(), nil
}
