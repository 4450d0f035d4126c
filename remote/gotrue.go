package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// GoTrueClient implements IdentityProvider against a GoTrue-compatible
// REST API (Supabase Auth and friends). It keeps the current remote
// session in memory so SignOut and RefreshSession can reuse its tokens.
type GoTrueClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client

	mu      sync.Mutex
	session *Session
}

func NewGoTrueClient(baseURL, apiKey string, timeout time.Duration) *GoTrueClient {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &GoTrueClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: timeout},
	}
}

type tokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int    `json:"expires_in"`
	User         struct {
		ID string `json:"id"`
	} `json:"user"`
}

type errorResponse struct {
	Message          string `json:"msg"`
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
}

func (e *errorResponse) text() string {
	for _, s := range []string{e.Message, e.ErrorDescription, e.Error} {
		if s != "" {
			return s
		}
	}
	return "unknown error"
}

func (g *GoTrueClient) SignUp(ctx context.Context, email, password string) error {
	body := map[string]string{"email": email, "password": password}

	resp, err := g.post(ctx, "/signup", body)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode < 300:
		return nil
	case resp.StatusCode == http.StatusUnprocessableEntity, resp.StatusCode == http.StatusConflict:
		return ErrAlreadyRegistered
	case resp.StatusCode >= 500:
		return fmt.Errorf("%w: signup returned %d", ErrUnavailable, resp.StatusCode)
	}

	var apiErr errorResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiErr); err == nil &&
		strings.Contains(strings.ToLower(apiErr.text()), "already registered") {
		return ErrAlreadyRegistered
	}
	return fmt.Errorf("%w: signup returned %d", ErrUnavailable, resp.StatusCode)
}

func (g *GoTrueClient) SignInWithPassword(ctx context.Context, email, password string) (*Session, error) {
	body := map[string]string{"email": email, "password": password}

	resp, err := g.post(ctx, "/token?grant_type=password", body)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusBadRequest {
		// GoTrue reports unknown users and bad passwords with the same
		// 400 invalid_grant shape; the caller decides whether to retry
		// with a one-time sign-up.
		return nil, ErrUserNotFound
	}
	if resp.StatusCode >= 400 {
		// 403/429/5xx mean the provider refused us, not that the user is
		// unknown; a sign-up retry would be wrong here.
		return nil, fmt.Errorf("%w: sign-in returned %d", ErrUnavailable, resp.StatusCode)
	}

	var tr tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tr); err != nil {
		return nil, fmt.Errorf("%w: malformed sign-in response: %v", ErrUnavailable, err)
	}

	session := &Session{
		AccessToken:  tr.AccessToken,
		RefreshToken: tr.RefreshToken,
		UserID:       tr.User.ID,
		ExpiresAt:    tokenExpiry(tr),
	}

	g.mu.Lock()
	g.session = session
	g.mu.Unlock()

	return session, nil
}

func (g *GoTrueClient) SignOut(ctx context.Context) error {
	g.mu.Lock()
	session := g.session
	g.session = nil
	g.mu.Unlock()

	if session == nil {
		return nil
	}

	req, err := g.newRequest(ctx, http.MethodPost, "/logout", nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+session.AccessToken)

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 500 {
		return fmt.Errorf("%w: logout returned %d", ErrUnavailable, resp.StatusCode)
	}
	return nil
}

func (g *GoTrueClient) GetSession(_ context.Context) (*Session, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.session == nil {
		return nil, ErrNoSession
	}
	return g.session, nil
}

func (g *GoTrueClient) RefreshSession(ctx context.Context) (*Session, error) {
	g.mu.Lock()
	current := g.session
	g.mu.Unlock()

	if current == nil {
		return nil, ErrNoSession
	}

	body := map[string]string{"refresh_token": current.RefreshToken}
	resp, err := g.post(ctx, "/token?grant_type=refresh_token", body)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("%w: refresh returned %d", ErrUnavailable, resp.StatusCode)
	}

	var tr tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tr); err != nil {
		return nil, fmt.Errorf("%w: malformed refresh response: %v", ErrUnavailable, err)
	}

	session := &Session{
		AccessToken:  tr.AccessToken,
		RefreshToken: tr.RefreshToken,
		UserID:       tr.User.ID,
		ExpiresAt:    tokenExpiry(tr),
	}

	g.mu.Lock()
	g.session = session
	g.mu.Unlock()

	return session, nil
}

func (g *GoTrueClient) post(ctx context.Context, path string, body interface{}) (*http.Response, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}

	req, err := g.newRequest(ctx, http.MethodPost, path, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return resp, nil
}

func (g *GoTrueClient) newRequest(ctx context.Context, method, path string, body *bytes.Reader) (*http.Request, error) {
	var req *http.Request
	var err error
	if body != nil {
		req, err = http.NewRequestWithContext(ctx, method, g.baseURL+path, body)
	} else {
		req, err = http.NewRequestWithContext(ctx, method, g.baseURL+path, nil)
	}
	if err != nil {
		return nil, err
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("apikey", g.apiKey)
	return req, nil
}

// tokenExpiry prefers expires_in and falls back to the exp claim of the
// access token. Some GoTrue deployments omit expires_in on refresh.
func tokenExpiry(tr tokenResponse) time.Time {
	if tr.ExpiresIn > 0 {
		return time.Now().Add(time.Duration(tr.ExpiresIn) * time.Second)
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(tr.AccessToken, claims); err == nil {
		if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
			return exp.Time
		}
	}
	return time.Time{}
}
