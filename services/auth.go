package services

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/pquerna/otp/totp"

	"mavryck/model"
	"mavryck/remote"
	"mavryck/utils"
)

// RemoteStatus reports the outcome of the advisory remote-identity leg
// of a login.
type RemoteStatus int

const (
	// RemoteSkipped means no provider is configured.
	RemoteSkipped RemoteStatus = iota
	// RemoteOK means the provider-backed session was established.
	RemoteOK
	// RemoteDegraded means the remote leg failed; local login still
	// succeeded.
	RemoteDegraded
)

func (s RemoteStatus) String() string {
	switch s {
	case RemoteOK:
		return "ok"
	case RemoteDegraded:
		return "degraded"
	default:
		return "skipped"
	}
}

type LoginInput struct {
	Email         string
	Password      string
	TwoFactorCode string
	UserAgent     string
	IPAddress     string
}

type LoginResult struct {
	Session *model.Session
	Remote  RemoteStatus
}

// AuthService orchestrates login and logout: credential checks against
// the static admin principal, throttling through the attempt ledger,
// persistence through the session manager, and a best-effort remote
// identity sync. Local session state is the source of truth; the remote
// provider is advisory.
type AuthService struct {
	cred       *AdminCredential
	ledger     *AttemptLedger
	sessions   *SessionManager
	csrf       *CSRFIssuer
	provider   remote.IdentityProvider
	totpSecret string
}

func NewAuthService(
	cred *AdminCredential,
	ledger *AttemptLedger,
	sessions *SessionManager,
	csrf *CSRFIssuer,
	provider remote.IdentityProvider,
	totpSecret string,
) *AuthService {
	return &AuthService{
		cred:       cred,
		ledger:     ledger,
		sessions:   sessions,
		csrf:       csrf,
		provider:   provider,
		totpSecret: totpSecret,
	}
}

// Login runs the full authentication sequence. The returned error is one
// of ErrInvalidFormat, ErrRateLimited, ErrInvalidCredentials or
// ErrInvalidTwoFactor; handlers collapse format and credential failures
// into one generic message.
func (a *AuthService) Login(input LoginInput) (LoginResult, error) {
	email := utils.NormalizeEmail(input.Email)
	password := utils.SanitizeInput(input.Password)

	// Malformed submissions still count against the throttle window.
	if !utils.ValidateEmail(email) || !utils.ValidatePassword(password) {
		a.ledger.Record(email, false)
		utils.TrackAuthAttempt("failure", "validation")
		return LoginResult{}, ErrInvalidFormat
	}

	// A refused call is not an attempt; nothing is recorded here.
	if a.ledger.IsRateLimited(email) {
		utils.TrackAuthAttempt("failure", "rate_limit")
		return LoginResult{}, ErrRateLimited
	}

	if !a.cred.Verify(email, password) {
		a.ledger.Record(email, false)
		utils.TrackAuthAttempt("failure", "invalid_credentials")
		return LoginResult{}, ErrInvalidCredentials
	}

	if a.totpSecret != "" {
		if !totp.Validate(input.TwoFactorCode, a.totpSecret) {
			a.ledger.Record(email, false)
			utils.TrackAuthAttempt("failure", "invalid_2fa")
			return LoginResult{}, ErrInvalidTwoFactor
		}
	}

	remoteStatus := a.establishRemoteSession(email, password)

	// Local session is created regardless of the remote outcome.
	session, err := a.sessions.Create(email, input.UserAgent, input.IPAddress)
	if err != nil {
		// Storage trouble, not a credential failure; nothing is recorded
		// against the throttle window.
		utils.TrackError("session", "creation_failed")
		return LoginResult{}, err
	}

	a.ledger.Record(email, true)
	utils.TrackAuthAttempt("success", "login")

	return LoginResult{Session: session, Remote: remoteStatus}, nil
}

// Logout destroys the local session and signs out of the remote
// provider best-effort. It never fails from the caller's perspective.
func (a *AuthService) Logout() {
	a.sessions.Destroy()

	if a.provider == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := a.provider.SignOut(ctx); err != nil {
		utils.TrackError("remote", "signout_failed")
		log.Printf("Warning: remote sign-out failed: %v", err)
	}
}

// IsAuthenticated reports whether a valid persisted session exists.
func (a *AuthService) IsAuthenticated() bool {
	return a.sessions.IsValid()
}

// AttemptStats exposes the ledger aggregation for the security panel.
// An empty identity defaults to the admin principal.
func (a *AuthService) AttemptStats(identity string) model.LoginStats {
	if identity == "" {
		return a.ledger.Stats(a.cred.Email())
	}
	return a.ledger.Stats(utils.NormalizeEmail(identity))
}

// CSRFToken returns the current anti-forgery token.
func (a *AuthService) CSRFToken() (string, error) {
	return a.csrf.Token()
}

// Sessions exposes the session manager to the activity monitor and the
// route guards.
func (a *AuthService) Sessions() *SessionManager {
	return a.sessions
}

// establishRemoteSession signs in against the identity provider,
// registering the admin once when the provider has never seen it. Any
// remaining failure degrades rather than aborts the login.
func (a *AuthService) establishRemoteSession(email, password string) RemoteStatus {
	if a.provider == nil {
		return RemoteSkipped
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	_, err := a.provider.SignInWithPassword(ctx, email, password)
	if errors.Is(err, remote.ErrUserNotFound) {
		signupErr := a.provider.SignUp(ctx, email, password)
		if signupErr == nil || errors.Is(signupErr, remote.ErrAlreadyRegistered) {
			_, err = a.provider.SignInWithPassword(ctx, email, password)
		} else {
			err = signupErr
		}
	}

	if err != nil {
		utils.TrackError("remote", "signin_failed")
		log.Printf("Warning: remote identity sync failed, continuing with local session: %v", err)
		return RemoteDegraded
	}
	return RemoteOK
}
