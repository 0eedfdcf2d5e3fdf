package auth

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"gestaocombustivel/backend/services/fleet-console/internal/api"
	"gestaocombustivel/backend/services/fleet-console/internal/clients"
	"gestaocombustivel/backend/services/fleet-console/internal/session"
)

// Routes the controller redirects to.
const (
	RouteApp   = "/app"
	RouteLogin = "/login"
)

// State is the controller's authentication state.
type State int

const (
	// StateUnknown holds until the persisted session has been loaded.
	StateUnknown State = iota
	StateAnonymous
	StateAuthenticated
)

func (s State) String() string {
	switch s {
	case StateAnonymous:
		return "anonymous"
	case StateAuthenticated:
		return "authenticated"
	default:
		return "unknown"
	}
}

// Authenticator performs the backend sign-in call.
type Authenticator interface {
	SignIn(ctx context.Context, email, password string) (*api.LoginResult, error)
}

// Controller owns the session store: it is the only caller of Save and Clear.
type Controller struct {
	store  *session.Store
	authn  Authenticator
	nav    Navigator
	logger *zap.Logger

	startOnce sync.Once
	mu        sync.RWMutex
	state     State
}

// NewController wires a controller. nav may be nil.
func NewController(store *session.Store, authn Authenticator, nav Navigator, logger *zap.Logger) *Controller {
	if nav == nil {
		nav = NavigatorFunc(func(string) {})
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Controller{store: store, authn: authn, nav: nav, logger: logger}
}

// Start loads the persisted session and leaves StateUnknown. Only the first call loads.
func (c *Controller) Start(ctx context.Context) State {
	c.startOnce.Do(func() {
		sess := c.store.Load(ctx)
		c.setState(stateOf(sess))
		c.logger.Info("session loaded", zap.Stringer("state", c.State()))
	})
	return c.State()
}

// State returns the current state.
func (c *Controller) State() State {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state
}

// IsLoading is true only while the persisted session has not been loaded yet.
func (c *Controller) IsLoading() bool {
	return c.State() == StateUnknown
}

// IsAuthenticated reports a loaded session with a non-empty token.
func (c *Controller) IsAuthenticated() bool {
	return c.State() == StateAuthenticated
}

// Session returns a snapshot of the current session.
func (c *Controller) Session() session.Session {
	return c.store.Current()
}

// Login signs in and, on success, persists the session and redirects to RouteApp.
// Backend and transport errors are returned as-is; a reply without token or company
// id is a KindValidation error. On any failure the stored session is left untouched.
func (c *Controller) Login(ctx context.Context, email, password string) error {
	c.Start(ctx)

	res, err := c.authn.SignIn(ctx, email, password)
	if err != nil {
		c.logger.Warn("sign-in failed", zap.String("email", email), zap.Error(err))
		return err
	}
	if res == nil || res.Token == "" {
		return clients.NewValidationError("login response did not include a token")
	}
	if res.User.CompanyID.IsZero() {
		return clients.NewValidationError("login failed: empresaId was not returned by the API")
	}

	user := res.User
	if err := c.store.Save(ctx, session.Session{Token: res.Token, User: &user}); err != nil {
		return err
	}
	c.setState(StateAuthenticated)
	c.logger.Info("signed in", zap.String("role", user.Role), zap.String("empresa_id", user.CompanyID.String()))

	c.nav.Navigate(RouteApp)
	return nil
}

// Logout clears the session and redirects to RouteLogin. When the persisted record
// cannot be removed the controller stays signed in and the error is returned.
func (c *Controller) Logout(ctx context.Context) error {
	c.Start(ctx)

	if err := c.store.Clear(ctx); err != nil {
		c.logger.Warn("failed to remove persisted session", zap.Error(err))
		return err
	}
	c.setState(StateAnonymous)
	c.logger.Info("signed out")

	c.nav.Navigate(RouteLogin)
	return nil
}

// TokenInfo decodes the claims of the current token.
func (c *Controller) TokenInfo() (*TokenInfo, error) {
	return ParseTokenInfo(c.store.CurrentToken())
}

func (c *Controller) setState(s State) {
	c.mu.Lock()
	c.state = s
	c.mu.Unlock()
}

func stateOf(sess session.Session) State {
	if sess.IsAuthenticated() {
		return StateAuthenticated
	}
	return StateAnonymous
}
