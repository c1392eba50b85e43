// Package session gates the admin surface behind the authenticated
// identity. It mirrors the server-held cookie session: one who-am-I check
// at startup, then explicit sign-in/sign-out transitions.
package session

import (
	"context"
	"sync"

	"github.com/buildcrest/sitectl/pkg/cms"
	"github.com/buildcrest/sitectl/pkg/store"
	"github.com/go-kit/log"
)

// RoleAdmin is the privileged role required for the admin pages.
const RoleAdmin = "admin"

// Phase is the guard's lifecycle state.
type Phase int

const (
	// PhaseAnonymous: no identity and the first session check has not run.
	PhaseAnonymous Phase = iota
	// PhaseChecking: the initial who-am-I request is in flight.
	PhaseChecking
	PhaseAuthenticated
	PhaseUnauthenticated
)

// Decision is the outcome of gating one access to a protected page.
type Decision int

const (
	// DecisionLoading: initialization has not resolved; show a neutral
	// loading state, never the protected content and never a redirect.
	DecisionLoading Decision = iota
	DecisionAllow
	// DecisionRedirectLogin: no identity; send the user to the login entry.
	DecisionRedirectLogin
	// DecisionDeny: identity present but the role is wrong; refuse in
	// place. Distinct from the redirect outcome on purpose.
	DecisionDeny
)

// AuthAPI is the slice of the REST client the guard drives.
type AuthAPI interface {
	SignIn(ctx context.Context, creds cms.Credentials) (cms.User, error)
	SignUp(ctx context.Context, reg cms.Registration) (cms.User, error)
	Me(ctx context.Context) (cms.User, bool)
	SignOut(ctx context.Context) error
}

type Guard struct {
	api    AuthAPI
	notify store.Notifier
	logger log.Logger

	mu          sync.Mutex
	phase       Phase
	user        *cms.User
	initialized bool
	loading     bool
	err         string

	// redirect is the one-shot signal raised by a successful login and
	// consumed by whichever surface performs the navigation.
	redirect chan struct{}
}

type Option func(*Guard)

func WithNotifier(n store.Notifier) Option {
	return func(g *Guard) { g.notify = n }
}

func WithLogger(logger log.Logger) Option {
	return func(g *Guard) { g.logger = logger }
}

func New(api AuthAPI, opts ...Option) *Guard {
	g := &Guard{
		api:      api,
		notify:   store.NopNotifier{},
		logger:   log.NewNopLogger(),
		phase:    PhaseAnonymous,
		redirect: make(chan struct{}, 1),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Init runs the one startup session check. Whatever the outcome, the
// guard counts as initialized afterwards; repeat calls are no-ops.
func (g *Guard) Init(ctx context.Context) {
	g.mu.Lock()
	if g.initialized || g.phase == PhaseChecking {
		g.mu.Unlock()
		return
	}
	g.phase = PhaseChecking
	g.loading = true
	g.mu.Unlock()

	user, ok := g.api.Me(ctx)

	g.mu.Lock()
	defer g.mu.Unlock()
	g.loading = false
	g.initialized = true
	if ok {
		g.user = &user
		g.phase = PhaseAuthenticated
	} else {
		g.user = nil
		g.phase = PhaseUnauthenticated
	}
}

// Login signs in and, on success, moves straight to authenticated and
// raises the redirect signal without waiting for a session re-check.
// Failure surfaces the reason and leaves initialization alone.
func (g *Guard) Login(ctx context.Context, creds cms.Credentials) error {
	g.mu.Lock()
	g.loading = true
	g.err = ""
	g.mu.Unlock()

	user, err := g.api.SignIn(ctx, creds)

	g.mu.Lock()
	defer g.mu.Unlock()
	g.loading = false

	if err != nil {
		g.err = err.Error()
		g.notify.Error(g.err)
		return err
	}

	g.user = &user
	g.phase = PhaseAuthenticated
	select {
	case g.redirect <- struct{}{}:
	default:
	}
	return nil
}

// Register creates a staff account and adopts the returned identity.
func (g *Guard) Register(ctx context.Context, reg cms.Registration) error {
	user, err := g.api.SignUp(ctx, reg)

	g.mu.Lock()
	defer g.mu.Unlock()
	if err != nil {
		g.err = err.Error()
		g.notify.Error(g.err)
		return err
	}

	g.user = &user
	g.phase = PhaseAuthenticated
	return nil
}

// Logout clears the identity and drains any not-yet-consumed redirect.
func (g *Guard) Logout(ctx context.Context) error {
	if err := g.api.SignOut(ctx); err != nil {
		g.mu.Lock()
		g.err = err.Error()
		g.mu.Unlock()
		g.notify.Error(err.Error())
		return err
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	g.user = nil
	g.phase = PhaseUnauthenticated
	select {
	case <-g.redirect:
	default:
	}
	return nil
}

// ConsumeRedirect reports whether a login redirect is pending, clearing
// it. Edge-triggered: exactly one consumer observes each successful login.
func (g *Guard) ConsumeRedirect() bool {
	select {
	case <-g.redirect:
		return true
	default:
		return false
	}
}

// Gate decides access to a page that requires the given role.
func (g *Guard) Gate(requiredRole string) Decision {
	g.mu.Lock()
	defer g.mu.Unlock()

	if !g.initialized {
		return DecisionLoading
	}
	if g.user == nil {
		return DecisionRedirectLogin
	}
	if g.user.Role != requiredRole {
		return DecisionDeny
	}
	return DecisionAllow
}

// User returns the authenticated identity, if any.
func (g *Guard) User() (cms.User, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.user == nil {
		return cms.User{}, false
	}
	return *g.user, true
}

func (g *Guard) Initialized() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.initialized
}

func (g *Guard) Phase() Phase {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.phase
}

func (g *Guard) Err() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.err
}
