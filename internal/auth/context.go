// Package auth implements the dashboard's session core: decoding claim
// hints from the bearer credential, persisting session fields across runs,
// and the authenticated/unauthenticated/initializing state machine that
// everything role-gated hangs off.
package auth

import (
	"context"
	"sync"

	"github.com/wisalhq/wisal-admin/internal/api"
	"github.com/wisalhq/wisal-admin/internal/log"
)

// AuthAPI is the remote authentication surface the context drives.
// *api.Client satisfies it.
type AuthAPI interface {
	Login(ctx context.Context, email, password string) (*api.AuthResponse, error)
	Refresh(ctx context.Context) (*api.AuthResponse, error)
	Logout(ctx context.Context) error
}

// CredentialSink is the attachment point for the bearer credential: the HTTP
// client's in-memory default-header state. The context decides the value;
// the sink only stores or clears it, and it is never written to disk.
type CredentialSink interface {
	SetCredential(token string)
	ClearCredential()
}

// State is a point-in-time snapshot of the session state machine.
type State struct {
	// Initializing is true from construction until the boot-time silent
	// refresh has settled. Role-gated rendering must wait for it to clear,
	// or the wrong screen flashes before the session is known.
	Initializing bool

	// Authenticated is true only after a login or refresh response was
	// applied, and false again after logout, refresh failure, or a 401.
	Authenticated bool

	// The derived session fields; empty means unknown.
	InstitutionID string
	Role          Role
	EmployeeID    string
}

// Context owns the session state machine. It is the only writer of the
// session fields and of the credential sink; every other component reads
// state through State().
//
// Login, Logout, Refresh and Bootstrap serialize on an operation lock, so
// overlapping calls queue instead of racing on the derived fields.
type Context struct {
	api    AuthAPI
	creds  CredentialSink
	store  *SessionStore
	logger *log.Logger

	opMu     sync.Mutex
	bootOnce sync.Once

	mu            sync.RWMutex
	initializing  bool
	authenticated bool
	fields        SessionFields
}

// NewContext creates the session context. Previously persisted session
// fields are loaded immediately (an invalid stored role reads as absent),
// but the state starts unauthenticated: only a successful refresh or login
// proves the session is still live.
func NewContext(authAPI AuthAPI, creds CredentialSink, store *SessionStore, logger *log.Logger) *Context {
	if logger == nil {
		logger = log.DefaultLogger()
	}

	c := &Context{
		api:          authAPI,
		creds:        creds,
		store:        store,
		logger:       logger,
		initializing: true,
	}

	if v, ok := store.InstitutionID(); ok {
		c.fields.InstitutionID = v
	}
	if r, ok := store.Role(); ok {
		c.fields.Role = r
	}
	if v, ok := store.EmployeeID(); ok {
		c.fields.EmployeeID = v
	}

	return c
}

// State returns a snapshot of the current session state
func (c *Context) State() State {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return State{
		Initializing:  c.initializing,
		Authenticated: c.authenticated,
		InstitutionID: c.fields.InstitutionID,
		Role:          c.fields.Role,
		EmployeeID:    c.fields.EmployeeID,
	}
}

// Bootstrap runs the boot-time silent refresh exactly once per process.
// Whether the refresh succeeds or fails, initializing ends false; a failed
// refresh is the normal "no prior session" case and is swallowed here —
// explicit Login/Refresh calls do not get this treatment. Re-invocation
// after the first run returns immediately with initializing still false.
func (c *Context) Bootstrap(ctx context.Context) {
	c.bootOnce.Do(func() {
		c.opMu.Lock()
		defer c.opMu.Unlock()

		if err := c.refreshLocked(ctx); err != nil {
			c.logger.Debug("silent refresh failed, starting signed out", "error", err.Error())
		}

		c.mu.Lock()
		c.initializing = false
		c.mu.Unlock()
	})
}

// Login authenticates with the remote API and applies the response. On
// failure the local session is cleared defensively and the error is
// returned for the login form to display.
func (c *Context) Login(ctx context.Context, email, password string) error {
	c.opMu.Lock()
	defer c.opMu.Unlock()

	resp, err := c.api.Login(ctx, email, password)
	if err != nil {
		c.clearLocal()
		return err
	}

	fields := c.applyResponse(resp)
	c.setAuthenticated(true)
	c.logger.Info("signed in", "employee_id", fields.EmployeeID, "role", string(fields.Role))
	return nil
}

// Logout ends the session. The remote call is best-effort: local cleanup —
// credential first, then the persisted session fields — happens
// unconditionally, even when the server cannot be reached.
func (c *Context) Logout(ctx context.Context) error {
	c.opMu.Lock()
	defer c.opMu.Unlock()

	defer c.clearLocal()
	return c.api.Logout(ctx)
}

// Refresh renews the session from the ambient refresh cookie. On failure
// the local session is cleared and the error is returned; callers other
// than Bootstrap decide how to surface it.
func (c *Context) Refresh(ctx context.Context) error {
	c.opMu.Lock()
	defer c.opMu.Unlock()
	return c.refreshLocked(ctx)
}

// refreshLocked is Refresh without the operation lock; callers hold it.
func (c *Context) refreshLocked(ctx context.Context) error {
	resp, err := c.api.Refresh(ctx)
	if err != nil {
		c.clearLocal()
		return err
	}

	c.applyResponse(resp)
	c.setAuthenticated(true)
	return nil
}

// Expire handles a session expiry reported by the HTTP client's 401 path.
// The client has already dropped the credential; the context clears the
// session fields and flips unauthenticated.
//
// This runs inside the client's response handling, possibly while Login or
// Refresh holds the operation lock, so it must not take that lock.
func (c *Context) Expire() {
	if err := c.store.Clear(); err != nil {
		c.logger.Warn("failed to clear persisted session", "error", err.Error())
	}

	c.mu.Lock()
	c.authenticated = false
	c.fields = SessionFields{}
	c.mu.Unlock()

	c.logger.Info("session expired")
}

// applyResponse derives the session fields from an authentication response
// and persists them, following a strict precedence: claims decoded from the
// bearer credential win; the response-shape fallbacks only fill what the
// claims left empty. Fields no source supplied are cleared, so the persisted
// state always mirrors exactly this response. A nil response is a no-op.
func (c *Context) applyResponse(resp *api.AuthResponse) SessionFields {
	if resp == nil {
		return SessionFields{}
	}

	var next SessionFields

	if resp.AccessToken != "" {
		c.creds.SetCredential(resp.AccessToken)

		if claims := DecodeClaims(resp.AccessToken); claims != nil {
			if v := claims.InstitutionID(); v != "" {
				next.InstitutionID = v
				c.persist(c.store.SetInstitutionID(v))
			}
			if role, ok := claims.Role(); ok {
				next.Role = role
				c.persist(c.store.SetRole(role))
			}
			if v := claims.Subject(); v != "" {
				next.EmployeeID = v
				c.persist(c.store.SetEmployeeID(v))
			}
		}
	} else {
		// The attached credential mirrors this response: no token, no header.
		c.creds.ClearCredential()
	}

	if next.InstitutionID == "" {
		if v, ok := firstSource(resp, institutionSources); ok {
			next.InstitutionID = v
			c.persist(c.store.SetInstitutionID(v))
		} else {
			c.persist(c.store.SetInstitutionID(""))
		}
	}
	if next.Role == "" {
		if role, ok := firstRoleSource(resp, roleSources); ok {
			next.Role = role
			c.persist(c.store.SetRole(role))
		} else {
			c.persist(c.store.SetRole(""))
		}
	}
	if next.EmployeeID == "" {
		if v, ok := firstSource(resp, employeeSources); ok {
			next.EmployeeID = v
			c.persist(c.store.SetEmployeeID(v))
		} else {
			c.persist(c.store.SetEmployeeID(""))
		}
	}

	c.mu.Lock()
	c.fields = next
	c.mu.Unlock()

	return next
}

// clearLocal performs the full local cleanup: credential first, then the
// three persisted session fields, then the in-memory state. A failing store
// is logged, never allowed to abort the cleanup.
func (c *Context) clearLocal() {
	c.creds.ClearCredential()

	if err := c.store.Clear(); err != nil {
		c.logger.Warn("failed to clear persisted session", "error", err.Error())
	}

	c.mu.Lock()
	c.authenticated = false
	c.fields = SessionFields{}
	c.mu.Unlock()
}

func (c *Context) setAuthenticated(v bool) {
	c.mu.Lock()
	c.authenticated = v
	c.mu.Unlock()
}

// persist logs a failed session-field write. Persistence failures leave the
// in-memory session intact; the next login rewrites the file.
func (c *Context) persist(err error) {
	if err != nil {
		c.logger.Warn("failed to persist session field", "error", err.Error())
	}
}
