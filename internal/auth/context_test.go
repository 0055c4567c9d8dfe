package auth

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wisalhq/wisal-admin/internal/api"
	"github.com/wisalhq/wisal-admin/internal/log"
)

// fakeAuthAPI scripts the remote authentication endpoints
type fakeAuthAPI struct {
	mu sync.Mutex

	loginResp *api.AuthResponse
	loginErr  error

	refreshResp *api.AuthResponse
	refreshErr  error

	logoutErr error

	loginCalls   int
	refreshCalls int
	logoutCalls  int
}

func (f *fakeAuthAPI) Login(ctx context.Context, email, password string) (*api.AuthResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.loginCalls++
	return f.loginResp, f.loginErr
}

func (f *fakeAuthAPI) Refresh(ctx context.Context) (*api.AuthResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.refreshCalls++
	return f.refreshResp, f.refreshErr
}

func (f *fakeAuthAPI) Logout(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.logoutCalls++
	return f.logoutErr
}

// fakeSink records the credential the context attaches
type fakeSink struct {
	mu    sync.Mutex
	token string
}

func (f *fakeSink) SetCredential(token string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.token = token
}

func (f *fakeSink) ClearCredential() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.token = ""
}

func (f *fakeSink) credential() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.token
}

func quietLogger() *log.Logger {
	return log.New(log.Config{
		Level:  log.LevelError,
		Format: log.FormatText,
		Output: log.NewOutput(io.Discard),
	})
}

type contextFixture struct {
	api     *fakeAuthAPI
	sink    *fakeSink
	storage *MemoryStorage
	store   *SessionStore
	session *Context
}

func newContextFixture(remote *fakeAuthAPI) *contextFixture {
	storage := NewMemoryStorage()
	store := NewSessionStore(storage)
	sink := &fakeSink{}
	return &contextFixture{
		api:     remote,
		sink:    sink,
		storage: storage,
		store:   store,
		session: NewContext(remote, sink, store, quietLogger()),
	}
}

func TestInitialState(t *testing.T) {
	f := newContextFixture(&fakeAuthAPI{})
	state := f.session.State()

	assert.True(t, state.Initializing)
	assert.False(t, state.Authenticated)
	assert.Empty(t, state.InstitutionID)
	assert.Empty(t, state.Role)
	assert.Empty(t, state.EmployeeID)
}

func TestPersistedFieldsLoadOnConstruction(t *testing.T) {
	storage := NewMemoryStorage()
	store := NewSessionStore(storage)
	require.NoError(t, store.SetInstitutionID("inst-9"))
	require.NoError(t, store.SetRole(RolePublisher))
	require.NoError(t, store.SetEmployeeID("emp-1"))

	session := NewContext(&fakeAuthAPI{}, &fakeSink{}, store, quietLogger())
	state := session.State()

	assert.Equal(t, "inst-9", state.InstitutionID)
	assert.Equal(t, RolePublisher, state.Role)
	assert.Equal(t, "emp-1", state.EmployeeID)

	// Persisted fields alone never prove the session is live
	assert.False(t, state.Authenticated)
	assert.True(t, state.Initializing)
}

func TestInvalidPersistedRoleIgnoredOnConstruction(t *testing.T) {
	storage := NewMemoryStorage()
	require.NoError(t, storage.Set(keyRole, "SUPERADMIN"))

	session := NewContext(&fakeAuthAPI{}, &fakeSink{}, NewSessionStore(storage), quietLogger())
	assert.Empty(t, session.State().Role)
}

func TestBootstrapSuccess(t *testing.T) {
	token := makeToken(t, map[string]interface{}{
		"sub":           "emp-1",
		"role":          "ADMIN",
		"institutionId": "inst-9",
	})
	f := newContextFixture(&fakeAuthAPI{
		refreshResp: &api.AuthResponse{AccessToken: token},
	})

	f.session.Bootstrap(context.Background())

	state := f.session.State()
	assert.False(t, state.Initializing)
	assert.True(t, state.Authenticated)
	assert.Equal(t, "inst-9", state.InstitutionID)
	assert.Equal(t, RoleAdmin, state.Role)
	assert.Equal(t, "emp-1", state.EmployeeID)
	assert.Equal(t, token, f.sink.credential())
}

func TestBootstrapFailureIsSwallowed(t *testing.T) {
	f := newContextFixture(&fakeAuthAPI{
		refreshErr: &api.Error{Status: 401, Message: "لا توجد جلسة"},
	})

	// No prior session is the normal first run; Bootstrap must not blow up
	f.session.Bootstrap(context.Background())

	state := f.session.State()
	assert.False(t, state.Initializing, "initializing ends false even when the refresh fails")
	assert.False(t, state.Authenticated)
	assert.Empty(t, f.sink.credential())
}

func TestBootstrapRunsOnce(t *testing.T) {
	remote := &fakeAuthAPI{refreshErr: errors.New("no session")}
	f := newContextFixture(remote)

	f.session.Bootstrap(context.Background())
	f.session.Bootstrap(context.Background())

	assert.Equal(t, 1, remote.refreshCalls, "the silent refresh runs exactly once per process")
	assert.False(t, f.session.State().Initializing, "a remount still observes initializing == false")
}

func TestLoginScenarioClaims(t *testing.T) {
	// Scenario A: all three fields come from the credential claims
	token := makeToken(t, map[string]interface{}{
		"sub":           "emp-1",
		"role":          "ADMIN",
		"institutionId": "inst-9",
	})
	f := newContextFixture(&fakeAuthAPI{
		loginResp: &api.AuthResponse{AccessToken: token},
	})

	require.NoError(t, f.session.Login(context.Background(), "admin@wisal.org", "s3cret-pass"))

	state := f.session.State()
	assert.True(t, state.Authenticated)
	assert.Equal(t, RoleAdmin, state.Role)
	assert.Equal(t, "inst-9", state.InstitutionID)
	assert.Equal(t, "emp-1", state.EmployeeID)
	assert.Equal(t, token, f.sink.credential())

	// The persisted values equal the derived ones
	inst, ok := f.store.InstitutionID()
	require.True(t, ok)
	assert.Equal(t, "inst-9", inst)

	role, ok := f.store.Role()
	require.True(t, ok)
	assert.Equal(t, RoleAdmin, role)

	emp, ok := f.store.EmployeeID()
	require.True(t, ok)
	assert.Equal(t, "emp-1", emp)
}

func TestLoginScenarioFallbackShapes(t *testing.T) {
	// Scenario B: no token at all, fields come from the response shape
	f := newContextFixture(&fakeAuthAPI{
		loginResp: &api.AuthResponse{
			ID:          "emp-2",
			Role:        "PUBLISHER",
			Institution: &api.Institution{ID: "inst-3"},
		},
	})

	require.NoError(t, f.session.Login(context.Background(), "pub@wisal.org", "s3cret-pass"))

	state := f.session.State()
	assert.True(t, state.Authenticated)
	assert.Equal(t, RolePublisher, state.Role)
	assert.Equal(t, "inst-3", state.InstitutionID)
	assert.Equal(t, "emp-2", state.EmployeeID)
	assert.Empty(t, f.sink.credential(), "no token in the response, no credential attached")
}

func TestClaimsWinOverFallbacks(t *testing.T) {
	// Claims carry PUBLISHER while the top-level field says ADMIN;
	// the claims must win.
	token := makeToken(t, map[string]interface{}{
		"sub":           "emp-1",
		"role":          "PUBLISHER",
		"institutionId": "inst-9",
	})
	f := newContextFixture(&fakeAuthAPI{
		loginResp: &api.AuthResponse{
			AccessToken: token,
			Role:        "ADMIN",
			ID:          "emp-other",
		},
	})

	require.NoError(t, f.session.Login(context.Background(), "pub@wisal.org", "s3cret-pass"))

	state := f.session.State()
	assert.Equal(t, RolePublisher, state.Role)
	assert.Equal(t, "emp-1", state.EmployeeID, "claims subject wins over the top-level id")

	role, ok := f.store.Role()
	require.True(t, ok)
	assert.Equal(t, RolePublisher, role)
}

func TestFallbacksFillClaimGaps(t *testing.T) {
	// The token decodes but carries only the subject; the rest comes from
	// the response shape.
	token := makeToken(t, map[string]interface{}{"sub": "emp-1"})
	f := newContextFixture(&fakeAuthAPI{
		loginResp: &api.AuthResponse{
			AccessToken: token,
			User: &api.AuthUser{
				ID:            "emp-ignored",
				Role:          "DELIVERER",
				InstitutionID: "inst-4",
			},
		},
	})

	require.NoError(t, f.session.Login(context.Background(), "d@wisal.org", "s3cret-pass"))

	state := f.session.State()
	assert.Equal(t, "emp-1", state.EmployeeID)
	assert.Equal(t, RoleDeliverer, state.Role)
	assert.Equal(t, "inst-4", state.InstitutionID)
}

func TestUnknownRoleNeverPersisted(t *testing.T) {
	token := makeToken(t, map[string]interface{}{
		"sub":  "emp-1",
		"role": "SUPERADMIN",
	})
	f := newContextFixture(&fakeAuthAPI{
		loginResp: &api.AuthResponse{
			AccessToken: token,
			Role:        "SUPERADMIN",
			User:        &api.AuthUser{Role: "SUPERADMIN"},
		},
	})

	require.NoError(t, f.session.Login(context.Background(), "x@wisal.org", "s3cret-pass"))

	assert.Empty(t, f.session.State().Role)
	_, ok := f.store.Role()
	assert.False(t, ok, "an unknown role must never reach the store")
}

func TestApplyReplacesStaleFields(t *testing.T) {
	// A field persisted by an earlier session disappears when the new
	// response supplies no value for it.
	f := newContextFixture(&fakeAuthAPI{
		loginResp: &api.AuthResponse{ID: "emp-2", Role: "PUBLISHER"},
	})
	require.NoError(t, f.store.SetInstitutionID("inst-stale"))

	require.NoError(t, f.session.Login(context.Background(), "pub@wisal.org", "s3cret-pass"))

	assert.Empty(t, f.session.State().InstitutionID)
	_, ok := f.store.InstitutionID()
	assert.False(t, ok, "stale fields do not survive a response that lacks them")
}

func TestApplyIsIdempotent(t *testing.T) {
	resp := &api.AuthResponse{
		ID:          "emp-2",
		Role:        "PUBLISHER",
		Institution: &api.Institution{ID: "inst-3"},
	}
	f := newContextFixture(&fakeAuthAPI{loginResp: resp})

	require.NoError(t, f.session.Login(context.Background(), "pub@wisal.org", "s3cret-pass"))
	first := f.session.State()

	require.NoError(t, f.session.Login(context.Background(), "pub@wisal.org", "s3cret-pass"))
	second := f.session.State()

	assert.Equal(t, first, second, "applying the same response twice yields the same state")
}

func TestLoginFailureClearsLocalState(t *testing.T) {
	remote := &fakeAuthAPI{
		loginErr: &api.Error{Status: 401, Message: "بيانات الدخول غير صحيحة"},
	}
	f := newContextFixture(remote)

	// Leftovers from a previous session
	f.sink.SetCredential("tok-old")
	require.NoError(t, f.store.SetRole(RoleAdmin))

	err := f.session.Login(context.Background(), "admin@wisal.org", "wrong")
	require.Error(t, err, "the login form needs the failure to display it")

	var apiErr *api.Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 401, apiErr.Status)

	assert.False(t, f.session.State().Authenticated)
	assert.Empty(t, f.sink.credential())
	_, ok := f.store.Role()
	assert.False(t, ok)
}

func TestLogoutAlwaysCleansUpLocally(t *testing.T) {
	tests := []struct {
		name      string
		logoutErr error
	}{
		{"remote logout succeeds", nil},
		{"remote logout fails", errors.New("server unreachable")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token := makeToken(t, map[string]interface{}{
				"sub": "emp-1", "role": "ADMIN", "institutionId": "inst-9",
			})
			f := newContextFixture(&fakeAuthAPI{
				loginResp: &api.AuthResponse{AccessToken: token},
				logoutErr: tt.logoutErr,
			})
			require.NoError(t, f.session.Login(context.Background(), "a@wisal.org", "s3cret-pass"))

			err := f.session.Logout(context.Background())
			if tt.logoutErr != nil {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}

			// Local cleanup happens no matter what the server said
			state := f.session.State()
			assert.False(t, state.Authenticated)
			assert.Empty(t, state.InstitutionID)
			assert.Empty(t, state.Role)
			assert.Empty(t, state.EmployeeID)
			assert.Empty(t, f.sink.credential())

			_, ok := f.store.InstitutionID()
			assert.False(t, ok)
			_, ok = f.store.Role()
			assert.False(t, ok)
			_, ok = f.store.EmployeeID()
			assert.False(t, ok)
		})
	}
}

func TestExplicitRefreshFailurePropagates(t *testing.T) {
	remote := &fakeAuthAPI{
		refreshResp: &api.AuthResponse{
			AccessToken: makeToken(t, map[string]interface{}{
				"sub": "emp-1", "role": "ADMIN", "institutionId": "inst-9",
			}),
		},
	}
	f := newContextFixture(remote)

	require.NoError(t, f.session.Refresh(context.Background()))
	require.True(t, f.session.State().Authenticated)

	// The next refresh is rejected; unlike Bootstrap, the error surfaces
	remote.mu.Lock()
	remote.refreshResp = nil
	remote.refreshErr = &api.Error{Status: 401, Message: "انتهت الجلسة"}
	remote.mu.Unlock()

	err := f.session.Refresh(context.Background())
	require.Error(t, err)

	state := f.session.State()
	assert.False(t, state.Authenticated)
	assert.Empty(t, state.Role)
	assert.Empty(t, f.sink.credential())
}

func TestExpireClearsSession(t *testing.T) {
	token := makeToken(t, map[string]interface{}{
		"sub": "emp-1", "role": "ADMIN", "institutionId": "inst-9",
	})
	f := newContextFixture(&fakeAuthAPI{
		loginResp: &api.AuthResponse{AccessToken: token},
	})
	require.NoError(t, f.session.Login(context.Background(), "a@wisal.org", "s3cret-pass"))

	// A 401 interceptor fires: the client dropped the credential already,
	// the context drops the rest.
	f.sink.ClearCredential()
	f.session.Expire()

	state := f.session.State()
	assert.False(t, state.Authenticated)
	assert.Empty(t, state.InstitutionID)
	assert.Empty(t, state.Role)
	assert.Empty(t, state.EmployeeID)

	_, ok := f.store.Role()
	assert.False(t, ok)
}

func TestExpireDoesNotResetInitializing(t *testing.T) {
	f := newContextFixture(&fakeAuthAPI{refreshErr: errors.New("no session")})
	f.session.Bootstrap(context.Background())
	require.False(t, f.session.State().Initializing)

	f.session.Expire()
	assert.False(t, f.session.State().Initializing, "initializing never re-enters true after boot")
}

func TestNilResponseIsNoOp(t *testing.T) {
	// A 2xx with an empty body decodes into nothing; nothing may change
	f := newContextFixture(&fakeAuthAPI{loginResp: nil})
	require.NoError(t, f.store.SetInstitutionID("inst-kept"))

	require.NoError(t, f.session.Login(context.Background(), "a@wisal.org", "s3cret-pass"))

	inst, ok := f.store.InstitutionID()
	require.True(t, ok, "a nil response persists nothing and clears nothing")
	assert.Equal(t, "inst-kept", inst)
}
