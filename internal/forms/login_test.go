package forms

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"blxck-client/internal/authclient"
	"blxck-client/internal/guard"
	"blxck-client/internal/session"
	"blxck-client/internal/store"
)

type recordingNav struct {
	routes []guard.Route
}

func (n *recordingNav) NavigateTo(route guard.Route) {
	n.routes = append(n.routes, route)
}

func newLoginRig(t *testing.T, flow authclient.LoginFlow, backend *countingBackend) (*LoginForm, *session.Manager, *recordingNav) {
	t.Helper()
	srv := httptest.NewServer(backend.handler())
	t.Cleanup(srv.Close)

	client := authclient.NewClient(srv.URL, 0, zap.NewNop())
	sess := session.NewManager(store.NewMemStore(), zap.NewNop())
	sess.Hydrate(context.Background())

	nav := &recordingNav{}
	g := guard.New(nav, zap.NewNop())
	g.Attach(sess)

	return NewLoginForm(client, sess, g, flow, zap.NewNop()), sess, nav
}

func TestLoginSuccessAuthenticatesAndRoutesOnce(t *testing.T) {
	backend := &countingBackend{
		status: http.StatusOK,
		body:   `{"status":"success","token":"abc","user":{"id":"u1","email":"ana@example.com"}}`,
	}
	f, sess, nav := newLoginRig(t, authclient.UserLogin, backend)

	f.SetEmail("ana@example.com")
	f.SetPassword("secret123")
	ok := f.Submit(context.Background())

	assert.True(t, ok)
	assert.True(t, sess.IsAuthenticated())
	assert.True(t, sess.IsTrainee())
	assert.Equal(t, "abc", sess.Token())
	assert.Equal(t, []guard.Route{guard.RouteTraineeDashboard}, nav.routes)
	assert.Equal(t, "login successful", f.Notice())
	assert.False(t, f.Loading())
}

func TestAdminLoginRoutesToAdminDashboard(t *testing.T) {
	backend := &countingBackend{
		status: http.StatusOK,
		body:   `{"status":"success","token":"adm-tok","admin":{"id":"adm1","email":"root@example.com"}}`,
	}
	f, sess, nav := newLoginRig(t, authclient.AdminLogin, backend)

	f.SetEmail("root@example.com")
	f.SetPassword("secret123")
	require.True(t, f.Submit(context.Background()))

	assert.True(t, sess.IsAdmin())
	assert.Equal(t, []guard.Route{guard.RouteAdminDashboard}, nav.routes)
}

func TestLoginRejectionShowsBanner(t *testing.T) {
	backend := &countingBackend{
		status: http.StatusUnauthorized,
		body:   `{"message":"invalid credentials"}`,
	}
	f, sess, nav := newLoginRig(t, authclient.UserLogin, backend)

	f.SetEmail("ana@example.com")
	f.SetPassword("wrong")
	ok := f.Submit(context.Background())

	assert.False(t, ok)
	assert.Equal(t, "invalid credentials", f.Banner())
	assert.False(t, sess.IsAuthenticated())
	assert.Empty(t, nav.routes)
	assert.False(t, f.Loading())
}

func TestLoginBackendValidationRoutesToFields(t *testing.T) {
	backend := &countingBackend{
		status: http.StatusBadRequest,
		body:   `{"message":"validation failed","errors":["email must be an email"]}`,
	}
	f, _, _ := newLoginRig(t, authclient.UserLogin, backend)

	f.SetEmail("nope")
	f.SetPassword("secret123")
	f.Submit(context.Background())

	assert.Equal(t, "email must be an email", f.Email.Error())
	assert.Empty(t, f.Banner())
}

func TestLoginTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	client := authclient.NewClient(srv.URL, 0, zap.NewNop())
	srv.Close()

	sess := session.NewManager(store.NewMemStore(), zap.NewNop())
	sess.Hydrate(context.Background())
	nav := &recordingNav{}
	g := guard.New(nav, zap.NewNop())
	g.Attach(sess)
	f := NewLoginForm(client, sess, g, authclient.UserLogin, zap.NewNop())

	f.SetEmail("ana@example.com")
	f.SetPassword("secret123")
	ok := f.Submit(context.Background())

	assert.False(t, ok)
	assert.Equal(t, genericBanner, f.Banner())
	assert.False(t, f.Loading())
}

func TestLoginStaleBannerClearedOnResubmit(t *testing.T) {
	backend := &countingBackend{
		status: http.StatusUnauthorized,
		body:   `{"message":"invalid credentials"}`,
	}
	f, sess, _ := newLoginRig(t, authclient.TrainerLogin, backend)

	f.SetEmail("coach@example.com")
	f.SetPassword("wrong")
	f.Submit(context.Background())
	require.Equal(t, "invalid credentials", f.Banner())

	backend.status = http.StatusOK
	backend.body = `{"status":"success","token":"abc","trainer":{"id":"t1","email":"coach@example.com"}}`
	f.SetPassword("right-password")

	ok := f.Submit(context.Background())

	assert.True(t, ok)
	assert.Empty(t, f.Banner())
	assert.True(t, sess.IsTrainer())
}
