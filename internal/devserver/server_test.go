package devserver

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"blxck-client/internal/authclient"
	"blxck-client/internal/domain/auth"
	domain "blxck-client/internal/domain/session"
	"blxck-client/internal/guard"
	"blxck-client/internal/session"
	"blxck-client/internal/store"
)

func newRig(t *testing.T) *authclient.Client {
	t.Helper()
	s := New(Config{JWTSecret: "test-secret"}, zap.NewNop())
	srv := httptest.NewServer(s.Engine())
	t.Cleanup(srv.Close)
	return authclient.NewClient(srv.URL, 0, zap.NewNop())
}

func TestSeededAccountsCanLogIn(t *testing.T) {
	client := newRig(t)
	ctx := context.Background()

	tests := []struct {
		flow  authclient.LoginFlow
		email string
		pass  string
	}{
		{authclient.UserLogin, "trainee@blxck.local", "trainee-pass"},
		{authclient.TrainerLogin, "trainer@blxck.local", "trainer-pass"},
		{authclient.AdminLogin, "admin@blxck.local", "admin-pass"},
	}

	for _, tt := range tests {
		t.Run(tt.flow.Name, func(t *testing.T) {
			res, err := client.Login(ctx, tt.flow, auth.Credentials{Email: tt.email, Password: tt.pass})
			require.NoError(t, err)
			assert.NotEmpty(t, res.Token)
			assert.Equal(t, tt.flow.Role, res.Role)
			assert.Equal(t, tt.email, res.Identity.Email())
		})
	}
}

func TestWrongPasswordIsRejected(t *testing.T) {
	client := newRig(t)

	_, err := client.Login(context.Background(), authclient.UserLogin, auth.Credentials{
		Email:    "trainee@blxck.local",
		Password: "nope",
	})

	var apiErr *authclient.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, authclient.KindGeneric, apiErr.Kind)
	assert.Equal(t, "invalid credentials", apiErr.Message)
}

func TestRolesAreSeparateNamespaces(t *testing.T) {
	client := newRig(t)

	// Trainee credentials must not work on the trainer endpoint.
	_, err := client.Login(context.Background(), authclient.TrainerLogin, auth.Credentials{
		Email:    "trainee@blxck.local",
		Password: "trainee-pass",
	})
	require.Error(t, err)
}

func TestRegisterLoginMeRoundTrip(t *testing.T) {
	client := newRig(t)
	ctx := context.Background()

	reg, err := client.Register(ctx, authclient.TrainerRegistration, auth.Registration{
		FullName: "Coach Vega",
		Email:    "coach@example.com",
		Password: "longenough1",
	})
	require.NoError(t, err)
	assert.Equal(t, "trainer created", reg.Message)
	assert.NotEmpty(t, reg.Token)

	res, err := client.Login(ctx, authclient.TrainerLogin, auth.Credentials{
		Email:    "coach@example.com",
		Password: "longenough1",
	})
	require.NoError(t, err)

	id, err := client.Me(ctx, res.Token)
	require.NoError(t, err)
	assert.Equal(t, "coach@example.com", id.Email())
	assert.Equal(t, "Coach Vega", id.FullName())
}

func TestDuplicateRegistrationConflicts(t *testing.T) {
	client := newRig(t)
	ctx := context.Background()

	reg := auth.Registration{
		FullName: "Coach Vega",
		Email:    "coach@example.com",
		Password: "longenough1",
	}

	_, err := client.Register(ctx, authclient.TrainerRegistration, reg)
	require.NoError(t, err)

	_, err = client.Register(ctx, authclient.TrainerRegistration, reg)
	var apiErr *authclient.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, authclient.KindConflict, apiErr.Kind)
	assert.Equal(t, "email ya registrado", apiErr.Message)
}

func TestRegistrationValidationShape(t *testing.T) {
	client := newRig(t)

	_, err := client.Register(context.Background(), authclient.UserRegistration, auth.Registration{
		FullName: "",
		Email:    "not-an-email",
		Password: "short",
	})

	var apiErr *authclient.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, authclient.KindValidation, apiErr.Kind)
	assert.Len(t, apiErr.Messages, 3)
}

func TestMeRejectsBadToken(t *testing.T) {
	client := newRig(t)

	_, err := client.Me(context.Background(), "garbage")

	var apiErr *authclient.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 401, apiErr.StatusCode)
}

func TestFullSessionLifecycleAgainstDevserver(t *testing.T) {
	client := newRig(t)
	ctx := context.Background()

	sess := session.NewManager(store.NewMemStore(), zap.NewNop())
	sess.Hydrate(ctx)

	var routes []guard.Route
	g := guard.New(guard.NavigatorFunc(func(r guard.Route) { routes = append(routes, r) }), zap.NewNop())
	g.Attach(sess)

	res, err := client.Login(ctx, authclient.AdminLogin, auth.Credentials{
		Email:    "admin@blxck.local",
		Password: "admin-pass",
	})
	require.NoError(t, err)

	sess.Login(res.Identity, res.Token, res.Role)

	assert.True(t, sess.IsAdmin())
	assert.Equal(t, []guard.Route{guard.RouteAdminDashboard}, routes)
	assert.NoError(t, g.Require(sess, domain.RoleAdmin))

	sess.Logout()
	assert.False(t, sess.IsAuthenticated())
}
