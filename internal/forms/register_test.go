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
	"blxck-client/internal/session"
	"blxck-client/internal/store"
)

// countingBackend records how many requests reached it.
type countingBackend struct {
	hits    int
	status  int
	body    string
	lastReq *http.Request
}

func (b *countingBackend) handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		b.hits++
		b.lastReq = r
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(b.status)
		_, _ = w.Write([]byte(b.body))
	}
}

func newRegisterRig(t *testing.T, backend *countingBackend) (*RegisterForm, *session.Manager) {
	t.Helper()
	srv := httptest.NewServer(backend.handler())
	t.Cleanup(srv.Close)

	client := authclient.NewClient(srv.URL, 0, zap.NewNop())
	sess := session.NewManager(store.NewMemStore(), zap.NewNop())
	sess.Hydrate(context.Background())

	return NewRegisterForm(client, sess, authclient.TrainerRegistration, zap.NewNop()), sess
}

func fillValid(f *RegisterForm) {
	f.SetFullName("Coach Vega")
	f.SetEmail("coach@example.com")
	f.SetPassword("longenough1")
	f.SetConfirmPassword("longenough1")
}

func TestRegisterInvalidEmailShortCircuits(t *testing.T) {
	backend := &countingBackend{status: http.StatusCreated, body: `{"message":"created"}`}
	f, _ := newRegisterRig(t, backend)

	fillValid(f)
	f.SetEmail("not-an-email")

	ok := f.Submit(context.Background())

	assert.False(t, ok)
	assert.Equal(t, 0, backend.hits)
	assert.Equal(t, "email must be a valid address", f.Email.Error())
	assert.Empty(t, f.FullName.Error())
	assert.False(t, f.Loading())
}

func TestRegisterShortPasswordShortCircuits(t *testing.T) {
	backend := &countingBackend{status: http.StatusCreated, body: `{"message":"created"}`}
	f, _ := newRegisterRig(t, backend)

	fillValid(f)
	f.SetPassword("short1")
	f.SetConfirmPassword("short1")

	ok := f.Submit(context.Background())

	assert.False(t, ok)
	assert.Equal(t, 0, backend.hits)
	assert.Contains(t, f.Password.Error(), "at least 8 characters")
}

func TestRegisterConfirmMismatch(t *testing.T) {
	backend := &countingBackend{status: http.StatusCreated, body: `{"message":"created"}`}
	f, _ := newRegisterRig(t, backend)

	fillValid(f)
	f.SetConfirmPassword("different11")

	ok := f.Submit(context.Background())

	assert.False(t, ok)
	assert.Equal(t, 0, backend.hits)
	assert.Equal(t, "passwords do not match", f.ConfirmPassword.Error())
}

func TestUntouchedFieldShowsNoError(t *testing.T) {
	backend := &countingBackend{status: http.StatusCreated, body: `{"message":"created"}`}
	f, _ := newRegisterRig(t, backend)

	// Email is invalid (empty) but untouched: no error shown yet.
	assert.Empty(t, f.Email.Error())
	assert.False(t, f.Valid())

	// Submit touches everything, so latent errors must now display.
	f.Submit(context.Background())
	assert.Equal(t, "email is required", f.Email.Error())
}

func TestRegisterSuccessMessageOnly(t *testing.T) {
	backend := &countingBackend{status: http.StatusCreated, body: `{"message":"trainer created"}`}
	f, sess := newRegisterRig(t, backend)

	fillValid(f)
	ok := f.Submit(context.Background())

	assert.True(t, ok)
	assert.Equal(t, 1, backend.hits)
	assert.Equal(t, "trainer created", f.Notice())
	assert.False(t, sess.IsAuthenticated())
	assert.False(t, f.Loading())
}

func TestRegisterSuccessWithImmediateLogin(t *testing.T) {
	backend := &countingBackend{
		status: http.StatusCreated,
		body:   `{"message":"trainer created","token":"fresh","trainer":{"id":"t1","email":"coach@example.com"}}`,
	}
	f, sess := newRegisterRig(t, backend)

	fillValid(f)
	ok := f.Submit(context.Background())

	assert.True(t, ok)
	assert.True(t, sess.IsAuthenticated())
	assert.True(t, sess.IsTrainer())
	assert.Equal(t, "fresh", sess.Token())
}

func TestRegisterConflictAttachesToEmail(t *testing.T) {
	backend := &countingBackend{
		status: http.StatusConflict,
		body:   `{"statusCode":409,"message":"email ya registrado"}`,
	}
	f, sess := newRegisterRig(t, backend)

	fillValid(f)
	ok := f.Submit(context.Background())

	assert.False(t, ok)
	assert.Equal(t, "email ya registrado", f.Email.Error())
	assert.Empty(t, f.FullName.Error())
	assert.Empty(t, f.Password.Error())
	assert.Empty(t, f.Banner())
	assert.False(t, f.Loading())
	assert.False(t, sess.IsAuthenticated())
}

func TestRegisterBackendValidationRoutesToFields(t *testing.T) {
	backend := &countingBackend{
		status: http.StatusBadRequest,
		body:   `{"message":"validation failed","errors":["email must be unique per gym","something odd"]}`,
	}
	f, _ := newRegisterRig(t, backend)

	fillValid(f)
	f.Submit(context.Background())

	assert.Equal(t, "email must be unique per gym", f.Email.Error())
	assert.Equal(t, "something odd", f.Banner())
}

func TestRegisterTransportFailureShowsBanner(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	client := authclient.NewClient(srv.URL, 0, zap.NewNop())
	srv.Close()

	sess := session.NewManager(store.NewMemStore(), zap.NewNop())
	sess.Hydrate(context.Background())
	f := NewRegisterForm(client, sess, authclient.TrainerRegistration, zap.NewNop())

	fillValid(f)
	ok := f.Submit(context.Background())

	assert.False(t, ok)
	assert.Equal(t, genericBanner, f.Banner())
	assert.False(t, f.Loading())
}

func TestRegisterStaleErrorsClearedOnResubmit(t *testing.T) {
	backend := &countingBackend{
		status: http.StatusConflict,
		body:   `{"statusCode":409,"message":"email ya registrado"}`,
	}
	f, _ := newRegisterRig(t, backend)

	fillValid(f)
	f.Submit(context.Background())
	require.Equal(t, "email ya registrado", f.Email.Error())

	backend.status = http.StatusCreated
	backend.body = `{"message":"trainer created"}`
	f.SetEmail("fresh@example.com")

	ok := f.Submit(context.Background())

	assert.True(t, ok)
	assert.Empty(t, f.Email.Error())
	assert.Empty(t, f.Banner())
	assert.Equal(t, "trainer created", f.Notice())
}
