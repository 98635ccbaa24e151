// internal/forms/login.go
package forms

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"blxck-client/internal/authclient"
	"blxck-client/internal/domain/auth"
	"blxck-client/internal/guard"
	"blxck-client/internal/session"
)

// genericBanner is shown for transport failures and unclassifiable
// rejections; the real cause is logged, not displayed.
const genericBanner = "something went wrong, please try again"

// LoginForm is the one login flow shared by the three role screens; the
// per-role differences live entirely in the injected authclient.LoginFlow.
// Forms are event-loop objects: not safe for concurrent use.
type LoginForm struct {
	client *authclient.Client
	sess   *session.Manager
	guard  *guard.Guard
	flow   authclient.LoginFlow
	logger *zap.Logger

	Email    Field
	Password Field

	banner  string
	notice  string
	loading bool
}

func NewLoginForm(client *authclient.Client, sess *session.Manager, g *guard.Guard, flow authclient.LoginFlow, logger *zap.Logger) *LoginForm {
	return &LoginForm{
		client:   client,
		sess:     sess,
		guard:    g,
		flow:     flow,
		logger:   logger,
		Email:    Field{Name: FieldEmail},
		Password: Field{Name: FieldPassword},
	}
}

func (f *LoginForm) SetEmail(v string)    { f.Email.Set(v) }
func (f *LoginForm) SetPassword(v string) { f.Password.Set(v) }

// Banner returns the current error banner, empty when none.
func (f *LoginForm) Banner() string { return f.banner }

// Notice returns the transient success message, empty when none.
func (f *LoginForm) Notice() string { return f.notice }

// Loading reports whether a submit is in flight.
func (f *LoginForm) Loading() bool { return f.loading }

// Submit calls the backend and commits the session on success. Every
// failure is converted to display state; nothing propagates. Reports
// whether authentication succeeded.
func (f *LoginForm) Submit(ctx context.Context) bool {
	// Stale errors from a previous attempt never linger beside new ones.
	f.banner = ""
	f.notice = ""
	f.Email.clearBackend()
	f.Password.clearBackend()
	f.Email.Touch()
	f.Password.Touch()

	f.loading = true
	defer func() { f.loading = false }()

	f.guard.Begin()

	res, err := f.client.Login(ctx, f.flow, auth.Credentials{
		Email:    f.Email.Value(),
		Password: f.Password.Value(),
	})
	if err != nil {
		f.applyError(err)
		return false
	}

	// Memory state first; the guard observes the transition and routes
	// to the role's landing screen exactly once.
	f.sess.Login(res.Identity, res.Token, res.Role)
	f.notice = "login successful"
	return true
}

func (f *LoginForm) applyError(err error) {
	var apiErr *authclient.APIError
	if !errors.As(err, &apiErr) {
		f.logger.Warn("login request failed", zap.String("flow", f.flow.Name), zap.Error(err))
		f.banner = genericBanner
		return
	}

	switch apiErr.Kind {
	case authclient.KindValidation:
		byField, leftover := MapMessages(apiErr.Messages, []string{FieldEmail, FieldPassword})
		if msg, ok := byField[FieldEmail]; ok {
			f.Email.setBackend(msg)
		}
		if msg, ok := byField[FieldPassword]; ok {
			f.Password.setBackend(msg)
		}
		if len(byField) == 0 {
			f.banner = apiErr.Message
			if f.banner == "" {
				f.banner = genericBanner
			}
		} else if len(leftover) > 0 {
			f.banner = leftover[0]
		}
	case authclient.KindConflict:
		f.Email.setBackend(apiErr.Message)
	default:
		f.banner = apiErr.Message
		if f.banner == "" {
			f.banner = genericBanner
		}
	}
}
