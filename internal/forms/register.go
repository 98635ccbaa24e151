// internal/forms/register.go
package forms

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"blxck-client/internal/authclient"
	"blxck-client/internal/domain/auth"
	"blxck-client/internal/session"
)

// RegisterForm is the parameterized sign-up flow (trainer and user
// registration share it). Unlike login, it validates client-side before
// any backend call: validation runs reactively on every edit, but a
// field's error only displays once that field has been touched.
type RegisterForm struct {
	client *authclient.Client
	sess   *session.Manager
	flow   authclient.RegistrationFlow
	logger *zap.Logger

	FullName        Field
	Email           Field
	Password        Field
	ConfirmPassword Field

	banner  string
	notice  string
	loading bool
}

func NewRegisterForm(client *authclient.Client, sess *session.Manager, flow authclient.RegistrationFlow, logger *zap.Logger) *RegisterForm {
	f := &RegisterForm{
		client:          client,
		sess:            sess,
		flow:            flow,
		logger:          logger,
		FullName:        Field{Name: FieldFullName},
		Email:           Field{Name: FieldEmail},
		Password:        Field{Name: FieldPassword},
		ConfirmPassword: Field{Name: FieldConfirmPassword},
	}
	f.revalidate()
	return f
}

func (f *RegisterForm) SetFullName(v string) { f.FullName.Set(v); f.revalidate() }
func (f *RegisterForm) SetEmail(v string)    { f.Email.Set(v); f.revalidate() }
func (f *RegisterForm) SetPassword(v string) { f.Password.Set(v); f.revalidate() }
func (f *RegisterForm) SetConfirmPassword(v string) {
	f.ConfirmPassword.Set(v)
	f.revalidate()
}

func (f *RegisterForm) Banner() string { return f.banner }
func (f *RegisterForm) Notice() string { return f.notice }
func (f *RegisterForm) Loading() bool  { return f.loading }

func (f *RegisterForm) revalidate() {
	f.FullName.setValidation(validateFullName(f.FullName.Value()))
	f.Email.setValidation(validateEmail(f.Email.Value()))
	f.Password.setValidation(validatePassword(f.Password.Value()))
	f.ConfirmPassword.setValidation(validateConfirm(f.Password.Value(), f.ConfirmPassword.Value()))
}

func (f *RegisterForm) fields() []*Field {
	return []*Field{&f.FullName, &f.Email, &f.Password, &f.ConfirmPassword}
}

// Valid reports whether the form would pass client-side validation.
func (f *RegisterForm) Valid() bool {
	for _, fld := range f.fields() {
		if fld.invalid() {
			return false
		}
	}
	return true
}

// Submit touches every field (surfacing latent errors), short-circuits
// without a backend call when validation fails, and otherwise registers.
// Reports whether registration succeeded.
func (f *RegisterForm) Submit(ctx context.Context) bool {
	f.banner = ""
	f.notice = ""
	for _, fld := range f.fields() {
		fld.clearBackend()
		fld.Touch()
	}

	if !f.Valid() {
		return false
	}

	f.loading = true
	defer func() { f.loading = false }()

	res, err := f.client.Register(ctx, f.flow, auth.Registration{
		FullName: f.FullName.Value(),
		Email:    f.Email.Value(),
		Password: f.Password.Value(),
	})
	if err != nil {
		f.applyError(err)
		return false
	}

	// Some deployments log the new principal straight in; others only
	// confirm and expect a login afterwards.
	if res.Token != "" && len(res.Identity) > 0 {
		f.sess.Login(res.Identity, res.Token, f.flow.Role)
		f.notice = "registration successful"
	} else {
		f.notice = res.Message
		if f.notice == "" {
			f.notice = "registration successful, you can now log in"
		}
	}
	return true
}

func (f *RegisterForm) applyError(err error) {
	var apiErr *authclient.APIError
	if !errors.As(err, &apiErr) {
		f.logger.Warn("registration request failed", zap.String("flow", f.flow.Name), zap.Error(err))
		f.banner = genericBanner
		return
	}

	switch apiErr.Kind {
	case authclient.KindValidation:
		fieldNames := []string{FieldFullName, FieldEmail, FieldPassword}
		byField, leftover := MapMessages(apiErr.Messages, fieldNames)
		f.routeFieldErrors(byField)
		if len(byField) == 0 {
			f.banner = apiErr.Message
			if f.banner == "" {
				f.banner = genericBanner
			}
		} else if len(leftover) > 0 {
			f.banner = leftover[0]
		}
	case authclient.KindConflict:
		// Duplicate registrations are always about the email.
		f.Email.setBackend(apiErr.Message)
	default:
		f.banner = apiErr.Message
		if f.banner == "" {
			f.banner = genericBanner
		}
	}
}

func (f *RegisterForm) routeFieldErrors(byField map[string]string) {
	if msg, ok := byField[FieldFullName]; ok {
		f.FullName.setBackend(msg)
	}
	if msg, ok := byField[FieldEmail]; ok {
		f.Email.setBackend(msg)
	}
	if msg, ok := byField[FieldPassword]; ok {
		f.Password.setBackend(msg)
	}
}
