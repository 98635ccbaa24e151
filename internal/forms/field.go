// Package forms carries the credential-entry flows: field state with
// touched tracking, client-side validation, and the mapping of backend
// rejections onto fields and banner.
package forms

// Canonical field names, also used to route backend messages.
const (
	FieldFullName        = "fullName"
	FieldEmail           = "email"
	FieldPassword        = "password"
	FieldConfirmPassword = "confirmPassword"
)

// Field holds one input's value, its touched flag, and any error coming
// from client-side validation or the backend. An error is only shown once
// the field has been touched, so users are not shouted at before typing.
type Field struct {
	Name    string
	value   string
	touched bool

	validationErr string // client-side, recomputed on every edit
	backendErr    string // from a rejected submit, cleared on next submit
}

// Set updates the value and marks the field touched.
func (f *Field) Set(value string) {
	f.value = value
	f.touched = true
}

// Value returns the current input.
func (f *Field) Value() string { return f.value }

// Touch marks the field as interacted-with, forcing any latent error to
// display. Submit touches every field.
func (f *Field) Touch() { f.touched = true }

// Touched reports whether the user has interacted with the field.
func (f *Field) Touched() bool { return f.touched }

// Error returns the displayable error: nothing while untouched, backend
// errors ahead of validation ones otherwise.
func (f *Field) Error() string {
	if !f.touched {
		return ""
	}
	if f.backendErr != "" {
		return f.backendErr
	}
	return f.validationErr
}

// invalid reports whether the field currently fails validation,
// independent of whether the error is displayed.
func (f *Field) invalid() bool { return f.validationErr != "" }

func (f *Field) setValidation(msg string) { f.validationErr = msg }
func (f *Field) setBackend(msg string)    { f.backendErr = msg }
func (f *Field) clearBackend()            { f.backendErr = "" }
