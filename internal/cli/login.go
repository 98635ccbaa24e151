// login.go implements "blxck login" for the three roles. One shared flow
// runs underneath; --role only selects the endpoint configuration.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"blxck-client/internal/authclient"
	domain "blxck-client/internal/domain/session"
	"blxck-client/internal/forms"
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in and start a persisted session",
	RunE:  runLogin,
}

func init() {
	loginCmd.Flags().String("role", string(domain.RoleTrainee), "Role to log in as: trainee, trainer, admin")
	loginCmd.Flags().String("email", "", "Account email (prompted when omitted)")
	loginCmd.Flags().String("password", "", "Account password (prompted when omitted)")
}

func runLogin(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.close()

	roleFlag, _ := cmd.Flags().GetString("role")
	role, err := domain.ParseRole(roleFlag)
	if err != nil {
		return err
	}

	// Already-authenticated visitors are sent straight to their landing
	// screen instead of seeing the login form again.
	if a.guard.RedirectFromLogin(a.sess) {
		fmt.Printf("already logged in as %s (%s)\n", a.sess.Identity().Email(), a.sess.Role())
		return nil
	}

	email, _ := cmd.Flags().GetString("email")
	if email == "" {
		if email, err = promptLine("email"); err != nil {
			return err
		}
	}
	password, _ := cmd.Flags().GetString("password")
	if password == "" {
		if password, err = promptPassword("password"); err != nil {
			return err
		}
	}

	unsub := a.guard.Attach(a.sess)
	defer unsub()

	form := forms.NewLoginForm(a.client, a.sess, a.guard, authclient.LoginFlowForRole(role), a.logger)
	form.SetEmail(email)
	form.SetPassword(password)

	if !form.Submit(cmd.Context()) {
		printFormErrors(form.Banner(), &form.Email, &form.Password)
		return fmt.Errorf("login failed")
	}

	fmt.Println(form.Notice())
	return nil
}

// printFormErrors renders the banner and per-field errors the way the
// web client would display them next to the inputs.
func printFormErrors(banner string, fields ...*forms.Field) {
	for _, f := range fields {
		if msg := f.Error(); msg != "" {
			fmt.Printf("  %s: %s\n", f.Name, msg)
		}
	}
	if banner != "" {
		fmt.Printf("  %s\n", banner)
	}
}
