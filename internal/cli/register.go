// register.go implements "blxck register" for trainers and users.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"blxck-client/internal/authclient"
	domain "blxck-client/internal/domain/session"
	"blxck-client/internal/forms"
)

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create a trainer or user account",
	RunE:  runRegister,
}

func init() {
	registerCmd.Flags().String("role", string(domain.RoleTrainer), "Account kind: trainer or trainee")
	registerCmd.Flags().String("full-name", "", "Full name")
	registerCmd.Flags().String("email", "", "Email address")
	registerCmd.Flags().String("password", "", "Password (prompted when omitted)")
}

func runRegister(cmd *cobra.Command, args []string) error {
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
	var flow authclient.RegistrationFlow
	switch role {
	case domain.RoleTrainer:
		flow = authclient.TrainerRegistration
	case domain.RoleTrainee:
		flow = authclient.UserRegistration
	default:
		return fmt.Errorf("cannot self-register role %q", role)
	}

	fullName, _ := cmd.Flags().GetString("full-name")
	if fullName == "" {
		if fullName, err = promptLine("full name"); err != nil {
			return err
		}
	}
	email, _ := cmd.Flags().GetString("email")
	if email == "" {
		if email, err = promptLine("email"); err != nil {
			return err
		}
	}
	password, _ := cmd.Flags().GetString("password")
	confirm := password
	if password == "" {
		if password, err = promptPassword("password"); err != nil {
			return err
		}
		if confirm, err = promptPassword("confirm password"); err != nil {
			return err
		}
	}

	unsub := a.guard.Attach(a.sess)
	defer unsub()

	form := forms.NewRegisterForm(a.client, a.sess, flow, a.logger)
	form.SetFullName(fullName)
	form.SetEmail(email)
	form.SetPassword(password)
	form.SetConfirmPassword(confirm)

	if !form.Submit(cmd.Context()) {
		printFormErrors(form.Banner(),
			&form.FullName, &form.Email, &form.Password, &form.ConfirmPassword)
		return fmt.Errorf("registration failed")
	}

	fmt.Println(form.Notice())
	return nil
}
