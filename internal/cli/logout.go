// logout.go implements "blxck logout": reset the session and clear the
// persisted record. Purely local, no backend call.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "End the current session",
	RunE:  runLogout,
}

func runLogout(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.close()

	if !a.sess.IsAuthenticated() {
		fmt.Println("no active session")
		return nil
	}

	email := a.sess.Identity().Email()
	a.sess.Logout()
	fmt.Printf("logged out %s\n", email)
	return nil
}
