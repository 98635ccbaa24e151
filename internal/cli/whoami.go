// whoami.go implements "blxck whoami": show the current session, and
// optionally validate its token against the backend.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"blxck-client/internal/guard"
	xerrors "blxck-client/internal/pkg/errors"
)

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the current session",
	RunE:  runWhoami,
}

func init() {
	whoamiCmd.Flags().Bool("remote", false, "Validate the stored token against the backend")
}

func runWhoami(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.close()

	if !a.sess.IsAuthenticated() {
		return xerrors.ErrNoSession
	}

	identity := a.sess.Identity()
	role := a.sess.Role()

	if remote, _ := cmd.Flags().GetBool("remote"); remote {
		fresh, err := a.client.Me(cmd.Context(), a.sess.Token())
		if err != nil {
			return xerrors.Wrap(err, "stored session rejected by backend")
		}
		identity = fresh
	}

	fmt.Printf("%s <%s>\n", identity.FullName(), identity.Email())
	fmt.Printf("role: %s\n", role)
	fmt.Printf("landing: %s\n", guard.LandingRoute(role))
	return nil
}
