// devserver.go implements "blxck devserver": a local stand-in backend
// with seeded accounts, for development and demos without infrastructure.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"blxck-client/internal/config"
	"blxck-client/internal/devserver"
)

var devserverCmd = &cobra.Command{
	Use:   "devserver",
	Short: "Run a local stand-in for the platform backend",
	Long: `Serve the authentication endpoints locally with seeded accounts:

  trainee@blxck.local / trainee-pass
  trainer@blxck.local / trainer-pass
  admin@blxck.local   / admin-pass

Point the client at it with BLXCK_API_URL.`,
	RunE: runDevserver,
}

func runDevserver(cmd *cobra.Command, args []string) error {
	cfg := config.Load()

	logger, err := newLogger(cfg.Debug)
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	defer logger.Sync()

	srv := devserver.New(devserver.Config{
		Addr:      cfg.DevAddr,
		JWTSecret: cfg.DevJWTSecret,
		TokenTTL:  cfg.DevTokenTTL,
	}, logger)

	fmt.Printf("devserver listening on %s\n", cfg.DevAddr)
	return srv.Start()
}
