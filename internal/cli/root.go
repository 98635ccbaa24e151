// Package cli wires the blxck commands. Each screen of the original
// client maps to one command: login, register, whoami, logout, plus the
// local devserver.
package cli

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:           "blxck",
	Short:         "Client for the BLXCK training platform",
	Long:          "Log in to the BLXCK training platform, keep the session across runs,\nand land on the screen your role calls for.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(registerCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(whoamiCmd)
	rootCmd.AddCommand(devserverCmd)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
