package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"blxck-client/internal/cli"
)

func main() {
	// Local overrides live in .env; absence is fine.
	_ = godotenv.Load()

	if err := cli.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
