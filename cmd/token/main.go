package main

import (
	"fmt"
	"log"
	"os"

	"payproof/internal/auth"
	"payproof/internal/config"
)

// Issues an API token for the named client, signed with the configured secret.
func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "Usage: token <client-name>")
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	token, expiry, err := auth.NewTokenService(cfg.JWT).Issue(os.Args[1])
	if err != nil {
		log.Fatalf("failed to issue token: %v", err)
	}

	fmt.Println(token)
	fmt.Fprintf(os.Stderr, "expires %s\n", expiry.Format("2006-01-02 15:04:05 MST"))
}
