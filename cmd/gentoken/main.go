// Dev tool that mints a HelpHive session token for curl testing.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/jaberDevHub/help-hive-server-side/internal/auth"
)

func main() {
	var (
		email   = flag.String("email", "tester@helphive.org", "participant email to embed in the token")
		name    = flag.String("name", "Test User", "display name claim")
		picture = flag.String("picture", "", "avatar URL claim")
		ttl     = flag.Duration("ttl", time.Hour, "token lifetime")
	)
	flag.Parse()

	secret := os.Getenv("SESSION_SECRET")
	if secret == "" {
		fmt.Fprintln(os.Stderr, "Error: SESSION_SECRET must be set (same value the server uses)")
		os.Exit(1)
	}

	sessions, err := auth.NewSessionManager(secret, *ttl)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	token, expires, err := sessions.Issue(*email, *name, *picture)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Session token (expires", expires.Format(time.RFC3339), "):")
	fmt.Println(token)
	fmt.Println("\nTest with:")
	fmt.Printf("curl --cookie '%s=%s' -X POST http://localhost:5000/api/events -d '{\"title\":\"Test\",\"eventDate\":\"2026-12-01T09:00:00Z\"}'\n", auth.SessionCookieName, token)
}
