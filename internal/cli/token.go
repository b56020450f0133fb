package cli

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"pet-health-records/internal/adapters/auth/sessionjwt"

	"github.com/spf13/cobra"
)

func newTokenCommand(app *App) *cobra.Command {
	var (
		subject string
		ttl     time.Duration
	)

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint an HS256 session token for local testing",
		Long: `Mint a session token signed with SESSION_JWT_SECRET.

Only useful when the server verifies HS256 tokens; tokens from the identity
provider are RS256 and cannot be minted here.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			secret := strings.TrimSpace(app.Config.Auth.SessionSecret)
			if secret == "" {
				return errors.New("SESSION_JWT_SECRET is required")
			}
			if strings.TrimSpace(subject) == "" {
				return errors.New("--sub is required")
			}
			tok, err := sessionjwt.Issue([]byte(secret), subject, ttl)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), tok)
			return err
		},
	}

	cmd.Flags().StringVar(&subject, "sub", "", "identity provider user id (e.g. user_123)")
	cmd.Flags().DurationVar(&ttl, "ttl", time.Hour, "token lifetime")
	return cmd
}
