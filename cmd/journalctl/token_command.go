package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	jwttoken "journal-service/internal/jwt_token"
)

func newTokenCommand(ctx *commandContext) *cobra.Command {
	var (
		subject string
		ttl     time.Duration
	)

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint a service token for the write endpoints",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			auth := ctx.cfg.Auth
			if auth.JWTSigningKey == "" {
				return errors.New("JWT_SIGNING_KEY is not set")
			}
			if subject == "" {
				return errors.New("--subject is required")
			}
			token, err := jwttoken.NewJWTService(auth.JWTSigningKey, auth.JWTIssuer, auth.JWTAudience).
				GenerateServiceToken(subject, jwttoken.ScopeJournalsWrite, ttl)
			if err != nil {
				return wrapf(err, "sign token")
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}
	cmd.Flags().StringVar(&subject, "subject", "", "Caller name recorded in the token's sub claim")
	cmd.Flags().DurationVar(&ttl, "ttl", 24*time.Hour, "Token lifetime")
	return cmd
}
