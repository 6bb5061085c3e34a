package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/robalobadob/wordle/apps/solver/internal/httpserver"
)

func newTokenCmd(f *rootFlags) *cobra.Command {
	var (
		subject string
		days    int
	)
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint a bearer token for the HTTP API (needs JWT_SECRET)",
		RunE: func(cmd *cobra.Command, args []string) error {
			c := f.config(cmd)
			if !cmd.Flags().Changed("days") {
				days = c.JWTExpiresDays
			}
			tok, exp, err := httpserver.SignToken(c.JWTSecret, subject, days)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), tok)
			fmt.Fprintf(cmd.ErrOrStderr(), "expires %s\n", exp.UTC().Format("2006-01-02 15:04 MST"))
			return nil
		},
	}
	cmd.Flags().StringVar(&subject, "subject", "", "token subject (caller name)")
	cmd.Flags().IntVar(&days, "days", 14, "lifetime in days (default JWT_EXPIRES_DAYS)")
	_ = cmd.MarkFlagRequired("subject")
	return cmd
}
