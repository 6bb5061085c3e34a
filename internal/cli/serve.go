package cli

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/robalobadob/wordle/apps/solver/internal/httpserver"
	"github.com/robalobadob/wordle/apps/solver/internal/metrics"
	"github.com/robalobadob/wordle/apps/solver/internal/store"
)

func newServeCmd(f *rootFlags) *cobra.Command {
	var (
		port       string
		sessionTTL time.Duration
	)
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the solver HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, lists, err := f.load(cmd)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("port") {
				c.Port = port
			}

			reg := metrics.New()
			srv := httpserver.New(httpserver.Options{
				Lists:          lists,
				Store:          store.NewMemoryStore(),
				Metrics:        reg,
				Solver:         c.SolverOptions(reg),
				JWTSecret:      c.JWTSecret,
				RateLimitRPS:   c.RateLimitRPS,
				RateLimitBurst: c.RateLimitBurst,
				DailySalt:      c.DailySalt,
			})
			return srv.Serve(cmd.Context(), ":"+c.Port, sessionTTL)
		},
	}
	cmd.Flags().StringVar(&port, "port", "", "listen port (default PORT or 5175)")
	cmd.Flags().DurationVar(&sessionTTL, "session-ttl", 30*time.Minute, "drop sessions idle this long (0 keeps them)")
	return cmd
}
