package main

import (
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorhill/cronexpr"
	"github.com/spf13/cobra"

	"github.com/mohammad-safakhou/loopcast/config"
	"github.com/mohammad-safakhou/loopcast/internal/podcast"
	"github.com/mohammad-safakhou/loopcast/internal/server"
)

func daemonCMD() *cobra.Command {
	var cfgPath string
	var subreddit string
	var daemon = &cobra.Command{
		Use:   "daemon",
		Short: "Run episodes on a schedule with an ops HTTP endpoint",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.LoadConfig(cfgPath)

			expr, err := cronexpr.Parse(cfg.Daemon.CronSpec)
			if err != nil {
				return err
			}

			orch, err := podcast.NewOrchestrator(cfg)
			if err != nil {
				return err
			}

			logger := log.New(log.Writer(), "[DAEMON] ", log.LstdFlags)
			srv := server.New()
			go func() {
				if err := srv.Start(cfg.Daemon.Address); err != nil {
					logger.Fatalf("ops server error: %v", err)
				}
			}()

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			for {
				next := expr.Next(time.Now())
				logger.Printf("next run at %s", next)

				select {
				case <-ctx.Done():
					logger.Printf("shutting down")
					return nil
				case <-time.After(time.Until(next)):
				}

				episode, err := orch.Run(ctx, subreddit)
				srv.RecordRun(episode, err)
				if err != nil {
					if ctx.Err() != nil {
						return nil
					}
					logger.Printf("run failed: %v", err)
				}
			}
		},
	}
	daemon.Flags().StringVar(&subreddit, "subreddit", "OutOfTheLoop", "subreddit to build episodes from")
	daemon.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "config file (default is .)")

	return daemon
}
