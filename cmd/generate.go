package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mohammad-safakhou/loopcast/config"
	"github.com/mohammad-safakhou/loopcast/internal/podcast"
)

func generateCMD() *cobra.Command {
	var cfgPath string
	var subreddit string
	var generate = &cobra.Command{
		Use:   "generate",
		Short: "Generate one podcast episode now",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.LoadConfig(cfgPath)

			orch, err := podcast.NewOrchestrator(cfg)
			if err != nil {
				return err
			}

			episode, err := orch.Run(cmd.Context(), subreddit)
			if err != nil {
				return err
			}
			fmt.Printf("episode ready: %s\n", episode.AudioPath)
			return nil
		},
	}
	generate.Flags().StringVar(&subreddit, "subreddit", "OutOfTheLoop", "subreddit to build the episode from")
	generate.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "config file (default is .)")

	return generate
}
