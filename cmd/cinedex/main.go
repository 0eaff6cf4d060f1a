package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cinedexbot/cinedex/internal/version"
)

func main() {
	root := &cobra.Command{
		Use:   "cinedex",
		Short: "Telegram movie-catalog webhook bot",
	}
	root.AddCommand(
		&cobra.Command{
			Use:   "serve",
			Short: "Run the webhook server",
			Run: func(cmd *cobra.Command, args []string) {
				runServe()
			},
		},
		&cobra.Command{
			Use:   "version",
			Short: "Print version information",
			Run: func(cmd *cobra.Command, args []string) {
				fmt.Println(version.GetInfo())
			},
		},
	)
	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}
