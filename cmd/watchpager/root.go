package main

import (
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "watchpager",
		Short:         "Watch log backend: paginated listings of users and reviews",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringP("config", "c", "", "path to the YAML config file")
	cmd.AddCommand(newServeCmd())

	return cmd
}
