package cmd

import (
	"melodex/server"

	"github.com/spf13/cobra"
)

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the Melodex HTTP server",
	Long:  `Start the Melodex music catalog server, serving the JSON API for browsing, uploads, playlists and admin statistics`,
	Run: func(cmd *cobra.Command, args []string) {
		server.Start()
	},
}

func init() {
	rootCmd.AddCommand(serverCmd)
}
