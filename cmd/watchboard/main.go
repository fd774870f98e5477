// Command watchboard serves the watchlist board API and offers a few offline
// helpers around the board file format.
package main

import (
	"log"
	"os"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"watchboard/config"
)

var (
	configPath string
	appFs      afero.Fs = afero.NewOsFs()
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "watchboard",
		Short:         "Kanban-style movie and TV watchlist",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&configPath, "config", "watchboard.json", "Path to the settings file")

	root.AddCommand(newServeCmd())
	root.AddCommand(newSearchCmd())
	root.AddCommand(newNormalizeCmd())
	return root
}

func loadSettings() (config.Settings, error) {
	return config.NewManagerFs(appFs, configPath).Load()
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		log.Printf("[main] %v", err)
		os.Exit(1)
	}
}
