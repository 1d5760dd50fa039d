package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	httpcmd "github.com/Alijeyrad/stomatology_backend/cmd/http"
	systemcmd "github.com/Alijeyrad/stomatology_backend/cmd/system"
)

var (
	cfgFile string
)

var rootCmd = &cobra.Command{
	Use:   "stomatology",
	Short: "Records service for a dental clinic.",
	Long: `stomatology keeps the records of a dental clinic: doctors, patients, weekly
schedules, priced services, receptions and the services rendered during them.
It serves them over an authenticated JSON API with fuzzy search.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Global config flag, available for all commands.
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "config.yaml", "config file path")

	// Attach top-level command trees.
	rootCmd.AddCommand(systemcmd.NewSystemCommand())
	rootCmd.AddCommand(httpcmd.NewHTTPCommand())
}
