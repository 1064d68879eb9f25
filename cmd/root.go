package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command for the tickdone application
var rootCmd = &cobra.Command{
	Use:   "tickdone",
	Short: "MCP server for TickTick task management",
	Long: `tickdone exposes TickTick task and project management to AI assistants
through the Model Context Protocol (MCP).

It connects to a TickTick account with an access token, keeps a local
snapshot of tasks and projects, and provides tools for creating,
updating, completing, deleting and querying tasks, including due-today
and overdue classification in the account's time zone.`,
	SilenceUsage: true,
}

// version will be set by main
var version = "dev"

// SetVersion sets the version for the root command
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}

// Execute is the main entry point for the CLI application
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "tickdone version %s\n" .Version}}`)

	// If no subcommand is provided, run the serve command by default
	if len(os.Args) == 1 {
		os.Args = append(os.Args, "serve")
	}

	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newVersionCmd())
}
