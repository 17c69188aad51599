package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	version   = "0.1.0"
	gitCommit = "unknown"
	buildTime = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "studiocrm",
	Short: "Studio CRM - creator pipeline backend",
	Long: `Studio CRM tracks creators through their brand journey, stores their platform
credentials encrypted, and keeps an append-only audit trail of every change.`,
	RunE: runServer,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	RunE:  runServer,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("studiocrm %s\n", version)
		fmt.Printf("Git commit: %s\n", gitCommit)
		fmt.Printf("Build time: %s\n", buildTime)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd, migrateCmd, createUserCmd, recomputeHealthCmd, versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
