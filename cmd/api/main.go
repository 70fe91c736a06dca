package main

import (
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/taskdeck/core/cmd/api/commands"
)

// @title TaskDeck API
// @version 1.0
// @description Personal task tracking service with bearer-token authentication.

// @host localhost:8080
// @BasePath /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the token.

func main() {
	rootCmd := &cobra.Command{
		Use:   "taskdeck",
		Short: "TaskDeck API Server",
		Long:  `TaskDeck is a personal task tracking service: per-account task lists behind email/password authentication.`,
	}

	rootCmd.AddCommand(commands.NewServeCommand())
	rootCmd.AddCommand(commands.NewMigrateCommand())
	rootCmd.AddCommand(commands.NewUserCommand())

	if err := rootCmd.Execute(); err != nil {
		log.Printf("Command execution failed: %v", err)
		os.Exit(1)
	}
}
