package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	log "github.com/sirupsen/logrus"

	"bookie/cmd"
	"bookie/database"
)

func main() {
	configureLogging()

	if len(os.Args) > 1 {
		if err := runSubcommand(os.Args[1], os.Args[2:]); err != nil {
			log.Fatal(err)
		}
		return
	}

	// SIGINT/SIGTERM cancel the context; cmd.Run owns the ordered
	// shutdown of the bot, scheduler, cache, and database.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cmd.Run(ctx); err != nil {
		log.Fatalf("Application error: %v", err)
	}
}

func configureLogging() {
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	if strings.EqualFold(os.Getenv("ENVIRONMENT"), "development") {
		log.SetLevel(log.DebugLevel)
	}
}

func runSubcommand(name string, args []string) error {
	switch name {
	case "migrate":
		return runMigrate(args)
	default:
		return fmt.Errorf("unknown subcommand %q, expected `migrate`", name)
	}
}

func runMigrate(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: bookie migrate up|down [steps]|status")
	}

	switch args[0] {
	case "up":
		return database.MigrateUp()
	case "down":
		steps := "1"
		if len(args) > 1 {
			steps = args[1]
		}
		return database.MigrateDown(steps)
	case "status":
		return database.MigrateStatus()
	}
	return fmt.Errorf("unknown migration command %q", args[0])
}
