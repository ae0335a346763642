// Package main implements the entry point for the TaskDeck API server,
// which handles user accounts, tasks and the notifications produced when
// tasks are completed.
package main

import (
	"context"
	"log"
)

// main is the entry point for the taskdeck-api server. It initializes
// configuration, logging, the database connection and the service layer,
// applies pending migrations and then starts the HTTP server.
func main() {
	app, err := initializeApp()
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}

	if err := app.runMigrations(context.Background()); err != nil {
		log.Fatalf("Failed to run database migrations: %v", err)
	}

	if err := app.startHTTPServer(context.Background(), app.setupRouter()); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
