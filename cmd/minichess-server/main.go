// Package main implements the minichess API server: game creation,
// moves, legality queries and long-polling over a RESTful JSON API.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"minichess/internal/service"
	"minichess/internal/storage"
	transport "minichess/internal/transport/http"
)

const gracefulShutdownTimeout = 5 * time.Second

func main() {
	var (
		host        = flag.String("host", "localhost", "API server host")
		port        = flag.Int("port", 8080, "API server port")
		dev         = flag.Bool("dev", false, "Development mode (relaxed rate limits, WAL journal)")
		storagePath = flag.String("storage-path", "", "Path to SQLite database file (disables persistence if empty)")
		resetDB     = flag.Bool("reset-db", false, "Delete the existing database file before starting")
	)
	flag.Parse()

	// Storage is optional; play continues in memory without it
	var store *storage.Store
	if *storagePath != "" {
		if *resetDB {
			old, err := storage.NewStore(*storagePath, *dev)
			if err != nil {
				log.Fatalf("Failed to open database for reset: %v", err)
			}
			if err := old.DeleteDB(); err != nil {
				log.Fatalf("Failed to reset database: %v", err)
			}
			log.Printf("Existing database removed: %s", *storagePath)
		}

		log.Printf("Initializing persistent storage at: %s", *storagePath)
		var err error
		store, err = storage.NewStore(*storagePath, *dev)
		if err != nil {
			log.Fatalf("Failed to initialize storage: %v", err)
		}
		if err := store.InitDB(); err != nil {
			log.Fatalf("Failed to initialize schema: %v", err)
		}
	} else {
		log.Printf("Persistent storage disabled (use -storage-path to enable)")
	}

	svc, err := service.New(store)
	if err != nil {
		log.Fatalf("Failed to initialize service: %v", err)
	}

	app := transport.NewFiberApp(svc, *dev)

	addr := fmt.Sprintf("%s:%d", *host, *port)
	go func() {
		log.Printf("minichess API server starting")
		log.Printf("Listening on: http://%s", addr)
		log.Printf("Endpoints: http://%s/api/v1/games", addr)
		log.Printf("Health: http://%s/health", addr)

		if err := app.Listen(addr); err != nil {
			log.Printf("API server listen error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), gracefulShutdownTimeout)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}

	// Service close flushes the async storage writer
	if err := svc.Close(); err != nil {
		log.Printf("Service shutdown error: %v", err)
	}

	log.Println("Server exited")
}
