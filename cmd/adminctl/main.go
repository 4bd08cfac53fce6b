// adminctl provisions administrator accounts. The HTTP API only ever
// verifies credentials; creating an admin or rotating a password happens
// here, against the same database and with the same bcrypt cost the
// server is configured with.
//
// Usage:
//
//	adminctl -username marta -password 's3cret'
//
// An existing username has its password replaced.
package main

import (
	"context"
	"flag"
	"log"
	"time"

	"github.com/joho/godotenv"

	"github.com/iliyamo/restaurant-table-reservation/internal/config"
	"github.com/iliyamo/restaurant-table-reservation/internal/database"
	"github.com/iliyamo/restaurant-table-reservation/internal/repository"
	"github.com/iliyamo/restaurant-table-reservation/internal/utils"
)

func main() {
	username := flag.String("username", "", "admin username to create or update")
	password := flag.String("password", "", "password to set for the admin")
	flag.Parse()
	if *username == "" || *password == "" {
		log.Fatal("both -username and -password are required")
	}

	_ = godotenv.Load() // .env is optional; real env vars win

	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := database.EnsureSchema(ctx, db); err != nil {
		log.Fatalf("schema: %v", err)
	}

	hash, err := utils.HashPassword(*password, cfg.BcryptCost)
	if err != nil {
		log.Fatalf("hash password: %v", err)
	}
	if err := repository.NewAdminRepo(db).Upsert(ctx, *username, hash); err != nil {
		log.Fatalf("store admin: %v", err)
	}
	log.Printf("admin %q provisioned", *username)
}
