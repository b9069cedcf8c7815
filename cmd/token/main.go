// Command token prints a bearer token for local development.
package main

import (
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/pageza/smartpantry/backend/config"
	"github.com/pageza/smartpantry/backend/internal/session"
)

func main() {
	userFlag := flag.String("user", "", "user ID (a new one is generated when empty)")
	email := flag.String("email", "dev@smartpantry.local", "email embedded in the token")
	ttl := flag.Duration("ttl", 24*time.Hour, "token lifetime")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	id := uuid.New()
	if *userFlag != "" {
		if id, err = uuid.Parse(*userFlag); err != nil {
			log.Fatalf("Invalid user ID: %v", err)
		}
	}

	tokens, err := session.NewTokenService(cfg.JWTSecret)
	if err != nil {
		log.Fatalf("Failed to create token service: %v", err)
	}
	token, err := tokens.GenerateToken(session.User{ID: id, Email: *email}, *ttl)
	if err != nil {
		log.Fatalf("Failed to generate token: %v", err)
	}

	fmt.Printf("user_id: %s\n", id)
	fmt.Println(token)
}
