// Command seed fills a user's pantry and shopping list with demo data and
// prints a token for that user.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/pageza/smartpantry/backend/config"
	"github.com/pageza/smartpantry/backend/internal/database"
	"github.com/pageza/smartpantry/backend/internal/service"
	"github.com/pageza/smartpantry/backend/internal/session"
)

var demoPantry = []service.PantryItemInput{
	{Name: "Eggs", Quantity: 6, Unit: "pcs", Category: "Dairy"},
	{Name: "Milk", Quantity: 1, Unit: "l", Category: "Dairy"},
	{Name: "Tomatoes", Quantity: 4, Unit: "pcs", Category: "Vegetables"},
	{Name: "Onion", Quantity: 2, Unit: "pcs", Category: "Vegetables"},
	{Name: "Spaghetti", Quantity: 500, Unit: "g", Category: "Pasta"},
	{Name: "Olive oil", Quantity: 1, Unit: "bottle", Category: "Oils"},
	{Name: "Garlic", Quantity: 1, Unit: "bulb", Category: "Vegetables"},
	{Name: "Nutella", Quantity: 1, Unit: "jar", Barcode: "3017620422003", Category: "Spreads"},
}

var demoShopping = []service.ShoppingItemInput{
	{Name: "Parmesan", Quantity: 200, Unit: "g"},
	{Name: "Basil", Quantity: 1, Unit: "bunch"},
	{Name: "Bread", Quantity: 1},
}

func main() {
	userFlag := flag.String("user", "", "user ID to seed (a new one is generated when empty)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Open(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	userID := uuid.New()
	if *userFlag != "" {
		if userID, err = uuid.Parse(*userFlag); err != nil {
			log.Fatalf("Invalid user ID: %v", err)
		}
	}

	ctx := context.Background()
	pantry := service.NewPantryService(db)
	shopping := service.NewShoppingListService(db, pantry)

	for _, item := range demoPantry {
		if _, _, err := pantry.AddOrIncrement(ctx, userID, item); err != nil {
			log.Fatalf("Failed to seed pantry item %q: %v", item.Name, err)
		}
	}
	for _, item := range demoShopping {
		if _, err := shopping.Create(ctx, userID, item); err != nil {
			log.Fatalf("Failed to seed shopping item %q: %v", item.Name, err)
		}
	}

	tokens, err := session.NewTokenService(cfg.JWTSecret)
	if err != nil {
		log.Fatalf("Failed to create token service: %v", err)
	}
	token, err := tokens.GenerateToken(session.User{ID: userID, Email: "demo@smartpantry.local"}, 7*24*time.Hour)
	if err != nil {
		log.Fatalf("Failed to generate token: %v", err)
	}

	fmt.Printf("Seeded %d pantry items and %d shopping list items for user %s\n", len(demoPantry), len(demoShopping), userID)
	fmt.Println(token)
}
