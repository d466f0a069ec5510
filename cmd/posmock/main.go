package main

import (
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/restaurant-pos/admin/internal/mockpos"
)

// posmock runs the in-process POS backend as a standalone HTTP server, so
// the admin console can be exercised without a deployed backend.
func main() {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8081"
	}
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "dev-secret"
	}

	store := mockpos.NewStore()
	if err := store.Seed(); err != nil {
		log.Fatalf("ERROR: seed store: %v", err)
	}

	srv := mockpos.New(store, secret)

	log.Printf("Starting mock POS backend on :%s (admin@restaurant.com / password123)", port)
	if err := http.ListenAndServe(fmt.Sprintf(":%s", port), srv); err != nil {
		log.Fatal(err)
	}
}
