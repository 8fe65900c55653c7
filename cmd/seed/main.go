package main

import (
	"database/sql"
	"log"
	"os"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
)

// Dev helper: inserts a few sample meals so the battle endpoints have
// something to fight with.
func main() {
	_ = godotenv.Load()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL not set in environment")
	}

	db, err := sql.Open("postgres", dbURL)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer db.Close()

	seeds := []struct {
		meal       string
		cuisine    string
		price      float64
		difficulty string
	}{
		{"Margherita Pizza", "Italian", 12.50, "LOW"},
		{"Beef Bourguignon", "French", 28.00, "HIGH"},
		{"Pad Thai", "Thai", 14.25, "MED"},
		{"Bibimbap", "Korean", 16.00, "MED"},
	}

	for _, s := range seeds {
		_, err := db.Exec(
			`INSERT INTO meals (meal, cuisine, price, difficulty)
			 VALUES ($1, $2, $3, $4)
			 ON CONFLICT (meal) DO NOTHING`,
			s.meal, s.cuisine, s.price, s.difficulty,
		)
		if err != nil {
			log.Fatalf("Failed to insert %s: %v", s.meal, err)
		}
		log.Printf("Seeded meal: %s", s.meal)
	}

	log.Println("Done")
}
