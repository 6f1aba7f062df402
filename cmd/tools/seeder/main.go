package main

import (
	"database/sql"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment variables")
	}

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL is not set")
	}

	db, err := sql.Open("postgres", dbURL)
	if err != nil {
		log.Fatalf("Failed to open DB: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatalf("Failed to ping DB: %v", err)
	}

	seedProps(db)
	seedDiscountSettings(db)
	seedNotificationSettings(db)

	log.Println("Seeding completed successfully!")
}

func seedProps(db *sql.DB) {
	props := []struct {
		Name        string
		Description string
		Price       float64
		PrintCost   float64
		Category    string
		Images      []string
	}{
		{
			Name:        "Back to the Future Hoverboard",
			Description: "Original prop hoverboard from Back to the Future Part II. This screen-used prop features the iconic pink coloring and green foot pad.",
			Price:       12999.99,
			PrintCost:   299.99,
			Category:    "Transportation",
			Images: []string{
				"https://images.unsplash.com/photo-1514036783265-fba9577ea01d?w=600",
				"https://images.unsplash.com/photo-1513116476489-7635e79feb27?w=600",
			},
		},
		{
			Name:        "Indiana Jones Hat",
			Description: "Screen-worn fedora from Raiders of the Lost Ark. Features the iconic brown felt and distressed finish.",
			Price:       25000.00,
			PrintCost:   149.99,
			Category:    "Costumes",
			Images: []string{
				"https://images.unsplash.com/photo-1521369909029-2afed882baee?w=600",
			},
		},
		{
			Name:        "Star Wars Lightsaber",
			Description: "Original lightsaber prop used by Mark Hamill in Star Wars: A New Hope. Includes display case and authenticity certificate.",
			Price:       45000.00,
			PrintCost:   499.99,
			Category:    "Weapons",
			Images: []string{
				"https://images.unsplash.com/photo-1472457897821-70d3819a0e24?w=600",
			},
		},
		{
			Name:        "Jurassic Park Night Vision Goggles",
			Description: "Screen-matched night vision goggles as seen in the original Jurassic Park. Fully functional with green LED display.",
			Price:       4999.99,
			PrintCost:   199.99,
			Category:    "Accessories",
			Images: []string{
				"https://images.unsplash.com/photo-1589578228447-e1a4e481c6c8?w=600",
			},
		},
	}

	fmt.Println("Seeding Props...")
	for _, p := range props {
		var exists bool
		if err := db.QueryRow("SELECT EXISTS (SELECT 1 FROM props WHERE name = $1)", p.Name).Scan(&exists); err != nil {
			log.Printf("Failed to check prop %s: %v", p.Name, err)
			continue
		}
		if exists {
			continue
		}

		var propID string
		err := db.QueryRow(`
			INSERT INTO props (name, description, price, print_cost, category)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING id;
		`, p.Name, p.Description, p.Price, p.PrintCost, p.Category).Scan(&propID)
		if err != nil {
			log.Printf("Failed to seed prop %s: %v", p.Name, err)
			continue
		}

		for pos, url := range p.Images {
			_, err := db.Exec(`
				INSERT INTO prop_images (prop_id, image_url, position)
				VALUES ($1, $2, $3);
			`, propID, url, pos)
			if err != nil {
				log.Printf("Failed to seed image for prop %s: %v", p.Name, err)
			}
		}
	}
}

func seedDiscountSettings(db *sql.DB) {
	fmt.Println("Seeding Discount Settings...")
	_, err := db.Exec(`
		INSERT INTO discount_settings (id, tier1_quantity, tier1_discount, tier2_quantity, tier2_discount)
		VALUES (1, 5, 0.05, 10, 0.10)
		ON CONFLICT (id) DO NOTHING;
	`)
	if err != nil {
		log.Printf("Failed to seed discount settings: %v", err)
	}
}

func seedNotificationSettings(db *sql.DB) {
	fmt.Println("Seeding Notification Settings...")
	_, err := db.Exec(`
		INSERT INTO notification_settings (id)
		VALUES (1)
		ON CONFLICT (id) DO NOTHING;
	`)
	if err != nil {
		log.Printf("Failed to seed notification settings: %v", err)
	}
}
