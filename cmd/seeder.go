package cmd

import (
	"fmt"
	"log"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
)

var clearData bool

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with sample data",
	Long:  `Seed the database with sample data for development and testing purposes.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(".")
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}

		sqlDB, err := initDB(cfg.Database)
		if err != nil {
			log.Fatalf("failed to init db: %v", err)
		}
		defer sqlDB.Close()

		db, err := initGorm(sqlDB)
		if err != nil {
			log.Fatalf("failed to init gorm: %v", err)
		}

		if clearData {
			for _, table := range []string{"audit_logs", "expenses", "users"} {
				if err := db.Exec("DELETE FROM " + table).Error; err != nil {
					log.Fatalf("failed to clear table %s: %v", table, err)
				}
			}
			fmt.Println("Cleared existing data")
		}

		cost := cfg.Security.BCryptCost
		if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
			cost = bcrypt.DefaultCost
		}

		password := "password"
		hash, _ := bcrypt.GenerateFromPassword([]byte(password), cost)

		seedUsers := []struct {
			Username string
			Email    string
			Name     string
			Role     string
		}{
			{"admin", "admin@spendwise.dev", "Site Admin", "admin"},
			{"alice", "alice@spendwise.dev", "Alice Tan", "user"},
			{"bob", "bob@spendwise.dev", "Bob Hartono", "user"},
		}

		for _, u := range seedUsers {
			var exists int
			row := db.Raw("SELECT 1 FROM users WHERE username = ?", u.Username).Row()
			if err := row.Scan(&exists); err == nil {
				fmt.Printf("user %s already exists, skipping\n", u.Username)
				continue
			}

			if err := db.Exec(
				"INSERT INTO users (username, email, name, password_hash, role, is_active, created_at, updated_at) VALUES (?, ?, ?, ?, ?, true, now(), now())",
				u.Username, u.Email, u.Name, string(hash), u.Role,
			).Error; err != nil {
				log.Fatalf("failed to insert user %s: %v", u.Username, err)
			}
			fmt.Println("Seeded user:", u.Username)
		}

		now := time.Now()
		seedExpenses := []struct {
			Username string
			Title    string
			Category string
			Amount   decimal.Decimal
			DaysAgo  int
		}{
			{"alice", "Lunch with client", "Food", decimal.RequireFromString("50.00"), 2},
			{"alice", "Train to Surabaya", "Travel", decimal.RequireFromString("200.00"), 5},
			{"alice", "Office snacks", "Food", decimal.RequireFromString("18.75"), 9},
			{"bob", "Monitor stand", "Office Supplies", decimal.RequireFromString("349.90"), 3},
			{"bob", "Taxi to airport", "Travel", decimal.RequireFromString("42.50"), 12},
			{"bob", "Team dinner", "Food", decimal.RequireFromString("120.00"), 20},
		}

		for _, e := range seedExpenses {
			createdAt := now.AddDate(0, 0, -e.DaysAgo)
			var exists int
			row := db.Raw("SELECT 1 FROM expenses WHERE username = ? AND title = ?", e.Username, e.Title).Row()
			if err := row.Scan(&exists); err == nil {
				continue
			}

			if err := db.Exec(
				"INSERT INTO expenses (username, title, category, amount, created_at, updated_at) VALUES (?, ?, ?, ?, ?, now())",
				e.Username, e.Title, e.Category, e.Amount, createdAt,
			).Error; err != nil {
				log.Fatalf("failed to insert expense %q for %s: %v", e.Title, e.Username, err)
			}
			fmt.Printf("Seeded expense %q for %s\n", e.Title, e.Username)
		}

		fmt.Println("Seeding complete. Login with any seeded email and password 'password'.")
	},
}
