package cmd

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"

	"github.com/arjav-14/cost-console/internal/user"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with an initial admin account",
	Long:  `Create the initial admin account plus a sample employee. Safe to run repeatedly; existing accounts are left untouched.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(".")
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}

		db, err := initDB(cfg.Database)
		if err != nil {
			log.Fatalf("failed to init db: %v", err)
		}
		defer db.Close()

		hash, err := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.DefaultCost)
		if err != nil {
			log.Fatalf("failed to hash seed password: %v", err)
		}

		accounts := []struct {
			Email string
			Name  string
			Role  user.Role
		}{
			{"admin@example.com", "Admin", user.RoleAdmin},
			{"employee@example.com", "Employee", user.RoleEmployee},
		}

		for _, a := range accounts {
			var exists int
			if err := db.QueryRow("SELECT 1 FROM users WHERE email = $1", a.Email).Scan(&exists); err == nil {
				fmt.Println("user already exists, skipping:", a.Email)
				continue
			}

			_, err := db.Exec(
				"INSERT INTO users (name, email, password_hash, role, created_at, updated_at) VALUES ($1, $2, $3, $4, now(), now())",
				a.Name, a.Email, string(hash), string(a.Role),
			)
			if err != nil {
				log.Fatalf("failed to insert user %s: %v", a.Email, err)
			}
			fmt.Println("seeded user:", a.Email)
		}
	},
}
