// One-time administrator bootstrap. Reads credentials from flags or the
// PORTFOLIO_ADMIN_* environment variables and refuses to run when an admin
// account already exists.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	dbfs "github.com/anujv/portfolio/db"
	"github.com/anujv/portfolio/internal/config"
	"github.com/anujv/portfolio/internal/db"
	"github.com/anujv/portfolio/internal/repository/sqlite"
	"github.com/anujv/portfolio/pkg/models"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	username := flag.String("username", os.Getenv("PORTFOLIO_ADMIN_USERNAME"), "admin username")
	email := flag.String("email", os.Getenv("PORTFOLIO_ADMIN_EMAIL"), "admin email")
	password := flag.String("password", os.Getenv("PORTFOLIO_ADMIN_PASSWORD"), "admin password")
	flag.Parse()

	if *username == "" || *email == "" || *password == "" {
		fmt.Fprintln(os.Stderr, "username, email and password are required")
		os.Exit(1)
	}

	ctx := context.Background()
	cfg, err := config.LoadConfig("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	database, err := db.New(ctx, cfg.DatabasePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "DB error: %v\n", err)
		os.Exit(1)
	}
	defer database.Close()

	if err := db.Migrate(ctx, database, dbfs.Migrations, dbfs.SeedFiles); err != nil {
		fmt.Fprintf(os.Stderr, "Migration runner error: %v\n", err)
		os.Exit(1)
	}

	repo := sqlite.New(database, nil)

	count, err := repo.CountAdmins(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Admin check error: %v\n", err)
		os.Exit(1)
	}
	if count > 0 {
		fmt.Fprintln(os.Stderr, "Admin account already exists; use its email to log in.")
		os.Exit(1)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(*password), bcrypt.DefaultCost)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Password hash error: %v\n", err)
		os.Exit(1)
	}

	id, err := repo.CreateAdmin(ctx, &models.Admin{
		Username:     *username,
		Email:        *email,
		PasswordHash: string(hash),
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Create admin error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Admin account created (id=%d). Log in with %s.\n", id, *email)
}
