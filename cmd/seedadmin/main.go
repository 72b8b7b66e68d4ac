// Command seedadmin creates the initial admin account.
// Email and password come from HIA_ADMIN_EMAIL and HIA_ADMIN_PASSWORD.
// Usage: go run ./cmd/seedadmin
package main

import (
	"context"
	"errors"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"

	"hia/internal/config"
	"hia/internal/domain"
	"hia/internal/repository/postgres"
	"hia/internal/service"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	_ = godotenv.Load()

	email := os.Getenv("HIA_ADMIN_EMAIL")
	password := os.Getenv("HIA_ADMIN_PASSWORD")
	if email == "" || password == "" {
		return errors.New("HIA_ADMIN_EMAIL and HIA_ADMIN_PASSWORD must be set")
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return err
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	userRepo := postgres.NewUserRepo(db)
	authSvc := service.NewAuthService(userRepo, cfg.JWT)

	user, err := authSvc.Register(ctx, service.RegisterInput{
		Email:    email,
		Password: password,
		FullName: "Administrator",
	})
	if err != nil {
		if errors.Is(err, domain.ErrDuplicateEmail) {
			log.Printf("admin account %s already exists", email)
			return nil
		}
		return err
	}

	if err := userRepo.UpdateRole(ctx, user.ID, domain.RoleAdmin); err != nil {
		return err
	}

	log.Printf("admin account %s created", email)
	return nil
}
