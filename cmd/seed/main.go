package main

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/joho/godotenv"

	"github.com/oksasatya/notegenius-api/config"
	"github.com/oksasatya/notegenius-api/internal/domain/entity"
	"github.com/oksasatya/notegenius-api/internal/domain/repository"
	pginfra "github.com/oksasatya/notegenius-api/internal/infrastructure/postgres"
	"github.com/oksasatya/notegenius-api/pkg/helpers"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	ctx := context.Background()

	pool, err := pginfra.NewPool(ctx, cfg.PostgresDSN(), cfg.DBMaxConns, cfg.DBMinConns, cfg.DBMaxConnLife)
	if err != nil {
		log.Fatalf("failed to open db: %v", err)
	}
	defer pool.Close()

	email := "admin@notegenius.local"
	password := "password123"
	name := "Demo Admin"
	hash, err := helpers.NewPasswordHasher(cfg.HashCost()).Hash(password)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	users := pginfra.NewUserRepository(pool)
	u := &entity.User{Name: name, Email: email, PasswordHash: hash, Role: entity.RoleAdmin}
	err = users.Create(ctx, u)
	switch {
	case errors.Is(err, repository.ErrConflict):
		existing, gerr := users.GetByEmail(ctx, email)
		if gerr != nil {
			log.Fatalf("failed to load existing user: %v", gerr)
		}
		if err := users.UpdatePassword(ctx, existing.ID, hash); err != nil {
			log.Fatalf("failed to reset seeded password: %v", err)
		}
		u = existing
	case err != nil:
		log.Fatalf("failed to seed user: %v", err)
	}
	fmt.Printf("seeded user: id=%d email=%s name=%s role=%s password=%s\n", u.ID, email, u.Name, u.Role, password)
}
