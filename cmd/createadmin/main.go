// Command createadmin provisions an admin account. Registration always
// forces the "user" role, so this is the only path that creates admins.
package main

import (
	"context"
	"errors"
	"flag"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/cryptotrack/portfolio-api/internal/core/domain"
	"github.com/cryptotrack/portfolio-api/internal/infrastructure/config"
	mongodb "github.com/cryptotrack/portfolio-api/internal/infrastructure/db/mongo"
	"github.com/cryptotrack/portfolio-api/pkg/logger"
)

func main() {
	username := flag.String("username", "admin", "admin username")
	email := flag.String("email", "", "admin email (required)")
	password := flag.String("password", "", "admin password (required)")
	flag.Parse()

	log := logger.Init(logger.Options{Level: "info", Pretty: true})

	if *email == "" || *password == "" {
		log.Fatal().Msg("both -email and -password are required")
	}

	cfg := config.Load()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("connect mongodb")
	}
	defer func() { _ = client.Disconnect(ctx) }()

	repo := mongodb.NewUserRepository(db)
	if err := repo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("ensure user indexes")
	}

	if _, err := repo.FindByEmail(ctx, *email); err == nil {
		log.Fatal().Str("email", *email).Msg("a user with this email already exists")
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		log.Fatal().Err(err).Msg("lookup existing user")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(*password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal().Err(err).Msg("hash password")
	}

	now := time.Now().UTC()
	admin, err := repo.Create(ctx, &domain.User{
		Username:     *username,
		Email:        *email,
		PasswordHash: string(hash),
		Role:         domain.RoleAdmin,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("create admin user")
	}

	log.Info().Str("user_id", admin.ID).Str("email", admin.Email).Msg("admin user created")
}
