// Command seed creates a demo account with one public wishlist.
// Running it twice leaves the database unchanged.
package main

import (
	"context"
	"errors"
	"os"

	"github.com/dafibh/wishflow/wishflow-backend/db/migrations"
	"github.com/dafibh/wishflow/wishflow-backend/internal/domain"
	"github.com/dafibh/wishflow/wishflow-backend/internal/repository/postgres"
	"github.com/dafibh/wishflow/wishflow-backend/internal/service"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const (
	seedEmail    = "test@example.com"
	seedPassword = "testpassword"
	seedName     = "Test User"
	seedWishlist = "My First Wishlist"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	_ = godotenv.Load()

	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		log.Fatal().Msg("DATABASE_URL is required")
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer pool.Close()

	// Migrations also insert the default category
	if err := postgres.RunMigrations(ctx, pool, migrations.FS); err != nil {
		log.Fatal().Err(err).Msg("Failed to run migrations")
	}

	userRepo := postgres.NewUserRepository(pool)
	wishlistRepo := postgres.NewWishlistRepository(pool)
	itemRepo := postgres.NewWishItemRepository(pool)

	// Register never touches sessions
	authService := service.NewAuthService(userRepo, nil, 0)
	wishlistService := service.NewWishlistService(
		wishlistRepo,
		itemRepo,
		service.NewCategoryService(postgres.NewCategoryRepository(pool)),
		service.NewActivityService(postgres.NewActivityRepository(pool)),
		service.NewImageService(nil),
	)

	user, err := userRepo.GetByEmail(ctx, seedEmail)
	switch {
	case errors.Is(err, domain.ErrUserNotFound):
		user, err = authService.Register(ctx, service.RegisterInput{
			Name:     seedName,
			Email:    seedEmail,
			Password: seedPassword,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to create seed user")
		}
		log.Info().Str("email", seedEmail).Msg("Created seed user")
	case err != nil:
		log.Fatal().Err(err).Msg("Failed to look up seed user")
	default:
		log.Info().Str("email", seedEmail).Msg("Seed user exists")
	}

	wishlists, err := wishlistService.GetWishlists(ctx, user.ID)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to list wishlists")
	}
	for _, w := range wishlists {
		if w.Title == seedWishlist {
			log.Info().Msg("Seed wishlist exists, nothing to do")
			return
		}
	}

	description := "Things I'd like someday"
	wishlist, err := wishlistService.CreateWishlist(ctx, user.ID, service.CreateWishlistInput{
		Title:       seedWishlist,
		Description: &description,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create seed wishlist")
	}
	log.Info().Str("wishlist_id", wishlist.ID.String()).Msg("Created seed wishlist")
}
