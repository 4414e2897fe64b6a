package services

import (
	"context"

	"dice-nft-backend/internal/models"
)

// Store is the document store behind the game and user services.
// Lookups of unknown ids return models.ErrGameNotFound or models.ErrUserNotFound.
type Store interface {
	// SaveGame appends a game and, when it issued a reward, its NFT record.
	SaveGame(ctx context.Context, game *models.GameRecord) error
	GetGame(ctx context.Context, id string) (*models.GameRecord, error)
	ListGames(ctx context.Context, limit int) ([]*models.GameRecord, error)
	ListNFTs(ctx context.Context, owner string, limit int) ([]*models.NFTRecord, error)

	// UpsertUser creates a profile or renames an existing one. Counters are
	// left untouched. The bool reports whether a profile was created.
	UpsertUser(ctx context.Context, walletAddress, username string) (*models.UserProfile, bool, error)
	GetUser(ctx context.Context, walletAddress string) (*models.UserProfile, error)

	Leaderboard(ctx context.Context, limit int) ([]models.LeaderboardEntry, error)
	Stats(ctx context.Context) (*models.Stats, error)

	Close() error
}
