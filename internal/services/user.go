package services

import (
	"context"

	"dice-nft-backend/internal/models"
)

type UserService struct {
	store Store
}

func NewUserService(store Store) *UserService {
	return &UserService{store: store}
}

// Register creates a profile for a new wallet or renames an existing one.
func (s *UserService) Register(ctx context.Context, req *models.UserRequest) (*models.UserProfile, bool, error) {
	if err := req.Validate(); err != nil {
		return nil, false, err
	}
	return s.store.UpsertUser(ctx, req.WalletAddress, req.Username)
}

func (s *UserService) Get(ctx context.Context, walletAddress string) (*models.UserProfile, error) {
	return s.store.GetUser(ctx, walletAddress)
}
