package models

import (
	"fmt"
	"unicode/utf8"
)

const (
	MinUsernameLength = 3
	MaxUsernameLength = 20
)

type UserProfile struct {
	ID            string `json:"id" bson:"id"`
	WalletAddress string `json:"wallet_address" bson:"wallet_address"`
	Username      string `json:"username" bson:"username"`
	GamesPlayed   int    `json:"games_played" bson:"games_played"`
	TotalScore    int    `json:"total_score" bson:"total_score"`
	NFTsOwned     int    `json:"nfts_owned" bson:"nfts_owned"`
}

func NewUserProfile(walletAddress, username string) *UserProfile {
	return &UserProfile{
		ID:            GenerateID(),
		WalletAddress: walletAddress,
		Username:      username,
	}
}

type UserRequest struct {
	WalletAddress string `json:"wallet_address" form:"wallet_address"`
	Username      string `json:"username" form:"username"`
}

func (r *UserRequest) Validate() error {
	if err := ValidateWalletAddress(r.WalletAddress); err != nil {
		return err
	}

	n := utf8.RuneCountInString(r.Username)
	if n < MinUsernameLength || n > MaxUsernameLength {
		return Invalid(fmt.Sprintf("Username must be between %d and %d characters",
			MinUsernameLength, MaxUsernameLength))
	}

	return nil
}

type UserResponse struct {
	Success bool         `json:"success"`
	Message string       `json:"message"`
	User    *UserProfile `json:"user"`
}
