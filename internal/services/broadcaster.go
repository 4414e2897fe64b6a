package services

import "dice-nft-backend/internal/models"

type Broadcaster interface {
	BroadcastGamePlayed(game *models.GameRecord)
}

type noopBroadcaster struct{}

func (noopBroadcaster) BroadcastGamePlayed(*models.GameRecord) {}
