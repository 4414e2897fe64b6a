package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"dice-nft-backend/internal/models"
)

type GameService struct {
	store       Store
	roller      Roller
	rewards     *RewardGenerator
	broadcaster Broadcaster
	network     string
	now         func() time.Time
}

type GameServiceOption func(*GameService)

func WithRoller(r Roller) GameServiceOption {
	return func(s *GameService) { s.roller = r }
}

func WithBroadcaster(b Broadcaster) GameServiceOption {
	return func(s *GameService) { s.broadcaster = b }
}

func WithClock(now func() time.Time) GameServiceOption {
	return func(s *GameService) { s.now = now }
}

func NewGameService(store Store, rewards *RewardGenerator, network string, opts ...GameServiceOption) *GameService {
	s := &GameService{
		store:       store,
		roller:      NewRandomRoller(),
		rewards:     rewards,
		broadcaster: noopBroadcaster{},
		network:     network,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Play validates the request, rolls, scores, attaches a reward when an owner
// is given and persists the result. Validation failures are returned as
// *models.ValidationError before anything is rolled or written.
func (s *GameService) Play(ctx context.Context, req *models.PlayRequest) (*models.PlayResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	req.Normalize()

	numDice := req.Dice()

	var dice []int
	if req.GameMode == models.GameModeFHE && len(req.EncryptedData) > 0 {
		// The payload is not decrypted; the roll is produced locally.
		log.Printf("Processing FHE game with environment ID: %s", req.EnvironmentID)
		dice = s.roller.Roll(numDice)
		log.Printf("FHE encrypted dice data received: %d bytes, generated dice results: %v",
			encryptedPayloadSize(req.EncryptedData), dice)
	} else {
		dice = s.roller.Roll(numDice)
	}

	record := &models.GameRecord{
		ID:            models.GenerateID(),
		PlayerAddress: req.PlayerAddress,
		DiceResults:   dice,
		TotalScore:    CalculateScore(dice),
		Timestamp:     s.now().UTC(),
		Network:       s.network,
		GameMode:      req.GameMode,
		EnvironmentID: req.EnvironmentID,
	}

	if req.PlayerAddress != "" {
		record.NFTMetadata = s.rewards.Generate(dice, req.PlayerAddress, req.GameMode)
		record.NFTGenerated = true
	}

	if len(req.EncryptedData) > 0 {
		record.FHEData = &models.FHEData{Encrypted: true}
	}

	if err := s.store.SaveGame(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to persist game %s: %w", record.ID, err)
	}

	s.broadcaster.BroadcastGamePlayed(record)

	return models.NewPlayResponse(record), nil
}

func (s *GameService) GetGame(ctx context.Context, id string) (*models.GameRecord, error) {
	return s.store.GetGame(ctx, id)
}

func (s *GameService) ListGames(ctx context.Context, limit int) ([]*models.GameRecord, error) {
	return s.store.ListGames(ctx, models.ClampLimit(limit))
}

func (s *GameService) ListNFTs(ctx context.Context, owner string, limit int) ([]*models.NFTRecord, error) {
	return s.store.ListNFTs(ctx, owner, models.ClampLimit(limit))
}

func (s *GameService) Leaderboard(ctx context.Context, limit int) ([]models.LeaderboardEntry, error) {
	return s.store.Leaderboard(ctx, models.ClampLimit(limit))
}

func (s *GameService) Stats(ctx context.Context) (*models.Stats, error) {
	stats, err := s.store.Stats(ctx)
	if err != nil {
		return nil, err
	}
	stats.Network = s.network
	return stats, nil
}

// encryptedPayloadSize reports the length of the "dice1" ciphertext when the
// client sent one, which is all that gets logged about the payload.
func encryptedPayloadSize(payload map[string]any) int {
	switch v := payload["dice1"].(type) {
	case []any:
		return len(v)
	case string:
		return len(v)
	default:
		return 0
	}
}
