package services

import (
	"context"
	"sort"
	"sync"

	"dice-nft-backend/internal/models"
)

// MemoryStore keeps everything in process memory. It backs local development
// (STORE_BACKEND=memory) and the handler tests.
type MemoryStore struct {
	mu    sync.RWMutex
	games []*models.GameRecord
	byID  map[string]*models.GameRecord
	nfts  []*models.NFTRecord
	users map[string]*models.UserProfile
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		byID:  make(map[string]*models.GameRecord),
		users: make(map[string]*models.UserProfile),
	}
}

func (s *MemoryStore) SaveGame(ctx context.Context, game *models.GameRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.games = append(s.games, game)
	s.byID[game.ID] = game
	if nft := models.NewNFTRecord(game); nft != nil {
		s.nfts = append(s.nfts, nft)
	}
	return nil
}

func (s *MemoryStore) GetGame(ctx context.Context, id string) (*models.GameRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	game, ok := s.byID[id]
	if !ok {
		return nil, models.ErrGameNotFound
	}
	return game, nil
}

func (s *MemoryStore) ListGames(ctx context.Context, limit int) ([]*models.GameRecord, error) {
	s.mu.RLock()
	games := make([]*models.GameRecord, len(s.games))
	copy(games, s.games)
	s.mu.RUnlock()

	sort.SliceStable(games, func(i, j int) bool {
		return games[i].Timestamp.After(games[j].Timestamp)
	})

	if len(games) > limit {
		games = games[:limit]
	}
	return games, nil
}

func (s *MemoryStore) ListNFTs(ctx context.Context, owner string, limit int) ([]*models.NFTRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	nfts := make([]*models.NFTRecord, 0)
	for i := len(s.nfts) - 1; i >= 0 && len(nfts) < limit; i-- {
		if s.nfts[i].OwnerAddress == owner {
			nfts = append(nfts, s.nfts[i])
		}
	}
	return nfts, nil
}

func (s *MemoryStore) UpsertUser(ctx context.Context, walletAddress, username string) (*models.UserProfile, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, ok := s.users[walletAddress]; ok {
		updated := *existing
		updated.Username = username
		s.users[walletAddress] = &updated
		return &updated, false, nil
	}

	user := models.NewUserProfile(walletAddress, username)
	s.users[walletAddress] = user
	created := *user
	return &created, true, nil
}

func (s *MemoryStore) GetUser(ctx context.Context, walletAddress string) (*models.UserProfile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.users[walletAddress]
	if !ok {
		return nil, models.ErrUserNotFound
	}
	out := *user
	return &out, nil
}

func (s *MemoryStore) Leaderboard(ctx context.Context, limit int) ([]models.LeaderboardEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return aggregateLeaderboard(s.games, limit), nil
}

func (s *MemoryStore) Stats(ctx context.Context) (*models.Stats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := &models.Stats{
		TotalGames: int64(len(s.games)),
		TotalUsers: int64(len(s.users)),
	}
	for _, g := range s.games {
		if g.NFTGenerated {
			stats.TotalNFTs++
		}
	}
	return stats, nil
}

func (s *MemoryStore) Close() error {
	return nil
}
