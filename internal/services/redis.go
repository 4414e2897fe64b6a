package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"dice-nft-backend/internal/config"
	"dice-nft-backend/internal/models"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps games, NFTs and users as JSON documents. A sorted set keyed
// by timestamp gives newest-first listing and a second one keeps the
// leaderboard up to date on every write.
type RedisStore struct {
	client *redis.Client
}

func NewRedisClient(cfg *config.Config) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.RedisURL,
		Password:     cfg.RedisPass,
		DB:           cfg.RedisDB,
		DialTimeout:  3 * time.Second,
		ReadTimeout:  2 * time.Second,
		WriteTimeout: 2 * time.Second,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return client, nil
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) SaveGame(ctx context.Context, game *models.GameRecord) error {
	data, err := json.Marshal(game)
	if err != nil {
		return fmt.Errorf("failed to marshal game: %w", err)
	}

	pipe := s.client.TxPipeline()
	pipe.Set(ctx, fmt.Sprintf(KeyGame, game.ID), data, 0)
	pipe.ZAdd(ctx, KeyGamesRecent, redis.Z{
		Score:  float64(game.Timestamp.UnixMilli()),
		Member: game.ID,
	})

	if !game.Anonymous() {
		pipe.ZIncrBy(ctx, KeyLeaderboard, float64(game.TotalScore), game.PlayerAddress)
		pipe.HIncrBy(ctx, KeyLeaderboardPlay, game.PlayerAddress, 1)
	}

	if nft := models.NewNFTRecord(game); nft != nil {
		nftData, err := json.Marshal(nft)
		if err != nil {
			return fmt.Errorf("failed to marshal nft: %w", err)
		}
		pipe.Set(ctx, fmt.Sprintf(KeyNFT, nft.ID), nftData, 0)
		pipe.ZAdd(ctx, fmt.Sprintf(KeyOwnerNFTs, nft.OwnerAddress), redis.Z{
			Score:  float64(nft.CreatedAt.UnixMilli()),
			Member: nft.ID,
		})
		pipe.Incr(ctx, KeyNFTCount)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save game: %w", err)
	}
	return nil
}

func (s *RedisStore) GetGame(ctx context.Context, id string) (*models.GameRecord, error) {
	data, err := s.client.Get(ctx, fmt.Sprintf(KeyGame, id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, models.ErrGameNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get game: %w", err)
	}

	var game models.GameRecord
	if err := json.Unmarshal(data, &game); err != nil {
		return nil, fmt.Errorf("failed to unmarshal game: %w", err)
	}
	return &game, nil
}

func (s *RedisStore) ListGames(ctx context.Context, limit int) ([]*models.GameRecord, error) {
	ids, err := s.client.ZRevRange(ctx, KeyGamesRecent, 0, int64(limit-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get game IDs: %w", err)
	}

	games := make([]*models.GameRecord, 0, len(ids))
	err = s.bulkGet(ctx, KeyGame, ids, func(data []byte) error {
		var game models.GameRecord
		if err := json.Unmarshal(data, &game); err != nil {
			return err
		}
		games = append(games, &game)
		return nil
	})
	return games, err
}

func (s *RedisStore) ListNFTs(ctx context.Context, owner string, limit int) ([]*models.NFTRecord, error) {
	ids, err := s.client.ZRevRange(ctx, fmt.Sprintf(KeyOwnerNFTs, owner), 0, int64(limit-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get nft IDs: %w", err)
	}

	nfts := make([]*models.NFTRecord, 0, len(ids))
	err = s.bulkGet(ctx, KeyNFT, ids, func(data []byte) error {
		var nft models.NFTRecord
		if err := json.Unmarshal(data, &nft); err != nil {
			return err
		}
		nfts = append(nfts, &nft)
		return nil
	})
	return nfts, err
}

// bulkGet loads documents for ids in one pipeline, preserving order. Missing
// keys are skipped.
func (s *RedisStore) bulkGet(ctx context.Context, keyFormat string, ids []string, decode func([]byte) error) error {
	if len(ids) == 0 {
		return nil
	}

	pipe := s.client.Pipeline()
	cmds := make([]*redis.StringCmd, len(ids))
	for i, id := range ids {
		cmds[i] = pipe.Get(ctx, fmt.Sprintf(keyFormat, id))
	}

	if _, err := pipe.Exec(ctx); err != nil && !errors.Is(err, redis.Nil) {
		return fmt.Errorf("pipeline execution failed: %w", err)
	}

	for _, cmd := range cmds {
		data, err := cmd.Bytes()
		if errors.Is(err, redis.Nil) {
			continue
		}
		if err != nil {
			return fmt.Errorf("failed to load document: %w", err)
		}
		if err := decode(data); err != nil {
			return fmt.Errorf("failed to unmarshal document: %w", err)
		}
	}
	return nil
}

func (s *RedisStore) UpsertUser(ctx context.Context, walletAddress, username string) (*models.UserProfile, bool, error) {
	key := fmt.Sprintf(KeyUser, walletAddress)

	user := models.NewUserProfile(walletAddress, username)
	data, err := json.Marshal(user)
	if err != nil {
		return nil, false, fmt.Errorf("failed to marshal user: %w", err)
	}

	created, err := s.client.SetNX(ctx, key, data, 0).Result()
	if err != nil {
		return nil, false, fmt.Errorf("failed to create user: %w", err)
	}
	if created {
		if err := s.client.SAdd(ctx, KeyUsers, walletAddress).Err(); err != nil {
			return nil, false, fmt.Errorf("failed to index user: %w", err)
		}
		return user, true, nil
	}

	existing, err := s.GetUser(ctx, walletAddress)
	if err != nil {
		return nil, false, err
	}
	existing.Username = username

	data, err = json.Marshal(existing)
	if err != nil {
		return nil, false, fmt.Errorf("failed to marshal user: %w", err)
	}
	// SAdd again so a user whose first indexing failed is still counted.
	pipe := s.client.TxPipeline()
	pipe.Set(ctx, key, data, 0)
	pipe.SAdd(ctx, KeyUsers, walletAddress)
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, false, fmt.Errorf("failed to update user: %w", err)
	}
	return existing, false, nil
}

func (s *RedisStore) GetUser(ctx context.Context, walletAddress string) (*models.UserProfile, error) {
	data, err := s.client.Get(ctx, fmt.Sprintf(KeyUser, walletAddress)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, models.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	var user models.UserProfile
	if err := json.Unmarshal(data, &user); err != nil {
		return nil, fmt.Errorf("failed to unmarshal user: %w", err)
	}
	return &user, nil
}

func (s *RedisStore) Leaderboard(ctx context.Context, limit int) ([]models.LeaderboardEntry, error) {
	top, err := s.client.ZRevRangeWithScores(ctx, KeyLeaderboard, 0, int64(limit-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read leaderboard: %w", err)
	}

	entries := make([]models.LeaderboardEntry, 0, len(top))
	if len(top) == 0 {
		return entries, nil
	}

	players := make([]string, len(top))
	for i, z := range top {
		players[i] = z.Member.(string)
	}

	plays, err := s.client.HMGet(ctx, KeyLeaderboardPlay, players...).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read play counts: %w", err)
	}

	for i, z := range top {
		entry := models.LeaderboardEntry{
			PlayerAddress: players[i],
			TotalScore:    int(z.Score),
		}
		if raw, ok := plays[i].(string); ok {
			entry.GamesPlayed, _ = strconv.Atoi(raw)
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

func (s *RedisStore) Stats(ctx context.Context) (*models.Stats, error) {
	pipe := s.client.Pipeline()
	games := pipe.ZCard(ctx, KeyGamesRecent)
	users := pipe.SCard(ctx, KeyUsers)
	nfts := pipe.Get(ctx, KeyNFTCount)

	if _, err := pipe.Exec(ctx); err != nil && !errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("failed to read stats: %w", err)
	}

	stats := &models.Stats{
		TotalGames: games.Val(),
		TotalUsers: users.Val(),
	}
	if n, err := nfts.Int64(); err == nil {
		stats.TotalNFTs = n
	}
	return stats, nil
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}
