package services_test

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"dice-nft-backend/internal/config"
	"dice-nft-backend/internal/models"
	"dice-nft-backend/internal/services"
)

func newGame(player string, dice []int, at time.Time) *models.GameRecord {
	game := &models.GameRecord{
		ID:            models.GenerateID(),
		PlayerAddress: player,
		DiceResults:   dice,
		TotalScore:    services.CalculateScore(dice),
		Timestamp:     at,
		Network:       "sepolia",
		GameMode:      models.GameModeStandard,
	}
	if player != "" {
		game.NFTGenerated = true
		game.NFTMetadata = services.NewRewardGenerator(services.DefaultRewardConfig).
			Generate(dice, player, models.GameModeStandard)
	}
	return game
}

// testStore runs the behaviour every Store implementation must share.
func testStore(t *testing.T, store services.Store) {
	ctx := context.Background()
	base := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

	alice := "0x1111111111111111111111111111111111111111"
	bob := "0x2222222222222222222222222222222222222222"

	g1 := newGame(alice, []int{3, 3}, base)                       // 12
	g2 := newGame("", []int{2, 3, 4}, base.Add(time.Second))      // 19, anonymous
	g3 := newGame(bob, []int{6, 6}, base.Add(2*time.Second))      // 24
	g4 := newGame(alice, []int{1, 5}, base.Add(3*time.Second))    // 6
	g5 := newGame(alice, []int{5, 6, 1}, base.Add(4*time.Second)) // 12

	for _, g := range []*models.GameRecord{g1, g2, g3, g4, g5} {
		if err := store.SaveGame(ctx, g); err != nil {
			t.Fatalf("Failed to save game: %v", err)
		}
	}

	got, err := store.GetGame(ctx, g3.ID)
	if err != nil {
		t.Fatalf("Failed to get game: %v", err)
	}
	if got.ID != g3.ID || got.TotalScore != 24 || got.PlayerAddress != bob {
		t.Errorf("Game mismatch: %+v", got)
	}
	if got.NFTMetadata == nil || got.NFTMetadata.Attributes.Rarity != models.RarityEpic {
		t.Errorf("NFT metadata not persisted: %+v", got.NFTMetadata)
	}
	if !got.Timestamp.Equal(g3.Timestamp) {
		t.Errorf("Timestamp mismatch: %s vs %s", got.Timestamp, g3.Timestamp)
	}

	if _, err := store.GetGame(ctx, "missing"); !errors.Is(err, models.ErrGameNotFound) {
		t.Errorf("Expected ErrGameNotFound, got %v", err)
	}

	games, err := store.ListGames(ctx, 3)
	if err != nil {
		t.Fatalf("Failed to list games: %v", err)
	}
	if len(games) != 3 {
		t.Fatalf("Expected 3 games, got %d", len(games))
	}
	for i, want := range []string{g5.ID, g4.ID, g3.ID} {
		if games[i].ID != want {
			t.Errorf("Games not newest first at %d: got %s want %s", i, games[i].ID, want)
		}
	}

	nfts, err := store.ListNFTs(ctx, alice, 10)
	if err != nil {
		t.Fatalf("Failed to list nfts: %v", err)
	}
	if len(nfts) != 3 {
		t.Fatalf("Expected 3 NFTs for alice, got %d", len(nfts))
	}
	if nfts[0].GameID != g5.ID {
		t.Errorf("NFTs not newest first: %s", nfts[0].GameID)
	}

	board, err := store.Leaderboard(ctx, 10)
	if err != nil {
		t.Fatalf("Failed to read leaderboard: %v", err)
	}
	if len(board) != 2 {
		t.Fatalf("Anonymous games must be excluded, got %+v", board)
	}
	if board[0].PlayerAddress != alice || board[0].TotalScore != 30 || board[0].GamesPlayed != 3 {
		t.Errorf("Unexpected leader: %+v", board[0])
	}
	if board[1].PlayerAddress != bob || board[1].TotalScore != 24 || board[1].GamesPlayed != 1 {
		t.Errorf("Unexpected runner-up: %+v", board[1])
	}

	board, err = store.Leaderboard(ctx, 1)
	if err != nil || len(board) != 1 {
		t.Errorf("Leaderboard limit not applied: %+v, %v", board, err)
	}

	user, created, err := store.UpsertUser(ctx, alice, "alice")
	if err != nil {
		t.Fatalf("Failed to create user: %v", err)
	}
	if !created || user.Username != "alice" || user.ID == "" {
		t.Errorf("Unexpected created user: %+v (created=%v)", user, created)
	}

	renamed, created, err := store.UpsertUser(ctx, alice, "alice2")
	if err != nil {
		t.Fatalf("Failed to update user: %v", err)
	}
	if created || renamed.Username != "alice2" || renamed.ID != user.ID {
		t.Errorf("Update should keep the id and rename: %+v (created=%v)", renamed, created)
	}

	fetched, err := store.GetUser(ctx, alice)
	if err != nil {
		t.Fatalf("Failed to get user: %v", err)
	}
	if fetched.Username != "alice2" || fetched.GamesPlayed != 0 {
		t.Errorf("Unexpected stored user: %+v", fetched)
	}

	if _, err := store.GetUser(ctx, bob); !errors.Is(err, models.ErrUserNotFound) {
		t.Errorf("Expected ErrUserNotFound, got %v", err)
	}

	stats, err := store.Stats(ctx)
	if err != nil {
		t.Fatalf("Failed to read stats: %v", err)
	}
	if stats.TotalGames != 5 || stats.TotalUsers != 1 || stats.TotalNFTs != 4 {
		t.Errorf("Unexpected stats: %+v", stats)
	}
}

func TestMemoryStore(t *testing.T) {
	store := services.NewMemoryStore()
	defer store.Close()

	testStore(t, store)
}

func TestRedisStore(t *testing.T) {
	mr := miniredis.RunT(t)
	store := services.NewRedisStore(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	defer store.Close()

	testStore(t, store)
}

func TestRedisStoreIndexesUserOnUpdate(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	store := services.NewRedisStore(client)
	defer store.Close()

	wallet := "0x3333333333333333333333333333333333333333"
	if _, _, err := store.UpsertUser(ctx, wallet, "carol"); err != nil {
		t.Fatalf("Failed to create user: %v", err)
	}

	// a profile whose index entry was lost
	mr.SRem(services.KeyUsers, wallet)

	user, created, err := store.UpsertUser(ctx, wallet, "caroline")
	if err != nil {
		t.Fatalf("Failed to update user: %v", err)
	}
	if created || user.Username != "caroline" {
		t.Errorf("Expected update to caroline, got created=%v user=%+v", created, user)
	}

	stats, err := store.Stats(ctx)
	if err != nil {
		t.Fatalf("Failed to get stats: %v", err)
	}
	if stats.TotalUsers != 1 {
		t.Errorf("Expected 1 user, got %d", stats.TotalUsers)
	}
}

func TestMongoStore(t *testing.T) {
	url := os.Getenv("MONGO_TEST_URL")
	if url == "" {
		t.Skip("MONGO_TEST_URL not set")
	}

	cfg := &config.Config{
		MongoURL:      url,
		MongoDatabase: "dice_test_" + models.GenerateID()[:8],
	}

	store, err := services.NewMongoStore(context.Background(), cfg)
	if err != nil {
		t.Skipf("Mongo not available: %v", err)
	}
	defer store.Close()

	testStore(t, store)
}
