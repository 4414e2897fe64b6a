package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"dice-nft-backend/internal/config"
	"dice-nft-backend/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	collectionGames = "games"
	collectionUsers = "users"
	collectionNFTs  = "nfts"
)

// MongoStore keeps one document per game, user and NFT. The leaderboard is a
// server-side aggregation over the games collection.
type MongoStore struct {
	client *mongo.Client
	games  *mongo.Collection
	users  *mongo.Collection
	nfts   *mongo.Collection
}

func NewMongoStore(ctx context.Context, cfg *config.Config) (*MongoStore, error) {
	connectCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(cfg.MongoURL))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongo: %w", err)
	}
	if err := client.Ping(connectCtx, nil); err != nil {
		client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping mongo: %w", err)
	}

	db := client.Database(cfg.MongoDatabase)
	store := &MongoStore{
		client: client,
		games:  db.Collection(collectionGames),
		users:  db.Collection(collectionUsers),
		nfts:   db.Collection(collectionNFTs),
	}

	if err := store.ensureIndexes(connectCtx); err != nil {
		client.Disconnect(context.Background())
		return nil, err
	}
	return store, nil
}

func (s *MongoStore) ensureIndexes(ctx context.Context) error {
	if _, err := s.games.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "timestamp", Value: -1}}},
	}); err != nil {
		return fmt.Errorf("failed to create game indexes: %w", err)
	}

	if _, err := s.users.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "wallet_address", Value: 1}},
		Options: options.Index().SetUnique(true),
	}); err != nil {
		return fmt.Errorf("failed to create user index: %w", err)
	}

	if _, err := s.nfts.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "owner_address", Value: 1}, {Key: "created_at", Value: -1}},
	}); err != nil {
		return fmt.Errorf("failed to create nft index: %w", err)
	}
	return nil
}

type documentInserter interface {
	InsertOne(ctx context.Context, document interface{}, opts ...*options.InsertOneOptions) (*mongo.InsertOneResult, error)
}

func (s *MongoStore) SaveGame(ctx context.Context, game *models.GameRecord) error {
	return saveGameDocuments(ctx, s.games, s.nfts, game)
}

// saveGameDocuments treats the game document as the record of the play. Once
// it is stored the play has happened, so a failed NFT insert is logged rather
// than reported; stats and the leaderboard read the games collection only.
func saveGameDocuments(ctx context.Context, games, nfts documentInserter, game *models.GameRecord) error {
	if _, err := games.InsertOne(ctx, game); err != nil {
		return fmt.Errorf("failed to save game: %w", err)
	}

	if nft := models.NewNFTRecord(game); nft != nil {
		if _, err := nfts.InsertOne(ctx, nft); err != nil {
			log.Printf("Failed to save NFT for game %s: %v", game.ID, err)
		}
	}
	return nil
}

func (s *MongoStore) GetGame(ctx context.Context, id string) (*models.GameRecord, error) {
	var game models.GameRecord
	err := s.games.FindOne(ctx, bson.M{"id": id}).Decode(&game)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, models.ErrGameNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get game: %w", err)
	}
	return &game, nil
}

func (s *MongoStore) ListGames(ctx context.Context, limit int) ([]*models.GameRecord, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "timestamp", Value: -1}}).
		SetLimit(int64(limit))

	cursor, err := s.games.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list games: %w", err)
	}

	games := make([]*models.GameRecord, 0, limit)
	if err := cursor.All(ctx, &games); err != nil {
		return nil, fmt.Errorf("failed to decode games: %w", err)
	}
	return games, nil
}

func (s *MongoStore) ListNFTs(ctx context.Context, owner string, limit int) ([]*models.NFTRecord, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(int64(limit))

	cursor, err := s.nfts.Find(ctx, bson.M{"owner_address": owner}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list nfts: %w", err)
	}

	nfts := make([]*models.NFTRecord, 0)
	if err := cursor.All(ctx, &nfts); err != nil {
		return nil, fmt.Errorf("failed to decode nfts: %w", err)
	}
	return nfts, nil
}

func (s *MongoStore) UpsertUser(ctx context.Context, walletAddress, username string) (*models.UserProfile, bool, error) {
	user := models.NewUserProfile(walletAddress, username)

	filter := bson.M{"wallet_address": walletAddress}
	update := bson.M{
		"$set": bson.M{"username": username},
		"$setOnInsert": bson.M{
			"id":           user.ID,
			"games_played": 0,
			"total_score":  0,
			"nfts_owned":   0,
		},
	}

	res, err := s.users.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	if err != nil {
		return nil, false, fmt.Errorf("failed to upsert user: %w", err)
	}

	if res.UpsertedCount > 0 {
		return user, true, nil
	}

	existing, err := s.GetUser(ctx, walletAddress)
	if err != nil {
		return nil, false, err
	}
	return existing, false, nil
}

func (s *MongoStore) GetUser(ctx context.Context, walletAddress string) (*models.UserProfile, error) {
	var user models.UserProfile
	err := s.users.FindOne(ctx, bson.M{"wallet_address": walletAddress}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, models.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &user, nil
}

func (s *MongoStore) Leaderboard(ctx context.Context, limit int) ([]models.LeaderboardEntry, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.D{{Key: "player_address", Value: bson.D{{Key: "$ne", Value: nil}}}}}},
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$player_address"},
			{Key: "total_score", Value: bson.D{{Key: "$sum", Value: "$total_score"}}},
			{Key: "games_played", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "total_score", Value: -1}, {Key: "_id", Value: 1}}}},
		{{Key: "$limit", Value: int64(limit)}},
	}

	cursor, err := s.games.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate leaderboard: %w", err)
	}

	entries := make([]models.LeaderboardEntry, 0, limit)
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, fmt.Errorf("failed to decode leaderboard: %w", err)
	}
	return entries, nil
}

func (s *MongoStore) Stats(ctx context.Context) (*models.Stats, error) {
	games, err := s.games.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to count games: %w", err)
	}
	users, err := s.users.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to count users: %w", err)
	}
	nfts, err := s.games.CountDocuments(ctx, bson.M{"nft_generated": true})
	if err != nil {
		return nil, fmt.Errorf("failed to count nfts: %w", err)
	}

	return &models.Stats{
		TotalGames: games,
		TotalUsers: users,
		TotalNFTs:  nfts,
	}, nil
}

func (s *MongoStore) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.client.Disconnect(ctx)
}
