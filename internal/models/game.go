package models

import "time"

type GameMode string

const (
	GameModeStandard GameMode = "standard"
	GameModeFHE      GameMode = "fhe"
)

func (m GameMode) Valid() bool {
	return m == GameModeStandard || m == GameModeFHE
}

func (m GameMode) FHEEnabled() bool {
	return m == GameModeFHE
}

// FHEData marks a play that arrived with an encrypted payload. The payload
// itself is never stored.
type FHEData struct {
	Encrypted bool `json:"encrypted" bson:"encrypted"`
}

// GameRecord is written once per play and never mutated.
type GameRecord struct {
	ID            string       `json:"id" bson:"id"`
	PlayerAddress string       `json:"player_address,omitempty" bson:"player_address,omitempty"`
	DiceResults   []int        `json:"dice_results" bson:"dice_results"`
	TotalScore    int          `json:"total_score" bson:"total_score"`
	Timestamp     time.Time    `json:"timestamp" bson:"timestamp"`
	Network       string       `json:"network" bson:"network"`
	NFTGenerated  bool         `json:"nft_generated" bson:"nft_generated"`
	NFTMetadata   *NFTMetadata `json:"nft_metadata,omitempty" bson:"nft_metadata,omitempty"`
	GameMode      GameMode     `json:"game_mode" bson:"game_mode"`
	EnvironmentID string       `json:"environment_id,omitempty" bson:"environment_id,omitempty"`
	FHEData       *FHEData     `json:"fhe_data,omitempty" bson:"fhe_data,omitempty"`
}

func (g *GameRecord) Anonymous() bool {
	return g.PlayerAddress == ""
}
