package models

import "time"

type Rarity string

const (
	RarityCommon    Rarity = "Common"
	RarityUncommon  Rarity = "Uncommon"
	RarityRare      Rarity = "Rare"
	RarityEpic      Rarity = "Epic"
	RarityLegendary Rarity = "Legendary"
)

var Rarities = []Rarity{RarityCommon, RarityUncommon, RarityRare, RarityEpic, RarityLegendary}

type NFTAttributes struct {
	DiceCombination []int    `json:"dice_combination" bson:"dice_combination"`
	TotalScore      int      `json:"total_score" bson:"total_score"` // plain sum, no bonus
	Rarity          Rarity   `json:"rarity" bson:"rarity"`
	SpecialCombo    bool     `json:"special_combo" bson:"special_combo"`
	Creator         string   `json:"creator" bson:"creator"`
	Network         string   `json:"network" bson:"network"`
	GameMode        GameMode `json:"game_mode" bson:"game_mode"`
	FHEEnabled      bool     `json:"fhe_enabled" bson:"fhe_enabled"`
}

type NFTMetadata struct {
	Name        string        `json:"name" bson:"name"`
	Description string        `json:"description" bson:"description"`
	Image       string        `json:"image" bson:"image"`
	Attributes  NFTAttributes `json:"attributes" bson:"attributes"`
	Creator     string        `json:"creator" bson:"creator"`
	Twitter     string        `json:"twitter" bson:"twitter"`
	PoweredBy   string        `json:"powered_by" bson:"powered_by"`
}

// NFTRecord is the owner-indexed copy of the metadata issued with a game.
type NFTRecord struct {
	ID              string        `json:"id" bson:"id"`
	OwnerAddress    string        `json:"owner_address" bson:"owner_address"`
	GameID          string        `json:"game_id" bson:"game_id"`
	DiceCombination []int         `json:"dice_combination" bson:"dice_combination"`
	Rarity          Rarity        `json:"rarity" bson:"rarity"`
	ImageURL        string        `json:"image_url" bson:"image_url"`
	Attributes      NFTAttributes `json:"attributes" bson:"attributes"`
	CreatedAt       time.Time     `json:"created_at" bson:"created_at"`
}

// NewNFTRecord returns nil for games that issued no reward.
func NewNFTRecord(game *GameRecord) *NFTRecord {
	if !game.NFTGenerated || game.NFTMetadata == nil {
		return nil
	}
	return &NFTRecord{
		ID:              GenerateID(),
		OwnerAddress:    game.PlayerAddress,
		GameID:          game.ID,
		DiceCombination: game.DiceResults,
		Rarity:          game.NFTMetadata.Attributes.Rarity,
		ImageURL:        game.NFTMetadata.Image,
		Attributes:      game.NFTMetadata.Attributes,
		CreatedAt:       game.Timestamp,
	}
}
