package services

import (
	"fmt"
	"slices"

	"dice-nft-backend/internal/models"
)

type RewardConfig struct {
	ImageBaseURL string
	Creator      string
	Twitter      string
	Network      string
}

var DefaultRewardConfig = RewardConfig{
	ImageBaseURL: "https://api.dicenft.game/images",
	Creator:      "dropxtor",
	Twitter:      "@0xDropxtor",
	Network:      "sepolia",
}

// RewardGenerator builds NFT metadata for a roll. It holds no mutable state,
// so equal inputs always produce equal documents.
type RewardGenerator struct {
	cfg RewardConfig
}

func NewRewardGenerator(cfg RewardConfig) *RewardGenerator {
	return &RewardGenerator{cfg: cfg}
}

func (g *RewardGenerator) Generate(dice []int, owner string, mode models.GameMode) *models.NFTMetadata {
	rarity := DetermineRarity(dice, mode)
	fhe := mode.FHEEnabled()
	faces := models.JoinDice(dice)

	namePrefix, wording, imagePrefix, poweredBy := "", "", "std", "Standard RNG"
	if fhe {
		namePrefix, wording, imagePrefix, poweredBy = "🔐 FHE ", "privacy-preserving ", "fhe", "Zama FHE"
	}

	return &models.NFTMetadata{
		Name:        fmt.Sprintf("%sDice NFT #%s", namePrefix, faces),
		Description: fmt.Sprintf("A %sunique NFT generated from dice roll: %s. Rarity: %s", wording, models.FormatDice(dice), rarity),
		Image:       fmt.Sprintf("%s/%s-%s.png", g.cfg.ImageBaseURL, imagePrefix, faces),
		Attributes: models.NFTAttributes{
			DiceCombination: slices.Clone(dice),
			TotalScore:      SumDice(dice),
			Rarity:          rarity,
			SpecialCombo:    AllSame(dice),
			Creator:         g.cfg.Creator,
			Network:         g.cfg.Network,
			GameMode:        mode,
			FHEEnabled:      fhe,
		},
		Creator:   g.cfg.Creator,
		Twitter:   g.cfg.Twitter,
		PoweredBy: poweredBy,
	}
}
