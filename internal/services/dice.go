package services

import (
	"math/rand/v2"
	"slices"

	"dice-nft-backend/internal/models"
)

const dieFaces = 6

// Roller produces die faces. Implementations must be safe for concurrent use.
type Roller interface {
	Roll(count int) []int
}

// RandomRoller draws faces from math/rand/v2. Rolls are cosmetic, so no
// cryptographic source is used.
type RandomRoller struct{}

func NewRandomRoller() *RandomRoller {
	return &RandomRoller{}
}

// Roll returns count faces, or DefaultNumDice faces when count is below one.
// No upper bound is applied here.
func (RandomRoller) Roll(count int) []int {
	if count < 1 {
		count = models.DefaultNumDice
	}

	dice := make([]int, count)
	for i := range dice {
		dice[i] = rand.IntN(dieFaces) + 1
	}
	return dice
}

func SumDice(dice []int) int {
	total := 0
	for _, d := range dice {
		total += d
	}
	return total
}

// AllSame reports whether every face matches. A single die counts.
func AllSame(dice []int) bool {
	if len(dice) == 0 {
		return false
	}
	for _, d := range dice[1:] {
		if d != dice[0] {
			return false
		}
	}
	return true
}

// IsStraight reports whether the sorted faces form a consecutive run without
// duplicates.
func IsStraight(dice []int) bool {
	if len(dice) == 0 {
		return false
	}
	sorted := slices.Clone(dice)
	slices.Sort(sorted)
	for i := 1; i < len(sorted); i++ {
		if sorted[i] != sorted[i-1]+1 {
			return false
		}
	}
	return true
}

// CalculateScore doubles matching sets and adds 10 for straights. Matching
// sets are checked first.
func CalculateScore(dice []int) int {
	total := SumDice(dice)

	switch {
	case AllSame(dice):
		return total * 2
	case IsStraight(dice):
		return total + 10
	default:
		return total
	}
}

// DetermineRarity works from the plain sum, never the bonus-adjusted score.
func DetermineRarity(dice []int, mode models.GameMode) models.Rarity {
	fhe := mode == models.GameModeFHE
	sum := SumDice(dice)

	switch {
	case AllSame(dice):
		if fhe {
			return models.RarityLegendary
		}
		return models.RarityEpic
	case sum >= 10:
		if fhe {
			return models.RarityRare
		}
		return models.RarityUncommon
	case sum >= 7:
		if fhe {
			return models.RarityUncommon
		}
		return models.RarityCommon
	default:
		return models.RarityCommon
	}
}
