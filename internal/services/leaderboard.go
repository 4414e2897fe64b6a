package services

import (
	"sort"

	"dice-nft-backend/internal/models"
)

// aggregateLeaderboard groups games by player address in memory for stores
// without a native aggregation. Anonymous games are skipped.
func aggregateLeaderboard(games []*models.GameRecord, limit int) []models.LeaderboardEntry {
	byPlayer := make(map[string]*models.LeaderboardEntry)
	for _, g := range games {
		if g.Anonymous() {
			continue
		}
		entry, ok := byPlayer[g.PlayerAddress]
		if !ok {
			entry = &models.LeaderboardEntry{PlayerAddress: g.PlayerAddress}
			byPlayer[g.PlayerAddress] = entry
		}
		entry.TotalScore += g.TotalScore
		entry.GamesPlayed++
	}

	entries := make([]models.LeaderboardEntry, 0, len(byPlayer))
	for _, e := range byPlayer {
		entries = append(entries, *e)
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].TotalScore != entries[j].TotalScore {
			return entries[i].TotalScore > entries[j].TotalScore
		}
		return entries[i].PlayerAddress < entries[j].PlayerAddress
	})

	if len(entries) > limit {
		entries = entries[:limit]
	}
	return entries
}
