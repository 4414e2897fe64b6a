package models

type LeaderboardEntry struct {
	PlayerAddress string `json:"player_address" bson:"_id"`
	TotalScore    int    `json:"total_score" bson:"total_score"`
	GamesPlayed   int    `json:"games_played" bson:"games_played"`
}

type Stats struct {
	TotalGames int64  `json:"total_games"`
	TotalUsers int64  `json:"total_users"`
	TotalNFTs  int64  `json:"total_nfts"`
	Network    string `json:"network"`
}
