package services

const (
	KeyGame            = "game:%s"
	KeyGamesRecent     = "games:recent"
	KeyNFT             = "nft:%s"
	KeyOwnerNFTs       = "owner:%s:nfts"
	KeyUser            = "user:%s"
	KeyUsers           = "users"
	KeyLeaderboard     = "leaderboard:score"
	KeyLeaderboardPlay = "leaderboard:plays"
	KeyNFTCount        = "stats:nfts"
	KeyRateLimit       = "ratelimit:%s:%s"
)
