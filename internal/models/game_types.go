package models

import "fmt"

const (
	DefaultNumDice = 2
	MinNumDice     = 1
	MaxNumDice     = 6
)

// PlayRequest is accepted either as query parameters or as a JSON body.
// EncryptedData only arrives through the body.
type PlayRequest struct {
	PlayerAddress string         `json:"player_address" form:"player_address"`
	NumDice       *int           `json:"num_dice" form:"num_dice"`
	GameMode      GameMode       `json:"game_mode" form:"game_mode"`
	EncryptedData map[string]any `json:"encrypted_data" form:"-"`
	EnvironmentID string         `json:"environment_id" form:"environment_id"`
}

// Normalize fills in defaults for fields the client left out.
func (r *PlayRequest) Normalize() {
	if r.NumDice == nil {
		n := DefaultNumDice
		r.NumDice = &n
	}
	if r.GameMode == "" {
		r.GameMode = GameModeStandard
	}
}

func (r *PlayRequest) Dice() int {
	if r.NumDice == nil {
		return DefaultNumDice
	}
	return *r.NumDice
}

func (r *PlayRequest) Validate() error {
	n := r.Dice()
	if n < MinNumDice || n > MaxNumDice {
		return Invalid(fmt.Sprintf("Number of dice must be between %d and %d", MinNumDice, MaxNumDice))
	}

	if r.PlayerAddress != "" && !HasAddressPrefix(r.PlayerAddress) {
		return Invalid("Invalid wallet address format")
	}

	mode := r.GameMode
	if mode == "" {
		mode = GameModeStandard
	}
	if !mode.Valid() {
		return Invalid(fmt.Sprintf("Invalid game mode: %s", r.GameMode))
	}

	return nil
}

type PlayResponse struct {
	Success       bool         `json:"success"`
	GameID        string       `json:"game_id"`
	DiceResults   []int        `json:"dice_results"`
	TotalScore    int          `json:"total_score"`
	NFTGenerated  bool         `json:"nft_generated"`
	NFTMetadata   *NFTMetadata `json:"nft_metadata"`
	Network       string       `json:"network"`
	GameMode      GameMode     `json:"game_mode"`
	FHEEnabled    bool         `json:"fhe_enabled"`
	EnvironmentID *string      `json:"environment_id"`
}

func NewPlayResponse(record *GameRecord) *PlayResponse {
	resp := &PlayResponse{
		Success:      true,
		GameID:       record.ID,
		DiceResults:  record.DiceResults,
		TotalScore:   record.TotalScore,
		NFTGenerated: record.NFTGenerated,
		NFTMetadata:  record.NFTMetadata,
		Network:      record.Network,
		GameMode:     record.GameMode,
		FHEEnabled:   record.GameMode.FHEEnabled(),
	}
	if record.EnvironmentID != "" {
		envID := record.EnvironmentID
		resp.EnvironmentID = &envID
	}
	return resp
}
