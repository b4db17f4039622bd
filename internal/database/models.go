package database

// GameResult is one finished game.
type GameResult struct {
	ID           string         `json:"id"`
	CreatedAt    string         `json:"created_at"`
	WinnerID     string         `json:"winner_id"`
	WinnerName   string         `json:"winner_name"`
	RoundsPlayed int            `json:"rounds_played"`
	Players      []ResultPlayer `json:"players"`
}

// ResultPlayer is a participant's final standing.
type ResultPlayer struct {
	PlayerID   string `json:"player_id"`
	Name       string `json:"name"`
	Lives      int    `json:"lives"`
	Eliminated bool   `json:"eliminated"`
}
