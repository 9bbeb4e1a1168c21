package dto

type ReplaceMatchesRequest struct {
	Matches []Match `json:"matches"`
}

type Match struct {
	HomeTeam  string  `json:"homeTeam"`
	AwayTeam  string  `json:"awayTeam"`
	SoldOut   bool    `json:"soldOut"`
	MatchLink *string `json:"matchLink"`
}
