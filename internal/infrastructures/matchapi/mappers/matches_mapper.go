package mappers

import (
	"github.com/michaelvbend/ajax-scraper/internal/domain/models"
	"github.com/michaelvbend/ajax-scraper/internal/infrastructures/matchapi/dto"
)

func ToReplaceMatchesRequest(payload models.NotificationPayload) dto.ReplaceMatchesRequest {
	matches := make([]dto.Match, 0, len(payload.Matches))
	for _, m := range payload.Matches {
		matches = append(matches, dto.Match{
			HomeTeam:  m.HomeTeam,
			AwayTeam:  m.AwayTeam,
			SoldOut:   m.SoldOut,
			MatchLink: m.MatchLink,
		})
	}

	return dto.ReplaceMatchesRequest{Matches: matches}
}
