package service

import (
	"fmt"
	"strings"

	derr "github.com/michaelvbend/ajax-scraper/internal/domain/errors"
	"github.com/michaelvbend/ajax-scraper/internal/domain/models"
)

const fixtureSeparator = " - "

// PayloadBuilder turns scraped records into the API payload. Overrides force
// the sold-out flag for fixtures whose away team is listed.
type PayloadBuilder struct {
	overrides map[string]bool
}

func NewPayloadBuilder(overrides map[string]bool) *PayloadBuilder {
	copied := make(map[string]bool, len(overrides))
	for team, soldOut := range overrides {
		copied[strings.TrimSpace(team)] = soldOut
	}
	return &PayloadBuilder{overrides: copied}
}

func (b *PayloadBuilder) Build(records []models.MatchRecord) (models.NotificationPayload, error) {
	const op = "service.Build"

	payload := models.NotificationPayload{
		Matches: make([]models.MatchPayloadItem, 0, len(records)),
	}

	for i, record := range records {
		home, away, err := SplitFixture(record.Fixture)
		if err != nil {
			return models.NotificationPayload{}, fmt.Errorf("%s: record %d: %w", op, i+1, err)
		}

		soldOut := record.SoldOut
		if forced, ok := b.overrides[away]; ok {
			soldOut = forced
		}

		payload.Matches = append(payload.Matches, models.MatchPayloadItem{
			HomeTeam:  home,
			AwayTeam:  away,
			SoldOut:   soldOut,
			MatchLink: record.MatchLink,
		})
	}

	return payload, nil
}

// SplitFixture splits "<home> - <away>" into its two team names.
func SplitFixture(fixture string) (string, string, error) {
	parts := strings.Split(fixture, fixtureSeparator)
	if len(parts) != 2 {
		return "", "", fmt.Errorf("%w: %q", derr.ErrMalformedFixture, fixture)
	}

	home := strings.TrimSpace(parts[0])
	away := strings.TrimSpace(parts[1])
	if home == "" || away == "" {
		return "", "", fmt.Errorf("%w: %q", derr.ErrMalformedFixture, fixture)
	}

	return home, away, nil
}
