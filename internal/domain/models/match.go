package models

import (
	"fmt"

	derr "github.com/michaelvbend/ajax-scraper/internal/domain/errors"
)

type Credential struct {
	Username string
	Password string
}

func (c Credential) Validate() error {
	if c.Username == "" || c.Password == "" {
		return derr.ErrMissingCredentials
	}
	return nil
}

// MatchRecord is one card as scraped from the page.
type MatchRecord struct {
	Fixture   string
	SoldOut   bool
	MatchLink *string
}

type MatchPayloadItem struct {
	HomeTeam  string
	AwayTeam  string
	SoldOut   bool
	MatchLink *string
}

type NotificationPayload struct {
	Matches []MatchPayloadItem
}

// ItemError reports a card that could not be extracted. Index is 1-based.
type ItemError struct {
	Index int
	Err   error
}

func (e ItemError) Error() string {
	return fmt.Sprintf("item %d: %v", e.Index, e.Err)
}

func (e ItemError) Unwrap() error {
	return e.Err
}
