package mappers

import (
	"encoding/json"
	"testing"

	"github.com/michaelvbend/ajax-scraper/internal/domain/models"
)

func TestToReplaceMatchesRequest_WireShape(t *testing.T) {
	href := "https://tickets.test/m/1"
	req := ToReplaceMatchesRequest(models.NotificationPayload{Matches: []models.MatchPayloadItem{
		{HomeTeam: "Ajax", AwayTeam: "PSV", SoldOut: false, MatchLink: &href},
		{HomeTeam: "Ajax", AwayTeam: "AZ", SoldOut: true},
	}})

	body, err := json.Marshal(req)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	want := `{"matches":[` +
		`{"homeTeam":"Ajax","awayTeam":"PSV","soldOut":false,"matchLink":"https://tickets.test/m/1"},` +
		`{"homeTeam":"Ajax","awayTeam":"AZ","soldOut":true,"matchLink":null}]}`
	if string(body) != want {
		t.Fatalf("unexpected body:\n got %s\nwant %s", body, want)
	}
}

func TestToReplaceMatchesRequest_EmptyPayloadSendsEmptyList(t *testing.T) {
	body, err := json.Marshal(ToReplaceMatchesRequest(models.NotificationPayload{}))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(body) != `{"matches":[]}` {
		t.Fatalf("unexpected body %s", body)
	}
}
