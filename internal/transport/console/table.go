package console

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/michaelvbend/ajax-scraper/internal/domain/models"
)

var (
	soldOutColor   = color.New(color.FgRed, color.Bold)
	availableColor = color.New(color.FgGreen)
	skippedColor   = color.New(color.FgYellow)
)

func newTable(w io.Writer) table.Writer {
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.SetOutputMirror(w)
	return t
}

// RenderMatches prints the payload that would be sent to the match API,
// followed by the cards that were skipped.
func RenderMatches(w io.Writer, payload models.NotificationPayload, skipped []models.ItemError) {
	t := newTable(w)
	t.AppendHeader(table.Row{"#", "Home", "Away", "Sold out", "Link"})
	for i, m := range payload.Matches {
		t.AppendRow(table.Row{i + 1, m.HomeTeam, m.AwayTeam, soldOutCell(m.SoldOut), linkCell(m.MatchLink)})
	}
	t.AppendFooter(table.Row{"", "", "", "Total", len(payload.Matches)})
	t.Render()

	if len(skipped) == 0 {
		return
	}

	fmt.Fprintln(w, skippedColor.Sprintf("%d card(s) skipped:", len(skipped)))
	for _, ie := range skipped {
		fmt.Fprintf(w, "  card %d: %v\n", ie.Index, ie.Err)
	}
}

func soldOutCell(soldOut bool) string {
	if soldOut {
		return soldOutColor.Sprint("yes")
	}
	return availableColor.Sprint("no")
}

func linkCell(link *string) string {
	if link == nil {
		return "-"
	}
	return *link
}
