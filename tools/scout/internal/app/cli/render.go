package cli

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/tyler180/fbref-scout/internal/fbref"
	"github.com/tyler180/fbref-scout/internal/scout"
)

func printProfile(w io.Writer, p *fbref.Profile) {
	id := table.NewWriter()
	id.SetOutputMirror(w)
	id.SetStyle(table.StyleRounded)
	id.AppendRow(table.Row{"Player", p.DisplayName()})
	id.AppendRow(table.Row{"Position", p.PositionString()})
	id.AppendRow(table.Row{"Age", p.AgeString()})
	id.AppendRow(table.Row{"Team", p.TeamString()})
	if p.PhotoURL != "" {
		id.AppendRow(table.Row{"Photo", p.PhotoURL})
	}
	id.AppendRow(table.Row{"Source", p.URL})
	id.Render()

	if p.Stats == nil {
		return
	}
	st := scout.StatsWriter(p.Stats)
	st.SetOutputMirror(w)
	st.SetStyle(table.StyleRounded)
	st.SetTitle(p.Stats.ID)
	st.Render()
}

func printSuggestions(w io.Writer, name string) {
	fmt.Fprintln(w, "Suggested questions (/ask <n>):")
	for i, q := range scout.SuggestedQuestions(name) {
		fmt.Fprintf(w, "  %d. %s\n", i+1, q)
	}
}
