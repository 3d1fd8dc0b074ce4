package scout

import (
	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/tyler180/fbref-scout/internal/fbref"
)

// StatsWriter loads a statistics table into a go-pretty writer. Callers pick the output
// style; prompts use RenderMarkdown.
func StatsWriter(st *fbref.StatsTable) table.Writer {
	t := table.NewWriter()
	if st == nil {
		return t
	}
	header := make(table.Row, 0, len(st.Columns))
	for _, c := range st.Columns {
		header = append(header, c)
	}
	t.AppendHeader(header)
	for _, r := range st.Rows {
		row := make(table.Row, 0, len(r.Values)+1)
		row = append(row, r.Statistic)
		for _, v := range r.Values {
			row = append(row, v)
		}
		t.AppendRow(row)
	}
	return t
}

// StatsMarkdown is the textual table embedded in prompts.
func StatsMarkdown(st *fbref.StatsTable) string {
	return StatsWriter(st).RenderMarkdown()
}
