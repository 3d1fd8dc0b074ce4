package fbref

import (
	"regexp"
	"strconv"
	"strings"
)

const (
	BaseURL = "https://fbref.com"

	// scouting report tables are ids like scout_summary_AM, scout_summary_FW, ...
	StatsTablePrefix    = "scout_summary_"
	DefaultStatsTableID = "scout_summary_AM"

	playerPathPattern = "/en/players/"
	searchPath        = "/search/search.fcgi"
)

// Profile is the best-effort record extracted from a player page.
// Empty strings and a nil Age mean the field was not found; Missing lists them.
type Profile struct {
	URL      string
	Name     string
	Position string
	Age      *int
	Team     string
	PhotoURL string
	Stats    *StatsTable
	Missing  []string
}

// StatsTable keeps the column headers of the source table; Columns[0] names the statistic column.
type StatsTable struct {
	ID      string
	Columns []string
	Rows    []StatRow
}

type StatRow struct {
	Statistic string
	Values    []string // aligned with Columns[1:]
}

// DisplayName falls back to a neutral label when the heading was not found.
func (p *Profile) DisplayName() string {
	if p == nil || p.Name == "" {
		return "Unknown player"
	}
	return p.Name
}

// AgeString renders Age for prompts and output; unknown ages read "Unknown".
func (p *Profile) AgeString() string {
	if p == nil || p.Age == nil {
		return "Unknown"
	}
	return strconv.Itoa(*p.Age)
}

func orUnknown(s string) string {
	if strings.TrimSpace(s) == "" {
		return "Unknown"
	}
	return s
}

func (p *Profile) PositionString() string { return orUnknown(p.Position) }
func (p *Profile) TeamString() string     { return orUnknown(p.Team) }

// Lookup returns the row for a statistic name.
func (t *StatsTable) Lookup(name string) (StatRow, bool) {
	if t == nil {
		return StatRow{}, false
	}
	for _, r := range t.Rows {
		if r.Statistic == name {
			return r, true
		}
	}
	return StatRow{}, false
}

func (t *StatsTable) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Rows)
}

var wsRe = regexp.MustCompile(`\s+`)

// cleanText collapses whitespace, including the nbsp/thin spaces FBref sprinkles around labels.
func cleanText(s string) string {
	s = strings.NewReplacer("\u00A0", " ", "\u2009", " ").Replace(s)
	return wsRe.ReplaceAllString(strings.TrimSpace(s), " ")
}
