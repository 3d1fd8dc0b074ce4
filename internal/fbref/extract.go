package fbref

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

const (
	birthLayout    = "January 2, 2006"
	birthISOLayout = "2006-01-02"

	// glyphs FBref uses between items of the meta block
	sectionDelims = "▪•"
)

// Extractor turns a player page into a Profile. Every field is independent;
// only the statistics table is required.
type Extractor struct {
	BaseURL string
	Now     func() time.Time
}

func NewExtractor(baseURL string) *Extractor {
	if baseURL == "" {
		baseURL = BaseURL
	}
	return &Extractor{BaseURL: strings.TrimRight(baseURL, "/"), Now: time.Now}
}

// strategy is one way of locating a value; the first strategy that matches wins.
type strategy[T any] func(doc *goquery.Document) (T, bool)

func firstOf[T any](doc *goquery.Document, strategies ...strategy[T]) (T, bool) {
	for _, s := range strategies {
		if v, ok := s(doc); ok {
			return v, true
		}
	}
	var zero T
	return zero, false
}

// ParseProfile parses raw page HTML. Sports-Reference sites ship some tables inside comments.
func (e *Extractor) ParseProfile(html string) (*Profile, error) {
	clean := strings.ReplaceAll(html, "<!--", "")
	clean = strings.ReplaceAll(clean, "-->", "")

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(clean))
	if err != nil {
		return nil, fmt.Errorf("parse profile html: %w", err)
	}
	return e.Extract(doc)
}

// Extract fills what it can. A missing field is recorded in Profile.Missing;
// a missing statistics table fails the whole call with ErrTableMissing.
func (e *Extractor) Extract(doc *goquery.Document) (*Profile, error) {
	p := &Profile{}

	if v, ok := firstOf(doc, textOf("h1 span"), textOf("h1")); ok {
		p.Name = v
	} else {
		p.miss("name")
	}

	if v, ok := firstOf(doc, positionFromLabel); ok {
		p.Position = v
	} else {
		p.miss("position")
	}

	if birth, ok := firstOf(doc, birthFromText, birthFromAttr); ok {
		if age, ok := ageAt(birth, e.now()); ok {
			p.Age = &age
		} else {
			p.miss("age")
		}
	} else {
		p.miss("age")
	}

	if v, ok := firstOf(doc, teamFromLabel); ok {
		p.Team = v
	} else {
		p.miss("team")
	}

	if v, ok := firstOf(doc, srcOf(`img[class*="headshot"]`), srcOf("div.media-item img")); ok {
		p.PhotoURL = absolutize(e.BaseURL, v)
	} else {
		p.miss("photo")
	}

	table, ok := firstOf(doc, tableByIDPrefix(StatsTablePrefix), tableByID(DefaultStatsTableID))
	if !ok {
		DumpTablesForDebug(doc, p.Name)
		return nil, ErrTableMissing
	}
	p.Stats = parseStatsTable(table)
	return p, nil
}

func (e *Extractor) now() time.Time {
	if e.Now == nil {
		return time.Now()
	}
	return e.Now()
}

func (p *Profile) miss(field string) {
	p.Missing = append(p.Missing, field)
	slog.Debug("fbref: field missing", "field", field)
}

// ---- field strategies ----

func textOf(selector string) strategy[string] {
	return func(doc *goquery.Document) (string, bool) {
		s := doc.Find(selector).First()
		if s.Length() == 0 {
			return "", false
		}
		v := cleanText(s.Text())
		return v, v != ""
	}
}

func srcOf(selector string) strategy[string] {
	return func(doc *goquery.Document) (string, bool) {
		src, ok := doc.Find(selector).First().Attr("src")
		src = strings.TrimSpace(src)
		return src, ok && src != ""
	}
}

func paragraphContaining(doc *goquery.Document, label string) *goquery.Selection {
	return doc.Find("p").FilterFunction(func(_ int, s *goquery.Selection) bool {
		return strings.Contains(s.Text(), label)
	}).First()
}

// "Position: FW-MF (AM-WM, right) ▪ Footed: Left" -> "FW-MF (AM-WM, right)"
func positionFromLabel(doc *goquery.Document) (string, bool) {
	p := paragraphContaining(doc, "Position:")
	if p.Length() == 0 {
		return "", false
	}
	_, after, _ := strings.Cut(p.Text(), "Position:")
	if i := strings.IndexAny(after, sectionDelims); i >= 0 {
		after = after[:i]
	}
	v := cleanText(after)
	return v, v != ""
}

// "Club: Barcelona" -> "Barcelona"; text after the last colon
func teamFromLabel(doc *goquery.Document) (string, bool) {
	p := paragraphContaining(doc, "Club")
	if p.Length() == 0 {
		return "", false
	}
	txt := p.Text()
	i := strings.LastIndex(txt, ":")
	if i < 0 {
		return "", false
	}
	v := cleanText(txt[i+1:])
	return v, v != ""
}

func birthFromText(doc *goquery.Document) (time.Time, bool) {
	s := doc.Find("span#necro-birth").First()
	if s.Length() == 0 {
		return time.Time{}, false
	}
	t, err := time.Parse(birthLayout, cleanText(s.Text()))
	return t, err == nil
}

func birthFromAttr(doc *goquery.Document) (time.Time, bool) {
	v, ok := doc.Find("#necro-birth").First().Attr("data-birth")
	if !ok {
		return time.Time{}, false
	}
	t, err := time.Parse(birthISOLayout, strings.TrimSpace(v))
	return t, err == nil
}

// ageAt is whole days since birth divided by 365. It drifts by a day or so around
// birthdays in leap-heavy spans; callers accept that.
func ageAt(birth, now time.Time) (int, bool) {
	// compare calendar dates in the caller's zone
	birth = time.Date(birth.Year(), birth.Month(), birth.Day(), 0, 0, 0, 0, now.Location())
	if now.Before(birth) {
		return 0, false
	}
	days := int(now.Sub(birth) / (24 * time.Hour))
	return days / 365, true
}

// ---- statistics table ----

func tableByIDPrefix(prefix string) strategy[*goquery.Selection] {
	return func(doc *goquery.Document) (*goquery.Selection, bool) {
		var chosen *goquery.Selection
		doc.Find("table").EachWithBreak(func(_ int, t *goquery.Selection) bool {
			if strings.HasPrefix(t.AttrOr("id", ""), prefix) {
				chosen = t
				return false
			}
			return true
		})
		return chosen, chosen != nil
	}
}

func tableByID(id string) strategy[*goquery.Selection] {
	return func(doc *goquery.Document) (*goquery.Selection, bool) {
		t := doc.Find("table").FilterFunction(func(_ int, s *goquery.Selection) bool {
			return s.AttrOr("id", "") == id
		}).First()
		return t, t.Length() > 0
	}
}

func isHeaderRow(tr *goquery.Selection) bool {
	cl := tr.AttrOr("class", "")
	return strings.Contains(cl, "thead") || strings.Contains(cl, "over_header") || strings.Contains(cl, "spacer")
}

// parseStatsTable keeps one row per distinct, non-empty statistic name (first wins).
func parseStatsTable(table *goquery.Selection) *StatsTable {
	out := &StatsTable{ID: table.AttrOr("id", "")}

	table.Find("thead tr").Last().Find("th,td").Each(func(_ int, cell *goquery.Selection) {
		out.Columns = append(out.Columns, cleanText(cell.Text()))
	})
	if len(out.Columns) == 0 {
		out.Columns = []string{"Statistic"}
	}
	if out.Columns[0] == "" {
		out.Columns[0] = "Statistic"
	}

	rows := table.Find("tbody tr")
	if rows.Length() == 0 {
		rows = table.Find("tr").Not("thead tr")
	}

	seen := make(map[string]struct{})
	widest := 0
	rows.Each(func(_ int, tr *goquery.Selection) {
		if isHeaderRow(tr) {
			return
		}
		cells := tr.Find("th,td")
		if cells.Length() == 0 {
			return
		}
		name := cleanText(cells.First().Text())
		if name == "" || name == out.Columns[0] {
			return
		}
		if _, dup := seen[name]; dup {
			return
		}
		seen[name] = struct{}{}

		vals := make([]string, 0, cells.Length()-1)
		cells.Slice(1, cells.Length()).Each(func(_ int, td *goquery.Selection) {
			vals = append(vals, cleanText(td.Text()))
		})
		widest = max(widest, len(vals))
		out.Rows = append(out.Rows, StatRow{Statistic: name, Values: vals})
	})

	// headerless or ragged tables still get a name for every value column
	for i := len(out.Columns); i <= widest; i++ {
		out.Columns = append(out.Columns, fmt.Sprintf("Value %d", i))
	}
	for i := range out.Rows {
		for len(out.Rows[i].Values) < len(out.Columns)-1 {
			out.Rows[i].Values = append(out.Rows[i].Values, "")
		}
	}
	return out
}

// DumpTablesForDebug lists table ids and header rows when debug logging is on.
func DumpTablesForDebug(doc *goquery.Document, pageTag string) {
	if !slog.Default().Enabled(context.Background(), slog.LevelDebug) {
		return
	}
	doc.Find("table").Each(func(i int, t *goquery.Selection) {
		id, _ := t.Attr("id")
		var heads []string
		t.Find("thead tr").Last().Find("th,td").Each(func(_ int, h *goquery.Selection) {
			if txt := cleanText(h.Text()); txt != "" {
				heads = append(heads, txt)
			}
		})
		slog.Debug("fbref: table", "index", i, "id", id, "headers", strings.Join(heads, "|"), "page", pageTag)
	})
}
