package scout

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"github.com/tyler180/fbref-scout/internal/fbref"
	"github.com/tyler180/fbref-scout/internal/llm"
)

const reportSystemPrompt = "You are a professional football (soccer) scout."

// Report is the generated markdown, kept verbatim.
type Report struct {
	Player      string    `json:"player"`
	Markdown    string    `json:"markdown"`
	GeneratedAt time.Time `json:"generated_at"`
}

var unsafeFileChars = strings.NewReplacer("/", "_", `\`, "_", ":", "_", "*", "_", "?", "_", `"`, "_", "<", "_", ">", "_", "|", "_")

// Filename is "<player>_report.md".
func (r Report) Filename() string {
	name := strings.TrimSpace(r.Player)
	if name == "" {
		name = "player"
	}
	return unsafeFileChars.Replace(name) + "_report.md"
}

// ReportParams favour variety over determinism.
func ReportParams(model string) llm.Params {
	return llm.Params{Model: model, Temperature: 1, MaxTokens: 4096, TopP: 1}
}

type Generator struct {
	LLM    llm.Completer
	Params llm.Params
	Now    func() time.Time
}

func NewGenerator(c llm.Completer, model string) *Generator {
	return &Generator{LLM: c, Params: ReportParams(model), Now: time.Now}
}

// Generate makes exactly one completion call. The text is returned as-is; missing
// sections are only logged.
func (g *Generator) Generate(ctx context.Context, p *fbref.Profile) (Report, error) {
	if p == nil || p.Stats == nil {
		return Report{}, &GenerationError{Op: "generate report", Err: fbref.ErrTableMissing}
	}
	name := p.DisplayName()

	text, err := g.LLM.Complete(ctx, []llm.Message{
		{Role: llm.RoleSystem, Content: reportSystemPrompt},
		{Role: llm.RoleUser, Content: ReportPrompt(p)},
	}, g.Params)
	if err != nil {
		return Report{}, &GenerationError{Op: "generate report", Err: err}
	}
	if strings.TrimSpace(text) == "" {
		return Report{}, &GenerationError{Op: "generate report", Err: llm.ErrNoContent}
	}

	if missing := MissingSections(text); len(missing) > 0 {
		slog.WarnContext(ctx, "scout: report lacks sections", "player", name, "missing", missing)
	}

	now := time.Now
	if g.Now != nil {
		now = g.Now
	}
	return Report{Player: name, Markdown: text, GeneratedAt: now().UTC()}, nil
}

// ReportPrompt is deterministic for a given profile.
func ReportPrompt(p *fbref.Profile) string {
	name := p.DisplayName()
	var b strings.Builder
	fmt.Fprintf(&b, "I need you to create a scouting report on %s. Can you provide me with a summary of their strengths and weaknesses?\n\n", name)
	b.WriteString("Here is the data I have on him:\n\n")
	b.WriteString(identityBlock(p))
	b.WriteString("\n")
	b.WriteString(StatsMarkdown(p.Stats))
	b.WriteString("\n\n\nReturn the scouting report in the following markdown format:\n\n")
	fmt.Fprintf(&b, "## %s Scouting Report\n\n", name)
	b.WriteString("### Strengths\n< a list of 1 to 3 strengths >\n\n")
	b.WriteString("### Weaknesses\n< a list of 1 to 3 weaknesses >\n\n")
	b.WriteString("### Summary\n< a brief summary of the player's overall performance and if he would be beneficial to the team >\n")
	return b.String()
}

func identityBlock(p *fbref.Profile) string {
	return fmt.Sprintf("Player: %s\nPosition: %s\nAge: %s\nTeam: %s\n",
		p.DisplayName(), p.PositionString(), p.AgeString(), p.TeamString())
}

var sectionRes = []struct {
	name string
	re   *regexp.Regexp
}{
	{"Strengths", regexp.MustCompile(`(?im)^\s*#{1,6}\s*strengths\b`)},
	{"Weaknesses", regexp.MustCompile(`(?im)^\s*#{1,6}\s*weaknesses\b`)},
	{"Summary", regexp.MustCompile(`(?im)^\s*#{1,6}\s*summary\b`)},
}

// MissingSections lists the mandated report headings that do not appear in md.
func MissingSections(md string) []string {
	var out []string
	for _, s := range sectionRes {
		if !s.re.MatchString(md) {
			out = append(out, s.name)
		}
	}
	return out
}
