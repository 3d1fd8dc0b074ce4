package scoutfn

import (
	"encoding/json"

	"github.com/tyler180/fbref-scout/internal/fbref"
	"github.com/tyler180/fbref-scout/internal/llm"
	"github.com/tyler180/fbref-scout/internal/scout"
	"github.com/tyler180/fbref-scout/internal/session"
)

// Event is the Lambda payload.
type Event struct {
	Action    string `json:"action"`     // load_url | load_name | ask | reset | export | get
	SessionID string `json:"session_id"` // empty on load_* starts a new session
	URL       string `json:"url"`        // load_url
	Name      string `json:"name"`       // load_name, e.g. "Kylian Mbappe"
	Question  string `json:"question"`   // ask
}

// Raw is used by Lambda entrypoint to avoid tight coupling to the event type at the edge.
type Raw = json.RawMessage

type Player struct {
	URL      string     `json:"url"`
	Name     string     `json:"name"`
	Position string     `json:"position,omitempty"`
	Age      *int       `json:"age,omitempty"`
	Team     string     `json:"team,omitempty"`
	PhotoURL string     `json:"photo_url,omitempty"`
	Columns  []string   `json:"columns"`
	Stats    [][]string `json:"stats"` // rows: statistic name then values
	Missing  []string   `json:"missing,omitempty"`
}

type Response struct {
	OK        bool   `json:"ok"`
	Error     string `json:"error,omitempty"` // end-user message
	SessionID string `json:"session_id,omitempty"`
	InputKey  int    `json:"input_key"`

	Player      *Player       `json:"player,omitempty"`
	Report      string        `json:"report,omitempty"`
	Greeting    string        `json:"greeting,omitempty"`
	Suggestions []string      `json:"suggestions,omitempty"`
	Messages    []llm.Message `json:"messages,omitempty"` // conversation without the system context
	Answer      string        `json:"answer,omitempty"`
	Location    string        `json:"location,omitempty"` // export target
}

func playerView(p *fbref.Profile) *Player {
	if p == nil {
		return nil
	}
	v := &Player{
		URL:      p.URL,
		Name:     p.DisplayName(),
		Position: p.Position,
		Age:      p.Age,
		Team:     p.Team,
		PhotoURL: p.PhotoURL,
		Missing:  p.Missing,
	}
	if p.Stats != nil {
		v.Columns = p.Stats.Columns
		for _, r := range p.Stats.Rows {
			v.Stats = append(v.Stats, append([]string{r.Statistic}, r.Values...))
		}
	}
	return v
}

// fromSession fills the session-derived fields of a response.
func fromSession(s *session.Session) Response {
	r := Response{OK: true}
	if s == nil {
		return r
	}
	r.SessionID = s.ID
	r.InputKey = s.InputKey
	if !s.HasReport() {
		return r
	}
	r.Player = playerView(s.Profile)
	r.Report = s.Report.Markdown
	name := s.Profile.DisplayName()
	r.Greeting = scout.Greeting(name)
	// suggestions only until the conversation gets going
	if s.Log.Turns() < 1 {
		r.Suggestions = scout.SuggestedQuestions(name)
	}
	if len(s.Log) > 1 {
		r.Messages = append([]llm.Message(nil), s.Log[1:]...)
	}
	return r
}
