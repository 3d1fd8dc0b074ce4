package scoutfn

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/tyler180/fbref-scout/internal/fbref"
	"github.com/tyler180/fbref-scout/internal/llm"
	"github.com/tyler180/fbref-scout/internal/scout"
	"github.com/tyler180/fbref-scout/internal/session"
	"github.com/tyler180/fbref-scout/internal/store"
)

const playerPage = `<html><body>
<div class="media-item"><img class="headshot" src="/req/headshots/abc.jpg"></div>
<h1><span>Test Striker</span></h1>
<p><strong>Position:</strong> FW &nbsp;▪&nbsp; <strong>Footed:</strong> Right</p>
<p><strong>Club:</strong> Example FC</p>
<!--
<table id="scout_summary_FW"><thead><tr><th>Statistic</th><th>Per 90</th></tr></thead>
<tbody><tr><th>Goals</th><td>0.61</td></tr><tr><th>Shots Total</th><td>3.4</td></tr></tbody></table>
-->
</body></html>`

type echoLLM struct{ n int }

func (e *echoLLM) Complete(_ context.Context, msgs []llm.Message, p llm.Params) (string, error) {
	e.n++
	if p.Temperature == 1 {
		return "## Test Striker Scouting Report\n### Strengths\n- Finishing\n### Weaknesses\n- Passing\n### Summary\nGood.", nil
	}
	return fmt.Sprintf("reply %d", e.n), nil
}

func newTestManager(t *testing.T) *session.Manager {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/search/search.fcgi", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("search") == "Test Striker" {
			fmt.Fprint(w, `<a href="/en/players/abc123/Test-Striker">Test Striker</a>`)
			return
		}
		fmt.Fprint(w, `<p>Found 0 hits</p>`)
	})
	mux.HandleFunc("/en/players/abc123/Test-Striker", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, playerPage)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	site := fbref.NewClient(fbref.Options{BaseURL: srv.URL, Timeout: 5 * time.Second})
	fake := &echoLLM{}
	return &session.Manager{
		Fetcher:   site,
		Locator:   site,
		Generator: scout.NewGenerator(fake, "m"),
		Chat:      scout.NewChat(fake, "m"),
		Store:     session.NewMemoryStore(8, time.Hour),
		Exporter:  &store.FileExporter{Dir: t.TempDir()},
	}
}

func TestHandle_Flow(t *testing.T) {
	m := newTestManager(t)
	ctx := context.Background()

	resp, err := Handle(ctx, m, Event{Action: "load_name", Name: "Test Striker"})
	require.NoError(t, err)
	require.True(t, resp.OK, resp.Error)
	require.NotEmpty(t, resp.SessionID)
	require.Equal(t, "Test Striker", resp.Player.Name)
	require.Equal(t, "FW", resp.Player.Position)
	require.Equal(t, "Example FC", resp.Player.Team)
	require.Equal(t, [][]string{{"Goals", "0.61"}, {"Shots Total", "3.4"}}, resp.Player.Stats)
	require.Contains(t, resp.Report, "### Strengths")
	require.Equal(t, scout.Greeting("Test Striker"), resp.Greeting)
	require.Len(t, resp.Suggestions, 6)
	require.Empty(t, resp.Messages)
	id := resp.SessionID

	resp, err = Handle(ctx, m, Event{Action: "ask", SessionID: id, Question: "Is he clinical?"})
	require.NoError(t, err)
	require.True(t, resp.OK)
	require.Equal(t, "reply 2", resp.Answer)
	require.Len(t, resp.Messages, 2)
	require.Empty(t, resp.Suggestions)

	resp, err = Handle(ctx, m, Event{Action: "export", SessionID: id})
	require.NoError(t, err)
	require.True(t, resp.OK)
	require.Contains(t, resp.Location, "Test Striker_report.md")

	resp, err = Handle(ctx, m, Event{Action: "reset", SessionID: id})
	require.NoError(t, err)
	require.True(t, resp.OK)
	require.Nil(t, resp.Player)

	resp, err = Handle(ctx, m, Event{Action: "ask", SessionID: id, Question: "still there?"})
	require.NoError(t, err)
	require.False(t, resp.OK)
	require.Equal(t, "Load a player first.", resp.Error)
}

func TestHandle_PlayerNotFound(t *testing.T) {
	m := newTestManager(t)

	resp, err := Handle(context.Background(), m, Event{Action: "load_name", Name: "Test Player"})
	require.NoError(t, err)
	require.False(t, resp.OK)
	require.Equal(t, "Player not found. Please refine your search.", resp.Error)
	require.Empty(t, resp.SessionID)
	require.Zero(t, m.Store.(*session.MemoryStore).Len())
}

func TestHandle_BadEvents(t *testing.T) {
	m := newTestManager(t)
	ctx := context.Background()

	_, err := Handle(ctx, m, Event{Action: "dance"})
	require.Error(t, err)
	_, err = Handle(ctx, m, Event{Action: "load_url"})
	require.Error(t, err)

	resp, err := Handle(ctx, m, Event{Action: "get", SessionID: "missing"})
	require.NoError(t, err)
	require.False(t, resp.OK)
}

func TestEventDecoding(t *testing.T) {
	var e Event
	require.NoError(t, json.Unmarshal([]byte(`{"action":"ask","session_id":"s1","question":"Why?"}`), &e))
	require.Equal(t, Event{Action: "ask", SessionID: "s1", Question: "Why?"}, e)
}
