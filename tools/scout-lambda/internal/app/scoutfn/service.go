package scoutfn

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/tyler180/fbref-scout/internal/app"
	"github.com/tyler180/fbref-scout/internal/config"
	"github.com/tyler180/fbref-scout/internal/logger"
	"github.com/tyler180/fbref-scout/internal/session"
)

var (
	buildOnce sync.Once
	mgr       *session.Manager
	buildErr  error
)

// manager is built once per container and reused by warm invocations.
func manager(ctx context.Context) (*session.Manager, error) {
	buildOnce.Do(func() {
		cfg, err := config.Load()
		if err != nil {
			buildErr = err
			return
		}
		logger.Init(logger.JSON, cfg.LogLevel, cfg.Debug)
		d, err := app.Build(ctx, cfg)
		if err != nil {
			buildErr = err
			return
		}
		mgr = d.Manager
	})
	return mgr, buildErr
}

// LambdaEntrypoint is the single Lambda handler exported from this package.
func LambdaEntrypoint(ctx context.Context, raw Raw) (Response, error) {
	var e Event
	if err := json.Unmarshal(raw, &e); err != nil {
		return Response{}, fmt.Errorf("decode event: %w", err)
	}
	m, err := manager(ctx)
	if err != nil {
		return Response{}, err
	}
	return Handle(ctx, m, e)
}

// Handle runs one action. Failures the user can act on come back as a Response
// with OK=false; only malformed events return an error.
func Handle(ctx context.Context, m *session.Manager, e Event) (Response, error) {
	action := strings.ToLower(strings.TrimSpace(e.Action))
	log := slog.With("action", action, "session", e.SessionID)

	var (
		s   *session.Session
		err error
		out Response
	)
	switch action {
	case "load_url":
		if strings.TrimSpace(e.URL) == "" {
			return Response{}, fmt.Errorf("load_url: url is required")
		}
		s, err = m.Load(ctx, e.SessionID, strings.TrimSpace(e.URL))
	case "load_name":
		if strings.TrimSpace(e.Name) == "" {
			return Response{}, fmt.Errorf("load_name: name is required")
		}
		s, err = m.LoadByName(ctx, e.SessionID, e.Name)
	case "ask":
		var answer string
		s, answer, err = m.Ask(ctx, e.SessionID, e.Question)
		out.Answer = answer
	case "reset":
		s, err = m.Reset(ctx, e.SessionID)
	case "export":
		var loc string
		loc, err = m.Export(ctx, e.SessionID)
		if err == nil {
			return Response{OK: true, SessionID: e.SessionID, Location: loc}, nil
		}
	case "get":
		s, err = m.Get(ctx, e.SessionID)
	default:
		return Response{}, fmt.Errorf("unknown action %q", e.Action)
	}

	if err != nil {
		log.WarnContext(ctx, "scoutfn: action failed", "err", err)
		return Response{OK: false, SessionID: e.SessionID, Error: session.UserMessage(err)}, nil
	}

	resp := fromSession(s)
	resp.Answer = out.Answer
	log.InfoContext(ctx, "scoutfn: ok", "session", resp.SessionID, "input_key", resp.InputKey)
	return resp, nil
}
