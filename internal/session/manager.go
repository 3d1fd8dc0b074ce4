package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/tyler180/fbref-scout/internal/fbref"
	"github.com/tyler180/fbref-scout/internal/scout"
)

type Fetcher interface {
	FetchProfile(ctx context.Context, url string) (*fbref.Profile, error)
}

type Locator interface {
	Locate(ctx context.Context, name string) (string, error)
}

type ReportGenerator interface {
	Generate(ctx context.Context, p *fbref.Profile) (scout.Report, error)
}

type Asker interface {
	Ask(ctx context.Context, log scout.Log, question string) (scout.Log, string, error)
}

// Manager runs every user action to completion, one at a time per session.
// State is written back only after an action fully succeeds.
type Manager struct {
	Fetcher   Fetcher
	Locator   Locator
	Generator ReportGenerator
	Chat      Asker
	Store     Store
	Exporter  Exporter // optional
	Now       func() time.Time
	NewID     func() string

	locks keyedMutex
}

func (m *Manager) now() time.Time {
	if m.Now != nil {
		return m.Now().UTC()
	}
	return time.Now().UTC()
}

func (m *Manager) newID() string {
	if m.NewID != nil {
		return m.NewID()
	}
	return uuid.NewString()
}

// Get returns a copy of the stored session.
func (m *Manager) Get(ctx context.Context, id string) (*Session, error) {
	return m.Store.Get(ctx, id)
}

// Load fetches url, generates a report and replaces the player in session id.
// An empty id starts a new session. Reloading the current URL is a no-op.
func (m *Manager) Load(ctx context.Context, id, url string) (*Session, error) {
	if id == "" {
		id = m.newID()
	}
	unlock := m.locks.Lock(id)
	defer unlock()
	return m.load(ctx, id, url)
}

// LoadByName resolves name with the locator first. Nothing is stored when the
// player cannot be found.
func (m *Manager) LoadByName(ctx context.Context, id, name string) (*Session, error) {
	url, err := m.Locator.Locate(ctx, name)
	if err != nil {
		slog.InfoContext(ctx, "session: locate failed", "name", name, "err", err)
		return nil, err
	}
	return m.Load(ctx, id, url)
}

func (m *Manager) load(ctx context.Context, id, url string) (*Session, error) {
	cur, err := m.current(ctx, id)
	if err != nil {
		return nil, err
	}
	if cur.ProfileURL == url && cur.HasReport() {
		slog.DebugContext(ctx, "session: profile already loaded", "session", id, "url", url)
		return cur, nil
	}

	profile, err := m.Fetcher.FetchProfile(ctx, url)
	if err != nil {
		return nil, err
	}
	if len(profile.Missing) > 0 {
		slog.InfoContext(ctx, "session: partial profile", "url", url, "missing", profile.Missing)
	}
	report, err := m.Generator.Generate(ctx, profile)
	if err != nil {
		return nil, err
	}

	next := cur.Clone()
	next.Reset()
	next.ProfileURL = url
	next.Profile = profile
	next.Report = &report
	next.Log = scout.StartContext(profile, report)
	if err := m.save(ctx, next); err != nil {
		return nil, err
	}
	slog.InfoContext(ctx, "session: player loaded", "session", id, "player", profile.DisplayName(), "stats", profile.Stats.Len())
	return next, nil
}

// current returns the stored session or a fresh unsaved one.
func (m *Manager) current(ctx context.Context, id string) (*Session, error) {
	s, err := m.Store.Get(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return New(id), nil
	}
	if err != nil {
		return nil, fmt.Errorf("load session %s: %w", id, err)
	}
	return s, nil
}

func (m *Manager) save(ctx context.Context, s *Session) error {
	s.UpdatedAt = m.now()
	if err := m.Store.Save(ctx, s); err != nil {
		return fmt.Errorf("save session %s: %w", s.ID, err)
	}
	return nil
}

// Ask sends one question. A failed call leaves the stored log untouched.
func (m *Manager) Ask(ctx context.Context, id, question string) (*Session, string, error) {
	unlock := m.locks.Lock(id)
	defer unlock()

	s, err := m.Store.Get(ctx, id)
	if err != nil {
		return nil, "", err
	}
	if !s.HasReport() {
		return s, "", ErrNoReport
	}

	log, answer, err := m.Chat.Ask(ctx, s.Log, question)
	if err != nil {
		return s, "", err
	}
	s.Log = log
	s.InputKey++
	if err := m.save(ctx, s); err != nil {
		return nil, "", err
	}
	return s, answer, nil
}

// Reset clears the player from session id but keeps the session itself.
func (m *Manager) Reset(ctx context.Context, id string) (*Session, error) {
	unlock := m.locks.Lock(id)
	defer unlock()

	s, err := m.Store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	s.Reset()
	if err := m.save(ctx, s); err != nil {
		return nil, err
	}
	return s, nil
}

// Export hands the current report to the configured Exporter.
func (m *Manager) Export(ctx context.Context, id string) (string, error) {
	if m.Exporter == nil {
		return "", errors.New("session: no exporter configured")
	}
	s, err := m.Store.Get(ctx, id)
	if err != nil {
		return "", err
	}
	if !s.HasReport() {
		return "", ErrNoReport
	}
	loc, err := m.Exporter.Export(ctx, *s.Report)
	if err != nil {
		return "", fmt.Errorf("export report: %w", err)
	}
	return loc, nil
}
