// Package session owns per-user state: the current profile, its report, the
// conversation log and the input reset counter.
package session

import (
	"time"

	"github.com/tyler180/fbref-scout/internal/fbref"
	"github.com/tyler180/fbref-scout/internal/scout"
)

type Session struct {
	ID         string
	ProfileURL string
	Profile    *fbref.Profile
	Report     *scout.Report
	Log        scout.Log

	// InputKey only ever grows; front-ends key their input widget on it.
	InputKey int
	// Version is the store revision this copy was read at; 0 means never saved.
	Version   int64
	UpdatedAt time.Time
}

func New(id string) *Session { return &Session{ID: id} }

// Reset drops everything tied to the current player.
func (s *Session) Reset() {
	s.ProfileURL = ""
	s.Profile = nil
	s.Report = nil
	s.Log = nil
	s.InputKey++
}

func (s *Session) HasReport() bool { return s != nil && s.Report != nil && s.Profile != nil }

// Clone copies the mutable parts; Profile is shared since it is never modified after extraction.
func (s *Session) Clone() *Session {
	if s == nil {
		return nil
	}
	c := *s
	if s.Report != nil {
		r := *s.Report
		c.Report = &r
	}
	c.Log = s.Log.Clone()
	return &c
}
