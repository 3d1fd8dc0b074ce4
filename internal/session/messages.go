package session

import (
	"errors"
	"fmt"

	"github.com/tyler180/fbref-scout/internal/fbref"
	"github.com/tyler180/fbref-scout/internal/scout"
)

// ErrNoReport means the operation needs a loaded player and report.
var ErrNoReport = errors.New("session: no player loaded")

// UserMessage turns an error from the Manager into text fit for an end user.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var fe *fbref.FetchError
	var ge *scout.GenerationError
	switch {
	case errors.Is(err, fbref.ErrPlayerNotFound):
		return "Player not found. Please refine your search."
	case errors.Is(err, fbref.ErrTableMissing):
		return "Failed to fetch player data. Check the URL and try again."
	case errors.As(err, &fe):
		if fe.Status != 0 {
			return fmt.Sprintf("Failed to %s: the site answered with status %d. Please try again.", fe.Op, fe.Status)
		}
		return fmt.Sprintf("Failed to %s: network error. Please try again.", fe.Op)
	case errors.As(err, &ge):
		if ge.Op == "chat" {
			return "The scout could not answer right now. Please ask again."
		}
		return "Error generating scouting report. Please try again."
	case errors.Is(err, scout.ErrEmptyQuestion):
		return "Please type a question."
	case errors.Is(err, ErrNoReport):
		return "Load a player first."
	case errors.Is(err, ErrNotFound):
		return "Session not found or expired. Load a player to start a new one."
	case errors.Is(err, ErrConflict):
		return "This session was changed by another request. Please retry."
	default:
		return "Something went wrong. Please try again."
	}
}
