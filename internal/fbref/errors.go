package fbref

import (
	"errors"
	"fmt"
)

var (
	// ErrTableMissing means no scouting table could be located; the page is unusable for a report.
	ErrTableMissing = errors.New("fbref: statistics table not found")
	// ErrPlayerNotFound means the search results had no player profile link.
	ErrPlayerNotFound = errors.New("fbref: player not found")
)

// FetchError is a transport failure talking to the site. Op names the operation
// ("fetch profile", "search player").
type FetchError struct {
	Op     string
	URL    string
	Status int
	Err    error
}

func (e *FetchError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s: status %d for %s", e.Op, e.Status, e.URL)
	}
	return fmt.Sprintf("%s: %s: %v", e.Op, e.URL, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }
