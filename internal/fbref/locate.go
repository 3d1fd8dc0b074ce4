package fbref

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// SearchURL builds the site search query for a free-text name; whitespace runs become '+'.
func SearchURL(base, name string) string {
	q := url.Values{"search": {strings.Join(strings.Fields(name), " ")}}
	return strings.TrimRight(base, "/") + searchPath + "?" + q.Encode()
}

// Locate resolves a player name to a profile URL. The first player link on the
// results page wins; there is no ranking or disambiguation.
func (c *Client) Locate(ctx context.Context, name string) (string, error) {
	if strings.TrimSpace(name) == "" {
		return "", fmt.Errorf("empty player name: %w", ErrPlayerNotFound)
	}
	searchURL := SearchURL(c.baseURL, name)
	html, final, err := c.getText(ctx, "search player", searchURL)
	if err != nil {
		return "", err
	}

	// an exact hit redirects straight to the player page
	if isPlayerURL(final) && final != searchURL {
		return final, nil
	}

	href, err := firstPlayerLink(html)
	if err != nil {
		return "", err
	}
	return absolutize(c.baseURL, href), nil
}

func isPlayerURL(u string) bool {
	parsed, err := url.Parse(u)
	if err != nil {
		return false
	}
	return strings.HasPrefix(parsed.Path, playerPathPattern)
}

func firstPlayerLink(html string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", fmt.Errorf("parse search html: %w", err)
	}
	href, ok := doc.Find(`a[href*="` + playerPathPattern + `"]`).First().Attr("href")
	if !ok || strings.TrimSpace(href) == "" {
		return "", ErrPlayerNotFound
	}
	return strings.TrimSpace(href), nil
}
