package fbref

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

const ua = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/119 Safari/537.36 (+fbref-scout)"

type Options struct {
	BaseURL     string
	Timeout     time.Duration
	MaxAttempts int           // attempts per request; 1 means no automatic retry
	RetryBase   time.Duration // base backoff
	RetryMax    time.Duration // cap per-attempt backoff
	Cooldown    time.Duration // used on 429 when no Retry-After
	UserAgent   string
}

// Client fetches profile and search pages from the site.
type Client struct {
	http      *resty.Client
	baseURL   string
	Extractor *Extractor
}

func NewClient(opts Options) *Client {
	if opts.BaseURL == "" {
		opts.BaseURL = BaseURL
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 30 * time.Second
	}
	if opts.UserAgent == "" {
		opts.UserAgent = ua
	}
	base := strings.TrimRight(opts.BaseURL, "/")

	cli := resty.New().
		SetTimeout(opts.Timeout).
		SetHeader("User-Agent", opts.UserAgent).
		SetHeader("Accept-Language", "en-US,en;q=0.9")

	if opts.MaxAttempts > 1 {
		cooldown := opts.Cooldown
		if cooldown <= 0 {
			cooldown = 7 * time.Second
		}
		cli.SetRetryCount(opts.MaxAttempts - 1).
			SetRetryWaitTime(opts.RetryBase).
			SetRetryMaxWaitTime(max(opts.RetryMax, cooldown)).
			AddRetryCondition(retryable).
			SetRetryAfter(func(_ *resty.Client, r *resty.Response) (time.Duration, error) {
				if r == nil || r.StatusCode() != http.StatusTooManyRequests {
					return 0, nil // zero falls back to jittered backoff
				}
				if d := parseRetryAfter(r.Header().Get("Retry-After")); d > 0 {
					return d, nil
				}
				return cooldown, nil
			})
	}

	return &Client{
		http:      cli,
		baseURL:   base,
		Extractor: NewExtractor(base),
	}
}

// retry on transport errors, 429 and 5xx
func retryable(r *resty.Response, err error) bool {
	if err != nil {
		return true
	}
	if r == nil {
		return false
	}
	s := r.StatusCode()
	return s == http.StatusTooManyRequests || (s >= 500 && s <= 599)
}

func parseRetryAfter(h string) time.Duration {
	h = strings.TrimSpace(h)
	if h == "" {
		return 0
	}
	// seconds form
	if secs, err := strconv.Atoi(h); err == nil {
		return time.Duration(secs) * time.Second
	}
	// HTTP date
	if t, err := http.ParseTime(h); err == nil {
		if d := time.Until(t); d > 0 {
			return d
		}
	}
	return 0
}

// getText returns the body and the final URL after redirects.
func (c *Client) getText(ctx context.Context, op, url string) (string, string, error) {
	slog.DebugContext(ctx, "fbref: GET", "op", op, "url", url)
	resp, err := c.http.R().SetContext(ctx).Get(url)
	if err != nil {
		return "", "", &FetchError{Op: op, URL: url, Err: err}
	}
	if resp.StatusCode() != http.StatusOK {
		return "", "", &FetchError{Op: op, URL: url, Status: resp.StatusCode()}
	}
	final := url
	if raw := resp.RawResponse; raw != nil && raw.Request != nil && raw.Request.URL != nil {
		final = raw.Request.URL.String()
	}
	return resp.String(), final, nil
}

// FetchProfile downloads a player page and extracts it.
func (c *Client) FetchProfile(ctx context.Context, url string) (*Profile, error) {
	html, _, err := c.getText(ctx, "fetch profile", url)
	if err != nil {
		return nil, err
	}
	p, err := c.Extractor.ParseProfile(html)
	if err != nil {
		return nil, err
	}
	p.URL = url
	return p, nil
}

// BaseURL is the site origin used for absolute links.
func (c *Client) BaseURL() string { return c.baseURL }

func absolutize(host, href string) string {
	if strings.HasPrefix(href, "http://") || strings.HasPrefix(href, "https://") {
		return href
	}
	if strings.HasPrefix(href, "//") {
		return "https:" + href
	}
	if strings.HasPrefix(href, "/") {
		return host + href
	}
	return host + "/" + href
}
