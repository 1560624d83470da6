package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Yugz29/DevNote/internal/model"
)

const defaultTimeout = 15 * time.Second

// Client talks to a DevNote server. Authentication is cookie-based; the
// session cookie is persisted under the data dir so CLI invocations and TUI
// sessions share one login.
type Client struct {
	base        *url.URL
	http        *http.Client
	sessionPath string
}

// New creates a client for the server at baseURL (e.g. "https://host/api").
// sessionPath may be empty, in which case the session lives only in memory.
func New(baseURL string, timeout time.Duration, sessionPath string) (*Client, error) {
	// The trailing slash matters: relative refs like "auth/login/" must
	// resolve under the base path, not next to it.
	base, err := url.Parse(strings.TrimRight(baseURL, "/") + "/")
	if err != nil {
		return nil, fmt.Errorf("invalid server url %q: %w", baseURL, err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("invalid server url %q: missing scheme or host", baseURL)
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}
	c := &Client{
		base:        base,
		http:        &http.Client{Timeout: timeout, Jar: jar},
		sessionPath: sessionPath,
	}
	c.loadSession()
	return c, nil
}

// BaseURL returns the configured server URL.
func (c *Client) BaseURL() string { return c.base.String() }

type storedSession struct {
	Cookies []storedCookie `json:"cookies"`
}

type storedCookie struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// loadSession restores persisted cookies. Best effort: a missing or corrupt
// session file just means the user is logged out.
func (c *Client) loadSession() {
	if c.sessionPath == "" {
		return
	}
	b, err := os.ReadFile(c.sessionPath)
	if err != nil {
		return
	}
	var s storedSession
	if err := json.Unmarshal(b, &s); err != nil {
		return
	}
	cookies := make([]*http.Cookie, 0, len(s.Cookies))
	for _, sc := range s.Cookies {
		cookies = append(cookies, &http.Cookie{Name: sc.Name, Value: sc.Value, Path: "/"})
	}
	c.http.Jar.SetCookies(c.base, cookies)
}

func (c *Client) saveSession() error {
	if c.sessionPath == "" {
		return nil
	}
	var s storedSession
	for _, ck := range c.http.Jar.Cookies(c.base) {
		s.Cookies = append(s.Cookies, storedCookie{Name: ck.Name, Value: ck.Value})
	}
	b, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(c.sessionPath), 0o755); err != nil {
		return err
	}
	tmp := c.sessionPath + ".tmp"
	if err := os.WriteFile(tmp, b, 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, c.sessionPath)
}

func (c *Client) clearSession() {
	if c.sessionPath != "" {
		_ = os.Remove(c.sessionPath)
	}
}

// resolve turns a path or an absolute cursor URL into a request URL.
// Cursors come back from the server as fully qualified "next" links; anything
// else is joined onto the base URL.
func (c *Client) resolve(ref string) (string, error) {
	u, err := c.base.Parse(ref)
	if err != nil {
		return "", fmt.Errorf("bad request ref %q: %w", ref, err)
	}
	return u.String(), nil
}

func (c *Client) do(ctx context.Context, method, ref string, payload any, out any) error {
	target, err := c.resolve(ref)
	if err != nil {
		return err
	}

	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return err
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("devnote server unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &Error{Status: resp.StatusCode, Message: errorDetail(resp.Body)}
	}
	if out == nil {
		// Drain so the connection can be reused.
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// errorDetail pulls a human-readable message out of a DRF-style error body:
// either {"detail": "..."} or a field→[messages] map. Unreadable bodies
// produce an empty message.
func errorDetail(r io.Reader) string {
	b, err := io.ReadAll(io.LimitReader(r, 4096))
	if err != nil || len(b) == 0 {
		return ""
	}
	var detail struct {
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(b, &detail); err == nil && detail.Detail != "" {
		return detail.Detail
	}
	var fields map[string][]string
	if err := json.Unmarshal(b, &fields); err == nil && len(fields) > 0 {
		var parts []string
		for field, msgs := range fields {
			if len(msgs) > 0 {
				parts = append(parts, field+": "+msgs[0])
			}
		}
		if len(parts) > 0 {
			return strings.Join(parts, "; ")
		}
	}
	return ""
}

// listPage fetches one page of a collection. ref is either the first-page
// path or an opaque cursor from a previous page.
func listPage[T any](ctx context.Context, c *Client, ref string) (model.Page[T], error) {
	var page model.Page[T]
	if err := c.do(ctx, http.MethodGet, ref, nil, &page); err != nil {
		return model.Page[T]{}, err
	}
	return page, nil
}
