package boxee

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

const (
	// DefaultHTTPTimeout bounds a single control API round trip
	DefaultHTTPTimeout = 5 * time.Second
	// apiPath is the xbmcHttp command endpoint on the box
	apiPath = "/xbmcCmds/xbmcHttp"
	// maxBodySize caps how much of a response is read
	maxBodySize = 64 * 1024
)

// Endpoint is the network location of the box control API.
type Endpoint struct {
	Address string `json:"address"`
	Port    int    `json:"port"`
}

// IsZero reports whether the endpoint has not been populated.
func (e Endpoint) IsZero() bool {
	return e.Address == "" || e.Port == 0
}

// String returns host:port
func (e Endpoint) String() string {
	return net.JoinHostPort(e.Address, strconv.Itoa(e.Port))
}

// CommandURL builds the GET URL for cmd against ep.
func CommandURL(ep Endpoint, cmd Command) string {
	return fmt.Sprintf("http://%s%s?command=%s", ep.String(), apiPath, cmd)
}

// Client issues control API commands against a single box.
// It is safe for concurrent use; each request runs on its own connection
// from the underlying http.Client.
type Client struct {
	http   *http.Client
	logger zerolog.Logger

	mu       sync.RWMutex
	endpoint Endpoint
}

// NewClient creates a client. A nil httpClient gets one with DefaultHTTPTimeout.
func NewClient(httpClient *http.Client, logger zerolog.Logger) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: DefaultHTTPTimeout}
	}
	return &Client{
		http:   httpClient,
		logger: logger,
	}
}

// SetEndpoint records where the box lives.
func (c *Client) SetEndpoint(ep Endpoint) {
	c.mu.Lock()
	c.endpoint = ep
	c.mu.Unlock()
}

// Endpoint returns the current endpoint, zero if not yet discovered.
func (c *Client) Endpoint() Endpoint {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.endpoint
}

// Run issues cmd and returns the raw response body.
func (c *Client) Run(ctx context.Context, cmd Command) (string, error) {
	ep := c.Endpoint()
	if ep.IsZero() {
		return "", ErrNoEndpoint
	}

	url := CommandURL(ep, cmd)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("failed to build request for %s: %w", cmd, err)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to run %s: %w", cmd, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return "", fmt.Errorf("failed to read %s response: %w", cmd, err)
	}

	c.logger.Debug().
		Str("command", cmd.String()).
		Int("status", resp.StatusCode).
		Dur("took", time.Since(start)).
		Msg("command sent")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return string(body), &StatusError{Command: cmd, StatusCode: resp.StatusCode}
	}
	return string(body), nil
}

// Volume returns the current volume level reported by the box.
func (c *Client) Volume(ctx context.Context) (int, error) {
	body, err := c.Run(ctx, Cmd(CmdGetVolume))
	if err != nil {
		return 0, err
	}
	return ParseVolume(body)
}

// NowPlaying returns what the box is currently playing.
func (c *Client) NowPlaying(ctx context.Context) (NowPlaying, error) {
	body, err := c.Run(ctx, Cmd(CmdGetCurrentlyPlaying))
	if err != nil {
		return NowPlaying{}, err
	}
	return ParseNowPlaying(body), nil
}
