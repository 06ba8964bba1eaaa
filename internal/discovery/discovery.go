// Package discovery locates a Boxee box on the local network with a
// single UDP broadcast and reply.
package discovery

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/hijinks/hijinks/internal/boxee"
	"github.com/hijinks/hijinks/internal/config"
)

var (
	// ErrNoDevice is returned when no reply arrives before the timeout
	ErrNoDevice = errors.New("discovery: no device found")
	// ErrEmptyReply is returned when the reply datagram carries no payload
	ErrEmptyReply = errors.New("discovery: empty reply")
	// ErrNoHTTPPort is returned when the reply lacks a usable BDP1 httpPort
	ErrNoHTTPPort = errors.New("discovery: reply has no BDP1 httpPort")
)

// Result is a successful discovery: where the box is and what it said
type Result struct {
	Endpoint boxee.Endpoint
	Reply    Reply
}

// Client sends discovery requests
type Client struct {
	cfg    config.Config
	logger zerolog.Logger
}

// NewClient creates a discovery client
func NewClient(cfg config.Config, logger zerolog.Logger) *Client {
	return &Client{
		cfg:    cfg,
		logger: logger,
	}
}

// Request returns the discovery payload for the configured identity
func (c *Client) Request() Request {
	return Request{
		Cmd:         CmdDiscover,
		Application: c.cfg.Application,
		Version:     c.cfg.Version,
		Challenge:   c.cfg.Challenge,
		Signature:   c.cfg.Signature(),
	}
}

// Discover broadcasts one request and waits for the first reply.
// The wait ends at the configured timeout, or when ctx is done.
func (c *Client) Discover(ctx context.Context) (Result, error) {
	dst, err := net.ResolveUDPAddr("udp4", c.cfg.BroadcastAddr)
	if err != nil {
		return Result{}, fmt.Errorf("invalid broadcast address %s: %w", c.cfg.BroadcastAddr, err)
	}

	payload, err := c.Request().Marshal()
	if err != nil {
		return Result{}, err
	}

	lc := broadcastListenConfig()
	pc, err := lc.ListenPacket(ctx, "udp4", net.JoinHostPort("", strconv.Itoa(c.cfg.ListenPort)))
	if err != nil {
		return Result{}, fmt.Errorf("failed to bind UDP port %d: %w", c.cfg.ListenPort, err)
	}
	conn := pc.(*net.UDPConn)
	defer conn.Close()

	c.logger.Debug().Str("target", dst.String()).Msg("broadcasting for boxee")
	if _, err := conn.WriteToUDP(payload, dst); err != nil {
		return Result{}, fmt.Errorf("failed to send discovery request: %w", err)
	}

	waitCtx := ctx
	if timeout := c.cfg.DiscoveryTimeout(); timeout > 0 {
		var cancel context.CancelFunc
		waitCtx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	// Unblock the read when the wait is over
	stop := context.AfterFunc(waitCtx, func() {
		conn.SetReadDeadline(time.Now())
	})
	defer stop()

	c.logger.Debug().Str("local", conn.LocalAddr().String()).Msg("awaiting response from boxee")

	buf := make([]byte, MaxMessageSize)
	n, addr, err := conn.ReadFromUDP(buf)
	if err != nil {
		if ctx.Err() != nil {
			return Result{}, ctx.Err()
		}
		if waitCtx.Err() != nil {
			return Result{}, ErrNoDevice
		}
		return Result{}, fmt.Errorf("failed to read discovery reply: %w", err)
	}
	if n == 0 {
		return Result{}, ErrEmptyReply
	}

	c.logger.Debug().
		Str("from", addr.String()).
		Str("reply", string(buf[:n])).
		Msg("parsing response from boxee")

	reply, err := ParseReply(buf[:n])
	if err != nil {
		return Result{}, err
	}

	res := Result{
		Endpoint: boxee.Endpoint{Address: addr.IP.String(), Port: reply.HTTPPort},
		Reply:    reply,
	}
	c.logger.Info().
		Str("endpoint", res.Endpoint.String()).
		Str("name", reply.Name).
		Msg("found boxee")
	return res, nil
}
