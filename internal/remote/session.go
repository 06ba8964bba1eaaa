// Package remote ties discovery, the command client and the key
// translator into one remote-control session.
package remote

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/hijinks/hijinks/internal/boxee"
	"github.com/hijinks/hijinks/internal/config"
	"github.com/hijinks/hijinks/internal/discovery"
	"github.com/hijinks/hijinks/internal/keymap"
)

// Discoverer locates the box
type Discoverer interface {
	Discover(ctx context.Context) (discovery.Result, error)
}

// Status is one refresh of what the box is doing
type Status struct {
	NowPlaying boxee.NowPlaying
	Volume     int
	// VolumeErr is set when the volume could not be read; NowPlaying
	// is still valid.
	VolumeErr error
}

// Session drives a single box
type Session struct {
	id         string
	cfg        config.Config
	client     *boxee.Client
	discoverer Discoverer
	translator *keymap.Translator
	logger     zerolog.Logger
}

// NewSession creates a session. discoverer may be nil when the config
// names a static endpoint.
func NewSession(cfg config.Config, client *boxee.Client, discoverer Discoverer, logger zerolog.Logger) *Session {
	id := uuid.New().String()
	return &Session{
		id:         id,
		cfg:        cfg,
		client:     client,
		discoverer: discoverer,
		translator: keymap.NewTranslator(client, cfg.VolumeStep),
		logger:     logger.With().Str("session", id).Logger(),
	}
}

// ID returns the session identifier used in logs
func (s *Session) ID() string {
	return s.id
}

// Endpoint returns the box endpoint, zero before discovery
func (s *Session) Endpoint() boxee.Endpoint {
	return s.client.Endpoint()
}

// KeyboardMode reports whether keys are currently sent as text entry
func (s *Session) KeyboardMode() bool {
	return s.translator.KeyboardMode()
}

// Discover populates the endpoint, from config when set, otherwise by
// broadcasting. The endpoint is left untouched on failure.
func (s *Session) Discover(ctx context.Context) (boxee.Endpoint, error) {
	if ep := s.cfg.StaticEndpoint(); !ep.IsZero() {
		s.client.SetEndpoint(ep)
		s.logger.Info().Str("endpoint", ep.String()).Msg("using configured endpoint")
		return ep, nil
	}
	if s.discoverer == nil {
		return boxee.Endpoint{}, errors.New("no device configured and discovery disabled")
	}

	res, err := s.discoverer.Discover(ctx)
	if err != nil {
		return boxee.Endpoint{}, fmt.Errorf("discovery failed: %w", err)
	}
	s.client.SetEndpoint(res.Endpoint)
	return res.Endpoint, nil
}

// RunCommand sends cmd to the box and returns the response body
func (s *Session) RunCommand(ctx context.Context, cmd boxee.Command) (string, error) {
	return s.client.Run(ctx, cmd)
}

// RunHumanCommand translates key and sends the resulting command, if any.
// Keys without a binding are forwarded as a bare numeric command unless
// ForwardUnmapped is turned off.
func (s *Session) RunHumanCommand(ctx context.Context, key keymap.Key) (keymap.Action, error) {
	action, err := s.translator.Translate(ctx, key)
	if err != nil {
		return action, err
	}

	switch action.Kind {
	case keymap.ActionToggle:
		s.logger.Debug().Bool("keyboard", s.KeyboardMode()).Msg("keyboard mode toggled")
		return action, nil
	case keymap.ActionPassthrough:
		if !s.cfg.ForwardUnmapped {
			s.logger.Debug().Stringer("key", key).Msg("unmapped key ignored")
			return action, nil
		}
		action.Command = boxee.Cmd(strconv.Itoa(int(key)))
	}

	if _, err := s.client.Run(ctx, action.Command); err != nil {
		return action, err
	}
	return action, nil
}

// Refresh reads now-playing and volume. A volume failure is reported in
// the status rather than as an error.
func (s *Session) Refresh(ctx context.Context) (Status, error) {
	np, err := s.client.NowPlaying(ctx)
	if err != nil {
		return Status{}, err
	}

	status := Status{NowPlaying: np}
	status.Volume, status.VolumeErr = s.client.Volume(ctx)
	if status.VolumeErr != nil {
		s.logger.Debug().Err(status.VolumeErr).Msg("volume unavailable")
	}
	return status, nil
}
