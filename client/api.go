package client

import (
	"context"
	"fmt"

	"github.com/samber/lo"
)

// Aurora is a client for one controller. Every method issues its requests synchronously
// and holds no connection between calls.
type Aurora struct {
	requester *Requester

	State   *State
	Effects *Effects
	Rhythm  *Rhythm
	Layout  *Layout
}

// New creates a client for the controller described by cfg.
func New(cfg Config, opts ...RequesterOption) *Aurora {
	return NewWithRequester(NewRequester(cfg, opts...))
}

// NewFromEnv creates a client with any empty field of cfg taken from the environment.
func NewFromEnv(cfg Config, opts ...RequesterOption) (*Aurora, error) {
	cfg = cfg.WithEnvDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return New(cfg, opts...), nil
}

// NewWithRequester creates a client sharing an existing requester.
func NewWithRequester(requester *Requester) *Aurora {
	rhythm := &Rhythm{requester: requester}
	return &Aurora{
		requester: requester,
		State:     &State{requester: requester},
		Effects:   &Effects{requester: requester, sample: func(c []string) string { return lo.Sample(c) }},
		Rhythm:    rhythm,
		Layout:    &Layout{requester: requester, rhythm: rhythm},
	}
}

func (a *Aurora) String() string {
	return fmt.Sprintf("<Aurora(%s)>", a.requester.Address())
}

// Requester returns the underlying requester, for raw calls or address changes.
func (a *Aurora) Requester() *Requester {
	return a.requester
}

// Info returns everything the controller reports about itself.
func (a *Aurora) Info(ctx context.Context) (*Info, error) {
	info := &Info{}
	if err := a.requester.Get(ctx, "", info); err != nil {
		return nil, err
	}
	return info, nil
}

// ColorMode returns the current color mode.
func (a *Aurora) ColorMode(ctx context.Context) (string, error) {
	return a.State.ColorMode(ctx)
}

// Identify briefly flashes the panels.
func (a *Aurora) Identify(ctx context.Context) error {
	return a.requester.Put(ctx, "identify", struct{}{}, nil)
}

func (a *Aurora) Firmware(ctx context.Context) (string, error) {
	info, err := a.Info(ctx)
	if err != nil {
		return "", err
	}
	return info.FirmwareVersion, nil
}

func (a *Aurora) Model(ctx context.Context) (string, error) {
	info, err := a.Info(ctx)
	if err != nil {
		return "", err
	}
	return info.Model, nil
}

func (a *Aurora) SerialNumber(ctx context.Context) (string, error) {
	info, err := a.Info(ctx)
	if err != nil {
		return "", err
	}
	return info.SerialNo, nil
}

// DeleteUser revokes the auth token this client uses. The client is unusable afterwards.
func (a *Aurora) DeleteUser(ctx context.Context) error {
	return a.requester.Delete(ctx, "")
}
