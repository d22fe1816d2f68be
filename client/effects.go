package client

import (
	"context"
	"encoding/json"
	"net"
	"strconv"

	"github.com/pkg/errors"
	"github.com/samber/lo"
)

const effectsEndpoint = "effects"

// Reserved effect names are managed by the controller itself.
const (
	EffectStatic  = "*Static*"
	EffectDynamic = "*Dynamic*"
	EffectSolid   = "*Solid*"
)

var reservedEffects = []string{EffectStatic, EffectDynamic, EffectSolid}

// IsReservedEffect reports whether name is one of the controller's built-in effects.
func IsReservedEffect(name string) bool {
	return lo.Contains(reservedEffects, name)
}

// Effects selects and manages the animations stored on the controller.
type Effects struct {
	requester *Requester

	// sample picks one of the candidates for Random.
	sample func([]string) string
}

// Current returns the name of the active effect.
func (e *Effects) Current(ctx context.Context) (string, error) {
	return getValue[string](ctx, e.requester, "effects/select")
}

// Select activates the named effect.
func (e *Effects) Select(ctx context.Context, name string) error {
	return e.requester.Put(ctx, effectsEndpoint, map[string]string{"select": name}, nil)
}

// List returns the names of every effect stored on the controller.
func (e *Effects) List(ctx context.Context) ([]string, error) {
	return getValue[[]string](ctx, e.requester, "effects/effectsList")
}

// Random selects a random effect other than the active one and returns its name. The
// active effect stays a candidate when it is reserved.
func (e *Effects) Random(ctx context.Context) (string, error) {
	effects, err := e.List(ctx)
	if err != nil {
		return "", err
	}
	current, err := e.Current(ctx)
	if err != nil {
		return "", err
	}

	candidates := effects
	if !IsReservedEffect(current) {
		candidates = lo.Without(effects, current)
	}
	if len(candidates) == 0 {
		return "", &ValidationError{Field: "effect", Value: current, Err: ErrNoAlternativeEffect}
	}

	selected := e.sample(candidates)
	if err := e.Select(ctx, selected); err != nil {
		return "", err
	}
	return selected, nil
}

func (e *Effects) write(ctx context.Context, command map[string]interface{}, target interface{}) error {
	return e.requester.Put(ctx, effectsEndpoint, map[string]interface{}{"write": command}, target)
}

// SetRaw sends data as the body of a write command. data must follow the controller's
// effect JSON structure.
func (e *Effects) SetRaw(ctx context.Context, data map[string]interface{}) error {
	return e.write(ctx, data, nil)
}

// Details returns the definition of the named effect.
func (e *Effects) Details(ctx context.Context, name string) (json.RawMessage, error) {
	var details json.RawMessage
	err := e.write(ctx, map[string]interface{}{"command": "request", "animName": name}, &details)
	return details, err
}

// DetailsAll returns the definitions of every effect.
func (e *Effects) DetailsAll(ctx context.Context) (json.RawMessage, error) {
	var details json.RawMessage
	err := e.write(ctx, map[string]interface{}{"command": "requestAll"}, &details)
	return details, err
}

// Delete removes the named effect. Reserved effects are rejected.
func (e *Effects) Delete(ctx context.Context, name string) error {
	if IsReservedEffect(name) {
		return &ValidationError{Field: "effect", Value: name, Err: ErrReservedEffect}
	}
	return e.write(ctx, map[string]interface{}{"command": "delete", "animName": name}, nil)
}

// Rename changes the name of a stored effect. Reserved names are rejected on either side.
func (e *Effects) Rename(ctx context.Context, oldName, newName string) error {
	for _, name := range []string{oldName, newName} {
		if IsReservedEffect(name) {
			return &ValidationError{Field: "effect", Value: name, Err: ErrReservedEffect}
		}
	}
	return e.write(ctx, map[string]interface{}{
		"command":  "rename",
		"animName": oldName,
		"newName":  newName,
	}, nil)
}

// Stream switches the controller to external control and opens a Stream to the UDP
// endpoint it returns. The caller must Close the stream.
func (e *Effects) Stream(ctx context.Context) (*Stream, error) {
	var endpoint StreamEndpoint
	err := e.write(ctx, map[string]interface{}{
		"command":  "display",
		"animType": "extControl",
	}, &endpoint)
	if err != nil {
		return nil, errors.Wrap(err, "cannot initiate external control stream")
	}
	return DialStream(net.JoinHostPort(endpoint.IP, strconv.Itoa(endpoint.Port)))
}
