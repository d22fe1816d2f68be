package client

import "context"

// RhythmMode is the rhythm module's sound source.
type RhythmMode int

const (
	RhythmMicrophone RhythmMode = 0
	RhythmAux        RhythmMode = 1
)

// Rhythm reads the status of the sound-reactive rhythm module.
type Rhythm struct {
	requester *Requester
}

func (r *Rhythm) Connected(ctx context.Context) (bool, error) {
	return getValue[bool](ctx, r.requester, "rhythm/rhythmConnected")
}

// Active reports whether the rhythm microphone is active.
func (r *Rhythm) Active(ctx context.Context) (bool, error) {
	return getValue[bool](ctx, r.requester, "rhythm/rhythmActive")
}

func (r *Rhythm) ID(ctx context.Context) (int, error) {
	return getValue[int](ctx, r.requester, "rhythm/rhythmId")
}

func (r *Rhythm) HardwareVersion(ctx context.Context) (string, error) {
	return getValue[string](ctx, r.requester, "rhythm/hardwareVersion")
}

func (r *Rhythm) FirmwareVersion(ctx context.Context) (string, error) {
	return getValue[string](ctx, r.requester, "rhythm/firmwareVersion")
}

// AuxAvailable reports whether an aux cable is plugged into the module.
func (r *Rhythm) AuxAvailable(ctx context.Context) (bool, error) {
	return getValue[bool](ctx, r.requester, "rhythm/auxAvailable")
}

func (r *Rhythm) Mode(ctx context.Context) (RhythmMode, error) {
	return getValue[RhythmMode](ctx, r.requester, "rhythm/rhythmMode")
}

// SetMode selects the microphone or the aux input.
func (r *Rhythm) SetMode(ctx context.Context, mode RhythmMode) error {
	return r.requester.Put(ctx, "rhythm", map[string]RhythmMode{"rhythmMode": mode}, nil)
}

// Position returns the module's position and orientation in the layout.
func (r *Rhythm) Position(ctx context.Context) (RhythmPosition, error) {
	return getValue[RhythmPosition](ctx, r.requester, "rhythm/rhythmPos")
}
