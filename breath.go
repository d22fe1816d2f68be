package aurora

import (
	"context"
	"sync"
	"time"

	colorful "github.com/lucasb-eyer/go-colorful"
	log "github.com/sirupsen/logrus"
	tomb "gopkg.in/tomb.v2"
)

const (
	breathInterval = 50 * time.Millisecond
	stepsPerSecond = int(time.Second / breathInterval)
)

type breathAction struct {
	panels   []int
	colors   []colorful.Color
	position int

	writer   PanelWriter
	interval time.Duration

	t  tomb.Tomb
	mu sync.Mutex
}

type gradientTable []struct {
	Col colorful.Color
	Pos float64
}

// NewBreathAction fades panels from one color to another and back over the given
// number of seconds, repeating until stopped.
func NewBreathAction(writer PanelWriter, panels []int, to, from colorful.Color, seconds int) (Action, error) {
	log.Info("New breath action")
	ba := &breathAction{
		panels:   panels,
		colors:   breathColors(to, from, seconds),
		position: 0,
		writer:   writer,
		interval: breathInterval,
	}
	return ba, nil
}

func breathColors(to, from colorful.Color, seconds int) []colorful.Color {
	steps := seconds * stepsPerSecond
	if steps < 1 {
		steps = 1
	}
	keypoints := gradientTable{
		{from, 0.0},
		{to, 0.2},
		{to, 0.8},
		{from, 1.0},
	}
	colors := []colorful.Color{}
	for y := steps; y >= 0; y-- {
		c := keypoints.getInterpolatedColorFor(float64(y) / float64(steps))
		colors = append(colors, c)
	}
	return colors
}

func (a *breathAction) loop() error {
	ticker := time.NewTicker(a.interval)
	defer ticker.Stop()
	for {
		select {
		case t := <-ticker.C:
			if a.position >= len(a.colors) {
				a.position = 0
			}
			color := a.colors[a.position]
			log.WithFields(log.Fields{
				"t":        t,
				"action":   "breath",
				"position": a.position,
				"color":    color.Hex(),
			}).Debug("Tick")
			if err := fill(a.writer, a.panels, color, 1); err != nil {
				log.WithError(err).WithField("action", "breath").Warn("Unable to send frame")
			}
			a.position = a.position + 1
		case <-a.t.Dying():
			return nil
		}
	}
}

func (ba *breathAction) Start() error {
	ba.t.Go(ba.loop)
	return nil
}

func (ba *breathAction) Stop(ctx context.Context) error {
	ba.mu.Lock()
	defer ba.mu.Unlock()

	log.WithField("action", "breath").Info("Stopping")
	ba.t.Kill(nil)

	done := make(chan error, 1)
	go func() { done <- ba.t.Wait() }()
	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (gt gradientTable) getInterpolatedColorFor(t float64) colorful.Color {
	for i := 0; i < len(gt)-1; i++ {
		c1 := gt[i]
		c2 := gt[i+1]
		if c1.Pos <= t && t <= c2.Pos {
			// We are in between c1 and c2. Go blend them!
			t := (t - c1.Pos) / (c2.Pos - c1.Pos)
			return c1.Col.BlendHcl(c2.Col, t).Clamped()
		}
	}
	return gt[len(gt)-1].Col
}
