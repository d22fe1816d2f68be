package aurora

import (
	"context"
	"fmt"

	colorful "github.com/lucasb-eyer/go-colorful"
	"github.com/ngerakines/aurora/client"
	log "github.com/sirupsen/logrus"
)

// PanelWriter queues panel colors and flushes them as one frame. *client.Stream
// satisfies it.
type PanelWriter interface {
	PrepareCommand(c client.PanelCommand)
	Strobe() error
}

// PanelLister returns the ids of the panels to draw on. *client.Layout satisfies it.
type PanelLister interface {
	PanelIDs(ctx context.Context) ([]int, error)
}

type Action interface {
	Start() error
	Stop(ctx context.Context) error
}

type noOpAction struct {
}

type solidFillAction struct {
	panels []int
	color  colorful.Color

	writer PanelWriter
}

func NewNoOpAction() Action {
	return &noOpAction{}
}

func NewSolidFillAction(writer PanelWriter, panels []int, color colorful.Color) (Action, error) {
	if !color.IsValid() {
		return nil, fmt.Errorf("error: invalid color")
	}
	return &solidFillAction{panels, color, writer}, nil
}

func (a *solidFillAction) Start() error {
	return fill(a.writer, a.panels, a.color, client.DefaultTransition)
}

func (a *solidFillAction) Stop(ctx context.Context) error {
	log.WithField("action", "solidfill").Info("Stopping")
	return nil
}

func (noOpAction) Start() error {
	return nil
}

func (noOpAction) Stop(ctx context.Context) error {
	log.WithField("action", "noOpAction").Info("Stopping")
	return nil
}

// fill sets every panel to color in a single frame.
func fill(writer PanelWriter, panels []int, color colorful.Color, transition int) error {
	r, g, b := color.Clamped().RGB255()
	for _, panel := range panels {
		writer.PrepareCommand(client.NewPanelCommand(panel, int(r), int(g), int(b), client.WithTransition(transition)))
	}
	return writer.Strobe()
}

// ClearPanels paints every panel in the layout with the given hex color ("#RRGGBB").
func ClearPanels(ctx context.Context, lister PanelLister, writer PanelWriter, hex string) error {
	color, err := colorful.Hex(hex)
	if err != nil {
		return err
	}
	if !color.IsValid() {
		return fmt.Errorf("error: color %s is invalid", hex)
	}
	panels, err := lister.PanelIDs(ctx)
	if err != nil {
		return err
	}

	log.WithFields(log.Fields{
		"panels": len(panels),
		"hex":    color.Hex(),
	}).Debug("Setting panel colors")
	return fill(writer, panels, color, client.DefaultTransition)
}
