package client

import (
	"context"

	"github.com/samber/lo"
)

// Layout describes the physical arrangement of panels.
type Layout struct {
	requester *Requester
	rhythm    *Rhythm
}

// Orientation returns the global orientation (0-360).
func (l *Layout) Orientation(ctx context.Context) (int, error) {
	return getValue[int](ctx, l.requester, "panelLayout/globalOrientation/value")
}

func (l *Layout) OrientationMin(ctx context.Context) (int, error) {
	return getValue[int](ctx, l.requester, "panelLayout/globalOrientation/min")
}

func (l *Layout) OrientationMax(ctx context.Context) (int, error) {
	return getValue[int](ctx, l.requester, "panelLayout/globalOrientation/max")
}

// PanelCount returns the number of lighting panels. The rhythm module takes a slot in
// the layout, so it is not counted.
func (l *Layout) PanelCount(ctx context.Context) (int, error) {
	count, err := getValue[int](ctx, l.requester, "panelLayout/layout/numPanels")
	if err != nil {
		return 0, err
	}
	connected, err := l.rhythm.Connected(ctx)
	if err != nil {
		return 0, err
	}
	if connected {
		count--
	}
	return count, nil
}

// PanelLength returns the side length of a single panel.
func (l *Layout) PanelLength(ctx context.Context) (int, error) {
	return getValue[int](ctx, l.requester, "panelLayout/layout/sideLength")
}

// PanelPositions returns every entry of the layout, the rhythm module included.
func (l *Layout) PanelPositions(ctx context.Context) ([]PanelPosition, error) {
	return getValue[[]PanelPosition](ctx, l.requester, "panelLayout/layout/positionData")
}

// PanelIDs returns the ids of the lighting panels in the layout. The rhythm module has
// no light and is left out.
func (l *Layout) PanelIDs(ctx context.Context) ([]int, error) {
	positions, err := l.PanelPositions(ctx)
	if err != nil {
		return nil, err
	}
	panels := lo.Filter(positions, func(p PanelPosition, _ int) bool { return p.ShapeType != ShapeRhythm })
	return lo.Map(panels, func(p PanelPosition, _ int) int { return p.PanelID }), nil
}
