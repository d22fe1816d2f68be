package client

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLayoutPanelCount(t *testing.T) {
	for _, tt := range []struct {
		name      string
		connected string
		want      int
	}{
		{"rhythm connected", "true", 4},
		{"rhythm disconnected", "false", 5},
	} {
		t.Run(tt.name, func(t *testing.T) {
			f := newFakeController(t)
			f.get("panelLayout/layout/numPanels", "5")
			f.get("rhythm/rhythmConnected", tt.connected)

			count, err := f.client().Layout.PanelCount(context.Background())
			require.NoError(t, err)
			assert.Equal(t, tt.want, count)
		})
	}
}

func TestLayoutPositions(t *testing.T) {
	ctx := context.Background()
	f := newFakeController(t)
	f.get("panelLayout/layout/positionData", `[
		{"panelId": 107, "x": 0, "y": 0, "o": 0, "shapeType": 0},
		{"panelId": 42, "x": 74, "y": 43, "o": 180, "shapeType": 0},
		{"panelId": 9, "x": 37, "y": 120, "o": 0, "shapeType": 1}
	]`)
	f.get("panelLayout/layout/sideLength", "150")
	f.get("panelLayout/globalOrientation/value", "120")
	f.get("panelLayout/globalOrientation/max", "360")
	a := f.client()

	positions, err := a.Layout.PanelPositions(ctx)
	require.NoError(t, err)
	assert.Equal(t, []PanelPosition{
		{PanelID: 107},
		{PanelID: 42, X: 74, Y: 43, O: 180},
		{PanelID: 9, X: 37, Y: 120, ShapeType: ShapeRhythm},
	}, positions)

	ids, err := a.Layout.PanelIDs(ctx)
	require.NoError(t, err)
	assert.Equal(t, []int{107, 42}, ids)

	length, err := a.Layout.PanelLength(ctx)
	require.NoError(t, err)
	assert.Equal(t, 150, length)

	orientation, err := a.Layout.Orientation(ctx)
	require.NoError(t, err)
	assert.Equal(t, 120, orientation)

	max, err := a.Layout.OrientationMax(ctx)
	require.NoError(t, err)
	assert.Equal(t, 360, max)
}

func TestRhythm(t *testing.T) {
	ctx := context.Background()
	f := newFakeController(t)
	f.get("rhythm/rhythmActive", "true")
	f.get("rhythm/rhythmId", "3")
	f.get("rhythm/hardwareVersion", `"2.4"`)
	f.get("rhythm/firmwareVersion", `"1.4.2"`)
	f.get("rhythm/auxAvailable", "false")
	f.get("rhythm/rhythmMode", "1")
	f.get("rhythm/rhythmPos", `{"x": 11.5, "y": 22, "o": 60}`)
	a := f.client()

	active, err := a.Rhythm.Active(ctx)
	require.NoError(t, err)
	assert.True(t, active)

	id, err := a.Rhythm.ID(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, id)

	hw, err := a.Rhythm.HardwareVersion(ctx)
	require.NoError(t, err)
	assert.Equal(t, "2.4", hw)

	fw, err := a.Rhythm.FirmwareVersion(ctx)
	require.NoError(t, err)
	assert.Equal(t, "1.4.2", fw)

	aux, err := a.Rhythm.AuxAvailable(ctx)
	require.NoError(t, err)
	assert.False(t, aux)

	mode, err := a.Rhythm.Mode(ctx)
	require.NoError(t, err)
	assert.Equal(t, RhythmAux, mode)

	pos, err := a.Rhythm.Position(ctx)
	require.NoError(t, err)
	assert.Equal(t, RhythmPosition{X: 11.5, Y: 22, O: 60}, pos)

	require.NoError(t, a.Rhythm.SetMode(ctx, RhythmMicrophone))
	writes := f.writes()
	require.Len(t, writes, 1)
	assert.Equal(t, "rhythm", writes[0].Endpoint)
	assert.Equal(t, map[string]interface{}{"rhythmMode": 0.0}, writes[0].Body)
}
