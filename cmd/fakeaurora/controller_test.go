package main

import (
	"context"
	"net"
	"net/http/httptest"
	"net/url"
	"strconv"
	"testing"
	"time"

	"github.com/ngerakines/aurora/client"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startController(t *testing.T, rhythm bool) (*client.Aurora, net.PacketConn) {
	streamConn, err := net.ListenPacket("udp", "127.0.0.1:0")
	require.NoError(t, err)
	t.Cleanup(func() { streamConn.Close() })

	ctrl := newController("tok", 5, rhythm, streamConn.LocalAddr().(*net.UDPAddr))
	server := httptest.NewServer(ctrl)
	t.Cleanup(server.Close)

	u, err := url.Parse(server.URL)
	require.NoError(t, err)
	port, err := strconv.Atoi(u.Port())
	require.NoError(t, err)

	return client.New(client.Config{Address: u.Hostname(), Token: "tok"}, client.WithPort(port)), streamConn
}

func TestControllerState(t *testing.T) {
	ctx := context.Background()
	a, _ := startController(t, true)

	require.NoError(t, a.State.SetOff(ctx, true))
	on, err := a.State.On(ctx)
	require.NoError(t, err)
	assert.False(t, on)

	require.NoError(t, a.State.Toggle(ctx))
	on, err = a.State.On(ctx)
	require.NoError(t, err)
	assert.True(t, on)

	require.NoError(t, a.State.SetBrightness(ctx, 50))
	require.NoError(t, a.State.RaiseBrightness(ctx, 70))
	brightness, err := a.State.Brightness(ctx)
	require.NoError(t, err)
	assert.Equal(t, 100, brightness)

	require.NoError(t, a.State.SetHex(ctx, "00FF00"))
	color, ok, err := a.State.RGB(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, client.RGB{R: 0, G: 255, B: 0}, color)

	mode, err := a.ColorMode(ctx)
	require.NoError(t, err)
	assert.Equal(t, "hs", mode)
}

func TestControllerLayout(t *testing.T) {
	ctx := context.Background()

	withRhythm, _ := startController(t, true)
	count, err := withRhythm.Layout.PanelCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, 5, count)

	withoutRhythm, _ := startController(t, false)
	count, err = withoutRhythm.Layout.PanelCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, 5, count)

	ids, err := withoutRhythm.Layout.PanelIDs(ctx)
	require.NoError(t, err)
	assert.Equal(t, []int{100, 101, 102, 103, 104}, ids)

	positions, err := withRhythm.Layout.PanelPositions(ctx)
	require.NoError(t, err)
	assert.Len(t, positions, 6)

	ids, err = withRhythm.Layout.PanelIDs(ctx)
	require.NoError(t, err)
	assert.Equal(t, []int{100, 101, 102, 103, 104}, ids)
}

func TestControllerEffects(t *testing.T) {
	ctx := context.Background()
	a, _ := startController(t, true)

	selected, err := a.Effects.Random(ctx)
	require.NoError(t, err)
	assert.NotEqual(t, "Flames", selected)

	current, err := a.Effects.Current(ctx)
	require.NoError(t, err)
	assert.Equal(t, selected, current)

	require.NoError(t, a.Effects.Rename(ctx, "Nemo", "Dory"))
	require.NoError(t, a.Effects.Delete(ctx, "Snowfall"))
	list, err := a.Effects.List(ctx)
	require.NoError(t, err)
	assert.Contains(t, list, "Dory")
	assert.NotContains(t, list, "Snowfall")
	assert.NotContains(t, list, "Nemo")

	_, err = a.Effects.Details(ctx, "Missing")
	assert.True(t, errors.Is(err, client.ErrResourceNotFound))
}

func TestControllerStream(t *testing.T) {
	a, streamConn := startController(t, false)

	stream, err := a.Effects.Stream(context.Background())
	require.NoError(t, err)
	defer stream.Close()

	stream.Prepare(100, 255, 0, 0)
	stream.Prepare(101, 0, 0, 255, client.WithTransition(5))
	require.NoError(t, stream.Strobe())

	buf := make([]byte, 256)
	require.NoError(t, streamConn.SetReadDeadline(time.Now().Add(2*time.Second)))
	n, _, err := streamConn.ReadFrom(buf)
	require.NoError(t, err)

	commands, err := client.DecodeFrame(buf[:n])
	require.NoError(t, err)
	assert.Equal(t, []client.PanelCommand{
		client.NewPanelCommand(100, 255, 0, 0),
		client.NewPanelCommand(101, 0, 0, 255, client.WithTransition(5)),
	}, commands)
}

func TestControllerWrongToken(t *testing.T) {
	a, _ := startController(t, false)

	bad := client.New(client.Config{Address: "127.0.0.1", Token: "nope"}, client.WithPort(portOf(t, a)))
	_, err := bad.State.On(context.Background())
	assert.True(t, errors.Is(err, client.ErrInvalidCredentials))
}

func portOf(t *testing.T, a *client.Aurora) int {
	u, err := url.Parse(a.Requester().BaseURL())
	require.NoError(t, err)
	port, err := strconv.Atoi(u.Port())
	require.NoError(t, err)
	return port
}
