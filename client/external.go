package client

import (
	"net"
	"sync"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

const (
	// colorMode is the fixed second byte of every panel record.
	colorMode = 1

	// RecordSize is the length of one panel record in a frame.
	RecordSize = 7

	// DefaultTransition is the transition time used when none is given, in tenths of a
	// second.
	DefaultTransition = 1

	sendTimeout = time.Second
)

// PanelCommand sets one panel to a color. Every field is sent as a single byte, so
// values outside 0-255 wrap; callers are expected to validate them.
type PanelCommand struct {
	PanelID    int
	R, G, B, W int
	Transition int
}

// PanelOption adjusts a PanelCommand built by Set or Prepare.
type PanelOption func(*PanelCommand)

// WithWhite sets the white channel.
func WithWhite(w int) PanelOption {
	return func(c *PanelCommand) {
		c.W = w
	}
}

// WithTransition sets the transition time in tenths of a second.
func WithTransition(t int) PanelOption {
	return func(c *PanelCommand) {
		c.Transition = t
	}
}

// NewPanelCommand builds a command with no white and the default transition.
func NewPanelCommand(panelID, r, g, b int, opts ...PanelOption) PanelCommand {
	c := PanelCommand{PanelID: panelID, R: r, G: g, B: b, Transition: DefaultTransition}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

func (c PanelCommand) appendRecord(buf []byte) []byte {
	return append(buf,
		byte(c.PanelID),
		colorMode,
		byte(c.R),
		byte(c.G),
		byte(c.B),
		byte(c.W),
		byte(c.Transition),
	)
}

// EncodeFrame lays out commands as [count, record...] where each record is
// [panelID, 1, r, g, b, w, transition]. count is the number of panels and wraps past 255.
func EncodeFrame(commands []PanelCommand) []byte {
	buf := make([]byte, 0, 1+len(commands)*RecordSize)
	buf = append(buf, byte(len(commands)))
	for _, c := range commands {
		buf = c.appendRecord(buf)
	}
	return buf
}

// DecodeFrame parses a frame produced by EncodeFrame.
func DecodeFrame(frame []byte) ([]PanelCommand, error) {
	if len(frame) == 0 {
		return nil, errors.New("empty frame")
	}
	count := int(frame[0])
	if len(frame) != 1+count*RecordSize {
		return nil, errors.Errorf("frame of %d bytes cannot hold %d panels", len(frame), count)
	}
	commands := make([]PanelCommand, 0, count)
	for i := 0; i < count; i++ {
		r := frame[1+i*RecordSize : 1+(i+1)*RecordSize]
		if r[1] != colorMode {
			return nil, errors.Errorf("panel %d: unexpected color mode %d", r[0], r[1])
		}
		commands = append(commands, PanelCommand{
			PanelID:    int(r[0]),
			R:          int(r[2]),
			G:          int(r[3]),
			B:          int(r[4]),
			W:          int(r[5]),
			Transition: int(r[6]),
		})
	}
	return commands, nil
}

// Stream sends external control frames to a controller over UDP. Delivery is best
// effort: there is no acknowledgement. A Stream owns its socket until Close.
type Stream struct {
	address string
	conn    net.Conn

	mu      sync.Mutex
	pending []PanelCommand
}

// DialStream opens a stream to address (host:port).
func DialStream(address string) (*Stream, error) {
	conn, err := net.Dial("udp", address)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to connect to %s", address)
	}
	log.WithField("address", address).Debug("external control stream opened")
	return &Stream{address: address, conn: conn}, nil
}

// Address returns the controller's stream endpoint.
func (s *Stream) Address() string {
	return s.address
}

func (s *Stream) send(frame []byte) error {
	if err := s.conn.SetWriteDeadline(time.Now().Add(sendTimeout)); err != nil {
		return errors.Wrap(err, "unable to set write deadline")
	}
	if _, err := s.conn.Write(frame); err != nil {
		return errors.Wrapf(err, "unable to send frame to %s", s.address)
	}
	return nil
}

// Set sends a single panel update immediately. Pending commands are not affected.
func (s *Stream) Set(panelID, r, g, b int, opts ...PanelOption) error {
	return s.send(EncodeFrame([]PanelCommand{NewPanelCommand(panelID, r, g, b, opts...)}))
}

// Prepare queues a panel update for the next Strobe.
func (s *Stream) Prepare(panelID, r, g, b int, opts ...PanelOption) {
	s.PrepareCommand(NewPanelCommand(panelID, r, g, b, opts...))
}

// PrepareCommand queues c for the next Strobe. Commands keep their order and repeated
// panel ids are all sent.
func (s *Stream) PrepareCommand(c PanelCommand) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending = append(s.pending, c)
}

// Pending returns the number of queued commands.
func (s *Stream) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pending)
}

// Strobe sends every queued command as one frame and clears the queue. With nothing
// queued it sends the one byte frame [0].
func (s *Stream) Strobe() error {
	s.mu.Lock()
	batch := s.pending
	s.pending = nil
	s.mu.Unlock()

	log.WithFields(log.Fields{
		"address": s.address,
		"count":   len(batch),
	}).Debug("publishing commands")
	return s.send(EncodeFrame(batch))
}

// Close releases the socket. Queued commands are dropped.
func (s *Stream) Close() error {
	s.mu.Lock()
	s.pending = nil
	s.mu.Unlock()
	return s.conn.Close()
}
