// Package bridge drives a DRV8711 through an MCU that forwards framed
// register transactions from a serial link to its local SPI bus. A
// Bridge implements core.RegisterBus, so a core.Device works
// identically over a local bus or a serial bridge.
package bridge

import (
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"drv8711/host/serial"
	"drv8711/protocol"
)

// ErrTimeout is returned when the MCU does not answer a read in time.
var ErrTimeout = errors.New("bridge: no reply from MCU")

// Bridge is the host end of the register bridge. Safe for concurrent
// use; each transaction holds the port for its full duration.
type Bridge struct {
	// Timeout bounds how long ReadRegister waits for a reply.
	Timeout time.Duration

	mu   sync.Mutex
	port serial.Port
	dec  protocol.Decoder
	seq  uint8
	rbuf [protocol.LengthMax]byte
}

// Open connects to the bridge MCU on the named serial device.
func Open(device string, baud int) (*Bridge, error) {
	cfg := serial.DefaultConfig(device)
	if baud != 0 {
		cfg.Baud = baud
	}
	port, err := serial.Open(cfg)
	if err != nil {
		return nil, fmt.Errorf("bridge: %w", err)
	}
	return New(port), nil
}

// New wraps an already-open port.
func New(port serial.Port) *Bridge {
	return &Bridge{port: port, Timeout: time.Second}
}

// Close closes the underlying port.
func (b *Bridge) Close() error {
	return b.port.Close()
}

// WriteRegister sends a write frame. Writes are fire-and-forget, like
// the SPI transactions they carry: a nil error means the frame went
// out, not that the device acted on it.
func (b *Bridge) WriteRegister(addr uint8, value uint16) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.send(protocol.WriteRegisterPayload(addr, value))
}

// ReadRegister sends a read frame and waits for the matching reply.
// The returned word is the device's SPI reply verbatim, exactly as a
// local Transport would deliver it.
func (b *Bridge) ReadRegister(addr uint8) (uint16, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.send(protocol.ReadRegisterPayload(addr)); err != nil {
		return 0, err
	}
	want := b.seq

	deadline := time.Now().Add(b.Timeout)
	for {
		for {
			seq, payload, ok := b.dec.Next()
			if !ok {
				break
			}
			if seq != want || len(payload) != 4 ||
				payload[0] != protocol.RspRegisterValue || payload[1] != addr {
				continue // stale reply from an earlier, timed-out read
			}
			return uint16(payload[2])<<8 | uint16(payload[3]), nil
		}

		if time.Now().After(deadline) {
			return 0, ErrTimeout
		}

		n, err := b.port.Read(b.rbuf[:])
		if err != nil && err != io.EOF {
			return 0, fmt.Errorf("bridge: read reply: %w", err)
		}
		if n > 0 {
			b.dec.Feed(b.rbuf[:n])
		}
	}
}

func (b *Bridge) send(payload []byte) error {
	b.seq++
	frame, err := protocol.EncodeFrame(b.seq, payload)
	if err != nil {
		return err
	}
	if _, err := b.port.Write(frame); err != nil {
		return fmt.Errorf("bridge: write frame: %w", err)
	}
	return nil
}
