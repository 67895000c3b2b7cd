// Package protocol implements the framing spoken between the host and
// a serial-attached MCU bridge that forwards DRV8711 register
// transactions to its local SPI bus. A frame is
//
//	[length sequence payload... crcHi crcLo sync]
//
// where length counts the whole frame, the CRC covers everything from
// length through the end of the payload, and the trailing sync byte
// bounds resynchronization after line corruption.
package protocol

import (
	"bytes"
	"errors"
)

const (
	HeaderSize  = 2
	TrailerSize = 3
	LengthMin   = HeaderSize + TrailerSize
	LengthMax   = 64
	SyncByte    = 0x7E
)

// Payload command bytes. Register values travel big-endian.
const (
	CmdWriteRegister = 0x01 // [cmd addr valueHi valueLo]
	CmdReadRegister  = 0x02 // [cmd addr]
	RspRegisterValue = 0x82 // [cmd addr valueHi valueLo]
)

var ErrFrameTooLong = errors.New("protocol: frame exceeds maximum length")

// EncodeFrame wraps payload in a framed message carrying seq.
func EncodeFrame(seq uint8, payload []byte) ([]byte, error) {
	n := HeaderSize + len(payload) + TrailerSize
	if n > LengthMax {
		return nil, ErrFrameTooLong
	}
	frame := make([]byte, 0, n)
	frame = append(frame, byte(n), seq)
	frame = append(frame, payload...)
	crc := CRC16(frame)
	return append(frame, byte(crc>>8), byte(crc), SyncByte), nil
}

// WriteRegisterPayload builds the payload of a write-register command.
func WriteRegisterPayload(addr uint8, value uint16) []byte {
	return []byte{CmdWriteRegister, addr, byte(value >> 8), byte(value)}
}

// ReadRegisterPayload builds the payload of a read-register command.
func ReadRegisterPayload(addr uint8) []byte {
	return []byte{CmdReadRegister, addr}
}

// RegisterValuePayload builds the payload of a read reply.
func RegisterValuePayload(addr uint8, value uint16) []byte {
	return []byte{RspRegisterValue, addr, byte(value >> 8), byte(value)}
}

// Decoder reassembles frames from a byte stream. The zero value is
// ready to use and starts synchronized; any malformed frame drops it
// back to hunting for the next sync byte, discarding garbage along the
// way.
type Decoder struct {
	buf  []byte
	lost bool
}

// Feed appends raw bytes received from the link.
func (d *Decoder) Feed(p []byte) {
	d.buf = append(d.buf, p...)
}

// Next returns the sequence and payload of the next complete,
// CRC-valid frame. ok is false when no complete frame is buffered yet.
// The returned payload is a copy and stays valid across Feed calls.
func (d *Decoder) Next() (seq uint8, payload []byte, ok bool) {
	for {
		if d.lost {
			i := bytes.IndexByte(d.buf, SyncByte)
			if i < 0 {
				d.buf = d.buf[:0]
				return 0, nil, false
			}
			d.buf = d.buf[i+1:]
			d.lost = false
		}

		// Skip sync bytes between frames.
		for len(d.buf) > 0 && d.buf[0] == SyncByte {
			d.buf = d.buf[1:]
		}
		if len(d.buf) < LengthMin {
			return 0, nil, false
		}

		n := int(d.buf[0])
		if n < LengthMin || n > LengthMax {
			d.lost = true
			continue
		}
		if len(d.buf) < n {
			return 0, nil, false
		}
		if d.buf[n-1] != SyncByte {
			d.lost = true
			continue
		}
		want := uint16(d.buf[n-3])<<8 | uint16(d.buf[n-2])
		if CRC16(d.buf[:n-TrailerSize]) != want {
			d.lost = true
			continue
		}

		seq = d.buf[1]
		payload = append([]byte(nil), d.buf[HeaderSize:n-TrailerSize]...)
		d.buf = d.buf[n:]
		return seq, payload, true
	}
}
