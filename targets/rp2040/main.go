//go:build rp2040

// Bridge firmware for the RP2040: forwards framed register
// transactions from the USB serial port to a DRV8711 on SPI0.
//
// Wiring (SPI0, "spi0a" pin set):
//   - SCK:  GPIO2
//   - SDO:  GPIO3  (to DRV8711 SDATI)
//   - SDI:  GPIO0  (from DRV8711 SDATO)
//   - SCS:  GPIO5  (DRV8711 chip select, active high)
package main

import (
	"machine"
	"time"

	"drv8711/core"
	"drv8711/protocol"
)

const (
	sckPin = machine.GPIO2
	sdoPin = machine.GPIO3
	sdiPin = machine.GPIO0
	scsPin = machine.GPIO5
)

// machinePin adapts a machine.Pin to core.SelectPin.
type machinePin struct {
	pin machine.Pin
}

func (p machinePin) Set(high bool) {
	p.pin.Set(high)
}

func main() {
	err := machine.SPI0.Configure(machine.SPIConfig{
		Frequency: core.SPIMaxClockHz,
		SCK:       sckPin,
		SDO:       sdoPin,
		SDI:       sdiPin,
		Mode:      core.SPIMode,
	})
	if err != nil {
		for {
			time.Sleep(time.Second)
		}
	}

	cs := scsPin
	cs.Configure(machine.PinConfig{Mode: machine.PinOutput})
	transport := core.NewTransport(machine.SPI0, machinePin{cs})

	var dec protocol.Decoder
	for {
		if machine.Serial.Buffered() == 0 {
			time.Sleep(time.Millisecond)
			continue
		}
		for machine.Serial.Buffered() > 0 {
			b, err := machine.Serial.ReadByte()
			if err != nil {
				break
			}
			dec.Feed([]byte{b})
		}
		for {
			seq, payload, ok := dec.Next()
			if !ok {
				break
			}
			handle(transport, seq, payload)
		}
	}
}

// handle executes one decoded command against the local bus. Bus
// errors are dropped: the link back to the host carries no error
// channel, matching the SPI protocol's own silence.
func handle(t *core.Transport, seq uint8, payload []byte) {
	switch {
	case len(payload) == 4 && payload[0] == protocol.CmdWriteRegister:
		value := uint16(payload[2])<<8 | uint16(payload[3])
		_ = t.WriteRegister(payload[1], value)

	case len(payload) == 2 && payload[0] == protocol.CmdReadRegister:
		value, err := t.ReadRegister(payload[1])
		if err != nil {
			return
		}
		frame, err := protocol.EncodeFrame(seq, protocol.RegisterValuePayload(payload[1], value))
		if err != nil {
			return
		}
		machine.Serial.Write(frame)
	}
}
