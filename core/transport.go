package core

import (
	"encoding/binary"
	"fmt"

	"tinygo.org/x/drivers"
)

// SPI bus requirements. The DRV8711 samples data on the rising clock
// edge with the clock idle low and expects the most significant bit
// first. The clock must stay at or below SPIMaxClockHz; a faster clock
// corrupts transfers silently, since nothing in the protocol would
// reveal it. Target bindings configure the bus from these constants.
const (
	SPIMaxClockHz = 500000
	SPIMode       = 0
)

// Transport frames single-register transactions on a local SPI bus.
// The DRV8711 only commits a written value when chip select falls
// after the transfer, so every transaction is select, one 16-bit
// exchange, deselect, with nothing interleaved. A Transport is not
// safe for concurrent use and a transaction cannot be interrupted or
// retried; a hung bus blocks the caller.
type Transport struct {
	bus drivers.SPI
	cs  SelectPin
	tx  [2]byte
	rx  [2]byte
}

// NewTransport binds an SPI bus and chip-select pin. The pin must
// already be configured as an output; it is driven low (deselected)
// here, before any transaction.
func NewTransport(bus drivers.SPI, cs SelectPin) *Transport {
	t := &Transport{bus: bus, cs: cs}
	t.cs.Set(false)
	return t
}

// ReadRegister reads the register at addr and returns the device's
// 16-bit reply verbatim, framing bits included.
func (t *Transport) ReadRegister(addr uint8) (uint16, error) {
	return t.exchange((READ_BIT | uint16(addr)) << ADDR_SHIFT)
}

// WriteRegister stores the low 12 bits of value at addr. The value
// takes effect inside the device when chip select falls at the end of
// the transaction.
func (t *Transport) WriteRegister(addr uint8, value uint16) error {
	_, err := t.exchange(uint16(addr)<<ADDR_SHIFT | value&DATA_MASK)
	return err
}

// exchange clocks one word out MSB first and returns the word clocked
// in. Chip select is dropped on every path, including a failed Tx.
func (t *Transport) exchange(word uint16) (uint16, error) {
	binary.BigEndian.PutUint16(t.tx[:], word)
	t.cs.Set(true)
	err := t.bus.Tx(t.tx[:], t.rx[:])
	t.cs.Set(false)
	if err != nil {
		return 0, fmt.Errorf("drv8711: spi transfer: %w", err)
	}
	return binary.BigEndian.Uint16(t.rx[:]), nil
}
