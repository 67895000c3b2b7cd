package core

// RegisterBus moves 16-bit words to and from the DRV8711 register
// file. Two implementations exist: Transport, for a locally attached
// SPI bus, and host/bridge.Bridge, which forwards transactions through
// a serial-attached MCU. The register model works identically over
// either.
type RegisterBus interface {
	// ReadRegister returns the device's reply word verbatim. Only the
	// low 12 bits (fewer for most registers) carry register content;
	// callers mask off the framing bits per register.
	ReadRegister(addr uint8) (uint16, error)

	// WriteRegister stores the low 12 bits of value at addr. The SPI
	// protocol carries no acknowledgment, so a nil error means the
	// word was clocked out, not that a device acted on it.
	WriteRegister(addr uint8, value uint16) error
}

// SelectPin drives the chip-select line. The DRV8711 selects on high.
// Platform code adapts its own GPIO type; on TinyGo targets a
// machine.Pin satisfies this through a one-line wrapper.
type SelectPin interface {
	Set(high bool)
}

// SelectPinFunc adapts a plain function to SelectPin.
type SelectPinFunc func(high bool)

func (f SelectPinFunc) Set(high bool) { f(high) }
