package core

// Bitfield encoders for the DRV8711 register images. Each encoder is a
// total function: an input outside the documented set selects the code
// for the chip's power-on default instead of raising an error, matching
// how the chip itself treats reserved codes.

// stepModeCode maps a microstep resolution to the CTRL MODE field code.
// The case order matches Table 3 of the DRV8711 datasheet. Unknown
// values select 1/4 step, the power-on default.
func stepModeCode(mode uint16) uint16 {
	switch mode {
	case MicroStep1:
		return 0b0000
	case MicroStep2:
		return 0b0001
	case MicroStep4:
		return 0b0010
	case MicroStep8:
		return 0b0011
	case MicroStep16:
		return 0b0100
	case MicroStep32:
		return 0b0101
	case MicroStep64:
		return 0b0110
	case MicroStep128:
		return 0b0111
	case MicroStep256:
		return 0b1000
	}
	return 0b0010
}

// gainCode maps a current-sense amplifier gain to the CTRL ISGAIN field
// code. Unknown values select gain 20, the power-on default.
func gainCode(gain uint16) uint16 {
	switch gain {
	case Gain5:
		return 0b00
	case Gain10:
		return 0b01
	case Gain20:
		return 0b10
	case Gain40:
		return 0b11
	}
	return 0b10
}

// deadTimeCode maps a dead time in nanoseconds to the CTRL DTIME field
// code. Unknown values select 850 ns, the power-on default.
func deadTimeCode(ns uint16) uint16 {
	switch ns {
	case DeadTime400ns:
		return 0b00
	case DeadTime450ns:
		return 0b01
	case DeadTime650ns:
		return 0b10
	case DeadTime850ns:
		return 0b11
	}
	return 0b11
}

// setField replaces the field selected by mask with code, placed at
// shift. The shifted code is masked so an over-wide value can never
// bleed into adjacent fields.
func setField(image, mask uint16, shift uint, code uint16) uint16 {
	return image&^mask | code<<shift&mask
}
