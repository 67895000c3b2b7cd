package core

// Device is the register model for one DRV8711. It keeps a shadow
// image of each writable register, starting from the chip's power-on
// reset value, and every setter rewrites one field in the shadow and
// flushes the whole register to the bus. A shadow is committed only
// after its write went out, so it always holds the last value
// successfully written (the chip never acknowledges anything, so
// "successfully" means the bus mechanism did not fail). Shadows are
// never refreshed from the device; only ReadStatus uses the bus read
// path.
//
// A Device is not safe for concurrent use. Callers sharing one chip
// must serialize access externally.
type Device struct {
	bus RegisterBus

	ctrl   uint16
	torque uint16
	off    uint16
	blank  uint16
	decay  uint16
}

// New returns a Device whose shadow registers hold the DRV8711
// power-on reset values. Nothing is written to the bus until the first
// setter call.
func New(bus RegisterBus) *Device {
	return &Device{
		bus:    bus,
		ctrl:   CTRL_DEFAULT,
		torque: TORQUE_DEFAULT,
		off:    OFF_DEFAULT,
		blank:  BLANK_DEFAULT,
		decay:  DECAY_DEFAULT,
	}
}

// Enable sets CTRL.ENBL, turning the motor outputs on.
func (d *Device) Enable() error {
	return d.writeCTRL(d.ctrl | CTRL_ENBL)
}

// Disable clears CTRL.ENBL, leaving every other CTRL field alone.
func (d *Device) Disable() error {
	return d.writeCTRL(d.ctrl &^ CTRL_ENBL)
}

// FlipDirection toggles CTRL.RDIR, inverting the sense of the DIR pin.
func (d *Device) FlipDirection() error {
	return d.writeCTRL(d.ctrl ^ CTRL_RDIR)
}

// Step pulses CTRL.RSTEP, advancing the indexer one microstep. The
// device clears the bit itself after consuming the pulse, so the
// shadow keeps RSTEP clear rather than caching a value the chip has
// already discarded.
func (d *Device) Step() error {
	return d.bus.WriteRegister(REG_CTRL, d.ctrl|CTRL_RSTEP)
}

// SetStepMode selects the microstep resolution: 1, 2, 4, 8, 16, 32,
// 64, 128 or 256 microsteps per full step. Any other value selects
// 1/4 step, the chip's power-on default.
func (d *Device) SetStepMode(mode uint16) error {
	return d.writeCTRL(setField(d.ctrl, CTRL_MODE_MASK, CTRL_MODE_SHIFT, stepModeCode(mode)))
}

// SetExternalStallDetection routes stall detection to the external
// STALLn input.
func (d *Device) SetExternalStallDetection() error {
	return d.writeCTRL(d.ctrl | CTRL_EXSTALL)
}

// SetInternalStallDetection uses the chip's internal stall detect,
// the power-on behavior.
func (d *Device) SetInternalStallDetection() error {
	return d.writeCTRL(d.ctrl &^ CTRL_EXSTALL)
}

// SetGain sets the current-sense amplifier gain to 5, 10, 20 or 40.
// Any other value selects 20, the chip's power-on default.
func (d *Device) SetGain(gain uint16) error {
	return d.writeCTRL(setField(d.ctrl, CTRL_ISGAIN_MASK, CTRL_ISGAIN_SHIFT, gainCode(gain)))
}

// SetDeadTime sets the output dead time to 400, 450, 650 or 850 ns.
// Any other value selects 850 ns, the chip's power-on default.
func (d *Device) SetDeadTime(ns uint16) error {
	return d.writeCTRL(setField(d.ctrl, CTRL_DTIME_MASK, CTRL_DTIME_SHIFT, deadTimeCode(ns)))
}

// SetTorque sets the full-scale output current DAC value, preserving
// the back-EMF sample threshold in TORQUE[10:8]. See the current
// equation in the datasheet for scaling.
func (d *Device) SetTorque(value uint8) error {
	image := d.torque&^TORQUE_TORQUE_MASK | uint16(value)
	if err := d.bus.WriteRegister(REG_TORQUE, image); err != nil {
		return err
	}
	d.torque = image
	return nil
}

// SetOffTime sets the fixed off time in 500 ns increments, preserving
// the PWMMODE bit.
func (d *Device) SetOffTime(value uint8) error {
	image := d.off&^OFF_TOFF_MASK | uint16(value)
	if err := d.bus.WriteRegister(REG_OFF, image); err != nil {
		return err
	}
	d.off = image
	return nil
}

// TogglePWMMode flips OFF.PWMMODE between the internal indexer and
// direct xINx control of the outputs.
func (d *Device) TogglePWMMode() error {
	image := d.off ^ OFF_PWMMODE
	if err := d.bus.WriteRegister(REG_OFF, image); err != nil {
		return err
	}
	d.off = image
	return nil
}

// ReadStatus reads the STATUS register from the device and returns the
// fault flags (the STATUS_* bits). Framing bits above the flags are
// masked off.
func (d *Device) ReadStatus() (uint16, error) {
	status, err := d.bus.ReadRegister(REG_STATUS)
	if err != nil {
		return 0, err
	}
	return status & STATUS_MASK, nil
}

// ClearStatus writes zero to STATUS, clearing latched fault flags.
func (d *Device) ClearStatus() error {
	return d.bus.WriteRegister(REG_STATUS, 0)
}

func (d *Device) writeCTRL(image uint16) error {
	if err := d.bus.WriteRegister(REG_CTRL, image); err != nil {
		return err
	}
	d.ctrl = image
	return nil
}
