package core

// DRV8711 Register Definitions
// Based on DRV8711 datasheet SLVSC40G
// Texas Instruments Incorporated

// DRV8711 Register Addresses
const (
	REG_CTRL   = 0x00 // Motor enable, stepping and current-sense control
	REG_TORQUE = 0x01 // Torque DAC and back-EMF sample threshold
	REG_OFF    = 0x02 // Fixed off time and PWM mode
	REG_BLANK  = 0x03 // Current trip blanking time
	REG_DECAY  = 0x04 // Decay mode and transition time
	REG_STALL  = 0x05 // Stall detection (not configured by this driver)
	REG_DRIVE  = 0x06 // Gate drive (not configured by this driver)
	REG_STATUS = 0x07 // Fault status flags
)

// CTRL Register Bit Definitions
const (
	CTRL_ENBL  = 1 << 0 // Enable motor outputs
	CTRL_RDIR  = 1 << 1 // Invert the sense of the DIR pin
	CTRL_RSTEP = 1 << 2 // Advance the indexer one step (self-clearing)

	CTRL_MODE_MASK  = 0xF << 3 // Microstep resolution field
	CTRL_MODE_SHIFT = 3

	CTRL_EXSTALL = 1 << 7 // Stall detect from the external STALLn input

	CTRL_ISGAIN_MASK  = 0x3 << 8 // Current-sense amplifier gain field
	CTRL_ISGAIN_SHIFT = 8

	CTRL_DTIME_MASK  = 0x3 << 10 // Output dead time field
	CTRL_DTIME_SHIFT = 10
)

// TORQUE Register Bit Definitions
const (
	TORQUE_TORQUE_MASK = 0xFF     // Full-scale output current DAC
	TORQUE_SMPLTH_MASK = 0x7 << 8 // Back-EMF sample threshold
)

// OFF Register Bit Definitions
const (
	OFF_TOFF_MASK = 0xFF   // Fixed off time, 500 ns increments
	OFF_PWMMODE   = 1 << 8 // Bypass the indexer, outputs follow xINx
)

// BLANK Register Bit Definitions
const (
	BLANK_TBLANK_MASK = 0xFF   // Current trip blanking time, 20 ns increments
	BLANK_ABT         = 1 << 8 // Adaptive blanking time
)

// DECAY Register Bit Definitions
const (
	DECAY_TDECAY_MASK = 0xFF     // Mixed decay transition time, 500 ns increments
	DECAY_DECMOD_MASK = 0x7 << 8 // Decay mode select
)

// STATUS Register Bit Definitions
const (
	STATUS_OTS    = 1 << 0 // Overtemperature shutdown
	STATUS_AOCP   = 1 << 1 // Channel A overcurrent shutdown
	STATUS_BOCP   = 1 << 2 // Channel B overcurrent shutdown
	STATUS_APDF   = 1 << 3 // Channel A predriver fault
	STATUS_BPDF   = 1 << 4 // Channel B predriver fault
	STATUS_UVLO   = 1 << 5 // Undervoltage lockout
	STATUS_STD    = 1 << 6 // Stall detected
	STATUS_STDLAT = 1 << 7 // Latched stall detect

	STATUS_MASK = 0xFF // All defined fault flags
)

// Power-on reset values. The shadow registers start from these so the
// first setter call flushes an image consistent with the chip's own
// state after reset.
const (
	CTRL_DEFAULT   = 0xC10
	TORQUE_DEFAULT = 0x1FF
	OFF_DEFAULT    = 0x30
	BLANK_DEFAULT  = 0x80
	DECAY_DEFAULT  = 0x110
	STATUS_DEFAULT = 0x0
)

// SPI command word framing. The top nibble of each 16-bit word carries
// the read flag and register address; the low 12 bits carry data.
const (
	READ_BIT   = 0x8
	ADDR_SHIFT = 12
	DATA_MASK  = 0xFFF
)

// Microstep resolutions accepted by SetStepMode
const (
	MicroStep1   = 1
	MicroStep2   = 2
	MicroStep4   = 4
	MicroStep8   = 8
	MicroStep16  = 16
	MicroStep32  = 32
	MicroStep64  = 64
	MicroStep128 = 128
	MicroStep256 = 256
)

// Current-sense amplifier gains accepted by SetGain
const (
	Gain5  = 5
	Gain10 = 10
	Gain20 = 20
	Gain40 = 40
)

// Dead times in nanoseconds accepted by SetDeadTime
const (
	DeadTime400ns = 400
	DeadTime450ns = 450
	DeadTime650ns = 650
	DeadTime850ns = 850
)
