package main

import (
	"encoding/json"
	"fmt"
	"os"

	"drv8711/core"
)

// Config holds the initial driver settings applied at startup.
type Config struct {
	StepMode   uint16 `json:"step_mode"`
	Gain       uint16 `json:"gain"`
	DeadTimeNs uint16 `json:"dead_time_ns"`
	Torque     uint8  `json:"torque"`
	OffTime    uint8  `json:"off_time"`
}

// LoadConfig parses a JSON configuration file and fills in defaults.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	applyDefaults(&cfg)
	return &cfg, nil
}

// applyDefaults fills missing values with the chip's power-on
// configuration.
func applyDefaults(cfg *Config) {
	if cfg.StepMode == 0 {
		cfg.StepMode = core.MicroStep4
	}
	if cfg.Gain == 0 {
		cfg.Gain = core.Gain20
	}
	if cfg.DeadTimeNs == 0 {
		cfg.DeadTimeNs = core.DeadTime850ns
	}
	if cfg.Torque == 0 {
		cfg.Torque = 0xFF
	}
	if cfg.OffTime == 0 {
		cfg.OffTime = 0x30
	}
}

// Apply pushes every setting to the device.
func (cfg *Config) Apply(dev *core.Device) error {
	if err := dev.SetStepMode(cfg.StepMode); err != nil {
		return err
	}
	if err := dev.SetGain(cfg.Gain); err != nil {
		return err
	}
	if err := dev.SetDeadTime(cfg.DeadTimeNs); err != nil {
		return err
	}
	if err := dev.SetTorque(cfg.Torque); err != nil {
		return err
	}
	return dev.SetOffTime(cfg.OffTime)
}
