package main

import (
	"os"
	"path/filepath"
	"testing"

	"drv8711/core"
)

type writeLog struct {
	writes []uint16
	addrs  []uint8
}

func (w *writeLog) WriteRegister(addr uint8, value uint16) error {
	w.addrs = append(w.addrs, addr)
	w.writes = append(w.writes, value)
	return nil
}

func (w *writeLog) ReadRegister(addr uint8) (uint16, error) {
	return 0, nil
}

func writeTempConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "drv8711.json")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig(writeTempConfig(t, `{}`))
	if err != nil {
		t.Fatal(err)
	}
	want := Config{
		StepMode:   core.MicroStep4,
		Gain:       core.Gain20,
		DeadTimeNs: core.DeadTime850ns,
		Torque:     0xFF,
		OffTime:    0x30,
	}
	if *cfg != want {
		t.Errorf("defaults = %+v, want %+v", *cfg, want)
	}
}

func TestLoadConfigPartial(t *testing.T) {
	cfg, err := LoadConfig(writeTempConfig(t, `{"step_mode": 16, "gain": 5}`))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.StepMode != 16 || cfg.Gain != 5 {
		t.Errorf("explicit values lost: %+v", cfg)
	}
	if cfg.DeadTimeNs != core.DeadTime850ns {
		t.Errorf("dead time default missing: %+v", cfg)
	}
}

func TestApplyFlushesEverySetting(t *testing.T) {
	cfg, err := LoadConfig(writeTempConfig(t, `{"step_mode": 16}`))
	if err != nil {
		t.Fatal(err)
	}

	log := &writeLog{}
	if err := cfg.Apply(core.New(log)); err != nil {
		t.Fatal(err)
	}

	wantAddrs := []uint8{core.REG_CTRL, core.REG_CTRL, core.REG_CTRL, core.REG_TORQUE, core.REG_OFF}
	if len(log.addrs) != len(wantAddrs) {
		t.Fatalf("%d writes, want %d", len(log.addrs), len(wantAddrs))
	}
	for i, a := range wantAddrs {
		if log.addrs[i] != a {
			t.Errorf("write %d went to reg %d, want %d", i, log.addrs[i], a)
		}
	}
	if log.writes[0] != 0xC20 {
		t.Errorf("first CTRL flush = %#03x, want 0xc20 (1/16 step)", log.writes[0])
	}
}
