package config

import (
	"errors"
	"fmt"
)

var (
	ErrLineOffset    = errors.New("invalid line offset")
	ErrDuplicateLine = errors.New("line used twice")
	ErrSegmentPins   = errors.New("segment needs 8 lines")
	ErrAddress       = errors.New("invalid i2c address")
)

// Validate checks configuration correctness.
// It MUST NOT mutate configuration.
func Validate(cfg *Config) error {
	if cfg == nil {
		return errors.New("nil config")
	}

	if len(cfg.Segment.Pins) != 8 {
		return fmt.Errorf("%w: got %d", ErrSegmentPins, len(cfg.Segment.Pins))
	}

	owner := make(map[int]string)
	claim := func(name string, offset int) error {
		if offset < 0 {
			return fmt.Errorf("%w: %s=%d", ErrLineOffset, name, offset)
		}
		if prev, ok := owner[offset]; ok {
			return fmt.Errorf("%w: %d is both %s and %s", ErrDuplicateLine, offset, prev, name)
		}
		owner[offset] = name
		return nil
	}

	if err := claim("reset", cfg.GPIO.Reset); err != nil {
		return err
	}
	if err := claim("calibrate", cfg.GPIO.Calibrate); err != nil {
		return err
	}
	if err := claim("light_irq", cfg.GPIO.LightIRQ); err != nil {
		return err
	}
	for i, p := range cfg.Segment.Pins {
		if err := claim(fmt.Sprintf("segment[%d]", i), p); err != nil {
			return err
		}
	}

	// 0 selects the default; otherwise a 7-bit non-reserved address.
	addrs := []struct {
		name string
		addr uint16
	}{
		{"accel_addr", cfg.I2C.AccelAddr},
		{"light_addr", cfg.I2C.LightAddr},
		{"temp_addr", cfg.I2C.TempAddr},
	}
	for _, a := range addrs {
		if a.addr != 0 && (a.addr < 0x08 || a.addr > 0x77) {
			return fmt.Errorf("%w: %s=%#x", ErrAddress, a.name, a.addr)
		}
	}
	return nil
}
