// Package config loads the hardware wiring file.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/sweeney/risk-monitor/internal/gpio"
)

// Default I2C addresses.
const (
	DefaultAccelAddr = 0x1D // MMA8653
	DefaultLightAddr = 0x44 // ISL29003
	DefaultTempAddr  = 0x48 // TMP102
)

type Config struct {
	GPIO    GPIOConfig    `yaml:"gpio"`
	Segment SegmentConfig `yaml:"segment"`
	I2C     I2CConfig     `yaml:"i2c"`
}

// ---- GPIO ----

// GPIOConfig holds the interrupt line offsets on Chip.
type GPIOConfig struct {
	Chip      string `yaml:"chip"`
	Reset     int    `yaml:"reset"`
	Calibrate int    `yaml:"calibrate"`
	LightIRQ  int    `yaml:"light_irq"`
}

// ---- SEGMENT ----

// SegmentConfig lists the indicator lines in a, b, c, d, e, f, g, dp order.
type SegmentConfig struct {
	Pins      []int `yaml:"pins"`
	ActiveLow bool  `yaml:"active_low"`
}

// ---- I2C ----

type I2CConfig struct {
	Bus       string `yaml:"bus"` // empty selects the first bus
	AccelAddr uint16 `yaml:"accel_addr"`
	LightAddr uint16 `yaml:"light_addr"`
	TempAddr  uint16 `yaml:"temp_addr"`
}

// Default returns the wiring used when no file is given.
func Default() *Config {
	pins := gpio.DefaultSegmentPins
	return &Config{
		GPIO: GPIOConfig{
			Chip:      gpio.DefaultChip,
			Reset:     gpio.DefaultPinReset,
			Calibrate: gpio.DefaultPinCalibrate,
			LightIRQ:  gpio.DefaultPinLightIRQ,
		},
		Segment: SegmentConfig{
			Pins: pins[:],
		},
		I2C: I2CConfig{
			AccelAddr: DefaultAccelAddr,
			LightAddr: DefaultLightAddr,
			TempAddr:  DefaultTempAddr,
		},
	}
}

// Load reads path over the defaults. Keys not present keep their default;
// unknown keys are an error.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Parse decodes YAML over the defaults.
func Parse(data []byte) (*Config, error) {
	cfg := Default()

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// Lines returns the interrupt line mapping.
func (c *Config) Lines() gpio.Lines {
	return gpio.Lines{
		Reset:     c.GPIO.Reset,
		Calibrate: c.GPIO.Calibrate,
		LightIRQ:  c.GPIO.LightIRQ,
	}
}

// SegmentPins returns the indicator lines. Call only after Validate.
func (c *Config) SegmentPins() [8]int {
	var pins [8]int
	copy(pins[:], c.Segment.Pins)
	return pins
}
