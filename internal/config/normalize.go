package config

import (
	"strconv"
	"strings"

	"github.com/sweeney/risk-monitor/internal/gpio"
)

// Normalize applies post-validation normalization.
// It is allowed to mutate configuration.
// It MUST be called only after Validate().
func Normalize(cfg *Config) {
	if cfg == nil {
		return
	}

	// Chip: accept "0" as shorthand for "gpiochip0"
	chip := strings.TrimSpace(cfg.GPIO.Chip)
	switch {
	case chip == "":
		chip = gpio.DefaultChip
	case isDigits(chip):
		chip = "gpiochip" + chip
	}
	cfg.GPIO.Chip = chip

	cfg.I2C.Bus = strings.TrimSpace(cfg.I2C.Bus)

	if cfg.I2C.AccelAddr == 0 {
		cfg.I2C.AccelAddr = DefaultAccelAddr
	}
	if cfg.I2C.LightAddr == 0 {
		cfg.I2C.LightAddr = DefaultLightAddr
	}
	if cfg.I2C.TempAddr == 0 {
		cfg.I2C.TempAddr = DefaultTempAddr
	}
}

func isDigits(s string) bool {
	_, err := strconv.ParseUint(s, 10, 32)
	return err == nil
}
