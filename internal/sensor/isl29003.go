package sensor

import (
	"fmt"
	"sync"

	"periph.io/x/conn/v3/i2c"
)

// ISL29003Addr is the sensor's fixed I2C address.
const ISL29003Addr = 0x44

// Registers.
const (
	islRegCommand = 0x00
	islRegControl = 0x01
	islRegIntHigh = 0x02
	islRegIntLow  = 0x03
	islRegDataLSB = 0x04
	islRegDataMSB = 0x05
)

// Bits.
const (
	islCommandEnable    = 1 << 7
	islControlIntFlag   = 1 << 5
	islControlRangeMask = 0x0C
	islControlCycleMask = 0x03
)

var islRanges = map[uint32]byte{1000: 0, 4000: 1, 16000: 2, 64000: 3}

var islCycles = map[int]byte{1: 0, 4: 1, 8: 2, 16: 3}

// islThreshold is an interrupt bound kept in lux so it can be rescaled.
type islThreshold struct {
	reg byte
	lux uint32
	set bool
}

// ISL29003 is an ambient light sensor with a threshold interrupt.
// Its open-drain IRQ output is wired to a GPIO line watched separately.
type ISL29003 struct {
	mu       sync.Mutex
	d        *i2c.Dev
	rangeLux uint32
	high     islThreshold
	low      islThreshold
}

// NewISL29003 returns a driver for the sensor on bus. It does not touch the device.
func NewISL29003(bus i2c.Bus, addr uint16) *ISL29003 {
	if addr == 0 {
		addr = ISL29003Addr
	}
	return &ISL29003{
		d:        &i2c.Dev{Bus: bus, Addr: addr},
		rangeLux: 1000,
		high:     islThreshold{reg: islRegIntHigh},
		low:      islThreshold{reg: islRegIntLow},
	}
}

// Enable powers the ADC up in continuous 16-bit, visible-diode mode.
func (s *ISL29003) Enable() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.write(islRegCommand, islCommandEnable)
}

// Read returns the current illuminance in lux.
func (s *ISL29003) Read() (uint32, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	lsb, err := s.read(islRegDataLSB)
	if err != nil {
		return 0, err
	}
	msb, err := s.read(islRegDataMSB)
	if err != nil {
		return 0, err
	}
	raw := uint32(msb)<<8 | uint32(lsb)
	return s.rangeLux * raw / 65536, nil
}

// SetRange selects the full-scale range: 1000, 4000, 16000 or 64000 lux.
// Thresholds already set are rewritten for the new range.
func (s *ISL29003) SetRange(lux uint32) error {
	bits, ok := islRanges[lux]
	if !ok {
		return fmt.Errorf("isl29003: unsupported range %d lux", lux)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.update(islRegControl, islControlRangeMask, bits<<2); err != nil {
		return err
	}
	s.rangeLux = lux

	for _, th := range []*islThreshold{&s.high, &s.low} {
		if th.set {
			if err := s.write(th.reg, s.threshold(th.lux)); err != nil {
				return err
			}
		}
	}
	return nil
}

// SetIRQCycles sets how many consecutive out-of-window integration cycles
// raise the interrupt: 1, 4, 8 or 16.
func (s *ISL29003) SetIRQCycles(cycles int) error {
	bits, ok := islCycles[cycles]
	if !ok {
		return fmt.Errorf("isl29003: unsupported irq cycle count %d", cycles)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.update(islRegControl, islControlCycleMask, bits)
}

// SetHighThreshold sets the upper interrupt bound in lux.
func (s *ISL29003) SetHighThreshold(lux uint32) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.setThreshold(&s.high, lux)
}

// SetLowThreshold sets the lower interrupt bound in lux.
func (s *ISL29003) SetLowThreshold(lux uint32) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.setThreshold(&s.low, lux)
}

// ClearInterrupt acknowledges the sensor's interrupt flag.
func (s *ISL29003) ClearInterrupt() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.update(islRegControl, islControlIntFlag, 0)
}

func (s *ISL29003) setThreshold(th *islThreshold, lux uint32) error {
	if err := s.write(th.reg, s.threshold(lux)); err != nil {
		return err
	}
	th.lux = lux
	th.set = true
	return nil
}

// threshold converts lux to the 8-bit register value, which is compared
// against the data MSB at the current range.
func (s *ISL29003) threshold(lux uint32) byte {
	v := (uint64(lux) * 65536 / uint64(s.rangeLux)) >> 8
	if v > 0xFF {
		return 0xFF
	}
	return byte(v)
}

func (s *ISL29003) read(reg byte) (byte, error) {
	r := []byte{0}
	if err := s.d.Tx([]byte{reg}, r); err != nil {
		return 0, fmt.Errorf("isl29003: read %#02x: %w", reg, err)
	}
	return r[0], nil
}

func (s *ISL29003) write(reg, v byte) error {
	if err := s.d.Tx([]byte{reg, v}, nil); err != nil {
		return fmt.Errorf("isl29003: write %#02x: %w", reg, err)
	}
	return nil
}

// update rewrites the bits of reg selected by mask with v.
func (s *ISL29003) update(reg, mask, v byte) error {
	cur, err := s.read(reg)
	if err != nil {
		return err
	}
	return s.write(reg, cur&^mask|v&mask)
}
