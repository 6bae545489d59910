// Command risk-monitor calibrates the accelerometer, counts down on reset and
// classifies the surroundings as risky or safe, hot or normal.
package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lmittmann/tint"
	"github.com/mattn/go-isatty"
	"github.com/spf13/pflag"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/host/v3"

	"github.com/sweeney/risk-monitor/internal/config"
	"github.com/sweeney/risk-monitor/internal/device"
	"github.com/sweeney/risk-monitor/internal/display"
	"github.com/sweeney/risk-monitor/internal/gpio"
	"github.com/sweeney/risk-monitor/internal/sensor"
	"github.com/sweeney/risk-monitor/internal/status"
	"github.com/sweeney/risk-monitor/internal/tick"
)

var (
	configPath = ""
	verbose    = false
	heartbeat  = time.Minute
	poll       = time.Duration(0)
	printState = false
)

func init() {
	pflag.StringVarP(&configPath, "config", "c", configPath, "YAML wiring file (empty for defaults)")
	pflag.BoolVarP(&verbose, "verbose", "v", verbose, "verbose logging")
	pflag.DurationVar(&heartbeat, "heartbeat", heartbeat, "Heartbeat interval (0 to disable)")
	pflag.DurationVar(&poll, "poll", poll, "Pause between routine iterations (0 for a tight poll)")
	pflag.BoolVar(&printState, "print-state", printState, "Boot, print current state and exit")
}

func main() {
	log.SetFlags(0)
	pflag.Parse()

	logger := newLogger(os.Stderr, verbose)
	slog.SetDefault(logger)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	ctx, reason := stopOnSignal(context.Background(), sigCh, logger)

	if err := run(ctx, logger, reason); err != nil {
		log.Fatalf("fatal: %v", err)
	}
}

func newLogger(f *os.File, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}

	return slog.New(tint.NewHandler(f, &tint.Options{
		Level:      level,
		TimeFormat: time.TimeOnly,
		NoColor:    !isatty.IsTerminal(f.Fd()),
	}))
}

func run(ctx context.Context, logger *slog.Logger, reason <-chan string) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	if _, err := host.Init(); err != nil {
		return fmt.Errorf("init host: %w", err)
	}

	bus, err := i2creg.Open(cfg.I2C.Bus)
	if err != nil {
		return fmt.Errorf("open i2c bus %q: %w", cfg.I2C.Bus, err)
	}
	defer bus.Close()

	var ticks tick.Counter
	ticks.Start(ctx)

	// Peripherals
	oled, err := display.Open(bus)
	if err != nil {
		return fmt.Errorf("init display: %w", err)
	}
	defer oled.Close()

	seg, err := gpio.NewRealSegment(cfg.GPIO.Chip, cfg.SegmentPins(), cfg.Segment.ActiveLow)
	if err != nil {
		return fmt.Errorf("init segment: %w", err)
	}
	defer seg.Close()

	accel, err := sensor.NewAccelerometer(bus, cfg.I2C.AccelAddr)
	if err != nil {
		return fmt.Errorf("init accelerometer: %w", err)
	}

	thermo, err := sensor.NewThermometer(bus, uint8(cfg.I2C.TempAddr), &ticks)
	if err != nil {
		return fmt.Errorf("init thermometer: %w", err)
	}

	light := sensor.NewISL29003(bus, cfg.I2C.LightAddr)

	// Initialize status tracker (before boot so the offset is recorded)
	tracker := status.NewTracker(time.Now(), status.Config{
		ConfigPath:  configPath,
		PollMs:      poll.Milliseconds(),
		HeartbeatMs: heartbeat.Milliseconds(),
		I2CBus:      cfg.I2C.Bus,
		GPIOChip:    cfg.GPIO.Chip,
	})

	state := device.NewState()
	machine := device.NewMachine(state, device.Peripherals{
		Display: oled,
		Segment: seg,
		Accel:   accel,
		Light:   light,
		Thermo:  thermo,
		Ticks:   &ticks,
	}, device.Options{
		Logger:   logger,
		Observer: tracker,
		Poll:     poll,
	})

	if err := machine.Boot(); err != nil {
		return fmt.Errorf("boot: %w", err)
	}

	// Print state mode
	if printState {
		refreshTracker(tracker, state, nil)
		fmt.Println(string(status.FormatJSON(tracker.Snapshot())))
		return nil
	}

	// Interrupt lines are enabled only once boot has captured the offset
	var latch gpio.Latch
	dispatcher := device.NewDispatcher(&latch, light, state)
	watcher, err := gpio.NewEdgeWatcher(cfg.GPIO.Chip, cfg.Lines(), &latch, dispatcher.Service)
	if err != nil {
		return fmt.Errorf("init interrupts: %w", err)
	}
	defer watcher.Close()

	refreshTracker(tracker, state, dispatcher)
	logger.Info("started",
		"config", configPath,
		"poll", poll,
		"heartbeat", heartbeat,
		"chip", cfg.GPIO.Chip,
		"lines", cfg.Lines().Offsets(),
	)
	logger.Debug("status", "json", string(status.FormatStatusEvent(tracker.Snapshot(), "STARTUP", "")))

	if heartbeat > 0 {
		ticker := time.NewTicker(heartbeat)
		defer ticker.Stop()
		go runHeartbeat(ctx, logger, tracker, func() {
			refreshTracker(tracker, state, dispatcher)
		}, ticker.C)
	}

	if err := machine.Run(ctx); err != nil {
		return err
	}

	refreshTracker(tracker, state, dispatcher)
	why := ""
	select {
	case why = <-reason:
	default:
	}
	logger.Info("shutdown", "reason", why)
	logger.Debug("status", "json", string(status.FormatStatusEvent(tracker.Snapshot(), "SHUTDOWN", why)))
	return nil
}

// loadConfig returns the defaults when path is empty.
func loadConfig(path string) (*config.Config, error) {
	cfg := config.Default()
	if path != "" {
		var err error
		if cfg, err = config.Load(path); err != nil {
			return nil, fmt.Errorf("config load failed: %w", err)
		}
	}
	if err := config.Validate(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	config.Normalize(cfg)
	return cfg, nil
}

// stopOnSignal returns a context cancelled by the first signal on sig. The
// signal's name is then available on the returned channel.
func stopOnSignal(parent context.Context, sig <-chan os.Signal, logger *slog.Logger) (context.Context, <-chan string) {
	ctx, cancel := context.WithCancel(parent)
	reason := make(chan string, 1)

	go func() {
		select {
		case s := <-sig:
			logger.Info("received signal, shutting down", "signal", s)
			reason <- signalName(s)
			cancel()
		case <-ctx.Done():
		}
	}()
	return ctx, reason
}

func signalName(s os.Signal) string {
	switch s {
	case syscall.SIGINT:
		return "SIGINT"
	case syscall.SIGTERM:
		return "SIGTERM"
	}
	return "UNKNOWN"
}

// refreshTracker copies the values written from the interrupt context into
// the tracker. d may be nil before interrupts are enabled.
func refreshTracker(tracker *status.Tracker, state *device.State, d *device.Dispatcher) {
	tracker.SetLuminance(state.Luminance())
	if d == nil {
		return
	}
	c := d.Counts()
	tracker.SetIRQCounts(status.IRQCounts{
		Reset:       c.Reset,
		Calibrate:   c.Calibrate,
		Light:       c.Light,
		LightErrors: c.LightErrors,
	})
}

func runHeartbeat(ctx context.Context, logger *slog.Logger, tracker *status.Tracker, refresh func(), beat <-chan time.Time) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-beat:
			refresh()
			snap := tracker.Snapshot()
			logger.Info("heartbeat",
				"uptime", snap.Uptime().Truncate(time.Second),
				"mode", snap.Mode,
				"luminance", snap.Luminance,
				"countdown", snap.Countdown,
				"irq_light", snap.IRQ.Light,
			)
			logger.Debug("status", "json", string(status.FormatStatusEvent(snap, "HEARTBEAT", "")))
		}
	}
}
