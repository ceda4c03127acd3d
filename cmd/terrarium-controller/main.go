// Command terrarium-controller runs the closed-loop enclosure controller:
// it reads the climate and light sensors, drives the heater, fan, mister,
// and lamp with hysteresis, and serves the three-button settings menu on
// the front-panel display.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/sweeney/terrarium-controller/internal/config"
	"github.com/sweeney/terrarium-controller/internal/control"
	"github.com/sweeney/terrarium-controller/internal/display"
	"github.com/sweeney/terrarium-controller/internal/gpio"
	"github.com/sweeney/terrarium-controller/internal/input"
	"github.com/sweeney/terrarium-controller/internal/menu"
	"github.com/sweeney/terrarium-controller/internal/sensor"
	"github.com/sweeney/terrarium-controller/internal/settings"
	"github.com/sweeney/terrarium-controller/internal/status"
	"github.com/sweeney/terrarium-controller/internal/web"
)

type options struct {
	configPath  string
	poll        time.Duration
	actionDelay time.Duration
	hysteresis  float64
	settle      time.Duration
	menuTimeout time.Duration
	menuPoll    time.Duration
	httpAddr    string
	printState  bool
}

func main() {
	var opts options
	flag.StringVar(&opts.configPath, "config", "", "YAML config file (pins, I2C addresses, threshold defaults)")
	flag.DurationVar(&opts.poll, "poll", 100*time.Millisecond, "Main loop polling interval")
	flag.DurationVar(&opts.actionDelay, "action-delay", control.DefaultActionDelay, "Minimum interval between actuator evaluations")
	flag.Float64Var(&opts.hysteresis, "hysteresis", control.DefaultHysteresis, "Fractional dead band around each setpoint")
	flag.DurationVar(&opts.settle, "settle", input.DefaultSettle, "Button debounce settle wait")
	flag.DurationVar(&opts.menuTimeout, "menu-timeout", menu.DefaultTimeout, "Menu inactivity timeout")
	flag.DurationVar(&opts.menuPoll, "menu-poll", menu.DefaultPoll, "Menu polling interval")
	flag.StringVar(&opts.httpAddr, "http", ":80", "HTTP status address (empty to disable)")
	flag.BoolVar(&opts.printState, "print-state", false, "Print current sensor readings and exit")
	flag.Parse()

	if err := run(opts); err != nil {
		log.Fatalf("fatal: %v", err)
	}
}

func run(opts options) error {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return err
	}

	// Initialize sensors
	sensors, err := sensor.NewReal(cfg.Bus.Name, cfg.Bus.ProbeAddr, cfg.Bus.ADCAddr)
	if err != nil {
		return fmt.Errorf("init sensors: %w", err)
	}
	defer sensors.Close()

	// Print state mode
	if opts.printState {
		return printState(sensors, cfg.Light)
	}

	// Initialize GPIO and display
	buttons, err := gpio.NewRealButtons(cfg.GPIOPins())
	if err != nil {
		return fmt.Errorf("init buttons: %w", err)
	}
	defer buttons.Close()

	outputs, err := gpio.NewRealOutputs(cfg.GPIOPins())
	if err != nil {
		return fmt.Errorf("init outputs: %w", err)
	}
	defer outputs.Close()

	disp, err := display.NewReal(cfg.Bus.Name, cfg.Bus.DisplayAddr)
	if err != nil {
		return fmt.Errorf("init display: %w", err)
	}
	defer disp.Close()

	store := settings.NewStore(cfg.Defaults.SettingsUnit(), cfg.Defaults.Values())
	engine := control.NewEngine(opts.actionDelay, opts.hysteresis)

	tracker := status.NewTracker(time.Now(), status.Config{
		PollMs:        opts.poll.Milliseconds(),
		ActionDelayMs: opts.actionDelay.Milliseconds(),
		MenuTimeoutMs: opts.menuTimeout.Milliseconds(),
		SettleMs:      opts.settle.Milliseconds(),
		Hysteresis:    opts.hysteresis,
		HTTPAddr:      opts.httpAddr,
	})

	reg := prometheus.NewRegistry()
	m := newMetrics(reg)

	// Start HTTP status server
	if opts.httpAddr != "" {
		srv := web.New(opts.httpAddr, tracker, promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
		go func() {
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.Printf("http server error: %v", err)
			}
		}()
		defer srv.Shutdown(context.Background())
		log.Printf("http status server listening on %s", opts.httpAddr)
	}

	log.Printf("started: poll=%v action-delay=%v hysteresis=%.2f menu-timeout=%v",
		opts.poll, opts.actionDelay, opts.hysteresis, opts.menuTimeout)

	ticker := time.NewTicker(opts.poll)
	defer ticker.Stop()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	deps := loopDeps{
		sensors:     sensors,
		buttons:     buttons,
		outputs:     outputs,
		render:      display.NewRenderer(disp),
		engine:      engine,
		store:       store,
		tracker:     tracker,
		metrics:     m,
		cal:         cfg.Light,
		settle:      opts.settle,
		menuTimeout: opts.menuTimeout,
		menuPoll:    opts.menuPoll,
		now:         time.Now,
		sleep:       time.Sleep,
	}
	return runLoop(deps, ticker.C, sigCh)
}

// loopDeps bundles everything the control loop touches, so tests can wire
// fakes for all of it.
type loopDeps struct {
	sensors sensor.Reader
	buttons gpio.ButtonReader
	outputs gpio.OutputWriter
	render  *display.Renderer
	engine  *control.Engine
	store   *settings.Store
	tracker *status.Tracker
	metrics *metrics

	cal         config.Light
	settle      time.Duration
	menuTimeout time.Duration
	menuPoll    time.Duration

	now   func() time.Time
	sleep func(time.Duration)
}

func runLoop(d loopDeps, tick <-chan time.Time, sig <-chan os.Signal) error {
	deb := input.NewDebouncer(d.buttons, d.settle, d.sleep)

	for {
		select {
		case s := <-sig:
			log.Printf("received %v, shutting down", s)
			if err := d.outputs.Apply(control.Outputs{}); err != nil {
				log.Printf("failed to clear outputs: %v", err)
			}
			if err := d.render.Clear(); err != nil {
				log.Printf("failed to clear display: %v", err)
			}
			return nil

		case <-tick:
			t := d.now()
			d.acquire()
			d.renderStatus()

			if act, ran := d.engine.Tick(d.store.Thresholds(), t); ran {
				if err := d.outputs.Apply(act.Outputs()); err != nil {
					log.Printf("output apply error: %v", err)
				}
				tempTrend, humTrend := d.engine.Trends()
				if err := d.render.Trends(tempTrend, humTrend); err != nil {
					log.Printf("display render error: %v", err)
				}
				if err := d.render.Lamp(act.Lighting); err != nil {
					log.Printf("display render error: %v", err)
				}
				d.tracker.AddEvaluation()
				d.metrics.observe(d.engine.Reading(), act)
			}

			// Short post-tick polling window for menu entry.
			if deb.Pressed(gpio.Enter) {
				log.Printf("menu: entered")
				session := menu.NewSession(deb, d.render, d.store, d.menuTimeout, d.menuPoll, d.now, d.sleep)
				out := session.Run()
				log.Printf("menu: exited (commits=%d unit-toggles=%d reverted=%v)",
					out.Commits, out.UnitToggles, out.Reverted)
				d.tracker.AddMenuSession(out.Commits, out.UnitToggles)
				d.metrics.menuSessions.Inc()
				d.metrics.settings(d.store.Values())

				// Changed thresholds must take effect without waiting out
				// the stale interval.
				d.engine.ForceEligible(d.now())
				d.renderStatus()
			}

			d.tracker.Update(d.engine.Reading(), d.engine.HasReading(), d.engine.Actuators(), d.store.Values(), d.store.Unit())
		}
	}
}

// acquire reads one sensor cycle into the engine. A failed probe read holds
// the previous reading; the engine never sees partial data.
func (d *loopDeps) acquire() {
	temp, hum, err := d.sensors.ReadClimate()
	if err != nil {
		if errors.Is(err, sensor.ErrInvalidReading) {
			log.Printf("sensor fault, holding previous reading: %v", err)
			d.tracker.AddSensorFault()
			d.metrics.sensorFaults.Inc()
		} else {
			log.Printf("sensor read error: %v", err)
		}
		return
	}

	raw, err := d.sensors.ReadLight()
	if err != nil {
		log.Printf("light read error, holding previous reading: %v", err)
		d.tracker.AddSensorFault()
		d.metrics.sensorFaults.Inc()
		return
	}

	d.engine.SetReading(control.Reading{
		Temperature: d.store.Unit().FromCelsius(temp),
		Humidity:    hum,
		Light:       control.ScaleLight(raw, d.cal.RawMin, d.cal.RawMax),
	})
}

func (d *loopDeps) renderStatus() {
	if !d.engine.HasReading() {
		return
	}
	err := d.render.Status(d.engine.Reading(), d.store.Values(), d.store.Unit().Symbol())
	if err != nil {
		log.Printf("display render error: %v", err)
	}
}

func printState(sensors sensor.Reader, cal config.Light) error {
	temp, hum, err := sensors.ReadClimate()
	if err != nil {
		return fmt.Errorf("read climate: %w", err)
	}
	raw, err := sensors.ReadLight()
	if err != nil {
		return fmt.Errorf("read light: %w", err)
	}
	fmt.Printf("Temperature: %.1fC, Humidity: %.1f%%, Light: %.0f%%\n",
		temp, hum, control.ScaleLight(raw, cal.RawMin, cal.RawMax))
	return nil
}
