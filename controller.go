package pumpd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/coreos/go-systemd/v22/daemon"
	"github.com/mdouchement/logger"
	"github.com/mdouchement/pumpd/button"
	"github.com/mdouchement/pumpd/lcd"
	"github.com/mdouchement/pumpd/stepper"
	"github.com/robfig/cron/v3"
)

// A Controller runs the front panel of the pump: it ticks the Machine, serves
// the control socket and publishes the panel to watchers.
type Controller struct {
	cfg       Config
	motor     Motor
	storage   Storage
	input     *button.Source
	display   *lcd.Buffer
	machine   *Machine
	metrics   *metrics
	telemetry *telemetry
	scheduler *cron.Cron
	events    chan event
	done      <-chan struct{}
	listener  net.Listener
	server    *http.Server
	run       run
	wg        sync.WaitGroup
}

// run tracks the current or last motor run.
type run struct {
	started   *time.Time
	profile   stepper.Profile
	volume    bool
	moved     bool // a tick saw the motor moving
	dispensed float64
}

func New(cfg Config, motor Motor, storage Storage) (*Controller, error) {
	c := newController(cfg, motor, storage)

	err := os.MkdirAll(filepath.Dir(cfg.Socket), 0o755)
	if err != nil {
		return nil, fmt.Errorf("socket: %w", err)
	}

	if _, err := os.Stat(cfg.Socket); err == nil {
		fmt.Printf("Removing existing %s\n", cfg.Socket)
		os.Remove(cfg.Socket)
	}
	c.listener, err = net.Listen("unix", cfg.Socket)
	if err != nil {
		return nil, fmt.Errorf("socket: %w", err)
	}

	return c, nil
}

func newController(cfg Config, motor Motor, storage Storage) *Controller {
	return &Controller{
		cfg:     cfg,
		motor:   motor,
		storage: storage,
		input:   button.NewSource(),
		display: lcd.New(lcd.DefaultOpts),
		metrics: newMetrics(),
		events:  make(chan event, 10),
	}
}

// Input returns the source fed by the control socket and the schedules.
func (c *Controller) Input() *button.Source {
	return c.input
}

func (c *Controller) Launch(ctx context.Context) {
	log := logger.LogWith(ctx)

	// The event loop reads telemetry, so it is set before start.
	if c.cfg.MQTT.Broker != "" {
		c.telemetry = newTelemetry(c.cfg.MQTT, log)
		c.telemetry.Connect()
	}

	c.start(ctx)

	c.scheduler = cron.New()
	for _, s := range c.cfg.Schedules {
		c.scheduler.Schedule(s.Schedule, cron.FuncJob(func() {
			c.scheduled(log, s)
		}))
		log.Infof("Schedule %s: %s", s.Label, s.Cron)
	}
	c.scheduler.Start()

	c.server = &http.Server{Handler: c.Handler(log)}
	go func() {
		for {
			log.Info("Starting HTTP server on", c.listener.Addr().String())
			err := c.server.Serve(c.listener)
			if errors.Is(err, http.ErrServerClosed) {
				return
			}
			if err != nil {
				log.WithError(err).Error("Could not serve HTTP")
			}
			time.Sleep(2 * time.Second)
		}
	}()

	if ok, err := daemon.SdNotify(false, daemon.SdNotifyReady); err != nil {
		log.WithError(err).Error("Could not notify systemd")
	} else if ok {
		log.Debug("systemd notified")
	}

	c.wg.Go(func() {
		<-ctx.Done()

		<-c.scheduler.Stop().Done()
		if c.telemetry != nil {
			c.telemetry.Close()
		}

		shutdown, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := c.server.Shutdown(shutdown); err != nil {
			log.WithError(err).Error("Could not stop HTTP server")
		}
		if err := os.Remove(c.cfg.Socket); err != nil && !errors.Is(err, os.ErrNotExist) {
			// Shutdown should close the socket but ceinture et bretelles!
			log.WithError(err).Error("Could not remove socket " + c.cfg.Socket)
		}
	})
}

// Wait blocks until the loops started by Launch are stopped.
func (c *Controller) Wait() {
	c.wg.Wait()
}

// start boots the machine and runs the tick and event loops until ctx is done.
func (c *Controller) start(ctx context.Context) {
	log := logger.LogWith(ctx)

	c.done = ctx.Done()
	c.machine = NewMachine(c.display, c.motor, c.storage, *c.cfg.Defaults, log)
	c.machine.Boot()

	go c.eventLoop(ctx)
	c.emit(event{name: eventPanel, panel: c.panel(c.machine.State(), time.Now())})

	c.wg.Go(func() {
		c.tickLoop(ctx)
	})
}

func (c *Controller) emit(e event) bool {
	select {
	case c.events <- e:
		return true
	case <-c.done:
		return false
	}
}

func (c *Controller) tickLoop(ctx context.Context) {
	log := logger.LogWith(ctx)

	ticker := time.NewTicker(c.cfg.Tick.Duration)
	defer ticker.Stop()

	var published time.Time
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			e := c.input.Poll()
			r := c.machine.Tick(e)
			st := c.machine.State()

			c.metrics.observe(r, st.Moving)
			c.track(log, r, st, now)

			changed := e.Any() || r.Redraw || r.Saved || len(r.Commands) > 0
			if changed || (st.Moving && now.Sub(published) >= time.Second) {
				c.emit(event{name: eventPanel, panel: c.panel(st, now)})
				published = now
			}
		}
	}
}

func (c *Controller) track(log logger.Logger, r Report, st State, now time.Time) {
	if len(r.Commands) > 0 {
		names := make([]string, len(r.Commands))
		for i, command := range r.Commands {
			names[i] = command.String()
		}
		log.Debug("Motor commands: " + strings.Join(names, ", "))
	}

	for _, command := range r.Commands {
		switch command {
		case stepper.CommandStart:
			c.run = run{
				started: ToPtr(now),
				profile: st.Settings.Profile(),
				volume:  st.DistMode,
			}
			if c.run.volume {
				log.Infof("Pump started: %d units at %d units/min", c.run.profile.UnitsPerRun, c.run.profile.UnitsPerMinute)
			} else {
				log.Infof("Pump started: %d units/min", c.run.profile.UnitsPerMinute)
			}
		case stepper.CommandStop:
			log.Info("Pump stopped")
		}
	}

	if r.Saved {
		s := st.Settings
		log.Infof("Settings saved: %d units/rev, %d units/min, %d units/run, forward=%t",
			s.UnitsPerRevolution, s.UnitsPerMinute, s.UnitsPerRun, s.Forward)
	}

	if c.run.started == nil {
		return
	}

	if st.Moving {
		c.run.moved = true
	}
	if !c.run.moved {
		log.Warnf("Pump did not start")
		c.run.started = nil
		return
	}

	c.run.dispensed = c.run.profile.UnitsAfter(now.Sub(*c.run.started))
	if c.run.volume {
		c.run.dispensed = min(c.run.dispensed, float64(c.run.profile.UnitsPerRun))
	}
	if !st.Moving {
		log.Infof("Run completed: %.0f units dispensed", c.run.dispensed)
		c.run.started = nil
	}
}

func (c *Controller) panel(st State, now time.Time) Panel {
	return Panel{
		At:         now,
		Display:    c.display.Snapshot(),
		Mode:       st.Mode.String(),
		Screen:     st.Screen.String(),
		Column:     st.Column,
		Settings:   st.Settings,
		Moving:     st.Moving,
		Enabled:    st.Enabled,
		DistMode:   st.DistMode,
		Dispensed:  c.run.dispensed,
		RunStarted: c.run.started,
	}
}

func (c *Controller) eventLoop(ctx context.Context) {
	log := logger.LogWith(ctx)
	watchers := map[string]chan<- []byte{}

	var current Panel
	var payload []byte

	for {
		select {
		case <-ctx.Done():
			for id, watcher := range watchers {
				close(watcher)
				delete(watchers, id)
			}
			return
		case e := <-c.events:
			switch e.name {
			case eventPanel:
				current = e.panel

				var err error
				payload, err = json.Marshal(current)
				if err != nil {
					log.WithError(err).Error("Could not serialize panel") // Should never happen
					continue
				}

				if c.telemetry != nil {
					c.telemetry.Publish(payload)
				}

				for id, watcher := range watchers {
					select {
					case watcher <- payload:
					default:
						log.Warnf("Watcher %s is too slow, dropping panel", id)
					}
				}
			case eventCurrent:
				e.reply <- current
			case eventWatch:
				watchers[e.monitorID] = e.monitor
				if payload != nil {
					e.monitor <- payload
				}
			case eventUnwatch:
				if watcher, ok := watchers[e.monitorID]; ok {
					close(watcher)
					delete(watchers, e.monitorID)
				}
			}
		}
	}
}

func (c *Controller) scheduled(log logger.Logger, s *Schedule) {
	if c.motor.IsMoving() {
		log.Warnf("Schedule %s skipped: pump is running", s.Label)
		return
	}

	log.Infof("Schedule %s: starting pump", s.Label)
	c.input.Press(button.Start)
}
