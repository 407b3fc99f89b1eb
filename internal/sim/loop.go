package sim

import (
	"context"
	"sync"
	"time"

	"haul-and-hoard/server/internal/telemetry"
	"haul-and-hoard/server/internal/world"
)

const (
	defaultTickRate        = 10
	defaultCatchupMaxTicks = 5
	defaultCommandCapacity = 256
)

// LoopConfig tunes the command queue and tick orchestration.
type LoopConfig struct {
	TickRate        int
	CatchupMaxTicks int
	CommandCapacity int
}

func (cfg LoopConfig) normalized() LoopConfig {
	if cfg.TickRate <= 0 {
		cfg.TickRate = defaultTickRate
	}
	if cfg.CatchupMaxTicks <= 0 {
		cfg.CatchupMaxTicks = defaultCatchupMaxTicks
	}
	if cfg.CommandCapacity <= 0 {
		cfg.CommandCapacity = defaultCommandCapacity
	}
	return cfg
}

// LoopHooks let callers observe the loop without reaching into the engine
// from another goroutine.
type LoopHooks struct {
	// OnTick runs on the loop goroutine after every successful tick.
	OnTick func(snapshot world.Snapshot)
}

// Loop drives an engine at a fixed timestep, staging commands between ticks.
type Loop struct {
	engine  Engine
	config  LoopConfig
	hooks   LoopHooks
	logger  telemetry.Logger
	metrics telemetry.Metrics

	mu      sync.Mutex
	queue   []Command
	dropped uint64
}

// NewLoop wraps the provided engine with a staged command queue and a
// fixed-timestep runner.
func NewLoop(engine Engine, cfg LoopConfig, hooks LoopHooks, logger telemetry.Logger, metrics telemetry.Metrics) *Loop {
	if engine == nil {
		return nil
	}
	if logger == nil {
		logger = telemetry.LoggerFunc(func(string, ...any) {})
	}
	return &Loop{
		engine:  engine,
		config:  cfg.normalized(),
		hooks:   hooks,
		logger:  logger,
		metrics: metrics,
	}
}

// Enqueue stages a command for the next tick. It reports false when the
// queue is at capacity.
func (l *Loop) Enqueue(cmd Command) bool {
	if l == nil {
		return false
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if len(l.queue) >= l.config.CommandCapacity {
		l.dropped++
		if l.metrics != nil {
			l.metrics.Add("sim.commands_dropped", 1)
		}
		return false
	}
	l.queue = append(l.queue, cmd)
	return true
}

// Pending reports the number of staged commands.
func (l *Loop) Pending() int {
	if l == nil {
		return 0
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.queue)
}

func (l *Loop) drainCommands() []Command {
	l.mu.Lock()
	defer l.mu.Unlock()
	if len(l.queue) == 0 {
		return nil
	}
	drained := l.queue
	l.queue = nil
	return drained
}

// Advance runs exactly one tick: staged commands, then the engine step,
// then the tick hook. An error means the world is corrupted and the loop
// must not continue.
func (l *Loop) Advance() error {
	l.engine.Apply(l.drainCommands())
	if err := l.engine.Step(); err != nil {
		return err
	}
	if l.metrics != nil {
		l.metrics.Store("sim.current_tick", l.engine.CurrentTick())
	}
	if l.hooks.OnTick != nil {
		l.hooks.OnTick(l.engine.Snapshot())
	}
	return nil
}

// Run drives the engine at the configured tick rate until the context is
// cancelled or a tick fails. When the loop falls behind it catches up, but
// never by more than CatchupMaxTicks per wakeup.
func (l *Loop) Run(ctx context.Context) error {
	interval := time.Second / time.Duration(l.config.TickRate)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case now := <-ticker.C:
			elapsed := now.Sub(last)
			due := int(elapsed / interval)
			if due <= 0 {
				due = 1
			}
			if due > l.config.CatchupMaxTicks {
				l.logger.Printf("loop behind by %d ticks, capping catch-up at %d", due, l.config.CatchupMaxTicks)
				due = l.config.CatchupMaxTicks
			}
			for i := 0; i < due; i++ {
				if err := l.Advance(); err != nil {
					return err
				}
			}
			last = now
		}
	}
}
