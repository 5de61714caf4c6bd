package control

import (
	"log/slog"
	"sync"

	"github.com/Versifine/gimbal/internal/config"
	"github.com/Versifine/gimbal/internal/input"
)

// Controller keeps the demand produced by the latest tick. The snapshot is
// replaced on every Update, never patched. The tick loop and console commands
// run on different goroutines, so state is guarded by mu.
type Controller struct {
	cfg config.Config
	log *slog.Logger

	mu    sync.Mutex
	state DemandVector
}

func NewController(cfg config.Config, log *slog.Logger) *Controller {
	if log == nil {
		log = slog.Default()
	}
	return &Controller{cfg: cfg, log: log}
}

func (c *Controller) Update(samples input.AxisSample, kb input.KeyboardState) DemandVector {
	demand := Update(c.cfg, samples, kb)
	c.mu.Lock()
	c.state = demand
	c.mu.Unlock()

	if c.cfg.Debug.LogInputValues {
		js := c.cfg.Controls.Joystick
		c.log.Debug("demand updated",
			"raw_pitch", AxisValue(samples, js.PitchAxis, js.FallbackAxes),
			"raw_roll", AxisValue(samples, js.RollAxis, js.FallbackAxes),
			"raw_lift", AxisValue(samples, js.LiftAxis, js.FallbackAxes),
			"pitch", demand.Pitch,
			"roll", demand.Roll,
			"lift", demand.Lift,
		)
	}
	return demand
}

func (c *Controller) State() DemandVector {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

func (c *Controller) Reset() {
	c.mu.Lock()
	c.state = DemandVector{}
	c.mu.Unlock()
}

func (c *Controller) Config() config.Config {
	return c.cfg
}
