package debug

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"
	"unicode"

	"golang.org/x/term"

	"github.com/Versifine/gimbal/internal/config"
	"github.com/Versifine/gimbal/internal/control"
	"github.com/Versifine/gimbal/internal/input"
	"github.com/Versifine/gimbal/internal/kinematics"
	"github.com/Versifine/gimbal/internal/snapshot"
)

const (
	defaultTickInterval = 16 * time.Millisecond
	// Terminals report presses only, so a key counts as held for this long
	// after its last repeat.
	defaultHoldPulse = 180 * time.Millisecond

	keyCtrlC = 3
	keyEsc   = 27
)

type DemandController interface {
	Update(samples input.AxisSample, kb input.KeyboardState) control.DemandVector
	State() control.DemandVector
	Reset()
	Config() config.Config
}

type ExportFunc func(path string, model kinematics.Model, pose kinematics.Pose) error

type Console struct {
	ctrl         DemandController
	layout       kinematics.ActuatorLayout
	model        kinematics.Model
	export       ExportFunc
	out          io.Writer
	log          *slog.Logger
	tickInterval time.Duration
	holdPulse    time.Duration
	cancel       context.CancelFunc

	mu          sync.Mutex
	keyboard    input.KeyboardState
	axes        input.AxisSample
	buttons     input.ButtonSample
	heldUntil   [3]time.Time
	heldKey     [3]rune
	pose        kinematics.Pose
	commandMode bool
	commandBuf  []rune
	statusWidth int
	debugMode   bool
}

func NewConsole(ctrl DemandController, layout kinematics.ActuatorLayout, log *slog.Logger) *Console {
	if log == nil {
		log = slog.Default()
	}
	model := kinematics.DefaultModel()
	debugMode := false
	if ctrl != nil {
		debugMode = ctrl.Config().Debug.Enabled
	}
	return &Console{
		ctrl:         ctrl,
		layout:       layout,
		model:        model,
		export:       snapshot.Export,
		out:          os.Stdout,
		log:          log,
		tickInterval: defaultTickInterval,
		holdPulse:    defaultHoldPulse,
		axes:         input.AxisSample{},
		buttons:      input.ButtonSample{},
		pose:         model.Solve(control.DemandVector{}, layout),
		debugMode:    debugMode,
	}
}

func (c *Console) Start(ctx context.Context) error {
	if c == nil {
		return fmt.Errorf("console is nil")
	}
	if c.ctrl == nil {
		return fmt.Errorf("console controller is nil")
	}

	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return fmt.Errorf("set terminal raw mode: %w", err)
	}
	defer func() {
		_ = term.Restore(fd, oldState)
		fmt.Fprint(c.out, "\r\n")
	}()

	ctx, c.cancel = context.WithCancel(ctx)
	defer c.cancel()

	fmt.Fprintf(c.out, "[gimbal] %s (W/S pitch, A/D roll, R/F lift, X clear, T debug, : command, q/Esc quit)\r\n", c.layout)
	c.renderStatusLine()

	go c.tickLoop(ctx)

	keys := make(chan keyEvent)
	readErr := make(chan error, 1)
	go pumpKeys(ctx, bufio.NewReader(os.Stdin), keys, readErr)

	for {
		select {
		case <-ctx.Done():
			return nil
		case err := <-readErr:
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("read console input: %w", err)
		case ev := <-keys:
			c.handleEvent(ev, time.Now())
		}
	}
}

// keyEvent is one keypress. Cursor keys (ESC [ A..D) set arrow; skip marks a
// consumed sequence with no binding.
type keyEvent struct {
	b     byte
	arrow byte
	skip  bool
}

// pumpKeys forwards keypresses from r until a read fails or ctx is done.
func pumpKeys(ctx context.Context, r *bufio.Reader, keys chan<- keyEvent, readErr chan<- error) {
	for {
		ev, err := readKey(r)
		if err != nil {
			readErr <- err
			return
		}
		select {
		case keys <- ev:
		case <-ctx.Done():
			return
		}
	}
}

// readKey reads one keypress. An ESC with nothing buffered behind it is a lone
// Esc key; otherwise the escape sequence is consumed whole.
func readKey(r *bufio.Reader) (keyEvent, error) {
	b, err := r.ReadByte()
	if err != nil {
		return keyEvent{}, err
	}
	if b != keyEsc || r.Buffered() == 0 {
		return keyEvent{b: b}, nil
	}

	next, err := r.ReadByte()
	if err != nil {
		return keyEvent{}, err
	}
	if next != '[' {
		return keyEvent{skip: true}, nil
	}
	// CSI: parameter bytes up to a final byte in '@'..'~'.
	params := 0
	for {
		final, err := r.ReadByte()
		if err != nil {
			return keyEvent{}, err
		}
		if final >= '@' && final <= '~' {
			if params == 0 && final >= 'A' && final <= 'D' {
				return keyEvent{arrow: final}, nil
			}
			return keyEvent{skip: true}, nil
		}
		params++
	}
}

func (c *Console) handleEvent(ev keyEvent, now time.Time) {
	switch {
	case ev.skip:
	case ev.arrow != 0:
		c.handleArrow(ev.arrow, now)
	default:
		c.handleKey(ev.b, now)
	}
}

// Arrow keys nudge pitch and roll like W/S and D/A.
func (c *Console) handleArrow(arrow byte, now time.Time) {
	if c.isCommandMode() {
		return
	}
	switch arrow {
	case 'A': // up
		c.hold('w', now)
	case 'B': // down
		c.hold('s', now)
	case 'C': // right
		c.hold('d', now)
	case 'D': // left
		c.hold('a', now)
	}
	c.renderStatusLine()
}

func (c *Console) tickLoop(ctx context.Context) {
	ticker := time.NewTicker(c.tickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			c.Step(now)
			c.renderStatusLine()
		}
	}
}

// Step runs one control tick: expire held keys, map the input to a demand
// and solve the layout for it.
func (c *Console) Step(now time.Time) kinematics.Pose {
	c.mu.Lock()
	c.releaseExpiredLocked(now)
	samples := make(input.AxisSample, len(c.axes))
	for a, v := range c.axes {
		samples[a] = v
	}
	kb := c.keyboard
	c.mu.Unlock()

	demand := c.ctrl.Update(samples, kb)
	pose := c.model.Solve(demand, c.layout)

	c.mu.Lock()
	c.pose = pose
	c.mu.Unlock()
	return pose
}

func (c *Console) Pose() kinematics.Pose {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pose
}

func (c *Console) Keyboard() input.KeyboardState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.keyboard
}

func (c *Console) handleKey(b byte, now time.Time) {
	if c.isCommandMode() {
		c.handleCommandByte(b)
		return
	}

	switch {
	case b == keyCtrlC || b == keyEsc || b == 'q' || b == 'Q':
		c.quit()
		return
	case b == ':':
		c.enterCommandMode()
		return
	case b == 'x' || b == 'X':
		c.clearInput()
	case b == 't' || b == 'T':
		c.toggleDebug()
	case input.IsMappedKey(rune(b)):
		c.hold(rune(b), now)
	}
	c.renderStatusLine()
}

func (c *Console) quit() {
	if c.cancel != nil {
		c.cancel()
	}
}

func keyChannel(key rune) int {
	switch unicode.ToLower(key) {
	case 'w', 's':
		return 0
	case 'a', 'd':
		return 1
	default:
		return 2
	}
}

func (c *Console) hold(key rune, now time.Time) {
	step := c.ctrl.Config().Controls.KeyboardStep
	ch := keyChannel(key)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.keyboard.HandleKey(key, true, step)
	c.heldKey[ch] = key
	c.heldUntil[ch] = now.Add(c.holdPulse)
}

func (c *Console) releaseExpiredLocked(now time.Time) {
	for ch := range c.heldUntil {
		if c.heldUntil[ch].IsZero() || now.Before(c.heldUntil[ch]) {
			continue
		}
		c.keyboard.HandleKey(c.heldKey[ch], false, 0)
		c.heldUntil[ch] = time.Time{}
	}
}

func (c *Console) clearInput() {
	c.mu.Lock()
	c.keyboard.Reset()
	c.heldUntil = [3]time.Time{}
	c.axes = input.AxisSample{}
	c.mu.Unlock()
}

func (c *Console) toggleDebug() {
	c.mu.Lock()
	c.debugMode = !c.debugMode
	on := c.debugMode
	c.mu.Unlock()
	if on {
		fmt.Fprint(c.out, "\r\n[gimbal] debug view on\r\n")
	} else {
		fmt.Fprint(c.out, "\r\n[gimbal] debug view off\r\n")
	}
}

func (c *Console) enterCommandMode() {
	c.mu.Lock()
	c.commandMode = true
	c.commandBuf = c.commandBuf[:0]
	c.mu.Unlock()
	fmt.Fprint(c.out, "\r\n:")
}

func (c *Console) isCommandMode() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.commandMode
}

func (c *Console) handleCommandByte(b byte) {
	switch b {
	case 13, 10: // Enter
		c.mu.Lock()
		cmd := strings.TrimSpace(string(c.commandBuf))
		c.commandMode = false
		c.commandBuf = c.commandBuf[:0]
		c.mu.Unlock()

		fmt.Fprint(c.out, "\r\n")
		if cmd != "" {
			c.executeCommand(cmd)
		}
		c.renderStatusLine()
	case keyEsc:
		c.mu.Lock()
		c.commandMode = false
		c.commandBuf = c.commandBuf[:0]
		c.mu.Unlock()
		fmt.Fprint(c.out, "\r\n[gimbal] command cancelled\r\n")
		c.renderStatusLine()
	case 8, 127: // Backspace
		c.mu.Lock()
		if len(c.commandBuf) > 0 {
			c.commandBuf = c.commandBuf[:len(c.commandBuf)-1]
		}
		buf := string(c.commandBuf)
		c.mu.Unlock()
		fmt.Fprintf(c.out, "\r:%s \r:%s", buf, buf)
	default:
		if b < 32 || b > 126 {
			return
		}
		c.mu.Lock()
		c.commandBuf = append(c.commandBuf, rune(b))
		buf := string(c.commandBuf)
		c.mu.Unlock()
		fmt.Fprintf(c.out, "\r:%s", buf)
	}
}

func (c *Console) executeCommand(cmd string) {
	parts := strings.Fields(cmd)
	if len(parts) == 0 {
		return
	}

	switch parts[0] {
	case "help":
		c.printHelp()
	case "state":
		c.printState()
	case "axis":
		c.handleAxisCommand(parts)
	case "button":
		c.handleButtonCommand(parts)
	case "clear":
		c.clearInput()
		fmt.Fprint(c.out, "[gimbal] input cleared\r\n")
	case "reset":
		c.clearInput()
		c.ctrl.Reset()
		c.mu.Lock()
		c.pose = c.model.Solve(c.ctrl.State(), c.layout)
		c.mu.Unlock()
		fmt.Fprint(c.out, "[gimbal] reset\r\n")
	case "export":
		if len(parts) != 2 {
			fmt.Fprint(c.out, "[gimbal] usage: :export <file.png|file.svg>\r\n")
			return
		}
		if err := c.export(parts[1], c.model, c.Pose()); err != nil {
			c.log.Warn("snapshot export failed", "path", parts[1], "error", err)
			fmt.Fprintf(c.out, "[gimbal] export failed: %v\r\n", err)
			return
		}
		c.log.Info("snapshot exported", "path", parts[1])
		fmt.Fprintf(c.out, "[gimbal] wrote %s\r\n", parts[1])
	default:
		fmt.Fprintf(c.out, "[gimbal] unknown command: %s\r\n", parts[0])
	}
}

func (c *Console) handleAxisCommand(parts []string) {
	if len(parts) != 3 {
		fmt.Fprint(c.out, "[gimbal] usage: :axis <name> <value>\r\n")
		return
	}
	axis, ok := input.ParseAxis(parts[1])
	if !ok {
		fmt.Fprintf(c.out, "[gimbal] unknown axis: %s\r\n", parts[1])
		return
	}
	v, err := strconv.ParseFloat(parts[2], 64)
	if err != nil {
		fmt.Fprint(c.out, "[gimbal] invalid axis value\r\n")
		return
	}
	c.mu.Lock()
	c.axes.Set(axis, v)
	stored := c.axes[axis]
	c.mu.Unlock()
	fmt.Fprintf(c.out, "[gimbal] %s = %.3f\r\n", axis, stored)
}

func (c *Console) handleButtonCommand(parts []string) {
	if len(parts) != 3 || (parts[2] != "on" && parts[2] != "off") {
		fmt.Fprint(c.out, "[gimbal] usage: :button <name> on|off\r\n")
		return
	}
	c.mu.Lock()
	c.buttons[parts[1]] = parts[2] == "on"
	c.mu.Unlock()
}

func (c *Console) printHelp() {
	fmt.Fprint(c.out, "[gimbal] keys:\r\n")
	fmt.Fprint(c.out, "  W/S: pitch +/-  A/D: roll -/+  R/F: lift +/-\r\n")
	fmt.Fprint(c.out, "  arrows: pitch/roll like W/S and D/A\r\n")
	fmt.Fprint(c.out, "  X: clear input  T: toggle debug view  q/Esc: quit\r\n")
	fmt.Fprint(c.out, "  : enter command mode\r\n")
	fmt.Fprint(c.out, "[gimbal] commands:\r\n")
	fmt.Fprint(c.out, "  :axis <name> <value>\r\n")
	fmt.Fprint(c.out, "  :button <name> on|off\r\n")
	fmt.Fprint(c.out, "  :export <file>\r\n")
	fmt.Fprint(c.out, "  :state\r\n")
	fmt.Fprint(c.out, "  :clear\r\n")
	fmt.Fprint(c.out, "  :reset\r\n")
	fmt.Fprint(c.out, "  :help\r\n")
}

func (c *Console) printState() {
	cfg := c.ctrl.Config()
	pose := c.Pose()

	c.mu.Lock()
	axes := c.axes.Axes()
	values := make([]float64, len(axes))
	for i, a := range axes {
		values[i] = c.axes[a]
	}
	pressed := c.buttons.Pressed()
	c.mu.Unlock()

	d := pose.Demand
	fmt.Fprintf(c.out, "[gimbal] pitch=%.1f° (±%.1f) roll=%.1f° (±%.1f) lift=%.1fmm (±%.1f)\r\n",
		d.Pitch, cfg.Gimbal.MaxPitch, d.Roll, cfg.Gimbal.MaxRoll, d.Lift, cfg.Gimbal.MaxLift)
	for _, a := range pose.Actuators {
		fmt.Fprintf(c.out, "  A%d @%5.1f° height=%6.2f ext=%+6.2f %s\r\n",
			a.Index, a.AngleDeg, a.Height, a.Extension, a.Band)
	}
	if cfg.Debug.ShowAllAxes {
		for i, a := range axes {
			fmt.Fprintf(c.out, "  axis %s: %.3f\r\n", a, values[i])
		}
	}
	if cfg.Debug.ShowButtonStates && len(pressed) > 0 {
		fmt.Fprintf(c.out, "  pressed: %s\r\n", strings.Join(pressed, ", "))
	}
}

func (c *Console) renderStatusLine() {
	c.mu.Lock()
	if c.commandMode {
		c.mu.Unlock()
		return
	}
	pose := c.pose
	width := c.statusWidth
	var axes []input.Axis
	var values []float64
	var pressed []string
	if c.debugMode {
		dbg := c.ctrl.Config().Debug
		if dbg.ShowAllAxes {
			axes = c.axes.Axes()
			values = make([]float64, len(axes))
			for i, a := range axes {
				values[i] = c.axes[a]
			}
		}
		if dbg.ShowButtonStates {
			pressed = c.buttons.Pressed()
		}
	}
	c.mu.Unlock()

	var b strings.Builder
	fmt.Fprintf(&b, "[P:%+5.1f° R:%+5.1f° L:%+5.1fmm |",
		pose.Demand.Pitch, pose.Demand.Roll, pose.Demand.Lift)
	for _, a := range pose.Actuators {
		fmt.Fprintf(&b, " %d:%.1f%s", a.Index, a.Height, bandMark(a.Band))
	}
	b.WriteString("]")
	for i, a := range axes {
		fmt.Fprintf(&b, " %s:%+.2f", a, values[i])
	}
	if len(pressed) > 0 {
		fmt.Fprintf(&b, " btn:%s", strings.Join(pressed, ","))
	}
	line := b.String()

	padding := ""
	if width > len(line) {
		padding = strings.Repeat(" ", width-len(line))
	}
	fmt.Fprintf(c.out, "\r%s%s", line, padding)

	c.mu.Lock()
	if len(line) > c.statusWidth {
		c.statusWidth = len(line)
	}
	c.mu.Unlock()
}

func bandMark(b kinematics.Band) string {
	switch b {
	case kinematics.Extended:
		return "↑"
	case kinematics.Retracted:
		return "↓"
	default:
		return ""
	}
}
