// Package display renders schedules and transient status lines for the
// terminal.
package display

import (
	"fmt"
	"io"
	"sync"
	"time"
)

// Status is the state shown on the status line.
type Status int

const (
	StatusIdle Status = iota
	StatusWaiting
	StatusDone
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "Idle"
	case StatusWaiting:
		return "Waiting"
	case StatusDone:
		return "Done"
	case StatusFailed:
		return "Failed"
	default:
		return "Unknown"
	}
}

// State holds the current status line state.
type State struct {
	Label     string
	Target    string
	Status    Status
	StartTime time.Time
}

// StatusLine keeps a single self-updating line on a terminal while a slow
// operation (such as a remote scheduling call) is in flight.
type StatusLine struct {
	mu       sync.Mutex
	writer   io.Writer
	state    State
	ticker   *time.Ticker
	done     chan struct{}
	wg       sync.WaitGroup // Ensures goroutine exits before Stop() returns
	active   bool
	lastLine string
}

// NewStatusLine creates a StatusLine writing to the given writer.
func NewStatusLine(w io.Writer, label, target string) *StatusLine {
	return &StatusLine{
		writer: w,
		state:  State{Label: label, Target: target},
		done:   make(chan struct{}),
	}
}

// Start begins the update loop.
func (d *StatusLine) Start() {
	d.mu.Lock()
	if d.active {
		d.mu.Unlock()
		return
	}
	d.active = true
	d.state.Status = StatusWaiting
	d.state.StartTime = time.Now()
	d.ticker = time.NewTicker(time.Second)
	d.wg.Add(1)
	d.mu.Unlock()

	go d.updateLoop()
}

// Stop halts the update loop and clears the line.
// Blocks until the update goroutine has exited to prevent race conditions.
func (d *StatusLine) Stop(status Status) {
	d.mu.Lock()
	if !d.active {
		d.mu.Unlock()
		return
	}
	d.active = false
	d.state.Status = status
	d.mu.Unlock()

	d.ticker.Stop()
	close(d.done)
	d.wg.Wait() // Wait for goroutine to exit before clearing
	d.clearLine()
}

func (d *StatusLine) updateLoop() {
	defer d.wg.Done()
	d.render()
	for {
		select {
		case <-d.ticker.C:
			d.render()
		case <-d.done:
			return
		}
	}
}

func (d *StatusLine) render() {
	d.mu.Lock()
	state := d.state
	lastLine := d.lastLine
	d.mu.Unlock()

	line := formatLine(state, time.Since(state.StartTime))

	// Only update if changed (reduces flicker)
	if line == lastLine {
		return
	}

	d.mu.Lock()
	d.lastLine = line
	d.mu.Unlock()

	fmt.Fprintf(d.writer, "\r\033[K%s", line)
}

func formatLine(state State, elapsed time.Duration) string {
	if state.Label == "" {
		return ""
	}

	target := state.Target
	if len(target) > 40 {
		target = target[:37] + "..."
	}

	line := state.Label
	if target != "" {
		line += " " + target
	}
	return fmt.Sprintf("%s │ ⏱ %s │ %s", line, formatDuration(elapsed), state.Status)
}

func (d *StatusLine) clearLine() {
	fmt.Fprintf(d.writer, "\r\033[K")
}

func formatDuration(d time.Duration) string {
	d = d.Round(time.Second)
	h := d / time.Hour
	d -= h * time.Hour
	m := d / time.Minute
	d -= m * time.Minute
	s := d / time.Second

	if h > 0 {
		return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%02d:%02d", m, s)
}
