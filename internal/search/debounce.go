package search

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// DefaultDelay is the quiet period after the last keystroke before filtering.
const DefaultDelay = 200 * time.Millisecond

// DebounceMsg is delivered when a scheduled filter pass comes due.
type DebounceMsg struct {
	Query   string
	version int
}

// Debouncer schedules latest-wins filter passes. Each Schedule supersedes
// every earlier one; only the newest tick is Ready when it arrives.
type Debouncer struct {
	delay   time.Duration
	version int
}

// NewDebouncer creates a Debouncer. Non-positive delays use DefaultDelay.
func NewDebouncer(delay time.Duration) *Debouncer {
	if delay <= 0 {
		delay = DefaultDelay
	}
	return &Debouncer{delay: delay}
}

// Delay returns the quiet period.
func (d *Debouncer) Delay() time.Duration {
	return d.delay
}

// Schedule returns a command that delivers a DebounceMsg for query after the
// delay, superseding any pending one.
func (d *Debouncer) Schedule(query string) tea.Cmd {
	d.version++
	version := d.version
	return tea.Tick(d.delay, func(time.Time) tea.Msg {
		return DebounceMsg{Query: query, version: version}
	})
}

// Ready reports whether msg is the latest scheduled pass.
func (d *Debouncer) Ready(msg DebounceMsg) bool {
	return msg.version == d.version
}

// Cancel invalidates any pending pass.
func (d *Debouncer) Cancel() {
	d.version++
}
