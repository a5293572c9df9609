package timer

import "fmt"

// Mode selects the counting direction of an Engine.
type Mode string

const (
	ModeStopwatch Mode = "stopwatch"
	ModeCountdown Mode = "countdown"
)

// State is the display-ready view of an engine's counter.
type State struct {
	Minutes   int    `json:"minutes"`
	Seconds   int    `json:"seconds"`
	Formatted string `json:"formatted"`
	IsTimeUp  bool   `json:"isTimeUp"`
}

// StateOf maps a counter value in seconds to its State. Negative counters
// are treated as zero.
func StateOf(mode Mode, counter int) State {
	if counter < 0 {
		counter = 0
	}
	minutes, seconds := counter/60, counter%60
	return State{
		Minutes:   minutes,
		Seconds:   seconds,
		Formatted: fmt.Sprintf("%02d:%02d", minutes, seconds),
		IsTimeUp:  mode == ModeCountdown && counter == 0,
	}
}

// Snapshot is the full observable state of an engine at one instant.
type Snapshot struct {
	State
	Mode    Mode `json:"mode"`
	Counter int  `json:"counter"`
	Running bool `json:"running"`
}
