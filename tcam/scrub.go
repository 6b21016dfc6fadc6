package tcam

// ScrubState is the background scanner's state.
type ScrubState uint8

const (
	// ScrubIdle - no scan in progress; the next tick starts one.
	ScrubIdle ScrubState = iota
	// ScrubScanning - a scan is mid-flight; the cursor marks the next
	// slot to inspect.
	ScrubScanning
	// ScrubPaused - a configuration write landed mid-scan; the scan
	// resumes from the saved cursor on the next tick rather than acting
	// on a stale view of the slot under inspection.
	ScrubPaused
)

func (s ScrubState) String() string {
	switch s {
	case ScrubIdle:
		return "idle"
	case ScrubScanning:
		return "scanning"
	case ScrubPaused:
		return "paused"
	default:
		return "unknown"
	}
}

// scrubber walks the table one slot per tick so foreground queries are
// never starved. The engine owns the actual inspect/delete work; the
// scrubber only sequences it. All methods assume the engine lock is held.
type scrubber struct {
	state  ScrubState
	cursor int
}

// next returns the slot to inspect on this tick, starting or resuming a
// scan as needed.
func (s *scrubber) next() int {
	switch s.state {
	case ScrubIdle:
		s.state = ScrubScanning
		s.cursor = 0
	case ScrubPaused:
		s.state = ScrubScanning
	}
	return s.cursor
}

// advance moves past the inspected slot; a scan over n slots returns to
// idle after the last one. Reports whether the pass completed.
func (s *scrubber) advance(n int) (done bool) {
	s.cursor++
	if s.cursor >= n {
		s.state = ScrubIdle
		s.cursor = 0
		return true
	}
	return false
}

// interrupt pauses a mid-flight scan. Idle scans stay idle.
func (s *scrubber) interrupt() {
	if s.state == ScrubScanning {
		s.state = ScrubPaused
	}
}
