package tasks

import "fmt"

// ProgressUpdate represents a progress event during a long-running operation.
//
// Used to send real-time updates to the CLI or UI layer for display.
type ProgressUpdate struct {
	Phase   Phase  // Operation phase
	Step    int    // Current step number within phase
	Total   int    // Total steps in this phase
	Message string // Human-readable message for display
	Data    any    // Optional phase-specific data for advanced UIs
}

// Operation phase enumeration
type Phase int

const (
	LoadDays Phase = iota
	LoadSessions
	Summarize
	WriteExport
)

func (p Phase) String() string {
	switch p {
	case LoadDays:
		return "load_days"
	case LoadSessions:
		return "load_sessions"
	case Summarize:
		return "summarize"
	case WriteExport:
		return "write_export"
	default:
		return ""
	}
}

// sendProgress sends update without blocking.
func sendProgress(progress chan<- ProgressUpdate, update ProgressUpdate) {
	if progress == nil {
		return
	}
	select {
	case progress <- update:
	default:
	}
}

func loadDaysUpdate(step, total int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   LoadDays,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("Loading last %d days...", total),
	}
}

func loadSessionsUpdate(step, total int, day string, count int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   LoadSessions,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] %s: %d calm sessions", step, total, day, count),
	}
}

func summarizeUpdate(average int, data any) ProgressUpdate {
	return ProgressUpdate{
		Phase:   Summarize,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Average completion: %d%%", average),
		Data:    data,
	}
}

func exportingUpdate(format, path string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   WriteExport,
		Step:    0,
		Total:   1,
		Message: fmt.Sprintf("Writing %s export to %s...", format, path),
	}
}

func exportedUpdate(path string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   WriteExport,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("✓ %s", path),
	}
}
