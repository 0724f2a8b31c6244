package model

// ProgressLevel indicates the severity/type of a log entry.
type ProgressLevel int

const (
	LevelInfo ProgressLevel = iota
	LevelVerbose
	LevelWarning
	LevelError
	LevelSuccess
)

// String implements fmt.Stringer.
func (l ProgressLevel) String() string {
	switch l {
	case LevelInfo:
		return "info"
	case LevelVerbose:
		return "verbose"
	case LevelWarning:
		return "warning"
	case LevelError:
		return "error"
	case LevelSuccess:
		return "success"
	default:
		return "unknown"
	}
}

// LogEntry is one human-readable line emitted while a batch runs.
type LogEntry struct {
	Message string
	Level   ProgressLevel

	// Job is the index of the job the line belongs to, or -1 for
	// batch-level lines.
	Job int
}
