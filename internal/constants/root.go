package constants

import "time"

const (
	AppName          = "triage"
	Version          = "v0.1.0"
	DefaultConfigDir = "~/.config/triage"
	ConfigFileName   = "config.yaml"

	// DateFormat is the date format used in list rows and CLI output
	DateFormat = "Jan 2, 2006"

	// DateTimeFormat includes the time of day, used in the detail pane
	DateTimeFormat = "Jan 2, 2006 15:04"

	// DebounceDelay is the quiet period after the last keystroke before a
	// free-text filter or search query is sent.
	DebounceDelay = 300 * time.Millisecond

	// TempNotePrefix marks note IDs assigned locally before the server commits them.
	TempNotePrefix = "tmp-"

	// Backends
	BackendMemory = "memory"
	BackendSQLite = "sqlite"

	// Acting user for notes; the dashboard is single-user.
	DefaultUserID   = "current-user"
	DefaultUserName = "You"

	// Gateway defaults
	DefaultLatencyFactor = 1.0
	DefaultFailureRate   = 0.0
	DefaultTimeout       = 10 * time.Second

	PreviewLength       = 80
	SearchResultsMaxLen = 8
)

// Latency windows per gateway operation, before scaling.
var (
	LatencyList      = [2]time.Duration{200 * time.Millisecond, 600 * time.Millisecond}
	LatencyGet       = [2]time.Duration{100 * time.Millisecond, 300 * time.Millisecond}
	LatencyUpdate    = [2]time.Duration{200 * time.Millisecond, 400 * time.Millisecond}
	LatencyAddNote   = [2]time.Duration{150 * time.Millisecond, 350 * time.Millisecond}
	LatencySearch    = [2]time.Duration{150 * time.Millisecond, 400 * time.Millisecond}
	LatencySummarize = [2]time.Duration{200 * time.Millisecond, 500 * time.Millisecond}
)
