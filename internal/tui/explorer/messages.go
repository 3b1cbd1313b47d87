package explorer

import "time"

// Entry is one executed command and its outcome
type Entry struct {
	Command  string
	Output   string
	Err      error
	Duration time.Duration
}

// execResultMsg is sent when an Exec call returns
type execResultMsg struct {
	entry Entry
}
