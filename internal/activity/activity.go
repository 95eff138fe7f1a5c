// Package activity keeps an append-only JSONL log of submit outcomes.
package activity

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/twiced-technology-gmbh/agegate/internal/birthdate"
	"github.com/twiced-technology-gmbh/agegate/internal/filelock"
)

const (
	// FileName is the name of the activity log within the config directory.
	FileName      = "activity.jsonl"
	lockFileName  = ".activity.lock"
	logFileMode   = 0o600
	maxLogEntries = 10000 // truncate oldest entries when log exceeds this size
)

// Actions recorded in the log.
const (
	ActionAccepted = "accepted"
	ActionRejected = "rejected"
)

// Entry represents a single activity log entry.
type Entry struct {
	Timestamp time.Time `json:"timestamp"`
	Session   string    `json:"session"`
	Action    string    `json:"action"`
	Detail    string    `json:"detail,omitempty"`
}

// Append appends an entry to the activity log in dir. If the log exceeds
// maxLogEntries, the oldest entries are truncated.
func Append(dir string, entry Entry) error {
	lock, err := filelock.Acquire(filepath.Join(dir, lockFileName))
	if err != nil {
		return err
	}
	defer lock.Release() //nolint:errcheck // nothing to do on unlock failure

	path := filepath.Join(dir, FileName)
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, logFileMode) //nolint:gosec // log path from trusted config dir
	if err != nil {
		return fmt.Errorf("opening log file: %w", err)
	}
	defer f.Close()

	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("marshaling log entry: %w", err)
	}

	if _, err := f.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("writing log entry: %w", err)
	}

	// Truncate if needed (best-effort; errors are non-fatal).
	_ = truncateIfNeeded(path, maxLogEntries)

	return nil
}

// Read returns all entries in the activity log in dir, oldest first.
// A missing log yields no entries.
func Read(dir string) ([]Entry, error) {
	f, err := os.Open(filepath.Join(dir, FileName)) //nolint:gosec // trusted path
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	defer f.Close()

	var entries []Entry
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		var e Entry
		if err := json.Unmarshal(scanner.Bytes(), &e); err != nil {
			continue
		}
		entries = append(entries, e)
	}
	return entries, scanner.Err()
}

// truncateIfNeeded rewrites the log keeping only the newest limit lines.
func truncateIfNeeded(path string, limit int) error {
	f, err := os.Open(path) //nolint:gosec // trusted path
	if err != nil {
		return err
	}

	var lines []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	_ = f.Close()

	if err := scanner.Err(); err != nil {
		return err
	}

	if len(lines) <= limit {
		return nil
	}

	lines = lines[len(lines)-limit:]

	var buf strings.Builder
	for _, line := range lines {
		buf.WriteString(line)
		buf.WriteByte('\n')
	}

	return os.WriteFile(path, []byte(buf.String()), logFileMode)
}

// Recorder is a birthdate.Reporter that logs every outcome before passing it on.
type Recorder struct {
	dir  string
	next birthdate.Reporter
	now  func() time.Time
}

// NewRecorder returns a Recorder writing into dir. next may be nil.
func NewRecorder(dir string, next birthdate.Reporter) *Recorder {
	return &Recorder{dir: dir, next: next, now: time.Now}
}

// Report implements birthdate.Reporter. Log errors are discarded because
// logging should never fail a submit.
func (r *Recorder) Report(o birthdate.Outcome) {
	entry := Entry{Timestamp: r.now(), Session: o.Session, Action: ActionAccepted}
	if !o.Accepted {
		entry.Action = ActionRejected
		entry.Detail = o.Message
	}
	_ = Append(r.dir, entry)

	if r.next != nil {
		r.next.Report(o)
	}
}
